package tilebatch

import "testing"

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vec2
	}{
		{DirNone, Vec2{}},
		{DirUp, Vec2{Y: -1}},
		{DirDown | DirRight, Vec2{X: 1, Y: 1}},
		{DirLeft | DirRight, Vec2{}},
		{DirUp | DirDown | DirLeft, Vec2{X: -1}},
	}
	for _, tt := range tests {
		if got := tt.dir.Vector(); got != tt.want {
			t.Errorf("Direction(%04b).Vector() = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestDirectionHas(t *testing.T) {
	d := DirUp | DirLeft
	if !d.Has(DirUp) || !d.Has(DirUp|DirLeft) {
		t.Error("Has missed a held direction")
	}
	if d.Has(DirDown) || d.Has(DirUp|DirDown) || d.Has(DirNone) {
		t.Error("Has reported a direction that is not held")
	}
}

func TestMotionAccelerateClamps(t *testing.T) {
	cfg := DefaultMotionConfig()
	var m Motion
	for i := 0; i < 20; i++ {
		m.Accelerate(DirRight|DirUp, cfg)
	}
	if m.Velocity.X != cfg.MaxVelX || m.Velocity.Y != -cfg.MaxVelY {
		t.Errorf("velocity = %v, want (%v, %v)", m.Velocity, cfg.MaxVelX, -cfg.MaxVelY)
	}
}

func TestMotionDecayStopsAtZero(t *testing.T) {
	cfg := DefaultMotionConfig()
	m := Motion{Velocity: Vec2{X: 30, Y: -10}}
	m.Decay(DirNone, cfg)
	if m.Velocity.X != 5 || m.Velocity.Y != 0 {
		t.Errorf("after one decay = %v, want (5, 0)", m.Velocity)
	}
	m.Decay(DirNone, cfg)
	if m.Velocity != (Vec2{}) {
		t.Errorf("after two decays = %v, want zero", m.Velocity)
	}
}

func TestMotionDecayKeepsHeldAxis(t *testing.T) {
	cfg := DefaultMotionConfig()
	m := Motion{Velocity: Vec2{X: 100, Y: 100}}
	m.Decay(DirRight, cfg)
	if m.Velocity.X != 100 {
		t.Errorf("held X decayed to %v", m.Velocity.X)
	}
	if m.Velocity.Y != 75 {
		t.Errorf("released Y = %v, want 75", m.Velocity.Y)
	}
}

func TestMotionStep(t *testing.T) {
	cfg := DefaultMotionConfig()
	var m Motion
	pos := m.Step(Vec2{X: 10, Y: 10}, DirRight, 0.1, cfg)
	if pos != (Vec2{X: 12.5, Y: 10}) {
		t.Errorf("pos = %v, want (12.5, 10)", pos)
	}
	if m.Velocity.X != 25 {
		t.Errorf("velocity = %v, want 25 while held", m.Velocity.X)
	}

	pos = m.Step(pos, DirNone, 0.1, cfg)
	if pos != (Vec2{X: 15, Y: 10}) {
		t.Errorf("coasting pos = %v, want (15, 10)", pos)
	}
	if m.Velocity.X != 0 {
		t.Errorf("velocity after release = %v, want 0", m.Velocity.X)
	}
}
