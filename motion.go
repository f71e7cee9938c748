package tilebatch

// Direction is a bitmask of movement directions held during one frame.
// Values can be combined with bitwise OR (e.g. DirUp | DirLeft).
type Direction uint8

const (
	DirUp    Direction = 1 << iota // negative Y
	DirDown                        // positive Y
	DirLeft                        // negative X
	DirRight                       // positive X

	DirNone Direction = 0
)

// Has reports whether every bit of o is set in d.
func (d Direction) Has(o Direction) bool {
	return o != 0 && d&o == o
}

// Vector returns the unit step for the held directions. Opposing directions
// cancel.
func (d Direction) Vector() Vec2 {
	var v Vec2
	if d.Has(DirUp) {
		v.Y--
	}
	if d.Has(DirDown) {
		v.Y++
	}
	if d.Has(DirLeft) {
		v.X--
	}
	if d.Has(DirRight) {
		v.X++
	}
	return v
}

// MotionConfig holds the player movement tuning.
type MotionConfig struct {
	// Step is the velocity change per frame, both when accelerating and when
	// decaying toward rest.
	Step float64 `json:"step"`
	// MaxVelX and MaxVelY clamp the velocity magnitude per axis.
	MaxVelX float64 `json:"max_vel_x"`
	MaxVelY float64 `json:"max_vel_y"`
}

// DefaultMotionConfig returns step 25 and a 250 px/s velocity cap.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{Step: 25, MaxVelX: 250, MaxVelY: 250}
}

// Motion is the velocity state of a moving entity.
type Motion struct {
	Velocity Vec2
}

// Accelerate adds one Step per held direction and clamps each axis to
// [-MaxVel, MaxVel].
func (m *Motion) Accelerate(held Direction, cfg MotionConfig) {
	if held == DirNone {
		return
	}
	m.Velocity = m.Velocity.Add(held.Vector().Scale(cfg.Step))
	m.Velocity.X = clamp(m.Velocity.X, -cfg.MaxVelX, cfg.MaxVelX)
	m.Velocity.Y = clamp(m.Velocity.Y, -cfg.MaxVelY, cfg.MaxVelY)
}

// Decay slows every axis that is moving without its direction held by one
// Step, stopping at zero rather than reversing.
func (m *Motion) Decay(held Direction, cfg MotionConfig) {
	switch {
	case m.Velocity.X > 0 && !held.Has(DirRight):
		m.Velocity.X = max(m.Velocity.X-cfg.Step, 0)
	case m.Velocity.X < 0 && !held.Has(DirLeft):
		m.Velocity.X = min(m.Velocity.X+cfg.Step, 0)
	}
	switch {
	case m.Velocity.Y > 0 && !held.Has(DirDown):
		m.Velocity.Y = max(m.Velocity.Y-cfg.Step, 0)
	case m.Velocity.Y < 0 && !held.Has(DirUp):
		m.Velocity.Y = min(m.Velocity.Y+cfg.Step, 0)
	}
}

// Step advances one frame: accelerate from the held directions, move pos by
// velocity*dt seconds, then decay the axes that were released. It returns
// the new position.
func (m *Motion) Step(pos Vec2, held Direction, dt float64, cfg MotionConfig) Vec2 {
	m.Accelerate(held, cfg)
	pos = pos.Add(m.Velocity.Scale(dt))
	m.Decay(held, cfg)
	return pos
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
