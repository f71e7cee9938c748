package ecs

import (
	"testing"

	"github.com/phanxgames/tilebatch"
	"github.com/yohamta/donburi"
)

var testObjects = []tilebatch.Object{
	{Name: "sign", Type: "marker", Pos: tilebatch.Vec2{X: 5, Y: 5}, Size: tilebatch.Vec2{X: 16, Y: 16}},
	{Name: "hero", Type: PlayerType, Pos: tilebatch.Vec2{X: 100, Y: 40}, Size: tilebatch.Vec2{X: 20, Y: 30}},
}

func TestSpawnObjects(t *testing.T) {
	world := donburi.NewWorld()
	ents := SpawnObjects(world, testObjects)
	if len(ents) != 2 {
		t.Fatalf("entities = %d, want 2", len(ents))
	}

	sign := world.Entry(ents[0])
	if info := Info.Get(sign); info.Name != "sign" || info.Type != "marker" {
		t.Errorf("sign info = %+v", info)
	}
	if sign.HasComponent(PlayerTag) || sign.HasComponent(Velocity) {
		t.Error("marker object got player components")
	}

	entry, ok := Player(world)
	if !ok {
		t.Fatal("no player entity")
	}
	if entry.Entity() != ents[1] {
		t.Errorf("Player = %v, want %v", entry.Entity(), ents[1])
	}
	if *Position.Get(entry) != testObjects[1].Pos {
		t.Errorf("player position = %v", *Position.Get(entry))
	}
}

func TestSpawnEvents(t *testing.T) {
	world := donburi.NewWorld()

	var got []SpawnEvent
	SpawnEventType.Subscribe(world, func(w donburi.World, ev SpawnEvent) {
		got = append(got, ev)
	})

	ents := SpawnObjects(world, testObjects)
	if len(got) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}

	// Events are queued until processed.
	SpawnEventType.ProcessEvents(world)

	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[1].Entity != ents[1] || got[1].Object.Name != "hero" {
		t.Errorf("event 1 = %+v", got[1])
	}
}

func TestMovePlayers(t *testing.T) {
	world := donburi.NewWorld()
	SpawnObjects(world, testObjects)
	cfg := tilebatch.DefaultMotionConfig()

	MovePlayers(world, tilebatch.DirRight, 0.5, cfg)

	entry, _ := Player(world)
	if pos := *Position.Get(entry); pos != (tilebatch.Vec2{X: 112.5, Y: 40}) {
		t.Errorf("player position = %v, want (112.5, 40)", pos)
	}
	if v := Velocity.Get(entry).Velocity; v.X != 25 {
		t.Errorf("velocity = %v, want 25", v)
	}
}

func TestPlayerFocus(t *testing.T) {
	world := donburi.NewWorld()
	if _, ok := PlayerFocus(world); ok {
		t.Error("PlayerFocus on empty world reported a player")
	}
	SpawnObjects(world, testObjects)
	focus, ok := PlayerFocus(world)
	if !ok {
		t.Fatal("no focus")
	}
	if focus != (tilebatch.Vec2{X: 110, Y: 55}) {
		t.Errorf("focus = %v, want (110, 55)", focus)
	}
}
