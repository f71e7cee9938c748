package ecs

import (
	"github.com/phanxgames/tilebatch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// PlayerType is the object type that spawns a controllable player.
const PlayerType = "player"

// ObjectInfo is the name and type an entity was spawned from.
type ObjectInfo struct {
	Name string
	Type string
}

// Components.
var (
	Info      = donburi.NewComponentType[ObjectInfo]()
	Position  = donburi.NewComponentType[tilebatch.Vec2]()
	Size      = donburi.NewComponentType[tilebatch.Vec2]()
	Velocity  = donburi.NewComponentType[tilebatch.Motion]()
	PlayerTag = donburi.NewTag()
)

// SpawnEvent is published once per spawned object.
type SpawnEvent struct {
	Entity donburi.Entity
	Object tilebatch.Object
}

// SpawnEventType is the Donburi event type for spawned objects. Events are
// queued; call SpawnEventType.ProcessEvents to deliver them.
var SpawnEventType = events.NewEventType[SpawnEvent]()

var playerQuery = donburi.NewQuery(filter.Contains(PlayerTag, Position, Velocity))

// SpawnObjects creates one entity per object. Objects of type PlayerType
// also get a velocity and the player tag.
func SpawnObjects(w donburi.World, objs []tilebatch.Object) []donburi.Entity {
	out := make([]donburi.Entity, 0, len(objs))
	for _, o := range objs {
		var e donburi.Entity
		if o.Type == PlayerType {
			e = w.Create(Info, Position, Size, Velocity, PlayerTag)
		} else {
			e = w.Create(Info, Position, Size)
		}
		entry := w.Entry(e)
		Info.SetValue(entry, ObjectInfo{Name: o.Name, Type: o.Type})
		Position.SetValue(entry, o.Pos)
		Size.SetValue(entry, o.Size)

		SpawnEventType.Publish(w, SpawnEvent{Entity: e, Object: o})
		out = append(out, e)
	}
	return out
}

// Player returns the first player entity.
func Player(w donburi.World) (*donburi.Entry, bool) {
	return playerQuery.First(w)
}

// MovePlayers advances every player by one frame of dt seconds with the
// given held directions.
func MovePlayers(w donburi.World, held tilebatch.Direction, dt float64, cfg tilebatch.MotionConfig) {
	playerQuery.Each(w, func(entry *donburi.Entry) {
		pos := Position.Get(entry)
		m := Velocity.Get(entry)
		*pos = m.Step(*pos, held, dt, cfg)
	})
}

// PlayerFocus returns the center of the first player, the point the camera
// follows.
func PlayerFocus(w donburi.World) (tilebatch.Vec2, bool) {
	entry, ok := Player(w)
	if !ok {
		return tilebatch.Vec2{}, false
	}
	pos := *Position.Get(entry)
	size := *Size.Get(entry)
	return pos.Add(size.Scale(0.5)), true
}
