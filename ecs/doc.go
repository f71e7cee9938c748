// Package ecs stores a level's objects as entities in a [Donburi] world and
// runs the player movement system over them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.SpawnObjects(world, level.Objects)
//	ecs.MovePlayers(world, input.Player, dt, cfg.Motion)
//	focus, _ := ecs.PlayerFocus(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
