// Package ecs provides ECS adapters for reef's scene lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges reef scene events
// (agents added and removed, retargets, mode changes, rebuilds) into a
// [Donburi] world as typed events. Subscribe to [SceneEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
