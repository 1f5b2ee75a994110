// Package ecs bridges party scenes into a [Donburi] world.
//
// [NewDonburiSink] returns a [party.EventSink] that publishes emitter
// lifecycle events as typed Donburi events and mirrors every live emitter as
// an entity carrying an [EmitterState] component. Subscribe to
// [EmitterEventType] in your ECS systems to react to expirations, and query
// [Emitter] to read particle counts.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
//	// once per frame, after scene.Tick:
//	sink.Sync(scene)
//	ecs.EmitterEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
