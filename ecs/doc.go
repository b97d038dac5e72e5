// Package ecs provides ECS adapters for quill's text event stream.
//
// The primary adapter is [NewDonburiStore], which bridges text events
// (content changes, layout and render failures) into a [Donburi] world as
// typed events. Subscribe to [TextEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
