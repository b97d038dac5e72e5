// Package ecs provides ECS adapters for quill.
package ecs

import (
	"github.com/phanxgames/quill"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TextEventType carries every quill.TextEvent a stage emits:
//
//   - quill.TextEventChanged once per committed content change, with the
//     field's ID, name and new text. Same-value writes emit nothing.
//   - quill.TextEventLayoutFailed and quill.TextEventRenderFailed each
//     frame a field fails to lay out or rasterize, with Err set. The field
//     stays dirty and is retried, so these repeat until the cause is fixed.
//
// Events queue in the world until ProcessEvents runs.
var TextEventType = events.NewEventType[quill.TextEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates a quill.EventStore that publishes to TextEventType
// in world.
func NewDonburiStore(world donburi.World) quill.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event quill.TextEvent) {
	TextEventType.Publish(s.world, event)
}

// OnTextChanged subscribes fn to content changes only.
func OnTextChanged(world donburi.World, fn func(w donburi.World, fieldID uint32, name, text string)) {
	TextEventType.Subscribe(world, func(w donburi.World, e quill.TextEvent) {
		if e.Type == quill.TextEventChanged {
			fn(w, e.FieldID, e.Name, e.Text)
		}
	})
}

// OnTextFailure subscribes fn to layout and render failures only.
func OnTextFailure(world donburi.World, fn func(w donburi.World, e quill.TextEvent)) {
	TextEventType.Subscribe(world, func(w donburi.World, e quill.TextEvent) {
		if e.Type == quill.TextEventLayoutFailed || e.Type == quill.TextEventRenderFailed {
			fn(w, e)
		}
	})
}
