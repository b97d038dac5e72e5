package ecs

import (
	"errors"
	"testing"

	"github.com/phanxgames/quill"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []quill.TextEvent
	TextEventType.Subscribe(world, func(w donburi.World, e quill.TextEvent) {
		received = append(received, e)
	})

	errRaster := errors.New("boom")
	store.EmitEvent(quill.TextEvent{
		Type:    quill.TextEventChanged,
		FieldID: 42,
		Name:    "score",
		Text:    "100",
	})
	store.EmitEvent(quill.TextEvent{
		Type: quill.TextEventRenderFailed,
		Name: "score",
		Err:  errRaster,
	})

	// Events are queued until processed.
	TextEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != quill.TextEventChanged || e0.FieldID != 42 || e0.Text != "100" {
		t.Errorf("event 0: %+v", e0)
	}
	e1 := received[1]
	if e1.Type != quill.TextEventRenderFailed || !errors.Is(e1.Err, errRaster) {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store quill.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	TextEventType.Subscribe(world, func(w donburi.World, e quill.TextEvent) {
		count1++
	})
	TextEventType.Subscribe(world, func(w donburi.World, e quill.TextEvent) {
		count2++
	})

	store.EmitEvent(quill.TextEvent{Type: quill.TextEventChanged})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_StageChanges(t *testing.T) {
	world := donburi.NewWorld()
	stage := quill.NewStageWithBackends(nil, nil)
	stage.SetEventStore(NewDonburiStore(world))

	var got []string
	TextEventType.Subscribe(world, func(w donburi.World, e quill.TextEvent) {
		got = append(got, e.Text)
	})

	tf := quill.NewTextField("name", "")
	stage.AddField(tf)
	tf.SetText("hello")
	tf.SetText("hello") // no-op, no event
	TextEventType.ProcessEvents(world)

	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("events = %q, want [hello]", got)
	}
}

func TestOnTextChangedAndFailure(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var changed []string
	OnTextChanged(world, func(w donburi.World, fieldID uint32, name, text string) {
		changed = append(changed, name+"="+text)
	})
	var failed []quill.TextEventType
	OnTextFailure(world, func(w donburi.World, e quill.TextEvent) {
		failed = append(failed, e.Type)
	})

	store.EmitEvent(quill.TextEvent{Type: quill.TextEventChanged, Name: "hp", Text: "9"})
	store.EmitEvent(quill.TextEvent{Type: quill.TextEventLayoutFailed, Name: "hp", Err: errors.New("no font")})
	store.EmitEvent(quill.TextEvent{Type: quill.TextEventRenderFailed, Name: "hp", Err: errors.New("no atlas")})
	TextEventType.ProcessEvents(world)

	if len(changed) != 1 || changed[0] != "hp=9" {
		t.Errorf("changed = %q, want [hp=9]", changed)
	}
	if len(failed) != 2 || failed[0] != quill.TextEventLayoutFailed || failed[1] != quill.TextEventRenderFailed {
		t.Errorf("failed = %v", failed)
	}
}
