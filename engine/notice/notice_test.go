package notice

import (
	"errors"
	"testing"
	"time"

	"github.com/1siamBot/outpost/engine/core"
)

func TestNoticeFadesAndExpires(t *testing.T) {
	b := NewBoard()
	b.Push("first")
	b.Update(500 * time.Millisecond)
	b.Push("second")

	active := b.Active()
	if len(active) != 2 || active[0].Text != "first" {
		t.Fatalf("Expected two notices oldest first, got %v", active)
	}
	if a := active[0].Alpha(); a != 0.75 {
		t.Errorf("Expected alpha 0.75 after 500ms, got %v", a)
	}
	if a := active[1].Alpha(); a != 1 {
		t.Errorf("Expected a fresh notice fully opaque, got %v", a)
	}

	b.Update(1500 * time.Millisecond)
	active = b.Active()
	if len(active) != 1 || active[0].Text != "second" {
		t.Fatalf("Expected only the second notice left, got %d", len(active))
	}
	b.Update(500 * time.Millisecond)
	if len(b.Active()) != 0 {
		t.Error("Expected every notice gone after its lifetime")
	}
}

func TestRepeatsQueue(t *testing.T) {
	b := NewBoard()
	bus := core.NewEventBus()
	bus.On(core.EvtConstructionError, b.OnConstructionError)

	for i := 0; i < 3; i++ {
		bus.Emit(core.Event{Type: core.EvtConstructionError, Payload: core.ConstructionError{Err: errors.New("occupied")}})
	}
	bus.Emit(core.Event{Type: core.EvtConstructionError, Payload: core.ConstructionError{}})
	bus.Dispatch()

	if n := len(b.Active()); n != 3 {
		t.Errorf("Expected 3 repeated notices, got %d", n)
	}
	b.Clear()
	if len(b.Active()) != 0 {
		t.Error("Expected clear to empty the board")
	}
}
