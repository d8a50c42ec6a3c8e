package input

import "github.com/hajimehoshi/ebiten/v2"

// Action is a keyboard command the game reacts to
type Action uint8

const (
	ActPause Action = iota
	ActPan
	ActDestroy
	ActDefensiveMenu
	ActResourceMenu
	ActSlot1
	ActSlot2
	ActSlot3
	ActSlot4
	ActConfirm
)

// Binding maps a key to an action
type Binding struct {
	Key    ebiten.Key
	Action Action
}

// DefaultBindings is the stock keyboard layout
func DefaultBindings() []Binding {
	return []Binding{
		{ebiten.KeyEscape, ActPause},
		{ebiten.KeyP, ActPan},
		{ebiten.KeyX, ActDestroy},
		{ebiten.KeyB, ActDefensiveMenu},
		{ebiten.KeyR, ActResourceMenu},
		{ebiten.Key1, ActSlot1},
		{ebiten.Key2, ActSlot2},
		{ebiten.Key3, ActSlot3},
		{ebiten.Key4, ActSlot4},
		{ebiten.KeyEnter, ActConfirm},
		{ebiten.KeySpace, ActConfirm},
	}
}

// Triggered returns the actions whose key justPressed reports, once each
// and in binding order.
func Triggered(bindings []Binding, justPressed func(ebiten.Key) bool) []Action {
	var out []Action
	var seen [ActConfirm + 1]bool
	for _, b := range bindings {
		if int(b.Action) < len(seen) && seen[b.Action] {
			continue
		}
		if justPressed(b.Key) {
			out = append(out, b.Action)
			if int(b.Action) < len(seen) {
				seen[b.Action] = true
			}
		}
	}
	return out
}

// Slot returns the zero-based menu slot for a slot action
func (a Action) Slot() (int, bool) {
	if a >= ActSlot1 && a <= ActSlot4 {
		return int(a - ActSlot1), true
	}
	return 0, false
}
