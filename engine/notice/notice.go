// Package notice keeps the short-lived messages shown when the player
// tries something the game refuses.
package notice

import (
	"time"

	"github.com/1siamBot/outpost/engine/core"
)

// Lifetime is how long each notice stays on screen
const Lifetime = 2 * time.Second

// Notice is one message and its countdown
type Notice struct {
	Text  string
	timer *core.Timer
}

// Alpha fades linearly from 1 to 0 over the notice's lifetime
func (n *Notice) Alpha() float64 {
	return 1 - float64(n.timer.Elapsed())/float64(n.timer.Duration)
}

// Board holds the notices currently on screen, oldest first
type Board struct {
	notices []*Notice
}

func NewBoard() *Board {
	return &Board{}
}

// Push adds a notice. Repeats are kept as separate notices.
func (b *Board) Push(text string) {
	b.notices = append(b.notices, &Notice{
		Text:  text,
		timer: core.NewTimer(Lifetime, core.TimerOnce),
	})
}

// OnConstructionError is an event handler that posts the rejection text
func (b *Board) OnConstructionError(e core.Event) {
	if ce, ok := e.Payload.(core.ConstructionError); ok && ce.Err != nil {
		b.Push(ce.Err.Error())
	}
}

// Update ages every notice and drops the expired ones
func (b *Board) Update(dt time.Duration) {
	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.timer.Tick(dt) == 0 {
			kept = append(kept, n)
		}
	}
	clear(b.notices[len(kept):])
	b.notices = kept
}

// Active returns the live notices, oldest first
func (b *Board) Active() []*Notice {
	return b.notices
}

// Clear drops every notice
func (b *Board) Clear() {
	b.notices = nil
}
