package core

import "time"

// MatchClock is elapsed in-game time. It only moves when ticked while
// running, so it stops with the simulation and with an explicit Pause.
type MatchClock struct {
	elapsed time.Duration
	paused  bool
}

// NewMatchClock returns a stopped clock at zero
func NewMatchClock() *MatchClock {
	return &MatchClock{paused: true}
}

// Tick advances the clock by dt seconds unless paused
func (c *MatchClock) Tick(dt float64) {
	if c.paused {
		return
	}
	c.elapsed += Seconds(dt)
}

// Restart rewinds to zero and starts running
func (c *MatchClock) Restart() {
	c.elapsed = 0
	c.paused = false
}

func (c *MatchClock) Pause() { c.paused = true }
func (c *MatchClock) Resume() { c.paused = false }
func (c *MatchClock) Paused() bool { return c.paused }
func (c *MatchClock) Elapsed() time.Duration { return c.elapsed }
