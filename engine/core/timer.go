package core

import (
	"math"
	"time"
)

// TimerMode selects whether a timer fires once or keeps repeating
type TimerMode uint8

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer is a plain-data countdown advanced by simulation time. It never
// blocks and holds no goroutines.
type Timer struct {
	Duration time.Duration
	Mode     TimerMode

	elapsed      time.Duration
	paused       bool
	finished     bool
	justFinished int
}

// NewTimer creates a running timer
func NewTimer(d time.Duration, mode TimerMode) *Timer {
	return &Timer{Duration: d, Mode: mode}
}

// Seconds converts a float tick delta into a Duration
func Seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}

// Tick advances the timer and returns how many times it completed during
// this call. Repeating timers may complete more than once for large deltas.
func (t *Timer) Tick(dt time.Duration) int {
	t.justFinished = 0
	if t.paused {
		return 0
	}
	switch t.Mode {
	case TimerOnce:
		if t.finished {
			return 0
		}
		t.elapsed += dt
		if t.elapsed >= t.Duration {
			t.elapsed = t.Duration
			t.finished = true
			t.justFinished = 1
		}
	case TimerRepeating:
		t.elapsed += dt
		if t.Duration <= 0 {
			t.elapsed = 0
			t.justFinished = 1
			break
		}
		for t.elapsed >= t.Duration {
			t.elapsed -= t.Duration
			t.justFinished++
		}
		t.finished = t.justFinished > 0
	}
	return t.justFinished
}

// Finished reports whether a once timer has completed, or whether a
// repeating timer completed on the last Tick.
func (t *Timer) Finished() bool { return t.finished }

// JustFinished reports whether the last Tick completed the timer
func (t *Timer) JustFinished() bool { return t.justFinished > 0 }

func (t *Timer) Pause() { t.paused = true }
func (t *Timer) Unpause() { t.paused = false }
func (t *Timer) Paused() bool { return t.paused }

// Reset rewinds the timer without changing its paused state
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = 0
}

// SetDuration changes the period, keeping elapsed time
func (t *Timer) SetDuration(d time.Duration) { t.Duration = d }

func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Remaining returns the time left until the next completion
func (t *Timer) Remaining() time.Duration {
	if r := t.Duration - t.elapsed; r > 0 {
		return r
	}
	return 0
}
