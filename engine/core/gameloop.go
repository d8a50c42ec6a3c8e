package core

import "time"

// GameState represents the overall match state
type GameState uint8

const (
	StateMainMenu GameState = iota
	StateInGame
	StatePaused
	StateVictory
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateInGame:
		return "in_game"
	case StatePaused:
		return "paused"
	case StateVictory:
		return "victory"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// Terminal reports whether the state only leaves through a reset
func (s GameState) Terminal() bool {
	return s == StateVictory || s == StateGameOver
}

// Stepper advances a simulation by one fixed tick
type Stepper interface {
	Step(dt float64)
}

// GameLoop manages the fixed-timestep game loop for deterministic simulation
type GameLoop struct {
	Sim         Stepper
	TickRate    float64 // fixed ticks per second
	accumulator float64
	lastTime    time.Time
	now         func() time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(sim Stepper, tickRate float64) *GameLoop {
	return &GameLoop{
		Sim:      sim,
		TickRate: tickRate,
		lastTime: time.Now(),
		now:      time.Now,
	}
}

// Update should be called every render frame. It runs the simulation
// at fixed timestep.
// Returns the interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	gl.Advance(frameTime)
	return gl.accumulator / gl.Dt()
}

// Advance feeds frameTime seconds into the accumulator and runs as many
// fixed ticks as fit. It returns the number of ticks run.
func (gl *GameLoop) Advance(frameTime float64) int {
	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := gl.Dt()
	gl.accumulator += frameTime

	ticks := 0
	for gl.accumulator >= dt {
		gl.Sim.Step(dt)
		gl.accumulator -= dt
		ticks++
	}
	return ticks
}

// Dt returns the fixed tick length in seconds
func (gl *GameLoop) Dt() float64 {
	return 1.0 / gl.TickRate
}

// Resync drops accumulated time, e.g. after a long stall in a menu
func (gl *GameLoop) Resync() {
	gl.accumulator = 0
	gl.lastTime = gl.now()
}
