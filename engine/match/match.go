// Package match owns one game session: the world, its systems and the
// per-match state, plus the state machine that starts, pauses and ends it.
package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/1siamBot/outpost/engine/build"
	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/command"
	"github.com/1siamBot/outpost/engine/config"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
	"github.com/1siamBot/outpost/engine/grid"
	"github.com/1siamBot/outpost/engine/systems"
	"github.com/1siamBot/outpost/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrBadTransition   = errors.New("state transition not allowed")
	ErrNotRunning      = errors.New("match is not running")
	ErrCatalogMismatch = errors.New("journal was recorded with a different catalog")
)

// Summary is the scoreboard recorded when a match ends
type Summary struct {
	MatchID       uuid.UUID
	Outcome       core.GameState
	Elapsed       time.Duration
	Ticks         uint64
	AliensKilled  int
	AliensSpawned int
	AliensAlive   int
	BuildingsLost int
	Built         int
	Holdings      economy.ResourceSet
}

// Match is the simulation root. Nothing in it is global; every system gets
// the state it needs from here.
type Match struct {
	ID      uuid.UUID
	Config  *config.Config
	Catalog *catalog.Catalog

	World   *core.World
	Bus     *core.EventBus
	Grid    *grid.BuildGrid
	Economy *economy.Economy
	Clock   *core.MatchClock
	RNG     *systems.RNG
	Builder *build.Builder
	Queue   *command.Queue
	Journal *command.Journal

	Spawner *systems.SpawnerSystem
	Health  *systems.HealthSystem
	Combat  *systems.CombatSystem

	// Camera is the listener entity; it outlives every match
	Camera core.EntityID
	// Base is the current main base
	Base core.EntityID

	// UI state driven by SetMode and Select commands
	Mode      command.Mode
	Selected  string
	Inspected core.EntityID

	Summary *Summary

	state         core.GameState
	tick          uint64
	aliensKilled  int
	buildingsLost int
	log           *logrus.Entry
}

// New assembles a match in the main menu. Call StartMatch to play.
func New(cfg *config.Config, cat *catalog.Catalog) *Match {
	w := core.NewWorld()
	bus := core.NewEventBus()
	g := grid.New()
	eco := economy.NewWith(cfg.Resources.Set())
	clock := core.NewMatchClock()
	rng := systems.NewRNG(cfg.Seed)

	spawner := systems.NewSpawnerSystem(g, clock, bus, rng)
	spawner.Tuning = systems.SpawnTuning{
		Offset:      cfg.Spawn.Offset.Std(),
		Grace:       cfg.Spawn.Grace.Std(),
		WavePeriod:  cfg.Spawn.WavePeriod.Std(),
		RampHorizon: cfg.Spawn.RampHorizon.Std(),
	}
	health := systems.NewHealthSystem(w, g, bus)
	combat := &systems.CombatSystem{EventBus: bus}

	w.AddSystem(spawner)
	w.AddSystem(&systems.TargetingSystem{})
	w.AddSystem(&systems.AlienSteeringSystem{})
	w.AddSystem(combat)
	w.AddSystem(&systems.MovementSystem{})
	w.AddSystem(health)
	w.AddSystem(&systems.GenerationSystem{Economy: eco})

	m := &Match{
		Config:  cfg,
		Catalog: cat,
		World:   w,
		Bus:     bus,
		Grid:    g,
		Economy: eco,
		Clock:   clock,
		RNG:     rng,
		Builder: &build.Builder{World: w, Grid: g, Economy: eco, Bus: bus, Catalog: cat},
		Queue:   command.NewQueue(cfg.InputDelay),
		Spawner: spawner,
		Health:  health,
		Combat:  combat,
		Camera:  w.Spawn(&core.Transform{Translation: core.Vec3{Y: 15}}, &core.Camera{}),
		state:   core.StateMainMenu,
		log:     logger.Log.WithField("component", "match"),
	}
	health.OnDeath(spawner.AlienDied)
	health.OnDeath(m.tally)
	return m
}

// State returns the current state
func (m *Match) State() core.GameState { return m.state }

// Tick returns the number of simulated ticks since StartMatch
func (m *Match) Tick() uint64 { return m.tick }

// Remaining is the time left until extraction
func (m *Match) Remaining() time.Duration {
	left := m.Config.WinAfter.Std() - m.Clock.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// OnDeath registers a side effect for the first death of each entity
func (m *Match) OnDeath(h systems.DeathHook) {
	m.Health.OnDeath(h)
}

// StartMatch resets the per-match state, places the main base and starts
// the clock.
func (m *Match) StartMatch() error {
	if m.state != core.StateMainMenu {
		return fmt.Errorf("%w: start from %s", ErrBadTransition, m.state)
	}

	m.clearBoard()
	m.ID = uuid.New()
	m.Economy.Reset()
	m.Spawner.Reset()
	m.RNG = systems.NewRNG(m.Config.Seed)
	m.Spawner.RNG = m.RNG
	m.Combat.Kills = 0
	m.Builder.Built = 0
	m.tick = 0
	m.aliensKilled = 0
	m.buildingsLost = 0
	m.Mode = command.ModePanning
	m.Selected = ""
	m.Inspected = core.NoEntity
	m.Summary = nil

	base, err := m.Builder.SpawnMainBase()
	if err != nil {
		return fmt.Errorf("start match: %w", err)
	}
	m.Base = base
	m.Journal = command.NewJournal(m.ID, m.RNG.Seed(), m.Config.TickRate, m.Catalog.Fingerprint())
	m.Clock.Restart()

	m.log = logger.Log.WithField("match_id", m.ID.String())
	m.log.WithFields(logrus.Fields{
		"seed":      m.RNG.Seed(),
		"resources": m.Economy.Holdings().String(),
	}).Info("match started")
	m.setState(core.StateInGame)
	return nil
}

// Replay starts a match that re-issues a recorded journal's commands on
// their original ticks.
func (m *Match) Replay(j *command.Journal) error {
	if j.Header.Catalog != m.Catalog.Fingerprint() {
		return ErrCatalogMismatch
	}
	m.Config.Seed = j.Header.Seed
	if err := m.StartMatch(); err != nil {
		return err
	}
	j.Schedule(m.Queue)
	m.log.WithFields(logrus.Fields{
		"journal":  j.Header.ID,
		"commands": len(j.Commands),
	}).Info("replaying journal")
	return nil
}

// Pause stops the simulation and the match clock
func (m *Match) Pause() error {
	if m.state != core.StateInGame {
		return fmt.Errorf("%w: pause from %s", ErrBadTransition, m.state)
	}
	m.Clock.Pause()
	m.setState(core.StatePaused)
	return nil
}

// Resume continues a paused match
func (m *Match) Resume() error {
	if m.state != core.StatePaused {
		return fmt.Errorf("%w: resume from %s", ErrBadTransition, m.state)
	}
	m.Clock.Resume()
	m.setState(core.StateInGame)
	return nil
}

// ReturnToMenu leaves a finished or paused match. An abandoned match is
// cleaned up on the way out.
func (m *Match) ReturnToMenu() error {
	switch m.state {
	case core.StateVictory, core.StateGameOver:
	case core.StatePaused:
		m.Summary = m.summarize(core.StateMainMenu)
		m.Cleanup()
	default:
		return fmt.Errorf("%w: menu from %s", ErrBadTransition, m.state)
	}
	m.setState(core.StateMainMenu)
	return nil
}

// Step advances the match by one fixed tick: queued commands, then every
// system in priority order, then events, then the win/loss check.
func (m *Match) Step(dt float64) {
	if m.state != core.StateInGame {
		return
	}

	for _, cmd := range m.Queue.Take(m.tick) {
		if err := m.Apply(cmd); err != nil {
			m.log.WithError(err).WithField("command", cmd.String()).Debug("command rejected")
		}
		m.Journal.Record(cmd)
	}

	m.Clock.Tick(dt)
	m.World.Tick(dt)
	m.Bus.Dispatch()
	m.tick++
	m.Journal.Ticks = m.tick

	m.evaluate()
}

// evaluate ends the match on base loss or once the clock runs out
func (m *Match) evaluate() {
	if h := core.HealthOf(m.World, m.Base); h == nil || h.HP <= 0 {
		m.finish(core.StateGameOver)
		return
	}
	if m.Clock.Elapsed() >= m.Config.WinAfter.Std() {
		m.finish(core.StateVictory)
	}
}

func (m *Match) finish(outcome core.GameState) {
	m.Summary = m.summarize(outcome)
	m.log.WithFields(logrus.Fields{
		"outcome": outcome.String(),
		"elapsed": m.Summary.Elapsed.Round(time.Second).String(),
		"killed":  m.Summary.AliensKilled,
		"spawned": m.Summary.AliensSpawned,
		"built":   m.Summary.Built,
	}).Info("match over")
	m.Cleanup()
	m.setState(outcome)
}

// Cleanup removes everything but the camera and stops the clock
func (m *Match) Cleanup() {
	m.Clock.Pause()
	n := m.clearBoard()
	m.log.WithField("despawned", n).Debug("board cleared")
}

func (m *Match) clearBoard() int {
	n := m.World.DespawnAllExcept(core.CompCamera)
	m.Grid.Reset()
	m.Bus.Discard()
	m.Queue.Clear()
	m.Base = core.NoEntity
	m.Inspected = core.NoEntity
	return n
}

func (m *Match) summarize(outcome core.GameState) *Summary {
	return &Summary{
		MatchID:       m.ID,
		Outcome:       outcome,
		Elapsed:       m.Clock.Elapsed(),
		Ticks:         m.tick,
		AliensKilled:  m.aliensKilled,
		AliensSpawned: m.Spawner.Spawned,
		AliensAlive:   m.Spawner.AlienCount,
		BuildingsLost: m.buildingsLost,
		Built:         m.Builder.Built,
		Holdings:      m.Economy.Holdings(),
	}
}

// tally is the death hook behind the scoreboard
func (m *Match) tally(w *core.World, d core.Died) {
	switch {
	case w.Has(d.Entity, core.CompAlien):
		m.aliensKilled++
	case w.Has(d.Entity, core.CompBuilding) && d.Killer != core.NoEntity:
		m.buildingsLost++
	}
	if d.Entity == m.Inspected {
		m.Inspected = core.NoEntity
	}
}

func (m *Match) setState(to core.GameState) {
	from := m.state
	m.state = to
	m.log.WithFields(logrus.Fields{"from": from.String(), "to": to.String()}).Debug("state changed")
	m.Bus.Emit(core.Event{
		Type:    core.EvtStateChanged,
		Tick:    m.World.TickCount,
		Payload: core.StateChanged{From: from, To: to},
	})
	m.Bus.Dispatch()
}
