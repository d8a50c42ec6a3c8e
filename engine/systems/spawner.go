package systems

import (
	"math"
	"time"

	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/grid"
	"github.com/1siamBot/outpost/pkg/logger"
	"github.com/sirupsen/logrus"
)

// SpawnTuning shapes the spawn probability curve
type SpawnTuning struct {
	Offset      time.Duration // added to match time before evaluating
	Grace       time.Duration // no spawns before this much shifted time
	WavePeriod  time.Duration // sawtooth period
	RampHorizon time.Duration // time for the ramp factor to reach 1
}

// DefaultSpawnTuning is the shipped difficulty curve
func DefaultSpawnTuning() SpawnTuning {
	return SpawnTuning{
		Offset:      30 * time.Second,
		Grace:       10 * time.Second,
		WavePeriod:  60 * time.Second,
		RampHorizon: 10 * time.Minute,
	}
}

// SpawnProbability evaluates the default curve
func SpawnProbability(t time.Duration, buildingCount, alienCount int) float64 {
	return DefaultSpawnTuning().Probability(t, buildingCount, alienCount)
}

// Probability is the chance that one tick spawns an alien: a cubic
// sawtooth over WavePeriod scaled by a linear ramp and by one percent per
// building. The result is not clamped. alienCount is accepted for future
// dampening and currently ignored.
func (st SpawnTuning) Probability(t time.Duration, buildingCount, alienCount int) float64 {
	shifted := t + st.Offset
	if shifted < st.Grace {
		return 0
	}
	x := (shifted - st.Grace).Seconds()
	period := st.WavePeriod.Seconds()

	phase := math.Mod(x, period)
	sawtooth := phase * phase * phase / (period * period * period)
	ramp := x / st.RampHorizon.Seconds()
	buildingModifier := float64(buildingCount)/100 + 1

	return sawtooth * ramp * buildingModifier
}

const (
	bearingMinPeriod = 20 * time.Second
	bearingMaxPeriod = 40 * time.Second
	deviationMin     = math.Pi / 10
	deviationMax     = math.Pi / 5
)

// AlienSpawnAngle is the bearing sector aliens currently arrive from
type AlienSpawnAngle struct {
	Angle     float64
	Deviation float64
	Timer     *core.Timer
}

// NewAlienSpawnAngle returns the opening bearing
func NewAlienSpawnAngle() *AlienSpawnAngle {
	return &AlienSpawnAngle{
		Angle:     0,
		Deviation: 0.5,
		Timer:     core.NewTimer(bearingMinPeriod, core.TimerRepeating),
	}
}

// Tick advances the rotation timer and draws a new bearing and period when
// it fires. It reports whether the bearing changed.
func (a *AlienSpawnAngle) Tick(dt time.Duration, rng *RNG) bool {
	if a.Timer.Tick(dt) == 0 {
		return false
	}
	a.Angle = rng.Range(0, 2*math.Pi)
	a.Deviation = rng.Range(deviationMin, deviationMax)
	a.Timer.SetDuration(rng.Duration(bearingMinPeriod, bearingMaxPeriod))
	a.Timer.Reset()
	return true
}

// AlienStats are the fixed stats of every spawned alien
type AlienStats struct {
	HP       int
	Speed    float64
	Range    float64
	Damage   int
	Cooldown time.Duration
	Radius   float64
	Height   float64
}

// DefaultAlienStats is the standard walker
var DefaultAlienStats = AlienStats{
	HP:       200,
	Speed:    5,
	Range:    2.5,
	Damage:   5,
	Cooldown: 500 * time.Millisecond,
	Radius:   0.3,
	Height:   0.5,
}

// SpawnAlien creates an alien at p
func SpawnAlien(w *core.World, p core.Vec3, st AlienStats) core.EntityID {
	return w.Spawn(
		&core.Transform{Translation: p},
		core.NewHealth(st.HP),
		&core.Alien{Speed: st.Speed},
		&core.Velocity{},
		&core.Collider{Radius: st.Radius},
		&core.TargetSelecting{Range: st.Range},
		core.NewDamageDealing(st.Damage, st.Cooldown, core.WeaponClaws),
	)
}

// SpawnerSystem rolls for a new alien every tick and places it on the ring
// around the base, inside the current bearing sector.
type SpawnerSystem struct {
	Grid    *grid.BuildGrid
	Clock   *core.MatchClock
	Bus     *core.EventBus
	RNG     *RNG
	Bearing *AlienSpawnAngle
	Tuning  SpawnTuning
	Stats   AlienStats

	// AlienCount is the number of aliens spawned and not yet dead
	AlienCount int
	// Spawned is the total spawned this match
	Spawned int
}

// NewSpawnerSystem wires a spawner with default tuning and alien stats
func NewSpawnerSystem(g *grid.BuildGrid, clock *core.MatchClock, bus *core.EventBus, rng *RNG) *SpawnerSystem {
	return &SpawnerSystem{
		Grid:    g,
		Clock:   clock,
		Bus:     bus,
		RNG:     rng,
		Bearing: NewAlienSpawnAngle(),
		Tuning:  DefaultSpawnTuning(),
		Stats:   DefaultAlienStats,
	}
}

func (s *SpawnerSystem) Priority() int { return 10 }

// Reset restores the opening bearing and zeroes the counters
func (s *SpawnerSystem) Reset() {
	s.Bearing = NewAlienSpawnAngle()
	s.AlienCount = 0
	s.Spawned = 0
}

// AlienDied is the death hook that keeps AlienCount current
func (s *SpawnerSystem) AlienDied(w *core.World, d core.Died) {
	if w.Has(d.Entity, core.CompAlien) && s.AlienCount > 0 {
		s.AlienCount--
	}
}

// shouldSpawn is the per-tick roll: a draw u spawns iff u <= p
func shouldSpawn(u, p float64) bool { return u <= p }

func (s *SpawnerSystem) Update(w *core.World, dt float64) {
	if s.Bearing.Tick(core.Seconds(dt), s.RNG) {
		logger.Log.WithFields(logrus.Fields{
			"angle":     s.Bearing.Angle,
			"deviation": s.Bearing.Deviation,
			"next":      s.Bearing.Timer.Duration,
		}).Debug("alien bearing rotated")
	}

	p := s.Tuning.Probability(s.Clock.Elapsed(), s.Grid.Count(), s.AlienCount)
	if !shouldSpawn(s.RNG.Float64(), p) {
		return
	}

	// The second draw scales the bearing rather than offsetting it.
	angle := s.Bearing.Angle * s.RNG.Float64() * s.Bearing.Deviation
	center := s.Grid.BaseCenter()
	r := s.Grid.CenterRadius()
	pos := core.Vec3{
		X: center.X + r*math.Cos(angle) + s.RNG.Range(0, 2),
		Y: s.Stats.Height,
		Z: center.Z + r*math.Sin(angle) + s.RNG.Range(0, 2),
	}

	id := SpawnAlien(w, pos, s.Stats)
	s.AlienCount++
	s.Spawned++
	if s.Bus != nil {
		s.Bus.Emit(core.Event{
			Type:    core.EvtAlienSpawned,
			Tick:    w.TickCount,
			Payload: core.AlienSpawned{Entity: id, Point: pos},
		})
	}
}
