package systems

import (
	"math"
	"testing"
	"time"

	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/grid"
)

func TestSpawnProbabilityClosedForm(t *testing.T) {
	tests := []struct {
		name      string
		t         time.Duration
		buildings int
		want      float64
	}{
		// 40s of match time shifts to 70s, i.e. x = 60: a wave boundary.
		{"wave boundary at 40s", 40 * time.Second, 0, 0},
		{"wave boundary at 100s", 100 * time.Second, 0, 0},
		// 0s shifts to 30s: x = 20.
		{"match start", 0, 0, math.Pow(20.0/60, 3) * 20 / 600},
		// 90s shifts to 120s: x = 110, phase 50.
		{"mid wave", 90 * time.Second, 0, math.Pow(50.0/60, 3) * 110 / 600},
		{"buildings raise odds", 90 * time.Second, 50, math.Pow(50.0/60, 3) * 110 / 600 * 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpawnProbability(tt.t, tt.buildings, 0)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSpawnProbabilityGraceWindow(t *testing.T) {
	st := DefaultSpawnTuning()
	st.Offset = 0
	for _, sec := range []float64{0, 1, 5, 9.99} {
		if p := st.Probability(core.Seconds(sec), 100, 100); p != 0 {
			t.Errorf("Expected 0 inside grace at %vs, got %v", sec, p)
		}
	}
	if p := st.Probability(30*time.Second, 0, 0); p <= 0 {
		t.Errorf("Expected positive odds after grace, got %v", p)
	}
}

func TestSpawnProbabilityIgnoresAlienCount(t *testing.T) {
	a := SpawnProbability(95*time.Second, 3, 0)
	b := SpawnProbability(95*time.Second, 3, 500)
	if a != b || a <= 0 {
		t.Errorf("Expected alien count to have no effect, got %v and %v", a, b)
	}
}

func TestSpawnProbabilityUnclamped(t *testing.T) {
	// Late in the match, just before a wave boundary, odds exceed 1.
	if p := SpawnProbability(20*time.Minute+39*time.Second, 200, 0); p <= 1 {
		t.Errorf("Expected unclamped probability above 1, got %v", p)
	}
}

func TestBearingRotation(t *testing.T) {
	rng := NewRNG(42)
	a := NewAlienSpawnAngle()
	if a.Angle != 0 || a.Deviation != 0.5 || a.Timer.Duration != 20*time.Second {
		t.Fatalf("Unexpected opening bearing: %+v", a)
	}
	if a.Tick(19*time.Second, rng) {
		t.Fatal("Expected no rotation before 20s")
	}
	for i := 0; i < 50; i++ {
		if !a.Tick(a.Timer.Remaining(), rng) {
			t.Fatalf("Expected rotation %d when the timer runs out", i)
		}
		if a.Angle < 0 || a.Angle >= 2*math.Pi {
			t.Errorf("Angle %v out of [0, 2pi)", a.Angle)
		}
		if a.Deviation < math.Pi/10 || a.Deviation >= math.Pi/5 {
			t.Errorf("Deviation %v out of [pi/10, pi/5)", a.Deviation)
		}
		if d := a.Timer.Duration; d < 20*time.Second || d >= 40*time.Second {
			t.Errorf("Period %v out of [20s, 40s)", d)
		}
	}
}

func TestSpawnerPlacesAliensOnRing(t *testing.T) {
	w := core.NewWorld()
	bus := core.NewEventBus()
	g := grid.New()
	clock := core.NewMatchClock()
	clock.Restart()
	sp := NewSpawnerSystem(g, clock, bus, NewRNG(7))
	// Guarantee a spawn every tick.
	sp.Tuning = SpawnTuning{Offset: 0, Grace: 0, WavePeriod: 2 * time.Second, RampHorizon: time.Nanosecond}
	clock.Tick(1)

	var spawned []core.AlienSpawned
	bus.On(core.EvtAlienSpawned, func(e core.Event) {
		spawned = append(spawned, e.Payload.(core.AlienSpawned))
	})

	g.Place(grid.Cell{Col: 2, Row: 2}, 99)
	w.AddSystem(sp)
	for i := 0; i < 20; i++ {
		w.Tick(0.05)
	}
	bus.Dispatch()

	if len(spawned) != 20 || sp.AlienCount != 20 || sp.Spawned != 20 {
		t.Fatalf("Expected 20 spawns, got %d events, count %d", len(spawned), sp.AlienCount)
	}
	center, r := g.BaseCenter(), g.CenterRadius()
	for _, s := range spawned {
		if !w.Has(s.Entity, core.CompAlien) {
			t.Errorf("Expected entity %d to be an alien", s.Entity)
		}
		// Ring distance plus at most sqrt(8) of jitter.
		d := s.Point.PlanarDistance(center)
		if d < r-math.Sqrt(8) || d > r+math.Sqrt(8) {
			t.Errorf("Spawn at distance %v, expected about %v", d, r)
		}
		if s.Point.Y != DefaultAlienStats.Height {
			t.Errorf("Expected spawn height %v, got %v", DefaultAlienStats.Height, s.Point.Y)
		}
	}
}

func TestSpawnerIdleDuringGrace(t *testing.T) {
	w := core.NewWorld()
	clock := core.NewMatchClock()
	clock.Restart()
	sp := NewSpawnerSystem(grid.New(), clock, nil, NewRNG(1))
	sp.Tuning.Offset = 0
	w.AddSystem(sp)
	for i := 0; i < 100; i++ {
		clock.Tick(0.05)
		w.Tick(0.05)
	}
	if sp.Spawned != 0 {
		t.Errorf("Expected no spawns in the grace window, got %d", sp.Spawned)
	}
}

func TestAlienDiedHookDecrements(t *testing.T) {
	w := core.NewWorld()
	sp := NewSpawnerSystem(grid.New(), core.NewMatchClock(), nil, NewRNG(1))
	id := SpawnAlien(w, core.Vec3{}, DefaultAlienStats)
	sp.AlienCount = 1
	building := w.Spawn(core.NewHealth(1), &core.Building{})

	sp.AlienDied(w, core.Died{Entity: building})
	if sp.AlienCount != 1 {
		t.Errorf("Expected building death to leave count, got %d", sp.AlienCount)
	}
	sp.AlienDied(w, core.Died{Entity: id})
	if sp.AlienCount != 0 {
		t.Errorf("Expected count 0, got %d", sp.AlienCount)
	}
}

func TestShouldSpawnIsInclusive(t *testing.T) {
	tests := []struct {
		name string
		u, p float64
		want bool
	}{
		{"below", 0.1, 0.2, true},
		{"equal", 0.2, 0.2, true},
		{"zero draw at zero probability", 0, 0, true},
		{"above", 0.3, 0.2, false},
		{"any positive draw at zero probability", 1e-9, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSpawn(tt.u, tt.p); got != tt.want {
				t.Errorf("shouldSpawn(%v, %v) = %v, want %v", tt.u, tt.p, got, tt.want)
			}
		})
	}
}

func TestSpawnedAlienUsesClaws(t *testing.T) {
	w := core.NewWorld()
	id := SpawnAlien(w, core.Vec3{}, DefaultAlienStats)
	dd := core.DamageOf(w, id)
	if dd == nil || dd.Weapon != core.WeaponClaws {
		t.Errorf("Expected alien to attack with claws, got %+v", dd)
	}
}
