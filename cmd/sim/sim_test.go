package main

import (
	"os"
	"testing"
	"time"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/config"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/grid"
	"github.com/1siamBot/outpost/engine/match"
	"github.com/1siamBot/outpost/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Silence()
	os.Exit(m.Run())
}

func TestSpiralRings(t *testing.T) {
	cells := spiral(2)
	if len(cells) != 24 {
		t.Fatalf("Expected 24 cells in two rings, got %d", len(cells))
	}
	seen := make(map[grid.Cell]bool)
	for i, c := range cells {
		if c == (grid.Cell{}) {
			t.Error("Expected the base cell to be skipped")
		}
		if seen[c] {
			t.Errorf("Duplicate cell %v", c)
		}
		seen[c] = true
		ring := max(abs(c.Col), abs(c.Row))
		if want := 1 + i/8; i < 8 && ring != want {
			t.Errorf("Expected cell %d in ring %d, got %v", i, want, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.TickRate = 20
	cfg.WinAfter = config.Duration(30 * time.Second)
	return cfg
}

func TestBotBuildsAndReplays(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}

	m := match.New(testConfig(), cat)
	if err := m.StartMatch(); err != nil {
		t.Fatal(err)
	}
	played := simulate(m, newAutoplayer(cat, m.Config.TickRate))
	if played.Outcome != core.StateVictory {
		t.Fatalf("Expected the bot to survive 30s, got %s", played.Outcome)
	}
	if played.Built < 3 {
		t.Errorf("Expected at least 3 buildings, got %d", played.Built)
	}

	replay := match.New(testConfig(), cat)
	if err := replay.Replay(m.Journal); err != nil {
		t.Fatal(err)
	}
	got := simulate(replay, nil)
	if got.Built != played.Built || got.Holdings != played.Holdings || got.Ticks != played.Ticks {
		t.Errorf("Replay diverged: played %+v, replayed %+v", played, got)
	}
	if got.AliensSpawned != played.AliensSpawned {
		t.Errorf("Expected %d aliens in the replay, got %d", played.AliensSpawned, got.AliensSpawned)
	}
}
