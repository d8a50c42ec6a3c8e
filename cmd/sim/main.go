// Command sim runs matches without a window: it either replays a recorded
// journal or lets a simple build-order bot play, then logs the scoreboard.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/command"
	"github.com/1siamBot/outpost/engine/config"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/match"
	"github.com/1siamBot/outpost/pkg/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	journal := flag.String("replay", "", "journal to replay instead of playing")
	record := flag.String("record", "", "save the bot's journal to this file")
	seed := flag.Int64("seed", 0, "RNG seed, 0 for time-based")
	duration := flag.Duration("duration", 0, "override the extraction time")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	flag.Parse()

	if err := run(*configPath, *journal, *record, *seed, *duration, *logLevel); err != nil {
		logger.Log.WithError(err).Error("sim failed")
		os.Exit(1)
	}
}

func run(configPath, journalPath, record string, seed int64, duration time.Duration, logLevel string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if duration > 0 {
		cfg.WinAfter = config.Duration(duration)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	cat, err := catalog.Load()
	if cfg.Catalog != "" {
		cat, err = catalog.LoadFile(cfg.Catalog)
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	m := match.New(cfg, cat)
	var bot *autoplayer
	if journalPath != "" {
		j, err := command.Load(journalPath)
		if err != nil {
			return err
		}
		cfg.TickRate = j.Header.TickRate
		if err := m.Replay(j); err != nil {
			return fmt.Errorf("replay %s: %w", journalPath, err)
		}
	} else {
		if err := m.StartMatch(); err != nil {
			return err
		}
		bot = newAutoplayer(cat, cfg.TickRate)
	}

	summary := simulate(m, bot)

	if record != "" && bot != nil {
		if err := m.Journal.Save(record); err != nil {
			return fmt.Errorf("save journal: %w", err)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"match_id":       summary.MatchID.String(),
		"outcome":        summary.Outcome.String(),
		"elapsed":        summary.Elapsed.String(),
		"ticks":          summary.Ticks,
		"aliens_killed":  summary.AliensKilled,
		"aliens_spawned": summary.AliensSpawned,
		"built":          summary.Built,
		"buildings_lost": summary.BuildingsLost,
		"holdings":       summary.Holdings.String(),
	}).Info("simulation finished")
	return nil
}

// simulate steps the match until it ends
func simulate(m *match.Match, bot *autoplayer) *match.Summary {
	dt := 1 / m.Config.TickRate
	for !m.State().Terminal() {
		if bot != nil {
			bot.step(m)
		}
		m.Step(dt)
	}
	return m.Summary
}

var _ core.Stepper = (*match.Match)(nil)
