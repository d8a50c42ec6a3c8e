package main

import (
	"errors"
	"flag"
	"os"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/config"
	"github.com/1siamBot/outpost/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	seed := flag.Int64("seed", 0, "RNG seed, 0 for time-based")
	record := flag.String("record", "", "save each match's command journal to this file")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	assets := flag.String("assets", "", "sprite directory")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("load config")
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *record != "" {
		cfg.Journal = *record
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		logger.Log.WithError(err).Fatal("load catalog")
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game := NewGame(cfg, cat, *assets)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.WithError(err).Error("game exited")
		os.Exit(1)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Load()
	}
	return catalog.LoadFile(path)
}
