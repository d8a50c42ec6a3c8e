// Package config holds the game's tunables. Defaults are overridden by an
// optional JSON file and then by command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/1siamBot/outpost/engine/economy"
)

// Duration is a time.Duration that reads "90s"-style strings or a plain
// number of seconds from JSON.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	secs, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("duration %s: want a string like \"30s\" or seconds", b)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

// Window is the initial window size in pixels
type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// Spawn shapes the alien arrival probability curve
type Spawn struct {
	Offset      Duration `json:"offset"`
	Grace       Duration `json:"grace"`
	WavePeriod  Duration `json:"wave_period"`
	RampHorizon Duration `json:"ramp_horizon"`
}

// Resources is the opening grant
type Resources struct {
	Ore     uint16 `json:"ore"`
	Gas     uint16 `json:"gas"`
	Crystal uint16 `json:"crystal"`
}

func (r Resources) Set() economy.ResourceSet {
	return economy.Of(r.Ore, r.Gas, r.Crystal)
}

// Config is the full set of tunables
type Config struct {
	TickRate   float64   `json:"tick_rate"`
	InputDelay uint64    `json:"input_delay"` // ticks between a click and its effect
	Seed       int64     `json:"seed"`        // 0 picks a time-based seed
	WinAfter   Duration  `json:"win_after"`
	Window     Window    `json:"window"`
	Spawn      Spawn     `json:"spawn"`
	Resources  Resources `json:"resources"`
	Volume     float64   `json:"volume"`
	Catalog    string    `json:"catalog"` // optional catalog override file
	Journal    string    `json:"journal"` // record the match here when set
	LogLevel   string    `json:"log_level"`
	LogFormat  string    `json:"log_format"`
}

// Default returns the stock configuration
func Default() *Config {
	grant := economy.DefaultGrant
	return &Config{
		TickRate:   60,
		InputDelay: 1,
		WinAfter:   Duration(15 * time.Minute),
		Window:     Window{Width: 1280, Height: 720, Title: "Outpost"},
		Spawn: Spawn{
			Offset:      Duration(30 * time.Second),
			Grace:       Duration(10 * time.Second),
			WavePeriod:  Duration(60 * time.Second),
			RampHorizon: Duration(600 * time.Second),
		},
		Resources: Resources{
			Ore:     grant.Get(economy.Ore),
			Gas:     grant.Get(economy.Gas),
			Crystal: grant.Get(economy.Crystal),
		},
		Volume:    0.8,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a JSON file over the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %v", ErrInvalid, c.TickRate)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.WinAfter <= 0:
		return fmt.Errorf("%w: win_after must be positive", ErrInvalid)
	case c.Spawn.WavePeriod <= 0 || c.Spawn.RampHorizon <= 0:
		return fmt.Errorf("%w: spawn wave_period and ramp_horizon must be positive", ErrInvalid)
	case c.Spawn.Offset < 0 || c.Spawn.Grace < 0:
		return fmt.Errorf("%w: spawn offset and grace cannot be negative", ErrInvalid)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume must be within [0, 1], got %v", ErrInvalid, c.Volume)
	}
	return nil
}
