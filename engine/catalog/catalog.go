// Package catalog holds the immutable building templates
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
	"lukechampine.com/blake3"
)

//go:embed catalog.json
var builtin []byte

// Category splits buildings into producers and turrets
type Category uint8

const (
	Generator Category = iota
	Defensive
)

func (c Category) String() string {
	if c == Defensive {
		return "defensive"
	}
	return "generator"
}

// DefaultTargetPriority is the alien-target priority of non-defensive
// buildings; defensive ones use DefensiveTargetPriority.
const (
	DefaultTargetPriority   = 1
	DefensiveTargetPriority = 5
)

// GeneratorStats describe a resource producer
type GeneratorStats struct {
	Kind   economy.Kind
	Amount uint16
	Period time.Duration
}

// DefensiveStats describe a turret
type DefensiveStats struct {
	Damage   int
	Cooldown time.Duration
	Range    float64
	Weapon   core.WeaponType
}

// Visual references are opaque to the simulation and read by the renderer
type Visual struct {
	Model string  `json:"model"`
	Color string  `json:"color"`
	Scale float64 `json:"scale"`
}

// Template is one buildable structure. Templates are never mutated after
// loading; construction copies their stats into components.
type Template struct {
	ID             string
	Name           string
	Description    string
	HP             int
	Cost           economy.ResourceSet
	Category       Category
	Generator      *GeneratorStats
	Defensive      *DefensiveStats
	TargetPriority int
	MainBase       bool
	ShowInMenu     bool
	Visual         Visual
}

// Catalog is the ordered, read-only set of templates
type Catalog struct {
	templates []*Template
	byID      map[string]*Template
	digest    [32]byte
}

type costDef struct {
	Ore     uint16 `json:"ore"`
	Gas     uint16 `json:"gas"`
	Crystal uint16 `json:"crystal"`
}

type generatorDef struct {
	Kind     string `json:"kind"`
	Amount   uint16 `json:"amount"`
	PeriodMs int    `json:"period_ms"`
}

type defensiveDef struct {
	Damage     int     `json:"damage"`
	CooldownMs int     `json:"cooldown_ms"`
	Range      float64 `json:"range"`
	Weapon     string  `json:"weapon"`
}

type templateDef struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	HP          int           `json:"hp"`
	Cost        costDef       `json:"cost"`
	Category    string        `json:"category"`
	Generator   *generatorDef `json:"generator"`
	Defensive   *defensiveDef `json:"defensive"`
	MainBase    bool          `json:"main_base"`
	Menu        bool          `json:"menu"`
	Visual      Visual        `json:"visual"`
}

// Load parses the built-in catalog
func Load() (*Catalog, error) {
	return Parse(builtin)
}

// LoadFile reads a catalog from disk, e.g. a modded building list
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON template list
func Parse(data []byte) (*Catalog, error) {
	var defs []templateDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	c := &Catalog{
		byID:   make(map[string]*Template, len(defs)),
		digest: blake3.Sum256(data),
	}
	mainBases := 0
	for i, d := range defs {
		t, err := d.template()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, d.ID, err)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, t.ID)
		}
		if t.MainBase {
			mainBases++
		}
		c.templates = append(c.templates, t)
		c.byID[t.ID] = t
	}
	if mainBases != 1 {
		return nil, fmt.Errorf("catalog must define exactly one main base, found %d", mainBases)
	}
	return c, nil
}

func (d templateDef) template() (*Template, error) {
	if d.ID == "" {
		return nil, errors.New("missing id")
	}
	if d.HP <= 0 {
		return nil, fmt.Errorf("hp must be positive, got %d", d.HP)
	}
	t := &Template{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		HP:             d.HP,
		Cost:           economy.Of(d.Cost.Ore, d.Cost.Gas, d.Cost.Crystal),
		TargetPriority: DefaultTargetPriority,
		MainBase:       d.MainBase,
		ShowInMenu:     d.Menu,
		Visual:         d.Visual,
	}
	if t.Name == "" {
		t.Name = d.ID
	}

	switch d.Category {
	case "generator":
		if d.Generator == nil {
			return nil, errors.New("generator stats missing")
		}
		kind, err := economy.ParseKind(d.Generator.Kind)
		if err != nil {
			return nil, err
		}
		if d.Generator.PeriodMs <= 0 {
			return nil, fmt.Errorf("generator period must be positive, got %d", d.Generator.PeriodMs)
		}
		t.Category = Generator
		t.Generator = &GeneratorStats{
			Kind:   kind,
			Amount: d.Generator.Amount,
			Period: time.Duration(d.Generator.PeriodMs) * time.Millisecond,
		}
	case "defensive":
		if d.Defensive == nil {
			return nil, errors.New("defensive stats missing")
		}
		weapon, err := core.ParseWeaponType(d.Defensive.Weapon)
		if err != nil {
			return nil, err
		}
		if d.Defensive.Range <= 0 || d.Defensive.CooldownMs <= 0 {
			return nil, errors.New("range and cooldown must be positive")
		}
		t.Category = Defensive
		t.TargetPriority = DefensiveTargetPriority
		t.Defensive = &DefensiveStats{
			Damage:   d.Defensive.Damage,
			Cooldown: time.Duration(d.Defensive.CooldownMs) * time.Millisecond,
			Range:    d.Defensive.Range,
			Weapon:   weapon,
		}
	default:
		return nil, fmt.Errorf("unknown category %q", d.Category)
	}
	return t, nil
}

// Get looks a template up by id
func (c *Catalog) Get(id string) (*Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// All returns templates in declaration order
func (c *Catalog) All() []*Template {
	out := make([]*Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Menu returns the player-buildable templates of one category
func (c *Catalog) Menu(cat Category) []*Template {
	var out []*Template
	for _, t := range c.templates {
		if t.ShowInMenu && t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// MainBase returns the template of the match's command post
func (c *Catalog) MainBase() *Template {
	for _, t := range c.templates {
		if t.MainBase {
			return t
		}
	}
	return nil
}

// Fingerprint is a digest of the catalog source. Replays record it so they
// are only played back against the same building stats.
func (c *Catalog) Fingerprint() [32]byte {
	return c.digest
}
