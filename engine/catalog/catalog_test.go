package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Expected built-in catalog to load, got %v", err)
	}
	if got := len(c.All()); got != 8 {
		t.Errorf("Expected 8 templates, got %d", got)
	}

	mg, ok := c.Get("machine_gun_mk1")
	if !ok {
		t.Fatal("Expected machine_gun_mk1 in catalog")
	}
	if mg.Cost != economy.Of(50, 0, 0) {
		t.Errorf("Expected cost Ore 50, got %v", mg.Cost)
	}
	if mg.Category != Defensive || mg.Defensive == nil {
		t.Fatal("Expected machine gun to be defensive")
	}
	if mg.Defensive.Range != 8 || mg.Defensive.Damage != 30 || mg.Defensive.Cooldown != 100*time.Millisecond {
		t.Errorf("Unexpected machine gun stats: %+v", *mg.Defensive)
	}
	if mg.TargetPriority != DefensiveTargetPriority {
		t.Errorf("Expected defensive priority %d, got %d", DefensiveTargetPriority, mg.TargetPriority)
	}

	laser, _ := c.Get("laser_speeder")
	if laser.Defensive.Weapon != core.WeaponLaser || laser.Cost != economy.Of(100, 40, 3) {
		t.Errorf("Unexpected laser template: %+v", laser)
	}

	gas, _ := c.Get("gas_collector")
	if gas.Generator == nil || gas.Generator.Kind != economy.Gas || gas.Generator.Period != 5*time.Second {
		t.Errorf("Unexpected gas collector: %+v", gas.Generator)
	}
	if gas.TargetPriority != DefaultTargetPriority {
		t.Errorf("Expected default priority, got %d", gas.TargetPriority)
	}
}

func TestMainBaseHiddenFromMenu(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	base := c.MainBase()
	if base == nil || !base.MainBase {
		t.Fatal("Expected a main base template")
	}
	for _, cat := range []Category{Generator, Defensive} {
		for _, tpl := range c.Menu(cat) {
			if tpl.MainBase {
				t.Errorf("Main base listed in %s menu", cat)
			}
			if tpl.Category != cat {
				t.Errorf("Template %s listed under %s", tpl.ID, cat)
			}
		}
	}
	if n := len(c.Menu(Defensive)); n != 3 {
		t.Errorf("Expected 3 defensive entries, got %d", n)
	}
	if n := len(c.Menu(Generator)); n != 4 {
		t.Errorf("Expected 4 generator entries, got %d", n)
	}
}

func TestParseRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"bad json", `{`, "unmarshal"},
		{"no main base", `[{"id":"a","hp":1,"category":"generator","generator":{"kind":"ore","amount":1,"period_ms":10}}]`, "exactly one main base"},
		{"unknown weapon", `[{"id":"a","hp":1,"category":"defensive","defensive":{"damage":1,"cooldown_ms":1,"range":1,"weapon":"railgun"}}]`, "unknown weapon"},
		{"unknown kind", `[{"id":"a","hp":1,"category":"generator","generator":{"kind":"gold","amount":1,"period_ms":10}}]`, "unknown resource"},
		{"zero hp", `[{"id":"a","hp":0,"category":"generator"}]`, "hp must be positive"},
		{"duplicate", `[{"id":"a","hp":1,"main_base":true,"category":"generator","generator":{"kind":"ore","amount":1,"period_ms":10}},{"id":"a","hp":1,"category":"generator","generator":{"kind":"ore","amount":1,"period_ms":10}}]`, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestFingerprintFollowsSource(t *testing.T) {
	a, _ := Load()
	b, _ := Load()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Expected identical sources to share a fingerprint")
	}
	alt, err := Parse([]byte(`[{"id":"hq","hp":9,"main_base":true,"category":"generator","generator":{"kind":"ore","amount":1,"period_ms":10}}]`))
	if err != nil {
		t.Fatal(err)
	}
	if alt.Fingerprint() == a.Fingerprint() {
		t.Error("Expected different sources to differ")
	}
}
