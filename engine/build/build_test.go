package build

import (
	"errors"
	"testing"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
	"github.com/1siamBot/outpost/engine/grid"
)

func newBuilder(t *testing.T, grant economy.ResourceSet) *Builder {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return &Builder{
		World:   core.NewWorld(),
		Grid:    grid.New(),
		Economy: economy.NewWith(grant),
		Bus:     core.NewEventBus(),
		Catalog: cat,
	}
}

func collect(bus *core.EventBus, typ core.EventType) *[]core.Event {
	var got []core.Event
	bus.On(typ, func(e core.Event) { got = append(got, e) })
	return &got
}

func TestConstructSpendsAndBlocks(t *testing.T) {
	b := newBuilder(t, economy.Of(100, 0, 0))
	at := core.Vec3{X: 7, Z: 4}

	e, err := b.Construct("machine_gun_mk1", at)
	if err != nil {
		t.Fatalf("Expected construction to succeed, got %v", err)
	}
	if got := b.Economy.Holdings(); got != economy.Of(50, 0, 0) {
		t.Errorf("Expected Ore 50 left, got %v", got)
	}
	if !b.Grid.IsBlocked(at) {
		t.Error("Expected cell to be blocked")
	}
	if occ, _ := b.Grid.OccupantOf(at); occ != e {
		t.Errorf("Expected occupant %d, got %d", e, occ)
	}
	tf := core.TransformOf(b.World, e)
	if tf == nil || tf.Translation != grid.SnapToCellCenter(at) {
		t.Errorf("Expected building at the cell center, got %+v", tf)
	}
	if !b.World.Has(e, core.CompTargetSelecting) || !b.World.Has(e, core.CompDamageDealing) {
		t.Error("Expected a defensive building to carry weapons")
	}

	errs := collect(b.Bus, core.EvtConstructionError)
	_, err = b.Construct("machine_gun_mk1", at)
	if !errors.Is(err, ErrSpaceOccupied) {
		t.Fatalf("Expected ErrSpaceOccupied, got %v", err)
	}
	if got := b.Economy.Holdings(); got != economy.Of(50, 0, 0) {
		t.Errorf("Expected a rejected build to leave holdings, got %v", got)
	}
	b.Bus.Dispatch()
	if len(*errs) != 1 {
		t.Errorf("Expected one ConstructionError event, got %d", len(*errs))
	}
	if b.Built != 1 {
		t.Errorf("Expected 1 successful build, got %d", b.Built)
	}
}

func TestConstructInsufficientIsAtomic(t *testing.T) {
	b := newBuilder(t, economy.Of(99, 39, 3))
	before := b.World.EntityCount()

	_, err := b.Construct("laser_speeder", core.Vec3{X: 12})
	var bErr *Error
	if !errors.As(err, &bErr) || !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("Expected insufficient resources, got %v", err)
	}
	if bErr.Template != "laser_speeder" {
		t.Errorf("Expected template on the error, got %q", bErr.Template)
	}
	if err.Error() != "You don't have enough resources to construct this building." {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if b.Economy.Holdings() != economy.Of(99, 39, 3) {
		t.Error("Expected holdings unchanged")
	}
	if b.Grid.IsBlocked(core.Vec3{X: 12}) || b.World.EntityCount() != before {
		t.Error("Expected no entity or grid change")
	}
}

func TestOccupiedCheckedBeforeCost(t *testing.T) {
	b := newBuilder(t, economy.Of(25, 0, 0))
	if _, err := b.Construct("mine_tier1", core.Vec3{}); err != nil {
		t.Fatal(err)
	}
	// Broke and blocked: occupancy wins.
	_, err := b.Construct("crystallizer", core.Vec3{X: 1})
	if !errors.Is(err, ErrSpaceOccupied) {
		t.Errorf("Expected ErrSpaceOccupied first, got %v", err)
	}
}

func TestUnknownTemplate(t *testing.T) {
	b := newBuilder(t, economy.DefaultGrant)
	_, err := b.Construct("death_star", core.Vec3{})
	if err == nil {
		t.Fatal("Expected unknown template error")
	}
	var bErr *Error
	if errors.As(err, &bErr) {
		t.Error("Expected a plain error, not a player-facing rejection")
	}
}

func TestDemolishRefundsHalf(t *testing.T) {
	b := newBuilder(t, economy.Of(50, 0, 0))
	at := grid.Cell{Col: -3, Row: 2}.Center()
	died := collect(b.Bus, core.EvtDied)

	e, err := b.Construct("machine_gun_mk1", at)
	if err != nil {
		t.Fatal(err)
	}
	if b.Economy.Holdings() != (economy.ResourceSet{}) {
		t.Fatalf("Expected empty holdings, got %v", b.Economy.Holdings())
	}

	if err := b.DemolishAt(at); err != nil {
		t.Fatalf("Expected demolish to succeed, got %v", err)
	}
	if got := b.Economy.Holdings(); got != economy.Of(25, 0, 0) {
		t.Errorf("Expected Ore 25 refunded, got %v", got)
	}
	if b.Grid.IsBlocked(at) {
		t.Error("Expected cell unblocked at once")
	}
	b.Bus.Dispatch()
	if len(*died) != 1 {
		t.Fatalf("Expected one Died event, got %d", len(*died))
	}
	d := (*died)[0].Payload.(core.Died)
	if d.Entity != e || d.Killer != core.NoEntity {
		t.Errorf("Expected Died{%d, 0}, got %+v", e, d)
	}
}

func TestDemolishMainBaseIsProtected(t *testing.T) {
	b := newBuilder(t, economy.DefaultGrant)
	base, err := b.SpawnMainBase()
	if err != nil {
		t.Fatal(err)
	}
	if !b.World.Has(base, core.CompMainBase) {
		t.Fatal("Expected main base marker")
	}
	if b.Economy.Holdings() != economy.DefaultGrant {
		t.Error("Expected the main base to be free")
	}
	died := collect(b.Bus, core.EvtDied)

	err = b.DemolishAt(core.Vec3{})
	if !errors.Is(err, ErrProtectedEntity) {
		t.Fatalf("Expected ErrProtectedEntity, got %v", err)
	}
	b.Bus.Dispatch()
	if len(*died) != 0 {
		t.Error("Expected no Died for a protected entity")
	}
	if !b.Grid.IsBlocked(core.Vec3{}) {
		t.Error("Expected base cell to stay blocked")
	}
}

func TestDemolishNothing(t *testing.T) {
	b := newBuilder(t, economy.DefaultGrant)
	if err := b.DemolishAt(core.Vec3{X: 30, Z: 30}); !errors.Is(err, ErrNothingToDemolish) {
		t.Errorf("Expected ErrNothingToDemolish on an empty cell, got %v", err)
	}

	e, err := b.Construct("mine_tier1", core.Vec3{X: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Demolish(e); err != nil {
		t.Fatal(err)
	}
	holdings := b.Economy.Holdings()
	if err := b.Demolish(e); !errors.Is(err, ErrNothingToDemolish) {
		t.Errorf("Expected a dying building to be undemolishable, got %v", err)
	}
	if b.Economy.Holdings() != holdings {
		t.Error("Expected no second refund")
	}
}

func TestGeneratorGetsTimer(t *testing.T) {
	b := newBuilder(t, economy.Of(100, 50, 0))
	e, err := b.Construct("mine_tier2", core.Vec3{X: -6})
	if err != nil {
		t.Fatal(err)
	}
	gen, ok := b.World.Get(e, core.CompGenerator).(*core.ResourceGenerator)
	if !ok {
		t.Fatal("Expected a resource generator")
	}
	if gen.Kind != economy.Ore || gen.Amount != 1 || gen.Timer.Mode != core.TimerRepeating {
		t.Errorf("Unexpected generator %+v", gen)
	}
	if b.World.Has(e, core.CompDamageDealing) {
		t.Error("Expected a mine to be unarmed")
	}
	if p := b.World.Get(e, core.CompAlienTarget).(*core.AlienTarget).Priority; p != catalog.DefaultTargetPriority {
		t.Errorf("Expected priority %d, got %d", catalog.DefaultTargetPriority, p)
	}
}

func TestConstructTemplateChargesAllButMainBase(t *testing.T) {
	b := newBuilder(t, economy.Of(0, 0, 0))

	if _, err := b.ConstructTemplate(b.Catalog.MainBase(), core.Vec3{}); err != nil {
		t.Fatalf("Expected the main base to be free, got %v", err)
	}
	mine, _ := b.Catalog.Get("mine_tier1")
	_, err := b.ConstructTemplate(mine, core.Vec3{X: 9})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Errorf("Expected ErrInsufficientResources, got %v", err)
	}
	if b.Built != 0 {
		t.Errorf("Expected no player constructions counted, got %d", b.Built)
	}
}

func TestDoubleDemolishBeforeDispatchRefundsOnce(t *testing.T) {
	b := newBuilder(t, economy.Of(50, 0, 0))
	e, err := b.Construct("machine_gun_mk1", core.Vec3{X: 6})
	if err != nil {
		t.Fatal(err)
	}
	died := collect(b.Bus, core.EvtDied)
	errs := collect(b.Bus, core.EvtConstructionError)

	if err := b.Demolish(e); err != nil {
		t.Fatalf("Expected first demolish to succeed, got %v", err)
	}
	if err := b.Demolish(e); !errors.Is(err, ErrNothingToDemolish) {
		t.Errorf("Expected ErrNothingToDemolish, got %v", err)
	}
	b.Bus.Dispatch()

	if got := b.Economy.Holdings(); got != economy.Of(25, 0, 0) {
		t.Errorf("Expected a single refund to Ore 25, got %v", got)
	}
	if len(*died) != 1 {
		t.Errorf("Expected one Died event, got %d", len(*died))
	}
	if len(*errs) != 1 {
		t.Errorf("Expected one ConstructionError, got %d", len(*errs))
	}
}
