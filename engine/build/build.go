// Package build places and demolishes buildings. It is the only writer of
// the build grid and the only spender of the economy.
package build

import (
	"fmt"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
	"github.com/1siamBot/outpost/engine/grid"
	"github.com/1siamBot/outpost/pkg/logger"
	"github.com/sirupsen/logrus"
)

// BuildingCollider is the footprint radius handed to physics
const BuildingCollider = 1.2

// Builder runs construct and demolish against one match's state
type Builder struct {
	World   *core.World
	Grid    *grid.BuildGrid
	Economy *economy.Economy
	Bus     *core.EventBus
	Catalog *catalog.Catalog

	// Built counts successful player constructions
	Built int
}

// Construct builds template id at the cell containing p. It either fully
// succeeds or returns a *Error without touching any state.
func (b *Builder) Construct(id string, p core.Vec3) (core.EntityID, error) {
	t, ok := b.Catalog.Get(id)
	if !ok {
		return core.NoEntity, fmt.Errorf("unknown building template %q", id)
	}
	e, err := b.place(t, p, true)
	if err == nil {
		b.Built++
	}
	return e, err
}

// SpawnMainBase places the catalog's main base at the origin free of charge
func (b *Builder) SpawnMainBase() (core.EntityID, error) {
	t := b.Catalog.MainBase()
	if t == nil {
		return core.NoEntity, fmt.Errorf("catalog has no main base")
	}
	return b.ConstructTemplate(t, core.Vec3{})
}

// ConstructTemplate places t at p. The main base is placed without paying
// for it; every other template goes through the normal cost check.
func (b *Builder) ConstructTemplate(t *catalog.Template, p core.Vec3) (core.EntityID, error) {
	return b.place(t, p, !t.MainBase)
}

func (b *Builder) place(t *catalog.Template, p core.Vec3, pay bool) (core.EntityID, error) {
	cell := grid.CellOf(p)
	if b.Grid.IsBlocked(p) {
		return core.NoEntity, b.reject(&Error{Kind: ErrSpaceOccupied, Template: t.ID})
	}
	if pay && !b.Economy.CanAfford(t.Cost) {
		return core.NoEntity, b.reject(&Error{Kind: ErrInsufficientResources, Template: t.ID})
	}

	paid := economy.ResourceSet{}
	if pay {
		b.Economy.Spend(t.Cost)
		paid = t.Cost
	}

	e := b.World.Spawn(
		&core.Transform{Translation: cell.Center()},
		core.NewHealth(t.HP),
		&core.Collider{Radius: BuildingCollider},
		&core.Building{Template: t.ID, Cost: paid},
		&core.AlienTarget{Priority: t.TargetPriority},
	)
	if t.Defensive != nil {
		b.World.Attach(e, &core.TargetSelecting{Range: t.Defensive.Range})
		b.World.Attach(e, core.NewDamageDealing(t.Defensive.Damage, t.Defensive.Cooldown, t.Defensive.Weapon))
	}
	if t.Generator != nil {
		b.World.Attach(e, &core.ResourceGenerator{
			Kind:   t.Generator.Kind,
			Amount: t.Generator.Amount,
			Timer:  core.NewTimer(t.Generator.Period, core.TimerRepeating),
		})
	}
	if t.MainBase {
		b.World.Attach(e, &core.MainBase{})
	}
	b.Grid.Place(cell, e)

	logger.Log.WithFields(logrus.Fields{
		"entity":   e,
		"template": t.ID,
		"col":      cell.Col,
		"row":      cell.Row,
		"cost":     paid.String(),
	}).Debug("building constructed")
	return e, nil
}

// Demolish refunds half of what the building cost, frees its cell and
// raises Died so the usual death pipeline despawns it.
func (b *Builder) Demolish(e core.EntityID) error {
	if b.World.Has(e, core.CompMainBase) {
		return b.reject(&Error{Kind: ErrProtectedEntity})
	}
	bld := core.BuildingOf(b.World, e)
	tf := core.TransformOf(b.World, e)
	if bld == nil || tf == nil || !core.IsAlive(b.World, e) {
		return b.reject(&Error{Kind: ErrNothingToDemolish})
	}
	// A demolished building gives up its cell immediately, before Died is
	// dispatched, so the cell is the latch against a second demolish.
	if occ, ok := b.Grid.OccupantOf(tf.Translation); !ok || occ != e {
		return b.reject(&Error{Kind: ErrNothingToDemolish})
	}

	refund := b.Economy.Refund(bld.Cost)
	b.Grid.Remove(tf.Translation)
	b.Bus.Emit(core.Event{
		Type:    core.EvtDied,
		Tick:    b.World.TickCount,
		Payload: core.Died{Entity: e},
	})

	logger.Log.WithFields(logrus.Fields{
		"entity":   e,
		"template": bld.Template,
		"refund":   refund.String(),
	}).Debug("building demolished")
	return nil
}

// DemolishAt demolishes whatever occupies the cell containing p
func (b *Builder) DemolishAt(p core.Vec3) error {
	e, ok := b.Grid.OccupantOf(p)
	if !ok {
		return b.reject(&Error{Kind: ErrNothingToDemolish})
	}
	return b.Demolish(e)
}

func (b *Builder) reject(err *Error) error {
	b.Bus.Emit(core.Event{
		Type:    core.EvtConstructionError,
		Tick:    b.World.TickCount,
		Payload: core.ConstructionError{Err: err},
	})
	logger.Log.WithField("reason", err.Kind).Debug("player action rejected")
	return err
}
