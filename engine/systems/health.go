package systems

import (
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/grid"
)

// DeathHook runs once per entity, on the first Died event delivered for it
type DeathHook func(w *core.World, d core.Died)

// HealthSystem is the death ledger. It starts the grace timer on the first
// Died event for an entity and despawns the entity once the timer runs out.
type HealthSystem struct {
	Grid  *grid.BuildGrid
	world *core.World
	hooks []DeathHook
}

// NewHealthSystem subscribes the ledger to Died events on bus
func NewHealthSystem(w *core.World, g *grid.BuildGrid, bus *core.EventBus) *HealthSystem {
	s := &HealthSystem{Grid: g, world: w}
	bus.On(core.EvtDied, s.onDied)
	return s
}

func (s *HealthSystem) Priority() int { return 40 }

// OnDeath registers a side effect that must run at most once per death
func (s *HealthSystem) OnDeath(h DeathHook) {
	s.hooks = append(s.hooks, h)
}

func (s *HealthSystem) Update(w *core.World, dt float64) {
	step := core.Seconds(dt)
	for _, id := range w.Query(core.CompHealth) {
		h := core.HealthOf(w, id)
		if h.Grace.Tick(step) > 0 {
			s.despawn(w, id)
		}
	}
}

// despawn frees the entity's grid cell if it still holds it, then removes
// the entity at the end of the tick.
func (s *HealthSystem) despawn(w *core.World, id core.EntityID) {
	if w.Has(id, core.CompBuilding) && s.Grid != nil {
		if tf := core.TransformOf(w, id); tf != nil {
			if occ, ok := s.Grid.OccupantOf(tf.Translation); ok && occ == id {
				s.Grid.Remove(tf.Translation)
			}
		}
	}
	w.Destroy(id)
}

func (s *HealthSystem) onDied(e core.Event) {
	d, ok := e.Payload.(core.Died)
	if !ok {
		return
	}
	h := core.HealthOf(s.world, d.Entity)
	if h == nil || h.DeathNotified {
		return
	}
	h.DeathNotified = true
	h.Grace.Reset()
	h.Grace.Unpause()
	if v := core.VelocityOf(s.world, d.Entity); v != nil {
		v.Linear = core.Vec3{}
	}
	for _, hook := range s.hooks {
		hook(s.world, d)
	}
}

// ApplyDamage subtracts amount from the target's hit points. It emits Died
// and returns true only when this hit takes the target from alive to
// hp <= 0. Missing targets are ignored.
func ApplyDamage(w *core.World, bus *core.EventBus, target, attacker core.EntityID, amount int) bool {
	h := core.HealthOf(w, target)
	if h == nil {
		return false
	}
	wasAlive := h.HP > 0
	h.HP -= amount
	if !wasAlive || h.HP > 0 {
		return false
	}
	if bus != nil {
		bus.Emit(core.Event{
			Type:    core.EvtDied,
			Tick:    w.TickCount,
			Payload: core.Died{Entity: target, Killer: attacker},
		})
	}
	return true
}
