package systems

import (
	"github.com/1siamBot/outpost/engine/core"
)

// CombatSystem ticks weapon cooldowns and applies damage each time a
// cooldown completes with a target inside range.
type CombatSystem struct {
	EventBus *core.EventBus

	// Kills counts targets finished off by this system
	Kills int
}

func (s *CombatSystem) Priority() int { return 30 }

func (s *CombatSystem) Update(w *core.World, dt float64) {
	step := core.Seconds(dt)
	for _, aid := range w.Query(core.CompDamageDealing, core.CompTargetSelecting, core.CompTransform) {
		if h := core.HealthOf(w, aid); h != nil && !h.Alive() {
			continue
		}
		dd := core.DamageOf(w, aid)
		ts := core.TargetingOf(w, aid)
		apos := core.TransformOf(w, aid)

		fires := dd.Cooldown.Tick(step)
		for i := 0; i < fires && ts.HasTarget(); i++ {
			if !core.IsAlive(w, ts.Target) {
				ts.Clear()
				break
			}
			tpos := core.TransformOf(w, ts.Target)
			// Range is re-checked at fire time; a target that walked out
			// of range is kept but not hit.
			if tpos == nil || apos.DistanceTo(tpos) > ts.Range {
				break
			}

			if s.EventBus != nil {
				s.EventBus.Emit(core.Event{
					Type: core.EvtGunFired,
					Tick: w.TickCount,
					Payload: core.GunFired{
						Shooter:   aid,
						Transform: *apos,
						Weapon:    dd.Weapon,
					},
				})
			}

			if ApplyDamage(w, s.EventBus, ts.Target, aid, dd.Damage) {
				ts.Clear()
				s.Kills++
			}
		}
	}
}
