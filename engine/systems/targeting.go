package systems

import (
	"math"

	"github.com/1siamBot/outpost/engine/core"
)

// TargetingSystem acquires and validates sticky targets. Buildings take the
// first live alien in range, in spawn order; aliens take the nearest live
// building anywhere on the board and close the distance themselves.
type TargetingSystem struct{}

func (s *TargetingSystem) Priority() int { return 20 }

func (s *TargetingSystem) Update(w *core.World, _ float64) {
	aliens := liveWith(w, core.CompAlien)
	buildings := liveWith(w, core.CompAlienTarget)

	for _, id := range w.Query(core.CompTargetSelecting, core.CompTransform) {
		if w.Has(id, core.CompCamera) {
			continue
		}
		if h := core.HealthOf(w, id); h != nil && !h.Alive() {
			continue
		}
		ts := core.TargetingOf(w, id)
		self := core.TransformOf(w, id)

		if !ts.HasTarget() {
			if w.Has(id, core.CompAlien) {
				ts.Target = nearest(w, self, buildings)
			} else {
				ts.Target = firstInRange(w, self, ts.Range, aliens)
			}
		}

		if ts.HasTarget() && !core.IsAlive(w, ts.Target) {
			ts.Clear()
			continue
		}

		if ts.HasTarget() {
			if tgt := core.TransformOf(w, ts.Target); tgt != nil {
				self.Facing = self.Translation.YawTo(tgt.Translation)
			}
		}
	}
}

// liveWith returns living entities carrying marker and a transform
func liveWith(w *core.World, marker core.ComponentType) []core.EntityID {
	var out []core.EntityID
	for _, id := range w.Query(marker, core.CompTransform, core.CompHealth) {
		if core.IsAlive(w, id) {
			out = append(out, id)
		}
	}
	return out
}

func firstInRange(w *core.World, self *core.Transform, rng float64, candidates []core.EntityID) core.EntityID {
	for _, c := range candidates {
		if self.DistanceTo(core.TransformOf(w, c)) <= rng {
			return c
		}
	}
	return core.NoEntity
}

func nearest(w *core.World, self *core.Transform, candidates []core.EntityID) core.EntityID {
	best := core.NoEntity
	bestDist := math.MaxFloat64
	for _, c := range candidates {
		if d := self.DistanceTo(core.TransformOf(w, c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
