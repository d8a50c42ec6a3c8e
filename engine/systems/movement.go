package systems

import (
	"github.com/1siamBot/outpost/engine/core"
)

// AlienSteeringSystem points every alien at its target building each tick.
// Aliens stop once the target is inside their attack range; the physics
// collaborator would otherwise hold them against the building.
type AlienSteeringSystem struct{}

func (s *AlienSteeringSystem) Priority() int { return 25 }

func (s *AlienSteeringSystem) Update(w *core.World, _ float64) {
	for _, id := range w.Query(core.CompAlien, core.CompVelocity, core.CompTransform, core.CompTargetSelecting) {
		vel := core.VelocityOf(w, id)
		vel.Linear = core.Vec3{}

		if !core.IsAlive(w, id) {
			continue
		}
		ts := core.TargetingOf(w, id)
		if !ts.HasTarget() {
			continue
		}
		tgt := core.TransformOf(w, ts.Target)
		if tgt == nil {
			continue
		}
		pos := core.TransformOf(w, id)
		if pos.DistanceTo(tgt) <= ts.Range {
			continue
		}
		alien := w.Get(id, core.CompAlien).(*core.Alien)
		vel.Linear = pos.Translation.PlanarDir(tgt.Translation).Scale(alien.Speed)
	}
}

// MovementSystem integrates velocities into positions
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 35 }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompVelocity, core.CompTransform) {
		v := core.VelocityOf(w, id)
		if v.Linear == (core.Vec3{}) {
			continue
		}
		pos := core.TransformOf(w, id)
		pos.Translation = pos.Translation.Add(v.Linear.Scale(dt))
	}
}
