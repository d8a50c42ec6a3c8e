package systems

import (
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/economy"
)

// GenerationSystem credits the economy from resource buildings
type GenerationSystem struct {
	Economy *economy.Economy
}

func (s *GenerationSystem) Priority() int { return 50 }

func (s *GenerationSystem) Update(w *core.World, dt float64) {
	step := core.Seconds(dt)
	for _, id := range w.Query(core.CompGenerator) {
		if h := core.HealthOf(w, id); h != nil && !h.Alive() {
			continue
		}
		gen := w.Get(id, core.CompGenerator).(*core.ResourceGenerator)
		for n := gen.Timer.Tick(step); n > 0; n-- {
			s.Economy.Credit(gen.Amount, gen.Kind)
		}
	}
}
