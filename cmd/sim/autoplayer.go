package main

import (
	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/command"
	"github.com/1siamBot/outpost/engine/grid"
	"github.com/1siamBot/outpost/engine/match"
	"github.com/1siamBot/outpost/pkg/logger"
)

// buildOrder is what the bot tries to build, in a loop
var buildOrder = []string{
	"mine_tier1",
	"machine_gun_mk1",
	"mine_tier1",
	"gas_collector",
	"machine_gun_mk1",
	"mine_tier2",
	"machine_gun_mk2",
	"crystallizer",
	"laser_speeder",
}

// autoplayer places the next building of its order on the nearest free
// cell around the base whenever it can afford it.
type autoplayer struct {
	catalog  *catalog.Catalog
	order    []string
	next     int
	interval uint64
	cells    []grid.Cell
}

func newAutoplayer(cat *catalog.Catalog, tickRate float64) *autoplayer {
	return &autoplayer{
		catalog:  cat,
		order:    buildOrder,
		interval: uint64(tickRate),
		cells:    spiral(6),
	}
}

func (a *autoplayer) step(m *match.Match) {
	if a.interval == 0 || m.Tick()%a.interval != 0 {
		return
	}
	tpl, ok := a.catalog.Get(a.order[a.next%len(a.order)])
	if !ok || !m.Economy.CanAfford(tpl.Cost) {
		return
	}
	for _, c := range a.cells {
		p := c.Center()
		if m.Grid.IsBlocked(p) {
			continue
		}
		cmd := command.Command{Type: command.Construct, Template: tpl.ID, X: p.X, Z: p.Z}
		if err := m.Submit(cmd); err != nil {
			logger.Log.WithError(err).Debug("bot command refused")
			return
		}
		a.next++
		return
	}
}

// spiral lists the cells of the square rings around the origin cell,
// innermost first, up to radius rings out. The origin itself is left out.
func spiral(radius int) []grid.Cell {
	var out []grid.Cell
	for r := 1; r <= radius; r++ {
		for col := -r; col <= r; col++ {
			out = append(out, grid.Cell{Col: col, Row: -r})
		}
		for row := -r + 1; row <= r; row++ {
			out = append(out, grid.Cell{Col: r, Row: row})
		}
		for col := r - 1; col >= -r; col-- {
			out = append(out, grid.Cell{Col: col, Row: r})
		}
		for row := r - 1; row > -r; row-- {
			out = append(out, grid.Cell{Col: -r, Row: row})
		}
	}
	return out
}
