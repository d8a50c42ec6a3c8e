// Package grid is the build grid: a map from square cells to the building
// occupying them, plus the base footprint the spawner rings aliens around.
package grid

import (
	"math"

	"github.com/1siamBot/outpost/engine/core"
)

const (
	// SquareSize is the side of one cell in world units
	SquareSize = 3.0
	// GuardCells is the margin, in cells, between the outermost building
	// and the spawn ring.
	GuardCells = 5.0
	// PlaneHeight lifts snapped points slightly above the ground plane
	PlaneHeight = 0.01
)

// Cell is a (column, row) grid coordinate
type Cell struct {
	Col, Row int
}

// Center returns the world-space center of the cell
func (c Cell) Center() core.Vec3 {
	return core.Vec3{
		X: (float64(c.Col) + 0.5) * SquareSize,
		Y: PlaneHeight,
		Z: (float64(c.Row) + 0.5) * SquareSize,
	}
}

// CellOf returns the cell containing a world point
func CellOf(p core.Vec3) Cell {
	return Cell{
		Col: int(math.Floor(p.X / SquareSize)),
		Row: int(math.Floor(p.Z / SquareSize)),
	}
}

// SnapToCellCenter returns the center of the cell containing p
func SnapToCellCenter(p core.Vec3) core.Vec3 {
	return CellOf(p).Center()
}

// BuildGrid maps occupied cells to their building. BaseCenter and
// CenterRadius are recomputed on every Place and Remove.
type BuildGrid struct {
	cells        map[Cell]core.EntityID
	baseCenter   core.Vec3
	centerRadius float64
}

// New returns an empty grid
func New() *BuildGrid {
	g := &BuildGrid{cells: make(map[Cell]core.EntityID)}
	g.recompute()
	return g
}

// Reset empties the grid
func (g *BuildGrid) Reset() {
	g.cells = make(map[Cell]core.EntityID)
	g.recompute()
}

// IsBlocked reports whether the cell containing p is occupied
func (g *BuildGrid) IsBlocked(p core.Vec3) bool {
	_, ok := g.cells[CellOf(p)]
	return ok
}

// OccupantOf returns the building in the cell containing p
func (g *BuildGrid) OccupantOf(p core.Vec3) (core.EntityID, bool) {
	return g.OccupantAt(CellOf(p))
}

// OccupantAt returns the building in a cell
func (g *BuildGrid) OccupantAt(c Cell) (core.EntityID, bool) {
	id, ok := g.cells[c]
	return id, ok
}

// Place records e in cell, overwriting any previous occupant. Callers check
// IsBlocked first.
func (g *BuildGrid) Place(c Cell, e core.EntityID) {
	g.cells[c] = e
	g.recompute()
}

// Remove clears the cell containing p and returns its former occupant
func (g *BuildGrid) Remove(p core.Vec3) (core.EntityID, bool) {
	return g.RemoveCell(CellOf(p))
}

// RemoveCell clears a cell and returns its former occupant
func (g *BuildGrid) RemoveCell(c Cell) (core.EntityID, bool) {
	id, ok := g.cells[c]
	if !ok {
		return core.NoEntity, false
	}
	delete(g.cells, c)
	g.recompute()
	return id, true
}

// Count returns the number of occupied cells
func (g *BuildGrid) Count() int { return len(g.cells) }

// Cells returns a snapshot of the occupied cells
func (g *BuildGrid) Cells() map[Cell]core.EntityID {
	out := make(map[Cell]core.EntityID, len(g.cells))
	for c, id := range g.cells {
		out[c] = id
	}
	return out
}

// BaseCenter is the center of the bounding box of occupied cells
func (g *BuildGrid) BaseCenter() core.Vec3 { return g.baseCenter }

// CenterRadius is the spawn ring radius around BaseCenter
func (g *BuildGrid) CenterRadius() float64 { return g.centerRadius }

// recompute derives the base circle from the bounding box of cell indices.
// The box bounds start at 0, so the origin is always inside it.
func (g *BuildGrid) recompute() {
	var minC, maxC, minR, maxR int
	for c := range g.cells {
		minC = min(minC, c.Col)
		maxC = max(maxC, c.Col)
		minR = min(minR, c.Row)
		maxR = max(maxR, c.Row)
	}
	cx := float64(minC+maxC) / 2
	cz := float64(minR+maxR) / 2

	far := 0.0
	for c := range g.cells {
		far = math.Max(far, math.Hypot(float64(c.Col)-cx, float64(c.Row)-cz))
	}

	g.baseCenter = core.Vec3{X: cx * SquareSize, Z: cz * SquareSize}
	g.centerRadius = (far + GuardCells) * SquareSize
}
