package grid

import (
	"math"
	"testing"

	"github.com/1siamBot/outpost/engine/core"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		p    core.Vec3
		want Cell
	}{
		{core.Vec3{X: 0, Z: 0}, Cell{0, 0}},
		{core.Vec3{X: 2.99, Z: 2.99}, Cell{0, 0}},
		{core.Vec3{X: 3, Z: 0}, Cell{1, 0}},
		{core.Vec3{X: -0.1, Z: 4}, Cell{-1, 1}},
		{core.Vec3{X: -3, Z: -3.01}, Cell{-1, -2}},
		{core.Vec3{X: 10, Y: 99, Z: 7}, Cell{3, 2}},
	}
	for _, tt := range tests {
		if got := CellOf(tt.p); got != tt.want {
			t.Errorf("CellOf(%v): expected %v, got %v", tt.p, tt.want, got)
		}
	}
}

func TestSnapToCellCenter(t *testing.T) {
	got := SnapToCellCenter(core.Vec3{X: 4, Z: -1})
	want := core.Vec3{X: 4.5, Y: PlaneHeight, Z: -1.5}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEmptyGridHasGuardBand(t *testing.T) {
	g := New()
	if g.BaseCenter() != (core.Vec3{}) {
		t.Errorf("Expected center at origin, got %v", g.BaseCenter())
	}
	if g.CenterRadius() != GuardCells*SquareSize {
		t.Errorf("Expected radius %v, got %v", GuardCells*SquareSize, g.CenterRadius())
	}
}

func TestPlaceAndRemoveBijection(t *testing.T) {
	g := New()
	points := []core.Vec3{{X: 1, Z: 1}, {X: 7, Z: -2}, {X: -5, Z: 10}}
	ids := []core.EntityID{11, 12, 13}
	for i, p := range points {
		if g.IsBlocked(p) {
			t.Fatalf("Expected %v free before placing", p)
		}
		g.Place(CellOf(p), ids[i])
	}
	for i, p := range points {
		id, ok := g.OccupantOf(p)
		if !ok || id != ids[i] {
			t.Errorf("OccupantOf(%v): expected %d, got %d (%v)", p, ids[i], id, ok)
		}
	}
	if g.Count() != 3 {
		t.Errorf("Expected 3 occupied cells, got %d", g.Count())
	}

	// Any point in the same cell resolves to the same occupant.
	if id, ok := g.OccupantOf(core.Vec3{X: 2.5, Z: 0.1}); !ok || id != 11 {
		t.Errorf("Expected same-cell lookup to return 11, got %d", id)
	}

	id, ok := g.Remove(core.Vec3{X: 8, Z: -1})
	if !ok || id != 12 {
		t.Errorf("Expected to remove 12, got %d (%v)", id, ok)
	}
	if g.IsBlocked(points[1]) {
		t.Error("Expected removed cell to be free")
	}
	if _, ok := g.Remove(points[1]); ok {
		t.Error("Expected second remove to report nothing")
	}
	if g.Count() != 2 {
		t.Errorf("Expected 2 occupied cells, got %d", g.Count())
	}
}

func TestRecomputeTracksFootprint(t *testing.T) {
	g := New()
	g.Place(Cell{0, 0}, 1)
	g.Place(Cell{4, 0}, 2)

	// Box spans cols 0..4, rows 0..0: center (2, 0), farthest cell 2 away.
	if got := g.BaseCenter(); got.X != 6 || got.Z != 0 {
		t.Errorf("Expected center (6, 0), got %v", got)
	}
	if got, want := g.CenterRadius(), (2.0+GuardCells)*SquareSize; got != want {
		t.Errorf("Expected radius %v, got %v", want, got)
	}

	g.Place(Cell{4, 3}, 3)
	far := math.Hypot(2, 1.5)
	if got, want := g.CenterRadius(), (far+GuardCells)*SquareSize; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected radius %v, got %v", want, got)
	}

	g.RemoveCell(Cell{4, 3})
	g.RemoveCell(Cell{4, 0})
	if got := g.BaseCenter(); got.X != 0 || got.Z != 0 {
		t.Errorf("Expected center back at origin, got %v", got)
	}
}

func TestRecomputeLowerBoundSeededAtZero(t *testing.T) {
	g := New()
	// A single far cell still stretches the box back to index 0.
	g.Place(Cell{6, 6}, 1)
	if got := g.BaseCenter(); got.X != 9 || got.Z != 9 {
		t.Errorf("Expected center (9, 9), got %v", got)
	}
}

func TestRadiusNeverBelowGuardBand(t *testing.T) {
	g := New()
	cells := []Cell{{0, 0}, {-3, 2}, {5, 5}, {-1, -7}, {2, -2}}
	for i, c := range cells {
		g.Place(c, core.EntityID(i+1))
		if g.CenterRadius() < GuardCells*SquareSize {
			t.Fatalf("Radius %v dropped below guard band after placing %v", g.CenterRadius(), c)
		}
		assertCenterInsideFootprint(t, g)
	}
	for _, c := range cells {
		g.RemoveCell(c)
		if g.CenterRadius() < GuardCells*SquareSize {
			t.Fatalf("Radius %v dropped below guard band after removing %v", g.CenterRadius(), c)
		}
		assertCenterInsideFootprint(t, g)
	}
}

func assertCenterInsideFootprint(t *testing.T, g *BuildGrid) {
	t.Helper()
	minX, maxX, minZ, maxZ := 0.0, 0.0, 0.0, 0.0
	for c := range g.Cells() {
		minX = math.Min(minX, float64(c.Col)*SquareSize)
		maxX = math.Max(maxX, float64(c.Col)*SquareSize)
		minZ = math.Min(minZ, float64(c.Row)*SquareSize)
		maxZ = math.Max(maxZ, float64(c.Row)*SquareSize)
	}
	bc := g.BaseCenter()
	if bc.X < minX || bc.X > maxX || bc.Z < minZ || bc.Z > maxZ {
		t.Errorf("Center %v outside footprint [%v,%v]x[%v,%v]", bc, minX, maxX, minZ, maxZ)
	}
}

func TestReset(t *testing.T) {
	g := New()
	g.Place(Cell{3, 3}, 1)
	g.Reset()
	if g.Count() != 0 || g.IsBlocked(Cell{3, 3}.Center()) {
		t.Error("Expected empty grid after reset")
	}
	if g.CenterRadius() != GuardCells*SquareSize {
		t.Errorf("Expected guard radius after reset, got %v", g.CenterRadius())
	}
}
