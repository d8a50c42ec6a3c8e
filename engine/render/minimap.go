package render

import (
	"image/color"

	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/grid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// minimapMargin is how far past the spawn ring the minimap reaches
const minimapMargin = 10.0

// Minimap is a corner overview centered on the base
type Minimap struct {
	X, Y, Size int

	img *ebiten.Image
}

func NewMinimap(x, y, size int) *Minimap {
	return &Minimap{X: x, Y: y, Size: size}
}

// Extent returns the world half-width the minimap covers
func (mm *Minimap) Extent(g *grid.BuildGrid) float64 {
	return g.CenterRadius() + minimapMargin
}

// Project maps a world point to minimap pixels
func (mm *Minimap) Project(p, center core.Vec3, extent float64) (float32, float32) {
	s := float64(mm.Size) / (2 * extent)
	return float32((p.X-center.X+extent)*s), float32((p.Z-center.Z+extent)*s)
}

// Contains reports whether a screen point falls on the minimap
func (mm *Minimap) Contains(sx, sy int) bool {
	return sx >= mm.X && sy >= mm.Y && sx < mm.X+mm.Size && sy < mm.Y+mm.Size
}

// Unproject maps a screen point on the minimap back to the world
func (mm *Minimap) Unproject(sx, sy int, center core.Vec3, extent float64) core.Vec3 {
	s := (2 * extent) / float64(mm.Size)
	return core.Vec3{
		X: float64(sx-mm.X)*s - extent + center.X,
		Z: float64(sy-mm.Y)*s - extent + center.Z,
	}
}

// Draw renders buildings, aliens and the camera viewport
func (mm *Minimap) Draw(screen *ebiten.Image, s Scene, cam *Camera) {
	if mm.img == nil || mm.img.Bounds().Dx() != mm.Size {
		mm.img = ebiten.NewImage(mm.Size, mm.Size)
	}
	mm.img.Fill(color.RGBA{0, 0, 0, 180})

	center := s.Grid.BaseCenter()
	extent := mm.Extent(s.Grid)

	for _, id := range s.World.Query(core.CompBuilding, core.CompTransform) {
		px, py := mm.Project(core.TransformOf(s.World, id).Translation, center, extent)
		clr := color.RGBA{80, 160, 255, 255}
		if s.World.Has(id, core.CompMainBase) {
			clr = color.RGBA{255, 255, 255, 255}
		}
		vector.DrawFilledRect(mm.img, px-1.5, py-1.5, 3, 3, clr, false)
	}
	for _, id := range s.World.Query(core.CompAlien, core.CompTransform) {
		if !core.IsAlive(s.World, id) {
			continue
		}
		px, py := mm.Project(core.TransformOf(s.World, id).Translation, center, extent)
		vector.DrawFilledRect(mm.img, px-1, py-1, 2, 2, color.RGBA{255, 60, 60, 255}, false)
	}

	vx0, vy0 := mm.Project(cam.ScreenToWorld(0, 0), center, extent)
	vx1, vy1 := mm.Project(cam.ScreenToWorld(cam.ScreenW, cam.ScreenH), center, extent)
	vector.StrokeRect(mm.img, vx0, vy0, vx1-vx0, vy1-vy0, 1, color.RGBA{255, 255, 255, 200}, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mm.X), float64(mm.Y))
	screen.DrawImage(mm.img, op)
}
