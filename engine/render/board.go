package render

import (
	"image/color"
	"math"
	"time"

	"github.com/1siamBot/outpost/engine/catalog"
	"github.com/1siamBot/outpost/engine/core"
	"github.com/1siamBot/outpost/engine/grid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FlashLifetime is how long a muzzle flash stays visible
const FlashLifetime = 80 * time.Millisecond

var (
	groundColor   = color.RGBA{24, 28, 22, 255}
	gridColor     = color.RGBA{255, 255, 255, 18}
	ringColor     = color.RGBA{200, 60, 60, 60}
	alienColor    = color.RGBA{120, 220, 90, 255}
	hoverOK       = color.RGBA{80, 200, 120, 120}
	hoverBad      = color.RGBA{220, 70, 70, 120}
	inspectColor  = color.RGBA{255, 255, 255, 200}
	fallbackColor = color.RGBA{160, 160, 160, 255}
)

type flash struct {
	at     core.Vec3
	facing float64
	weapon core.WeaponType
	left   time.Duration
}

// Board draws the simulation from above: the grid, buildings, aliens and
// weapon flashes.
type Board struct {
	Camera  *Camera
	Catalog *catalog.Catalog
	Sprites *SpriteSet

	colors  map[string]color.RGBA
	flashes []flash
}

func NewBoard(cam *Camera, cat *catalog.Catalog) *Board {
	b := &Board{Camera: cam, Catalog: cat, colors: make(map[string]color.RGBA)}
	for _, t := range cat.All() {
		c, err := t.Visual.RGBA()
		if err != nil {
			c = fallbackColor
		}
		b.colors[t.ID] = c
	}
	return b
}

// OnGunFired records a muzzle flash at the shooter
func (b *Board) OnGunFired(e core.Event) {
	gf, ok := e.Payload.(core.GunFired)
	if !ok {
		return
	}
	b.flashes = append(b.flashes, flash{
		at:     gf.Transform.Translation,
		facing: gf.Transform.Facing,
		weapon: gf.Weapon,
		left:   FlashLifetime,
	})
}

// Update ages the flashes
func (b *Board) Update(dt time.Duration) {
	kept := b.flashes[:0]
	for _, f := range b.flashes {
		f.left -= dt
		if f.left > 0 {
			kept = append(kept, f)
		}
	}
	b.flashes = kept
}

// Flashes returns how many muzzle flashes are live
func (b *Board) Flashes() int { return len(b.flashes) }

// Clear drops transient effects, e.g. when a match ends
func (b *Board) Clear() { b.flashes = b.flashes[:0] }

// Scene is what one frame of the board shows
type Scene struct {
	World     *core.World
	Grid      *grid.BuildGrid
	Hover     *core.Vec3 // cursor point in a building mode
	HoverOK   bool
	Inspected core.EntityID
}

// Draw renders the board
func (b *Board) Draw(screen *ebiten.Image, s Scene) {
	screen.Fill(groundColor)
	b.drawGrid(screen, s.Grid)
	b.drawRing(screen, s.Grid)

	w := s.World
	for _, id := range w.Query(core.CompBuilding, core.CompTransform) {
		b.drawBuilding(screen, w, id, id == s.Inspected)
	}
	for _, id := range w.Query(core.CompAlien, core.CompTransform) {
		b.drawAlien(screen, w, id)
	}
	b.drawFlashes(screen)

	if s.Hover != nil {
		c := hoverBad
		if s.HoverOK {
			c = hoverOK
		}
		b.fillCell(screen, grid.CellOf(*s.Hover), c)
	}
}

func (b *Board) drawGrid(screen *ebiten.Image, g *grid.BuildGrid) {
	cam := b.Camera
	tl := cam.ScreenToWorld(0, 0)
	br := cam.ScreenToWorld(cam.ScreenW, cam.ScreenH)
	c0, c1 := grid.CellOf(tl), grid.CellOf(br)

	for col := c0.Col; col <= c1.Col+1; col++ {
		x, _ := cam.WorldToScreen(core.Vec3{X: float64(col) * grid.SquareSize})
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(cam.ScreenH), 1, gridColor, false)
	}
	for row := c0.Row; row <= c1.Row+1; row++ {
		_, y := cam.WorldToScreen(core.Vec3{Z: float64(row) * grid.SquareSize})
		vector.StrokeLine(screen, 0, float32(y), float32(cam.ScreenW), float32(y), 1, gridColor, false)
	}
}

// drawRing outlines where aliens arrive
func (b *Board) drawRing(screen *ebiten.Image, g *grid.BuildGrid) {
	cx, cy := b.Camera.WorldToScreen(g.BaseCenter())
	r := g.CenterRadius() * b.Camera.Zoom
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 1, ringColor, true)
}

func (b *Board) drawBuilding(screen *ebiten.Image, w *core.World, id core.EntityID, inspected bool) {
	tf := core.TransformOf(w, id)
	bld := core.BuildingOf(w, id)
	cell := grid.CellOf(tf.Translation)

	clr, ok := b.colors[bld.Template]
	if !ok {
		clr = fallbackColor
	}
	alpha := 1.0
	h := core.HealthOf(w, id)
	if h != nil && !h.Alive() {
		// Dying buildings fade out over the grace period.
		alpha = 1 - float64(h.Grace.Elapsed())/float64(h.Grace.Duration)
		clr.A = uint8(255 * alpha)
	}
	drawn := false
	if tpl, ok := b.Catalog.Get(bld.Template); ok {
		sx, sy := b.Camera.WorldToScreen(cell.Center())
		img := b.Sprites.Get(tpl.Visual.Model)
		drawn = b.drawSprite(screen, img, sx, sy, 0, grid.SquareSize*tpl.Visual.Scale, float32(alpha))
	}
	if !drawn {
		b.fillCell(screen, cell, clr)
	}

	if ts := core.TargetingOf(w, id); ts != nil {
		sx, sy := b.Camera.WorldToScreen(tf.Translation)
		l := grid.SquareSize / 2 * b.Camera.Zoom
		ex := sx + math.Sin(tf.Facing)*l
		ey := sy + math.Cos(tf.Facing)*l
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, color.RGBA{30, 30, 30, 255}, true)
	}
	if inspected {
		x, y, size := b.cellRect(cell)
		vector.StrokeRect(screen, x, y, size, size, 2, inspectColor, false)
	}
	if h != nil && h.Alive() && h.HP < h.Max {
		b.drawHealthBar(screen, tf.Translation, h.Ratio(), grid.SquareSize)
	}
}

func (b *Board) drawAlien(screen *ebiten.Image, w *core.World, id core.EntityID) {
	tf := core.TransformOf(w, id)
	if !b.Camera.Visible(tf.Translation, 1) {
		return
	}
	radius := 0.3
	if col, ok := w.Get(id, core.CompCollider).(*core.Collider); ok {
		radius = col.Radius
	}
	clr := alienColor
	h := core.HealthOf(w, id)
	if h != nil && !h.Alive() {
		clr = color.RGBA{90, 90, 90, 160}
	}
	sx, sy := b.Camera.WorldToScreen(tf.Translation)
	if !b.drawSprite(screen, b.Sprites.Get(AlienModel), sx, sy, tf.Facing, radius*2, float32(clr.A)/255) {
		r := math.Max(radius*b.Camera.Zoom, 2)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), clr, true)
	}
	if h != nil && h.Alive() && h.HP < h.Max {
		b.drawHealthBar(screen, tf.Translation, h.Ratio(), 1.5)
	}
}

func (b *Board) drawFlashes(screen *ebiten.Image) {
	for _, f := range b.flashes {
		sx, sy := b.Camera.WorldToScreen(f.at)
		l := 1.2 * b.Camera.Zoom
		ex := sx + math.Sin(f.facing)*l
		ey := sy + math.Cos(f.facing)*l
		clr := color.RGBA{255, 220, 120, 255}
		if f.weapon == core.WeaponLaser {
			clr = color.RGBA{255, 80, 80, 255}
		}
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, clr, true)
	}
}

func (b *Board) drawHealthBar(screen *ebiten.Image, p core.Vec3, ratio, width float64) {
	sx, sy := b.Camera.WorldToScreen(p)
	w := width * b.Camera.Zoom
	x := float32(sx - w/2)
	y := float32(sy - w/2 - 6)
	barColor := color.RGBA{0, 200, 0, 255}
	if ratio < 0.5 {
		barColor = color.RGBA{255, 200, 0, 255}
	}
	if ratio < 0.25 {
		barColor = color.RGBA{255, 0, 0, 255}
	}
	vector.DrawFilledRect(screen, x, y, float32(w), 3, color.RGBA{0, 0, 0, 160}, false)
	vector.DrawFilledRect(screen, x, y, float32(w*ratio), 3, barColor, false)
}

func (b *Board) cellRect(c grid.Cell) (x, y, size float32) {
	sx, sy := b.Camera.WorldToScreen(core.Vec3{
		X: float64(c.Col) * grid.SquareSize,
		Z: float64(c.Row) * grid.SquareSize,
	})
	return float32(sx), float32(sy), float32(grid.SquareSize * b.Camera.Zoom)
}

func (b *Board) fillCell(screen *ebiten.Image, c grid.Cell, clr color.RGBA) {
	x, y, size := b.cellRect(c)
	vector.DrawFilledRect(screen, x+1, y+1, size-2, size-2, clr, false)
}
