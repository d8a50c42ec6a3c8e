package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// drawSprite draws img centered on a screen point, scaled so its wider
// side spans worldSize units. Returns false when there is nothing to draw
// and the caller should fall back to shapes.
func (b *Board) drawSprite(screen *ebiten.Image, img *ebiten.Image, sx, sy, facing, worldSize float64, alpha float32) bool {
	if img == nil {
		return false
	}
	sw := float64(img.Bounds().Dx())
	sh := float64(img.Bounds().Dy())
	side := sw
	if sh > side {
		side = sh
	}
	if side == 0 {
		return false
	}
	scale := worldSize * b.Camera.Zoom / side

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-sw/2, -sh/2)
	op.GeoM.Rotate(-facing)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
	return true
}
