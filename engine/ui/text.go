package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// face is the one font the HUD uses
var face = text.NewGoXFace(basicfont.Face7x13)

// LineHeight is the pixel height of one line of HUD text
const LineHeight = 13

func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	drawTextAlpha(dst, s, x, y, clr, 1)
}

func drawTextAlpha(dst *ebiten.Image, s string, x, y int, clr color.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, s, face, op)
}

// drawTextCentered centers s horizontally on cx
func drawTextCentered(dst *ebiten.Image, s string, cx, y int, clr color.Color) {
	drawText(dst, s, cx-textWidth(s)/2, y, clr)
}

func textWidth(s string) int {
	w, _ := text.Measure(s, face, LineHeight)
	return int(w)
}
