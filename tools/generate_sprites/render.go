package main

import (
	"image"
	"image/color"
	"math"
)

// lightDir comes from the top left
var lightDir = vec2{-0.6, -0.8}

type vec2 struct{ x, y float64 }

func (v vec2) dot(o vec2) float64 { return v.x*o.x + v.y*o.y }

// drawBody fills an inset square lit from lightDir, with a darker rim
func drawBody(img *image.RGBA, base color.RGBA) {
	w := img.Bounds().Dx()
	inset := w / 8
	rim := w / 24
	for y := inset; y < w-inset; y++ {
		for x := inset; x < w-inset; x++ {
			edge := min(x-inset, y-inset, w-inset-1-x, w-inset-1-y)
			c := shade(base, vec2{float64(x)/float64(w) - 0.5, float64(y)/float64(w) - 0.5}, 0.25)
			if edge < rim {
				c = scale(c, 0.6)
			}
			img.SetRGBA(x, y, c)
		}
	}
}

// drawTurret adds a round turret and a barrel pointing toward +y
func drawTurret(img *image.RGBA, base color.RGBA) {
	w := float64(img.Bounds().Dx())
	c := w / 2
	barrel := scale(base, 0.45)
	fillRect(img, int(c-w/20), int(c), int(c+w/20), int(w*0.95), barrel)
	fillDisc(img, c, c, w*0.24, scale(base, 1.2))
	fillDisc(img, c, c, w*0.08, scale(base, 0.5))
}

// drawDrill adds a ringed shaft; the main base gets a second ring
func drawDrill(img *image.RGBA, base color.RGBA, mainBase bool) {
	w := float64(img.Bounds().Dx())
	c := w / 2
	fillDisc(img, c, c, w*0.28, scale(base, 0.7))
	fillDisc(img, c, c, w*0.20, scale(base, 1.15))
	if mainBase {
		fillDisc(img, c, c, w*0.12, scale(base, 0.7))
	}
	fillDisc(img, c, c, w*0.06, color.RGBA{20, 20, 20, 255})
}

// drawAlien draws a body with six legs
func drawAlien(img *image.RGBA, body color.RGBA) {
	w := float64(img.Bounds().Dx())
	c := w / 2
	leg := scale(body, 0.5)
	for i := 0; i < 6; i++ {
		a := float64(i)*math.Pi/3 + math.Pi/6
		for r := 0.0; r < w*0.45; r++ {
			fillDisc(img, c+math.Cos(a)*r, c+math.Sin(a)*r, w*0.03, leg)
		}
	}
	fillDisc(img, c, c, w*0.25, body)
	fillDisc(img, c, c+w*0.12, w*0.05, color.RGBA{250, 60, 60, 255})
}

func shade(base color.RGBA, n vec2, strength float64) color.RGBA {
	light := 1 - strength*2*n.dot(lightDir)
	return scale(base, light)
}

func scale(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{cu8(float64(c.R) * f), cu8(float64(c.G) * f), cu8(float64(c.B) * f), c.A}
}

func fillDisc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r && image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func cu8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
