package render

import (
	"math"

	"github.com/1siamBot/outpost/engine/core"
)

// ListenerHeight is how far above the ground plane the camera hangs
const ListenerHeight = 15.0

// Camera is a top-down view of the X/Z plane. World +X is screen right
// and world +Z is screen down.
type Camera struct {
	X, Z    float64 // world point at the screen center
	Zoom    float64 // pixels per world unit
	MinZoom float64
	MaxZoom float64
	ScreenW int     // viewport width in pixels
	ScreenH int     // viewport height in pixels
	Speed   float64 // keyboard pan speed in pixels per second
}

// NewCamera creates a camera centered on the origin
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    8,
		MinZoom: 2,
		MaxZoom: 32,
		ScreenW: screenW,
		ScreenH: screenH,
		Speed:   600,
	}
}

// Resize updates the viewport
func (c *Camera) Resize(w, h int) {
	c.ScreenW = w
	c.ScreenH = h
}

// Pan moves the camera by a pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Z += dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt scales the zoom by factor, keeping the world point under the
// screen point stationary.
func (c *Camera) ZoomAt(factor float64, screenX, screenY int) {
	before := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom * factor)
	after := c.ScreenToWorld(screenX, screenY)
	c.X += before.X - after.X
	c.Z += before.Z - after.Z
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(p core.Vec3) {
	c.X = p.X
	c.Z = p.Z
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(p core.Vec3) (float64, float64) {
	sx := (p.X-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (p.Z-c.Z)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts a screen pixel to a point on the ground plane
func (c *Camera) ScreenToWorld(sx, sy int) core.Vec3 {
	return core.Vec3{
		X: (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X,
		Z: (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Z,
	}
}

// Listener returns the camera's world position for positional audio
func (c *Camera) Listener() core.Vec3 {
	return core.Vec3{X: c.X, Y: ListenerHeight, Z: c.Z}
}

// Visible reports whether a world point of radius r is on screen
func (c *Camera) Visible(p core.Vec3, r float64) bool {
	sx, sy := c.WorldToScreen(p)
	pr := r * c.Zoom
	return sx+pr >= 0 && sy+pr >= 0 && sx-pr <= float64(c.ScreenW) && sy-pr <= float64(c.ScreenH)
}
