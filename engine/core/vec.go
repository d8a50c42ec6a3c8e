package core

import "math"

// Vec3 is a world-space point or direction. Y is height and is cosmetic for
// the simulation; gameplay distances are measured on the X/Z plane.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// PlanarLen returns the length of v projected on the X/Z plane
func (v Vec3) PlanarLen() float64 {
	return math.Hypot(v.X, v.Z)
}

// PlanarDistance returns the X/Z distance between two points
func (v Vec3) PlanarDistance(o Vec3) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

// PlanarDir returns the unit X/Z direction from v towards o, or the zero
// vector if the points coincide on the plane.
func (v Vec3) PlanarDir(o Vec3) Vec3 {
	d := Vec3{X: o.X - v.X, Z: o.Z - v.Z}
	l := d.PlanarLen()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{X: d.X / l, Z: d.Z / l}
}

// YawTo returns the rotation about the vertical axis that faces o from v
func (v Vec3) YawTo(o Vec3) float64 {
	return math.Atan2(o.X-v.X, o.Z-v.Z)
}

// Distance returns the full 3D distance, used where height matters such as
// sound attenuation from a raised camera.
func (v Vec3) Distance(o Vec3) float64 {
	d := v.Sub(o)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}
