package sim

import "math"

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Point is a 2D coordinate. Used for screen pixels and Mercator world points.
type Point struct {
	X float64
	Y float64
}

// Vec2 is a velocity in screen pixels per second. Positive Y points down.
type Vec2 struct {
	X float64
	Y float64
}

// Len returns the vector magnitude.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Bounds is the visible map area: SW is the bottom-left corner, NE the top-right.
type Bounds struct {
	SW LatLng
	NE LatLng
}

// Contains reports whether ll lies inside the bounds (edges inclusive).
func (b Bounds) Contains(ll LatLng) bool {
	return ll.Lat >= b.SW.Lat && ll.Lat <= b.NE.Lat &&
		ll.Lng >= b.SW.Lng && ll.Lng <= b.NE.Lng
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
