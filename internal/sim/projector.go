package sim

import (
	"errors"
	"math"
	"sync"
)

// ErrNotReady is returned by a Projector before the viewport has a size.
var ErrNotReady = errors.New("sim: projector not ready")

// tileSize is the Mercator world width at zoom 0.
const tileSize = 256.0

// Projector converts between world coordinates and screen pixels for the
// current view. Every method except Ready and ZoomScale returns ErrNotReady
// until the channel returned by Ready is closed.
type Projector interface {
	Ready() <-chan struct{}
	Project(ll LatLng) (Point, error)
	Unproject(p Point) (LatLng, error)
	Bounds() (Bounds, error)
	// ZoomScale is the number of screen pixels per world point.
	ZoomScale() float64
}

// MercatorViewport is a fixed-centre Web Mercator view. It becomes ready
// the first time Resize is called with a positive size. Resize must be
// called from the goroutine that ticks the session.
type MercatorViewport struct {
	center LatLng
	zoom   int
	width  float64
	height float64

	ready     chan struct{}
	readyOnce sync.Once
}

// NewMercatorViewport creates a viewport centred on center at the given zoom.
func NewMercatorViewport(center LatLng, zoom int) *MercatorViewport {
	return &MercatorViewport{
		center: center,
		zoom:   zoom,
		ready:  make(chan struct{}),
	}
}

// Resize sets the viewport pixel size. Non-positive sizes are ignored.
func (v *MercatorViewport) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width = float64(width)
	v.height = float64(height)
	v.readyOnce.Do(func() { close(v.ready) })
}

// Size returns the viewport pixel size (zero before the first Resize).
func (v *MercatorViewport) Size() (int, int) {
	return int(v.width), int(v.height)
}

// Center returns the fixed map centre.
func (v *MercatorViewport) Center() LatLng {
	return v.center
}

func (v *MercatorViewport) Ready() <-chan struct{} {
	return v.ready
}

func (v *MercatorViewport) isReady() bool {
	select {
	case <-v.ready:
		return true
	default:
		return false
	}
}

func (v *MercatorViewport) ZoomScale() float64 {
	return math.Exp2(float64(v.zoom))
}

// origin is the world pixel at the top-left corner of the viewport.
func (v *MercatorViewport) origin() Point {
	c := toWorldPoint(v.center)
	s := v.ZoomScale()
	return Point{X: c.X*s - v.width/2, Y: c.Y*s - v.height/2}
}

func (v *MercatorViewport) Project(ll LatLng) (Point, error) {
	if !v.isReady() {
		return Point{}, ErrNotReady
	}
	wp := toWorldPoint(ll)
	s := v.ZoomScale()
	o := v.origin()
	return Point{X: wp.X*s - o.X, Y: wp.Y*s - o.Y}, nil
}

func (v *MercatorViewport) Unproject(p Point) (LatLng, error) {
	if !v.isReady() {
		return LatLng{}, ErrNotReady
	}
	s := v.ZoomScale()
	o := v.origin()
	return fromWorldPoint(Point{X: (p.X + o.X) / s, Y: (p.Y + o.Y) / s}), nil
}

func (v *MercatorViewport) Bounds() (Bounds, error) {
	if !v.isReady() {
		return Bounds{}, ErrNotReady
	}
	sw, _ := v.Unproject(Point{X: 0, Y: v.height})
	ne, _ := v.Unproject(Point{X: v.width, Y: 0})
	return Bounds{SW: sw, NE: ne}, nil
}

// toWorldPoint projects ll into Mercator world space ([0,256) on both axes).
func toWorldPoint(ll LatLng) Point {
	siny := math.Sin(ll.Lat * math.Pi / 180)
	siny = math.Min(math.Max(siny, -0.9999), 0.9999)
	return Point{
		X: tileSize * (0.5 + ll.Lng/360),
		Y: tileSize * (0.5 - math.Log((1+siny)/(1-siny))/(4*math.Pi)),
	}
}

func fromWorldPoint(p Point) LatLng {
	n := math.Pi - 2*math.Pi*p.Y/tileSize
	return LatLng{
		Lat: 180 / math.Pi * math.Atan(math.Sinh(n)),
		Lng: p.X/tileSize*360 - 180,
	}
}
