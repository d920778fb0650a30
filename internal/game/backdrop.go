package game

import (
	"image/color"
	"math/rand"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Offline dark map palette.
var (
	colorRoad      = color.RGBA{R: 0x38, G: 0x41, B: 0x4e, A: 255}
	colorRoadMajor = color.RGBA{R: 0x74, G: 0x6f, B: 0x55, A: 255}
	colorWater     = color.RGBA{R: 0x17, G: 0x26, B: 0x3c, A: 255}
	colorPark      = color.RGBA{R: 0x26, G: 0x3c, B: 0x3f, A: 255}
)

const (
	roadStep       = 0.0002 // degrees, matches the building grid
	roadMajorEvery = 4
	roadWidth      = 4
	roadMajorWidth = 8
	parkCount      = 5
)

// backdrop renders a street grid, a river and a few parks once per
// viewport size and blits the cached image every frame.
type backdrop struct {
	seed  int64
	img   *ebiten.Image
	dirty bool
}

func newBackdrop(seed int64) *backdrop {
	return &backdrop{seed: seed, dirty: true}
}

func (b *backdrop) invalidate() { b.dirty = true }

func (b *backdrop) draw(screen *ebiten.Image, vp *sim.MercatorViewport) {
	if b.dirty {
		if !b.render(vp) {
			return
		}
		b.dirty = false
	}
	if b.img != nil {
		screen.DrawImage(b.img, nil)
	}
}

// render redraws the cache. It reports false while the viewport has no size.
func (b *backdrop) render(vp *sim.MercatorViewport) bool {
	bounds, err := vp.Bounds()
	if err != nil {
		return false
	}
	w, h := vp.Size()
	if b.img == nil || b.img.Bounds().Dx() != w || b.img.Bounds().Dy() != h {
		if b.img != nil {
			b.img.Deallocate()
		}
		b.img = ebiten.NewImage(w, h)
	}
	b.img.Fill(colorBackground)

	rng := rand.New(rand.NewSource(b.seed)) // #nosec G404 -- cosmetic only
	b.drawParks(vp, bounds, rng)
	b.drawRiver(vp, bounds, float32(w))
	b.drawRoads(vp, bounds, float32(w), float32(h))
	return true
}

func (b *backdrop) drawParks(vp *sim.MercatorViewport, bounds sim.Bounds, rng *rand.Rand) {
	rows := int((bounds.NE.Lat - bounds.SW.Lat) / roadStep)
	cols := int((bounds.NE.Lng - bounds.SW.Lng) / roadStep)
	if rows < 2 || cols < 2 {
		return
	}
	for i := 0; i < parkCount; i++ {
		r := rng.Intn(rows - 1)
		c := rng.Intn(cols - 1)
		bw := 1 + rng.Intn(2)
		bh := 1 + rng.Intn(2)
		sw := sim.LatLng{
			Lat: bounds.SW.Lat + (float64(r)+0.5)*roadStep,
			Lng: bounds.SW.Lng + (float64(c)+0.5)*roadStep,
		}
		ne := sim.LatLng{Lat: sw.Lat + float64(bh)*roadStep, Lng: sw.Lng + float64(bw)*roadStep}
		p0, _ := vp.Project(sim.LatLng{Lat: ne.Lat, Lng: sw.Lng})
		p1, _ := vp.Project(sim.LatLng{Lat: sw.Lat, Lng: ne.Lng})
		vector.FillRect(b.img, float32(p0.X), float32(p0.Y), float32(p1.X-p0.X), float32(p1.Y-p0.Y), colorPark, false)
	}
}

func (b *backdrop) drawRiver(vp *sim.MercatorViewport, bounds sim.Bounds, w float32) {
	lat := bounds.SW.Lat + (bounds.NE.Lat-bounds.SW.Lat)*0.12
	top, _ := vp.Project(sim.LatLng{Lat: lat + roadStep*0.6, Lng: bounds.SW.Lng})
	bot, _ := vp.Project(sim.LatLng{Lat: lat - roadStep*0.6, Lng: bounds.SW.Lng})
	vector.FillRect(b.img, 0, float32(top.Y), w, float32(bot.Y-top.Y), colorWater, false)
}

func (b *backdrop) drawRoads(vp *sim.MercatorViewport, bounds sim.Bounds, w, h float32) {
	for i := 0; ; i++ {
		lat := bounds.SW.Lat + (float64(i)+0.5)*roadStep
		if lat > bounds.NE.Lat {
			break
		}
		p, _ := vp.Project(sim.LatLng{Lat: lat, Lng: bounds.SW.Lng})
		clr, width := roadStyle(i)
		vector.StrokeLine(b.img, 0, float32(p.Y), w, float32(p.Y), width, clr, false)
	}
	for j := 0; ; j++ {
		lng := bounds.SW.Lng + (float64(j)+0.5)*roadStep
		if lng > bounds.NE.Lng {
			break
		}
		p, _ := vp.Project(sim.LatLng{Lat: bounds.SW.Lat, Lng: lng})
		clr, width := roadStyle(j)
		vector.StrokeLine(b.img, float32(p.X), 0, float32(p.X), h, width, clr, false)
	}
}

func roadStyle(i int) (color.RGBA, float32) {
	if i%roadMajorEvery == roadMajorEvery-1 {
		return colorRoadMajor, roadMajorWidth
	}
	return colorRoad, roadWidth
}
