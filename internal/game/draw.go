package game

import (
	"image/color"
	"math"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Effect sprite sizes, px.
const (
	rubbleSize = 30
	debrisSize = 20
)

var (
	colorRubble      = color.RGBA{R: 0x5a, G: 0x55, B: 0x50, A: 255}
	colorRubbleDark  = color.RGBA{R: 0x3e, G: 0x3a, B: 0x36, A: 255}
	colorBuildingRim = color.RGBA{R: 0x1a, G: 0x1e, B: 0x26, A: 255}
	colorMonster     = color.RGBA{R: 0x3f, G: 0xa3, B: 0x4d, A: 255}
	colorMonsterDark = color.RGBA{R: 0x2a, G: 0x6e, B: 0x35, A: 255}
	colorBelly       = color.RGBA{R: 0xb5, G: 0xd9, B: 0x8a, A: 255}
	colorEye         = color.RGBA{R: 0xff, G: 0xe0, B: 0x40, A: 255}
)

// buildingColors by size tier.
var buildingColors = [...]color.RGBA{
	1: {R: 0x8d, G: 0x6e, B: 0x63, A: 255},
	2: {R: 0xa1, G: 0x88, B: 0x7f, A: 255},
	3: {R: 0xbc, G: 0xaa, B: 0xa4, A: 255},
}

// buildingSide returns the drawn square size for a tier.
func buildingSide(size int) float32 {
	return float32(10 + 6*size)
}

func drawTargets(screen *ebiten.Image, targets []sim.TargetView) {
	for _, t := range targets {
		if t.Destroyed {
			continue
		}
		side := buildingSide(t.Size)
		x := float32(t.Screen.X) - side/2
		y := float32(t.Screen.Y) - side/2
		clr := buildingColors[1]
		if t.Size >= 1 && t.Size < len(buildingColors) {
			clr = buildingColors[t.Size]
		}
		vector.FillRect(screen, x, y, side, side, clr, false)
		vector.StrokeRect(screen, x, y, side, side, 1.5, colorBuildingRim, false)
		// Roof line so taller tiers read as taller.
		for i := 1; i < t.Size; i++ {
			inset := float32(i) * 3
			vector.StrokeRect(screen, x+inset, y+inset, side-2*inset, side-2*inset, 1, colorBuildingRim, false)
		}
	}
}

func drawRubble(screen *ebiten.Image, rubble []sim.Point) {
	const half = rubbleSize / 2
	for _, r := range rubble {
		x, y := float32(r.X), float32(r.Y)
		vector.FillRect(screen, x-half, y-half, rubbleSize, rubbleSize, colorRubbleDark, false)
		vector.FillRect(screen, x-half+3, y-half+5, 11, 9, colorRubble, false)
		vector.FillRect(screen, x+1, y-half+3, 12, 8, colorRubble, false)
		vector.FillRect(screen, x-6, y+2, 14, 10, colorRubble, false)
	}
}

func drawDebris(screen *ebiten.Image, debris []sim.DebrisView) {
	const half = debrisSize / 2
	for _, d := range debris {
		a := uint8(math.Round(d.Opacity * 255))
		if a == 0 {
			continue
		}
		clr := color.NRGBA{R: 0x9e, G: 0x8a, B: 0x78, A: a}
		vector.FillRect(screen, float32(d.Screen.X)-half, float32(d.Screen.Y)-half, debrisSize, debrisSize, clr, false)
	}
}

// drawMonster draws a top-down kaiju facing heading (degrees, screen space).
func drawMonster(screen *ebiten.Image, at sim.Point, size, heading float64) {
	rad := heading * math.Pi / 180
	fx, fy := math.Cos(rad), math.Sin(rad)
	// Perpendicular, for limbs and eyes.
	px, py := -fy, fx
	s := size

	pt := func(forward, side float64) (float32, float32) {
		return float32(at.X + fx*forward*s + px*side*s), float32(at.Y + fy*forward*s + py*side*s)
	}

	// Tail.
	tx, ty := pt(-0.55, 0)
	bx, by := pt(-0.15, 0)
	vector.StrokeLine(screen, bx, by, tx, ty, float32(s*0.16), colorMonsterDark, true)

	// Legs.
	for _, side := range []float64{-0.28, 0.28} {
		for _, fwd := range []float64{-0.15, 0.18} {
			lx, ly := pt(fwd, side)
			vector.FillCircle(screen, lx, ly, float32(s*0.09), colorMonsterDark, true)
		}
	}

	// Body and belly.
	cx, cy := pt(0, 0)
	vector.FillCircle(screen, cx, cy, float32(s*0.3), colorMonster, true)
	vx, vy := pt(0.02, 0)
	vector.FillCircle(screen, vx, vy, float32(s*0.17), colorBelly, true)

	// Back spikes.
	for _, fwd := range []float64{-0.3, -0.15, 0, 0.15} {
		sx, sy := pt(fwd, 0)
		vector.FillCircle(screen, sx, sy, float32(s*0.05), colorMonsterDark, true)
	}

	// Head and eyes.
	hx, hy := pt(0.38, 0)
	vector.FillCircle(screen, hx, hy, float32(s*0.17), colorMonster, true)
	for _, side := range []float64{-0.07, 0.07} {
		ex, ey := pt(0.45, side)
		vector.FillCircle(screen, ex, ey, float32(s*0.035), colorEye, true)
	}
}
