package game

import (
	"image/color"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Virtual joystick geometry, px.
const (
	stickRadius = 60
	stickMargin = 40
	stickKnob   = 24
)

var (
	colorStickBase = color.RGBA{R: 255, G: 255, B: 255, A: 50}
	colorStickRim  = color.RGBA{R: 255, G: 255, B: 255, A: 110}
	colorStickKnob = color.RGBA{R: 255, G: 255, B: 255, A: 160}
)

// touchStick is the on-screen joystick in the bottom-left corner. It only
// appears once a touch has been seen.
type touchStick struct {
	seen   bool
	active bool
	id     ebiten.TouchID

	baseX, baseY float64
	knobX, knobY float64
}

func newTouchStick() touchStick {
	return touchStick{}
}

// place anchors the base for a screen of the given height.
func (t *touchStick) place(screenH int) {
	t.baseX = stickMargin + stickRadius
	t.baseY = float64(screenH) - stickMargin - stickRadius
}

// grabs reports whether a touch at (x,y) lands on the base. The grab zone
// is twice the radius so a thumb does not need to be exact.
func (t *touchStick) grabs(x, y float64) bool {
	dx, dy := x-t.baseX, y-t.baseY
	return dx*dx+dy*dy <= 4*stickRadius*stickRadius
}

// move feeds a touch position and returns the joystick vector.
func (t *touchStick) move(x, y float64) sim.Vec2 {
	v, kx, ky := sim.JoystickFromDelta(x-t.baseX, y-t.baseY, stickRadius)
	t.knobX, t.knobY = kx, ky
	return v
}

func (t *touchStick) release(s *sim.Session) {
	t.reset()
	s.ReleaseJoystick()
}

// reset drops any grabbed touch. A touch held when a session ends is never
// seen released, so every new session starts from here.
func (t *touchStick) reset() {
	t.active = false
	t.id = 0
	t.knobX, t.knobY = 0, 0
}

func (t *touchStick) update(s *sim.Session, _, screenH int) {
	t.place(screenH)

	if !t.active {
		for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
			t.seen = true
			x, y := ebiten.TouchPosition(id)
			if t.grabs(float64(x), float64(y)) {
				t.active = true
				t.id = id
				break
			}
		}
	}
	if !t.active {
		return
	}
	if inpututil.IsTouchJustReleased(t.id) {
		t.release(s)
		return
	}
	x, y := ebiten.TouchPosition(t.id)
	v := t.move(float64(x), float64(y))
	s.SetJoystick(v.X, v.Y)
}

func (t *touchStick) draw(screen *ebiten.Image) {
	if !t.seen {
		return
	}
	bx, by := float32(t.baseX), float32(t.baseY)
	vector.FillCircle(screen, bx, by, stickRadius, colorStickBase, true)
	vector.StrokeCircle(screen, bx, by, stickRadius, 2, colorStickRim, true)
	vector.FillCircle(screen, bx+float32(t.knobX), by+float32(t.knobY), stickKnob, colorStickKnob, true)
}
