package sim

import (
	"math"
	"strings"
	"sync/atomic"
)

// Direction is one of the four keyboard directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DirectionForKey maps a key name (browser KeyboardEvent.key style, any
// case) to a direction. WASD and the arrow keys are recognised.
func DirectionForKey(key string) (Direction, bool) {
	switch strings.ToLower(key) {
	case "w", "arrowup":
		return DirUp, true
	case "s", "arrowdown":
		return DirDown, true
	case "a", "arrowleft":
		return DirLeft, true
	case "d", "arrowright":
		return DirRight, true
	}
	return 0, false
}

// InputState holds directional intent. Writers may run on any goroutine;
// every field is an independent atomic so the last writer wins.
type InputState struct {
	keys      [dirCount]atomic.Bool
	joyActive atomic.Bool
	joyX      atomic.Uint64
	joyY      atomic.Uint64
}

// InputFrame is a consistent-enough copy of InputState read once per tick.
type InputFrame struct {
	Up, Down, Left, Right bool
	JoystickActive        bool
	Joystick              Vec2
}

// SetKey records a direction press or release.
func (in *InputState) SetKey(d Direction, pressed bool) {
	if d < 0 || d >= dirCount {
		return
	}
	in.keys[d].Store(pressed)
}

// Pressed reports whether d is currently held.
func (in *InputState) Pressed(d Direction) bool {
	if d < 0 || d >= dirCount {
		return false
	}
	return in.keys[d].Load()
}

// SetJoystick sets the joystick vector. Components are clamped to [-1,1].
func (in *InputState) SetJoystick(x, y float64) {
	in.joyX.Store(math.Float64bits(clampUnit(x)))
	in.joyY.Store(math.Float64bits(clampUnit(y)))
	in.joyActive.Store(true)
}

// ReleaseJoystick recentres the joystick and marks it inactive.
func (in *InputState) ReleaseJoystick() {
	in.joyActive.Store(false)
	in.joyX.Store(math.Float64bits(0))
	in.joyY.Store(math.Float64bits(0))
}

// Clear releases every key and the joystick.
func (in *InputState) Clear() {
	for d := range in.keys {
		in.keys[d].Store(false)
	}
	in.ReleaseJoystick()
}

// Frame reads the current input.
func (in *InputState) Frame() InputFrame {
	return InputFrame{
		Up:             in.keys[DirUp].Load(),
		Down:           in.keys[DirDown].Load(),
		Left:           in.keys[DirLeft].Load(),
		Right:          in.keys[DirRight].Load(),
		JoystickActive: in.joyActive.Load(),
		Joystick: Vec2{
			X: math.Float64frombits(in.joyX.Load()),
			Y: math.Float64frombits(in.joyY.Load()),
		},
	}
}

// JoystickFromDelta converts a touch offset from the joystick base centre
// into a normalised vector. Offsets beyond radius are pulled back onto the
// rim, so the result always has length <= 1. The returned knob offset is
// the clamped pixel delta for drawing the stick.
func JoystickFromDelta(dx, dy, radius float64) (vec Vec2, knobX, knobY float64) {
	if radius <= 0 {
		return Vec2{}, 0, 0
	}
	d := math.Hypot(dx, dy)
	if d > radius {
		r := radius / d
		dx *= r
		dy *= r
	}
	return Vec2{X: dx / radius, Y: dy / radius}, dx, dy
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
