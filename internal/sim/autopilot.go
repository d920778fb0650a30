package sim

import "math"

// Autopilot steering constants.
const (
	autopilotArriveGain = 1.5  // desired speed per px of remaining distance
	autopilotResponse   = 0.25 // seconds over which a velocity error is corrected
)

// Autopilot drives the joystick toward the nearest standing building. The
// headless report uses it to play whole sessions without a human.
type Autopilot struct {
	target int
}

// NewAutopilot returns an autopilot with no target locked.
func NewAutopilot() *Autopilot {
	return &Autopilot{target: -1}
}

// Target returns the locked target index, or -1.
func (a *Autopilot) Target() int { return a.target }

// Steer sets the session joystick for this tick. It returns false when
// there is nothing left to chase or the projector is not ready.
func (a *Autopilot) Steer(s *Session) bool {
	proj := s.Projector()
	me, err := proj.Project(s.Agent().Pos)
	if err != nil {
		return false
	}
	if a.target < 0 || a.target >= len(s.Targets()) || s.IsDestroyed(a.target) {
		a.target = a.nearest(s, me)
	}
	if a.target < 0 {
		s.ReleaseJoystick()
		return false
	}
	at, err := proj.Project(s.Targets()[a.target].Pos)
	if err != nil {
		return false
	}

	t := s.Tuning()
	dx, dy := at.X-me.X, at.Y-me.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		s.SetJoystick(0, 0)
		return true
	}
	speed := math.Min(t.MaxSpeed, d*autopilotArriveGain)
	want := Vec2{X: dx / d * speed, Y: dy / d * speed}
	vel := s.Agent().Vel
	k := t.Acceleration * autopilotResponse
	s.SetJoystick((want.X-vel.X)/k, (want.Y-vel.Y)/k)
	return true
}

func (a *Autopilot) nearest(s *Session, me Point) int {
	best, bestD := -1, math.MaxFloat64
	for i, t := range s.Targets() {
		if s.IsDestroyed(i) {
			continue
		}
		at, err := s.Projector().Project(t.Pos)
		if err != nil {
			return -1
		}
		if d := dist(me, at); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
