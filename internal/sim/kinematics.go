package sim

import "math"

// headingMinSpeed is the per-axis speed below which the monster keeps its
// previous facing.
const headingMinSpeed = 5.0

// Agent is the monster.
type Agent struct {
	Pos  LatLng
	Vel  Vec2
	Size float64 // screen px
	// Heading in degrees, screen space (0 = right, 90 = down).
	Heading float64
}

// IntegrateVelocity applies input acceleration, frame-rate independent
// friction and the speed clamp, in that order.
func IntegrateVelocity(v Vec2, in InputFrame, dt float64, t Tuning) Vec2 {
	step := t.Acceleration * dt
	if in.Up {
		v.Y -= step
	}
	if in.Down {
		v.Y += step
	}
	if in.Left {
		v.X -= step
	}
	if in.Right {
		v.X += step
	}
	if in.JoystickActive {
		v.X += in.Joystick.X * step
		v.Y += in.Joystick.Y * step
	}

	decay := math.Pow(t.Friction, dt)
	v.X *= decay
	v.Y *= decay

	if speed := v.Len(); speed > t.MaxSpeed {
		r := t.MaxSpeed / speed
		v.X *= r
		v.Y *= r
	}
	return v
}

// MoveAgent advances a.Pos by a.Vel*dt through the projector and clamps it
// to the visible bounds. An axis that hits a bound loses its velocity.
// Returns ErrNotReady, leaving the agent untouched, if the projector is
// not ready.
func MoveAgent(a *Agent, proj Projector, dt float64) error {
	screen, err := proj.Project(a.Pos)
	if err != nil {
		return err
	}
	screen.X += a.Vel.X * dt
	screen.Y += a.Vel.Y * dt
	pos, err := proj.Unproject(screen)
	if err != nil {
		return err
	}
	bounds, err := proj.Bounds()
	if err != nil {
		return err
	}

	if pos.Lat > bounds.NE.Lat {
		pos.Lat = bounds.NE.Lat
		a.Vel.Y = 0
	}
	if pos.Lat < bounds.SW.Lat {
		pos.Lat = bounds.SW.Lat
		a.Vel.Y = 0
	}
	if pos.Lng > bounds.NE.Lng {
		pos.Lng = bounds.NE.Lng
		a.Vel.X = 0
	}
	if pos.Lng < bounds.SW.Lng {
		pos.Lng = bounds.SW.Lng
		a.Vel.X = 0
	}
	a.Pos = pos
	a.updateHeading()
	return nil
}

func (a *Agent) updateHeading() {
	if math.Abs(a.Vel.X) > headingMinSpeed || math.Abs(a.Vel.Y) > headingMinSpeed {
		a.Heading = math.Atan2(a.Vel.Y, a.Vel.X) * 180 / math.Pi
	}
}
