package tty

import "github.com/Garsondee/Vibezilla/internal/sim"

// latchHold is how long one key event keeps a direction held. Terminals
// only report presses, so auto-repeat has to refresh it.
const latchHold = 0.3

// keyLatch turns key presses into held directions that expire.
type keyLatch struct {
	remaining [4]float64
}

func opposite(d sim.Direction) sim.Direction {
	switch d {
	case sim.DirUp:
		return sim.DirDown
	case sim.DirDown:
		return sim.DirUp
	case sim.DirLeft:
		return sim.DirRight
	default:
		return sim.DirLeft
	}
}

// press holds d and drops the opposite direction.
func (l *keyLatch) press(d sim.Direction) {
	l.remaining[d] = latchHold
	l.remaining[opposite(d)] = 0
}

func (l *keyLatch) clear() {
	l.remaining = [4]float64{}
}

func (l *keyLatch) held(d sim.Direction) bool {
	return l.remaining[d] > 0
}

// apply pushes the held set into s, then ages every latch by dt.
func (l *keyLatch) apply(s *sim.Session, dt float64) {
	for d := range l.remaining {
		s.SetKey(sim.Direction(d), l.remaining[d] > 0)
		if l.remaining[d] > 0 {
			l.remaining[d] -= dt
		}
	}
}
