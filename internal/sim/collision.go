package sim

import "fmt"

// DestroyedSet records which targets are gone. It only grows during a
// session.
type DestroyedSet struct {
	m map[int]struct{}
}

// NewDestroyedSet returns an empty set.
func NewDestroyedSet() *DestroyedSet {
	return &DestroyedSet{m: make(map[int]struct{})}
}

// Add inserts idx and reports whether it was newly added.
func (d *DestroyedSet) Add(idx int) bool {
	if _, ok := d.m[idx]; ok {
		return false
	}
	d.m[idx] = struct{}{}
	return true
}

// Has reports whether idx is destroyed.
func (d *DestroyedSet) Has(idx int) bool {
	_, ok := d.m[idx]
	return ok
}

// Len returns the number of destroyed targets.
func (d *DestroyedSet) Len() int { return len(d.m) }

// Reset empties the set.
func (d *DestroyedSet) Reset() {
	clear(d.m)
}

// thresholdReached reports whether destroyed has reached 80% of total.
// Integer maths keeps the boundary exact: 10 targets end at 8.
func thresholdReached(destroyed, total int) bool {
	return total > 0 && destroyed*endDenom >= total*endNumer
}

// EndThreshold returns the number of destroyed targets that ends a
// session with total targets.
func EndThreshold(total int) int {
	if total <= 0 {
		return 0
	}
	return (total*endNumer + endDenom - 1) / endDenom
}

// checkCollisions destroys every live target within the destruction radius
// of the monster. It stops as soon as the session ends.
func (s *Session) checkCollisions() {
	monster, err := s.proj.Project(s.agent.Pos)
	if err != nil {
		s.noteNotReady()
		return
	}
	for i, t := range s.targets {
		if s.destroyed.Has(i) {
			continue
		}
		at, err := s.proj.Project(t.Pos)
		if err != nil {
			s.noteNotReady()
			return
		}
		if dist(monster, at) < s.tuning.DestructionRadius {
			s.destroy(i, at)
			if s.phase != PhaseActive {
				return
			}
		}
	}
}

// destroy applies every side effect of knocking down target idx, in order:
// mark, score, sound, rubble, debris, termination check.
func (s *Session) destroy(idx int, at Point) {
	if !s.destroyed.Add(idx) {
		return
	}
	t := s.targets[idx]
	s.score += t.Points()
	s.log.Add(s.tick, targetLabel(idx), CatDestroy, "building",
		fmt.Sprintf("size=%d +%d score=%d", t.Size, t.Points(), s.score), float64(t.Points()))

	s.play(SoundDestroy)

	if !s.effects.PlaceRubble(at) {
		s.log.Add(s.tick, targetLabel(idx), CatPool, "exhausted", "rubble", 1)
	}
	dropped := 0
	for i := 0; i < t.DebrisCount(); i++ {
		if !s.effects.SpawnDebris(at, s.rng) {
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Add(s.tick, targetLabel(idx), CatPool, "exhausted",
			fmt.Sprintf("debris dropped=%d", dropped), float64(dropped))
	}

	if thresholdReached(s.destroyed.Len(), len(s.targets)) {
		s.end(ReasonCleared)
	}
}
