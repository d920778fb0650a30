package sim

// TargetView is a building as the renderer sees it.
type TargetView struct {
	Screen    Point
	Size      int
	Destroyed bool
}

// DebrisView is one visible particle.
type DebrisView struct {
	Screen  Point
	Opacity float64
}

// Snapshot is the per-frame render state. Renderers read it and never
// write back into the session.
type Snapshot struct {
	Phase     Phase
	Score     int
	HighScore int
	Destroyed int
	Total     int

	// AgentVisible is false until the projector is ready.
	AgentVisible bool
	Agent        Point
	AgentSize    float64
	Heading      float64

	Targets []TargetView
	Debris  []DebrisView
	Rubble  []Point
}

// FillSnapshot writes the current render state into snap, reusing its
// slices.
func (s *Session) FillSnapshot(snap *Snapshot) {
	snap.Phase = s.phase
	snap.Score = s.score
	snap.HighScore = s.highScore
	snap.Destroyed = s.destroyed.Len()
	snap.Total = len(s.targets)
	snap.AgentSize = s.agent.Size
	snap.Heading = s.agent.Heading
	snap.Targets = snap.Targets[:0]
	snap.Debris = snap.Debris[:0]
	snap.Rubble = snap.Rubble[:0]

	p, err := s.proj.Project(s.agent.Pos)
	snap.AgentVisible = err == nil && s.phase != PhaseIdle
	snap.Agent = p

	if err == nil {
		for i, t := range s.targets {
			at, perr := s.proj.Project(t.Pos)
			if perr != nil {
				break
			}
			snap.Targets = append(snap.Targets, TargetView{
				Screen:    at,
				Size:      t.Size,
				Destroyed: s.destroyed.Has(i),
			})
		}
	}
	s.effects.Debris.Each(func(_ int, d *Debris) {
		snap.Debris = append(snap.Debris, DebrisView{Screen: d.Pos, Opacity: d.Opacity()})
	})
	s.effects.Rubble.Each(func(_ int, r *Rubble) {
		snap.Rubble = append(snap.Rubble, r.Pos)
	})
}
