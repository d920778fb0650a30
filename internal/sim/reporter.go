package sim

import (
	"fmt"
	"strings"
)

const (
	reportIntervalTicks = 60  // ~1s at 60 TPS
	reportWindowTicks   = 600 // ~10s
)

// SessionReport is one periodic sample of session state.
type SessionReport struct {
	Tick         int
	Elapsed      float64
	Score        int
	Destroyed    int
	Total        int
	Speed        float64
	DebrisActive int
	RubbleActive int
	DebrisMisses int
	RubbleMisses int
}

// WindowReport summarises the samples in the trailing window.
type WindowReport struct {
	FromTick    int
	ToTick      int
	SampleCount int

	ScorePerSecond    float64
	DestroyedInWindow int
	AvgSpeed          float64
	AvgDebrisActive   float64
	PeakDebrisActive  int
	RubbleActive      int
	DebrisMisses      int
	RubbleMisses      int
}

// SessionReporter collects periodic reports and summarises sliding windows.
type SessionReporter struct {
	history     []SessionReport
	interval    int
	windowTicks int
}

// NewSessionReporter creates a reporter sampling every interval ticks and
// summarising the last windowTicks ticks. Non-positive values pick defaults.
func NewSessionReporter(interval, windowTicks int) *SessionReporter {
	if interval <= 0 {
		interval = reportIntervalTicks
	}
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SessionReporter{interval: interval, windowTicks: windowTicks}
}

// Interval is the sampling period in ticks.
func (r *SessionReporter) Interval() int { return r.interval }

// Reset drops all samples.
func (r *SessionReporter) Reset() { r.history = r.history[:0] }

// Collect samples the session. A second sample at the same tick replaces
// the first.
func (r *SessionReporter) Collect(s *Session) {
	fx := s.Effects()
	rep := SessionReport{
		Tick:         s.CurrentTick(),
		Elapsed:      s.Elapsed(),
		Score:        s.Score(),
		Destroyed:    s.DestroyedCount(),
		Total:        len(s.Targets()),
		Speed:        s.Agent().Vel.Len(),
		DebrisActive: fx.Debris.Len(),
		RubbleActive: fx.Rubble.Len(),
		DebrisMisses: fx.Debris.Misses(),
		RubbleMisses: fx.Rubble.Misses(),
	}
	if n := len(r.history); n > 0 && r.history[n-1].Tick == rep.Tick {
		r.history[n-1] = rep
		return
	}
	r.history = append(r.history, rep)
}

// Latest returns the most recent sample, or nil.
func (r *SessionReporter) Latest() *SessionReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every sample.
func (r *SessionReporter) History() []SessionReport {
	return r.history
}

// WindowSummary aggregates the samples inside the trailing window, or nil
// when there are none.
func (r *SessionReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	last := r.history[len(r.history)-1]
	from := last.Tick - r.windowTicks
	var in []SessionReport
	var before *SessionReport
	for i := range r.history {
		if r.history[i].Tick <= from {
			before = &r.history[i]
			continue
		}
		in = append(in, r.history[i])
	}

	wr := &WindowReport{
		FromTick:     in[0].Tick,
		ToTick:       last.Tick,
		SampleCount:  len(in),
		RubbleActive: last.RubbleActive,
		DebrisMisses: last.DebrisMisses,
		RubbleMisses: last.RubbleMisses,
	}
	base := SessionReport{}
	if before != nil {
		base = *before
		wr.FromTick = before.Tick
	}
	wr.DestroyedInWindow = last.Destroyed - base.Destroyed
	if span := last.Elapsed - base.Elapsed; span > 0 {
		wr.ScorePerSecond = float64(last.Score-base.Score) / span
	}
	speedSum, debrisSum := 0.0, 0
	for _, rep := range in {
		speedSum += rep.Speed
		debrisSum += rep.DebrisActive
		if rep.DebrisActive > wr.PeakDebrisActive {
			wr.PeakDebrisActive = rep.DebrisActive
		}
	}
	wr.AvgSpeed = speedSum / float64(len(in))
	wr.AvgDebrisActive = float64(debrisSum) / float64(len(in))
	return wr
}

// Format renders the window summary as a short multi-line block.
func (wr *WindowReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Window T=%d..%d (%d samples) ---\n", wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "score/s=%.1f destroyed=%d avg_speed=%.1fpx/s\n",
		wr.ScorePerSecond, wr.DestroyedInWindow, wr.AvgSpeed)
	fmt.Fprintf(&sb, "debris avg=%.1f peak=%d misses=%d  rubble=%d misses=%d\n",
		wr.AvgDebrisActive, wr.PeakDebrisActive, wr.DebrisMisses, wr.RubbleActive, wr.RubbleMisses)
	return sb.String()
}

// FormatLatest renders the latest sample on one line.
func (r *SessionReporter) FormatLatest() string {
	rep := r.Latest()
	if rep == nil {
		return "(no reports)"
	}
	return fmt.Sprintf("T=%d score=%d destroyed=%d/%d speed=%.1f debris=%d rubble=%d",
		rep.Tick, rep.Score, rep.Destroyed, rep.Total, rep.Speed, rep.DebrisActive, rep.RubbleActive)
}
