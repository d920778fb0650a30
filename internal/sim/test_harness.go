package sim

import "fmt"

// DefaultTickDT is the fixed step the harness and headless runs use.
const DefaultTickDT = 1.0 / 60.0

// Harness defaults: lower Manhattan at street zoom on a 1280x720 view.
var (
	DefaultCenter = LatLng{Lat: 40.7128, Lng: -74.0060}
	DefaultZoom   = 18
)

// TestSim is a headless session harness used by tests and the headless
// report. It owns a Mercator viewport and records every end result.
type TestSim struct {
	Width    int
	Height   int
	Center   LatLng
	Zoom     int
	Seed     int64
	Tuning   Tuning
	DT       float64
	Viewport *MercatorViewport
	Session  *Session
	SimLog   *SimLog
	Reporter *SessionReporter
	Results  []Result

	store     HighScoreStore
	sound     SoundPlayer
	noResize  bool
	targetsPx []pxTarget
	agentPx   *Point
}

type pxTarget struct {
	at   Point
	size int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // view, seed, tuning, collaborators
	simOptSession                      // applied after Start: targets, agent placement
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithViewport sets the viewport pixel size.
func WithViewport(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithCenter sets the map centre and zoom.
func WithCenter(c LatLng, zoom int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Center = c
		ts.Zoom = zoom
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Seed = seed
	}}
}

// WithTuning edits the tuning before the session is built.
func WithTuning(edit func(*Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.Tuning)
	}}
}

// WithVerbose enables per-tick movement logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithStore sets the high-score store.
func WithStore(st HighScoreStore) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.store = st
	}}
}

// WithSound sets the sound player.
func WithSound(p SoundPlayer) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.sound = p
	}}
}

// WithReporter attaches a reporter sampling every interval ticks.
func WithReporter(interval, windowTicks int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Reporter = NewSessionReporter(interval, windowTicks)
	}}
}

// WithProjectorNotReady leaves the viewport unsized so the projector never
// becomes ready until Resize is called.
func WithProjectorNotReady() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.noResize = true
	}}
}

// WithTargetAt replaces the scattered buildings with explicit ones placed
// at screen pixel (x,y). Repeat for more buildings.
func WithTargetAt(x, y float64, size int) SimOption {
	return SimOption{simOptSession, func(ts *TestSim) {
		ts.targetsPx = append(ts.targetsPx, pxTarget{at: Point{X: x, Y: y}, size: size})
	}}
}

// WithAgentAt moves the monster to screen pixel (x,y) after start.
func WithAgentAt(x, y float64) SimOption {
	return SimOption{simOptSession, func(ts *TestSim) {
		ts.agentPx = &Point{X: x, Y: y}
	}}
}

// NewTestSim builds and starts a session from the given options:
//  1. Infrastructure (view, seed, tuning, store, sound)
//  2. Session construction and Start
//  3. Explicit targets and agent placement
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:  1280,
		Height: 720,
		Center: DefaultCenter,
		Zoom:   DefaultZoom,
		Seed:   1,
		Tuning: DefaultTuning(),
		DT:     DefaultTickDT,
		SimLog: NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Viewport = NewMercatorViewport(ts.Center, ts.Zoom)
	if !ts.noResize {
		ts.Viewport.Resize(ts.Width, ts.Height)
	}
	ts.Session = NewSession(Options{
		Tuning:    ts.Tuning,
		Projector: ts.Viewport,
		Start:     ts.Center,
		Store:     ts.store,
		Sound:     ts.sound,
		Seed:      ts.Seed,
		Log:       ts.SimLog,
		Reporter:  ts.Reporter,
	})
	ts.Session.OnEnd(func(r Result) {
		ts.Results = append(ts.Results, r)
	})
	ts.Session.Start()
	for _, o := range opts {
		if o.kind == simOptSession {
			o.fn(ts)
		}
	}
	ts.place()
	return ts
}

// place applies explicit targets and agent placement. Requires a ready
// viewport; silently skipped otherwise.
func (ts *TestSim) place() {
	if len(ts.targetsPx) > 0 {
		targets := make([]Target, 0, len(ts.targetsPx))
		for _, pt := range ts.targetsPx {
			ll, err := ts.Viewport.Unproject(pt.at)
			if err != nil {
				return
			}
			targets = append(targets, Target{Pos: ll, Size: pt.size})
		}
		ts.Session.targets = targets
		ts.Session.scattered = true
	}
	if ts.agentPx != nil {
		if ll, err := ts.Viewport.Unproject(*ts.agentPx); err == nil {
			ts.Session.agent.Pos = ll
		}
	}
}

// Restart starts a fresh session on the same harness, keeping explicit
// targets and agent placement.
func (ts *TestSim) Restart() {
	ts.Session.Start()
	ts.place()
}

// RunTicks advances the session n fixed steps.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Session.Tick(ts.DT)
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate holds.
// Returns the session tick at which it held, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Session.Tick(ts.DT)
		if predicate(ts) {
			return ts.Session.CurrentTick()
		}
	}
	return -1
}

// RunAutopilot plays the session with an Autopilot until it ends or
// maxTicks pass. Returns true if the session ended.
func (ts *TestSim) RunAutopilot(maxTicks int) bool {
	ap := NewAutopilot()
	for i := 0; i < maxTicks; i++ {
		if ts.Session.Phase() != PhaseActive {
			return true
		}
		ap.Steer(ts.Session)
		ts.Session.Tick(ts.DT)
	}
	return ts.Session.Phase() == PhaseEnded
}

// AgentScreen returns the monster's current screen position.
func (ts *TestSim) AgentScreen() Point {
	p, _ := ts.Viewport.Project(ts.Session.Agent().Pos)
	return p
}

// Summary returns a short human-readable summary for t.Log.
func (ts *TestSim) Summary() string {
	s := ts.Session
	a := ts.AgentScreen()
	return fmt.Sprintf("--- Summary at T=%03d ---\nphase=%s score=%d high=%d destroyed=%d/%d\nmonster=(%.1f,%.1f) v=(%.1f,%.1f) debris=%d rubble=%d\n",
		s.CurrentTick(), s.Phase(), s.Score(), s.HighScore(), s.DestroyedCount(), len(s.Targets()),
		a.X, a.Y, s.Agent().Vel.X, s.Agent().Vel.Y, s.Effects().Debris.Len(), s.Effects().Rubble.Len())
}
