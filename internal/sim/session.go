package sim

import (
	"context"
	"fmt"
	"log"
	"math/rand"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SoundID names a sound effect.
type SoundID int

const (
	SoundRoar SoundID = iota
	SoundDestroy
)

func (id SoundID) String() string {
	switch id {
	case SoundRoar:
		return "roar"
	case SoundDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// SoundPlayer plays fire-and-forget sound effects. A returned error is
// logged and otherwise ignored.
type SoundPlayer interface {
	Play(id SoundID) error
}

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	// LoadHighScore returns ok=false when nothing has been stored yet.
	LoadHighScore() (score int, ok bool, err error)
	SaveHighScore(score int) error
}

// Options configures a Session. Projector is required.
type Options struct {
	Tuning    Tuning
	Projector Projector
	Start     LatLng // monster spawn point, normally the map centre
	Store     HighScoreStore
	Sound     SoundPlayer
	Seed      int64
	Log       *SimLog
	Reporter  *SessionReporter
}

// Session owns every piece of game state for one player: the monster, the
// targets, the effect pools and the score. All methods except the input
// setters must be called from the ticking goroutine.
type Session struct {
	tuning   Tuning
	proj     Projector
	start    LatLng
	store    HighScoreStore
	sound    SoundPlayer
	rng      *rand.Rand
	log      *SimLog
	reporter *SessionReporter

	phase     Phase
	input     InputState
	agent     Agent
	targets   []Target
	scattered bool
	destroyed *DestroyedSet
	effects   *Effects

	score     int
	highScore int
	tick      int
	elapsed   float64

	notReadyLogged bool
	onEnd          func(Result)
	last           Result
}

// NewSession builds an idle session and loads the stored high score.
func NewSession(opts Options) *Session {
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = DefaultTuning()
	}
	if opts.Log == nil {
		opts.Log = NewSimLog(false)
	}
	s := &Session{
		tuning:    opts.Tuning,
		proj:      opts.Projector,
		start:     opts.Start,
		store:     opts.Store,
		sound:     opts.Sound,
		rng:       rand.New(rand.NewSource(opts.Seed)), // #nosec G404 -- gameplay only
		log:       opts.Log,
		reporter:  opts.Reporter,
		destroyed: NewDestroyedSet(),
		effects:   NewEffects(opts.Tuning),
	}
	s.loadHighScore()
	return s
}

func (s *Session) loadHighScore() {
	if s.store == nil {
		return
	}
	hs, ok, err := s.store.LoadHighScore()
	if err != nil {
		log.Printf("[Session] could not load high score: %v", err)
		s.log.Add(0, "--", CatSave, "load_failed", err.Error(), 0)
		return
	}
	if ok && hs > 0 {
		s.highScore = hs
	}
}

// OnEnd registers fn to run when the session ends.
func (s *Session) OnEnd(fn func(Result)) {
	s.onEnd = fn
}

// Start resets all per-session state and begins play. Calling Start on an
// active or ended session restarts it.
func (s *Session) Start() {
	s.score = 0
	s.tick = 0
	s.elapsed = 0
	s.destroyed.Reset()
	s.agent = Agent{Pos: s.start, Size: s.tuning.AgentSize}
	s.effects.Reset()
	s.input.Clear()
	s.targets = nil
	s.scattered = false
	s.notReadyLogged = false
	s.last = Result{}
	if s.reporter != nil {
		s.reporter.Reset()
	}

	s.phase = PhaseActive
	s.ensureTargets()
	s.log.Add(0, "monster", CatSession, "start",
		fmt.Sprintf("targets=%d high=%d", len(s.targets), s.highScore), float64(len(s.targets)))
	s.play(SoundRoar)
}

// Stop ends an active session early. It is a no-op otherwise.
func (s *Session) Stop() {
	if s.phase == PhaseActive {
		s.end(ReasonStopped)
	}
}

// AwaitReady blocks until the projector is ready or ctx is done.
func (s *Session) AwaitReady(ctx context.Context) error {
	select {
	case <-s.proj.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick advances the simulation by dt seconds. It does nothing unless the
// session is active.
func (s *Session) Tick(dt float64) {
	if s.phase != PhaseActive || dt < 0 {
		return
	}
	s.tick++
	s.elapsed += dt

	s.agent.Vel = IntegrateVelocity(s.agent.Vel, s.input.Frame(), dt, s.tuning)

	if s.ensureTargets() {
		if err := MoveAgent(&s.agent, s.proj, dt); err != nil {
			s.noteNotReady()
		} else {
			s.log.AddVerbose(s.tick, "monster", CatMove, "position",
				fmt.Sprintf("(%.6f,%.6f) v=(%.1f,%.1f)", s.agent.Pos.Lat, s.agent.Pos.Lng, s.agent.Vel.X, s.agent.Vel.Y),
				s.agent.Vel.Len())
			s.checkCollisions()
		}
	} else {
		s.noteNotReady()
	}

	s.effects.Update(dt)

	if s.reporter != nil && s.tick%s.reporter.Interval() == 0 {
		s.reporter.Collect(s)
	}
}

// ensureTargets scatters the buildings the first time the projector is
// ready during this session. It reports whether targets are in place.
func (s *Session) ensureTargets() bool {
	if s.scattered {
		return true
	}
	select {
	case <-s.proj.Ready():
	default:
		return false
	}
	b, err := s.proj.Bounds()
	if err != nil {
		return false
	}
	s.targets = ScatterTargets(b, s.tuning.GridStep, s.tuning.Jitter, s.rng)
	s.scattered = true
	if s.tick > 0 {
		s.log.Add(s.tick, "--", CatProjector, "ready",
			fmt.Sprintf("targets=%d", len(s.targets)), float64(len(s.targets)))
	}
	return true
}

func (s *Session) noteNotReady() {
	if s.notReadyLogged {
		return
	}
	s.notReadyLogged = true
	s.log.Add(s.tick, "--", CatProjector, "not_ready", ErrNotReady.Error(), 0)
}

func (s *Session) play(id SoundID) {
	if s.sound == nil {
		return
	}
	if err := s.sound.Play(id); err != nil {
		log.Printf("[Session] could not play %s: %v", id, err)
		s.log.Add(s.tick, "--", CatSound, "play_failed", fmt.Sprintf("%s: %v", id, err), 0)
	}
}

func (s *Session) end(reason EndReason) {
	s.phase = PhaseEnded
	res := Result{
		Reason:    reason,
		Score:     s.score,
		Destroyed: s.destroyed.Len(),
		Total:     len(s.targets),
		Ticks:     s.tick,
		Elapsed:   s.elapsed,
	}
	if s.score > s.highScore {
		s.highScore = s.score
		res.NewHighScore = true
		if s.store != nil {
			if err := s.store.SaveHighScore(s.score); err != nil {
				log.Printf("[Session] could not save high score: %v", err)
				s.log.Add(s.tick, "--", CatSave, "save_failed", err.Error(), float64(s.score))
			}
		}
	}
	res.HighScore = s.highScore
	s.last = res
	if s.reporter != nil {
		s.reporter.Collect(s)
	}
	s.log.Add(s.tick, "monster", CatSession, "end",
		fmt.Sprintf("%s score=%d high=%d destroyed=%d/%d", reason, res.Score, res.HighScore, res.Destroyed, res.Total),
		float64(res.Score))
	if s.onEnd != nil {
		s.onEnd(res)
	}
}

// SetKey records a keyboard direction. Ignored unless the session is active.
func (s *Session) SetKey(d Direction, pressed bool) {
	if s.phase != PhaseActive {
		return
	}
	s.input.SetKey(d, pressed)
}

// SetJoystick records the joystick vector. Ignored unless the session is active.
func (s *Session) SetJoystick(x, y float64) {
	if s.phase != PhaseActive {
		return
	}
	s.input.SetJoystick(x, y)
}

// ReleaseJoystick recentres the joystick.
func (s *Session) ReleaseJoystick() {
	s.input.ReleaseJoystick()
}

// Input exposes the raw input state for frontends that gate input themselves.
func (s *Session) Input() *InputState { return &s.input }

func (s *Session) Phase() Phase           { return s.phase }
func (s *Session) Score() int             { return s.score }
func (s *Session) HighScore() int         { return s.highScore }
func (s *Session) Agent() Agent           { return s.agent }
func (s *Session) Targets() []Target      { return s.targets }
func (s *Session) IsDestroyed(i int) bool { return s.destroyed.Has(i) }
func (s *Session) DestroyedCount() int    { return s.destroyed.Len() }
func (s *Session) Effects() *Effects      { return s.effects }
func (s *Session) Log() *SimLog           { return s.log }
func (s *Session) CurrentTick() int       { return s.tick }
func (s *Session) Elapsed() float64       { return s.elapsed }
func (s *Session) Tuning() Tuning         { return s.tuning }
func (s *Session) Projector() Projector   { return s.proj }

// LastResult returns the result of the most recent ended session.
func (s *Session) LastResult() Result { return s.last }
