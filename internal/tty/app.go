// Package tty is a terminal frontend for the game, drawn with tcell.
package tty

import (
	"context"
	"log"
	"time"

	"github.com/Garsondee/Vibezilla/internal/config"
	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/gdamore/tcell/v2"
)

// frameInterval is the tick and redraw period.
const frameInterval = 16 * time.Millisecond

// Options wires the app to its collaborators.
type Options struct {
	Config config.Config
	Store  sim.HighScoreStore
	Sound  sim.SoundPlayer
	Seed   int64
}

// App runs one session on a tcell screen. The caller owns the screen's
// Init and Fini.
type App struct {
	screen   tcell.Screen
	viewport *sim.MercatorViewport
	session  *sim.Session
	latch    keyLatch
	snap     sim.Snapshot
}

// New builds an idle app sized to the screen.
func New(screen tcell.Screen, opts Options) *App {
	cfg := opts.Config
	vp := sim.NewMercatorViewport(cfg.Center(), cfg.Map.Zoom)
	a := &App{
		screen:   screen,
		viewport: vp,
		session: sim.NewSession(sim.Options{
			Tuning:    cfg.SimTuning(),
			Projector: vp,
			Start:     cfg.Center(),
			Store:     opts.Store,
			Sound:     opts.Sound,
			Seed:      opts.Seed,
			Log:       sim.NewSimLog(false),
		}),
	}
	a.session.OnEnd(func(r sim.Result) {
		log.Printf("[TTY] %s", r.Summary())
	})
	a.resize()
	return a
}

// Session exposes the running session.
func (a *App) Session() *sim.Session { return a.session }

// resize fits the map viewport to the cells below the HUD.
func (a *App) resize() {
	w, h := a.screen.Size()
	rows := h - hudRows
	if rows < 0 {
		rows = 0
	}
	a.viewport.Resize(w*CellW, rows*CellH)
}

func (a *App) start() {
	a.latch.clear()
	a.session.Log().Reset()
	a.session.Start()
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	active := a.session.Phase() == sim.PhaseActive
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if !active {
			return false
		}
		a.session.Stop()
		return true
	case tcell.KeyEnter:
		if !active {
			a.start()
		}
		return true
	}

	if d, ok := sim.DirectionForKey(keyName(ev)); ok {
		if active {
			a.latch.press(d)
		}
		return true
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'q', 'Q':
			if !active {
				return false
			}
		case ' ':
			if !active {
				a.start()
			}
		}
	}
	return true
}

// keyName translates a tcell key into the name DirectionForKey expects.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}

// Step advances the session by dt seconds.
func (a *App) Step(dt float64) {
	if a.session.Phase() != sim.PhaseActive {
		return
	}
	a.latch.apply(a.session, dt)
	a.session.Tick(dt)
}

// Draw renders the current frame and shows it.
func (a *App) Draw() {
	a.session.FillSnapshot(&a.snap)
	render(a.screen, &a.snap, a.session.LastResult())
	a.screen.Show()
}

// Run polls events and ticks until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > 0.1 {
				dt = 0.1
			}
			a.Step(dt)
			a.Draw()
		}
	}
}
