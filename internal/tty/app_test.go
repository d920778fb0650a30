package tty

import (
	"strings"
	"testing"

	"github.com/Garsondee/Vibezilla/internal/config"
	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, w, h int) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return New(screen, Options{Config: config.Default(), Seed: 5}), screen
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenHas(s tcell.Screen, needle string) bool {
	_, h := s.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(rowText(s, y), needle) {
			return true
		}
	}
	return false
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestApp_ViewportMatchesCells(t *testing.T) {
	app, _ := newTestApp(t, 80, 25)
	w, h := app.viewport.Size()
	if w != 80*CellW || h != 24*CellH {
		t.Fatalf("expected %dx%d viewport, got %dx%d", 80*CellW, 24*CellH, w, h)
	}
}

func TestApp_IdleScreen(t *testing.T) {
	app, screen := newTestApp(t, 80, 25)
	app.Draw()
	if !screenHas(screen, "V I B E Z I L L A") {
		t.Fatal("title missing from the idle screen")
	}
	if !strings.HasPrefix(rowText(screen, 0), " SCORE 0  BEST 0") {
		t.Fatalf("unexpected HUD row %q", rowText(screen, 0))
	}
}

func TestApp_EnterStartsAndArrowsMove(t *testing.T) {
	app, screen := newTestApp(t, 80, 25)
	if !app.HandleEvent(key(tcell.KeyEnter)) {
		t.Fatal("enter should not quit")
	}
	s := app.Session()
	if s.Phase() != sim.PhaseActive || len(s.Targets()) == 0 {
		t.Fatalf("expected an active session with targets, got %s/%d", s.Phase(), len(s.Targets()))
	}

	start := s.Agent().Pos
	for i := 0; i < 10; i++ {
		app.HandleEvent(key(tcell.KeyRight))
		app.Step(sim.DefaultTickDT)
	}
	if s.Agent().Pos.Lng <= start.Lng {
		t.Fatalf("monster did not move east: %.7f -> %.7f", start.Lng, s.Agent().Pos.Lng)
	}

	app.Draw()
	mx, my := cellOf(app.snap.Agent)
	if r, _, _, _ := screen.GetContent(mx, my); r != glyphMonster {
		t.Fatalf("expected monster at cell (%d,%d), found %q", mx, my, r)
	}
	if !strings.Contains(rowText(screen, 0), "SMASHED") {
		t.Fatalf("HUD should show progress, got %q", rowText(screen, 0))
	}
}

func TestApp_EscapeStopsThenQuits(t *testing.T) {
	app, screen := newTestApp(t, 80, 25)
	app.HandleEvent(runeKey(' '))
	if app.Session().Phase() != sim.PhaseActive {
		t.Fatal("space should start the session")
	}
	if !app.HandleEvent(runeKey('q')) {
		t.Fatal("q must not quit mid-rampage")
	}
	if !app.HandleEvent(key(tcell.KeyEscape)) {
		t.Fatal("escape during play should stop, not quit")
	}
	if app.Session().Phase() != sim.PhaseEnded {
		t.Fatalf("expected ended, got %s", app.Session().Phase())
	}
	app.Draw()
	if !screenHas(screen, "RAMPAGE OVER") {
		t.Fatal("game over box missing")
	}
	if app.HandleEvent(key(tcell.KeyEscape)) {
		t.Fatal("escape on the game over screen should quit")
	}
	if app.HandleEvent(key(tcell.KeyCtrlC)) {
		t.Fatal("ctrl-c should quit")
	}
}

func TestApp_ResizeEvent(t *testing.T) {
	app, screen := newTestApp(t, 80, 25)
	screen.SetSize(40, 11)
	app.HandleEvent(tcell.NewEventResize(40, 11))
	if w, h := app.viewport.Size(); w != 40*CellW || h != 10*CellH {
		t.Fatalf("viewport not resized: %dx%d", w, h)
	}
}

func TestKeyLatch(t *testing.T) {
	s := sim.NewSession(sim.Options{})
	var l keyLatch
	l.press(sim.DirUp)
	l.apply(s, 0.2)
	if !l.held(sim.DirUp) {
		t.Fatal("up should still be held after 0.2s")
	}
	l.apply(s, 0.2)
	if l.held(sim.DirUp) {
		t.Fatal("up should expire without a repeat")
	}

	l.press(sim.DirLeft)
	l.press(sim.DirRight)
	if l.held(sim.DirLeft) || !l.held(sim.DirRight) {
		t.Fatal("pressing right should release left")
	}
	l.clear()
	if l.held(sim.DirRight) {
		t.Fatal("clear left a direction held")
	}
}

func TestCellOf(t *testing.T) {
	x, y := cellOf(sim.Point{X: 17, Y: 33})
	if x != 2 || y != 3 {
		t.Fatalf("expected cell (2,3), got (%d,%d)", x, y)
	}
}
