package game

import (
	"image/color"
	"log"
	"time"

	"github.com/Garsondee/Vibezilla/internal/config"
	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxFrameDT caps the step after a stall (window drag, tab switch) so the
// monster cannot tunnel through the map in one tick.
const maxFrameDT = 0.1

// statusTTL is how long a transient status line stays on screen.
const statusTTL = 3 * time.Second

// Options wires the game to its collaborators.
type Options struct {
	Config config.Config
	Store  sim.HighScoreStore
	Sound  sim.SoundPlayer
	Seed   int64
}

// Game is the ebiten frontend. It owns one session and renders its
// snapshot over an offline map backdrop.
type Game struct {
	cfg      config.Config
	viewport *sim.MercatorViewport
	session  *sim.Session
	snap     sim.Snapshot

	width  int
	height int

	backdrop *backdrop
	hud      *hud
	feed     *Feed
	stick    touchStick

	lastUpdate time.Time
	logCursor  int

	status      string
	statusUntil time.Time
	showFeed    bool
}

// New builds the game in the idle phase. The session starts on the first
// Enter, Space, click or tap.
func New(opts Options) *Game {
	cfg := opts.Config
	vp := sim.NewMercatorViewport(cfg.Center(), cfg.Map.Zoom)
	s := sim.NewSession(sim.Options{
		Tuning:    cfg.SimTuning(),
		Projector: vp,
		Start:     cfg.Center(),
		Store:     opts.Store,
		Sound:     opts.Sound,
		Seed:      opts.Seed,
		Log:       sim.NewSimLog(false),
		Reporter:  sim.NewSessionReporter(0, 0),
	})
	g := &Game{
		cfg:      cfg,
		viewport: vp,
		session:  s,
		backdrop: newBackdrop(opts.Seed),
		hud:      newHUD(),
		feed:     NewFeed(),
		stick:    newTouchStick(),
		showFeed: true,
	}
	s.OnEnd(g.onEnd)
	return g
}

// Session exposes the running session, mainly for tests and tooling.
func (g *Game) Session() *sim.Session { return g.session }

func (g *Game) start() {
	g.session.Log().Reset()
	g.logCursor = 0
	g.feed.Clear()
	g.stick.reset()
	g.session.Start()
	g.lastUpdate = time.Now()
	log.Printf("[Game] session started: %d buildings", len(g.session.Targets()))
}

func (g *Game) onEnd(r sim.Result) {
	log.Printf("[Game] %s", r.Summary())
	g.pullFeed()
}

// Update advances the session by the wall-clock time since the last frame.
func (g *Game) Update() error {
	now := time.Now()
	dt := 0.0
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now
	if dt > maxFrameDT {
		dt = maxFrameDT
	}

	g.handleInput()
	if g.session.Phase() == sim.PhaseActive {
		g.session.Tick(dt)
		g.pullFeed()
	}
	if g.status != "" && now.After(g.statusUntil) {
		g.status = ""
	}
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showFeed = !g.showFeed
	}

	switch g.session.Phase() {
	case sim.PhaseIdle, sim.PhaseEnded:
		if g.startPressed() {
			g.start()
			return
		}
		if g.session.Phase() == sim.PhaseEnded && inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copyResult()
		}
	case sim.PhaseActive:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.session.Stop()
			return
		}
		for d, keys := range directionKeys {
			pressed := false
			for _, k := range keys {
				if ebiten.IsKeyPressed(k) {
					pressed = true
					break
				}
			}
			g.session.SetKey(sim.Direction(d), pressed)
		}
		g.stick.update(g.session, g.width, g.height)
	}
}

func (g *Game) startPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

func (g *Game) copyResult() {
	text := g.session.LastResult().Summary()
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("[Game] clipboard unavailable: %v", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("result copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(statusTTL)
}

// pullFeed copies new session log entries into the on-screen feed.
func (g *Game) pullFeed() {
	entries := g.session.Log().Entries()
	if g.logCursor > len(entries) {
		g.logCursor = 0
	}
	for _, e := range entries[g.logCursor:] {
		g.feed.AddEntry(e)
	}
	g.logCursor = len(entries)
}

// Draw renders the backdrop, world, effects and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.backdrop.draw(screen, g.viewport)

	g.session.FillSnapshot(&g.snap)
	drawRubble(screen, g.snap.Rubble)
	drawTargets(screen, g.snap.Targets)
	drawDebris(screen, g.snap.Debris)
	if g.snap.AgentVisible {
		drawMonster(screen, g.snap.Agent, g.snap.AgentSize, g.snap.Heading)
	}
	if g.session.Phase() == sim.PhaseActive {
		g.stick.draw(screen)
	}

	g.hud.drawScore(screen, &g.snap)
	if g.showFeed {
		g.feed.Draw(screen, g.hud, g.width)
	}

	switch g.session.Phase() {
	case sim.PhaseIdle:
		g.hud.drawStart(screen, g.width, g.height, g.session.HighScore(), g.cfg.MaskedAPIKey())
	case sim.PhaseEnded:
		g.hud.drawGameOver(screen, g.width, g.height, g.session.LastResult())
	}
	if g.status != "" {
		g.hud.drawStatus(screen, g.width, g.height, g.status)
	}
}

// Layout uses the window size directly: one screen pixel per map pixel.
// The first call makes the projector ready.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.viewport.Resize(outsideWidth, outsideHeight)
		g.backdrop.invalidate()
	}
	return outsideWidth, outsideHeight
}

// directionKeys lists the ebiten keys for each sim.Direction.
var directionKeys = [...][]ebiten.Key{
	sim.DirUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	sim.DirDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	sim.DirLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	sim.DirRight: {ebiten.KeyD, ebiten.KeyArrowRight},
}

var colorBackground = color.RGBA{R: 0x24, G: 0x2f, B: 0x3e, A: 255}
