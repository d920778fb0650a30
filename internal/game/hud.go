package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colorText     = color.RGBA{R: 230, G: 236, B: 240, A: 255}
	colorTextDim  = color.RGBA{R: 150, G: 165, B: 180, A: 255}
	colorAccent   = color.RGBA{R: 120, G: 220, B: 110, A: 255}
	colorWarn     = color.RGBA{R: 250, G: 200, B: 80, A: 255}
	colorPanel    = color.RGBA{R: 10, G: 14, B: 20, A: 220}
	colorPanelRim = color.RGBA{R: 70, G: 90, B: 110, A: 220}
)

// hud draws text with the 7x13 bitmap font, scaled by integer factors.
type hud struct {
	face *text.GoXFace
}

func newHUD() *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13)}
}

// text draws s with its top-left corner at (x,y).
func (h *hud) text(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = 15
	text.Draw(dst, s, h.face, op)
}

// centred draws s horizontally centred on cx.
func (h *hud) centred(dst *ebiten.Image, s string, cx, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, h.face, 15)
	h.text(dst, s, cx-w*scale/2, y, scale, clr)
}

func (h *hud) drawScore(screen *ebiten.Image, snap *sim.Snapshot) {
	if snap.Phase == sim.PhaseIdle {
		return
	}
	lines := []string{
		fmt.Sprintf("SCORE %d", snap.Score),
		fmt.Sprintf("BEST  %d", snap.HighScore),
	}
	if snap.Total > 0 {
		lines = append(lines, fmt.Sprintf("SMASHED %d/%d", snap.Destroyed, sim.EndThreshold(snap.Total)))
	} else {
		lines = append(lines, "LOCATING CITY...")
	}
	vector.FillRect(screen, 8, 8, 200, float32(len(lines))*26+10, colorPanel, false)
	vector.StrokeRect(screen, 8, 8, 200, float32(len(lines))*26+10, 1, colorPanelRim, false)
	for i, l := range lines {
		clr := color.Color(colorText)
		if i == 0 {
			clr = colorAccent
		}
		h.text(screen, l, 16, 12+float64(i)*26, 2, clr)
	}
	h.text(screen, fmt.Sprintf("%.0f TPS", ebiten.ActualTPS()), 16, 12+float64(len(lines))*26, 1, colorTextDim)
}

func (h *hud) panel(screen *ebiten.Image, w, ht int, boxW, boxH float32) (float32, float32) {
	vector.FillRect(screen, 0, 0, float32(w), float32(ht), color.RGBA{A: 120}, false)
	x := (float32(w) - boxW) / 2
	y := (float32(ht) - boxH) / 2
	vector.FillRect(screen, x, y, boxW, boxH, colorPanel, false)
	vector.StrokeRect(screen, x, y, boxW, boxH, 2, colorPanelRim, false)
	return x, y
}

func (h *hud) drawStart(screen *ebiten.Image, w, ht, highScore int, maskedKey string) {
	_, y := h.panel(screen, w, ht, 520, 260)
	cx := float64(w) / 2
	top := float64(y)
	h.centred(screen, "VIBEZILLA", cx, top+24, 5, colorAccent)
	h.centred(screen, "WASD / arrows / touch stick to stomp", cx, top+110, 2, colorText)
	h.centred(screen, "Enter, Space or tap to start", cx, top+145, 2, colorWarn)
	h.centred(screen, fmt.Sprintf("high score %d", highScore), cx, top+190, 1, colorTextDim)
	h.centred(screen, "map key "+maskedKey+"  (offline map)", cx, top+215, 1, colorTextDim)
}

func (h *hud) drawGameOver(screen *ebiten.Image, w, ht int, r sim.Result) {
	_, y := h.panel(screen, w, ht, 560, 300)
	cx := float64(w) / 2
	top := float64(y)
	title := "RAMPAGE OVER"
	if r.Reason == sim.ReasonCleared {
		title = "CITY FLATTENED"
	}
	h.centred(screen, title, cx, top+24, 4, colorAccent)
	h.centred(screen, fmt.Sprintf("score %d", r.Score), cx, top+100, 3, colorText)
	best := fmt.Sprintf("best %d", r.HighScore)
	if r.NewHighScore {
		best = "NEW HIGH SCORE!"
	}
	h.centred(screen, best, cx, top+150, 2, colorWarn)
	h.centred(screen, fmt.Sprintf("%d/%d buildings in %.1fs  grade %s",
		r.Destroyed, r.Total, r.Elapsed, sim.LetterGrade(r.Rating())), cx, top+190, 1, colorText)
	h.centred(screen, "Enter to play again   C to copy result", cx, top+250, 1, colorTextDim)
}

func (h *hud) drawStatus(screen *ebiten.Image, w, ht int, msg string) {
	h.centred(screen, msg, float64(w)/2, float64(ht)-40, 2, colorWarn)
}
