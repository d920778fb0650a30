package tty

import (
	"fmt"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/gdamore/tcell/v2"
)

// One terminal cell covers CellW x CellH map pixels.
const (
	CellW = 8
	CellH = 16
)

// hudRows are reserved at the top for the score line.
const hudRows = 1

var (
	styleMap     = tcell.StyleDefault.Background(tcell.NewRGBColor(0x24, 0x2f, 0x3e)).Foreground(tcell.NewRGBColor(0x38, 0x41, 0x4e))
	styleHUD     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHUDWarn = styleHUD.Foreground(tcell.ColorYellow).Bold(true)
	styleRubble  = styleMap.Foreground(tcell.NewRGBColor(0x5a, 0x55, 0x50))
	styleMonster = styleMap.Foreground(tcell.NewRGBColor(0x3f, 0xa3, 0x4d)).Bold(true)
	styleBox     = tcell.StyleDefault.Background(tcell.NewRGBColor(0x0a, 0x0e, 0x14)).Foreground(tcell.ColorWhite)
	styleBoxHead = styleBox.Foreground(tcell.NewRGBColor(0x78, 0xdc, 0x6e)).Bold(true)
)

// buildingStyles by size tier.
var buildingStyles = [...]tcell.Style{
	styleMap.Foreground(tcell.NewRGBColor(0x8a, 0x93, 0xa6)),
	styleMap.Foreground(tcell.NewRGBColor(0xb0, 0x9a, 0x7a)),
	styleMap.Foreground(tcell.NewRGBColor(0xc8, 0x6f, 0x5a)),
}

// Glyphs.
const (
	glyphMap     = '·'
	glyphRubble  = '░'
	glyphMonster = 'M'
)

var buildingGlyphs = [...]rune{'▪', '▆', '█'}

// cellOf maps a map-pixel point to a terminal cell.
func cellOf(p sim.Point) (int, int) {
	return int(p.X) / CellW, int(p.Y)/CellH + hudRows
}

func putText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func putCentred(s tcell.Screen, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	putText(s, (w-len([]rune(text)))/2, y, text, style)
}

// render draws one frame of snap. It does not call Show.
func render(s tcell.Screen, snap *sim.Snapshot, r sim.Result) {
	w, h := s.Size()
	for y := hudRows; y < h; y++ {
		for x := 0; x < w; x++ {
			g := ' '
			if x%4 == 0 && y%2 == 0 {
				g = glyphMap
			}
			s.SetContent(x, y, g, nil, styleMap)
		}
	}

	for _, p := range snap.Rubble {
		x, y := cellOf(p)
		s.SetContent(x, y, glyphRubble, nil, styleRubble)
	}
	for _, t := range snap.Targets {
		if t.Destroyed {
			continue
		}
		tier := t.Size - 1
		if tier < 0 || tier >= len(buildingGlyphs) {
			tier = 0
		}
		x, y := cellOf(t.Screen)
		s.SetContent(x, y, buildingGlyphs[tier], nil, buildingStyles[tier])
	}
	for _, d := range snap.Debris {
		x, y := cellOf(d.Screen)
		g := '*'
		if d.Opacity < 0.4 {
			g = '.'
		}
		s.SetContent(x, y, g, nil, styleMap.Foreground(debrisColor(d.Opacity)))
	}
	if snap.AgentVisible {
		x, y := cellOf(snap.Agent)
		s.SetContent(x, y, glyphMonster, nil, styleMonster)
	}

	renderHUD(s, w, snap)
	switch snap.Phase {
	case sim.PhaseIdle:
		renderBox(s, h, []string{
			"V I B E Z I L L A",
			"",
			"Arrows or WASD to stomp around.",
			"Smash 80% of the city to win.",
			"",
			fmt.Sprintf("best %d", snap.HighScore),
			"Enter to start, q to quit",
		})
	case sim.PhaseEnded:
		head := "RAMPAGE OVER"
		if r.Reason == sim.ReasonCleared {
			head = "CITY LEVELLED"
		}
		best := fmt.Sprintf("best %d", r.HighScore)
		if r.NewHighScore {
			best = "NEW HIGH SCORE!"
		}
		renderBox(s, h, []string{
			head,
			"",
			fmt.Sprintf("score %d", r.Score),
			best,
			fmt.Sprintf("smashed %d/%d in %.1fs  grade %s", r.Destroyed, r.Total, r.Elapsed, sim.LetterGrade(r.Rating())),
			"",
			"Enter to play again, q to quit",
		})
	}
}

func renderHUD(s tcell.Screen, w int, snap *sim.Snapshot) {
	for x := 0; x < w; x++ {
		s.SetContent(x, 0, ' ', nil, styleHUD)
	}
	line := fmt.Sprintf(" SCORE %d  BEST %d", snap.Score, snap.HighScore)
	putText(s, 0, 0, line, styleHUD)
	if snap.Total > 0 {
		putText(s, len(line)+2, 0, fmt.Sprintf("SMASHED %d/%d", snap.Destroyed, sim.EndThreshold(snap.Total)), styleHUDWarn)
	}
}

func renderBox(s tcell.Screen, h int, lines []string) {
	w, _ := s.Size()
	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	width += 4
	top := (h - len(lines) - 2) / 2
	left := (w - width) / 2
	for y := top; y < top+len(lines)+2; y++ {
		for x := left; x < left+width; x++ {
			s.SetContent(x, y, ' ', nil, styleBox)
		}
	}
	for i, l := range lines {
		style := styleBox
		if i == 0 {
			style = styleBoxHead
		}
		putCentred(s, top+1+i, l, style)
	}
}

func debrisColor(opacity float64) tcell.Color {
	if opacity < 0 {
		opacity = 0
	}
	v := int32(0x40 + opacity*(0xe0-0x40))
	return tcell.NewRGBColor(v, v*3/4, v/2)
}
