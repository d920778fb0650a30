package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Vibezilla/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 40
	feedLineHeight = 14
	feedVisible    = 12
	feedHighlight  = 3 // newest entries drawn on a highlighted row
)

// FeedEntry is one line in the rampage feed.
type FeedEntry struct {
	Tick     int
	Actor    string // "monster", "T012", "--"
	Category string
	Message  string
}

// Feed is a ring buffer of recent session events rendered on-screen.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (f *Feed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// AddEntry converts a session log entry. Movement traces are skipped.
func (f *Feed) AddEntry(e sim.SimLogEntry) {
	if e.Category == sim.CatMove {
		return
	}
	f.Add(FeedEntry{
		Tick:     e.Tick,
		Actor:    e.Actor,
		Category: e.Category,
		Message:  feedMessage(e),
	})
}

func feedMessage(e sim.SimLogEntry) string {
	switch {
	case e.Category == sim.CatDestroy:
		return fmt.Sprintf("smashed +%d", int(e.NumVal))
	case e.Category == sim.CatSession && e.Key == "start":
		return "RAWR! " + e.Value
	case e.Category == sim.CatSession && e.Key == "end":
		return "rampage over: " + e.Value
	case e.Category == sim.CatPool:
		return "pool full: " + e.Value
	default:
		return e.Key + " " + e.Value
	}
}

// Clear drops every entry.
func (f *Feed) Clear() {
	f.head = 0
	f.count = 0
}

// Len returns the number of stored entries.
func (f *Feed) Len() int { return f.count }

// Recent returns entries oldest first.
func (f *Feed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		out[i] = f.entries[idx]
	}
	return out
}

// Draw renders the newest entries in a panel at the top right.
func (f *Feed) Draw(screen *ebiten.Image, h *hud, screenW int) {
	entries := f.Recent()
	if len(entries) == 0 {
		return
	}
	if len(entries) > feedVisible {
		entries = entries[len(entries)-feedVisible:]
	}

	x := float32(screenW - feedPanelWidth - 8)
	y := float32(8)
	panelH := float32(len(entries)*feedLineHeight + 8)
	vector.FillRect(screen, x, y, feedPanelWidth, panelH, color.RGBA{R: 16, G: 22, B: 30, A: 200}, false)
	vector.StrokeRect(screen, x, y, feedPanelWidth, panelH, 1, color.RGBA{R: 70, G: 90, B: 110, A: 200}, false)

	for i, e := range entries {
		ly := y + 4 + float32(i*feedLineHeight)
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, x+2, ly, feedPanelWidth-4, feedLineHeight, color.RGBA{R: 40, G: 52, B: 66, A: 160}, false)
		}
		vector.FillRect(screen, x+5, ly+4, 3, 6, feedDotColor(e.Category), false)
		h.text(screen, fmt.Sprintf("%4d %-5s %s", e.Tick, e.Actor, e.Message), float64(x)+12, float64(ly)+1, 1, colorText)
	}
}

func feedDotColor(category string) color.RGBA {
	switch category {
	case sim.CatDestroy:
		return color.RGBA{R: 240, G: 120, B: 60, A: 255}
	case sim.CatSession:
		return color.RGBA{R: 90, G: 200, B: 110, A: 255}
	case sim.CatPool, sim.CatSound, sim.CatSave:
		return color.RGBA{R: 230, G: 200, B: 60, A: 255}
	default:
		return color.RGBA{R: 140, G: 150, B: 170, A: 255}
	}
}
