package sim

import (
	"math/rand"
	"strings"
	"testing"
)

func TestTarget_PointsAndDebris(t *testing.T) {
	for size, want := range map[int][2]int{1: {100, 7}, 2: {200, 9}, 3: {300, 11}} {
		tg := Target{Size: size}
		if tg.Points() != want[0] || tg.DebrisCount() != want[1] {
			t.Fatalf("size %d: points=%d debris=%d, want %v", size, tg.Points(), tg.DebrisCount(), want)
		}
	}
}

func TestScatterTargets_GridAndJitter(t *testing.T) {
	b := Bounds{SW: LatLng{Lat: 40, Lng: -74}, NE: LatLng{Lat: 40.0009, Lng: -73.9991}}
	tu := DefaultTuning()
	got := ScatterTargets(b, tu.GridStep, tu.Jitter, rand.New(rand.NewSource(5)))
	if len(got) != 25 {
		t.Fatalf("expected a 5x5 grid, got %d", len(got))
	}
	sizes := map[int]int{}
	for i, tg := range got {
		sizes[tg.Size]++
		if tg.Pos.Lat < b.SW.Lat || tg.Pos.Lat >= b.NE.Lat+tu.Jitter ||
			tg.Pos.Lng < b.SW.Lng || tg.Pos.Lng >= b.NE.Lng+tu.Jitter {
			t.Fatalf("target %d at %+v outside jittered bounds", i, tg.Pos)
		}
		if tg.Size < 1 || tg.Size > 3 {
			t.Fatalf("target %d has size %d", i, tg.Size)
		}
	}
	if len(sizes) < 2 {
		t.Fatalf("expected mixed sizes, got %v", sizes)
	}
}

func TestScatterTargets_Deterministic(t *testing.T) {
	b := Bounds{SW: LatLng{Lat: 51.5, Lng: -0.13}, NE: LatLng{Lat: 51.502, Lng: -0.126}}
	a := ScatterTargets(b, 0.0002, 0.00005, rand.New(rand.NewSource(9)))
	c := ScatterTargets(b, 0.0002, 0.00005, rand.New(rand.NewSource(9)))
	if len(a) != len(c) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(c))
	}
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("target %d differs: %+v vs %+v", i, a[i], c[i])
		}
	}
}

func TestScatterTargets_EmptyInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := ScatterTargets(Bounds{}, 0.0002, 0, rng); len(got) != 0 {
		t.Fatalf("empty bounds should give no targets, got %d", len(got))
	}
	b := Bounds{NE: LatLng{Lat: 1, Lng: 1}}
	if got := ScatterTargets(b, 0, 0, rng); got != nil {
		t.Fatalf("zero step should give nil, got %d", len(got))
	}
}

func TestResult_RatingAndSummary(t *testing.T) {
	r := Result{Reason: ReasonCleared, Score: 1200, HighScore: 1200, NewHighScore: true, Destroyed: 8, Total: 10, Elapsed: 8}
	if got := r.Rating(); got != 100 {
		t.Fatalf("quota met at 60/min should rate 100, got %.2f", got)
	}
	s := r.Summary()
	if !strings.Contains(s, "8/10") || !strings.Contains(s, "grade A+") || !strings.Contains(s, "NEW HIGH SCORE") {
		t.Fatalf("unexpected summary %q", s)
	}

	slow := Result{Reason: ReasonStopped, Destroyed: 2, Total: 10, Elapsed: 60}
	// completion 2/8 of 70, pace 2/60 of 30
	if got := slow.Rating(); got < 18.4 || got > 18.6 {
		t.Fatalf("expected ~18.5, got %.3f", got)
	}
	if LetterGrade(slow.Rating()) != "F" {
		t.Fatalf("expected F, got %s", LetterGrade(slow.Rating()))
	}
	if (Result{}).Rating() != 0 {
		t.Fatal("empty result should rate 0")
	}
}

func TestSimLog_FilterAndFormat(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "monster", CatSession, "start", "targets=4", 4)
	sl.AddVerbose(2, "monster", CatMove, "position", "(0,0)", 0)
	sl.Add(3, targetLabel(2), CatDestroy, "building", "size=2 +200", 200)

	if len(sl.Entries()) != 2 {
		t.Fatalf("verbose entry recorded while not verbose: %d", len(sl.Entries()))
	}
	if e, ok := sl.LastOf(CatDestroy, ""); !ok || e.Actor != "T002" || e.NumVal != 200 {
		t.Fatalf("unexpected last destroy %+v", e)
	}
	if got := sl.FormatRange(3, 3); !strings.Contains(got, "[T=003] T002") {
		t.Fatalf("unexpected range format %q", got)
	}
	sl.Reset()
	if sl.CountCategory("", "") != 0 {
		t.Fatal("reset should drop entries")
	}
}
