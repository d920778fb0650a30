package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Vibezilla/internal/sim"
)

func TestCollectStats_MarkersAndTiers(t *testing.T) {
	entries := []sim.SimLogEntry{
		{Tick: 0, Category: sim.CatSession, Key: "start"},
		{Tick: 12, Category: sim.CatDestroy, Key: "building", NumVal: 100},
		{Tick: 30, Category: sim.CatDestroy, Key: "building", NumVal: 300},
		{Tick: 30, Category: sim.CatPool, Key: "exhausted", Value: "debris dropped=4", NumVal: 4},
		{Tick: 31, Category: sim.CatPool, Key: "exhausted", Value: "rubble", NumVal: 1},
		{Tick: 55, Category: sim.CatDestroy, Key: "building", NumVal: 200},
	}
	r := sim.Result{Reason: sim.ReasonCleared, Score: 600, Destroyed: 3, Total: 4, Ticks: 55, Elapsed: 55.0 / 60}

	rs := collectStats(entries, r)
	if rs.firstDestroyTick != 12 || rs.halfwayTick != 30 {
		t.Fatalf("expected markers first=12 halfway=30, got first=%d halfway=%d", rs.firstDestroyTick, rs.halfwayTick)
	}
	if rs.tierCounts != [3]int{1, 1, 1} {
		t.Fatalf("expected one building per tier, got %v", rs.tierCounts)
	}
	if rs.poolEvents != 2 || rs.debrisDropped != 4 || rs.rubbleDropped != 1 {
		t.Fatalf("unexpected pool stats events=%d debris=%d rubble=%d", rs.poolEvents, rs.debrisDropped, rs.rubbleDropped)
	}
}

func TestCollectStats_NoDestroys(t *testing.T) {
	rs := collectStats(nil, sim.Result{Total: 10})
	if rs.firstDestroyTick != -1 || rs.halfwayTick != -1 {
		t.Fatalf("expected -1 markers, got first=%d halfway=%d", rs.firstDestroyTick, rs.halfwayTick)
	}
}

func TestDetectStall(t *testing.T) {
	cases := []struct {
		name   string
		rs     runStats
		stall  bool
		reason string
	}{
		{"cleared", runStats{ended: true, reason: sim.ReasonCleared, total: 10, elapsed: 40}, false, "cleared"},
		{"timeout", runStats{ended: false, total: 10, destroyed: 3}, true, "timeout"},
		{"slow", runStats{ended: true, reason: sim.ReasonCleared, total: 10, elapsed: 200}, true, "slow_clear"},
		{"empty", runStats{ended: true, reason: sim.ReasonCleared}, true, "no_targets"},
	}
	for _, c := range cases {
		stall, reason := detectStall(c.rs)
		if stall != c.stall || !strings.HasPrefix(reason, c.reason) {
			t.Fatalf("%s: got stall=%t reason=%q", c.name, stall, reason)
		}
	}
}

func TestRunAutopilot_ClearsSmallCity(t *testing.T) {
	rs := runAutopilot(1, 7, 60*180, 320, 240)
	if !rs.ended || rs.reason != sim.ReasonCleared {
		t.Fatalf("expected a cleared run, got ended=%t reason=%s destroyed=%d/%d", rs.ended, rs.reason, rs.destroyed, rs.total)
	}
	if rs.destroyed < sim.EndThreshold(rs.total) {
		t.Fatalf("cleared below threshold: %d/%d", rs.destroyed, rs.total)
	}
	if rs.windowSummary == nil {
		t.Fatal("expected reporter samples")
	}
}

func TestTopCountAndJoinSet(t *testing.T) {
	if got := topCount(map[string]int{"B": 2, "A": 2, "C": 1}); got != "A(2)" {
		t.Fatalf("expected A(2), got %s", got)
	}
	if got := topCount(nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := joinSet(map[string]struct{}{"b": {}, "a": {}}); got != "a,b" {
		t.Fatalf("expected a,b, got %s", got)
	}
	if got := joinSet(nil); got != "none" {
		t.Fatalf("expected none, got %s", got)
	}
}
