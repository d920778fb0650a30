package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Vibezilla/internal/sim"
)

// stallSeconds marks a clear as slow even though it finished.
const stallSeconds = 120.0

type runStats struct {
	runIndex int
	seed     int64

	ended     bool
	reason    sim.EndReason
	score     int
	destroyed int
	total     int
	ticks     int
	elapsed   float64
	rating    float64

	firstDestroyTick int
	halfwayTick      int
	tierCounts       [3]int

	poolEvents    int
	debrisDropped int
	rubbleDropped int

	windowSummary *sim.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var width int
	var height int

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&ticks, "ticks", 60*180, "tick budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&width, "width", 1280, "viewport width in px")
	flag.IntVar(&height, "height", 720, "viewport height in px")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if width <= 0 || height <= 0 {
		fmt.Println("error: -width and -height must be > 0")
		return
	}

	fmt.Printf("=== Headless Rampage Report ===\n")
	fmt.Printf("runs=%d ticks=%d view=%dx%d seed_base=%d seed_step=%d\n\n", runs, ticks, width, height, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilot(i+1, seed, ticks, width, height)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, ticks, width, height int) runStats {
	ts := sim.NewTestSim(
		sim.WithViewport(width, height),
		sim.WithSeed(seed),
		sim.WithReporter(0, 0),
	)
	ended := ts.RunAutopilot(ticks)
	if !ended {
		ts.Session.Stop()
	}

	rs := collectStats(ts.SimLog.Entries(), ts.Session.LastResult())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.ended = ended
	rs.windowSummary = ts.Reporter.WindowSummary()
	return rs
}

// collectStats folds a session log and its result into one run's stats.
func collectStats(entries []sim.SimLogEntry, r sim.Result) runStats {
	rs := runStats{
		reason:           r.Reason,
		score:            r.Score,
		destroyed:        r.Destroyed,
		total:            r.Total,
		ticks:            r.Ticks,
		elapsed:          r.Elapsed,
		rating:           r.Rating(),
		firstDestroyTick: -1,
		halfwayTick:      -1,
	}
	half := (r.Total + 1) / 2
	seen := 0
	for _, e := range entries {
		switch e.Category {
		case sim.CatDestroy:
			seen++
			if rs.firstDestroyTick < 0 {
				rs.firstDestroyTick = e.Tick
			}
			if seen == half && rs.halfwayTick < 0 {
				rs.halfwayTick = e.Tick
			}
			if tier := int(e.NumVal)/100 - 1; tier >= 0 && tier < len(rs.tierCounts) {
				rs.tierCounts[tier]++
			}
		case sim.CatPool:
			rs.poolEvents++
			if strings.HasPrefix(e.Value, "debris") {
				rs.debrisDropped += int(e.NumVal)
			} else {
				rs.rubbleDropped += int(e.NumVal)
			}
		}
	}
	return rs
}

// detectStall reports whether a run failed to clear the city in good time.
func detectStall(rs runStats) (bool, string) {
	need := sim.EndThreshold(rs.total)
	switch {
	case rs.total == 0:
		return true, "no_targets"
	case !rs.ended:
		return true, fmt.Sprintf("timeout destroyed=%d/%d", rs.destroyed, need)
	case rs.reason != sim.ReasonCleared:
		return true, fmt.Sprintf("ended_%s", rs.reason)
	case rs.elapsed > stallSeconds:
		return true, fmt.Sprintf("slow_clear elapsed=%.1fs", rs.elapsed)
	}
	return false, "cleared"
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: reason=%s score=%d destroyed=%d/%d need=%d ticks=%d elapsed=%.1fs grade=%s (%.1f)\n",
		rs.reason, rs.score, rs.destroyed, rs.total, sim.EndThreshold(rs.total), rs.ticks, rs.elapsed,
		sim.LetterGrade(rs.rating), rs.rating)
	fmt.Printf("phase_markers: first_destroy=%d halfway=%d\n", rs.firstDestroyTick, rs.halfwayTick)
	fmt.Printf("tiers_smashed: small=%d medium=%d large=%d\n", rs.tierCounts[0], rs.tierCounts[1], rs.tierCounts[2])
	fmt.Printf("pool_events=%d debris_dropped=%d rubble_dropped=%d\n", rs.poolEvents, rs.debrisDropped, rs.rubbleDropped)
	stalled, why := detectStall(rs)
	fmt.Printf("stalled=%t reason=%s\n", stalled, why)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalDestroyed := 0
	totalTargets := 0
	totalPool := 0
	totalDebrisDropped := 0
	ratingSum := 0.0

	firstTicks := make([]int, 0, len(all))
	halfTicks := make([]int, 0, len(all))
	clearTicks := make([]int, 0, len(all))
	grades := map[string]int{}
	stalls := map[string]struct{}{}

	for _, rs := range all {
		totalScore += rs.score
		totalDestroyed += rs.destroyed
		totalTargets += rs.total
		totalPool += rs.poolEvents
		totalDebrisDropped += rs.debrisDropped
		ratingSum += rs.rating
		if rs.firstDestroyTick >= 0 {
			firstTicks = append(firstTicks, rs.firstDestroyTick)
		}
		if rs.halfwayTick >= 0 {
			halfTicks = append(halfTicks, rs.halfwayTick)
		}
		if rs.ended && rs.reason == sim.ReasonCleared {
			clearTicks = append(clearTicks, rs.ticks)
		}
		grades[sim.LetterGrade(rs.rating)]++
		if stalled, why := detectStall(rs); stalled {
			stalls[fmt.Sprintf("run%d:%s", rs.runIndex, strings.Fields(why)[0])] = struct{}{}
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d cleared=%d\n", len(all), len(clearTicks))
	fmt.Printf("avg_per_run: score=%.1f destroyed=%.1f targets=%.1f pool_events=%.1f debris_dropped=%.1f\n",
		avg(totalScore, len(all)), avg(totalDestroyed, len(all)), avg(totalTargets, len(all)),
		avg(totalPool, len(all)), avg(totalDebrisDropped, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_destroy=%s halfway=%s clear=%s\n",
		avgTickString(firstTicks), avgTickString(halfTicks), avgTickString(clearTicks))
	avgRating := 0.0
	if len(all) > 0 {
		avgRating = ratingSum / float64(len(all))
	}
	fmt.Printf("avg_grade=%s (%.1f) top_grade=%s\n", sim.LetterGrade(avgRating), avgRating, topCount(grades))
	fmt.Printf("stalled_runs=%d [%s]\n", len(stalls), joinSet(stalls))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// topCount returns the most frequent key as "key(n)". Ties go to the
// alphabetically first key.
func topCount(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return fmt.Sprintf("%s(%d)", best, counts[best])
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
