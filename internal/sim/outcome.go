package sim

import (
	"fmt"
	"math"
)

// EndReason says why a session ended.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonCleared
	ReasonStopped
)

func (r EndReason) String() string {
	switch r {
	case ReasonCleared:
		return "cleared"
	case ReasonStopped:
		return "stopped"
	case ReasonNone:
		return "none"
	default:
		return "unknown"
	}
}

// Result is what the presentation layer gets when a session ends.
type Result struct {
	Reason       EndReason
	Score        int
	HighScore    int
	NewHighScore bool
	Destroyed    int
	Total        int
	Ticks        int
	Elapsed      float64 // seconds
}

// Rampage grading.
const (
	gradeCompletionWeight = 70.0
	gradePaceWeight       = 30.0
	gradePaceTarget       = 60.0 // buildings per minute for full pace marks
)

// Rating scores a result 0-100: completion of the clearing quota plus pace.
func (r Result) Rating() float64 {
	need := EndThreshold(r.Total)
	if need == 0 {
		return 0
	}
	completion := math.Min(1, float64(r.Destroyed)/float64(need))
	pace := 0.0
	if r.Elapsed > 0 {
		perMin := float64(r.Destroyed) / r.Elapsed * 60
		pace = math.Min(1, perMin/gradePaceTarget)
	}
	return completion*gradeCompletionWeight + pace*gradePaceWeight
}

// Summary is a one-line description, also used for the clipboard copy.
func (r Result) Summary() string {
	s := fmt.Sprintf("Vibezilla %s: score %d (best %d), %d/%d buildings in %.1fs, grade %s",
		r.Reason, r.Score, r.HighScore, r.Destroyed, r.Total, r.Elapsed, LetterGrade(r.Rating()))
	if r.NewHighScore {
		s += " NEW HIGH SCORE"
	}
	return s
}

// LetterGrade maps a 0-100 rating to a letter.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
