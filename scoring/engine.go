// Package scoring implements the high bar scoring rules: E-score aggregation
// across the execution panel and the final-score formula.
// File: scoring/engine.go
package scoring

import (
	"math"
	"sort"

	"go-hb-scoreboard/models"
)

// Round3 rounds to 3 decimal places, half away from zero. Every score the
// engine produces goes through this so all computations agree on precision.
func Round3(n float64) float64 {
	return math.Round(n*1000) / 1000
}

// ComputeEScore derives the execution score from the raw E-judge values.
// - empty panel: 0
// - 1-3 judges: arithmetic mean
// - 4+ judges: trimmed mean, dropping exactly one lowest and one highest
//   value (even when extremes are tied).
func ComputeEScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	if len(scores) <= 3 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		return Round3(sum / float64(len(scores)))
	}

	// 4+ judges: sort ascending, drop the single min and max, average the rest
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	trimmed := sorted[1 : len(sorted)-1]

	sum := 0.0
	for _, s := range trimmed {
		sum += s
	}
	return Round3(sum / float64(len(trimmed)))
}

// ComputeFinalScore combines the panel components: D + E - ND + Bonus.
// Returns nil when either D or E is missing (cannot score without difficulty
// and execution). ND and bonus default to 0. No clamping is applied; range
// validation is the caller's responsibility.
func ComputeFinalScore(d, e, nd, bonus *float64) *float64 {
	if d == nil || e == nil {
		return nil
	}
	n := 0.0
	if nd != nil {
		n = *nd
	}
	b := 0.0
	if bonus != nil {
		b = *bonus
	}
	final := Round3(*d + *e - n + b)
	return &final
}

// ------------------- judge score derivation helpers -------------------

// EScoresFrom extracts the non-nil E-panel values from a performance's
// collected judge scores, in submission storage order.
func EScoresFrom(judgeScores []models.JudgeScore) []float64 {
	var out []float64
	for _, js := range judgeScores {
		if js.Role.IsE() && js.ScoreValue != nil {
			out = append(out, *js.ScoreValue)
		}
	}
	return out
}

// DScoreFrom averages the non-nil D-panel values (no trimming; D panels are
// 1-2 judges). Returns nil when no D judge has submitted.
func DScoreFrom(judgeScores []models.JudgeScore) *float64 {
	var sum float64
	var count int
	for _, js := range judgeScores {
		if js.Role.IsD() && js.ScoreValue != nil {
			sum += *js.ScoreValue
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := Round3(sum / float64(count))
	return &avg
}

// NDScoreFrom returns the ND judge's value if one has been submitted, else 0.
func NDScoreFrom(judgeScores []models.JudgeScore) float64 {
	for _, js := range judgeScores {
		if js.Role == models.RoleND && js.ScoreValue != nil {
			return *js.ScoreValue
		}
	}
	return 0
}
