// file: scoring/engine_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go-hb-scoreboard/models"
)

func f(v float64) *float64 { return &v }

// Test: empty panel yields zero
func TestComputeEScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, ComputeEScore(nil))
	assert.Equal(t, 0.0, ComputeEScore([]float64{}))
}

// Test: panels of 1-3 judges use the plain mean
func TestComputeEScore_SmallPanelMean(t *testing.T) {
	assert.Equal(t, 8.5, ComputeEScore([]float64{8.5}))
	assert.Equal(t, 8.55, ComputeEScore([]float64{8.5, 8.6}))
	assert.Equal(t, 8.5, ComputeEScore([]float64{8.4, 8.5, 8.6}))
}

// Test: mean result is rounded to 3 decimals
func TestComputeEScore_Rounding(t *testing.T) {
	// (8.1 + 8.2 + 8.2) / 3 = 8.166666...
	assert.Equal(t, 8.167, ComputeEScore([]float64{8.1, 8.2, 8.2}))
}

// Test: 4+ judges drop one min and one max, average the rest
func TestComputeEScore_TrimmedMean(t *testing.T) {
	// worked example: drop 8.4 and 8.7, mean(8.5, 8.6) = 8.55
	assert.Equal(t, 8.55, ComputeEScore([]float64{8.5, 8.6, 8.4, 8.7}))

	// six judges
	assert.Equal(t, 8.5, ComputeEScore([]float64{8.0, 8.4, 8.5, 8.5, 8.6, 9.0}))
}

// Test: duplicate extremes are dropped exactly once each
func TestComputeEScore_DuplicateExtremes(t *testing.T) {
	// sorted: 8.0, 8.0, 9.0, 9.0 -> trimmed: 8.0, 9.0 -> mean 8.5
	assert.Equal(t, 8.5, ComputeEScore([]float64{9.0, 8.0, 9.0, 8.0}))

	// all equal: trimming changes nothing
	assert.Equal(t, 8.2, ComputeEScore([]float64{8.2, 8.2, 8.2, 8.2, 8.2}))
}

// Test: final score is nil iff D or E is missing
func TestComputeFinalScore_MissingComponents(t *testing.T) {
	assert.Nil(t, ComputeFinalScore(nil, f(8.5), f(0), nil))
	assert.Nil(t, ComputeFinalScore(f(6.4), nil, f(0), nil))
	assert.Nil(t, ComputeFinalScore(nil, nil, nil, nil))
}

// Test: D + E - ND + Bonus with defaults
func TestComputeFinalScore_Formula(t *testing.T) {
	// worked example: D=6.4, E=8.55 -> 14.95
	got := ComputeFinalScore(f(6.4), f(8.55), f(0), f(0))
	assert.NotNil(t, got)
	assert.Equal(t, 14.95, *got)

	// nd and bonus default to 0 when absent
	got = ComputeFinalScore(f(6.4), f(8.55), nil, nil)
	assert.NotNil(t, got)
	assert.Equal(t, 14.95, *got)

	// deduction and bonus both applied
	got = ComputeFinalScore(f(5.8), f(8.2), f(0.3), f(0.5))
	assert.NotNil(t, got)
	assert.Equal(t, 14.2, *got)
}

// Test: no clamping; negative results pass through
func TestComputeFinalScore_NoClamping(t *testing.T) {
	got := ComputeFinalScore(f(0), f(0), f(3), nil)
	assert.NotNil(t, got)
	assert.Equal(t, -3.0, *got)
}

// Test: E-score extraction keeps only non-nil E-role values
func TestEScoresFrom(t *testing.T) {
	scores := []models.JudgeScore{
		{Role: models.RoleE1, ScoreValue: f(8.5)},
		{Role: models.RoleE2, ScoreValue: nil},
		{Role: models.RoleD1, ScoreValue: f(6.4)},
		{Role: models.RoleE3, ScoreValue: f(8.7)},
		{Role: models.RoleND, ScoreValue: f(0.3)},
	}
	assert.Equal(t, []float64{8.5, 8.7}, EScoresFrom(scores))
}

// Test: D derivation averages D1/D2, nil when neither submitted
func TestDScoreFrom(t *testing.T) {
	assert.Nil(t, DScoreFrom([]models.JudgeScore{{Role: models.RoleE1, ScoreValue: f(8.5)}}))

	scores := []models.JudgeScore{
		{Role: models.RoleD1, ScoreValue: f(6.4)},
		{Role: models.RoleD2, ScoreValue: f(6.5)},
	}
	got := DScoreFrom(scores)
	assert.NotNil(t, got)
	assert.Equal(t, 6.45, *got)
}

// Test: ND derivation takes the submitted value, else 0
func TestNDScoreFrom(t *testing.T) {
	assert.Equal(t, 0.0, NDScoreFrom(nil))
	assert.Equal(t, 0.3, NDScoreFrom([]models.JudgeScore{{Role: models.RoleND, ScoreValue: f(0.3)}}))
}
