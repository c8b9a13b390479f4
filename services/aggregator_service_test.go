// file: services/aggregator_service_test.go
package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/services"
)

// panelFixture configures a full D/E/ND panel and one started performance.
func panelFixture(t *testing.T, eJudges int) (*fixture, *services.AggregatorService, models.Performance, map[models.JudgeRole]models.JudgePanel) {
	t.Helper()
	fx := newFixture(t, 1)

	panels := []models.JudgePanel{
		{Role: models.RoleD1, JudgeName: "Chief D", IsChief: true},
		{Role: models.RoleD2, JudgeName: "Second D"},
		{Role: models.RoleND, JudgeName: "Line"},
	}
	eRoles := []models.JudgeRole{models.RoleE1, models.RoleE2, models.RoleE3, models.RoleE4, models.RoleE5, models.RoleE6}
	for i := 0; i < eJudges; i++ {
		panels = append(panels, models.JudgePanel{Role: eRoles[i], JudgeName: "Exec"})
	}
	// an unused placeholder seat must not count as configured
	if eJudges < len(eRoles) {
		panels = append(panels, models.JudgePanel{Role: eRoles[eJudges], JudgeName: ""})
	}
	require.NoError(t, fx.store.ReplaceJudgePanels(fx.comp.ID, panels))

	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	perf := fx.performanceFor(t, fx.athletes[0].ID)

	byRole := make(map[models.JudgeRole]models.JudgePanel)
	for _, p := range fx.store.ListJudgePanels(fx.comp.ID) {
		byRole[p.Role] = p
	}

	fixed := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	agg := services.NewAggregatorService(fx.store).WithClock(func() time.Time { return fixed })
	return fx, agg, perf, byRole
}

// Test: submissions are recorded with a timestamp
func TestSubmitJudgeScore(t *testing.T) {
	fx, agg, perf, panels := panelFixture(t, 4)

	js, err := agg.SubmitJudgeScore(perf.ID, panels[models.RoleE1].ID, models.RoleE1, 8.5)
	require.NoError(t, err)
	assert.Equal(t, 8.5, *js.ScoreValue)
	require.NotNil(t, js.SubmittedAt)
	assert.Equal(t, "2026-09-01T14:00:00Z", *js.SubmittedAt)

	assert.Len(t, fx.store.ListJudgeScores(perf.ID), 1)
}

// Test: resubmission overwrites value and timestamp under the same record
func TestSubmitJudgeScore_Resubmission(t *testing.T) {
	fx, agg, perf, panels := panelFixture(t, 4)

	first, err := agg.SubmitJudgeScore(perf.ID, panels[models.RoleE1].ID, models.RoleE1, 8.5)
	require.NoError(t, err)

	later := time.Date(2026, 9, 1, 14, 5, 0, 0, time.UTC)
	agg.WithClock(func() time.Time { return later })
	second, err := agg.SubmitJudgeScore(perf.ID, panels[models.RoleE1].ID, models.RoleE1, 8.8)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	scores := fx.store.ListJudgeScores(perf.ID)
	require.Len(t, scores, 1)
	assert.Equal(t, 8.8, *scores[0].ScoreValue)
	assert.Equal(t, "2026-09-01T14:05:00Z", *scores[0].SubmittedAt)
}

// Test: missing ids are refused
func TestSubmitJudgeScore_MissingIDs(t *testing.T) {
	_, agg, perf, _ := panelFixture(t, 4)
	_, err := agg.SubmitJudgeScore("", "panel", models.RoleE1, 8.5)
	assert.Error(t, err)
	_, err = agg.SubmitJudgeScore(perf.ID, "", models.RoleE1, 8.5)
	assert.Error(t, err)
}

// Test: progress counts configured vs submitted E seats and derives the live
// components
func TestPanelProgress(t *testing.T) {
	_, agg, perf, panels := panelFixture(t, 4)

	// nothing submitted yet
	progress := agg.PanelProgress(perf.CompetitionID, perf.ID)
	assert.Equal(t, 4, progress.EJudgesConfigured)
	assert.Equal(t, 0, progress.EJudgesSubmitted)
	assert.Nil(t, progress.LiveEScore)
	assert.Nil(t, progress.DScore)
	assert.Equal(t, 0.0, progress.NDScore)

	// partial panel: 3 of 4 E judges in
	for role, v := range map[models.JudgeRole]float64{
		models.RoleE1: 8.5,
		models.RoleE2: 8.6,
		models.RoleE3: 8.4,
	} {
		_, err := agg.SubmitJudgeScore(perf.ID, panels[role].ID, role, v)
		require.NoError(t, err)
	}
	_, err := agg.SubmitJudgeScore(perf.ID, panels[models.RoleD1].ID, models.RoleD1, 6.4)
	require.NoError(t, err)
	_, err = agg.SubmitJudgeScore(perf.ID, panels[models.RoleND].ID, models.RoleND, 0.3)
	require.NoError(t, err)

	progress = agg.PanelProgress(perf.CompetitionID, perf.ID)
	assert.Equal(t, 4, progress.EJudgesConfigured)
	assert.Equal(t, 3, progress.EJudgesSubmitted)
	require.NotNil(t, progress.LiveEScore)
	assert.Equal(t, 8.5, *progress.LiveEScore) // 3 judges: plain mean
	require.NotNil(t, progress.DScore)
	assert.Equal(t, 6.4, *progress.DScore)
	assert.Equal(t, 0.3, progress.NDScore)

	// fourth E judge flips the aggregation to a trimmed mean
	_, err = agg.SubmitJudgeScore(perf.ID, panels[models.RoleE4].ID, models.RoleE4, 8.7)
	require.NoError(t, err)
	progress = agg.PanelProgress(perf.CompetitionID, perf.ID)
	assert.Equal(t, 4, progress.EJudgesSubmitted)
	assert.Equal(t, 8.55, *progress.LiveEScore) // drop 8.4 and 8.7
}
