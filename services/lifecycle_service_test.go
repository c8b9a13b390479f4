// file: services/lifecycle_service_test.go
package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/services"
	"go-hb-scoreboard/store"
)

// fixture wires a store with a competition and n athletes plus the services
// under test.
type fixture struct {
	store     *store.Store
	lifecycle *services.LifecycleService
	roster    *services.RosterService
	comp      models.Competition
	athletes  []models.Athlete
}

func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	s := store.New(store.NewMemoryStorage())
	comp, err := s.CreateCompetition(models.Competition{Name: "High Bar Open", Date: "2026-09-01", Venue: "East Gym"})
	require.NoError(t, err)

	roster := services.NewRosterService(s)
	var athletes []models.Athlete
	for i := 0; i < n; i++ {
		a, err := roster.AddAthlete(comp.ID, models.Athlete{Name: "Athlete " + string(rune('A'+i))})
		require.NoError(t, err)
		athletes = append(athletes, a)
	}
	return &fixture{
		store:     s,
		lifecycle: services.NewLifecycleService(s),
		roster:    roster,
		comp:      comp,
		athletes:  athletes,
	}
}

func (fx *fixture) performanceFor(t *testing.T, athleteID string) models.Performance {
	t.Helper()
	for _, p := range fx.store.ListPerformances(fx.comp.ID) {
		if p.AthleteID == athleteID {
			return p
		}
	}
	t.Fatalf("no performance for athlete %s", athleteID)
	return models.Performance{}
}

// Test: initialization creates one pending performance per athlete
func TestInitializePerformances(t *testing.T) {
	fx := newFixture(t, 3)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))

	perfs := fx.store.ListPerformances(fx.comp.ID)
	require.Len(t, perfs, 3)
	for _, p := range perfs {
		assert.Equal(t, models.PerformancePending, p.Status)
		assert.Nil(t, p.DScore)
		assert.Nil(t, p.FinalScore)
		assert.Nil(t, p.Rank)
		assert.False(t, p.IsCurrent)
	}
}

// Test: initialization is idempotent and fills in only missing records
func TestInitializePerformances_Idempotent(t *testing.T) {
	fx := newFixture(t, 2)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	assert.Len(t, fx.store.ListPerformances(fx.comp.ID), 2)

	// a late registration gets picked up without disturbing the rest
	existing := fx.store.ListPerformances(fx.comp.ID)
	late, err := fx.roster.AddAthlete(fx.comp.ID, models.Athlete{Name: "Latecomer"})
	require.NoError(t, err)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))

	after := fx.store.ListPerformances(fx.comp.ID)
	assert.Len(t, after, 3)
	for _, was := range existing {
		got, err := fx.store.GetPerformance(was.ID)
		require.NoError(t, err)
		assert.Equal(t, was, got)
	}
	assert.Equal(t, models.PerformancePending, fx.performanceFor(t, late.ID).Status)
}

// Test: starting a performer sets scoring+isCurrent and opens the competition
func TestSetCurrentPerformance(t *testing.T) {
	fx := newFixture(t, 3)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	target := fx.performanceFor(t, fx.athletes[1].ID)

	require.NoError(t, fx.lifecycle.SetCurrentPerformance(fx.comp.ID, target.ID))

	got := fx.performanceFor(t, fx.athletes[1].ID)
	assert.True(t, got.IsCurrent)
	assert.Equal(t, models.PerformanceScoring, got.Status)

	comp, err := fx.store.GetCompetition(fx.comp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionInProgress, comp.Status)
}

// Test: at most one isCurrent per competition under any call sequence
func TestSetCurrentPerformance_SingleCurrent(t *testing.T) {
	fx := newFixture(t, 3)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))

	for _, a := range []models.Athlete{fx.athletes[0], fx.athletes[2], fx.athletes[1], fx.athletes[0]} {
		perf := fx.performanceFor(t, a.ID)
		require.NoError(t, fx.lifecycle.SetCurrentPerformance(fx.comp.ID, perf.ID))

		currentCount := 0
		for _, p := range fx.store.ListPerformances(fx.comp.ID) {
			if p.IsCurrent {
				currentCount++
				assert.Equal(t, perf.ID, p.ID)
			}
		}
		assert.Equal(t, 1, currentCount)
	}
}

// Test: a scoring performance that loses the flag stays scoring
func TestSetCurrentPerformance_AbandonedStaysScoring(t *testing.T) {
	fx := newFixture(t, 2)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	first := fx.performanceFor(t, fx.athletes[0].ID)
	second := fx.performanceFor(t, fx.athletes[1].ID)

	require.NoError(t, fx.lifecycle.SetCurrentPerformance(fx.comp.ID, first.ID))
	require.NoError(t, fx.lifecycle.SetCurrentPerformance(fx.comp.ID, second.ID))

	abandoned := fx.performanceFor(t, fx.athletes[0].ID)
	assert.False(t, abandoned.IsCurrent)
	assert.Equal(t, models.PerformanceScoring, abandoned.Status)
}

// Test: starting an unknown performance is refused
func TestSetCurrentPerformance_UnknownPerformance(t *testing.T) {
	fx := newFixture(t, 1)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	assert.ErrorIs(t, fx.lifecycle.SetCurrentPerformance(fx.comp.ID, "missing"), store.ErrNotFound)
}

// Test: clearing the current performer leaves statuses alone
func TestClearCurrentPerformance(t *testing.T) {
	fx := newFixture(t, 2)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	target := fx.performanceFor(t, fx.athletes[0].ID)
	require.NoError(t, fx.lifecycle.SetCurrentPerformance(fx.comp.ID, target.ID))

	require.NoError(t, fx.lifecycle.ClearCurrentPerformance(fx.comp.ID))

	for _, p := range fx.store.ListPerformances(fx.comp.ID) {
		assert.False(t, p.IsCurrent)
	}
	assert.Equal(t, models.PerformanceScoring, fx.performanceFor(t, fx.athletes[0].ID).Status)
}

// Test: confirm stores all components, clears isCurrent, and ranks at once
func TestConfirmPerformance(t *testing.T) {
	fx := newFixture(t, 2)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	target := fx.performanceFor(t, fx.athletes[0].ID)
	require.NoError(t, fx.lifecycle.SetCurrentPerformance(fx.comp.ID, target.ID))

	bonus := 0.1
	require.NoError(t, fx.lifecycle.ConfirmPerformance(target.ID, 6.4, 8.55, 0.3, 14.75, &bonus))

	got := fx.performanceFor(t, fx.athletes[0].ID)
	assert.Equal(t, models.PerformanceConfirmed, got.Status)
	assert.False(t, got.IsCurrent)
	assert.Equal(t, 6.4, *got.DScore)
	assert.Equal(t, 8.55, *got.EScore)
	assert.Equal(t, 0.3, *got.NDScore)
	assert.Equal(t, 0.1, *got.Bonus)
	assert.Equal(t, 14.75, *got.FinalScore)
	require.NotNil(t, got.Rank)
	assert.Equal(t, 1, *got.Rank)
}

// Test: a confirmed performance can be re-edited and ranks follow
func TestConfirmPerformance_ReEdit(t *testing.T) {
	fx := newFixture(t, 2)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))
	first := fx.performanceFor(t, fx.athletes[0].ID)
	second := fx.performanceFor(t, fx.athletes[1].ID)

	require.NoError(t, fx.lifecycle.ConfirmPerformance(first.ID, 6.0, 8.5, 0, 14.5, nil))
	require.NoError(t, fx.lifecycle.ConfirmPerformance(second.ID, 6.2, 8.5, 0, 14.7, nil))
	assert.Equal(t, 2, *fx.performanceFor(t, fx.athletes[0].ID).Rank)

	// re-edit the first performance above the second
	require.NoError(t, fx.lifecycle.ConfirmPerformance(first.ID, 6.5, 8.5, 0, 15.0, nil))

	reEdited := fx.performanceFor(t, fx.athletes[0].ID)
	assert.Equal(t, models.PerformanceConfirmed, reEdited.Status)
	assert.Equal(t, 1, *reEdited.Rank)
	assert.Equal(t, 2, *fx.performanceFor(t, fx.athletes[1].ID).Rank)
}

// Test: ranks are dense 1..K descending by final score, nil elsewhere
func TestRecalcRanks(t *testing.T) {
	fx := newFixture(t, 4)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))

	finals := map[string]float64{
		fx.athletes[0].ID: 14.7,
		fx.athletes[1].ID: 14.933,
		fx.athletes[2].ID: 14.467,
	}
	for athleteID, final := range finals {
		perf := fx.performanceFor(t, athleteID)
		require.NoError(t, fx.lifecycle.ConfirmPerformance(perf.ID, 6.0, final-6.0, 0, final, nil))
	}

	assert.Equal(t, 1, *fx.performanceFor(t, fx.athletes[1].ID).Rank)
	assert.Equal(t, 2, *fx.performanceFor(t, fx.athletes[0].ID).Rank)
	assert.Equal(t, 3, *fx.performanceFor(t, fx.athletes[2].ID).Rank)

	// the fourth performance never scored: rank stays nil
	assert.Nil(t, fx.performanceFor(t, fx.athletes[3].ID).Rank)
}

// Test: equal final scores rank by start order, and reruns are stable
func TestRecalcRanks_TieBreakAndIdempotence(t *testing.T) {
	fx := newFixture(t, 3)
	require.NoError(t, fx.lifecycle.InitializePerformances(fx.comp.ID))

	// confirm out of start order with an exact tie
	second := fx.performanceFor(t, fx.athletes[1].ID)
	first := fx.performanceFor(t, fx.athletes[0].ID)
	require.NoError(t, fx.lifecycle.ConfirmPerformance(second.ID, 6.0, 8.5, 0, 14.5, nil))
	require.NoError(t, fx.lifecycle.ConfirmPerformance(first.ID, 6.0, 8.5, 0, 14.5, nil))

	// earlier start order wins the tie
	assert.Equal(t, 1, *fx.performanceFor(t, fx.athletes[0].ID).Rank)
	assert.Equal(t, 2, *fx.performanceFor(t, fx.athletes[1].ID).Rank)

	// recalculating with no change yields identical ranks
	require.NoError(t, fx.lifecycle.RecalcRanks(fx.comp.ID))
	assert.Equal(t, 1, *fx.performanceFor(t, fx.athletes[0].ID).Rank)
	assert.Equal(t, 2, *fx.performanceFor(t, fx.athletes[1].ID).Rank)
}
