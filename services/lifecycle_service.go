// Package services holds the competition-side business logic: the performance
// lifecycle, the athlete roster, judge score aggregation, and the scoreboard
// display selector.
// File: services/lifecycle_service.go
package services

import (
	"math"
	"sort"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/store"
	"go-hb-scoreboard/telemetry"
)

// LifecycleServiceInterface is the surface the run controller depends on.
type LifecycleServiceInterface interface {
	InitializePerformances(competitionID string) error
	SetCurrentPerformance(competitionID, performanceID string) error
	ClearCurrentPerformance(competitionID string) error
	ConfirmPerformance(performanceID string, d, e, nd, finalScore float64, bonus *float64) error
	RecalcRanks(competitionID string) error
}

// LifecycleService drives the pending -> scoring -> confirmed state machine
// and the rank table derived from it.
type LifecycleService struct {
	store *store.Store
}

// NewLifecycleService returns a lifecycle service over the given store.
func NewLifecycleService(s *store.Store) *LifecycleService {
	return &LifecycleService{store: s}
}

// InitializePerformances creates a pending performance for every athlete in
// the competition that does not have one yet. Idempotent: safe to call on
// every view load, never duplicates or disturbs existing records.
func (s *LifecycleService) InitializePerformances(competitionID string) error {
	existing := make(map[string]bool)
	for _, p := range s.store.ListPerformances(competitionID) {
		existing[p.AthleteID] = true
	}

	var created []models.Performance
	for _, a := range s.store.ListAthletes(competitionID) {
		if existing[a.ID] {
			continue
		}
		created = append(created, models.Performance{
			CompetitionID: competitionID,
			AthleteID:     a.ID,
			Status:        models.PerformancePending,
		})
	}
	if len(created) == 0 {
		return nil
	}
	logger.Info.Printf("[InitializePerformances] creating %d pending performance(s) for competition=%s", len(created), competitionID)
	return s.store.AddPerformances(created)
}

// SetCurrentPerformance marks the target as the current performer: its status
// becomes scoring and it takes the single isCurrent flag; every other
// performance in the competition loses isCurrent but keeps its status. A
// previously scoring performance that loses the flag simply stays scoring
// until it is re-selected or confirmed. Starting the first performer moves an
// upcoming competition to in_progress.
func (s *LifecycleService) SetCurrentPerformance(competitionID, performanceID string) error {
	perfs := s.store.ListPerformances(competitionID)
	found := false
	for i := range perfs {
		if perfs[i].ID == performanceID {
			found = true
			perfs[i].IsCurrent = true
			perfs[i].Status = models.PerformanceScoring
		} else {
			perfs[i].IsCurrent = false
		}
	}
	if !found {
		return store.ErrNotFound
	}
	if err := s.store.ReplacePerformances(competitionID, perfs); err != nil {
		return err
	}

	comp, err := s.store.GetCompetition(competitionID)
	if err != nil {
		return err
	}
	if comp.Status != models.CompetitionInProgress {
		comp.Status = models.CompetitionInProgress
		if err := s.store.UpdateCompetition(comp); err != nil {
			return err
		}
		logger.Info.Printf("[SetCurrentPerformance] competition=%s moved to in_progress", competitionID)
	}
	logger.Info.Printf("[SetCurrentPerformance] performance=%s is now current for competition=%s", performanceID, competitionID)
	return nil
}

// ClearCurrentPerformance drops the isCurrent flag across the competition
// without starting anyone else. Statuses are untouched.
func (s *LifecycleService) ClearCurrentPerformance(competitionID string) error {
	perfs := s.store.ListPerformances(competitionID)
	for i := range perfs {
		perfs[i].IsCurrent = false
	}
	return s.store.ReplacePerformances(competitionID, perfs)
}

// ConfirmPerformance commits the operator-entered score components and the
// pre-computed final score, moving the performance to confirmed (a re-edit of
// an already confirmed performance stays confirmed) and clearing isCurrent.
// The final score is trusted as given; callers compute it with the scoring
// engine first. Ranks are recomputed immediately so the table never lags a
// confirm or re-edit.
func (s *LifecycleService) ConfirmPerformance(performanceID string, d, e, nd, finalScore float64, bonus *float64) error {
	perf, err := s.store.GetPerformance(performanceID)
	if err != nil {
		return err
	}

	b := 0.0
	if bonus != nil {
		b = *bonus
	}
	perf.Status = models.PerformanceConfirmed
	perf.IsCurrent = false
	perf.DScore = &d
	perf.EScore = &e
	perf.NDScore = &nd
	perf.Bonus = &b
	perf.FinalScore = &finalScore

	if err := s.store.UpdatePerformance(perf); err != nil {
		return err
	}
	logger.Info.Printf("[ConfirmPerformance] performance=%s confirmed with final=%g", performanceID, finalScore)
	telemetry.PublishConfirmedPerformance(perf.CompetitionID)
	return s.RecalcRanks(perf.CompetitionID)
}

// RecalcRanks rebuilds the rank column for the whole competition: confirmed
// performances with a final score get dense ranks 1..K in strictly descending
// final-score order; everything else gets an explicit nil rank. Equal final
// scores are ordered by the athlete's start order (earlier performer ranks
// first), so reruns with no intervening change are stable.
func (s *LifecycleService) RecalcRanks(competitionID string) error {
	perfs := s.store.ListPerformances(competitionID)

	startOrder := make(map[string]int)
	for _, a := range s.store.ListAthletes(competitionID) {
		startOrder[a.ID] = a.StartOrder
	}
	orderOf := func(p models.Performance) int {
		if o, ok := startOrder[p.AthleteID]; ok {
			return o
		}
		return math.MaxInt
	}

	var confirmed []int
	for i, p := range perfs {
		if p.Status == models.PerformanceConfirmed && p.FinalScore != nil {
			confirmed = append(confirmed, i)
		} else {
			perfs[i].Rank = nil
		}
	}

	sort.SliceStable(confirmed, func(a, b int) bool {
		pa, pb := perfs[confirmed[a]], perfs[confirmed[b]]
		if *pa.FinalScore != *pb.FinalScore {
			return *pa.FinalScore > *pb.FinalScore
		}
		return orderOf(pa) < orderOf(pb)
	})
	for pos, idx := range confirmed {
		rank := pos + 1
		perfs[idx].Rank = &rank
	}

	return s.store.ReplacePerformances(competitionID, perfs)
}
