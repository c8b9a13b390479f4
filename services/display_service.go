// file: services/display_service.go
package services

import (
	"errors"
	"sort"

	"go-hb-scoreboard/models"
	"go-hb-scoreboard/store"
)

// views the scoreboard can resolve to
const (
	ViewPerformance  = "performance"
	ViewRanking      = "ranking"
	ViewSingleResult = "single_result"
	ViewWaiting      = "waiting"
)

// ResolvedDisplay names what the public scoreboard should render right now,
// with the data to render it.
type ResolvedDisplay struct {
	View        string                          `json:"view"`
	Performance *models.PerformanceWithDetails  `json:"performance,omitempty"`
	Ranking     []models.PerformanceWithDetails `json:"ranking,omitempty"`
}

// DisplayService owns the per-competition scoreboard display preference and
// the derivation of the effective scoreboard view from it.
type DisplayService struct {
	store *store.Store
}

// NewDisplayService returns a display service over the given store.
func NewDisplayService(s *store.Store) *DisplayService {
	return &DisplayService{store: s}
}

// Set overwrites the stored preference. Mode performance requires a
// performance id; the id is cleared for the other modes.
func (s *DisplayService) Set(competitionID string, mode models.ScoreboardMode, performanceID string) error {
	if !mode.Valid() {
		return errors.New("unknown scoreboard mode")
	}
	if mode == models.ScoreboardPerformance && performanceID == "" {
		return errors.New("performance mode requires a performance id")
	}
	if mode != models.ScoreboardPerformance {
		performanceID = ""
	}
	return s.store.SetScoreboardDisplay(models.ScoreboardDisplay{
		CompetitionID: competitionID,
		Mode:          mode,
		PerformanceID: performanceID,
	})
}

// Get returns the stored preference, or the auto default when none matches
// this competition.
func (s *DisplayService) Get(competitionID string) models.ScoreboardDisplay {
	return s.store.GetScoreboardDisplay(competitionID)
}

// Resolve applies the stored preference and, for auto mode, the automatic
// derivation: a current performer wins; then a ranking table once more than
// one performance is confirmed; then the single confirmed result; otherwise a
// waiting placeholder. A pinned performance that has since been deleted falls
// back to auto.
func (s *DisplayService) Resolve(competitionID string) ResolvedDisplay {
	details := s.store.GetPerformancesWithDetails(competitionID)
	pref := s.store.GetScoreboardDisplay(competitionID)

	switch pref.Mode {
	case models.ScoreboardPerformance:
		for i := range details {
			if details[i].ID == pref.PerformanceID {
				return ResolvedDisplay{View: ViewPerformance, Performance: &details[i]}
			}
		}
		// pinned performance gone; fall through to auto
	case models.ScoreboardRanking:
		return ResolvedDisplay{View: ViewRanking, Ranking: rankingTable(details)}
	}

	return autoDerive(details)
}

// autoDerive implements the no-preference precedence.
func autoDerive(details []models.PerformanceWithDetails) ResolvedDisplay {
	for i := range details {
		if details[i].IsCurrent {
			return ResolvedDisplay{View: ViewPerformance, Performance: &details[i]}
		}
	}

	var confirmed []models.PerformanceWithDetails
	for _, d := range details {
		if d.Status == models.PerformanceConfirmed {
			confirmed = append(confirmed, d)
		}
	}
	switch {
	case len(confirmed) > 1:
		return ResolvedDisplay{View: ViewRanking, Ranking: rankingTable(details)}
	case len(confirmed) == 1:
		return ResolvedDisplay{View: ViewSingleResult, Performance: &confirmed[0]}
	default:
		return ResolvedDisplay{View: ViewWaiting}
	}
}

// rankingTable filters to ranked performances, best first.
func rankingTable(details []models.PerformanceWithDetails) []models.PerformanceWithDetails {
	var ranked []models.PerformanceWithDetails
	for _, d := range details {
		if d.Status == models.PerformanceConfirmed && d.Rank != nil {
			ranked = append(ranked, d)
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return *ranked[i].Rank < *ranked[j].Rank })
	return ranked
}
