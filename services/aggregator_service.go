// file: services/aggregator_service.go
package services

import (
	"errors"
	"time"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/scoring"
	"go-hb-scoreboard/store"
	"go-hb-scoreboard/telemetry"
)

// PanelProgress is the live view of one performance's collected judge input:
// how many execution judges have submitted against how many are configured,
// and the score components derivable so far.
type PanelProgress struct {
	EJudgesConfigured int      `json:"eJudgesConfigured"`
	EJudgesSubmitted  int      `json:"eJudgesSubmitted"`
	LiveEScore        *float64 `json:"liveEScore"`
	DScore            *float64 `json:"dScore"`
	NDScore           float64  `json:"ndScore"`
}

// AggregatorService records raw per-judge submissions and derives the live
// panel progress before the operator formally confirms a performance.
type AggregatorService struct {
	store *store.Store
	now   func() time.Time
}

// NewAggregatorService returns an aggregator over the given store using the
// wall clock for submission timestamps.
func NewAggregatorService(s *store.Store) *AggregatorService {
	return &AggregatorService{store: s, now: time.Now}
}

// WithClock swaps the timestamp source. Tests use this for fixed times.
func (s *AggregatorService) WithClock(now func() time.Time) *AggregatorService {
	s.now = now
	return s
}

// SubmitJudgeScore upserts one judge's raw value for a performance, keyed by
// (performanceId, judgePanelId), stamping the submission time. It is a
// recording operation only: no range validation happens here.
func (s *AggregatorService) SubmitJudgeScore(performanceID, judgePanelID string, role models.JudgeRole, value float64) (models.JudgeScore, error) {
	if performanceID == "" || judgePanelID == "" {
		return models.JudgeScore{}, errors.New("performance and panel ids are required")
	}
	submittedAt := s.now().UTC().Format(time.RFC3339)
	js, err := s.store.UpsertJudgeScore(models.JudgeScore{
		PerformanceID: performanceID,
		JudgePanelID:  judgePanelID,
		Role:          role,
		ScoreValue:    &value,
		SubmittedAt:   &submittedAt,
	})
	if err != nil {
		return models.JudgeScore{}, err
	}
	logger.Info.Printf("[SubmitJudgeScore] role=%s value=%g recorded for performance=%s", role, value, performanceID)
	if perf, err := s.store.GetPerformance(performanceID); err == nil {
		telemetry.PublishJudgeSubmission(perf.CompetitionID)
	}
	return js, nil
}

// PanelProgress derives submission completeness and the live score components
// for a performance from whatever the judges have sent so far.
func (s *AggregatorService) PanelProgress(competitionID, performanceID string) PanelProgress {
	configured := 0
	for _, p := range s.store.ListJudgePanels(competitionID) {
		if p.Role.IsE() && p.InUse() {
			configured++
		}
	}

	judgeScores := s.store.ListJudgeScores(performanceID)
	eScores := scoring.EScoresFrom(judgeScores)

	progress := PanelProgress{
		EJudgesConfigured: configured,
		EJudgesSubmitted:  len(eScores),
		DScore:            scoring.DScoreFrom(judgeScores),
		NDScore:           scoring.NDScoreFrom(judgeScores),
	}
	if len(eScores) > 0 {
		live := scoring.ComputeEScore(eScores)
		progress.LiveEScore = &live
	}
	return progress
}
