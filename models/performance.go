// Package models
// File: models/performance.go
package models

// ------------------------ performance status -----------------------

// PerformanceStatus is the per-performance state machine:
// pending -> scoring -> confirmed, with confirmed -> confirmed re-edits.
type PerformanceStatus string

const (
	PerformancePending   PerformanceStatus = "pending"
	PerformanceScoring   PerformanceStatus = "scoring"
	PerformanceConfirmed PerformanceStatus = "confirmed"
)

// Valid reports whether s is a known performance status.
func (s PerformanceStatus) Valid() bool {
	switch s {
	case PerformancePending, PerformanceScoring, PerformanceConfirmed:
		return true
	}
	return false
}

// ------------------------ performance model -----------------------

// Performance is one athlete's single attempt. Score fields stay nil until
// the operator confirms; Rank is set only for confirmed performances; at most
// one performance per competition has IsCurrent=true.
type Performance struct {
	ID            string            `json:"id"`
	CompetitionID string            `json:"competitionId"`
	AthleteID     string            `json:"athleteId"`
	Status        PerformanceStatus `json:"status"`
	DScore        *float64          `json:"dScore"`
	EScore        *float64          `json:"eScore"`
	NDScore       *float64          `json:"ndScore"`
	Bonus         *float64          `json:"bonus"`
	FinalScore    *float64          `json:"finalScore"`
	Rank          *int              `json:"rank"`
	IsCurrent     bool              `json:"isCurrent"`
}

// PerformanceWithDetails is the primary read model: a performance joined to
// its athlete (inner join, orphans dropped) with all collected judge scores
// attached (possibly empty).
type PerformanceWithDetails struct {
	Performance
	Athlete     Athlete      `json:"athlete"`
	JudgeScores []JudgeScore `json:"judgeScores"`
}

// ------------------------ scoreboard display -----------------------

// ScoreboardMode steers what the public scoreboard shows.
type ScoreboardMode string

const (
	ScoreboardAuto        ScoreboardMode = "auto"
	ScoreboardPerformance ScoreboardMode = "performance"
	ScoreboardRanking     ScoreboardMode = "ranking"
)

// Valid reports whether m is a known scoreboard mode.
func (m ScoreboardMode) Valid() bool {
	switch m {
	case ScoreboardAuto, ScoreboardPerformance, ScoreboardRanking:
		return true
	}
	return false
}

// ScoreboardDisplay is the singleton display preference per competition.
// Only the most recently written value is retained; it is not an event log.
type ScoreboardDisplay struct {
	CompetitionID string         `json:"competitionId"`
	Mode          ScoreboardMode `json:"mode"`
	PerformanceID string         `json:"performanceId,omitempty"`
}
