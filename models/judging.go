// Package models
// File: models/judging.go
package models

import "strings"

// ------------------------ judge roles -----------------------

// JudgeRole identifies a seat on the judging panel: D1/D2 (difficulty),
// E1..E6 (execution), ND (neutral deductions).
type JudgeRole string

const (
	RoleD1 JudgeRole = "D1"
	RoleD2 JudgeRole = "D2"
	RoleE1 JudgeRole = "E1"
	RoleE2 JudgeRole = "E2"
	RoleE3 JudgeRole = "E3"
	RoleE4 JudgeRole = "E4"
	RoleE5 JudgeRole = "E5"
	RoleE6 JudgeRole = "E6"
	RoleND JudgeRole = "ND"
)

// AllJudgeRoles lists every configurable panel seat in display order.
var AllJudgeRoles = []JudgeRole{
	RoleD1, RoleD2,
	RoleE1, RoleE2, RoleE3, RoleE4, RoleE5, RoleE6,
	RoleND,
}

// Valid reports whether r is a known panel role.
func (r JudgeRole) Valid() bool {
	for _, known := range AllJudgeRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsE reports whether r is an execution-panel seat.
func (r JudgeRole) IsE() bool {
	return strings.HasPrefix(string(r), "E")
}

// IsD reports whether r is a difficulty-panel seat.
func (r JudgeRole) IsD() bool {
	return strings.HasPrefix(string(r), "D")
}

// ------------------------ judge panel model -----------------------

// JudgePanel is one configured seat for a competition. An entry with an
// empty JudgeName is a placeholder: the role is not in use and is excluded
// from the login list and from scoring.
type JudgePanel struct {
	ID            string    `json:"id"`
	CompetitionID string    `json:"competitionId"`
	Role          JudgeRole `json:"role"`
	JudgeName     string    `json:"judgeName"`
	IsChief       bool      `json:"isChief"`
}

// InUse reports whether the seat has a judge assigned.
func (p JudgePanel) InUse() bool {
	return strings.TrimSpace(p.JudgeName) != ""
}

// ------------------------ judge score model -----------------------

// JudgeScore is the finest-grained scoring record: one judge's raw submission
// for one performance. At most one exists per (performanceId, judgePanelId);
// resubmission overwrites value and timestamp under the same id.
type JudgeScore struct {
	ID            string    `json:"id"`
	PerformanceID string    `json:"performanceId"`
	JudgePanelID  string    `json:"judgePanelId"`
	Role          JudgeRole `json:"role"`
	ScoreValue    *float64  `json:"scoreValue"`
	SubmittedAt   *string   `json:"submittedAt"`
}
