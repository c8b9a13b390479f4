// Package models defines data structures used across the application.
// File: models/competition.go
package models

// ------------------------ competition status -----------------------

// CompetitionStatus is the operator-driven lifecycle of a competition.
type CompetitionStatus string

const (
	CompetitionUpcoming   CompetitionStatus = "upcoming"
	CompetitionInProgress CompetitionStatus = "in_progress"
	CompetitionCompleted  CompetitionStatus = "completed"
)

// Valid reports whether s is one of the known competition statuses.
func (s CompetitionStatus) Valid() bool {
	switch s {
	case CompetitionUpcoming, CompetitionInProgress, CompetitionCompleted:
		return true
	}
	return false
}

// ------------------------ competition model -----------------------

// Competition is the root scoping entity. Every other record carries its id.
type Competition struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Date   string            `json:"date"`
	Venue  string            `json:"venue"`
	Status CompetitionStatus `json:"status"`
}

// ------------------------ athlete model -----------------------

// Athlete is a registered performer. StartOrder defines the performance
// sequence and is kept dense (exactly 1..N within a competition) by the
// roster service after every mutation.
type Athlete struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competitionId"`
	Name          string `json:"name"`
	Affiliation   string `json:"affiliation"`
	Grade         string `json:"grade"`
	Bio           string `json:"bio"`
	StartOrder    int    `json:"startOrder"`
}
