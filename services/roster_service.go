// file: services/roster_service.go
package services

import (
	"errors"
	"math/rand"
	"strings"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/store"
)

// ErrInvalidMove is returned when a reorder would step off either end of the
// start list.
var ErrInvalidMove = errors.New("cannot move athlete past the end of the start list")

// RosterService maintains the athlete start list. Its single invariant: after
// any mutation, the startOrder values of a competition's athletes are exactly
// 1..N in list order, no gaps, no duplicates.
type RosterService struct {
	store *store.Store
}

// NewRosterService returns a roster service over the given store.
func NewRosterService(s *store.Store) *RosterService {
	return &RosterService{store: s}
}

// renumber rewrites startOrder densely from 1 in slice order and persists.
func (s *RosterService) renumber(competitionID string, athletes []models.Athlete) error {
	for i := range athletes {
		athletes[i].StartOrder = i + 1
	}
	return s.store.ReplaceAthletes(competitionID, athletes)
}

// AddAthlete appends a new athlete at the end of the start list.
func (s *RosterService) AddAthlete(competitionID string, a models.Athlete) (models.Athlete, error) {
	if strings.TrimSpace(a.Name) == "" {
		return models.Athlete{}, errors.New("athlete name is required")
	}
	a.CompetitionID = competitionID
	a.StartOrder = len(s.store.ListAthletes(competitionID)) + 1
	created, err := s.store.AddAthlete(a)
	if err != nil {
		return models.Athlete{}, err
	}
	logger.Info.Printf("[AddAthlete] %q added to competition=%s at order=%d", created.Name, competitionID, created.StartOrder)
	return created, nil
}

// UpdateAthlete edits an athlete's descriptive fields. The stored start order
// is preserved; reordering goes through Move or Shuffle.
func (s *RosterService) UpdateAthlete(a models.Athlete) error {
	current, err := s.store.GetAthlete(a.ID)
	if err != nil {
		return err
	}
	a.CompetitionID = current.CompetitionID
	a.StartOrder = current.StartOrder
	return s.store.UpdateAthlete(a)
}

// RemoveAthlete deletes the athlete (cascading their performance and judge
// scores) and closes the gap in the start order.
func (s *RosterService) RemoveAthlete(athleteID string) error {
	a, err := s.store.GetAthlete(athleteID)
	if err != nil {
		return err
	}
	if err := s.store.RemoveAthlete(athleteID); err != nil {
		return err
	}
	return s.renumber(a.CompetitionID, s.store.ListAthletes(a.CompetitionID))
}

// Move shifts an athlete one slot up (direction -1) or down (direction +1)
// in the start list, renumbering afterwards.
func (s *RosterService) Move(competitionID, athleteID string, direction int) error {
	if direction != -1 && direction != 1 {
		return errors.New("direction must be -1 or 1")
	}
	athletes := s.store.ListAthletes(competitionID)
	idx := -1
	for i, a := range athletes {
		if a.ID == athleteID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return store.ErrNotFound
	}
	target := idx + direction
	if target < 0 || target >= len(athletes) {
		return ErrInvalidMove
	}
	athletes[idx], athletes[target] = athletes[target], athletes[idx]
	return s.renumber(competitionID, athletes)
}

// Shuffle randomizes the start order (Fisher-Yates) and renumbers. A list of
// fewer than two athletes is left alone.
func (s *RosterService) Shuffle(competitionID string) error {
	athletes := s.store.ListAthletes(competitionID)
	if len(athletes) < 2 {
		return nil
	}
	rand.Shuffle(len(athletes), func(i, j int) {
		athletes[i], athletes[j] = athletes[j], athletes[i]
	})
	logger.Info.Printf("[Shuffle] start order randomized for competition=%s (%d athletes)", competitionID, len(athletes))
	return s.renumber(competitionID, athletes)
}
