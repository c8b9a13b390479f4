// file: services/presence_service.go
package services

import (
	"context"
	"sync"
	"time"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
)

// PresenceService tracks which judge seats are actively polling. Every judge
// view poll refreshes the seat's last-seen timestamp; seats idle past the
// timeout are dropped, so the operator can see who is really connected.
type PresenceService struct {
	mu       sync.Mutex
	lastSeen map[string]map[models.JudgeRole]time.Time
	timeout  time.Duration
	now      func() time.Time
}

// NewPresenceService returns a presence tracker with the given idle timeout.
func NewPresenceService(timeout time.Duration) *PresenceService {
	return &PresenceService{
		lastSeen: make(map[string]map[models.JudgeRole]time.Time),
		timeout:  timeout,
		now:      time.Now,
	}
}

// WithClock swaps the time source. Tests use this for fixed times.
func (s *PresenceService) WithClock(now func() time.Time) *PresenceService {
	s.now = now
	return s
}

// Heartbeat marks a judge seat as active for a competition.
func (s *PresenceService) Heartbeat(competitionID string, role models.JudgeRole) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seats, ok := s.lastSeen[competitionID]
	if !ok {
		seats = make(map[models.JudgeRole]time.Time)
		s.lastSeen[competitionID] = seats
	}
	seats[role] = s.now()
	logger.Debug.Printf("[Heartbeat] role=%s active for competition=%s", role, competitionID)
}

// ActiveRoles returns the judge seats seen within the timeout, unordered.
func (s *PresenceService) ActiveRoles(competitionID string) []models.JudgeRole {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.timeout)
	var active []models.JudgeRole
	for role, seen := range s.lastSeen[competitionID] {
		if seen.After(cutoff) {
			active = append(active, role)
		}
	}
	return active
}

// CleanupLoop prunes idle seats on the given interval until ctx is done.
// Run it as a goroutine from main.
func (s *PresenceService) CleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.prune()
		}
	}
}

func (s *PresenceService) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.timeout)
	for compID, seats := range s.lastSeen {
		for role, seen := range seats {
			if seen.Before(cutoff) {
				logger.Info.Printf("[PresenceService.prune] removing idle judge=%s for competition=%s", role, compID)
				delete(seats, role)
			}
		}
		if len(seats) == 0 {
			delete(s.lastSeen, compID)
		}
	}
}
