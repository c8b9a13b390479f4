// file: store/entity_store.go
package store

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
)

// collection keys, one per persisted array
const (
	keyCompetitions = "ghb_competitions"
	keyAthletes     = "ghb_athletes"
	keyJudgePanels  = "ghb_judge_panels"
	keyPerformances = "ghb_performances"
	keyJudgeScores  = "ghb_judge_scores"
	keyScoreboard   = "ghb_scoreboard_display"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("entity not found")

// Store exposes scoped CRUD over the five entity collections plus the
// scoreboard display singleton. Writes are replace-the-collection and
// last-writer-wins; a mutex serializes read-modify-write cycles within
// this process.
type Store struct {
	storage Storage
	newID   func() string
	mu      sync.Mutex
}

// New returns a Store persisting through the given storage port.
func New(storage Storage) *Store {
	return &Store{
		storage: storage,
		newID:   uuid.NewString,
	}
}

// ------------------- collection (de)serialization -------------------

// loadAll reads a whole collection. Malformed or missing data degrades to an
// empty collection rather than an error (fail-soft).
func loadAll[T any](s Storage, key string) []T {
	data, err := s.Load(key)
	if err != nil {
		logger.Warn.Printf("[loadAll] failed to load key=%s, treating as empty: %v", key, err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn.Printf("[loadAll] malformed data at key=%s, treating as empty: %v", key, err)
		return nil
	}
	return items
}

// saveAll replaces a whole collection.
func saveAll[T any](s Storage, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Save(key, data)
}

// ------------------- competitions -------------------

// CreateCompetition assigns an id (and a default status of upcoming) and
// appends the competition.
func (s *Store) CreateCompetition(c models.Competition) (models.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.newID()
	if c.Status == "" {
		c.Status = models.CompetitionUpcoming
	}
	all := append(loadAll[models.Competition](s.storage, keyCompetitions), c)
	if err := saveAll(s.storage, keyCompetitions, all); err != nil {
		return models.Competition{}, err
	}
	logger.Info.Printf("[CreateCompetition] created competition id=%s name=%q", c.ID, c.Name)
	return c, nil
}

// GetCompetition looks a competition up by id.
func (s *Store) GetCompetition(id string) (models.Competition, error) {
	for _, c := range loadAll[models.Competition](s.storage, keyCompetitions) {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Competition{}, ErrNotFound
}

// ListCompetitions returns every stored competition.
func (s *Store) ListCompetitions() []models.Competition {
	return loadAll[models.Competition](s.storage, keyCompetitions)
}

// UpdateCompetition replaces the stored competition with the same id.
func (s *Store) UpdateCompetition(c models.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.Competition](s.storage, keyCompetitions)
	for i := range all {
		if all[i].ID == c.ID {
			all[i] = c
			return saveAll(s.storage, keyCompetitions, all)
		}
	}
	return ErrNotFound
}

// DeleteCompetition removes the competition and cascades: all athletes,
// judge panels, performances, and judge scores scoped to it are removed too.
// Unrelated competitions' records are untouched.
func (s *Store) DeleteCompetition(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comps := loadAll[models.Competition](s.storage, keyCompetitions)
	kept := comps[:0]
	found := false
	for _, c := range comps {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrNotFound
	}
	if err := saveAll(s.storage, keyCompetitions, kept); err != nil {
		return err
	}

	athletes := loadAll[models.Athlete](s.storage, keyAthletes)
	keptAthletes := athletes[:0]
	for _, a := range athletes {
		if a.CompetitionID != id {
			keptAthletes = append(keptAthletes, a)
		}
	}
	if err := saveAll(s.storage, keyAthletes, keptAthletes); err != nil {
		return err
	}

	panels := loadAll[models.JudgePanel](s.storage, keyJudgePanels)
	keptPanels := panels[:0]
	for _, p := range panels {
		if p.CompetitionID != id {
			keptPanels = append(keptPanels, p)
		}
	}
	if err := saveAll(s.storage, keyJudgePanels, keptPanels); err != nil {
		return err
	}

	perfs := loadAll[models.Performance](s.storage, keyPerformances)
	removedPerfIDs := make(map[string]bool)
	keptPerfs := perfs[:0]
	for _, p := range perfs {
		if p.CompetitionID == id {
			removedPerfIDs[p.ID] = true
			continue
		}
		keptPerfs = append(keptPerfs, p)
	}
	if err := saveAll(s.storage, keyPerformances, keptPerfs); err != nil {
		return err
	}

	scores := loadAll[models.JudgeScore](s.storage, keyJudgeScores)
	keptScores := scores[:0]
	for _, js := range scores {
		if !removedPerfIDs[js.PerformanceID] {
			keptScores = append(keptScores, js)
		}
	}
	if err := saveAll(s.storage, keyJudgeScores, keptScores); err != nil {
		return err
	}

	logger.Info.Printf("[DeleteCompetition] removed competition id=%s and %d performance(s)", id, len(removedPerfIDs))
	return nil
}

// ------------------- athletes -------------------

// ListAthletes returns a competition's athletes ordered by start order.
func (s *Store) ListAthletes(competitionID string) []models.Athlete {
	var out []models.Athlete
	for _, a := range loadAll[models.Athlete](s.storage, keyAthletes) {
		if a.CompetitionID == competitionID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartOrder < out[j].StartOrder })
	return out
}

// GetAthlete looks an athlete up by id.
func (s *Store) GetAthlete(id string) (models.Athlete, error) {
	for _, a := range loadAll[models.Athlete](s.storage, keyAthletes) {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Athlete{}, ErrNotFound
}

// AddAthlete assigns an id and appends the athlete.
func (s *Store) AddAthlete(a models.Athlete) (models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.newID()
	all := append(loadAll[models.Athlete](s.storage, keyAthletes), a)
	if err := saveAll(s.storage, keyAthletes, all); err != nil {
		return models.Athlete{}, err
	}
	return a, nil
}

// UpdateAthlete replaces the stored athlete with the same id.
func (s *Store) UpdateAthlete(a models.Athlete) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.Athlete](s.storage, keyAthletes)
	for i := range all {
		if all[i].ID == a.ID {
			all[i] = a
			return saveAll(s.storage, keyAthletes, all)
		}
	}
	return ErrNotFound
}

// ReplaceAthletes swaps out one competition's athlete list wholesale, leaving
// other competitions' athletes in place. The caller is responsible for start
// order numbering (the roster service renumbers before calling).
func (s *Store) ReplaceAthletes(competitionID string, athletes []models.Athlete) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.Athlete](s.storage, keyAthletes)
	kept := all[:0]
	for _, a := range all {
		if a.CompetitionID != competitionID {
			kept = append(kept, a)
		}
	}
	for i := range athletes {
		athletes[i].CompetitionID = competitionID
		if athletes[i].ID == "" {
			athletes[i].ID = s.newID()
		}
	}
	return saveAll(s.storage, keyAthletes, append(kept, athletes...))
}

// RemoveAthlete removes the athlete and cascades: that athlete's
// performance(s) and any judge scores referencing them go too.
func (s *Store) RemoveAthlete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	athletes := loadAll[models.Athlete](s.storage, keyAthletes)
	kept := athletes[:0]
	found := false
	for _, a := range athletes {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return ErrNotFound
	}
	if err := saveAll(s.storage, keyAthletes, kept); err != nil {
		return err
	}

	perfs := loadAll[models.Performance](s.storage, keyPerformances)
	removedPerfIDs := make(map[string]bool)
	keptPerfs := perfs[:0]
	for _, p := range perfs {
		if p.AthleteID == id {
			removedPerfIDs[p.ID] = true
			continue
		}
		keptPerfs = append(keptPerfs, p)
	}
	if err := saveAll(s.storage, keyPerformances, keptPerfs); err != nil {
		return err
	}

	scores := loadAll[models.JudgeScore](s.storage, keyJudgeScores)
	keptScores := scores[:0]
	for _, js := range scores {
		if !removedPerfIDs[js.PerformanceID] {
			keptScores = append(keptScores, js)
		}
	}
	return saveAll(s.storage, keyJudgeScores, keptScores)
}

// ------------------- judge panels -------------------

// ListJudgePanels returns a competition's configured panel seats.
func (s *Store) ListJudgePanels(competitionID string) []models.JudgePanel {
	var out []models.JudgePanel
	for _, p := range loadAll[models.JudgePanel](s.storage, keyJudgePanels) {
		if p.CompetitionID == competitionID {
			out = append(out, p)
		}
	}
	return out
}

// ReplaceJudgePanels swaps out one competition's panel configuration. At most
// one entry per role survives (first wins); missing ids are assigned.
func (s *Store) ReplaceJudgePanels(competitionID string, panels []models.JudgePanel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.JudgePanel](s.storage, keyJudgePanels)
	kept := all[:0]
	for _, p := range all {
		if p.CompetitionID != competitionID {
			kept = append(kept, p)
		}
	}

	seen := make(map[models.JudgeRole]bool)
	for _, p := range panels {
		if seen[p.Role] {
			logger.Warn.Printf("[ReplaceJudgePanels] duplicate role %s for competition=%s dropped", p.Role, competitionID)
			continue
		}
		seen[p.Role] = true
		p.CompetitionID = competitionID
		if p.ID == "" {
			p.ID = s.newID()
		}
		kept = append(kept, p)
	}
	return saveAll(s.storage, keyJudgePanels, kept)
}

// ------------------- performances -------------------

// ListPerformances returns a competition's performances.
func (s *Store) ListPerformances(competitionID string) []models.Performance {
	var out []models.Performance
	for _, p := range loadAll[models.Performance](s.storage, keyPerformances) {
		if p.CompetitionID == competitionID {
			out = append(out, p)
		}
	}
	return out
}

// GetPerformance looks a performance up by id.
func (s *Store) GetPerformance(id string) (models.Performance, error) {
	for _, p := range loadAll[models.Performance](s.storage, keyPerformances) {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Performance{}, ErrNotFound
}

// AddPerformances appends new performance records, assigning missing ids.
func (s *Store) AddPerformances(perfs []models.Performance) error {
	if len(perfs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.Performance](s.storage, keyPerformances)
	for i := range perfs {
		if perfs[i].ID == "" {
			perfs[i].ID = s.newID()
		}
	}
	return saveAll(s.storage, keyPerformances, append(all, perfs...))
}

// UpdatePerformance replaces the stored performance with the same id.
func (s *Store) UpdatePerformance(p models.Performance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.Performance](s.storage, keyPerformances)
	for i := range all {
		if all[i].ID == p.ID {
			all[i] = p
			return saveAll(s.storage, keyPerformances, all)
		}
	}
	return ErrNotFound
}

// ReplacePerformances swaps out one competition's performances wholesale.
// Used by the lifecycle service for current-performer moves and rank sweeps,
// where every record in the competition may change at once.
func (s *Store) ReplacePerformances(competitionID string, perfs []models.Performance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.Performance](s.storage, keyPerformances)
	kept := all[:0]
	for _, p := range all {
		if p.CompetitionID != competitionID {
			kept = append(kept, p)
		}
	}
	for i := range perfs {
		perfs[i].CompetitionID = competitionID
		if perfs[i].ID == "" {
			perfs[i].ID = s.newID()
		}
	}
	return saveAll(s.storage, keyPerformances, append(kept, perfs...))
}

// ------------------- judge scores -------------------

// ListJudgeScores returns every judge score collected for a performance.
func (s *Store) ListJudgeScores(performanceID string) []models.JudgeScore {
	var out []models.JudgeScore
	for _, js := range loadAll[models.JudgeScore](s.storage, keyJudgeScores) {
		if js.PerformanceID == performanceID {
			out = append(out, js)
		}
	}
	return out
}

// UpsertJudgeScore inserts or overwrites the score keyed by
// (performanceId, judgePanelId). A resubmission keeps the original id but
// replaces value, role, and timestamp.
func (s *Store) UpsertJudgeScore(js models.JudgeScore) (models.JudgeScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := loadAll[models.JudgeScore](s.storage, keyJudgeScores)
	for i := range all {
		if all[i].PerformanceID == js.PerformanceID && all[i].JudgePanelID == js.JudgePanelID {
			js.ID = all[i].ID
			all[i] = js
			return js, saveAll(s.storage, keyJudgeScores, all)
		}
	}
	js.ID = s.newID()
	return js, saveAll(s.storage, keyJudgeScores, append(all, js))
}

// ------------------- scoreboard display singleton -------------------

// SetScoreboardDisplay overwrites the single stored display preference.
func (s *Store) SetScoreboardDisplay(d models.ScoreboardDisplay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.storage.Save(keyScoreboard, data)
}

// GetScoreboardDisplay returns the stored preference when it belongs to the
// given competition, else the auto default.
func (s *Store) GetScoreboardDisplay(competitionID string) models.ScoreboardDisplay {
	fallback := models.ScoreboardDisplay{CompetitionID: competitionID, Mode: models.ScoreboardAuto}

	data, err := s.storage.Load(keyScoreboard)
	if err != nil || len(data) == 0 {
		return fallback
	}
	var d models.ScoreboardDisplay
	if err := json.Unmarshal(data, &d); err != nil {
		logger.Warn.Printf("[GetScoreboardDisplay] malformed display preference, using auto: %v", err)
		return fallback
	}
	if d.CompetitionID != competitionID {
		return fallback
	}
	return d
}

// ------------------- joined read model -------------------

// GetPerformancesWithDetails joins performances to their athlete and attaches
// all collected judge scores. A performance whose athlete no longer exists is
// silently dropped. Results are ordered by the athlete's start order.
func (s *Store) GetPerformancesWithDetails(competitionID string) []models.PerformanceWithDetails {
	athletes := make(map[string]models.Athlete)
	for _, a := range s.ListAthletes(competitionID) {
		athletes[a.ID] = a
	}

	scoresByPerf := make(map[string][]models.JudgeScore)
	for _, js := range loadAll[models.JudgeScore](s.storage, keyJudgeScores) {
		scoresByPerf[js.PerformanceID] = append(scoresByPerf[js.PerformanceID], js)
	}

	var out []models.PerformanceWithDetails
	for _, p := range s.ListPerformances(competitionID) {
		athlete, ok := athletes[p.AthleteID]
		if !ok {
			continue
		}
		scores := scoresByPerf[p.ID]
		if scores == nil {
			scores = []models.JudgeScore{}
		}
		out = append(out, models.PerformanceWithDetails{
			Performance: p,
			Athlete:     athlete,
			JudgeScores: scores,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Athlete.StartOrder < out[j].Athlete.StartOrder })
	return out
}
