// file: services/mock_lifecycle_service.go
package services

// MockLifecycleService is a test double for LifecycleServiceInterface. Each
// method records its arguments and returns the injected error, if any.
type MockLifecycleService struct {
	InitializedCompetitions []string
	CurrentCalls            [][2]string
	ClearedCompetitions     []string
	ConfirmedPerformances   []string
	RecalcedCompetitions    []string
	Err                     error
}

// InitializePerformances records the call.
func (m *MockLifecycleService) InitializePerformances(competitionID string) error {
	m.InitializedCompetitions = append(m.InitializedCompetitions, competitionID)
	return m.Err
}

// SetCurrentPerformance records the call.
func (m *MockLifecycleService) SetCurrentPerformance(competitionID, performanceID string) error {
	m.CurrentCalls = append(m.CurrentCalls, [2]string{competitionID, performanceID})
	return m.Err
}

// ClearCurrentPerformance records the call.
func (m *MockLifecycleService) ClearCurrentPerformance(competitionID string) error {
	m.ClearedCompetitions = append(m.ClearedCompetitions, competitionID)
	return m.Err
}

// ConfirmPerformance records the call.
func (m *MockLifecycleService) ConfirmPerformance(performanceID string, d, e, nd, finalScore float64, bonus *float64) error {
	m.ConfirmedPerformances = append(m.ConfirmedPerformances, performanceID)
	return m.Err
}

// RecalcRanks records the call.
func (m *MockLifecycleService) RecalcRanks(competitionID string) error {
	m.RecalcedCompetitions = append(m.RecalcedCompetitions, competitionID)
	return m.Err
}
