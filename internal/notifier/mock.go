package notifier

import (
	"sync"

	"github.com/courtside/courtside/internal/match"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendResultNotificationFunc func(m *match.Match, dryRun bool) error
	SendTournamentWinnerFunc   func(t *match.Tournament, dryRun bool) error
	SendStandingsFunc          func(standings []match.PlayerStanding, dryRun bool) error
	FormatStandingsResponseFunc func(standings []match.PlayerStanding) (any, error)
	FormatMatchResponseFunc     func(m *match.Match) (any, error)

	// Call records
	SendResultNotificationCalls []*match.Match
	SendTournamentWinnerCalls   []*match.Tournament
	SendStandingsCalls          [][]match.PlayerStanding
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

var _ Notifier = (*Mock)(nil)

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendTournamentWinnerCalls = nil
	m.SendStandingsCalls = nil
}

func (m *Mock) SendResultNotification(mt *match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, mt)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(mt, dryRun)
	}
	return nil
}

func (m *Mock) SendTournamentWinner(t *match.Tournament, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentWinnerCalls = append(m.SendTournamentWinnerCalls, t)
	if m.SendTournamentWinnerFunc != nil {
		return m.SendTournamentWinnerFunc(t, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(standings []match.PlayerStanding, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, standings)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(standings, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(standings []match.PlayerStanding) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(standings)
	}
	return nil, nil
}

func (m *Mock) FormatMatchResponse(mt *match.Match) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatMatchResponseFunc != nil {
		return m.FormatMatchResponseFunc(mt)
	}
	return nil, nil
}
