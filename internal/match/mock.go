package match

import (
	"sync"

	"github.com/courtside/courtside/internal/scoring"
)

// MockStore is a mock implementation of the MatchStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMatchFunc             func(params CreateMatchParams) (*Match, error)
	GetMatchFunc                func(matchID string) (*Match, error)
	GetAllMatchesFunc           func() ([]*Match, error)
	GetMatchesForProcessingFunc func() ([]*Match, error)
	ApplyPointFunc              func(matchID string, winner scoring.Side, expectedVersion int64) (*Match, scoring.PointResult, error)
	UndoPointFunc               func(matchID string, expectedVersion int64) (*Match, error)
	GetScoreLogFunc             func(matchID string) ([]LogEntry, error)
	UpdateProcessingStatusFunc  func(matchID string, status ProcessingStatus) error
	SetMatchPlayerFunc          func(matchID string, side scoring.Side, name string) error
	UpdateStandingsFunc         func(m *Match) error
	GetStandingsFunc            func() ([]PlayerStanding, error)
	CreateTournamentFunc        func(t *Tournament) error
	GetTournamentFunc           func(tournamentID string) (*Tournament, error)
	GetTournamentMatchesFunc    func(tournamentID string) ([]*Match, error)
	SetTournamentWinnerFunc     func(tournamentID, winner string) error
	ClearFunc                   func()
	ClearMatchFunc              func(matchID string)

	// Call records
	CreateMatchCalls []CreateMatchParams
	ApplyPointCalls  []struct {
		MatchID         string
		Winner          scoring.Side
		ExpectedVersion int64
	}
	UndoPointCalls []struct {
		MatchID         string
		ExpectedVersion int64
	}
	UpdateProcessingStatusCalls []struct {
		MatchID string
		Status  ProcessingStatus
	}
	SetMatchPlayerCalls []struct {
		MatchID string
		Side    scoring.Side
		Name    string
	}
	UpdateStandingsCalls    []*Match
	SetTournamentWinnerCalls []struct {
		TournamentID string
		Winner       string
	}
	ClearMatchCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ MatchStore = (*MockStore)(nil)

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = nil
	m.ApplyPointCalls = nil
	m.UndoPointCalls = nil
	m.UpdateProcessingStatusCalls = nil
	m.SetMatchPlayerCalls = nil
	m.UpdateStandingsCalls = nil
	m.SetTournamentWinnerCalls = nil
	m.ClearMatchCalls = nil
}

func (m *MockStore) CreateMatch(params CreateMatchParams) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, params)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(params)
	}
	return nil, nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) GetAllMatches() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatchesForProcessing() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesForProcessingFunc != nil {
		return m.GetMatchesForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) ApplyPoint(matchID string, winner scoring.Side, expectedVersion int64) (*Match, scoring.PointResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyPointCalls = append(m.ApplyPointCalls, struct {
		MatchID         string
		Winner          scoring.Side
		ExpectedVersion int64
	}{matchID, winner, expectedVersion})
	if m.ApplyPointFunc != nil {
		return m.ApplyPointFunc(matchID, winner, expectedVersion)
	}
	return nil, scoring.PointResult{}, nil
}

func (m *MockStore) UndoPoint(matchID string, expectedVersion int64) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UndoPointCalls = append(m.UndoPointCalls, struct {
		MatchID         string
		ExpectedVersion int64
	}{matchID, expectedVersion})
	if m.UndoPointFunc != nil {
		return m.UndoPointFunc(matchID, expectedVersion)
	}
	return nil, nil
}

func (m *MockStore) GetScoreLog(matchID string) ([]LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetScoreLogFunc != nil {
		return m.GetScoreLogFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(matchID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		MatchID string
		Status  ProcessingStatus
	}{matchID, status})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(matchID, status)
	}
	return nil
}

func (m *MockStore) SetMatchPlayer(matchID string, side scoring.Side, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetMatchPlayerCalls = append(m.SetMatchPlayerCalls, struct {
		MatchID string
		Side    scoring.Side
		Name    string
	}{matchID, side, name})
	if m.SetMatchPlayerFunc != nil {
		return m.SetMatchPlayerFunc(matchID, side, name)
	}
	return nil
}

func (m *MockStore) UpdateStandings(match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateStandingsCalls = append(m.UpdateStandingsCalls, match)
	if m.UpdateStandingsFunc != nil {
		return m.UpdateStandingsFunc(match)
	}
	return nil
}

func (m *MockStore) GetStandings() ([]PlayerStanding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetStandingsFunc != nil {
		return m.GetStandingsFunc()
	}
	return nil, nil
}

func (m *MockStore) CreateTournament(t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateTournamentFunc != nil {
		return m.CreateTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(tournamentID string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) GetTournamentMatches(tournamentID string) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTournamentMatchesFunc != nil {
		return m.GetTournamentMatchesFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) SetTournamentWinner(tournamentID, winner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetTournamentWinnerCalls = append(m.SetTournamentWinnerCalls, struct {
		TournamentID string
		Winner       string
	}{tournamentID, winner})
	if m.SetTournamentWinnerFunc != nil {
		return m.SetTournamentWinnerFunc(tournamentID, winner)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	if m.ClearMatchFunc != nil {
		m.ClearMatchFunc(matchID)
	}
}
