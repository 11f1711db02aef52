package match

import "github.com/courtside/courtside/internal/scoring"

// MatchStore defines the persistence operations around live matches. All
// scoring mutations are compare-and-set on the state version: the caller
// names the version it scored against and a stale version is rejected, never
// merged.
type MatchStore interface {
	CreateMatch(params CreateMatchParams) (*Match, error)
	GetMatch(matchID string) (*Match, error)
	GetAllMatches() ([]*Match, error)
	GetMatchesForProcessing() ([]*Match, error)

	ApplyPoint(matchID string, winner scoring.Side, expectedVersion int64) (*Match, scoring.PointResult, error)
	UndoPoint(matchID string, expectedVersion int64) (*Match, error)
	GetScoreLog(matchID string) ([]LogEntry, error)

	UpdateProcessingStatus(matchID string, status ProcessingStatus) error
	SetMatchPlayer(matchID string, side scoring.Side, name string) error

	UpdateStandings(m *Match) error
	GetStandings() ([]PlayerStanding, error)

	CreateTournament(t *Tournament) error
	GetTournament(tournamentID string) (*Tournament, error)
	GetTournamentMatches(tournamentID string) ([]*Match, error)
	SetTournamentWinner(tournamentID, winner string) error

	Clear()
	ClearMatch(matchID string)
}
