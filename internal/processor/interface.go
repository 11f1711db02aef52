package processor

import (
	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetMatchesForProcessing() ([]*match.Match, error)
	UpdateProcessingStatus(matchID string, status match.ProcessingStatus) error
	UpdateStandings(m *match.Match) error
	GetTournament(tournamentID string) (*match.Tournament, error)
}

// Advancer defines the bracket operations required by the processor.
type Advancer interface {
	Advance(m *match.Match) error
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
