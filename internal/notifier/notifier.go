package notifier

import (
	"github.com/courtside/courtside/internal/match"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches
	SendResultNotification(m *match.Match, dryRun bool) error
	// For tournaments
	SendTournamentWinner(t *match.Tournament, dryRun bool) error
	// For slash commands
	SendStandings(standings []match.PlayerStanding, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(standings []match.PlayerStanding) (any, error)
	FormatMatchResponse(m *match.Match) (any, error)
}
