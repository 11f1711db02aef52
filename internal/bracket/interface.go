package bracket

import (
	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/scoring"
)

// Advancer generates single-elimination brackets and moves winners through
// them as matches complete.
type Advancer interface {
	// CreateBracket builds a full bracket for the given entrants: round one
	// pairings, placeholder matches for every later round, and byes seated
	// directly into round two. Entrants play in the order given; shuffle
	// beforehand for a random draw.
	CreateBracket(name string, players []string, mode scoring.Mode) (*match.Tournament, []*match.Match, error)

	// Advance seats the winner of a completed match into its next-round
	// slot, or closes the tournament if the final just finished.
	Advance(m *match.Match) error
}
