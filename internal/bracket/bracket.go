package bracket

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/scoring"
)

// ErrNotInBracket is returned when a standalone match is advanced.
var ErrNotInBracket = errors.New("match does not belong to a tournament")

type advancer struct {
	store match.MatchStore
}

// New creates a bracket advancer backed by the given store.
func New(store match.MatchStore) Advancer {
	return &advancer{store: store}
}

var _ Advancer = (*advancer)(nil)

// MatchID names a bracket match deterministically from its coordinates.
func MatchID(tournamentID string, round, slot int) string {
	return fmt.Sprintf("%s-R%dM%d", tournamentID, round, slot)
}

func (a *advancer) CreateBracket(name string, players []string, mode scoring.Mode) (*match.Tournament, []*match.Match, error) {
	n := len(players)
	if n < 2 {
		return nil, nil, errors.New("a bracket needs at least two entrants")
	}

	size := 1
	rounds := 0
	for size < n {
		size <<= 1
		rounds++
	}
	if rounds == 0 {
		rounds = 1
		size = 2
	}
	byes := size - n

	tournament := &match.Tournament{
		ID:   uuid.New().String(),
		Name: name,
		Size: n,
	}
	if err := a.store.CreateTournament(tournament); err != nil {
		return nil, nil, err
	}
	log.Info("Generating bracket", "tournamentID", tournament.ID, "entrants", n, "rounds", rounds, "byes", byes)

	// seats[r][s] holds the two player names of round r+1, slot s+1.
	// Unknown participants stay empty until a winner is advanced.
	seats := make([][][2]string, rounds)
	for r := range seats {
		seats[r] = make([][2]string, size>>(r+1))
	}

	// One bye per pair, taken from the tail, so no pair is all byes.
	fullPairs := size/2 - byes
	idx := 0
	for s := 0; s < size/2; s++ {
		if s < fullPairs {
			seats[0][s] = [2]string{players[idx], players[idx+1]}
			idx += 2
			continue
		}
		// Bye: the entrant skips round one and is seated into round two.
		seatWinner(seats, 1, s+1, players[idx])
		idx++
	}

	var matches []*match.Match
	for r := 1; r <= rounds; r++ {
		for s := 1; s <= len(seats[r-1]); s++ {
			pair := seats[r-1][s-1]
			if r == 1 && pair[0] == "" && pair[1] == "" {
				continue // bye slot, never played
			}
			m, err := a.store.CreateMatch(match.CreateMatchParams{
				ID:           MatchID(tournament.ID, r, s),
				Player1:      pair[0],
				Player2:      pair[1],
				TournamentID: tournament.ID,
				Round:        r,
				Slot:         s,
				Mode:         mode,
				FirstServer:  scoring.Side1,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create bracket match R%dM%d: %w", r, s, err)
			}
			matches = append(matches, m)
		}
	}
	return tournament, matches, nil
}

// Advance seats the winner of m into the next round, or closes the
// tournament when the final is done.
func (a *advancer) Advance(m *match.Match) error {
	if m.TournamentID == "" {
		return ErrNotInBracket
	}
	st := &m.Scoring.State
	if !st.Complete {
		return fmt.Errorf("match %s is not complete", m.ID)
	}
	winner := m.PlayerName(st.Winner)

	tournament, err := a.store.GetTournament(m.TournamentID)
	if err != nil {
		return err
	}
	rounds := bracketRounds(tournament.Size)

	if m.Round >= rounds {
		log.Info("Final complete", "tournamentID", tournament.ID, "winner", winner)
		return a.store.SetTournamentWinner(tournament.ID, winner)
	}

	nextID := MatchID(tournament.ID, m.Round+1, (m.Slot+1)/2)
	side := scoring.Side1
	if m.Slot%2 == 0 {
		side = scoring.Side2
	}
	if err := a.store.SetMatchPlayer(nextID, side, winner); err != nil {
		return fmt.Errorf("failed to advance winner of %s: %w", m.ID, err)
	}
	log.Info("Advanced winner", "matchID", m.ID, "winner", winner, "nextID", nextID)
	return nil
}

// seatWinner writes a player into the seats matrix: odd slots feed side 1 of
// the next round, even slots side 2.
func seatWinner(seats [][][2]string, nextRound, fromSlot int, player string) {
	slot := (fromSlot + 1) / 2
	i := 0
	if fromSlot%2 == 0 {
		i = 1
	}
	seats[nextRound][slot-1][i] = player
}

func bracketRounds(entrants int) int {
	size := 1
	rounds := 0
	for size < entrants {
		size <<= 1
		rounds++
	}
	if rounds == 0 {
		rounds = 1
	}
	return rounds
}
