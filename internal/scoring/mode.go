package scoring

import "fmt"

// Mode is the rule configuration a match is scored under. It is fixed when
// the match is initialized and never changes afterwards.
type Mode struct {
	Variant Variant `json:"variant"`

	// UseAdvantage requires a two point margin after deuce. When false the
	// game is sudden death at 3-3 (no-ad scoring).
	UseAdvantage bool `json:"use_advantage"`
	// SetsToWin is the number of sets needed to win the match (1, 2 or 3).
	SetsToWin int `json:"sets_to_win"`
	// GamesPerSet is the games needed to win a set with a two game margin.
	GamesPerSet int `json:"games_per_set"`
	// TiebreakAt is the all-games score that triggers a tiebreak (usually 6-6).
	TiebreakAt int `json:"tiebreak_at"`
	// TiebreakPoints is the race target of a set tiebreak (win by two, no cap).
	TiebreakPoints int `json:"tiebreak_points"`
	// MatchTiebreakPoints is the race target of a deciding-set match tiebreak.
	MatchTiebreakPoints int `json:"match_tiebreak_points"`
	// FinalSetMatchTiebreak replaces the deciding set's tiebreak with a
	// match tiebreak to MatchTiebreakPoints.
	FinalSetMatchTiebreak bool `json:"final_set_match_tiebreak"`
	// MatchTiebreakFromStart plays the entire deciding set as a match
	// tiebreak, skipping regular games altogether.
	MatchTiebreakFromStart bool `json:"match_tiebreak_from_start,omitempty"`
	// MatchTiebreakServerReset restarts serving in a match tiebreak from the
	// side that would open the deciding set, instead of continuing strict
	// game-by-game alternation.
	MatchTiebreakServerReset bool `json:"match_tiebreak_server_reset,omitempty"`

	// RacePointsPerSet is the points race target per set (points-race only).
	RacePointsPerSet int `json:"race_points_per_set,omitempty"`
	// RaceFinalSetPoints is the shortened deciding-set target (points-race
	// only, e.g. 15 in volleyball). Zero means same as RacePointsPerSet.
	RaceFinalSetPoints int `json:"race_final_set_points,omitempty"`
}

// DefaultMode is best-of-three tennis with advantage scoring and a 7-point
// tiebreak at 6-6.
func DefaultMode() Mode {
	return Mode{
		Variant:             VariantTennis,
		UseAdvantage:        true,
		SetsToWin:           2,
		GamesPerSet:         6,
		TiebreakAt:          6,
		TiebreakPoints:      7,
		MatchTiebreakPoints: 10,
	}
}

// DefaultRaceMode is best-of-five rally scoring to 25, deciding set to 15.
func DefaultRaceMode() Mode {
	return Mode{
		Variant:            VariantPointsRace,
		SetsToWin:          3,
		RacePointsPerSet:   25,
		RaceFinalSetPoints: 15,
	}
}

// Validate checks that the mode is internally consistent.
func (m Mode) Validate() error {
	if m.SetsToWin < 1 || m.SetsToWin > 3 {
		return fmt.Errorf("sets_to_win must be 1, 2 or 3, got %d", m.SetsToWin)
	}
	switch m.Variant {
	case VariantTennis:
		if m.GamesPerSet < 1 {
			return fmt.Errorf("games_per_set must be positive, got %d", m.GamesPerSet)
		}
		if m.TiebreakAt < 1 || m.TiebreakAt > m.GamesPerSet {
			return fmt.Errorf("tiebreak_at must be between 1 and games_per_set, got %d", m.TiebreakAt)
		}
		if m.TiebreakPoints < 1 {
			return fmt.Errorf("tiebreak_points must be positive, got %d", m.TiebreakPoints)
		}
		if m.FinalSetMatchTiebreak && m.MatchTiebreakPoints < 1 {
			return fmt.Errorf("match_tiebreak_points must be positive, got %d", m.MatchTiebreakPoints)
		}
		if m.MatchTiebreakFromStart && !m.FinalSetMatchTiebreak {
			return fmt.Errorf("match_tiebreak_from_start requires final_set_match_tiebreak")
		}
	case VariantPointsRace:
		if m.RacePointsPerSet < 1 {
			return fmt.Errorf("race_points_per_set must be positive, got %d", m.RacePointsPerSet)
		}
		if m.RaceFinalSetPoints < 0 {
			return fmt.Errorf("race_final_set_points must not be negative, got %d", m.RaceFinalSetPoints)
		}
	default:
		return fmt.Errorf("unknown scoring variant %q", m.Variant)
	}
	return nil
}

// raceTarget returns the points race target for the current game or set.
func (m Mode) raceTarget(kind TiebreakKind, deciding bool) int {
	switch m.Variant {
	case VariantPointsRace:
		if deciding && m.RaceFinalSetPoints > 0 {
			return m.RaceFinalSetPoints
		}
		return m.RacePointsPerSet
	default:
		if kind == TiebreakMatch {
			return m.MatchTiebreakPoints
		}
		return m.TiebreakPoints
	}
}
