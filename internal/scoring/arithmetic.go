package scoring

// GameOutcome is the result of evaluating the raw point counts of a single
// game (or tiebreak) against the match mode.
type GameOutcome struct {
	// Winner is the side that has won the game, or SideNone while in play.
	Winner Side
	// Deuce reports 40-40 under advantage scoring.
	Deuce bool
	// Advantage is the side holding advantage after deuce, if any.
	Advantage Side
}

// SetOutcome is the result of evaluating the game counts of the in-progress
// set against the match mode.
type SetOutcome struct {
	// Winner is the side that has won the set, or SideNone while in play.
	Winner Side
	// EnterTiebreak reports that the next game must be scored as a tiebreak.
	EnterTiebreak bool
}

// EvaluateGame translates raw point counts into a game outcome. The kind
// argument selects tiebreak scoring; TiebreakNone means a standard game.
func EvaluateGame(points [2]int, mode Mode, kind TiebreakKind) GameOutcome {
	if kind != TiebreakNone {
		return raceOutcome(points, mode.raceTarget(kind, false))
	}

	p1, p2 := points[0], points[1]
	if !mode.UseAdvantage {
		// Sudden death: the game ends the instant one side reaches 4 points.
		if p1 >= 4 {
			return GameOutcome{Winner: Side1}
		}
		if p2 >= 4 {
			return GameOutcome{Winner: Side2}
		}
		return GameOutcome{}
	}

	if p1 >= 4 && p1-p2 >= 2 {
		return GameOutcome{Winner: Side1}
	}
	if p2 >= 4 && p2-p1 >= 2 {
		return GameOutcome{Winner: Side2}
	}
	if p1 >= 3 && p2 >= 3 {
		if p1 == p2 {
			return GameOutcome{Deuce: true}
		}
		return GameOutcome{Advantage: leader(points)}
	}
	return GameOutcome{}
}

// EvaluateSet translates the in-progress set's game counts into a set
// outcome: won at GamesPerSet with a two game margin, won at TiebreakAt+1
// after a tiebreak, or entering a tiebreak at TiebreakAt all.
func EvaluateSet(games [2]int, mode Mode) SetOutcome {
	g1, g2 := games[0], games[1]
	if g1 >= mode.GamesPerSet && g1-g2 >= 2 {
		return SetOutcome{Winner: Side1}
	}
	if g2 >= mode.GamesPerSet && g2-g1 >= 2 {
		return SetOutcome{Winner: Side2}
	}
	if g1 == mode.TiebreakAt+1 && g2 == mode.TiebreakAt {
		return SetOutcome{Winner: Side1}
	}
	if g2 == mode.TiebreakAt+1 && g1 == mode.TiebreakAt {
		return SetOutcome{Winner: Side2}
	}
	if g1 == mode.TiebreakAt && g2 == mode.TiebreakAt {
		return SetOutcome{EnterTiebreak: true}
	}
	return SetOutcome{}
}

// raceOutcome decides a race-to-target score requiring a two point margin.
// There is no cap: play continues until the margin is reached.
func raceOutcome(points [2]int, target int) GameOutcome {
	p1, p2 := points[0], points[1]
	if p1 >= target && p1-p2 >= 2 {
		return GameOutcome{Winner: Side1}
	}
	if p2 >= target && p2-p1 >= 2 {
		return GameOutcome{Winner: Side2}
	}
	return GameOutcome{}
}
