package scoring

import (
	"fmt"
	"time"
)

// Match is the scoring engine for one match: the rule mode plus the mutable
// state it drives. It does no I/O and never blocks; the caller is
// responsible for making read-apply-write atomic against shared storage.
type Match struct {
	Mode  Mode  `json:"mode"`
	State State `json:"state"`
}

// PointRecord is the audit entry emitted for every accepted point,
// independent of the undo history. One row per point, running score,
// timestamp.
type PointRecord struct {
	// Seq is the state version after the point was applied.
	Seq        int64     `json:"seq"`
	Winner     Side      `json:"winner"`
	GamePoints [2]int    `json:"game_points"`
	SetGames   [2]int    `json:"set_games"`
	SetsWon    [2]int    `json:"sets_won"`
	Tiebreak   bool      `json:"tiebreak"`
	Scoreline  string    `json:"scoreline"`
	Timestamp  time.Time `json:"ts"`
}

// PointResult reports what a single applied point changed.
type PointResult struct {
	Winner Side
	// GameWon is the side that won a game on this point, if any.
	GameWon Side
	// SetWon is the side that won a set on this point, if any.
	SetWon Side
	// JustCompleted reports that this point decided the match. This is the
	// completion signal the lifecycle bridge consumes.
	JustCompleted bool
	Record        PointRecord
}

// NewMatch initializes scoring state: first server chosen, all counters
// zeroed, version 1, empty history. Initialization happens exactly once per
// match; the store rejects a second attempt with ErrAlreadyInitialized.
func NewMatch(mode Mode, firstServer Side) (*Match, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if !firstServer.Valid() {
		return nil, fmt.Errorf("%w: first server must be 1 or 2", ErrInvalidSide)
	}
	now := time.Now().UTC()
	m := &Match{
		Mode: mode,
		State: State{
			CompletedSets:    [][2]int{},
			Serving:          firstServer,
			FirstServerOfSet: firstServer,
			MatchFirstServer: firstServer,
			StartedAt:        &now,
			Version:          1,
		},
	}
	// A one-set match configured as match-tiebreak-only starts in it.
	m.maybeStartDecidingTiebreak()
	return m, nil
}

// ApplyPoint scores one point for the given side. The whole transition
// either applies and bumps the version by one, or is rejected before any
// mutation: there are no partial states.
func (m *Match) ApplyPoint(winner Side, expectedVersion int64) (PointResult, error) {
	st := &m.State
	if !winner.Valid() {
		return PointResult{}, fmt.Errorf("%w: %d", ErrInvalidSide, winner)
	}
	if st.Complete {
		return PointResult{}, ErrMatchComplete
	}
	if expectedVersion != st.Version {
		return PointResult{}, fmt.Errorf("%w: expected %d, have %d", ErrVersionConflict, expectedVersion, st.Version)
	}

	st.History.Push(st.snapshot())

	res := PointResult{Winner: winner}
	switch m.Mode.Variant {
	case VariantPointsRace:
		res.SetWon = m.applyRacePoint(winner)
	default:
		res.GameWon, res.SetWon = m.applyTennisPoint(winner)
	}
	res.JustCompleted = st.Complete
	st.Version++
	m.check()

	res.Record = PointRecord{
		Seq:        st.Version,
		Winner:     winner,
		GamePoints: st.GamePoints,
		SetGames:   st.SetGames,
		SetsWon:    st.SetsWon(),
		Tiebreak:   st.IsTiebreak,
		Scoreline:  m.Scoreline(),
		Timestamp:  time.Now().UTC(),
	}
	return res, nil
}

// Undo restores the state snapshot taken before the most recent point,
// completion included: reverting a mistaken match-ending point is a
// first-class operation. Each call walks one point further back; the undo
// itself still advances the version by one.
func (m *Match) Undo(expectedVersion int64) error {
	st := &m.State
	if expectedVersion != st.Version {
		return fmt.Errorf("%w: expected %d, have %d", ErrVersionConflict, expectedVersion, st.Version)
	}
	sn, ok := st.History.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	st.restore(sn)
	st.Version++
	return nil
}

func (m *Match) applyTennisPoint(winner Side) (gameWon, setWon Side) {
	st := &m.State
	st.GamePoints[winner.idx()]++

	kind := TiebreakNone
	if st.IsTiebreak {
		kind = st.TiebreakKind
	}
	out := EvaluateGame(st.GamePoints, m.Mode, kind)
	if out.Winner == SideNone {
		if st.IsTiebreak {
			st.Serving = tiebreakServer(st.TiebreakFirstServer, st.GamePoints[0]+st.GamePoints[1])
		}
		return SideNone, SideNone
	}

	gameWon = out.Winner
	wasTiebreak := st.IsTiebreak
	tbKind := st.TiebreakKind
	tbPoints := st.GamePoints
	st.GamePoints = [2]int{}
	st.IsTiebreak = false
	st.TiebreakKind = TiebreakNone

	if wasTiebreak && tbKind == TiebreakMatch {
		// The match tiebreak stands in for the entire deciding set; its
		// point score is recorded as the set entry.
		st.CompletedSets = append(st.CompletedSets, tbPoints)
		st.SetGames = [2]int{}
		m.finishSet(gameWon, true)
		return gameWon, gameWon
	}

	st.SetGames[gameWon.idx()]++
	setOut := EvaluateSet(st.SetGames, m.Mode)
	switch {
	case setOut.Winner != SideNone:
		st.CompletedSets = append(st.CompletedSets, st.SetGames)
		st.SetGames = [2]int{}
		m.finishSet(setOut.Winner, wasTiebreak)
		return gameWon, setOut.Winner
	case setOut.EnterTiebreak:
		m.startTiebreak()
		return gameWon, SideNone
	}

	// Standard rotation: the server alternates each game.
	st.Serving = st.Serving.Other()
	return gameWon, SideNone
}

func (m *Match) applyRacePoint(winner Side) Side {
	st := &m.State
	st.GamePoints[winner.idx()]++
	// Rally scoring: the point winner serves next.
	st.Serving = winner

	out := raceOutcome(st.GamePoints, m.Mode.raceTarget(TiebreakNone, m.isDecidingSet()))
	if out.Winner == SideNone {
		return SideNone
	}
	st.CompletedSets = append(st.CompletedSets, st.GamePoints)
	st.GamePoints = [2]int{}
	m.finishSet(out.Winner, false)
	return out.Winner
}

// startTiebreak flips the next game into a tiebreak. The side due to serve
// the next game opens it, unless the mode resets the match-tiebreak server.
func (m *Match) startTiebreak() {
	st := &m.State
	kind := TiebreakSet
	if m.Mode.FinalSetMatchTiebreak && m.isDecidingSet() {
		kind = TiebreakMatch
	}
	next := st.Serving.Other()
	if kind == TiebreakMatch && m.Mode.MatchTiebreakServerReset {
		next = st.MatchFirstServer
	}
	st.IsTiebreak = true
	st.TiebreakKind = kind
	st.Serving = next
	st.TiebreakFirstServer = next
}

// finishSet runs after a set entry has been appended: decide the match or
// open the next set with the server rotated.
func (m *Match) finishSet(winner Side, viaTiebreak bool) {
	st := &m.State
	tbFirst := st.TiebreakFirstServer
	st.TiebreakFirstServer = SideNone

	if st.SetsWon()[winner.idx()] >= m.Mode.SetsToWin {
		st.Complete = true
		st.Winner = winner
		return
	}

	// The side that did not open the previous set opens the next one. After
	// a tiebreak, rotation continues from whoever was due when the tiebreak
	// began, regardless of its internal alternation.
	next := st.FirstServerOfSet.Other()
	if viaTiebreak && tbFirst.Valid() {
		next = tbFirst.Other()
	}
	st.FirstServerOfSet = next
	st.Serving = next
	m.maybeStartDecidingTiebreak()
}

// maybeStartDecidingTiebreak opens the deciding set directly as a match
// tiebreak when the mode plays it that way.
func (m *Match) maybeStartDecidingTiebreak() {
	st := &m.State
	if m.Mode.Variant != VariantTennis || !m.Mode.FinalSetMatchTiebreak || !m.Mode.MatchTiebreakFromStart {
		return
	}
	if !m.isDecidingSet() {
		return
	}
	st.IsTiebreak = true
	st.TiebreakKind = TiebreakMatch
	if m.Mode.MatchTiebreakServerReset {
		st.Serving = st.MatchFirstServer
	}
	st.TiebreakFirstServer = st.Serving
}

// isDecidingSet reports whether the in-progress set is the last possible one.
func (m *Match) isDecidingSet() bool {
	won := m.State.SetsWon()
	return won[0] == m.Mode.SetsToWin-1 && won[1] == m.Mode.SetsToWin-1
}

// tiebreakServer returns the server of the upcoming tiebreak point: the
// opener serves one point, then sides alternate in blocks of two.
func tiebreakServer(first Side, pointsPlayed int) Side {
	if ((pointsPlayed+1)/2)%2 == 0 {
		return first
	}
	return first.Other()
}

// check asserts reachability invariants after a mutation. A violation is a
// defect in the arithmetic, not a caller error, so it fails loudly.
func (m *Match) check() {
	st := &m.State
	if st.GamePoints[0] < 0 || st.GamePoints[1] < 0 {
		panic(fmt.Sprintf("scoring: negative point count %v", st.GamePoints))
	}
	if st.Complete {
		if !st.Winner.Valid() {
			panic("scoring: complete match without a winner")
		}
		if st.SetsWon()[st.Winner.idx()] < m.Mode.SetsToWin {
			panic(fmt.Sprintf("scoring: winner %d has not reached %d sets", st.Winner, m.Mode.SetsToWin))
		}
	}
	if m.Mode.Variant == VariantTennis && !st.IsTiebreak && m.Mode.UseAdvantage {
		p1, p2 := st.GamePoints[0], st.GamePoints[1]
		if p1 >= 3 && p2 >= 3 {
			if d := p1 - p2; d > 1 || d < -1 {
				panic(fmt.Sprintf("scoring: unreachable advantage-game score %v", st.GamePoints))
			}
		}
	}
}
