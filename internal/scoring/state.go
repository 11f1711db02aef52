package scoring

import "time"

// State is the full mutable scoring state of one match. It serializes to
// JSON (including the undo history) so it can live in a single persisted
// column and be read back by any process.
type State struct {
	// GamePoints holds raw point counts for the current game, or tiebreak
	// points while IsTiebreak is set. In the points-race variant these are
	// the running points of the current set.
	GamePoints [2]int `json:"game_points"`
	// SetGames holds games won in the in-progress set.
	SetGames [2]int `json:"set_games"`
	// CompletedSets holds the final score of each finished set in order.
	// Entries are game counts, or point counts for sets decided by a match
	// tiebreak and for the points-race variant. Append only.
	CompletedSets [][2]int `json:"completed_sets"`

	Serving          Side `json:"serving"`
	FirstServerOfSet Side `json:"first_server_of_set"`
	// MatchFirstServer is the side that served the opening game. Fixed at
	// initialization; the match-tiebreak server-reset rule anchors on it.
	MatchFirstServer Side `json:"match_first_server"`
	// TiebreakFirstServer is the side that served (or is due to serve) the
	// first tiebreak point; rotation after the tiebreak continues from the
	// other side.
	TiebreakFirstServer Side `json:"tiebreak_first_server,omitempty"`

	IsTiebreak   bool         `json:"is_tiebreak"`
	TiebreakKind TiebreakKind `json:"tiebreak_kind,omitempty"`

	Complete bool `json:"complete"`
	Winner   Side `json:"winner"`

	StartedAt *time.Time `json:"started_at,omitempty"`

	// Version increases by exactly one on every accepted mutation, undo
	// included. Used for optimistic concurrency.
	Version int64 `json:"version"`

	History History `json:"history"`
}

// Snapshot is a deep copy of the score-bearing fields of a State, taken
// before a point is applied so undo can restore it verbatim. Version,
// history and the start timestamp are deliberately excluded: undo advances
// the version and never rewrites the audit trail.
type Snapshot struct {
	GamePoints          [2]int       `json:"game_points"`
	SetGames            [2]int       `json:"set_games"`
	CompletedSets       [][2]int     `json:"completed_sets"`
	Serving             Side         `json:"serving"`
	FirstServerOfSet    Side         `json:"first_server_of_set"`
	TiebreakFirstServer Side         `json:"tiebreak_first_server,omitempty"`
	IsTiebreak          bool         `json:"is_tiebreak"`
	TiebreakKind        TiebreakKind `json:"tiebreak_kind,omitempty"`
	Complete            bool         `json:"complete"`
	Winner              Side         `json:"winner"`
}

// snapshot deep-copies the score fields.
func (st *State) snapshot() Snapshot {
	sets := make([][2]int, len(st.CompletedSets))
	copy(sets, st.CompletedSets)
	return Snapshot{
		GamePoints:          st.GamePoints,
		SetGames:            st.SetGames,
		CompletedSets:       sets,
		Serving:             st.Serving,
		FirstServerOfSet:    st.FirstServerOfSet,
		TiebreakFirstServer: st.TiebreakFirstServer,
		IsTiebreak:          st.IsTiebreak,
		TiebreakKind:        st.TiebreakKind,
		Complete:            st.Complete,
		Winner:              st.Winner,
	}
}

// restore overwrites the score fields from a snapshot.
func (st *State) restore(sn Snapshot) {
	st.GamePoints = sn.GamePoints
	st.SetGames = sn.SetGames
	st.CompletedSets = sn.CompletedSets
	st.Serving = sn.Serving
	st.FirstServerOfSet = sn.FirstServerOfSet
	st.TiebreakFirstServer = sn.TiebreakFirstServer
	st.IsTiebreak = sn.IsTiebreak
	st.TiebreakKind = sn.TiebreakKind
	st.Complete = sn.Complete
	st.Winner = sn.Winner
}

// SetsWon tallies completed sets per side. Every completed set has a strict
// winner, so the side with the higher entry took it.
func (st *State) SetsWon() [2]int {
	var won [2]int
	for _, s := range st.CompletedSets {
		if w := leader(s); w.Valid() {
			won[w.idx()]++
		}
	}
	return won
}
