package match

import (
	"time"

	"github.com/courtside/courtside/internal/scoring"
)

// ProcessingStatus represents where a match is in its post-scoring lifecycle.
type ProcessingStatus string

const (
	// StatusLive means scoring is in progress.
	StatusLive ProcessingStatus = "LIVE"
	// StatusCompleted means the engine reported completion and downstream
	// processing has not started yet.
	StatusCompleted        ProcessingStatus = "COMPLETED"
	StatusResultNotified   ProcessingStatus = "RESULT_NOTIFIED"
	StatusStandingsUpdated ProcessingStatus = "STANDINGS_UPDATED"
	StatusAdvanced         ProcessingStatus = "ADVANCED"
	StatusDone             ProcessingStatus = "DONE"
)

// Match is a persisted match: the bracket coordinates, the lifecycle status
// and the full scoring engine state.
type Match struct {
	ID      string `json:"id"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`

	// TournamentID, Round and Slot place the match in a bracket. A
	// standalone friendly has no tournament and round/slot zero.
	TournamentID string `json:"tournament_id,omitempty"`
	Round        int    `json:"round,omitempty"`
	Slot         int    `json:"slot,omitempty"`

	ProcessingStatus ProcessingStatus `json:"processing_status"`

	Scoring scoring.Match `json:"scoring"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Version is the current scoring state version.
func (m *Match) Version() int64 {
	return m.Scoring.State.Version
}

// PlayerName resolves a side to the registered player name.
func (m *Match) PlayerName(side scoring.Side) string {
	switch side {
	case scoring.Side1:
		return m.Player1
	case scoring.Side2:
		return m.Player2
	}
	return ""
}

// CreateMatchParams carries everything needed to initialize a match.
type CreateMatchParams struct {
	ID           string       `json:"id,omitempty"`
	Player1      string       `json:"player1"`
	Player2      string       `json:"player2"`
	TournamentID string       `json:"tournament_id,omitempty"`
	Round        int          `json:"round,omitempty"`
	Slot         int          `json:"slot,omitempty"`
	Mode         scoring.Mode `json:"mode"`
	FirstServer  scoring.Side `json:"first_server"`
}

// LogEntryType distinguishes scored points from undos in the score log.
type LogEntryType string

const (
	LogEntryPoint LogEntryType = "POINT"
	LogEntryUndo  LogEntryType = "UNDO"
)

// LogEntry is one row of the append-only score log. Undo never deletes from
// it; reverting a point appends an UNDO entry instead.
type LogEntry struct {
	ID      int64        `json:"id"`
	MatchID string       `json:"match_id"`
	// Seq is the scoring state version after the mutation.
	Seq       int64        `json:"seq"`
	EntryType LogEntryType `json:"entry_type"`
	Winner    scoring.Side `json:"winner,omitempty"`
	Scoreline string       `json:"scoreline"`
	Tiebreak  bool         `json:"tiebreak"`
	CreatedAt time.Time    `json:"created_at"`
}

// PlayerStanding aggregates a player's results across completed matches.
type PlayerStanding struct {
	Player        string `json:"player"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	SetsWon       int    `json:"sets_won"`
	SetsLost      int    `json:"sets_lost"`
}

// Tournament is a single-elimination bracket.
type Tournament struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	// Size is the number of entrants the bracket was generated for.
	Size      int       `json:"size"`
	Complete  bool      `json:"complete"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
