package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

var gameLabels = [4]string{"0", "15", "30", "40"}

// PointLabels renders the current game score the way a scoreboard shows it:
// 0/15/30/40 with AD for advantage, or plain integers during a tiebreak and
// in the points-race variant.
func (m *Match) PointLabels() [2]string {
	st := &m.State
	if m.Mode.Variant == VariantPointsRace || st.IsTiebreak {
		return [2]string{strconv.Itoa(st.GamePoints[0]), strconv.Itoa(st.GamePoints[1])}
	}
	out := EvaluateGame(st.GamePoints, m.Mode, TiebreakNone)
	switch {
	case out.Advantage == Side1:
		return [2]string{"AD", "40"}
	case out.Advantage == Side2:
		return [2]string{"40", "AD"}
	case out.Deuce:
		return [2]string{"40", "40"}
	}
	return [2]string{pointLabel(st.GamePoints[0]), pointLabel(st.GamePoints[1])}
}

func pointLabel(points int) string {
	if points > 3 {
		points = 3
	}
	return gameLabels[points]
}

// NormalizePointLabel maps the point spellings seen in external scoreboard
// feeds onto the canonical 0/15/30/40/AD form. Unknown values pass through.
// The engine itself only ever emits canonical labels; this is exported for
// consumers ingesting third-party feeds alongside our summaries.
func NormalizePointLabel(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "love":
		return "0"
	case "15":
		return "15"
	case "30":
		return "30"
	case "40":
		return "40"
	case "a", "ad", "advantage":
		return "AD"
	}
	return s
}

// Scoreline renders completed sets followed by the in-progress set,
// e.g. "6-4 3-6 2-1".
func (m *Match) Scoreline() string {
	st := &m.State
	parts := make([]string, 0, len(st.CompletedSets)+1)
	for _, s := range st.CompletedSets {
		parts = append(parts, fmt.Sprintf("%d-%d", s[0], s[1]))
	}
	if !st.Complete {
		if m.Mode.Variant == VariantPointsRace || (st.IsTiebreak && st.TiebreakKind == TiebreakMatch) {
			parts = append(parts, fmt.Sprintf("%d-%d", st.GamePoints[0], st.GamePoints[1]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", st.SetGames[0], st.SetGames[1]))
		}
	}
	return strings.Join(parts, " ")
}

// Summary is the serializable display view derived from the state: what a
// scoreboard needs and nothing more. Readers recompute it from the persisted
// record; there is no separate read model.
type Summary struct {
	Points        [2]string    `json:"points"`
	Games         [2]int       `json:"games"`
	Sets          [2]int       `json:"sets"`
	CompletedSets [][2]int     `json:"completed_sets"`
	Serving       Side         `json:"serving"`
	IsTiebreak    bool         `json:"is_tiebreak"`
	TiebreakKind  TiebreakKind `json:"tiebreak_kind,omitempty"`
	Complete      bool         `json:"complete"`
	Winner        Side         `json:"winner"`
	Scoreline     string       `json:"scoreline"`
	Version       int64        `json:"version"`
}

// Summary derives the display view of the current state.
func (m *Match) Summary() Summary {
	st := &m.State
	sets := make([][2]int, len(st.CompletedSets))
	copy(sets, st.CompletedSets)
	return Summary{
		Points:        m.PointLabels(),
		Games:         st.SetGames,
		Sets:          st.SetsWon(),
		CompletedSets: sets,
		Serving:       st.Serving,
		IsTiebreak:    st.IsTiebreak,
		TiebreakKind:  st.TiebreakKind,
		Complete:      st.Complete,
		Winner:        st.Winner,
		Scoreline:     m.Scoreline(),
		Version:       st.Version,
	}
}
