package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointLabels(t *testing.T) {
	t.Run("standard game ladder", func(t *testing.T) {
		m := newTestMatch(t, DefaultMode(), Side1)
		assert.Equal(t, [2]string{"0", "0"}, m.PointLabels())

		scorePoints(t, m, Side1, 1)
		assert.Equal(t, [2]string{"15", "0"}, m.PointLabels())
		scorePoints(t, m, Side1, 1)
		assert.Equal(t, [2]string{"30", "0"}, m.PointLabels())
		scorePoints(t, m, Side2, 3)
		assert.Equal(t, [2]string{"30", "40"}, m.PointLabels())
	})

	t.Run("tiebreak shows raw integers", func(t *testing.T) {
		m := newTestMatch(t, noAdMode(), Side1)
		for i := 0; i < 6; i++ {
			winGames(t, m, Side1, 1)
			winGames(t, m, Side2, 1)
		}
		require.True(t, m.State.IsTiebreak)
		scorePoints(t, m, Side1, 5)
		scorePoints(t, m, Side2, 3)
		assert.Equal(t, [2]string{"5", "3"}, m.PointLabels())
	})

	t.Run("points race shows raw integers", func(t *testing.T) {
		m := newTestMatch(t, DefaultRaceMode(), Side1)
		scorePoints(t, m, Side1, 12)
		scorePoints(t, m, Side2, 9)
		assert.Equal(t, [2]string{"12", "9"}, m.PointLabels())
	})
}

func TestNormalizePointLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"love", "0"},
		{"Love", "0"},
		{"0", "0"},
		{"15", "15"},
		{"30", "30"},
		{"40", "40"},
		{"a", "AD"},
		{"AD", "AD"},
		{"Advantage", "AD"},
		{" 40 ", "40"},
		{"n/a", "n/a"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizePointLabel(tc.in), "input %q", tc.in)
	}
}

func TestScoreline(t *testing.T) {
	t.Run("completed sets then current games", func(t *testing.T) {
		m := newTestMatch(t, noAdMode(), Side1)
		winGames(t, m, Side1, 6)
		winGames(t, m, Side2, 2)
		winGames(t, m, Side1, 3)
		assert.Equal(t, "6-0 3-2", m.Scoreline())
	})

	t.Run("completed match has no trailing set", func(t *testing.T) {
		mode := noAdMode()
		mode.SetsToWin = 1
		m := newTestMatch(t, mode, Side1)
		winGames(t, m, Side2, 6)
		assert.Equal(t, "0-6", m.Scoreline())
	})

	t.Run("match tiebreak shows its points", func(t *testing.T) {
		mode := noAdMode()
		mode.FinalSetMatchTiebreak = true
		mode.MatchTiebreakFromStart = true
		m := newTestMatch(t, mode, Side1)
		winGames(t, m, Side1, 6)
		winGames(t, m, Side2, 6)
		scorePoints(t, m, Side1, 4)
		scorePoints(t, m, Side2, 2)
		assert.Equal(t, "6-0 0-6 4-2", m.Scoreline())
	})
}

func TestSummary(t *testing.T) {
	m := newTestMatch(t, noAdMode(), Side1)
	winGames(t, m, Side1, 6)
	winGames(t, m, Side1, 2)
	scorePoints(t, m, Side2, 2)

	s := m.Summary()
	assert.Equal(t, [2]string{"0", "30"}, s.Points)
	assert.Equal(t, [2]int{2, 0}, s.Games)
	assert.Equal(t, [2]int{1, 0}, s.Sets)
	assert.Equal(t, [][2]int{{6, 0}}, s.CompletedSets)
	assert.False(t, s.Complete)
	assert.Equal(t, "6-0 2-0", s.Scoreline)
	assert.Equal(t, m.State.Version, s.Version)
}
