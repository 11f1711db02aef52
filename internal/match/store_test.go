package match_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/courtside/internal/database"
	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/scoring"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (match.MatchStore, *sql.DB, func()) {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := match.New(db)
	return store, db, func() { db.Close() }
}

func quickMode() scoring.Mode {
	mode := scoring.DefaultMode()
	mode.UseAdvantage = false
	mode.SetsToWin = 1
	return mode
}

func createTestMatch(t *testing.T, store match.MatchStore, id string) *match.Match {
	t.Helper()
	m, err := store.CreateMatch(match.CreateMatchParams{
		ID:          id,
		Player1:     "Ada",
		Player2:     "Grace",
		Mode:        quickMode(),
		FirstServer: scoring.Side1,
	})
	require.NoError(t, err)
	return m
}

// scoreTo hands the given side n straight points through the store.
func scoreTo(t *testing.T, store match.MatchStore, id string, winner scoring.Side, n int, m *match.Match) *match.Match {
	t.Helper()
	for i := 0; i < n; i++ {
		next, _, err := store.ApplyPoint(id, winner, m.Version())
		require.NoError(t, err)
		m = next
	}
	return m
}

func TestCreateMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	m := createTestMatch(t, store, "m1")
	assert.Equal(t, int64(1), m.Version())
	assert.Equal(t, match.StatusLive, m.ProcessingStatus)

	loaded, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.Player1)
	assert.Equal(t, "Grace", loaded.Player2)
	assert.Equal(t, scoring.Side1, loaded.Scoring.State.Serving)

	t.Run("second create for the same match is rejected", func(t *testing.T) {
		_, err := store.CreateMatch(match.CreateMatchParams{
			ID:          "m1",
			Player1:     "Ada",
			Player2:     "Grace",
			Mode:        quickMode(),
			FirstServer: scoring.Side2,
		})
		assert.ErrorIs(t, err, scoring.ErrAlreadyInitialized)

		loaded, err := store.GetMatch("m1")
		require.NoError(t, err)
		assert.Equal(t, scoring.Side1, loaded.Scoring.State.Serving, "existing state must be untouched")
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := store.GetMatch("nope")
		assert.ErrorIs(t, err, match.ErrMatchNotFound)
	})
}

func TestApplyPointPersists(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	m := createTestMatch(t, store, "m1")
	m, res, err := store.ApplyPoint("m1", scoring.Side1, m.Version())
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.Version())
	assert.False(t, res.JustCompleted)

	loaded, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Version())
	assert.Equal(t, [2]int{1, 0}, loaded.Scoring.State.GamePoints)

	entries, err := store.GetScoreLog("m1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, match.LogEntryPoint, entries[0].EntryType)
	assert.Equal(t, scoring.Side1, entries[0].Winner)
	assert.Equal(t, int64(2), entries[0].Seq)
}

func TestApplyPointVersionConflict(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	m := createTestMatch(t, store, "m1")
	stale := m.Version()

	_, _, err := store.ApplyPoint("m1", scoring.Side1, stale)
	require.NoError(t, err, "first caller should win")

	_, _, err = store.ApplyPoint("m1", scoring.Side2, stale)
	require.ErrorIs(t, err, scoring.ErrVersionConflict, "second caller holds a stale version")

	loaded, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, loaded.Scoring.State.GamePoints, "losing point must not be applied")

	entries, err := store.GetScoreLog("m1")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "rejected point must not be logged")
}

func TestUndoPoint(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	m := createTestMatch(t, store, "m1")
	m = scoreTo(t, store, "m1", scoring.Side1, 2, m)

	m, err := store.UndoPoint("m1", m.Version())
	require.NoError(t, err)
	assert.Equal(t, int64(4), m.Version(), "undo advances the version like any mutation")
	assert.Equal(t, [2]int{1, 0}, m.Scoring.State.GamePoints)

	entries, err := store.GetScoreLog("m1")
	require.NoError(t, err)
	require.Len(t, entries, 3, "undo appends, it never deletes")
	assert.Equal(t, match.LogEntryUndo, entries[2].EntryType)

	t.Run("nothing to undo on a fresh match", func(t *testing.T) {
		fresh := createTestMatch(t, store, "m2")
		_, err := store.UndoPoint("m2", fresh.Version())
		assert.ErrorIs(t, err, scoring.ErrNothingToUndo)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		_, err := store.UndoPoint("m1", 1)
		assert.ErrorIs(t, err, scoring.ErrVersionConflict)
	})
}

func TestCompletionLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	m := createTestMatch(t, store, "m1")
	m = scoreTo(t, store, "m1", scoring.Side1, 23, m)

	m, res, err := store.ApplyPoint("m1", scoring.Side1, m.Version())
	require.NoError(t, err)
	require.True(t, res.JustCompleted)
	assert.Equal(t, match.StatusCompleted, m.ProcessingStatus)

	_, _, err = store.ApplyPoint("m1", scoring.Side2, m.Version())
	assert.ErrorIs(t, err, scoring.ErrMatchComplete)

	t.Run("undoing the final point reopens the match", func(t *testing.T) {
		m, err := store.UndoPoint("m1", m.Version())
		require.NoError(t, err)
		assert.Equal(t, match.StatusLive, m.ProcessingStatus)
		assert.False(t, m.Scoring.State.Complete)

		_, _, err = store.ApplyPoint("m1", scoring.Side2, m.Version())
		assert.NoError(t, err, "play resumes against the reopened match")
	})
}

func TestGetMatchesForProcessing(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	createTestMatch(t, store, "live")
	done := createTestMatch(t, store, "done")
	scoreTo(t, store, "done", scoring.Side1, 24, done)
	require.NoError(t, store.UpdateProcessingStatus("done", match.StatusDone))

	completed := createTestMatch(t, store, "completed")
	scoreTo(t, store, "completed", scoring.Side2, 24, completed)

	pending, err := store.GetMatchesForProcessing()
	require.NoError(t, err)
	require.Len(t, pending, 1, "only matches mid-lifecycle need processing")
	assert.Equal(t, "completed", pending[0].ID)
	assert.Equal(t, match.StatusCompleted, pending[0].ProcessingStatus)
}

func TestUpdateStandings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	m := createTestMatch(t, store, "m1")
	m = scoreTo(t, store, "m1", scoring.Side1, 24, m)
	require.NoError(t, store.UpdateStandings(m))

	m2, err := store.CreateMatch(match.CreateMatchParams{
		ID: "m2", Player1: "Grace", Player2: "Ada",
		Mode: quickMode(), FirstServer: scoring.Side1,
	})
	require.NoError(t, err)
	m2 = scoreTo(t, store, "m2", scoring.Side2, 24, m2)
	require.NoError(t, store.UpdateStandings(m2))

	standings, err := store.GetStandings()
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, "Ada", standings[0].Player, "Ada won both matches")
	assert.Equal(t, 2, standings[0].MatchesPlayed)
	assert.Equal(t, 2, standings[0].MatchesWon)
	assert.Equal(t, 2, standings[0].SetsWon)
	assert.Equal(t, 0, standings[0].SetsLost)

	assert.Equal(t, "Grace", standings[1].Player)
	assert.Equal(t, 0, standings[1].MatchesWon)
	assert.Equal(t, 2, standings[1].SetsLost)

	t.Run("incomplete match is rejected", func(t *testing.T) {
		live := createTestMatch(t, store, "m3")
		assert.Error(t, store.UpdateStandings(live))
	})
}

func TestTournaments(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tour := &match.Tournament{ID: "t1", Name: "Club Open", Size: 4}
	require.NoError(t, store.CreateTournament(tour))

	for _, mc := range []struct {
		id    string
		round int
		slot  int
	}{
		{"f1", 2, 1},
		{"sf2", 1, 2},
		{"sf1", 1, 1},
	} {
		_, err := store.CreateMatch(match.CreateMatchParams{
			ID: mc.id, Player1: "A", Player2: "B",
			TournamentID: "t1", Round: mc.round, Slot: mc.slot,
			Mode: quickMode(), FirstServer: scoring.Side1,
		})
		require.NoError(t, err)
	}

	matches, err := store.GetTournamentMatches("t1")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "sf1", matches[0].ID, "ordered by round then slot")
	assert.Equal(t, "sf2", matches[1].ID)
	assert.Equal(t, "f1", matches[2].ID)

	require.NoError(t, store.SetTournamentWinner("t1", "Ada"))
	loaded, err := store.GetTournament("t1")
	require.NoError(t, err)
	assert.True(t, loaded.Complete)
	assert.Equal(t, "Ada", loaded.Winner)
}

func TestClearMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	m := createTestMatch(t, store, "m1")
	scoreTo(t, store, "m1", scoring.Side1, 3, m)
	createTestMatch(t, store, "m2")

	store.ClearMatch("m1")

	_, err := store.GetMatch("m1")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
	entries, err := store.GetScoreLog("m1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = store.GetMatch("m2")
	assert.NoError(t, err, "other matches survive")
}
