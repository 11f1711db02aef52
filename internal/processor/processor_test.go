package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/metrics"
	"github.com/courtside/courtside/internal/notifier"
	"github.com/courtside/courtside/internal/pubsub"
	"github.com/courtside/courtside/internal/scoring"
)

// mockAdvancer is a spy implementation of the Advancer interface.
type mockAdvancer struct {
	advanceFunc  func(m *match.Match) error
	advanceCalls []*match.Match
}

func (a *mockAdvancer) Advance(m *match.Match) error {
	a.advanceCalls = append(a.advanceCalls, m)
	if a.advanceFunc != nil {
		return a.advanceFunc(m)
	}
	return nil
}

func completedMatch(t *testing.T, id string) *match.Match {
	t.Helper()
	mode := scoring.DefaultMode()
	mode.UseAdvantage = false
	mode.SetsToWin = 1
	engine, err := scoring.NewMatch(mode, scoring.Side1)
	require.NoError(t, err)
	for !engine.State.Complete {
		_, err := engine.ApplyPoint(scoring.Side1, engine.State.Version)
		require.NoError(t, err)
	}
	return &match.Match{
		ID:               id,
		Player1:          "Ada",
		Player2:          "Grace",
		ProcessingStatus: match.StatusCompleted,
		Scoring:          *engine,
		UpdatedAt:        time.Now().UTC(),
	}
}

func statuses(store *match.MockStore) []match.ProcessingStatus {
	out := make([]match.ProcessingStatus, 0, len(store.UpdateProcessingStatusCalls))
	for _, call := range store.UpdateProcessingStatusCalls {
		out = append(out, call.Status)
	}
	return out
}

func TestProcessor_ProcessMatches(t *testing.T) {
	t.Run("completed match runs through the whole lifecycle", func(t *testing.T) {
		store := match.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		adv := &mockAdvancer{}
		p := New(store, notif, metr, ps, adv)

		m := completedMatch(t, "m1")
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p.ProcessMatches(false)

		assert.Equal(t, []match.ProcessingStatus{
			match.StatusResultNotified,
			match.StatusStandingsUpdated,
			match.StatusAdvanced,
			match.StatusDone,
		}, statuses(store))

		require.Len(t, notif.SendResultNotificationCalls, 1, "a result notification should be sent")
		assert.Equal(t, "m1", notif.SendResultNotificationCalls[0].ID)
		require.Len(t, store.UpdateStandingsCalls, 1)
		assert.Empty(t, adv.advanceCalls, "a standalone match has no bracket to advance")
		assert.Equal(t, 1, metr.MatchesProcessed())

		require.GreaterOrEqual(t, len(ps.SendMessageCalls), 3)
		assert.Equal(t, string(pubsub.EventMatchCompleted), ps.SendMessageCalls[0].Topic)
		assert.Equal(t, string(pubsub.EventNotifyResult), ps.SendMessageCalls[1].Topic)
		assert.Equal(t, string(pubsub.EventUpdateStandings), ps.SendMessageCalls[2].Topic)
	})

	t.Run("historic result skips the notification", func(t *testing.T) {
		store := match.NewMock()
		notif := notifier.NewMock()
		p := New(store, notif, metrics.NewMock(), pubsub.NewMock("TEST"), &mockAdvancer{})

		m := completedMatch(t, "m1")
		m.UpdatedAt = time.Now().UTC().Add(-48 * time.Hour)
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p.ProcessMatches(false)

		assert.Empty(t, notif.SendResultNotificationCalls, "stale results are backfill, not news")
		assert.Equal(t, match.StatusDone, m.ProcessingStatus, "the lifecycle still completes")
	})

	t.Run("tournament match advances the bracket and announces the champion", func(t *testing.T) {
		store := match.NewMock()
		notif := notifier.NewMock()
		adv := &mockAdvancer{}
		p := New(store, notif, metrics.NewMock(), pubsub.NewMock("TEST"), adv)

		m := completedMatch(t, "t1-R2M1")
		m.TournamentID = "t1"
		m.Round = 2
		m.Slot = 1
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}
		store.GetTournamentFunc = func(id string) (*match.Tournament, error) {
			return &match.Tournament{ID: id, Name: "Club Open", Size: 4, Complete: true, Winner: "Ada"}, nil
		}

		p.ProcessMatches(false)

		require.Len(t, adv.advanceCalls, 1)
		assert.Equal(t, "t1-R2M1", adv.advanceCalls[0].ID)
		require.Len(t, notif.SendTournamentWinnerCalls, 1)
		assert.Equal(t, "Ada", notif.SendTournamentWinnerCalls[0].Winner)
	})

	t.Run("advance failure halts the lifecycle for a retry", func(t *testing.T) {
		store := match.NewMock()
		adv := &mockAdvancer{advanceFunc: func(m *match.Match) error {
			return assert.AnError
		}}
		p := New(store, notifier.NewMock(), metrics.NewMock(), pubsub.NewMock("TEST"), adv)

		m := completedMatch(t, "m1")
		m.TournamentID = "t1"
		m.ProcessingStatus = match.StatusStandingsUpdated
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p.ProcessMatches(false)

		assert.Equal(t, match.StatusStandingsUpdated, m.ProcessingStatus, "the match stays put until advancing succeeds")
		assert.Empty(t, statuses(store))
	})

	t.Run("dry run never writes", func(t *testing.T) {
		store := match.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(store, notifier.NewMock(), metrics.NewMock(), ps, &mockAdvancer{})

		m := completedMatch(t, "m1")
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p.ProcessMatches(true)

		assert.Empty(t, statuses(store), "dry run must not persist status changes")
		assert.Empty(t, store.UpdateStandingsCalls)
		assert.Empty(t, ps.SendMessageCalls)
	})

	t.Run("live matches are left alone", func(t *testing.T) {
		store := match.NewMock()
		notif := notifier.NewMock()
		p := New(store, notif, metrics.NewMock(), pubsub.NewMock("TEST"), &mockAdvancer{})

		m := completedMatch(t, "m1")
		m.ProcessingStatus = match.StatusLive
		store.GetMatchesForProcessingFunc = func() ([]*match.Match, error) {
			return []*match.Match{m}, nil
		}

		p.ProcessMatches(false)

		assert.Empty(t, statuses(store))
		assert.Empty(t, notif.SendResultNotificationCalls)
	})
}
