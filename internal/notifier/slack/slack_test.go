package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/metrics"
	"github.com/courtside/courtside/internal/scoring"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func completedMatch(t *testing.T) *match.Match {
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
		ID:      "m1",
		Player1: "Ada",
		Player2: "Grace",
		Scoring: *engine,
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	m := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", m)

	err := n.SendResultNotification(completedMatch(t), true)
	require.NoError(t, err)
	assert.Equal(t, 0, m.NotifSent(), "dry run must not count as sent")
}

func TestSendResultNotification_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendResultNotification(completedMatch(t), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
	assert.Equal(t, 1, m.NotifSent())
	assert.Equal(t, 0, m.NotifFailed())
}

func TestSendResultNotification_Failure(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", errors.New("slack is down")
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendResultNotification(completedMatch(t), false)
	require.Error(t, err)
	assert.Equal(t, 1, m.NotifFailed())
}

func TestFormatResultNotification(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	msg := n.formatResultNotification(completedMatch(t))
	require.NotEmpty(t, msg.Blocks.BlockSet)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Ada def. Grace")
	assert.Contains(t, section.Text.Text, "6-0")
}

func TestFormatStandings(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	t.Run("empty table", func(t *testing.T) {
		msg := n.formatStandings(nil)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "No completed matches")
	})

	t.Run("ranked rows", func(t *testing.T) {
		msg := n.formatStandings([]match.PlayerStanding{
			{Player: "Ada", MatchesPlayed: 3, MatchesWon: 3, SetsWon: 6, SetsLost: 1},
			{Player: "Grace", MatchesPlayed: 3, MatchesWon: 1, SetsWon: 2, SetsLost: 4},
		})
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "1. Ada — 3 wins")
		assert.Contains(t, section.Text.Text, "2. Grace — 1 wins")
	})
}

func TestFormatMatchSummary_Live(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	engine, err := scoring.NewMatch(scoring.DefaultMode(), scoring.Side2)
	require.NoError(t, err)
	_, err = engine.ApplyPoint(scoring.Side1, engine.State.Version)
	require.NoError(t, err)

	m := &match.Match{ID: "m1", Player1: "Ada", Player2: "Grace", Scoring: *engine}
	msg := n.formatMatchSummary(m)
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Game: 15-0")
	assert.Contains(t, section.Text.Text, "Grace to serve")
}
