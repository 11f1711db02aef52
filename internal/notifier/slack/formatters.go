package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/scoring"
)

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatResultNotification(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match finished! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	st := &m.Scoring.State
	winner := m.PlayerName(st.Winner)
	loser := m.PlayerName(st.Winner.Other())
	resultText := fmt.Sprintf("%s def. %s\n%s", winner, loser, m.Scoring.Scoreline())
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	var contextElements []slack.MixedElement
	for i, set := range st.CompletedSets {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text",
			fmt.Sprintf("Set %d: %d-%d", i+1, set[0], set[1]), true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchSummary creates a compact live-score message for a match in any state.
func (s *Notifier) formatMatchSummary(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	summary := m.Scoring.Summary()
	title := fmt.Sprintf("%s vs %s", m.Player1, m.Player2)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, false, false)))

	var body string
	if summary.Complete {
		body = fmt.Sprintf("Final: %s\nWinner: %s", summary.Scoreline, m.PlayerName(summary.Winner))
	} else {
		serving := m.PlayerName(summary.Serving)
		body = fmt.Sprintf("Score: %s\nGame: %s-%s\n%s to serve", summary.Scoreline, summary.Points[0], summary.Points[1], serving)
		if summary.IsTiebreak {
			kind := "Tiebreak"
			if summary.TiebreakKind == scoring.TiebreakMatch {
				kind = "Match tiebreak"
			}
			body += "\n" + kind + " in progress"
		}
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates the Slack message for the standings table using Block Kit.
func (s *Notifier) formatStandings(standings []match.PlayerStanding) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "No completed matches yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for i, st := range standings {
		lines = append(lines, fmt.Sprintf("%d. %s — %d wins (%d played, sets %d-%d)",
			i+1, st.Player, st.MatchesWon, st.MatchesPlayed, st.SetsWon, st.SetsLost))
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatTournamentWinner creates the Slack message announcing a completed bracket.
func (s *Notifier) formatTournamentWinner(t *match.Tournament) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Tournament complete! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	body := fmt.Sprintf("%s wins %s (%d entrants)", t.Winner, t.Name, t.Size)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
