package processor

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/metrics"
	"github.com/courtside/courtside/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, advancer Advancer) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		advancer: advancer,
	}
}

// ProcessMatches fetches matches that need processing and advances them through the state machine.
func (p *Processor) ProcessMatches(dryRun bool) {
	log.Info("Starting match processing...")
	matches, err := p.store.GetMatchesForProcessing()
	if err != nil {
		log.Error("Failed to get matches for processing", "error", err)
		return
	}

	if len(matches) == 0 {
		log.Info("No matches to process.")
		return
	}

	log.Info("Found matches to process", "count", len(matches))
	for _, m := range matches {
		p.processMatch(m, dryRun)
	}
	log.Info("Match processing finished.")
}

func (p *Processor) processMatch(m *match.Match, dryRun bool) {
	log.Info("Processing match", "matchID", m.ID, "initial_status", m.ProcessingStatus)
	for {
		currentState := m.ProcessingStatus
		log.Debug("Evaluating match state", "matchID", m.ID, "status", currentState)

		switch currentState {
		case match.StatusLive:
			// Scoring is still in progress; nothing to do yet.
			return

		case match.StatusCompleted:
			if !dryRun {
				p.pubsub.SendMessage(pubsub.EventMatchCompleted, m)
				// notify-result is the topic the push endpoint subscribes to,
				// so out-of-process notifier deployments get the result too.
				p.pubsub.SendMessage(pubsub.EventNotifyResult, m)
			}
			// A match that ended long ago is historic backfill; notify only
			// about recent results.
			if time.Since(m.UpdatedAt) < 24*time.Hour {
				if err := p.notifier.SendResultNotification(m, dryRun); err != nil {
					log.Error("Failed to send result notification", "error", err, "matchID", m.ID)
				}
			} else {
				log.Info("Match ended more than a day ago. Skipping result notification.", "matchID", m.ID)
			}
			p.updateStatus(m, match.StatusResultNotified, dryRun)

		case match.StatusResultNotified:
			log.Info("Match result has been notified. Updating standings.", "matchID", m.ID)
			if !dryRun {
				if err := p.store.UpdateStandings(m); err != nil {
					log.Error("Failed to update standings", "error", err, "matchID", m.ID)
					return
				}
				p.pubsub.SendMessage(pubsub.EventUpdateStandings, m)
			}
			p.updateStatus(m, match.StatusStandingsUpdated, dryRun)

		case match.StatusStandingsUpdated:
			if m.TournamentID != "" {
				if !dryRun {
					if err := p.advancer.Advance(m); err != nil {
						log.Error("Failed to advance bracket", "error", err, "matchID", m.ID)
						return
					}
					p.pubsub.SendMessage(pubsub.EventAdvanceBracket, m)
				}
				p.announceIfTournamentDone(m, dryRun)
			}
			p.updateStatus(m, match.StatusAdvanced, dryRun)

		case match.StatusAdvanced:
			p.updateStatus(m, match.StatusDone, dryRun)
			p.metrics.IncMatchesProcessed()

		case match.StatusDone:
			log.Debug("Match lifecycle is complete. No further processing needed.", "matchID", m.ID)
			return

		default:
			log.Warn("Unknown processing status", "status", currentState, "matchID", m.ID)
			return
		}

		// If the status hasn't changed, we're done with this match for now.
		if m.ProcessingStatus == currentState {
			log.Debug("Match state did not change. Finished processing for now.", "matchID", m.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing match", "matchID", m.ID, "final_status", m.ProcessingStatus)
}

// announceIfTournamentDone notifies when the match just decided a bracket.
func (p *Processor) announceIfTournamentDone(m *match.Match, dryRun bool) {
	tournament, err := p.store.GetTournament(m.TournamentID)
	if err != nil {
		log.Error("Failed to load tournament", "error", err, "tournamentID", m.TournamentID)
		return
	}
	if tournament == nil || !tournament.Complete {
		return
	}
	if err := p.notifier.SendTournamentWinner(tournament, dryRun); err != nil {
		log.Error("Failed to send tournament winner notification", "error", err, "tournamentID", tournament.ID)
	}
}

func (p *Processor) updateStatus(m *match.Match, status match.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update processing status", "matchID", m.ID, "status", status)
	} else if err := p.store.UpdateProcessingStatus(m.ID, status); err != nil {
		log.Error("Failed to update processing status", "error", err, "matchID", m.ID, "status", status)
		return
	}
	m.ProcessingStatus = status
}
