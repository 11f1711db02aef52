package http

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"io"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/scoring"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			log.Info("Successfully cleared match from store", "matchID", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params match.CreateMatchParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			log.Error("Failed to decode create match request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if params.Mode.Variant == "" {
			params.Mode = s.Cfg.DefaultMode
		}
		if params.FirstServer == scoring.SideNone {
			params.FirstServer = scoring.Side1
		}

		m, err := s.Store.CreateMatch(params)
		if err != nil {
			if errors.Is(err, scoring.ErrAlreadyInitialized) {
				log.Warn("Rejected duplicate match creation", "matchID", params.ID)
				http.Error(w, "Match already exists", http.StatusConflict)
				return
			}
			log.Error("Failed to create match", "error", err)
			http.Error(w, "Failed to create match", http.StatusBadRequest)
			return
		}
		log.Info("Created match", "matchID", m.ID, "player1", m.Player1, "player2", m.Player2)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(m); err != nil {
			log.Error("Failed to encode match to JSON", "error", err)
		}
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(matches); err != nil {
			log.Error("Failed to encode matches to JSON", "error", err)
		}
	}
}

// matchResponse pairs the persisted match with the scoreboard view derived
// from its state.
type matchResponse struct {
	Match   *match.Match    `json:"match"`
	Summary scoring.Summary `json:"summary"`
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		m, err := s.Store.GetMatch(matchID)
		if err != nil {
			if errors.Is(err, match.ErrMatchNotFound) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			log.Error("Failed to get match from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(matchResponse{Match: m, Summary: m.Scoring.Summary()}); err != nil {
			log.Error("Failed to encode match to JSON", "error", err)
		}
	}
}

// pointResponse reports the scoreboard after a mutation plus what the point
// changed.
type pointResponse struct {
	Summary scoring.Summary     `json:"summary"`
	Result  scoring.PointResult `json:"result"`
}

func (s *Server) ScorePointHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		winnerParam, err := strconv.Atoi(r.URL.Query().Get("winner"))
		if err != nil {
			http.Error(w, "winner must be 1 or 2", http.StatusBadRequest)
			return
		}
		winner := scoring.Side(winnerParam)
		if !winner.Valid() {
			http.Error(w, "winner must be 1 or 2", http.StatusBadRequest)
			return
		}
		expectedVersion, err := strconv.ParseInt(r.URL.Query().Get("expected_version"), 10, 64)
		if err != nil {
			http.Error(w, "expected_version is required", http.StatusBadRequest)
			return
		}

		start := time.Now()
		m, result, err := s.Store.ApplyPoint(matchID, winner, expectedVersion)
		if err != nil {
			s.writeScoringError(w, matchID, err)
			return
		}
		s.Metrics.IncPointsScored()
		s.Metrics.ObserveApplyDuration(time.Since(start).Seconds())
		if result.JustCompleted {
			s.Metrics.IncMatchesCompleted()
			log.Info("Match completed", "matchID", matchID, "scoreline", m.Scoring.Scoreline())
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(pointResponse{Summary: m.Scoring.Summary(), Result: result}); err != nil {
			log.Error("Failed to encode point response to JSON", "error", err)
		}
	}
}

func (s *Server) UndoPointHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		expectedVersion, err := strconv.ParseInt(r.URL.Query().Get("expected_version"), 10, 64)
		if err != nil {
			http.Error(w, "expected_version is required", http.StatusBadRequest)
			return
		}

		m, err := s.Store.UndoPoint(matchID, expectedVersion)
		if err != nil {
			s.writeScoringError(w, matchID, err)
			return
		}
		s.Metrics.IncUndos()
		log.Info("Reverted last point", "matchID", matchID, "version", m.Version())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(matchResponse{Match: m, Summary: m.Scoring.Summary()}); err != nil {
			log.Error("Failed to encode match to JSON", "error", err)
		}
	}
}

// writeScoringError maps the recoverable scoring errors onto HTTP statuses.
// Version conflicts and completed or empty matches are the caller's problem,
// not the server's.
func (s *Server) writeScoringError(w http.ResponseWriter, matchID string, err error) {
	switch {
	case errors.Is(err, scoring.ErrVersionConflict):
		s.Metrics.IncVersionConflicts()
		log.Warn("Rejected stale mutation", "matchID", matchID, "error", err)
		http.Error(w, "Version conflict", http.StatusConflict)
	case errors.Is(err, scoring.ErrMatchComplete):
		log.Warn("Rejected mutation on completed match", "matchID", matchID)
		http.Error(w, "Match is already complete", http.StatusConflict)
	case errors.Is(err, scoring.ErrNothingToUndo):
		log.Warn("Rejected undo with no history", "matchID", matchID)
		http.Error(w, "Nothing to undo", http.StatusConflict)
	case errors.Is(err, match.ErrMatchNotFound):
		http.Error(w, "Match not found", http.StatusNotFound)
	case errors.Is(err, scoring.ErrInvalidSide):
		http.Error(w, "winner must be 1 or 2", http.StatusBadRequest)
	default:
		log.Error("Failed to apply mutation", "matchID", matchID, "error", err)
		http.Error(w, "Failed to apply mutation", http.StatusInternalServerError)
	}
}

func (s *Server) ScoreLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		entries, err := s.Store.GetScoreLog(matchID)
		if err != nil {
			http.Error(w, "Failed to get score log", http.StatusInternalServerError)
			log.Error("Failed to get score log from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Error("Failed to encode score log to JSON", "error", err)
		}
	}
}

func (s *Server) ExportScoreLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}
		entries, err := s.Store.GetScoreLog(matchID)
		if err != nil {
			http.Error(w, "Failed to get score log", http.StatusInternalServerError)
			log.Error("Failed to get score log from store", "error", err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", matchID+".csv"))

		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"seq", "entry_type", "winner", "scoreline", "tiebreak", "created_at"}); err != nil {
			log.Error("Failed to write CSV header", "error", err)
			return
		}
		for _, entry := range entries {
			record := []string{
				strconv.FormatInt(entry.Seq, 10),
				string(entry.EntryType),
				strconv.Itoa(int(entry.Winner)),
				entry.Scoreline,
				strconv.FormatBool(entry.Tiebreak),
				entry.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := writer.Write(record); err != nil {
				log.Error("Failed to write CSV record", "error", err)
				return
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			log.Error("Failed to flush CSV export", "error", err)
		}
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Store.GetStandings()
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(standings); err != nil {
			log.Error("Failed to encode standings to JSON", "error", err)
		}
	}
}

// tournamentResponse is the bracket plus every match in it, round by round.
type tournamentResponse struct {
	Tournament *match.Tournament `json:"tournament"`
	Matches    []*match.Match    `json:"matches"`
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Name    string        `json:"name"`
			Players []string      `json:"players"`
			Mode    *scoring.Mode `json:"mode,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			log.Error("Failed to decode create tournament request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		mode := s.Cfg.DefaultMode
		if params.Mode != nil {
			mode = *params.Mode
		}

		tournament, matches, err := s.Advancer.CreateBracket(params.Name, params.Players, mode)
		if err != nil {
			log.Error("Failed to create bracket", "name", params.Name, "error", err)
			http.Error(w, "Failed to create bracket", http.StatusBadRequest)
			return
		}
		log.Info("Created tournament bracket", "tournamentID", tournament.ID, "entrants", len(params.Players), "matches", len(matches))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tournamentResponse{Tournament: tournament, Matches: matches}); err != nil {
			log.Error("Failed to encode tournament to JSON", "error", err)
		}
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.URL.Query().Get("tournamentID")
		if tournamentID == "" {
			http.Error(w, "tournamentID is required", http.StatusBadRequest)
			return
		}
		tournament, err := s.Store.GetTournament(tournamentID)
		if err != nil {
			if errors.Is(err, match.ErrTournamentNotFound) {
				http.Error(w, "Tournament not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get tournament", http.StatusInternalServerError)
			log.Error("Failed to get tournament from store", "error", err)
			return
		}
		matches, err := s.Store.GetTournamentMatches(tournamentID)
		if err != nil {
			http.Error(w, "Failed to get tournament matches", http.StatusInternalServerError)
			log.Error("Failed to get tournament matches from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tournamentResponse{Tournament: tournament, Matches: matches}); err != nil {
			log.Error("Failed to encode tournament to JSON", "error", err)
		}
	}
}

func (s *Server) ProcessMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessMatches(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Match processing completed.")
		log.Info("Match processing finished.")
	}
}

// NotifyResultHandler is the push endpoint for the match completion topic.
// Pub/Sub wraps the message in a JSON envelope with a base64 payload.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify result message", "body", string(bodyBytes))
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		m := match.Match{}
		if err := s.pubsub.ProcessMessage(rawData, &m); err != nil {
			log.Error("Failed to decode match payload", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if err := s.Notifier.SendResultNotification(&m, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// UpdateStandingsHandler is the push endpoint for the update-standings topic.
// The match payload identifies what changed; the posted table is always the
// current standings from the store.
func (s *Server) UpdateStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		m := match.Match{}
		if err := s.pubsub.ProcessMessage(rawData, &m); err != nil {
			log.Error("Failed to decode match payload", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Standings changed, posting the table", "matchID", m.ID)

		standings, err := s.Store.GetStandings()
		if err != nil {
			log.Error("Failed to get standings", "error", err)
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendStandings(standings, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send standings", "error", err)
			http.Error(w, "Failed to send standings", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Store.GetStandings()
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// ScoreCommandHandler returns a handler for the /score Slack command. The
// command text is the match ID.
func (s *Server) ScoreCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		matchID := r.FormValue("text")
		if matchID == "" {
			http.Error(w, "Match ID is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received score command", "matchID", matchID)

		m, err := s.Store.GetMatch(matchID)
		if err != nil {
			log.Warn("Could not find match for score command", "matchID", matchID, "error", err)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "No match found with ID %s.", matchID)
			return
		}

		msg, err := s.Notifier.FormatMatchResponse(m)
		if err != nil {
			http.Error(w, "Failed to format match", http.StatusInternalServerError)
			log.Error("Failed to format match", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
