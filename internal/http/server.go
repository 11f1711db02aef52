package http

import (
	"net/http"

	"github.com/courtside/courtside/internal/bracket"
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/match"
	"github.com/courtside/courtside/internal/metrics"
	"github.com/courtside/courtside/internal/notifier"
	"github.com/courtside/courtside/internal/processor"
	"github.com/courtside/courtside/internal/pubsub"
)

func NewServer(store match.MatchStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, advancer bracket.Advancer, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Advancer:       advancer,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/create", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/get", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/point", Chain(s.ScorePointHandler(), paramsMiddleware))
	s.Router.Handle("/matches/undo", Chain(s.UndoPointHandler(), paramsMiddleware))
	s.Router.Handle("/matches/log", Chain(s.ScoreLogHandler(), paramsMiddleware))
	s.Router.Handle("/matches/export", Chain(s.ExportScoreLogHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/create", Chain(s.CreateTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/get", Chain(s.GetTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("/update-standings", Chain(s.UpdateStandingsHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
	s.Router.Handle("/slack/command/score", Chain(s.ScoreCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
