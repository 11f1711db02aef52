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

type Server struct {
	Store          match.MatchStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Advancer       bracket.Advancer
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
