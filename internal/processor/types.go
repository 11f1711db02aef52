package processor

import (
	"github.com/courtside/courtside/internal/metrics"
	"github.com/courtside/courtside/internal/pubsub"
)

// Processor handles the business logic of moving completed matches through
// their post-scoring lifecycle.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	advancer Advancer
}
