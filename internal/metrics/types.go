package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PointsScored       prometheus.Counter
	Undos              prometheus.Counter
	VersionConflicts   prometheus.Counter
	MatchesCompleted   prometheus.Counter
	MatchesProcessed   prometheus.Counter
	ApplyDuration      prometheus.Histogram
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
