package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	SyncRuns             prometheus.Counter
	PredictionsSubmitted prometheus.Counter
	InningsScored        prometheus.Counter
	FeedSyncFailures     prometheus.Counter
	NotifSent            prometheus.Counter
	NotifFailed          prometheus.Counter
	SnapshotDuration     prometheus.Histogram
	StartupTimeSeconds   prometheus.Gauge
}
