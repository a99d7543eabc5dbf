package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SyncRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_feed_sync_runs_total",
			Help: "The total number of schedule/toss feed sync runs.",
		}),
		PredictionsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_predictions_submitted_total",
			Help: "The total number of predictions accepted into the ledger.",
		}),
		InningsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_innings_scored_total",
			Help: "The total number of innings finalized with an actual score.",
		}),
		FeedSyncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_feed_sync_failures_total",
			Help: "The total number of feed sync attempts that failed.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pool_snapshot_duration_seconds",
			Help:    "The duration of building a full room snapshot.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pool_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SyncRuns,
		s.PredictionsSubmitted,
		s.InningsScored,
		s.FeedSyncFailures,
		s.NotifSent,
		s.NotifFailed,
		s.SnapshotDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSyncRuns() {
	s.SyncRuns.Inc()
}

func (s *Service) IncPredictionsSubmitted() {
	s.PredictionsSubmitted.Inc()
}

func (s *Service) IncInningsScored() {
	s.InningsScored.Inc()
}

func (s *Service) IncFeedSyncFailures() {
	s.FeedSyncFailures.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) ObserveSnapshotDuration(duration float64) {
	s.SnapshotDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
