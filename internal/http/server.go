package http

import (
	"net/http"

	"github.com/arjunmehra/stumped/internal/config"
	"github.com/arjunmehra/stumped/internal/metrics"
	"github.com/arjunmehra/stumped/internal/notifier"
	"github.com/arjunmehra/stumped/internal/pubsub"
	"github.com/arjunmehra/stumped/internal/room"
	"github.com/arjunmehra/stumped/internal/service"
)

func NewServer(store room.RoomStore, svc *service.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Service:        svc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Notifier:       notifier,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Mutating endpoints additionally pass through adminMiddleware, which
	// checks the room PIN when one is configured.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/room", Chain(s.RoomHandler(), paramsMiddleware))
	s.Router.Handle("/members", Chain(s.ListMembersHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/predict", Chain(s.PredictHandler(), paramsMiddleware))

	s.Router.Handle("/setup", Chain(s.SetupHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/matches/create", Chain(s.CreateMatchHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/toss", Chain(s.TossHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/lock", Chain(s.LockHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/score", Chain(s.ScoreHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/reopen", Chain(s.ReopenHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/sync/schedule", Chain(s.SyncScheduleHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/sync/toss", Chain(s.SyncTossHandler(), paramsMiddleware, s.adminMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware, s.adminMiddleware))

	// Push endpoints for the pubsub subscriptions.
	s.Router.Handle("/notify-innings-result", Chain(s.NotifyInningsResultHandler(), paramsMiddleware))
	s.Router.Handle("/notify-leaderboard", Chain(s.NotifyLeaderboardHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
