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

type Server struct {
	Store          room.RoomStore
	Service        *service.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
