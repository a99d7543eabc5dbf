package service

import (
	"time"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/goalserve"
	"github.com/arjunmehra/stumped/internal/metrics"
	"github.com/arjunmehra/stumped/internal/notifier"
	"github.com/arjunmehra/stumped/internal/pubsub"
	"github.com/arjunmehra/stumped/internal/room"
	"github.com/arjunmehra/stumped/internal/standings"
)

// Service coordinates the prediction pool: it normalizes matches on every
// read, applies one state transition per mutating call, and persists through
// the room store. All operations are synchronous; the store's single-writer
// lock serializes mutations.
type Service struct {
	store    room.RoomStore
	feed     goalserve.FeedClient
	notifier notifier.Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient

	tossWindow time.Duration

	// Clock is overridable in tests; everything time-dependent goes through it.
	Clock func() time.Time
}

// RoomView is the full read model returned by Snapshot.
type RoomView struct {
	Settings   room.Settings    `json:"settings"`
	Players    []cricket.Player `json:"players"`
	Matches    []*cricket.Match `json:"matches"`
	Scoreboard []standings.Row  `json:"scoreboard"`
}

// SetupParams configures a new room. Zero numeric fields fall back to the
// room defaults.
type SetupParams struct {
	RoomName          string   `json:"room_name"`
	PlayerNames       []string `json:"player_names"`
	PIN               string   `json:"pin,omitempty"`
	MinScore          int      `json:"min_score"`
	MaxScore          int      `json:"max_score"`
	BonusExact        int      `json:"bonus_exact"`
	LockOffsetMinutes int      `json:"lock_offset_minutes"`
	AutoSyncEnabled   bool     `json:"auto_sync_enabled"`
}
