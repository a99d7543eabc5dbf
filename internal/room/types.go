package room

import (
	"database/sql"
	"sync"
	"time"

	"github.com/arjunmehra/stumped/internal/cricket"
)

// store handles all database operations for the room.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Settings holds the room's configuration. The admin PIN is only ever stored
// as a bcrypt hash.
type Settings struct {
	RoomName          string     `json:"room_name"`
	PinRequired       bool       `json:"pin_required"`
	AdminPINHash      string     `json:"-"`
	MinScore          int        `json:"min_score"`
	MaxScore          int        `json:"max_score"`
	BonusExact        int        `json:"bonus_exact"`
	LockOffsetMinutes int        `json:"lock_offset_minutes"`
	SyncSource        string     `json:"sync_source,omitempty"`
	LastScheduleSync  *time.Time `json:"last_schedule_sync,omitempty"`
	LastTossSync      *time.Time `json:"last_toss_sync,omitempty"`
	AutoSyncEnabled   bool       `json:"auto_sync_enabled"`
}

// Bounds returns the prediction score bounds from the settings.
func (s Settings) Bounds() cricket.ScoreBounds {
	return cricket.ScoreBounds{Min: s.MinScore, Max: s.MaxScore}
}

// LockOffset returns the lock offset as a duration.
func (s Settings) LockOffset() time.Duration {
	return time.Duration(s.LockOffsetMinutes) * time.Minute
}

// DefaultSettings are the settings a fresh room starts with.
func DefaultSettings() Settings {
	return Settings{
		MinScore:          0,
		MaxScore:          720,
		LockOffsetMinutes: 30,
	}
}
