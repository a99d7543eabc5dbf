package cricket

import "time"

// Normalize coerces a match record of unknown provenance into the canonical
// shape and applies time-based auto-locking. It is the migration-on-read step
// that runs before any other part of the engine touches a match, and it is
// idempotent apart from the auto-lock, which depends on now.
//
// It never fails: malformed or partial records degrade to defaults.
func Normalize(m *Match, now time.Time) {
	if m.Innings1 == nil {
		m.Innings1 = inningsFromLegacy(m)
	}
	if m.Innings2 == nil {
		m.Innings2 = &Innings{Status: InningsPending}
	}
	if m.Innings1.Status == "" {
		m.Innings1.Status = InningsOpen
	}
	if m.Innings2.Status == "" {
		m.Innings2.Status = InningsPending
	}
	if m.Predictions.Innings1 == nil {
		m.Predictions.Innings1 = map[string]int{}
	}
	if m.Predictions.Innings2 == nil {
		m.Predictions.Innings2 = map[string]int{}
	}

	// The second innings opens as soon as the first is scored.
	if m.Innings1.Status == InningsScored && m.Innings2.Status == InningsPending {
		m.Innings2.Status = InningsOpen
	}

	autoLock(m.Innings1, now)
	autoLock(m.Innings2, now)
}

// inningsFromLegacy rebuilds innings1 from the flat single-innings fields.
func inningsFromLegacy(m *Match) *Innings {
	in := &Innings{
		Status:   InningsOpen,
		LockTime: m.LegacyLockTime,
	}
	switch InningsStatus(m.LegacyStatus) {
	case InningsOpen, InningsLocked, InningsScored:
		in.Status = InningsStatus(m.LegacyStatus)
	}
	if m.LegacyScore != nil {
		score := *m.LegacyScore
		in.Score = &score
		in.Status = InningsScored
	}
	return in
}

func autoLock(in *Innings, now time.Time) {
	if in.Status == InningsOpen && in.IsLockedByTime(now) {
		in.Status = InningsLocked
	}
}
