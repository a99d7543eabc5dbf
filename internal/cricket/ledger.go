package cricket

import (
	"math"
	"time"
)

// SubmitPrediction records a player's guess for one innings of a match.
// Guards run in a fixed order and the first failure wins:
//
//  1. the toss must be set, otherwise the innings has no batting team yet
//  2. the innings must be open; an innings whose lock time has passed counts
//     as locked even if Normalize has not advanced the status field yet
//  3. the player must belong to the room
//  4. the score must be finite and within bounds
//
// On success the score is rounded to the nearest integer and stored,
// overwriting any earlier guess by the same player. Players may revise as
// often as they like before lock.
func SubmitPrediction(m *Match, n InningsNumber, playerID string, raw float64, bounds ScoreBounds, isKnownPlayer func(string) bool, now time.Time) error {
	if _, ok := ResolveBattingOrder(m); !ok {
		return ErrTossNotSet
	}
	in := m.Innings(n)
	if in == nil || in.Status != InningsOpen || in.IsLockedByTime(now) {
		return ErrInningsNotOpen
	}
	if !isKnownPlayer(playerID) {
		return ErrUnknownPlayer
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) || !bounds.Contains(raw) {
		return ErrScoreOutOfRange
	}
	m.PredictionsFor(n)[playerID] = int(math.Round(raw))
	return nil
}
