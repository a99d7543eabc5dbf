package cricket

import (
	"encoding/json"
	"time"
)

// InningsStatus is the lifecycle state of a single innings.
type InningsStatus string

const (
	InningsPending InningsStatus = "pending"
	InningsOpen    InningsStatus = "open"
	InningsLocked  InningsStatus = "locked"
	InningsScored  InningsStatus = "scored"
)

// InningsNumber identifies one of the two innings of a match.
type InningsNumber int

const (
	FirstInnings  InningsNumber = 1
	SecondInnings InningsNumber = 2
)

// TossDecision is what the toss winner chose to do first.
type TossDecision string

const (
	DecisionBat   TossDecision = "bat"
	DecisionField TossDecision = "field"
)

// Player is a participant in the room. Players are created at room setup and
// never change or disappear for the lifetime of the room.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Innings holds the state of one innings of a match.
type Innings struct {
	Status   InningsStatus `json:"status"`
	LockTime *time.Time    `json:"lock_time,omitempty"`
	Score    *int          `json:"score,omitempty"`
}

// Toss records the coin-flip outcome. Winner is always one of the match's two
// team names.
type Toss struct {
	Winner   string       `json:"winner"`
	Decision TossDecision `json:"decision"`
}

// Predictions holds every player's guess per innings, keyed by player ID.
type Predictions struct {
	Innings1 map[string]int `json:"innings1"`
	Innings2 map[string]int `json:"innings2"`
}

// UnmarshalJSON accepts both the canonical two-innings shape and the legacy
// flat shape from the single-innings era, where the whole object was a
// playerID -> score map. Legacy guesses are treated as first-innings data.
func (p *Predictions) UnmarshalJSON(data []byte) error {
	type canonical Predictions
	var c canonical
	if err := json.Unmarshal(data, &c); err == nil {
		p.Innings1 = c.Innings1
		p.Innings2 = c.Innings2
		return nil
	}
	var flat map[string]int
	if err := json.Unmarshal(data, &flat); err != nil {
		// Malformed blobs degrade to empty maps rather than failing the read.
		p.Innings1 = map[string]int{}
		p.Innings2 = map[string]int{}
		return nil
	}
	p.Innings1 = flat
	p.Innings2 = map[string]int{}
	return nil
}

// InningsResult is the outcome of scoring one innings against the ledger.
// Winners is sorted by player ID so repeated computations compare equal.
// ClosestDiff is nil when nobody predicted.
type InningsResult struct {
	Winners     []string `json:"winners"`
	ClosestDiff *int     `json:"closest_diff"`
}

// MatchResult groups the per-innings results for a match.
type MatchResult struct {
	Innings1 *InningsResult `json:"innings1"`
	Innings2 *InningsResult `json:"innings2"`
}

// Match is one fixture between two named teams.
type Match struct {
	ID               string `json:"id"`
	ExternalID       string `json:"external_id,omitempty"`
	GoalserveMatchID string `json:"goalserve_match_id,omitempty"`

	TeamA       string     `json:"team_a"`
	TeamB       string     `json:"team_b"`
	Venue       string     `json:"venue,omitempty"`
	Group       string     `json:"group,omitempty"`
	Stage       string     `json:"stage,omitempty"`
	MatchNumber int        `json:"match_number,omitempty"`
	RoundNumber int        `json:"round_number,omitempty"`
	MatchDate   *time.Time `json:"match_date,omitempty"`

	Toss     *Toss    `json:"toss,omitempty"`
	Innings1 *Innings `json:"innings1,omitempty"`
	Innings2 *Innings `json:"innings2,omitempty"`

	Predictions Predictions  `json:"predictions"`
	Result      *MatchResult `json:"result,omitempty"`

	// Flat fields from the single-innings era. Only Normalize reads them;
	// they are kept so old stored blobs still decode.
	LegacyStatus   string     `json:"status,omitempty"`
	LegacyLockTime *time.Time `json:"lockTime,omitempty"`
	LegacyScore    *int       `json:"actualScore,omitempty"`
}

// ScoreBounds is the allowed inclusive range for predictions and final scores.
type ScoreBounds struct {
	Min int
	Max int
}

// Contains reports whether v lies within the bounds.
func (b ScoreBounds) Contains(v float64) bool {
	return v >= float64(b.Min) && v <= float64(b.Max)
}

// Innings returns the innings entity for the given number, or nil for an
// unknown number. Callers normalize first, so 1 and 2 are never nil.
func (m *Match) Innings(n InningsNumber) *Innings {
	switch n {
	case FirstInnings:
		return m.Innings1
	case SecondInnings:
		return m.Innings2
	}
	return nil
}

// PredictionsFor returns the ledger map for the given innings.
func (m *Match) PredictionsFor(n InningsNumber) map[string]int {
	switch n {
	case FirstInnings:
		return m.Predictions.Innings1
	case SecondInnings:
		return m.Predictions.Innings2
	}
	return nil
}

// IsLockedByTime reports whether the innings' lock time has passed, regardless
// of whether the status field has been advanced yet.
func (i *Innings) IsLockedByTime(now time.Time) bool {
	return i.LockTime != nil && !i.LockTime.After(now)
}
