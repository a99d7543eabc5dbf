package cricket

import (
	"fmt"
	"math"
	"time"
)

// SetToss records or overwrites the toss outcome. The winner must be one of
// the match's two teams. Admins may change the toss at any time; batting
// order for both innings follows from it.
func (m *Match) SetToss(winner string, decision TossDecision) error {
	if winner != m.TeamA && winner != m.TeamB {
		return fmt.Errorf("%w: toss winner %q is neither %q nor %q", ErrValidation, winner, m.TeamA, m.TeamB)
	}
	if decision != DecisionBat && decision != DecisionField {
		return fmt.Errorf("%w: toss decision must be %q or %q", ErrValidation, DecisionBat, DecisionField)
	}
	m.Toss = &Toss{Winner: winner, Decision: decision}
	return nil
}

// LockInnings closes an innings for new predictions ahead of its lock time.
// Locking an already locked or scored innings is a no-op; a pending innings
// cannot be locked because it never opened.
func (m *Match) LockInnings(n InningsNumber) error {
	in := m.Innings(n)
	if in == nil {
		return fmt.Errorf("%w: innings %d", ErrValidation, n)
	}
	switch in.Status {
	case InningsPending:
		return ErrInningsNotStarted
	case InningsOpen:
		in.Status = InningsLocked
	}
	return nil
}

// ApplyInningsScore finalizes an innings with its actual score and computes
// the nearest-guess result. Locking is advisory for this transition: the
// score may land on an open or locked innings, it only hard-gates new
// predictions. Scoring the first innings opens the second; when a start time
// for it is supplied, its lock time is scheduled lockOffset before that start.
func (m *Match) ApplyInningsScore(n InningsNumber, raw float64, bounds ScoreBounds, innings2Start *time.Time, lockOffset time.Duration) error {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || !bounds.Contains(raw) {
		return ErrScoreOutOfRange
	}
	in := m.Innings(n)
	if in == nil {
		return fmt.Errorf("%w: innings %d", ErrValidation, n)
	}
	if n == SecondInnings && in.Status == InningsPending {
		return ErrInningsNotStarted
	}

	score := int(math.Round(raw))
	in.Score = &score
	in.Status = InningsScored

	if m.Result == nil {
		m.Result = &MatchResult{}
	}
	res := ComputeInningsResult(in.Score, m.PredictionsFor(n))
	switch n {
	case FirstInnings:
		m.Result.Innings1 = res
		if m.Innings2.Status == InningsPending {
			m.Innings2.Status = InningsOpen
			if innings2Start != nil {
				lock := innings2Start.Add(-lockOffset)
				m.Innings2.LockTime = &lock
			}
		}
	case SecondInnings:
		m.Result.Innings2 = res
	}
	return nil
}

// ReopenInnings resets a single innings back to open, clearing its score and
// stored result. Available from any state; the other innings is untouched.
func (m *Match) ReopenInnings(n InningsNumber) error {
	in := m.Innings(n)
	if in == nil {
		return fmt.Errorf("%w: innings %d", ErrValidation, n)
	}
	in.Status = InningsOpen
	in.Score = nil
	if m.Result != nil {
		switch n {
		case FirstInnings:
			m.Result.Innings1 = nil
		case SecondInnings:
			m.Result.Innings2 = nil
		}
		if m.Result.Innings1 == nil && m.Result.Innings2 == nil {
			m.Result = nil
		}
	}
	return nil
}

// ReopenMatch resets the whole match: innings1 back to open, innings2 back to
// pending with its score and lock time cleared, and the result dropped.
func (m *Match) ReopenMatch() {
	m.Innings1.Status = InningsOpen
	m.Innings1.Score = nil
	m.Innings2.Status = InningsPending
	m.Innings2.Score = nil
	m.Innings2.LockTime = nil
	m.Result = nil
}
