package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/goalserve"
	"github.com/arjunmehra/stumped/internal/room"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Auto toss sync piggybacks on snapshot reads; this caps how often we hit
// the feed from that path. Explicit sync calls are never rate limited.
const autoTossSyncInterval = 10 * time.Minute

const feedTimeout = 30 * time.Second

// SyncReport summarizes one sync run.
type SyncReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

func (s *Service) tossSyncDue(settings room.Settings) bool {
	if settings.LastTossSync == nil {
		return true
	}
	return s.Clock().Sub(*settings.LastTossSync) >= autoTossSyncInterval
}

// SyncSchedule pulls the fixture list from the feed and upserts it into the
// room. Matches are keyed by the feed's external ID so re-running is
// idempotent; manual state (toss, predictions, scores) is never touched.
func (s *Service) SyncSchedule() (SyncReport, error) {
	var report SyncReport
	if s.feed == nil {
		return report, fmt.Errorf("%w: no feed configured", cricket.ErrFeedSync)
	}

	ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
	defer cancel()

	entries, err := s.feed.GetSchedule(ctx)
	if err != nil {
		s.metrics.IncFeedSyncFailures()
		return report, fmt.Errorf("%w: schedule fetch: %v", cricket.ErrFeedSync, err)
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return report, err
	}

	now := s.Clock()
	batch := make([]*cricket.Match, 0, len(entries))
	for _, entry := range entries {
		if entry.ExternalID == "" || entry.TeamA == "" || entry.TeamB == "" {
			continue
		}
		existing, err := s.store.GetMatchByExternalID(entry.ExternalID)
		switch {
		case err == nil:
			applyScheduleEntry(existing, entry, settings.LockOffset())
			cricket.Normalize(existing, now)
			batch = append(batch, existing)
			report.Updated++
		case errors.Is(err, cricket.ErrNotFound):
			m := matchFromScheduleEntry(entry, settings.LockOffset())
			cricket.Normalize(m, now)
			batch = append(batch, m)
			report.Created++
		default:
			return report, err
		}
	}

	if err := s.store.UpsertMatches(batch); err != nil {
		return report, err
	}

	settings.SyncSource = "goalserve"
	settings.LastScheduleSync = &now
	if err := s.store.SaveSettings(settings); err != nil {
		return report, err
	}
	s.metrics.IncSyncRuns()
	log.Info("Schedule synced", "created", report.Created, "updated", report.Updated)
	return report, nil
}

func matchFromScheduleEntry(entry goalserve.ScheduleEntry, lockOffset time.Duration) *cricket.Match {
	m := &cricket.Match{
		ID:               uuid.NewString(),
		ExternalID:       entry.ExternalID,
		GoalserveMatchID: entry.ExternalID,
		Innings1:         &cricket.Innings{Status: cricket.InningsOpen},
		Innings2:         &cricket.Innings{Status: cricket.InningsPending},
	}
	applyScheduleEntry(m, entry, lockOffset)
	return m
}

// applyScheduleEntry copies the feed's descriptive fields onto the match.
// The first-innings lock time tracks the scheduled start while the innings
// is still open; once locked or scored it is left alone.
func applyScheduleEntry(m *cricket.Match, entry goalserve.ScheduleEntry, lockOffset time.Duration) {
	m.TeamA = entry.TeamA
	m.TeamB = entry.TeamB
	m.Venue = entry.Venue
	m.Group = entry.Group
	m.Stage = entry.Stage
	m.MatchNumber = entry.MatchNumber
	m.RoundNumber = entry.RoundNumber
	m.MatchDate = entry.MatchDate

	if entry.MatchDate != nil && m.Innings1 != nil && m.Innings1.Status == cricket.InningsOpen {
		lock := entry.MatchDate.Add(-lockOffset)
		m.Innings1.LockTime = &lock
	}
}

// SyncToss scans the live feed for toss announcements and fills them in on
// matches that do not have one yet. Candidates correlate by the recorded
// goalserve ID when known, otherwise by team pair within the configured
// window of the scheduled start.
func (s *Service) SyncToss() (int, error) {
	if s.feed == nil {
		return 0, fmt.Errorf("%w: no feed configured", cricket.ErrFeedSync)
	}

	ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
	defer cancel()

	candidates, err := s.feed.GetTossCandidates(ctx)
	if err != nil {
		s.metrics.IncFeedSyncFailures()
		return 0, fmt.Errorf("%w: toss fetch: %v", cricket.ErrFeedSync, err)
	}

	matches, err := s.store.GetAllMatches()
	if err != nil {
		return 0, err
	}

	now := s.Clock()
	applied := 0
	for _, m := range matches {
		cricket.Normalize(m, now)
		if m.Toss != nil {
			continue
		}
		candidate, ok := s.correlate(m, candidates)
		if !ok {
			continue
		}
		toss, ok := goalserve.ParseToss(candidate.TossText, m.TeamA, m.TeamB)
		if !ok {
			continue
		}
		m.Toss = &toss
		m.GoalserveMatchID = candidate.ID
		if err := s.store.UpsertMatch(m); err != nil {
			return applied, err
		}
		applied++
		log.Info("Toss synced from feed", "matchID", m.ID, "winner", toss.Winner, "decision", toss.Decision)
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return applied, err
	}
	settings.LastTossSync = &now
	if err := s.store.SaveSettings(settings); err != nil {
		return applied, err
	}
	s.metrics.IncSyncRuns()
	return applied, nil
}

func (s *Service) correlate(m *cricket.Match, candidates []goalserve.TossCandidate) (goalserve.TossCandidate, bool) {
	if m.GoalserveMatchID != "" {
		for _, c := range candidates {
			if c.ID == m.GoalserveMatchID {
				return c, true
			}
		}
	}

	teamA := goalserve.NormalizeTeamName(m.TeamA)
	teamB := goalserve.NormalizeTeamName(m.TeamB)
	for _, c := range candidates {
		local := goalserve.NormalizeTeamName(c.LocalTeam)
		visitor := goalserve.NormalizeTeamName(c.VisitorTeam)
		samePair := (local == teamA && visitor == teamB) || (local == teamB && visitor == teamA)
		if !samePair {
			continue
		}
		if m.MatchDate != nil && c.MatchDate != nil {
			gap := m.MatchDate.Sub(*c.MatchDate)
			if gap < 0 {
				gap = -gap
			}
			if gap > s.tossWindow {
				continue
			}
		}
		return c, true
	}
	return goalserve.TossCandidate{}, false
}
