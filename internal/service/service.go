package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/arjunmehra/stumped/internal/auth"
	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/goalserve"
	"github.com/arjunmehra/stumped/internal/metrics"
	"github.com/arjunmehra/stumped/internal/notifier"
	"github.com/arjunmehra/stumped/internal/pubsub"
	"github.com/arjunmehra/stumped/internal/room"
	"github.com/arjunmehra/stumped/internal/standings"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new Service.
func New(store room.RoomStore, feed goalserve.FeedClient, notifier notifier.Notifier, metricsSvc metrics.Metrics, pubsubClient pubsub.PubSubClient, tossWindow time.Duration) *Service {
	return &Service{
		store:      store,
		feed:       feed,
		notifier:   notifier,
		metrics:    metricsSvc,
		pubsub:     pubsubClient,
		tossWindow: tossWindow,
		Clock:      time.Now,
	}
}

// Snapshot builds the full room view: every match normalized and auto-locked,
// plus the scoreboard. Feed sync is folded in best-effort when auto-sync is
// enabled; a feed failure never fails the read.
func (s *Service) Snapshot() (RoomView, error) {
	start := s.Clock()
	defer func() {
		s.metrics.ObserveSnapshotDuration(time.Since(start).Seconds())
	}()

	settings, err := s.store.GetSettings()
	if err != nil {
		return RoomView{}, err
	}

	if settings.AutoSyncEnabled && s.feed != nil && s.tossSyncDue(settings) {
		if _, err := s.SyncToss(); err != nil {
			// Swallowed: reads stay up when the feed is down.
			log.Warn("Best-effort toss sync failed during snapshot", "error", err)
		}
	}

	players, err := s.store.GetAllPlayers()
	if err != nil {
		return RoomView{}, err
	}
	matches, err := s.normalizedMatches()
	if err != nil {
		return RoomView{}, err
	}

	return RoomView{
		Settings:   settings,
		Players:    players,
		Matches:    matches,
		Scoreboard: standings.Build(matches, players, settings.BonusExact),
	}, nil
}

// Leaderboard returns only the standings rows.
func (s *Service) Leaderboard() ([]standings.Row, error) {
	view, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return view.Scoreboard, nil
}

// normalizedMatches loads all matches, runs the migration-on-read pass and
// persists any match whose observable state changed (legacy repair or
// auto-lock), so later reads see canonical rows.
func (s *Service) normalizedMatches() ([]*cricket.Match, error) {
	matches, err := s.store.GetAllMatches()
	if err != nil {
		return nil, err
	}
	now := s.Clock()
	for _, m := range matches {
		before := statusPair(m)
		cricket.Normalize(m, now)
		if statusPair(m) != before {
			if err := s.store.UpsertMatch(m); err != nil {
				log.Error("Failed to persist normalized match", "error", err, "matchID", m.ID)
			}
		}
	}
	return matches, nil
}

func statusPair(m *cricket.Match) [2]cricket.InningsStatus {
	var pair [2]cricket.InningsStatus
	if m.Innings1 != nil {
		pair[0] = m.Innings1.Status
	}
	if m.Innings2 != nil {
		pair[1] = m.Innings2.Status
	}
	return pair
}

// Authorize checks the admin PIN against the room settings. Rooms without
// PIN mode admit every admin call.
func (s *Service) Authorize(pin string) error {
	settings, err := s.store.GetSettings()
	if err != nil {
		return err
	}
	if !settings.PinRequired {
		return nil
	}
	return auth.VerifyPIN(settings.AdminPINHash, pin)
}

// SetupRoom creates the room's players and settings. Players are immutable
// once created; calling setup again replaces the roster wholesale, which is
// only sensible before play starts.
func (s *Service) SetupRoom(params SetupParams) ([]cricket.Player, error) {
	if strings.TrimSpace(params.RoomName) == "" {
		return nil, fmt.Errorf("%w: room name required", cricket.ErrValidation)
	}
	if len(params.PlayerNames) == 0 {
		return nil, fmt.Errorf("%w: at least one player required", cricket.ErrValidation)
	}

	settings := room.DefaultSettings()
	settings.RoomName = strings.TrimSpace(params.RoomName)
	if params.MaxScore > 0 {
		settings.MinScore = params.MinScore
		settings.MaxScore = params.MaxScore
	}
	if settings.MaxScore <= settings.MinScore {
		return nil, fmt.Errorf("%w: max score must exceed min score", cricket.ErrValidation)
	}
	settings.BonusExact = params.BonusExact
	if params.LockOffsetMinutes > 0 {
		settings.LockOffsetMinutes = params.LockOffsetMinutes
	}
	settings.AutoSyncEnabled = params.AutoSyncEnabled

	if params.PIN != "" {
		hash, err := auth.HashPIN(params.PIN)
		if err != nil {
			return nil, err
		}
		settings.PinRequired = true
		settings.AdminPINHash = hash
	}

	players := make([]cricket.Player, 0, len(params.PlayerNames))
	for _, name := range params.PlayerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: player name must not be blank", cricket.ErrValidation)
		}
		players = append(players, cricket.Player{ID: uuid.NewString(), Name: name})
	}

	if err := s.store.UpsertPlayers(players); err != nil {
		return nil, err
	}
	if err := s.store.SaveSettings(settings); err != nil {
		return nil, err
	}
	log.Info("Room set up", "room", settings.RoomName, "players", len(players))
	return players, nil
}

// CreateMatch adds a custom fixture outside the feed. Innings1 opens
// immediately; without a scheduled lock time, innings2 opens too so casual
// matches work without the first-innings dependency.
func (s *Service) CreateMatch(teamA, teamB, venue string, matchDate, lockTime *time.Time) (*cricket.Match, error) {
	teamA, teamB = strings.TrimSpace(teamA), strings.TrimSpace(teamB)
	if teamA == "" || teamB == "" {
		return nil, fmt.Errorf("%w: both team names required", cricket.ErrValidation)
	}
	if teamA == teamB {
		return nil, fmt.Errorf("%w: teams must differ", cricket.ErrValidation)
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, err
	}

	m := &cricket.Match{
		ID:        uuid.NewString(),
		TeamA:     teamA,
		TeamB:     teamB,
		Venue:     venue,
		MatchDate: matchDate,
		Innings1:  &cricket.Innings{Status: cricket.InningsOpen},
		Innings2:  &cricket.Innings{Status: cricket.InningsPending},
	}
	switch {
	case lockTime != nil:
		m.Innings1.LockTime = lockTime
	case matchDate != nil:
		lock := matchDate.Add(-settings.LockOffset())
		m.Innings1.LockTime = &lock
	default:
		m.Innings2.Status = cricket.InningsOpen
	}
	cricket.Normalize(m, s.Clock())

	if err := s.store.UpsertMatch(m); err != nil {
		return nil, err
	}
	log.Info("Created match", "matchID", m.ID, "teams", teamA+" v "+teamB)
	return m, nil
}

// SubmitPrediction records one player's guess for an innings.
func (s *Service) SubmitPrediction(matchID string, innings int, playerID string, score float64) error {
	n, err := inningsNumber(innings)
	if err != nil {
		return err
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return err
	}
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	now := s.Clock()
	cricket.Normalize(m, now)

	if err := cricket.SubmitPrediction(m, n, playerID, score, settings.Bounds(), s.store.IsKnownPlayer, now); err != nil {
		return err
	}
	if err := s.store.UpsertMatch(m); err != nil {
		return err
	}
	s.metrics.IncPredictionsSubmitted()
	log.Info("Prediction recorded", "matchID", matchID, "innings", innings, "playerID", playerID)
	return nil
}

// LockInnings closes an innings for predictions ahead of its lock time.
func (s *Service) LockInnings(matchID string, innings int) error {
	n, err := inningsNumber(innings)
	if err != nil {
		return err
	}
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	cricket.Normalize(m, s.Clock())
	if err := m.LockInnings(n); err != nil {
		return err
	}
	return s.store.UpsertMatch(m)
}

// SetToss records the toss outcome for a match.
func (s *Service) SetToss(matchID, winner string, decision cricket.TossDecision) error {
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	cricket.Normalize(m, s.Clock())
	if err := m.SetToss(winner, decision); err != nil {
		return err
	}
	if err := s.store.UpsertMatch(m); err != nil {
		return err
	}
	s.publish(pubsub.TopicTossSet, pubsub.TossSetEvent{
		MatchID:  m.ID,
		Winner:   winner,
		Decision: string(decision),
	})
	log.Info("Toss recorded", "matchID", matchID, "winner", winner, "decision", decision)
	return nil
}

// ScoreInnings finalizes an innings with its actual score, computes the
// result, and fans the event out.
func (s *Service) ScoreInnings(matchID string, innings int, score float64, innings2Start *time.Time) error {
	n, err := inningsNumber(innings)
	if err != nil {
		return err
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return err
	}
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	cricket.Normalize(m, s.Clock())

	if err := m.ApplyInningsScore(n, score, settings.Bounds(), innings2Start, settings.LockOffset()); err != nil {
		return err
	}
	if err := s.store.UpsertMatch(m); err != nil {
		return err
	}
	s.metrics.IncInningsScored()

	event := pubsub.InningsScoredEvent{MatchID: m.ID, Innings: int(n)}
	if in := m.Innings(n); in.Score != nil {
		event.Score = *in.Score
	}
	if res := inningsResult(m, n); res != nil {
		event.Winners = res.Winners
	}
	s.publish(pubsub.TopicInningsScored, event)
	log.Info("Innings scored", "matchID", matchID, "innings", innings, "score", event.Score)
	return nil
}

// NotifyInningsResult sends the innings-result announcement. It is invoked
// from the pubsub push path so the scoring request never waits on Slack.
func (s *Service) NotifyInningsResult(matchID string, innings int, dryRun bool) error {
	n, err := inningsNumber(innings)
	if err != nil {
		return err
	}
	if s.notifier == nil {
		return nil
	}
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	cricket.Normalize(m, s.Clock())
	players, err := s.store.GetAllPlayers()
	if err != nil {
		return err
	}
	_, err = s.notifier.SendInningsResult(m, n, players, dryRun)
	return err
}

// ReopenInnings resets one innings for corrections.
func (s *Service) ReopenInnings(matchID string, innings int) error {
	n, err := inningsNumber(innings)
	if err != nil {
		return err
	}
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	cricket.Normalize(m, s.Clock())
	if err := m.ReopenInnings(n); err != nil {
		return err
	}
	log.Info("Innings reopened", "matchID", matchID, "innings", innings)
	return s.store.UpsertMatch(m)
}

// ReopenMatch resets both innings and the stored result.
func (s *Service) ReopenMatch(matchID string) error {
	m, err := s.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	cricket.Normalize(m, s.Clock())
	m.ReopenMatch()
	log.Info("Match reopened", "matchID", matchID)
	return s.store.UpsertMatch(m)
}

func (s *Service) publish(topic string, event any) {
	if s.pubsub == nil {
		return
	}
	if err := s.pubsub.SendMessage(topic, event); err != nil {
		log.Error("Failed to publish event", "error", err, "topic", topic)
	}
}

func inningsNumber(innings int) (cricket.InningsNumber, error) {
	switch innings {
	case 1:
		return cricket.FirstInnings, nil
	case 2:
		return cricket.SecondInnings, nil
	}
	return 0, fmt.Errorf("%w: innings must be 1 or 2", cricket.ErrValidation)
}

func inningsResult(m *cricket.Match, n cricket.InningsNumber) *cricket.InningsResult {
	if m.Result == nil {
		return nil
	}
	if n == cricket.FirstInnings {
		return m.Result.Innings1
	}
	return m.Result.Innings2
}
