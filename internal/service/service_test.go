package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arjunmehra/stumped/internal/auth"
	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/goalserve"
	"github.com/arjunmehra/stumped/internal/metrics"
	"github.com/arjunmehra/stumped/internal/notifier"
	"github.com/arjunmehra/stumped/internal/pubsub"
	"github.com/arjunmehra/stumped/internal/room"
	"github.com/arjunmehra/stumped/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *service.Service
	store    *room.MockStore
	feed     *goalserve.MockClient
	notifier *notifier.Mock
	metrics  *metrics.Mock
	pubsub   *pubsub.MockClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    room.NewMock(),
		feed:     goalserve.NewMock(),
		notifier: notifier.NewMock(),
		metrics:  metrics.NewMock(),
		pubsub:   pubsub.NewMock(),
	}
	f.svc = service.New(f.store, f.feed, f.notifier, f.metrics, f.pubsub, 24*time.Hour)
	f.svc.Clock = func() time.Time { return testTime }
	return f
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

// openMatch is a normalized match with the toss set and the first innings
// accepting predictions.
func openMatch() *cricket.Match {
	return &cricket.Match{
		ID:    "m1",
		TeamA: "India",
		TeamB: "Australia",
		Toss:  &cricket.Toss{Winner: "India", Decision: cricket.DecisionBat},
		Innings1: &cricket.Innings{Status: cricket.InningsOpen},
		Innings2: &cricket.Innings{Status: cricket.InningsPending},
		Predictions: cricket.Predictions{
			Innings1: map[string]int{},
			Innings2: map[string]int{},
		},
	}
}

func (f *fixture) serveMatch(m *cricket.Match) {
	f.store.GetMatchFunc = func(matchID string) (*cricket.Match, error) {
		if matchID == m.ID {
			return m, nil
		}
		return nil, cricket.ErrNotFound
	}
}

func TestSetupRoom(t *testing.T) {
	f := newFixture(t)

	players, err := f.svc.SetupRoom(service.SetupParams{
		RoomName:    "Office Pool",
		PlayerNames: []string{"Asha", "Bilal", "Chen"},
		PIN:         "4321",
		BonusExact:  1,
	})
	require.NoError(t, err)
	require.Len(t, players, 3)
	for _, p := range players {
		assert.NotEmpty(t, p.ID)
	}

	require.Len(t, f.store.SaveSettingsCalls, 1)
	saved := f.store.SaveSettingsCalls[0]
	assert.Equal(t, "Office Pool", saved.RoomName)
	assert.True(t, saved.PinRequired)
	assert.NoError(t, auth.VerifyPIN(saved.AdminPINHash, "4321"))
	assert.Equal(t, 720, saved.MaxScore)
	assert.Equal(t, 30, saved.LockOffsetMinutes)
	assert.Equal(t, 1, saved.BonusExact)
}

func TestSetupRoomValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetupRoom(service.SetupParams{PlayerNames: []string{"Asha"}})
	assert.ErrorIs(t, err, cricket.ErrValidation)

	_, err = f.svc.SetupRoom(service.SetupParams{RoomName: "Pool"})
	assert.ErrorIs(t, err, cricket.ErrValidation)

	_, err = f.svc.SetupRoom(service.SetupParams{
		RoomName:    "Pool",
		PlayerNames: []string{"Asha"},
		MinScore:    300,
		MaxScore:    200,
	})
	assert.ErrorIs(t, err, cricket.ErrValidation)
}

func TestAuthorize(t *testing.T) {
	f := newFixture(t)

	// Default settings have no PIN, so everything is admitted.
	assert.NoError(t, f.svc.Authorize(""))

	hash, err := auth.HashPIN("9999")
	require.NoError(t, err)
	f.store.GetSettingsFunc = func() (room.Settings, error) {
		s := room.DefaultSettings()
		s.PinRequired = true
		s.AdminPINHash = hash
		return s, nil
	}

	assert.NoError(t, f.svc.Authorize("9999"))
	assert.ErrorIs(t, f.svc.Authorize("0000"), cricket.ErrUnauthorized)
}

func TestCreateMatchScheduled(t *testing.T) {
	f := newFixture(t)
	matchDate := testTime.Add(48 * time.Hour)

	m, err := f.svc.CreateMatch("India", "Australia", "MCG", timePtr(matchDate), nil)
	require.NoError(t, err)

	assert.Equal(t, cricket.InningsOpen, m.Innings1.Status)
	assert.Equal(t, cricket.InningsPending, m.Innings2.Status)
	require.NotNil(t, m.Innings1.LockTime)
	assert.Equal(t, matchDate.Add(-30*time.Minute), *m.Innings1.LockTime)
	require.Len(t, f.store.UpsertMatchCalls, 1)
}

func TestCreateMatchCasual(t *testing.T) {
	f := newFixture(t)

	m, err := f.svc.CreateMatch("India", "Australia", "", nil, nil)
	require.NoError(t, err)

	// No scheduled start means nothing to gate the second innings on.
	assert.Equal(t, cricket.InningsOpen, m.Innings1.Status)
	assert.Equal(t, cricket.InningsOpen, m.Innings2.Status)
	assert.Nil(t, m.Innings1.LockTime)
}

func TestCreateMatchValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateMatch("India", "", "", nil, nil)
	assert.ErrorIs(t, err, cricket.ErrValidation)

	_, err = f.svc.CreateMatch("India", "India", "", nil, nil)
	assert.ErrorIs(t, err, cricket.ErrValidation)
}

func TestSubmitPrediction(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	f.serveMatch(m)
	f.store.IsKnownPlayerFunc = func(playerID string) bool { return playerID == "p1" }

	err := f.svc.SubmitPrediction("m1", 1, "p1", 175)
	require.NoError(t, err)

	assert.Equal(t, 175, m.Predictions.Innings1["p1"])
	assert.Equal(t, 1, f.metrics.PredictionsSubmitted())
	require.Len(t, f.store.UpsertMatchCalls, 1)
}

func TestSubmitPredictionUnknownPlayer(t *testing.T) {
	f := newFixture(t)
	f.serveMatch(openMatch())
	f.store.IsKnownPlayerFunc = func(playerID string) bool { return false }

	err := f.svc.SubmitPrediction("m1", 1, "ghost", 175)
	assert.ErrorIs(t, err, cricket.ErrUnknownPlayer)
	assert.Zero(t, f.metrics.PredictionsSubmitted())
}

func TestSubmitPredictionLockTimePassed(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	m.Innings1.LockTime = timePtr(testTime.Add(-time.Minute))
	f.serveMatch(m)
	f.store.IsKnownPlayerFunc = func(playerID string) bool { return true }

	err := f.svc.SubmitPrediction("m1", 1, "p1", 175)
	assert.ErrorIs(t, err, cricket.ErrInningsNotOpen)
}

func TestSubmitPredictionBadInnings(t *testing.T) {
	f := newFixture(t)

	err := f.svc.SubmitPrediction("m1", 3, "p1", 175)
	assert.ErrorIs(t, err, cricket.ErrValidation)
}

func TestLockInnings(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	f.serveMatch(m)

	require.NoError(t, f.svc.LockInnings("m1", 1))
	assert.Equal(t, cricket.InningsLocked, m.Innings1.Status)

	// Second innings has not started yet.
	assert.ErrorIs(t, f.svc.LockInnings("m1", 2), cricket.ErrInningsNotStarted)
}

func TestSetToss(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	m.Toss = nil
	f.serveMatch(m)

	require.NoError(t, f.svc.SetToss("m1", "Australia", cricket.DecisionField))
	require.NotNil(t, m.Toss)
	assert.Equal(t, "Australia", m.Toss.Winner)

	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, pubsub.TopicTossSet, f.pubsub.SendMessageCalls[0].Topic)
}

func TestSetTossUnknownTeam(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	m.Toss = nil
	f.serveMatch(m)

	err := f.svc.SetToss("m1", "England", cricket.DecisionBat)
	assert.ErrorIs(t, err, cricket.ErrValidation)
	assert.Empty(t, f.pubsub.SendMessageCalls)
}

func TestScoreInnings(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	m.Predictions.Innings1 = map[string]int{"p1": 180, "p2": 170}
	f.serveMatch(m)
	start := testTime.Add(time.Hour)

	require.NoError(t, f.svc.ScoreInnings("m1", 1, 182, timePtr(start)))

	assert.Equal(t, cricket.InningsScored, m.Innings1.Status)
	require.NotNil(t, m.Result)
	assert.Equal(t, []string{"p1"}, m.Result.Innings1.Winners)

	// Scoring the first innings opens the second with its lock time set.
	assert.Equal(t, cricket.InningsOpen, m.Innings2.Status)
	require.NotNil(t, m.Innings2.LockTime)
	assert.Equal(t, start.Add(-30*time.Minute), *m.Innings2.LockTime)

	assert.Equal(t, 1, f.metrics.InningsScored())
	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, pubsub.TopicInningsScored, f.pubsub.SendMessageCalls[0].Topic)
	event, ok := f.pubsub.SendMessageCalls[0].Data.(pubsub.InningsScoredEvent)
	require.True(t, ok)
	assert.Equal(t, 182, event.Score)
	assert.Equal(t, []string{"p1"}, event.Winners)
}

func TestScoreInningsOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.serveMatch(openMatch())

	err := f.svc.ScoreInnings("m1", 1, 900, nil)
	assert.ErrorIs(t, err, cricket.ErrScoreOutOfRange)
	assert.Zero(t, f.metrics.InningsScored())
}

func TestScoreSecondInningsBeforeFirst(t *testing.T) {
	f := newFixture(t)
	f.serveMatch(openMatch())

	err := f.svc.ScoreInnings("m1", 2, 150, nil)
	assert.ErrorIs(t, err, cricket.ErrInningsNotStarted)
}

func TestReopenMatch(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	m.Innings1.Status = cricket.InningsScored
	m.Innings1.Score = intPtr(182)
	m.Result = &cricket.MatchResult{
		Innings1: &cricket.InningsResult{Winners: []string{"p1"}, ClosestDiff: intPtr(2)},
	}
	f.serveMatch(m)

	require.NoError(t, f.svc.ReopenMatch("m1"))
	assert.Equal(t, cricket.InningsOpen, m.Innings1.Status)
	assert.Nil(t, m.Innings1.Score)
	assert.Nil(t, m.Result)
	require.Len(t, f.store.UpsertMatchCalls, 1)
}

func TestSnapshotPersistsNormalization(t *testing.T) {
	f := newFixture(t)
	// A legacy-era blob: flat status and score, no innings entities.
	legacy := &cricket.Match{
		ID:           "m1",
		TeamA:        "India",
		TeamB:        "Australia",
		LegacyStatus: "open",
		LegacyScore:  intPtr(163),
	}
	f.store.GetAllMatchesFunc = func() ([]*cricket.Match, error) {
		return []*cricket.Match{legacy}, nil
	}

	view, err := f.svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, view.Matches, 1)

	m := view.Matches[0]
	require.NotNil(t, m.Innings1)
	assert.Equal(t, cricket.InningsScored, m.Innings1.Status)
	require.NotNil(t, m.Innings1.Score)
	assert.Equal(t, 163, *m.Innings1.Score)

	// The repaired match was written back so the next read is canonical.
	require.Len(t, f.store.UpsertMatchCalls, 1)
}

func TestSnapshotSkipsFeedWhenAutoSyncDisabled(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Snapshot()
	require.NoError(t, err)
	assert.Zero(t, f.feed.GetTossCandidatesCalls)
}

func TestSnapshotSurvivesFeedFailure(t *testing.T) {
	f := newFixture(t)
	f.store.GetSettingsFunc = func() (room.Settings, error) {
		s := room.DefaultSettings()
		s.AutoSyncEnabled = true
		return s, nil
	}
	f.feed.GetTossCandidatesFunc = func(ctx context.Context) ([]goalserve.TossCandidate, error) {
		return nil, errors.New("feed down")
	}

	_, err := f.svc.Snapshot()
	require.NoError(t, err, "a feed outage must not fail reads")
	assert.Equal(t, 1, f.feed.GetTossCandidatesCalls)
	assert.Equal(t, 1, f.metrics.FeedSyncFailures())
}

func TestNotifyInningsResult(t *testing.T) {
	f := newFixture(t)
	m := openMatch()
	m.Innings1.Status = cricket.InningsScored
	m.Innings1.Score = intPtr(182)
	m.Result = &cricket.MatchResult{
		Innings1: &cricket.InningsResult{Winners: []string{"p1"}, ClosestDiff: intPtr(0)},
	}
	f.serveMatch(m)

	require.NoError(t, f.svc.NotifyInningsResult("m1", 1, false))
	require.Len(t, f.notifier.SendInningsResultCalls, 1)
	assert.Equal(t, cricket.FirstInnings, f.notifier.SendInningsResultCalls[0].Innings)
}
