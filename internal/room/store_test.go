package room_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/database"
	"github.com/arjunmehra/stumped/internal/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (room.RoomStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := room.New(db)
	return store, db, dbTeardown
}

func TestSettingsRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	t.Run("fresh room gets defaults", func(t *testing.T) {
		settings, err := store.GetSettings()
		require.NoError(t, err)
		assert.Equal(t, room.DefaultSettings(), settings)
	})

	t.Run("save and reload", func(t *testing.T) {
		syncedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		in := room.Settings{
			RoomName:          "Office Pool",
			PinRequired:       true,
			AdminPINHash:      "$2a$10$fakehash",
			MinScore:          0,
			MaxScore:          500,
			BonusExact:        2,
			LockOffsetMinutes: 15,
			SyncSource:        "goalserve",
			LastScheduleSync:  &syncedAt,
			AutoSyncEnabled:   true,
		}
		require.NoError(t, store.SaveSettings(in))

		out, err := store.GetSettings()
		require.NoError(t, err)
		assert.Equal(t, "Office Pool", out.RoomName)
		assert.True(t, out.PinRequired)
		assert.Equal(t, "$2a$10$fakehash", out.AdminPINHash)
		assert.Equal(t, 500, out.MaxScore)
		assert.Equal(t, 2, out.BonusExact)
		require.NotNil(t, out.LastScheduleSync)
		assert.True(t, out.LastScheduleSync.Equal(syncedAt))
		assert.Nil(t, out.LastTossSync)
		assert.True(t, out.AutoSyncEnabled)
	})
}

func TestPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]cricket.Player{
		{ID: "p1", Name: "Asha"},
		{ID: "p2", Name: "Bilal"},
	}))

	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p3"))

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Asha", players[0].Name)
}

func TestUpsertMatchRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	date := time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)
	lock := date.Add(-30 * time.Minute)
	match := &cricket.Match{
		ID:          "m1",
		ExternalID:  "gs-1001",
		TeamA:       "India",
		TeamB:       "Australia",
		Venue:       "MCG",
		Group:       "A",
		MatchNumber: 7,
		MatchDate:   &date,
		Toss:        &cricket.Toss{Winner: "India", Decision: cricket.DecisionBat},
		Innings1:    &cricket.Innings{Status: cricket.InningsOpen, LockTime: &lock},
		Innings2:    &cricket.Innings{Status: cricket.InningsPending},
		Predictions: cricket.Predictions{
			Innings1: map[string]int{"p1": 180},
			Innings2: map[string]int{},
		},
	}
	require.NoError(t, store.UpsertMatch(match))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, "India", got.TeamA)
	assert.Equal(t, "MCG", got.Venue)
	require.NotNil(t, got.MatchDate)
	assert.True(t, got.MatchDate.Equal(date))
	require.NotNil(t, got.Toss)
	assert.Equal(t, cricket.DecisionBat, got.Toss.Decision)
	require.NotNil(t, got.Innings1)
	assert.Equal(t, cricket.InningsOpen, got.Innings1.Status)
	require.NotNil(t, got.Innings1.LockTime)
	assert.True(t, got.Innings1.LockTime.Equal(lock))
	assert.Equal(t, 180, got.Predictions.Innings1["p1"])

	t.Run("upsert updates in place", func(t *testing.T) {
		match.Venue = "SCG"
		require.NoError(t, store.UpsertMatch(match))

		got, err := store.GetMatch("m1")
		require.NoError(t, err)
		assert.Equal(t, "SCG", got.Venue)

		all, err := store.GetAllMatches()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("lookup by external id", func(t *testing.T) {
		got, err := store.GetMatchByExternalID("gs-1001")
		require.NoError(t, err)
		assert.Equal(t, "m1", got.ID)
	})

	t.Run("missing match maps to not found", func(t *testing.T) {
		_, err := store.GetMatch("nope")
		assert.ErrorIs(t, err, cricket.ErrNotFound)
	})
}

func TestLegacyBlobDecodesThroughNormalize(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	// A row written by the old single-innings flat-file importer.
	legacyState := `{"status":"open","actualScore":163,"predictions":{"p1":170,"p2":150}}`
	_, err := db.Exec(`
		INSERT INTO matches (id, team_a, team_b, state_json)
		VALUES ('legacy1', 'India', 'Pakistan', ?)`, legacyState)
	require.NoError(t, err)

	got, err := store.GetMatch("legacy1")
	require.NoError(t, err)
	assert.Nil(t, got.Innings1)
	require.NotNil(t, got.LegacyScore)
	assert.Equal(t, 163, *got.LegacyScore)
	assert.Equal(t, map[string]int{"p1": 170, "p2": 150}, got.Predictions.Innings1)

	cricket.Normalize(got, time.Now())
	require.NotNil(t, got.Innings1)
	assert.Equal(t, cricket.InningsScored, got.Innings1.Status)
	assert.Equal(t, 163, *got.Innings1.Score)
	assert.Equal(t, cricket.InningsOpen, got.Innings2.Status)
}

func TestClearMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatch(&cricket.Match{ID: "m1", TeamA: "A", TeamB: "B"}))
	require.NoError(t, store.UpsertMatch(&cricket.Match{ID: "m2", TeamA: "C", TeamB: "D"}))

	store.ClearMatch("m1")

	all, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "m2", all[0].ID)
}
