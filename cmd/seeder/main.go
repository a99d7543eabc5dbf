package main

import (
	"os"
	"time"

	"github.com/arjunmehra/stumped/internal/auth"
	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/database"
	"github.com/arjunmehra/stumped/internal/room"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a local database with a demo room: a roster, a scored match so the
// scoreboard has content, an in-progress match, and one raw legacy-era blob
// to exercise the migration-on-read path.
func main() {
	log.Info("Starting database seeder...")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "stumped.db"
	}
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	defer db.Close()

	store := room.New(db)

	players := []cricket.Player{
		{ID: uuid.NewString(), Name: "Asha"},
		{ID: uuid.NewString(), Name: "Bilal"},
		{ID: uuid.NewString(), Name: "Chen"},
		{ID: uuid.NewString(), Name: "Devika"},
	}
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to insert players: %s", err)
	}
	log.Info("Seeded players", "count", len(players))

	settings := room.DefaultSettings()
	settings.RoomName = "Seeded Pool"
	settings.BonusExact = 1
	if pin := os.Getenv("SEED_ADMIN_PIN"); pin != "" {
		hash, err := auth.HashPIN(pin)
		if err != nil {
			log.Fatalf("Failed to hash admin PIN: %s", err)
		}
		settings.PinRequired = true
		settings.AdminPINHash = hash
	}
	if err := store.SaveSettings(settings); err != nil {
		log.Fatalf("Failed to save settings: %s", err)
	}

	now := time.Now()

	// A fully scored match so the leaderboard is populated.
	scored := &cricket.Match{
		ID:        uuid.NewString(),
		TeamA:     "India",
		TeamB:     "Australia",
		Venue:     "Wankhede Stadium",
		MatchDate: timePtr(now.Add(-48 * time.Hour)),
		Toss:      &cricket.Toss{Winner: "India", Decision: cricket.DecisionBat},
		Innings1:  &cricket.Innings{Status: cricket.InningsScored, Score: intPtr(182)},
		Innings2:  &cricket.Innings{Status: cricket.InningsScored, Score: intPtr(176)},
		Predictions: cricket.Predictions{
			Innings1: map[string]int{
				players[0].ID: 182,
				players[1].ID: 170,
				players[2].ID: 195,
			},
			Innings2: map[string]int{
				players[0].ID: 160,
				players[1].ID: 178,
			},
		},
	}
	scored.Result = &cricket.MatchResult{
		Innings1: cricket.ComputeInningsResult(scored.Innings1.Score, scored.Predictions.Innings1),
		Innings2: cricket.ComputeInningsResult(scored.Innings2.Score, scored.Predictions.Innings2),
	}

	// An upcoming match, toss not yet known.
	upcoming := &cricket.Match{
		ID:        uuid.NewString(),
		TeamA:     "England",
		TeamB:     "Pakistan",
		Venue:     "Lord's",
		MatchDate: timePtr(now.Add(72 * time.Hour)),
		Innings1:  &cricket.Innings{Status: cricket.InningsOpen, LockTime: timePtr(now.Add(72*time.Hour - 30*time.Minute))},
		Innings2:  &cricket.Innings{Status: cricket.InningsPending},
		Predictions: cricket.Predictions{
			Innings1: map[string]int{},
			Innings2: map[string]int{},
		},
	}

	if err := store.UpsertMatches([]*cricket.Match{scored, upcoming}); err != nil {
		log.Fatalf("Failed to insert matches: %s", err)
	}

	// A raw single-innings-era blob, inserted below the store API on purpose.
	// Reading it back goes through normalization.
	legacyBlob := `{"id":"legacy-1","team_a":"South Africa","team_b":"New Zealand","status":"open","actualScore":163,"predictions":{"` +
		players[0].ID + `":170,"` + players[1].ID + `":150}}`
	_, err = db.Exec(
		`INSERT OR REPLACE INTO matches (id, team_a, team_b, state_json) VALUES (?, ?, ?, ?)`,
		"legacy-1", "South Africa", "New Zealand", legacyBlob,
	)
	if err != nil {
		log.Fatalf("Failed to insert legacy match: %s", err)
	}

	log.Info("Seeding complete", "matches", 3)
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }
