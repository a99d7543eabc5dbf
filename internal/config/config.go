package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	tossWindow := 24
	if raw, ok := os.LookupEnv("TOSS_SYNC_WINDOW_HOURS"); ok {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			tossWindow = parsed
		} else {
			log.Warn("Invalid TOSS_SYNC_WINDOW_HOURS, using default", "value", raw)
		}
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Goalserve: GoalserveConfig{
			BaseURL:         getEnvOr("GOALSERVE_BASE_URL", "https://www.goalserve.com"),
			APIKey:          getEnv("GOALSERVE_API_KEY"),
			TossWindowHours: tossWindow,
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN"),
			ChannelID: getEnv("SLACK_CHANNEL_ID"),
		},
		ProjectID: getEnv("GCP_PROJECT"),
	}
	return cfg
}
