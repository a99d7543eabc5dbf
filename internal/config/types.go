package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Goalserve     GoalserveConfig
	Slack         SlackConfig
	ProjectID     string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// GoalserveConfig carries the feed endpoints and sync tuning. The core never
// reads these ambiently; they are passed into the feed client explicitly.
type GoalserveConfig struct {
	BaseURL         string
	APIKey          string
	TossWindowHours int
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
