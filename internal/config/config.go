package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/courtside/courtside/internal/scoring"
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
	getEnvDefault := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		Port: getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID:   getEnv("GCP_PROJECT"),
		DefaultMode: defaultMode(getEnvDefault),
	}
	return cfg
}

// defaultMode assembles the scoring mode used for ad-hoc matches. Every knob
// has a sane tennis default, so deployments only set what they change.
func defaultMode(getEnvDefault func(key, fallback string) string) scoring.Mode {
	mode := scoring.DefaultMode()

	if v := getEnvDefault("SCORING_VARIANT", ""); v != "" {
		mode.Variant = scoring.Variant(v)
	}
	mode.UseAdvantage = envBool(getEnvDefault, "SCORING_USE_ADVANTAGE", mode.UseAdvantage)
	mode.SetsToWin = envInt(getEnvDefault, "SCORING_SETS_TO_WIN", mode.SetsToWin)
	mode.FinalSetMatchTiebreak = envBool(getEnvDefault, "SCORING_FINAL_SET_MATCH_TIEBREAK", mode.FinalSetMatchTiebreak)
	mode.MatchTiebreakFromStart = envBool(getEnvDefault, "SCORING_MATCH_TIEBREAK_FROM_START", mode.MatchTiebreakFromStart)
	mode.MatchTiebreakServerReset = envBool(getEnvDefault, "SCORING_MATCH_TIEBREAK_SERVER_RESET", mode.MatchTiebreakServerReset)

	if err := mode.Validate(); err != nil {
		log.Fatalf("Error: invalid scoring configuration: %v", err)
	}
	return mode
}

func envBool(getEnvDefault func(key, fallback string) string, key string, fallback bool) bool {
	v := getEnvDefault(key, "")
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("Error: environment variable %s must be a boolean, got %q", key, v)
	}
	return parsed
}

func envInt(getEnvDefault func(key, fallback string) string, key string, fallback int) int {
	v := getEnvDefault(key, "")
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Error: environment variable %s must be an integer, got %q", key, v)
	}
	return parsed
}
