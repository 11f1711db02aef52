package config

import "github.com/courtside/courtside/internal/scoring"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string
	// DefaultMode is the scoring mode applied when a match is created
	// without an explicit one.
	DefaultMode scoring.Mode
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
