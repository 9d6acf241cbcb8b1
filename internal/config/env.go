package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	envHistorySize = "TUIRACE_HISTORY_SIZE"
	envLegacyWPM   = "TUIRACE_LEGACY_WPM"
	envMode        = "TUIRACE_MODE"
)

// EnvConfig holds overrides read from the environment.
type EnvConfig struct {
	HistorySize int    `env:"TUIRACE_HISTORY_SIZE"`
	LegacyWPM   bool   `env:"TUIRACE_LEGACY_WPM"`
	Mode        string `env:"TUIRACE_MODE"`
	LogLevel    string `env:"TUIRACE_LOG_LEVEL" envDefault:"info"`
	DataDir     string `env:"TUIRACE_DATA_DIR"`
}

// Game returns the game settings present in the environment, shaped like
// the file section so both can be applied the same way.
func (c EnvConfig) Game() GameConfig {
	var g GameConfig
	if os.Getenv(envHistorySize) != "" {
		g.HistorySize = &c.HistorySize
	}
	if os.Getenv(envLegacyWPM) != "" {
		g.LegacyWPM = &c.LegacyWPM
	}
	if os.Getenv(envMode) != "" {
		g.Mode = &c.Mode
	}
	return g
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
