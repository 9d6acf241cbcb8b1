// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game      GameConfig      `toml:"game"`
	LangPacks LangPacksConfig `toml:"lang-packs"`
	Display   DisplayConfig   `toml:"display"`
}

// GameConfig maps gameplay settings.
type GameConfig struct {
	HistorySize *int    `toml:"history-size"`
	LegacyWPM   *bool   `toml:"legacy-wpm"`
	Mode        *string `toml:"mode"`
}

// LangPacksConfig selects which lang packs passages are drawn from.
type LangPacksConfig struct {
	Whitelisted []string `toml:"whitelisted"`
	Blacklisted []string `toml:"blacklisted"`
}

// DisplayConfig maps terminal settings.
type DisplayConfig struct {
	MinWidth     *int `toml:"min-width"`
	MinHeight    *int `toml:"min-height"`
	ComboTrigger *int `toml:"combo-trigger"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate rejects settings that contradict each other.
func (c FileConfig) Validate() error {
	if len(c.LangPacks.Whitelisted) > 0 && len(c.LangPacks.Blacklisted) > 0 {
		return fmt.Errorf("lang-packs: whitelisted and blacklisted cannot both be set")
	}
	if c.Game.HistorySize != nil && *c.Game.HistorySize < 1 {
		return fmt.Errorf("game: history-size must be >= 1")
	}
	return nil
}
