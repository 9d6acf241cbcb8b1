// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Source ids for passages that do not come from a lang pack file.
const (
	UserInputSourceID = "User input"
	FallbackSourceID  = "FALLBACK_PATH"
	TrainingSourceID  = "TRAINING_MODE_PATH"
)

// Passage is a typeable text with its title and origin.
type Passage struct {
	Text     string
	Title    string
	SourceID string
}

// GameMode selects the rules for a round.
type GameMode int

// Game modes, in cycling order.
const (
	ModeDefault GameMode = iota
	ModeInstantDeath
	ModeTraining
)

// Next returns the following mode, wrapping around.
func (m GameMode) Next() GameMode {
	switch m {
	case ModeDefault:
		return ModeInstantDeath
	case ModeInstantDeath:
		return ModeTraining
	default:
		return ModeDefault
	}
}

// Prev returns the preceding mode, wrapping around.
func (m GameMode) Prev() GameMode {
	switch m {
	case ModeDefault:
		return ModeTraining
	case ModeTraining:
		return ModeInstantDeath
	default:
		return ModeDefault
	}
}

func (m GameMode) String() string {
	switch m {
	case ModeInstantDeath:
		return "Instant Death"
	case ModeTraining:
		return "Training"
	default:
		return "Default"
	}
}

// GameModeFromCode maps a stored integer back to a mode. Unknown codes are Default.
func GameModeFromCode(code int64) GameMode {
	switch code {
	case 1:
		return ModeInstantDeath
	case 2:
		return ModeTraining
	default:
		return ModeDefault
	}
}

// Code returns the integer stored for the mode.
func (m GameMode) Code() int64 {
	return int64(m)
}

// ParseGameMode parses a mode name as used in config files and env vars.
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return ModeDefault, nil
	case "instant-death", "instant death", "instantdeath", "instant_death":
		return ModeInstantDeath, nil
	case "training":
		return ModeTraining, nil
	default:
		return ModeDefault, fmt.Errorf("unknown game mode %q", s)
	}
}

// Config defines play settings.
type Config struct {
	HistorySize  int
	LegacyWPM    bool
	Mode         GameMode
	Whitelisted  []string
	Blacklisted  []string
	MinWidth     int
	MinHeight    int
	ComboTrigger int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        *GameMode
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RoundResult captures a finished round for persistence.
type RoundResult struct {
	ID           string
	PassageID    string
	PassageLen   int
	WPM          int
	Accuracy     float64
	HighestCombo int
	Mode         GameMode
	Failed       bool
	PlayedAt     time.Time
}

// MistakenDelta lists mistaken-word changes produced by a round.
type MistakenDelta struct {
	Added   []string
	Removed []string
}

// Empty reports whether the delta carries no changes.
func (d MistakenDelta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// ResultAggregate is a stored round as read back for reporting.
type ResultAggregate struct {
	RoundID      string
	PassageID    string
	PlayedAt     time.Time
	WPM          int
	Accuracy     float64
	HighestCombo int
	Mode         GameMode
	Failed       bool
}
