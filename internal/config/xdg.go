// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "tuirace"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigDir returns the directory holding config.toml and .env.
func DefaultConfigDir() string {
	return filepath.Join(XDGConfigHome(), appName)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// DefaultDotEnvPath returns the optional .env file next to the config.
func DefaultDotEnvPath() string {
	return filepath.Join(DefaultConfigDir(), ".env")
}

// DefaultDataDir returns the data directory unless overridden.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), appName)
}

// Paths are the data locations derived from one data directory.
type Paths struct {
	DataDir    string
	DB         string
	LangPacks  string
	ExtraPacks string
	Log        string
}

// ResolvePaths derives data paths from dataDir, or the XDG default when empty.
func ResolvePaths(dataDir string) Paths {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	return Paths{
		DataDir:    dataDir,
		DB:         filepath.Join(dataDir, appName+".db"),
		LangPacks:  filepath.Join(dataDir, "lang-packs"),
		ExtraPacks: filepath.Join(dataDir, "extra-packs"),
		Log:        filepath.Join(dataDir, appName+".log"),
	}
}
