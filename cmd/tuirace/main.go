// Package main provides the CLI entrypoint for tuirace.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuirace/internal/config"
	"github.com/verte-zerg/tuirace/internal/history"
	"github.com/verte-zerg/tuirace/internal/logging"
	"github.com/verte-zerg/tuirace/internal/mistakes"
	"github.com/verte-zerg/tuirace/internal/model"
	"github.com/verte-zerg/tuirace/internal/passage"
	"github.com/verte-zerg/tuirace/internal/stats"
	"github.com/verte-zerg/tuirace/internal/statsui"
	"github.com/verte-zerg/tuirace/internal/store"
	"github.com/verte-zerg/tuirace/internal/tui"
)

const (
	defaultMinWidth     = 60
	defaultMinHeight    = 10
	defaultComboTrigger = 60
	defaultCurveWindow  = 10
)

var (
	playReadText     string
	playLegacyWPM    bool
	playInstantDeath bool
	playTraining     bool
	playHistorySize  int
	playDebug        bool

	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuirace",
		Short:         "Terminal typing race",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVarP(&playReadText, "read-text", "r", "", "play a single round on the given text")
	rootCmd.Flags().BoolVarP(&playLegacyWPM, "legacy-wpm", "l", false, "count typed words instead of five-character words")
	rootCmd.Flags().BoolVarP(&playInstantDeath, "instant-death", "i", false, "start in instant death mode")
	rootCmd.Flags().BoolVarP(&playTraining, "training", "t", false, "start in training mode on mistaken words")
	rootCmd.Flags().IntVar(&playHistorySize, "history-size", history.DefaultCapacity, "number of passages kept for back navigation")
	rootCmd.Flags().BoolVarP(&playDebug, "debug", "d", false, "write debug logs")
	rootCmd.MarkFlagsMutuallyExclusive("instant-death", "training")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPacksCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// settings collects config file, environment and flags, later sources winning.
type settings struct {
	cfg   model.Config
	env   config.EnvConfig
	paths config.Paths
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	if err := config.LoadDotEnv(config.DefaultDotEnvPath()); err != nil {
		return settings{}, err
	}
	envCfg, err := config.ParseEnv()
	if err != nil {
		return settings{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}

	legacy := false
	historySize := history.DefaultCapacity
	modeName := ""
	for _, game := range []config.GameConfig{fileCfg.Game, envCfg.Game()} {
		if game.LegacyWPM != nil {
			legacy = *game.LegacyWPM
		}
		if game.HistorySize != nil {
			historySize = *game.HistorySize
		}
		if game.Mode != nil {
			modeName = *game.Mode
		}
	}
	applyBoolFlag(cmd, "legacy-wpm", &legacy, playLegacyWPM)
	applyIntFlag(cmd, "history-size", &historySize, playHistorySize)
	if historySize < 1 {
		return settings{}, fmt.Errorf("--history-size must be >= 1")
	}

	mode, err := model.ParseGameMode(modeName)
	if err != nil {
		return settings{}, fmt.Errorf("invalid mode: %w", err)
	}
	switch {
	case playInstantDeath:
		mode = model.ModeInstantDeath
	case playTraining:
		mode = model.ModeTraining
	}

	cfg := model.Config{
		HistorySize:  historySize,
		LegacyWPM:    legacy,
		Mode:         mode,
		Whitelisted:  fileCfg.LangPacks.Whitelisted,
		Blacklisted:  fileCfg.LangPacks.Blacklisted,
		MinWidth:     defaultMinWidth,
		MinHeight:    defaultMinHeight,
		ComboTrigger: defaultComboTrigger,
	}
	applyIntConfig(&cfg.MinWidth, fileCfg.Display.MinWidth)
	applyIntConfig(&cfg.MinHeight, fileCfg.Display.MinHeight)
	applyIntConfig(&cfg.ComboTrigger, fileCfg.Display.ComboTrigger)

	return settings{cfg: cfg, env: envCfg, paths: config.ResolvePaths(envCfg.DataDir)}, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	set, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg := set.cfg

	if err := checkTerminalSize(cfg); err != nil {
		return err
	}

	level := set.env.LogLevel
	if playDebug {
		level = "debug"
	}
	logger, logCloser, err := logging.File(set.paths.Log, level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}()

	st, err := store.Open(set.paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	saved, err := st.LoadMistakenWords(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load mistaken words: %w", err)
	}
	words := mistakes.NewSet(saved...)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	dirs := passage.Dirs{Main: set.paths.LangPacks, Extra: set.paths.ExtraPacks}
	source := passage.NewLocalSourceWithRand(dirs, cfg.Whitelisted, cfg.Blacklisted, rnd)
	buf := history.New(cfg.HistorySize, source, logger)
	if text := strings.TrimSpace(playReadText); text != "" {
		buf.Seed(passage.FromText(strings.Fields(text)))
	}

	logger.Info().
		Str("mode", cfg.Mode.String()).
		Int("history_size", cfg.HistorySize).
		Int("mistaken_words", words.Len()).
		Msg("starting tuirace")

	m := tui.NewModel(tui.Deps{
		Config:   cfg,
		Store:    st,
		History:  buf,
		Training: passage.NewTrainingSourceWithRand(words, rnd),
		Words:    words,
		PackRoot: set.paths.LangPacks,
		Logger:   logger,
		Rand:     rnd,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func checkTerminalSize(cfg model.Config) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return nil
	}
	if width < cfg.MinWidth || height < cfg.MinHeight {
		return fmt.Errorf("terminal too small: need %dx%d, have %dx%d", cfg.MinWidth, cfg.MinHeight, width, height)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newPacksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: "List installed lang packs",
		Args:  cobra.NoArgs,
		RunE:  runPacksCmd,
	}
}

func runPacksCmd(cmd *cobra.Command, _ []string) error {
	set, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.Console(set.env.LogLevel)
	if err != nil {
		return err
	}
	dirs := passage.Dirs{Main: set.paths.LangPacks, Extra: set.paths.ExtraPacks}
	enabled, all, err := passage.NewLocalSource(dirs, set.cfg.Whitelisted, set.cfg.Blacklisted).Packs()
	if err != nil {
		return fmt.Errorf("failed to list lang packs: %w", err)
	}
	if len(all) == 0 {
		logger.Warn().Str("dir", set.paths.LangPacks).Msg("no lang packs installed")
		return nil
	}
	return writePacks(cmd.OutOrStdout(), enabled, all, logger)
}

func writePacks(w io.Writer, enabled, all []passage.Pack, logger zerolog.Logger) error {
	if _, err := fmt.Fprintf(w, "Enabled packs: %s\n", strings.Join(passage.Names(enabled), ", ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(w, "All packs:"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, pack := range all {
		line := "  " + pack.Name
		manifest, ok, err := passage.ReadManifest(pack.Dir)
		switch {
		case err != nil:
			logger.Warn().Err(err).Str("pack", pack.Name).Msg("invalid pack manifest")
		case ok:
			if manifest.Version != "" {
				line += " v" + manifest.Version
			}
			if manifest.Description != "" {
				line += " - " + manifest.Description
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "game mode filter (default, instant-death, training)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func parseStatsConfig() (model.StatsConfig, error) {
	cfg := model.StatsConfig{Last: statsLast, CurveWindow: statsCurveWindow}
	if statsMode != "" {
		mode, err := model.ParseGameMode(statsMode)
		if err != nil {
			return cfg, fmt.Errorf("invalid --mode value: %w", err)
		}
		cfg.Mode = &mode
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if cfg.Last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if cfg.CurveWindow < 1 {
		return cfg, fmt.Errorf("--curve-window must be >= 1")
	}
	return cfg, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := parseStatsConfig()
	if err != nil {
		return err
	}
	envCfg, err := config.ParseEnv()
	if err != nil {
		return err
	}
	paths := config.ResolvePaths(envCfg.DataDir)
	logger, err := logging.Console(envCfg.LogLevel)
	if err != nil {
		return err
	}

	st, err := store.Open(paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	if statsPlain {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return err
		}
		return report.Render(cmd.OutOrStdout(), stats.TerminalWidth())
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyIntConfig(target, value *int) {
	if value == nil {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuirace configuration
# Uncomment a value to enable it. Environment variables override the file
# and CLI flags override both.

[game]
# history-size = %d       # Passages kept for back navigation
# legacy-wpm = false      # Count typed words instead of five-character words
# mode = "default"        # default, instant-death or training

[lang-packs]
# Use at most one of these lists. "*" or an empty whitelist enables all packs.
# whitelisted = ["default"]
# blacklisted = ["repo/pack"]

[display]
# min-width = %d
# min-height = %d
# combo-trigger = %d      # Combo highlighted from this streak on
`,
		history.DefaultCapacity,
		defaultMinWidth,
		defaultMinHeight,
		defaultComboTrigger,
	)
}
