// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuirace/internal/game"
	"github.com/verte-zerg/tuirace/internal/history"
	"github.com/verte-zerg/tuirace/internal/match"
	"github.com/verte-zerg/tuirace/internal/mistakes"
	"github.com/verte-zerg/tuirace/internal/model"
	"github.com/verte-zerg/tuirace/internal/segment"
	"github.com/verte-zerg/tuirace/internal/stats"
	"github.com/verte-zerg/tuirace/internal/store"
)

// wpmInterval is how often speed is recomputed while the player pauses.
const wpmInterval = 500 * time.Millisecond

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle       = lipgloss.NewStyle().Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	comboStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	inputBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Deps are the collaborators of the typing UI.
type Deps struct {
	Config   model.Config
	Store    *store.Store
	History  *history.Buffer
	Training history.Fetcher
	Words    *mistakes.Set
	PackRoot string
	Logger   zerolog.Logger
	Rand     *rand.Rand
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config   model.Config
	store    *store.Store
	history  *history.Buffer
	training history.Fetcher
	words    *mistakes.Set
	packRoot string
	logger   zerolog.Logger
	rnd      *rand.Rand

	keys keyMap
	help help.Model

	width  int
	height int

	mode    model.GameMode
	tracker *stats.Tracker
	round   *game.Round
	target  []rune
	last    *model.RoundResult
}

type tickMsg time.Time

// NewModel constructs a typing TUI model and loads the first passage.
func NewModel(deps Deps) *Model {
	rnd := deps.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	words := deps.Words
	if words == nil {
		words = mistakes.NewSet()
	}
	m := &Model{
		config:   deps.Config,
		store:    deps.Store,
		history:  deps.History,
		training: deps.Training,
		words:    words,
		packRoot: deps.PackRoot,
		logger:   deps.Logger,
		rnd:      rnd,
		keys:     defaultKeyMap(),
		help:     help.New(),
		mode:     deps.Config.Mode,
		tracker:  stats.NewTracker(deps.Config.LegacyWPM),
	}
	m.load(history.ActionNext)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(wpmInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if !m.round.Complete() {
			m.round.Refresh()
		}
		return m, tick()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.load(history.ActionNext)
	case key.Matches(msg, m.keys.Previous):
		m.load(history.ActionPrevious)
	case key.Matches(msg, m.keys.Restart):
		m.load(history.ActionRestart)
	case key.Matches(msg, m.keys.NextMode):
		m.switchMode(m.mode.Next())
	case key.Matches(msg, m.keys.Clear):
		m.round.ClearInput()
	case key.Matches(msg, m.keys.DeleteWord):
		m.round.DeleteWord()
	case key.Matches(msg, m.keys.Backspace):
		m.round.Backspace()
	case msg.Type == tea.KeySpace:
		m.typeRunes([]rune{' '})
	case msg.Type == tea.KeyRunes:
		m.typeRunes(msg.Runes)
	}
	return nil
}

func (m *Model) typeRunes(runes []rune) {
	for _, r := range runes {
		if res := m.round.Type(r); res.RoundComplete {
			m.finishRound()
			return
		}
	}
}

// load picks the passage for the next round. Training rounds draw fresh
// mistaken words except on restart.
func (m *Model) load(action history.Action) {
	ctx := context.Background()
	var p model.Passage
	switch {
	case action == history.ActionRestart && m.round != nil:
		p = m.round.Passage()
	case m.mode == model.ModeTraining && m.training != nil:
		fetched, err := m.training.Fetch(ctx)
		if err != nil {
			m.logger.Warn().Err(err).Msg("failed to build training passage")
			fetched = history.Fallback
		}
		p = fetched
	default:
		retrieved, ok := m.history.Retrieve(ctx, action)
		if !ok {
			retrieved = m.history.Next(ctx)
		}
		p = retrieved
	}
	m.round = game.NewRound(p, m.mode, m.tracker)
	m.target = []rune(segment.JoinUnits(m.round.Session().Mode(), m.round.Session().Units()))
	m.logger.Debug().
		Str("action", action.String()).
		Str("mode", m.mode.String()).
		Str("passage", p.SourceID).
		Msg("round started")
}

// switchMode changes the rules. Entering or leaving training swaps the
// passage; other switches replay the current one under the new rules.
func (m *Model) switchMode(mode model.GameMode) {
	prev := m.mode
	m.mode = mode
	switch {
	case mode == model.ModeTraining:
		m.load(history.ActionNext)
	case prev == model.ModeTraining:
		m.round = nil
		m.load(history.ActionRestart)
	default:
		m.load(history.ActionRestart)
	}
}

func (m *Model) finishRound() {
	out, ok := m.round.Finish(m.words, m.rnd)
	if !ok {
		return
	}
	res := out.Result
	res.PassageID = store.LocalPassagePath(m.packRoot, res.PassageID)
	m.last = &res
	m.logger.Info().
		Str("round", res.ID).
		Str("passage", res.PassageID).
		Int("wpm", res.WPM).
		Float64("accuracy", res.Accuracy).
		Bool("failed", res.Failed).
		Msg("round finished")

	if m.store == nil {
		return
	}
	ctx := context.Background()
	if _, err := m.store.InsertRound(ctx, res); err != nil {
		m.logger.Error().Err(err).Msg("failed to save round")
	}
	if err := m.store.ApplyMistakenDelta(ctx, out.Delta); err != nil {
		m.logger.Error().Err(err).Msg("failed to save mistaken words")
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.tooSmall() {
		msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", m.config.MinWidth, m.config.MinHeight, m.width, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}
	view := m.round.Session().View()
	styled := buildStyledRunes(m.target, view)

	contentWidth := int(float64(m.width) * 0.70)
	if m.width == 0 {
		contentWidth = 0
	} else if contentWidth < 1 {
		contentWidth = 1
	}

	title := titleStyle.Render(m.round.Passage().Title)
	passage := wrapStyledRunes(styled, contentWidth)
	sections := []string{title, "", passage, "", m.renderInput(view), m.renderStats(), m.renderStatus(view)}
	content := strings.Join(sections, "\n")
	footer := footerStyle.Render(m.help.View(m.keys))
	if m.width == 0 || m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(contentWidth).Render(content))
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) tooSmall() bool {
	if m.width == 0 && m.height == 0 {
		return false
	}
	return m.width < m.config.MinWidth || m.height < m.config.MinHeight
}

func (m *Model) renderInput(view match.View) string {
	style := correctStyle
	if view.HasError {
		style = incorrectStyle
	}
	return inputBoxStyle.Render(style.Render(view.Input))
}

func (m *Model) renderStats() string {
	tr := m.round.Tracker()
	combo := fmt.Sprintf("Combo %d", tr.Combo())
	if m.config.ComboTrigger > 0 && tr.Combo() >= m.config.ComboTrigger {
		combo = comboStyle.Render(combo)
	}
	segments := []string{
		fmt.Sprintf("Progress %d%%", m.progress()),
		fmt.Sprintf("WPM %d", tr.WPM()),
		fmt.Sprintf("Accuracy %.1f%%", tr.Accuracy()),
		combo,
		fmt.Sprintf("Best %d", tr.HighestCombo()),
		fmt.Sprintf("Mode %s", m.mode),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// progress is the share of the passage behind the active unit, in percent.
func (m *Model) progress() int {
	session := m.round.Session()
	total := session.JoinedLength()
	if session.Complete() || total == 0 {
		return 100
	}
	return min(session.View().Active.Start*100/total, 100)
}

func (m *Model) renderStatus(view match.View) string {
	switch {
	case view.Failed:
		return incorrectStyle.Render("Failed! ^R to retry, ^N for the next passage")
	case view.Complete:
		return correctStyle.Render("Done! ^N for the next passage, ^R to restart")
	default:
		return ""
	}
}
