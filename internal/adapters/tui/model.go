// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomotray/internal/config"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
	"github.com/xvierd/pomotray/internal/services"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

type view int

const (
	viewMain view = iota
	viewSettings
)

const (
	fieldWork = iota
	fieldBreak
)

// historyMsg carries the outcome of recording a phase and the refreshed
// daily totals.
type historyMsg struct {
	stats *domain.DailyStats
	err   error
}

// Options configures a Model.
type Options struct {
	Settings *services.SettingsStore
	History  *services.HistoryService
	Notifier ports.Notifier
	Theme    *config.ThemeConfig
	Logger   *slog.Logger
}

// Model is the Bubble Tea model for the interactive timer. Its Update loop
// is the only goroutine that touches the timer and the settings.
type Model struct {
	ctx     context.Context
	app     *services.App
	bridge  *bridge
	history *services.HistoryService
	logger  *slog.Logger
	theme   config.ThemeConfig

	view       view
	workInput  textinput.Model
	breakInput textinput.Model
	focus      int
	formError  string
	saveError  string

	today  *domain.DailyStats
	width  int
	height int
}

// NewModel loads the stored settings and builds a stopped timer.
func NewModel(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := newBridge(opts.Notifier)
	app := services.NewApp(ctx, opts.Settings, b, b, logger)

	history := opts.History
	if history != nil {
		app.Timer.SetOnSwitch(func(sw domain.PhaseSwitch) {
			b.push(recordCmd(ctx, history, sw))
		})
	}

	return Model{
		ctx:        ctx,
		app:        app,
		bridge:     b,
		history:    history,
		logger:     logger,
		theme:      resolveTheme(opts.Theme),
		workInput:  newMinutesInput("27"),
		breakInput: newMinutesInput("3"),
	}
}

func newMinutesInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 3
	ti.Width = 5
	ti.Prompt = ""
	return ti
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.titleCmd()}
	if m.history != nil {
		cmds = append(cmds, todayCmd(m.ctx, m.history))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.bridge.accept(msg) {
			m.app.Timer.Tick()
			m.bridge.rearm(msg)
		}

	case historyMsg:
		if msg.err != nil {
			m.logger.Warn("phase history unavailable", "error", msg.err)
		} else if msg.stats != nil {
			m.today = msg.stats
		}

	case notifiedMsg:
		if msg.err != nil {
			m.logger.Warn("desktop notification failed", "error", msg.err)
		}

	case tea.MouseMsg:
		if m.view == viewMain && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.app.Toggle()
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == viewSettings {
			m, cmd = m.updateSettings(msg)
		} else {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case " ", "enter", "p":
				m.app.Toggle()
			case "r":
				m.app.Timer.Reset()
				m.bridge.notice = ""
			case "s":
				m.enterSettings()
				cmd = textinput.Blink
			}
		}
	}

	return m, m.flush(cmd)
}

func (m Model) updateSettings(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.enterMain()
		return m, nil
	case "enter":
		m.saveSettings()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.setFocus(1 - m.focus)
		return m, nil
	case "ctrl+p":
		work, brk := m.pendingFromInputs()
		next := services.NextPreset(work, brk)
		m.workInput.SetValue(strconv.Itoa(next.WorkMinutes))
		m.breakInput.SetValue(strconv.Itoa(next.BreakMinutes))
		m.app.Settings.SetPending(next.WorkMinutes, next.BreakMinutes)
		m.formError = ""
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldWork {
		m.workInput, cmd = m.workInput.Update(msg)
	} else {
		m.breakInput, cmd = m.breakInput.Update(msg)
	}
	m.app.Settings.SetPending(m.pendingFromInputs())
	return m, cmd
}

// enterSettings opens the settings view seeded from the committed
// durations. It does nothing if the view is already open, so pending edits
// survive a repeated request.
func (m *Model) enterSettings() {
	if m.view == viewSettings {
		return
	}
	work, brk := m.app.OpenSettings()
	m.workInput.SetValue(strconv.Itoa(work))
	m.breakInput.SetValue(strconv.Itoa(brk))
	m.formError = ""
	m.view = viewSettings
	m.setFocus(fieldWork)
}

// enterMain returns to the timer view and re-renders it. It does nothing
// if the main view is already showing.
func (m *Model) enterMain() {
	if m.view == viewMain {
		return
	}
	m.view = viewMain
	m.formError = ""
	m.workInput.Blur()
	m.breakInput.Blur()
	m.app.Timer.Refresh()
}

func (m *Model) setFocus(field int) {
	m.focus = field
	if field == fieldWork {
		m.breakInput.Blur()
		m.workInput.Focus()
		return
	}
	m.workInput.Blur()
	m.breakInput.Focus()
}

// pendingFromInputs parses the two fields. Text that is not a whole number
// maps to 0, which never validates.
func (m Model) pendingFromInputs() (work, brk int) {
	return parseMinutes(m.workInput.Value()), parseMinutes(m.breakInput.Value())
}

func parseMinutes(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func (m *Model) saveSettings() {
	work, brk := m.pendingFromInputs()
	err := m.app.SaveSettings(m.ctx, work, brk)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		m.formError = fmt.Sprintf("Enter valid durations (%s)", verr.Hint())
		return
	case err != nil:
		m.logger.Error("settings not saved", "error", err)
		m.saveError = "Settings applied but could not be saved"
	default:
		m.saveError = ""
	}
	m.enterMain()
}

// flush batches extra with the commands the timer queued and a window
// title update when the phase changed.
func (m Model) flush(extra tea.Cmd) tea.Cmd {
	cmds := m.bridge.drain()
	if extra != nil {
		cmds = append(cmds, extra)
	}
	if m.bridge.title != m.app.Timer.Snapshot().TrayTip() {
		cmds = append(cmds, m.titleCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) titleCmd() tea.Cmd {
	m.bridge.title = m.app.Timer.Snapshot().TrayTip()
	return tea.SetWindowTitle(m.bridge.title)
}

func recordCmd(ctx context.Context, history *services.HistoryService, sw domain.PhaseSwitch) tea.Cmd {
	return func() tea.Msg {
		if _, err := history.Record(ctx, sw); err != nil {
			return historyMsg{err: err}
		}
		stats, err := history.Today(ctx)
		return historyMsg{stats: stats, err: err}
	}
}

func todayCmd(ctx context.Context, history *services.HistoryService) tea.Cmd {
	return func() tea.Msg {
		stats, err := history.Today(ctx)
		return historyMsg{stats: stats, err: err}
	}
}

// View renders the current view.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	if m.view == viewSettings {
		sections = m.viewSettings()
	} else {
		sections = m.viewTimer()
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) timerColor(snap domain.Snapshot) lipgloss.Color {
	if !snap.Ticking() {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	if snap.Phase == domain.PhaseBreak {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorWork)
}

func (m Model) viewTimer() []string {
	snap := m.app.Timer.Snapshot()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(m.timerColor(snap))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorError))

	sections := []string{
		titleStyle.Render(domain.AppTitle),
		statusStyle.Render(m.bridge.status),
		"",
		renderBigTime(m.bridge.clock, m.timerColor(snap), m.width),
		"",
	}

	var pbar progress.Model
	if snap.Phase == domain.PhaseBreak {
		pbar = progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	} else {
		pbar = progress.New(progress.WithGradient(m.theme.WorkGradientStart, m.theme.WorkGradientEnd))
	}
	pbar.Width = max(m.width-4, 10)
	sections = append(sections, pbar.ViewAs(snap.Progress()))

	if m.bridge.notice != "" {
		sections = append(sections, "", statusStyle.Render(m.bridge.notice))
	}
	if m.today != nil {
		sections = append(sections, helpStyle.Render(fmt.Sprintf("Today: %d work · %d breaks · %s focused",
			m.today.WorkPhases, m.today.Breaks, m.today.TotalWorkTime)))
	}
	if m.saveError != "" {
		sections = append(sections, errorStyle.Render(m.saveError))
	}

	action := "start"
	if snap.Ticking() {
		action = "pause"
	}
	sections = append(sections, "", helpStyle.Render(fmt.Sprintf("[space] %s  [r]eset  [s]ettings  [q]uit", action)))
	return sections
}

func (m Model) viewSettings() []string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Width(16)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	errorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorError))

	sections := []string{
		titleStyle.Render("Settings"),
		labelStyle.Render("Work minutes") + m.workInput.View(),
		labelStyle.Render("Break minutes") + m.breakInput.View(),
	}
	if m.formError != "" {
		sections = append(sections, "", errorStyle.Render(m.formError))
	}
	sections = append(sections, "", helpStyle.Render("tab switch · enter save · ctrl+p preset · esc cancel"))
	return sections
}
