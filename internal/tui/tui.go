// Package tui provides a Bubble Tea terminal user interface for
// lutris-art-fetcher.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/handiism/lutris-art-fetcher/internal/config"
	"github.com/handiism/lutris-art-fetcher/internal/download"
	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// Screen is the active page of the UI.
type Screen int

const (
	ScreenAPIKey Screen = iota
	ScreenCategories
	ScreenGames
	ScreenDownloading
	ScreenDone
)

const (
	maxLogEntries = 200
	pageSize      = 10
)

// LogLevel is the severity of a line in the on-screen log.
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelOK
	LevelWarn
	LevelError
)

// LogEntry is one line of the on-screen log.
type LogEntry struct {
	Level   LogLevel
	Message string
}

// Options wires the UI to the rest of the program.
type Options struct {
	Settings   *config.Settings
	ConfigPath string
	Games      []model.Game

	// Categories is the initial selection of the category picker.
	Categories []model.AssetCategory
	Force      bool
	Layout     download.Layout

	// Validate checks an API key against SteamGridDB.
	Validate func(ctx context.Context, apiKey string) (bool, error)

	// NewRemote builds the catalog client used for a run.
	NewRemote func(apiKey string) download.Remote

	Log logrus.FieldLogger
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	opts     Options
	screen   Screen
	showHelp bool

	keyInput   textinput.Model
	keyErr     string
	validating bool

	catCursor int
	selected  map[model.AssetCategory]bool

	entries  []model.GameEntry
	cursor   int
	existing int

	spinner  spinner.Model
	progress progress.Model
	logs     []LogEntry

	manager   *download.Manager
	events    <-chan model.ProgressEvent
	current   int
	total     int
	startedAt time.Time
	elapsed   time.Duration
	stats     download.Stats

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model. Without an API key it opens on the key
// entry screen, otherwise on the category picker.
func NewModel(opts Options) Model {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	ti := textinput.New()
	ti.Placeholder = "SteamGridDB API key"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 128
	ti.Width = 48
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	selected := make(map[model.AssetCategory]bool)
	for _, c := range opts.Categories {
		selected[c] = true
	}

	screen := ScreenCategories
	if opts.Settings.APIKey == "" {
		screen = ScreenAPIKey
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		opts:     opts,
		screen:   screen,
		keyInput: ti,
		selected: selected,
		entries:  model.NewGameEntries(opts.Games),
		spinner:  sp,
		progress: prog,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Screen returns the active screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Message types
type (
	// KeyValidatedMsg carries the result of an API key check.
	KeyValidatedMsg struct {
		Key   string
		Valid bool
		Err   error
	}

	// ProgressMsg is sent for every pipeline event.
	ProgressMsg struct {
		Event model.ProgressEvent
	}

	// RunDoneMsg is sent once the event stream is closed.
	RunDoneMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case KeyValidatedMsg:
		return m.handleKeyValidated(msg), nil

	case ProgressMsg:
		return m.handleProgress(msg.Event)

	case RunDoneMsg:
		m.finish()
		return m, nil
	}

	if m.screen == ScreenAPIKey {
		var cmd tea.Cmd
		m.keyInput, cmd = m.keyInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "?" && m.screen != ScreenAPIKey {
		m.showHelp = true
		return m, nil
	}

	switch m.screen {
	case ScreenAPIKey:
		return m.handleAPIKeyKey(msg)
	case ScreenCategories:
		return m.handleCategoryKey(msg)
	case ScreenGames:
		return m.handleGameKey(msg)
	case ScreenDownloading:
		switch msg.String() {
		case "q", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case ScreenDone:
		switch msg.String() {
		case "q", "esc", "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleAPIKeyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.validating {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		key := strings.TrimSpace(m.keyInput.Value())
		if key == "" {
			m.keyErr = "API key cannot be empty"
			return m, nil
		}
		m.validating = true
		m.keyErr = ""
		return m, m.validateKey(key)
	}

	m.keyErr = ""
	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m Model) handleKeyValidated(msg KeyValidatedMsg) Model {
	m.validating = false

	if msg.Err != nil || !msg.Valid {
		reason := "API key rejected by SteamGridDB"
		if msg.Err != nil {
			reason = msg.Err.Error()
		}
		m.keyErr = "Invalid key: " + reason
		m.keyInput.SetValue("")
		return m
	}

	m.opts.Settings.APIKey = msg.Key
	if m.opts.ConfigPath != "" {
		if err := m.opts.Settings.Save(m.opts.ConfigPath); err != nil {
			m.opts.Log.WithError(err).Warn("could not save config")
			m.addLog(LevelWarn, fmt.Sprintf("Could not save config: %v", err))
		}
	}
	m.addLog(LevelOK, "API key validated and saved")
	m.screen = ScreenCategories
	return m
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := model.AllCategories()

	switch msg.String() {
	case "up", "k":
		m.catCursor = max(m.catCursor-1, 0)
	case "down", "j":
		m.catCursor = min(m.catCursor+1, len(all)-1)
	case " ":
		c := all[m.catCursor]
		m.selected[c] = !m.selected[c]
	case "a":
		allOn := len(m.selectedCategories()) == len(all)
		for _, c := range all {
			m.selected[c] = !allOn
		}
	case "enter":
		if cats := m.selectedCategories(); len(cats) > 0 {
			m.existing = m.countExisting(cats)
			m.screen = ScreenGames
		}
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.entries) - 1

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	}
	if last < 0 {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, last)
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = last
	case "pgup":
		m.cursor = max(m.cursor-pageSize, 0)
	case "pgdown":
		m.cursor = min(m.cursor+pageSize, last)
	case "enter":
		return m.startDownloads()
	}
	return m, nil
}

// startDownloads builds the manager and switches to the progress screen.
func (m Model) startDownloads() (tea.Model, tea.Cmd) {
	cats := m.selectedCategories()
	remote := m.opts.NewRemote(m.opts.Settings.APIKey)

	mgr, err := download.NewManager(remote, m.opts.Layout, m.opts.Settings.ToOptions(cats, m.opts.Force), m.opts.Log)
	if err != nil {
		m.addLog(LevelError, err.Error())
		return m, nil
	}

	m.manager = mgr
	m.events = mgr.Start(m.ctx, m.opts.Games)
	m.screen = ScreenDownloading
	m.current = 0
	m.total = len(m.entries) * len(cats)
	m.startedAt = time.Now()

	return m, tea.Batch(waitForEvent(m.events), m.spinner.Tick)
}

func (m Model) handleProgress(ev model.ProgressEvent) (tea.Model, tea.Cmd) {
	if ev.GameIndex < 0 || ev.GameIndex >= len(m.entries) {
		return m, waitForEvent(m.events)
	}

	entry := &m.entries[ev.GameIndex]
	entry.SetStatus(ev.Category, ev.Status)
	m.logProgress(entry.Game, ev)

	cmds := []tea.Cmd{waitForEvent(m.events)}
	if ev.Status.IsTerminal() {
		m.current++
		cmds = append(cmds, m.progress.SetPercent(m.percent()))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) finish() {
	if m.manager != nil {
		m.stats = m.manager.Stats()
	}
	m.elapsed = time.Since(m.startedAt)
	m.screen = ScreenDone
	m.events = nil
}

func (m *Model) logProgress(game model.Game, ev model.ProgressEvent) {
	name := game.Name
	if name == "" {
		name = game.Slug
	}

	switch ev.Status.Kind {
	case model.StatusSearching:
		m.addLog(LevelInfo, fmt.Sprintf("Searching for %s (%s)...", name, ev.Category))
	case model.StatusDownloading:
		m.addLog(LevelInfo, fmt.Sprintf("Downloading %s for %s...", ev.Category, name))
	case model.StatusDone:
		m.addLog(LevelOK, fmt.Sprintf("%s: %s saved to %s", name, ev.Category, ev.Status.Path))
	case model.StatusSkipped:
		m.addLog(LevelInfo, fmt.Sprintf("%s: %s skipped: %s", name, ev.Category, ev.Status.Message))
	case model.StatusFailed:
		m.addLog(LevelError, fmt.Sprintf("%s: %s failed: %s", name, ev.Category, ev.Status.Message))
	}
}

func (m *Model) addLog(level LogLevel, message string) {
	m.logs = append(m.logs, LogEntry{Level: level, Message: message})
	if len(m.logs) > maxLogEntries {
		m.logs = m.logs[len(m.logs)-maxLogEntries:]
	}
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.current) / float64(m.total)
}

// selectedCategories returns the selection in canonical order.
func (m Model) selectedCategories() []model.AssetCategory {
	var cats []model.AssetCategory
	for _, c := range model.AllCategories() {
		if m.selected[c] {
			cats = append(cats, c)
		}
	}
	return cats
}

func (m Model) validateKey(key string) tea.Cmd {
	validate := m.opts.Validate
	ctx := m.ctx
	return func() tea.Msg {
		valid, err := validate(ctx, key)
		return KeyValidatedMsg{Key: key, Valid: valid, Err: err}
	}
}

func waitForEvent(events <-chan model.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return RunDoneMsg{}
		}
		return ProgressMsg{Event: ev}
	}
}

// Run starts the TUI application.
func Run(opts Options) error {
	m := NewModel(opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
