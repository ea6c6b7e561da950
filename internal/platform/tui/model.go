package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbuster/internal/config"
	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/registry"
	"github.com/vovakirdan/blockbuster/internal/storage"
)

// Services are the collaborators shared by every screen.
type Services struct {
	Store    *storage.Store // nil disables high scores
	Bindings config.Bindings
	Logger   *log.Logger
	Player   string // name offered when a high score is entered
}

func (s Services) withDefaults() Services {
	if s.Bindings == nil {
		s.Bindings = config.DefaultBindings()
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	return s
}

// resizer is implemented by games that can follow the terminal size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

type phase int

const (
	phasePlaying phase = iota
	phaseNameEntry
)

const nameLimit = 16

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	nameInput  textinput.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	entry      core.ScoreRecord // score waiting for a name
	sessionID  string
	phase      phase
	quitting   bool
	backToMenu bool
	exitOnBack bool // standalone runs leave the program on back
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	svc = svc.withDefaults()

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = nameLimit
	ti.Width = nameLimit

	m := Model{
		game:       game,
		svc:        svc,
		config:     cfg,
		keys:       NewKeyMapper(svc.Bindings),
		help:       help.New(),
		nameInput:  ti,
		inputFrame: core.NewInputFrame(),
		sessionID:  storage.NewSessionID(),
	}
	m.help.Width = cfg.ScreenW
	rc := m.runtimeConfig()
	m.screen = core.NewScreen(rc.ScreenW, rc.ScreenH)
	return m
}

// runtimeConfig is the config handed to the game: one row is kept for the
// help line and the current high-score table is attached.
func (m Model) runtimeConfig() core.RuntimeConfig {
	rc := m.config
	rc.ScreenH = max(rc.ScreenH-1, 1)
	rc.HighScores = m.highScores()
	return rc
}

func (m Model) highScores() []core.ScoreRecord {
	if m.svc.Store == nil {
		return nil
	}
	entries, err := m.svc.Store.TopScores(m.game.ID(), storage.DefaultSlots)
	if err != nil {
		m.svc.Logger.Warn("could not load high scores", "game", m.game.ID(), "error", err)
		return nil
	}
	return storage.Records(entries)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	if err := m.game.Reset(m.runtimeConfig()); err != nil {
		m.svc.Logger.Error("could not start game", "game", m.game.ID(), "error", err)
		return tea.Quit
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.phase == phaseNameEntry {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.phase == phaseNameEntry {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if (m.gameState.GameOver || m.gameState.Paused) && key.Matches(msg, m.keys.Keys().Back) {
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleNameKey feeds the name input until it is confirmed or skipped.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.saveScore(m.nameInput.Value())
		m.endNameEntry()
		return m, nil
	case tea.KeyEsc:
		m.endNameEntry()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) endNameEntry() {
	m.nameInput.Blur()
	m.phase = phasePlaying
	m.inputFrame.Clear()
}

func (m *Model) saveScore(name string) {
	if m.svc.Store == nil {
		return
	}
	rec := m.entry
	rec.Name = name
	if _, err := m.svc.Store.SaveScore(m.game.ID(), rec, m.sessionID); err != nil {
		m.svc.Logger.Error("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.svc.Logger.Info("score saved", "game", m.game.ID(), "score", rec.Score, "name", storage.SanitizeName(name))
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(msg.Height-1, 1)
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, h)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.phase == phaseNameEntry {
		return m, tickCmd(m.config.TickRate)
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	var cmd tea.Cmd
	if result.Entry != nil && m.svc.Store != nil {
		cmd = m.beginNameEntry(*result.Entry)
	}
	return m, tea.Batch(cmd, tickCmd(m.config.TickRate))
}

// beginNameEntry switches to the name prompt for a qualifying score.
func (m *Model) beginNameEntry(rec core.ScoreRecord) tea.Cmd {
	m.entry = rec
	m.phase = phaseNameEntry
	m.nameInput.SetValue(m.svc.Player)
	m.nameInput.CursorEnd()
	return m.nameInput.Focus()
}

// restart begins a new session with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.sessionID = storage.NewSessionID()
	if err := m.game.Reset(m.runtimeConfig()); err != nil {
		m.svc.Logger.Error("could not restart game", "game", m.game.ID(), "error", err)
	}
	m.gameState = m.game.State()
	m.entry = core.ScoreRecord{}
	m.inputFrame.Clear()
}

var (
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	entryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	entryBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("229")).Padding(1, 3)
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.phase == phaseNameEntry {
		body = m.nameEntryView()
	} else {
		m.game.Render(m.screen)
		body = RenderScreen(m.screen)
	}
	return body + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

func (m Model) nameEntryView() string {
	content := strings.Join([]string{
		entryTitle.Render("NEW HIGH SCORE"),
		"",
		fmt.Sprintf("Score %d  Level %d", m.entry.Score, m.entry.Level),
		"",
		m.nameInput.View(),
		"",
		helpStyle.Render("enter save  esc skip"),
	}, "\n")
	return lipgloss.Place(m.screen.Width(), m.screen.Height(),
		lipgloss.Center, lipgloss.Center, entryBox.Render(content))
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last state the game reported.
func (m Model) State() core.GameState {
	return m.gameState
}

// Result reports how a standalone run ended.
type Result struct {
	BackToMenu bool
	Score      int
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) (Result, error) {
	model := NewModel(game, svc, cfg)
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{BackToMenu: m.backToMenu, Score: m.gameState.Score}, nil
}
