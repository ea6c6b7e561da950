package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/registry"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenScores
	screenGame
)

// SessionModel chains the menu, the scoreboard and the game inside one
// program, for SSH visitors who cannot be dropped back to a shell between
// screens. Quit commands of the inner screens are swallowed on transitions.
type SessionModel struct {
	svc    Services
	env    registry.Env
	config core.RuntimeConfig

	current    screenKind
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  Model
	lastID     string
	quitting   bool
}

// NewSessionModel starts a visitor on the menu.
func NewSessionModel(svc Services, env registry.Env, cfg core.RuntimeConfig) SessionModel {
	svc = svc.withDefaults()
	return SessionModel{
		svc:    svc,
		env:    env,
		config: cfg,
		menu:   NewMenuModel(svc.Store, cfg, ""),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update forwards msg to the active screen and handles screen changes.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch m.current {
	case screenGame:
		next, cmd := m.gameModel.Update(msg)
		m.gameModel = next.(Model)
		switch {
		case m.gameModel.IsQuitting():
			return m.quit()
		case m.gameModel.BackToMenu():
			return m.showMenu()
		}
		return m, cmd

	case screenScores:
		next, cmd := m.scoreboard.Update(msg)
		m.scoreboard = next.(ScoreboardModel)
		switch {
		case m.scoreboard.IsQuitting():
			return m.quit()
		case m.scoreboard.IsGoingBack():
			m.lastID = m.scoreboard.Preset()
			return m.showMenu()
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		m.current = screenScores
		m.scoreboard = NewScoreboardModel(m.svc.Store, m.menu.Cursor(), m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()
	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

// startGame creates the preset with a fresh seed. A preset that fails to
// build leaves the visitor on the menu.
func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	m.lastID = id
	game, err := registry.Create(id, m.env)
	if err != nil {
		m.svc.Logger.Error("could not create game", "game", id, "error", err)
		return m.showMenu()
	}

	rc := m.config
	rc.Seed = time.Now().UnixNano()
	m.current = screenGame
	m.gameModel = NewModel(game, m.svc, rc)
	return m, m.gameModel.Init()
}

func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.svc.Store, m.config, m.lastID)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.current == screenGame:
		return m.gameModel.View()
	case m.current == screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
