package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/registry"
	"github.com/vovakirdan/blockbuster/internal/storage"
)

// MenuItem is one registered preset with its best score.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	HighScore   int
}

// MenuModel picks a preset to play or opens the scoreboard. It quits the
// program on any choice; callers read the outcome through the accessors.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig

	selected   *MenuItem
	wantScores bool
	quitting   bool
}

// NewMenuModel lists the registered presets with the cursor on lastID.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, lastID string) MenuModel {
	m := MenuModel{config: cfg}
	for _, info := range registry.List() {
		if info.ID == lastID {
			m.cursor = len(m.items)
		}
		m.items = append(m.items, MenuItem{
			GameID:      info.ID,
			Title:       info.Title,
			Description: info.Description,
			HighScore:   bestScore(store, info.ID),
		})
	}
	return m
}

// bestScore reads the top score, treating a missing store or a read error
// as no score.
func bestScore(store *storage.Store, gameID string) int {
	if store == nil {
		return 0
	}
	high, err := store.HighScore(gameID)
	if err != nil {
		return 0
	}
	return high
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		switch MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case MenuActionSelect:
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		case MenuActionScoreboard:
			m.wantScores = true
			return m, tea.Quit
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	logoStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	itemStyle  = lipgloss.NewStyle().Padding(0, 2)
	focusStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("212"))
	bestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// logoColors paints the title one letter per block color.
var logoColors = []string{"9", "10", "12", "11"}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{"", m.logo(), "", "Select a preset", ""}
	for i, item := range m.items {
		row := fmt.Sprintf("%-22s %s", item.Title, bestStyle.Render(fmt.Sprintf("best %6d", item.HighScore)))
		if i == m.cursor {
			lines = append(lines, focusStyle.Render("▸ "+row))
		} else {
			lines = append(lines, itemStyle.Render("  "+row))
		}
	}
	if len(m.items) > 0 {
		lines = append(lines, "", helpStyle.Render(m.items[m.cursor].Description))
	}
	lines = append(lines, "", helpStyle.Render("↑/↓ choose • enter play • tab scores • q quit"))

	width := m.config.ScreenW
	for i, line := range lines {
		lines[i] = centerText(line, width)
	}
	return strings.Join(lines, "\n")
}

func (m MenuModel) logo() string {
	var b strings.Builder
	for i, r := range "BLOCKBUSTER" {
		style := logoStyle.Foreground(lipgloss.Color(logoColors[i%len(logoColors)]))
		b.WriteString(style.Render(string(r)))
		b.WriteString(" ")
	}
	return strings.TrimSuffix(b.String(), " ")
}

// Selected returns the chosen preset, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.wantScores
}

// Cursor returns the highlighted preset ID.
func (m MenuModel) Cursor() string {
	if len(m.items) == 0 {
		return ""
	}
	return m.items[m.cursor].GameID
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads a single line to sit in the middle of width cells.
func centerText(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// MenuResult is the outcome of a standalone menu run.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu until the user picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, lastID string) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, lastID), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{GameID: m.Cursor(), Config: m.Config(), WantsScoreboard: m.WantsScoreboard()}
	switch {
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	case !res.WantsScoreboard:
		res.Quit = true
	}
	return res, nil
}
