package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbuster/internal/registry"
	"github.com/vovakirdan/blockbuster/internal/storage"
)

const (
	statsCardWidth = 24 // stats card beside the table
	wideLayoutMin  = 80 // narrower terminals put the stats under the table
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev preset")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next preset")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabActive    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	tabIdle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	cardLabel    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	emptyMessage = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	errorMessage = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
)

// ScoreboardModel shows the high-score table of one preset at a time.
type ScoreboardModel struct {
	presets []registry.Info
	current int
	store   *storage.Store

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	err    error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on gameID, or on the first preset
// when gameID is empty or unknown.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		presets: registry.List(),
		store:   store,
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		width:   width,
		height:  height,
	}
	for i, p := range m.presets {
		if p.ID == gameID {
			m.current = i
		}
	}
	m.help.Width = width
	m.table = newScoreTable(m.tableWidth(), height)
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= wideLayoutMin
}

// tableWidth is the room left for the table inside its pane.
func (m ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.wide() {
		w -= statsCardWidth + 6
	}
	return w
}

// newScoreTable builds the table for the available width. The date column
// is the first to go when space runs out.
func newScoreTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Name", Width: 16},
		{Title: "Played", Width: 12},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if width < used {
		columns = columns[:len(columns)-1]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableRows(height-9)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(s)
	return t
}

// tableRows clamps the table height between 3 rows and a full table.
func tableRows(avail int) int {
	return min(max(avail, 3), storage.DefaultSlots)
}

// reload fetches the table and stats of the current preset.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.presets) > 0 {
		id := m.presets[m.current].ID
		m.scores, m.err = m.store.TopScores(id, storage.DefaultSlots)
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Level),
			s.Name,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchPreset moves the tab cursor by delta, wrapping around.
func (m *ScoreboardModel) switchPreset(delta int) {
	if len(m.presets) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.presets)) % len(m.presets)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchPreset(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchPreset(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.tableWidth(), m.height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	parts := []string{
		"",
		centerText(boardTitle.Render("HIGH SCORES"), m.width),
		centerText(m.tabs(), m.width),
		"",
	}

	scores := paneStyle.Render(m.tableView())
	if m.wide() {
		card := paneStyle.Width(statsCardWidth).Render(m.statsCard())
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, scores, "  ", card)))
	} else {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scores))
		if line := m.statsLine(); line != "" {
			parts = append(parts, centerText(helpStyle.Render(line), m.width))
		}
	}

	parts = append(parts, "", helpStyle.Render(m.help.View(m.keys)))
	return strings.Join(parts, "\n")
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.presets))
	for i, p := range m.presets {
		if i == m.current {
			tabs[i] = tabActive.Render(p.Title)
		} else {
			tabs[i] = tabIdle.Render(p.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width && len(m.presets) > 0 {
		return tabActive.Render("‹ " + m.presets[m.current].Title + " ›")
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.err != nil:
		return errorMessage.Render("Could not load scores:\n" + m.err.Error())
	case m.store == nil:
		return emptyMessage.Render("High scores are off:\nno scores database.")
	case len(m.scores) == 0:
		return emptyMessage.Render("No scores recorded yet.\nFinish a game to claim the top slot!")
	}
	return m.table.View()
}

// statsCard lists the preset's totals, one label per line.
func (m ScoreboardModel) statsCard() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return cardLabel.Render("Stats") + "\n\nnothing yet"
	}
	rows := []struct{ label, value string }{
		{"Entries", strconv.Itoa(m.stats.GamesCount)},
		{"Best", strconv.Itoa(m.stats.HighScore)},
		{"Best level", strconv.Itoa(m.stats.BestLevel)},
		{"Average", fmt.Sprintf("%.0f", m.stats.AvgScore)},
		{"Last", m.stats.LastPlayed.Format("2006-01-02")},
	}
	var b strings.Builder
	b.WriteString(cardLabel.Render("Stats"))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%-11s %s", r.label, r.value)
	}
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d entries  best level %d  average %.0f  last %s",
		m.stats.GamesCount, m.stats.BestLevel, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02"))
}

// Preset returns the ID of the preset on screen.
func (m ScoreboardModel) Preset() string {
	if len(m.presets) == 0 {
		return ""
	}
	return m.presets[m.current].ID
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen opened on gameID.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, gameID, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
