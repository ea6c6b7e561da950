package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbuster/internal/core"
)

// palette holds the terminal style of each core.Color, indexed by value.
// Block colors use the bright ANSI range so they match the menu logo.
var palette = [...]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
}

func styleOf(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns the cell buffer into terminal text. Each row is split
// into runs of one color so a style is rendered once per run, not per cell.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	var run []rune
	for y := range rows {
		var line strings.Builder
		run = run[:0]
		current := s.GetCell(0, y).Color
		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				line.WriteString(styleOf(current).Render(string(run)))
				run, current = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			line.WriteString(styleOf(current).Render(string(run)))
		}
		rows[y] = line.String()
	}
	return strings.Join(rows, "\n")
}
