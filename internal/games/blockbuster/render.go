package blockbuster

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/engine"
)

const (
	cellWidth = 2 // characters per board column
	panelGap  = 2
	panelW    = 18
)

// layoutSize returns the screen size the board, title and side panel need.
func (g *Game) layoutSize() (w, h int) {
	boardW := g.cfg.Width*cellWidth + 2
	boardH := g.cfg.Height + 2
	return boardW + panelGap + panelW, boardH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	w, h := g.layoutSize()
	origin := core.CenterIn(core.NewRect(0, 0, g.screenW, g.screenH), w, h)

	board := core.NewRect(origin.X, origin.Y+1, snap.Width*cellWidth+2, snap.Height+2)
	drawCentered(dst, core.NewRect(board.X, origin.Y, board.W, 1), g.title, core.ColorCyan)
	dst.DrawBox(board, core.ColorGray)
	g.renderBoard(dst, board.Inset(1), snap)

	panel := core.NewRect(board.Right()+panelGap, board.Y, panelW, board.H)
	g.renderPanel(dst, panel, snap)

	switch {
	case snap.GameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score %d", snap.Score)}
		if snap.Qualified {
			lines = append(lines, "New high score!")
		}
		drawOverlay(dst, board, append(lines, "R to restart")...)
	case snap.Paused:
		drawOverlay(dst, board, "PAUSED", "P to resume")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, g.screenW, g.screenH), core.ColorGray)
}

// renderBoard draws every block of the snapshot inside area.
func (g *Game) renderBoard(dst *core.Screen, area core.Rect, snap engine.Snapshot) {
	draw := func(blocks []engine.Block, glyph string) {
		for _, blk := range blocks {
			x := area.X + blk.Column*cellWidth
			y := area.Y + blk.Row
			dst.DrawTextColored(x, y, glyph, colorFor(blk.Color))
		}
	}
	draw(snap.Fixated, "██")
	draw(snap.Falling, "██")
	draw(snap.Controlled, "██")
	switch snap.Fade {
	case engine.FadeAccumulating:
		draw(snap.Fading, fadeGlyph(snap.FadeFraction))
	case engine.FadeComplete:
		draw(snap.Fading, fadeGlyph(1))
	}
}

// renderPanel draws the preview and the HUD.
func (g *Game) renderPanel(dst *core.Screen, panel core.Rect, snap engine.Snapshot) {
	y := panel.Y
	dst.DrawTextColored(panel.X, y, "NEXT", core.ColorCyan)
	y++

	size := g.cfg.PreviewSize
	preview := core.NewRect(panel.X, y, size*cellWidth+2, size+2)
	dst.DrawBox(preview, core.ColorGray)
	for r, row := range snap.Next {
		for c, color := range row {
			if color == engine.ColorEmpty || r >= size || c >= size {
				continue
			}
			dst.DrawTextColored(preview.X+1+c*cellWidth, preview.Y+1+r, "██", colorFor(color))
		}
	}
	y = preview.Bottom() + 1

	stats := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprintf("%d", snap.Score)},
		{"Level", fmt.Sprintf("%d", snap.Level)},
		{"Speed", fmt.Sprintf("%dms", snap.Interval)},
		{"Mulligans", mulliganMeter(snap.Mulligans, g.cfg.MulliganCount)},
	}
	for _, s := range stats {
		dst.DrawTextColored(panel.X, y, s.label, core.ColorCyan)
		dst.DrawText(panel.X, y+1, s.value)
		y += 3
	}
}

// colorFor maps block colors to screen colors.
func colorFor(c engine.Color) core.Color {
	switch c {
	case engine.ColorRed:
		return core.ColorRed
	case engine.ColorGreen:
		return core.ColorGreen
	case engine.ColorBlue:
		return core.ColorBlue
	case engine.ColorYellow:
		return core.ColorYellow
	case engine.ColorWildcard:
		return core.ColorWhite
	default:
		return core.ColorDefault
	}
}

// fadeGlyph gets lighter as the fade progresses.
func fadeGlyph(fraction float64) string {
	switch {
	case fraction < 1.0/3:
		return "▓▓"
	case fraction < 2.0/3:
		return "▒▒"
	default:
		return "░░"
	}
}

func mulliganMeter(left, total int) string {
	left = core.Clamp(left, 0, total)
	return strings.Repeat("●", left) + strings.Repeat("○", total-left)
}

// drawCentered writes text centered in area's first row.
func drawCentered(dst *core.Screen, area core.Rect, text string, c core.Color) {
	x := area.X + max((area.W-utf8.RuneCountInString(text))/2, 0)
	dst.DrawTextColored(x, area.Y, text, c)
}

// drawOverlay draws a boxed message centered over area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	box := core.CenterIn(area, width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorDefault)
	for i, line := range lines {
		drawCentered(dst, core.NewRect(box.X, box.Y+1+i, box.W, 1), line, core.ColorDefault)
	}
}
