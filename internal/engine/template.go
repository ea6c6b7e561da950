package engine

import "strings"

// Shape is a piece outline. Each string is one row; '1' marks a populated cell.
type Shape []string

// DefaultShapes returns the piece catalog.
func DefaultShapes() []Shape {
	return []Shape{
		{"011", "010", "010"},
		{"010", "111"},
		{"110", "011"},
		{"11", "11"},
	}
}

// Template is a colorized piece. Rows are indexed first; ColorEmpty marks an
// unpopulated cell.
type Template [][]Color

// Height returns the number of rows.
func (t Template) Height() int {
	return len(t)
}

// Width returns the number of columns.
func (t Template) Width() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Rotate returns the template turned a quarter turn: transpose, then reverse
// the row order. Colors stay attached to their cells.
func (t Template) Rotate() Template {
	h, w := t.Height(), t.Width()
	out := make(Template, w)
	for r := 0; r < w; r++ {
		out[r] = make([]Color, h)
		for c := 0; c < h; c++ {
			out[r][c] = t[c][r]
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Blocks places the populated cells with the top-left corner at anchor.
func (t Template) Blocks(anchor Coord) []Block {
	var blocks []Block
	for r, row := range t {
		for c, color := range row {
			if color == ColorEmpty {
				continue
			}
			blocks = append(blocks, Block{Color: color, Column: anchor.Col + c, Row: anchor.Row + r})
		}
	}
	return blocks
}

// Equal reports whether two templates have the same cells and colors.
func (t Template) Equal(other Template) bool {
	if t.Height() != other.Height() || t.Width() != other.Width() {
		return false
	}
	for r := range t {
		for c := range t[r] {
			if t[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (t Template) Clone() Template {
	out := make(Template, len(t))
	for r := range t {
		out[r] = append([]Color(nil), t[r]...)
	}
	return out
}

func (t Template) String() string {
	var b strings.Builder
	for r, row := range t {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, color := range row {
			b.WriteRune(color.Char())
		}
	}
	return b.String()
}

// SpawnAreaAvailable reports whether every populated cell of t placed at
// anchor is on the board, vacant and not taken by a falling block.
func (b *Board) SpawnAreaAvailable(t Template, anchor Coord) bool {
	for _, blk := range t.Blocks(anchor) {
		c := blk.Coord()
		if !b.IsVacant(c) || b.IsFalling(c) {
			return false
		}
	}
	return true
}
