// Package engine implements the blockbuster board simulation: block
// registries, piece generation, gravity, color-match detection, fade-out
// cascades and the session controller that ties them to elapsed time.
//
// The package is UI-agnostic. Renderers read a Snapshot; input shells call
// the command methods on Session.
package engine

import "fmt"

// Color is the color of a block. The zero value is the empty background.
type Color uint8

const (
	ColorEmpty Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorWildcard
)

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case ColorEmpty:
		return "empty"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Char returns a single character for ASCII dumps and tests.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorWildcard:
		return 'W'
	default:
		return '.'
	}
}

// BaseColors returns the colors that can define a streak.
func BaseColors() []Color {
	return []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}
}

// Coord is a board position. Col grows to the right, Row grows downward.
type Coord struct {
	Col int
	Row int
}

// C is a convenience constructor for Coord.
func C(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// Add returns the coordinate offset by (dc, dr).
func (c Coord) Add(dc, dr int) Coord {
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Block is one occupied cell. It is a plain value; which registry holds it
// decides whether it is fixated, falling, controlled or fading.
type Block struct {
	Color  Color
	Column int
	Row    int
}

// Coord returns the block position.
func (b Block) Coord() Coord {
	return Coord{Col: b.Column, Row: b.Row}
}
