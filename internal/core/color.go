package core

// Color is the foreground color of a screen cell. The platform layer maps
// each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorWhite // wildcard blocks
	ColorGray  // borders, ghost text
	ColorCyan  // HUD labels
	ColorMagenta
)
