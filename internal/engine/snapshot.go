package engine

// Snapshot is everything a renderer needs from a session.
type Snapshot struct {
	Width  int
	Height int

	Fixated    []Block
	Falling    []Block
	Controlled []Block
	Fading     []Block

	Next         Template
	Fade         FadeState
	FadeFraction float64
	Anchor       Coord

	Score     int
	Level     int
	Interval  int
	Mulligans int
	Paused    bool
	GameOver  bool
	Qualified bool
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Width:        s.board.width,
		Height:       s.board.height,
		Fixated:      s.board.Fixated(),
		Falling:      s.board.Falling(),
		Controlled:   s.board.Controlled(),
		Fading:       s.board.Fading(),
		Next:         s.next.Clone(),
		Fade:         s.fade.State(s.board),
		FadeFraction: s.fade.Fraction(),
		Anchor:       s.anchor,
		Score:        s.score,
		Level:        s.level,
		Interval:     s.interval,
		Mulligans:    s.mulligans,
		Paused:       s.paused,
		GameOver:     s.gameOver,
		Qualified:    s.qualified,
	}
}

// Grid returns the snapshot as rows of colors, moving and fading blocks
// included.
func (s Snapshot) Grid() [][]Color {
	grid := make([][]Color, s.Height)
	for r := range grid {
		grid[r] = make([]Color, s.Width)
	}
	for _, list := range [][]Block{s.Fixated, s.Falling, s.Controlled, s.Fading} {
		for _, blk := range list {
			if blk.Row >= 0 && blk.Row < s.Height && blk.Column >= 0 && blk.Column < s.Width {
				grid[blk.Row][blk.Column] = blk.Color
			}
		}
	}
	return grid
}
