package engine

// direction is a scan step.
type direction struct {
	dc, dr int
}

var (
	scanRight     = direction{1, 0}
	scanDown      = direction{0, 1}
	scanNorthEast = direction{1, -1}
	scanNorthWest = direction{-1, -1}
)

func (d direction) reverse() direction {
	return direction{-d.dc, -d.dr}
}

// colorGrid is an immutable picture of the fixated colors taken before a
// match batch.
type colorGrid struct {
	width  int
	height int
	cells  []Color
}

func (b *Board) colorGrid() colorGrid {
	g := colorGrid{width: b.width, height: b.height, cells: make([]Color, b.width*b.height)}
	for _, blk := range b.fixated {
		g.cells[blk.Row*b.width+blk.Column] = blk.Color
	}
	return g
}

func (g colorGrid) inBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

func (g colorGrid) at(c Coord) Color {
	return g.cells[c.Row*g.width+c.Col]
}

// streak accumulates one run while a line is walked.
type streak struct {
	cells    []Coord
	color    Color // ColorEmpty until a non-wildcard cell commits it
	wildcard bool  // a wildcard was seen anywhere on this pass
	last     Coord // last coordinate visited
}

// matcher promotes qualifying streaks to the fading registry.
type matcher struct {
	board   *Board
	grid    colorGrid
	minRun  int
	matched int
}

// flush fades the accumulated cells when the run is long enough and has a
// committed color, then starts a new run.
func (m *matcher) flush(s *streak) {
	if len(s.cells) >= m.minRun && s.color != ColorEmpty {
		for _, c := range s.cells {
			if m.board.migrate(c, RegistryFixated, RegistryFading) {
				m.matched++
			}
		}
	}
	s.cells = s.cells[:0]
}

// scan walks from start in dir until it leaves the board. When the pass met
// a wildcard it is repeated backward from the last visited cell, so a
// wildcard bridging two colors is tried against both neighbors.
func (m *matcher) scan(start Coord, dir direction) {
	s := m.walk(start, dir)
	if s.wildcard {
		m.walk(s.last, dir.reverse())
	}
}

func (m *matcher) walk(start Coord, dir direction) streak {
	s := streak{last: start}
	for c := start; m.grid.inBounds(c); c = c.Add(dir.dc, dir.dr) {
		s.last = c
		color := m.grid.at(c)
		if color == ColorEmpty {
			m.flush(&s)
			s.color = ColorEmpty
			continue
		}
		if color == ColorWildcard {
			s.wildcard = true
		} else if s.color == ColorEmpty {
			s.color = color
		} else if s.color != color {
			m.flush(&s)
			s.color = color
		}
		s.cells = append(s.cells, c)
	}
	m.flush(&s)
	return s
}

// CollectMatches scans every dirty region against a snapshot of the fixated
// colors, moves streaks of at least minRun cells to the fading registry and
// clears dirty. It returns the number of blocks that started fading.
func (b *Board) CollectMatches(dirty *DirtyRegions, minRun int) int {
	m := &matcher{board: b, grid: b.colorGrid(), minRun: minRun}

	for _, seed := range dirty.NorthEast {
		m.scan(seed, scanNorthEast)
	}
	for _, seed := range dirty.NorthWest {
		m.scan(seed, scanNorthWest)
	}
	for _, row := range dirty.Rows {
		m.scan(C(0, row), scanRight)
	}
	for _, col := range dirty.Columns {
		m.scan(C(col, 0), scanDown)
	}

	dirty.Reset()
	return m.matched
}
