package engine

// DirtyRegions lists the lines that must be rescanned for matches once the
// board settles. Each entry is recorded at most once per batch.
type DirtyRegions struct {
	Rows      []int
	Columns   []int
	NorthEast []Coord // seeds swept toward the upper right
	NorthWest []Coord // seeds swept toward the upper left
}

// Empty reports whether nothing is queued.
func (d *DirtyRegions) Empty() bool {
	return len(d.Rows) == 0 && len(d.Columns) == 0 && len(d.NorthEast) == 0 && len(d.NorthWest) == 0
}

// Reset clears every queued region.
func (d *DirtyRegions) Reset() {
	d.Rows = d.Rows[:0]
	d.Columns = d.Columns[:0]
	d.NorthEast = d.NorthEast[:0]
	d.NorthWest = d.NorthWest[:0]
}

// markFixation queues the row, column and both diagonals through c. A
// diagonal is seeded from its far end: walking south-west to the edge gives
// the start of the north-east sweep, walking south-east the north-west one.
func (d *DirtyRegions) markFixation(c Coord, width, height int) {
	d.Rows = appendUniqueInt(d.Rows, c.Row)
	d.Columns = appendUniqueInt(d.Columns, c.Col)

	below := height - 1 - c.Row
	sw := min(c.Col, below)
	d.NorthEast = appendUniqueCoord(d.NorthEast, c.Add(-sw, sw))
	se := min(width-1-c.Col, below)
	d.NorthWest = appendUniqueCoord(d.NorthWest, c.Add(se, se))
}

// Advance moves every block of registry r (falling or controlled) one row
// down, bottom-most first. A block whose next cell is off the board or
// settled is fixated and its lines are queued in dirty. It returns whether
// any block collided.
//
// Blocks never share a cell: a falling block resting on the controlled piece
// waits for it to move, and a controlled block resting on a falling block
// collides.
func (b *Board) Advance(r Registry, dirty *DirtyRegions) bool {
	list := b.list(r)
	if list == nil {
		return false
	}
	sortBottomUp(*list)

	collided := false
	moving := (*list)[:0]
	for _, blk := range *list {
		from := blk.Coord()
		below := from.Add(0, 1)

		switch occupant := b.At(below); {
		case b.IsVacant(below) && occupant == RegistryNone:
			b.occupancy.Del(b.key(from))
			blk.Row++
			b.occupancy.Put(b.key(below), r)
			moving = append(moving, blk)
		case r == RegistryFalling && (occupant == RegistryControlled || occupant == RegistryFalling):
			moving = append(moving, blk)
		default:
			b.fixated = append(b.fixated, blk)
			b.occupancy.Put(b.key(from), RegistryFixated)
			dirty.markFixation(from, b.width, b.height)
			collided = true
		}
	}
	*list = moving
	return collided
}

// shiftControlled translates the controlled piece by dx columns if every
// destination is vacant and not falling. Nothing moves otherwise.
func (b *Board) shiftControlled(dx int) bool {
	if len(b.controlled) == 0 {
		return false
	}
	for _, blk := range b.controlled {
		dest := blk.Coord().Add(dx, 0)
		if !b.IsVacant(dest) || b.IsFalling(dest) {
			return false
		}
	}
	for _, blk := range b.controlled {
		b.occupancy.Del(b.key(blk.Coord()))
	}
	for i := range b.controlled {
		b.controlled[i].Column += dx
		b.occupancy.Put(b.key(b.controlled[i].Coord()), RegistryControlled)
	}
	return true
}

// replaceControlled swaps the controlled piece for blocks. Cells that are
// not vacant are skipped.
func (b *Board) replaceControlled(blocks []Block) {
	b.removeAll(RegistryControlled)
	for _, blk := range blocks {
		c := blk.Coord()
		if !b.IsVacant(c) || b.IsFalling(c) {
			continue
		}
		b.add(RegistryControlled, blk)
	}
}

func appendUniqueInt(values []int, v int) []int {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

func appendUniqueCoord(values []Coord, v Coord) []Coord {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
