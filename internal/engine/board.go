package engine

import (
	"sort"

	"github.com/kamstrup/intmap"
)

// Registry names the collection a block currently belongs to.
type Registry uint8

const (
	RegistryNone Registry = iota
	RegistryFixated
	RegistryFalling
	RegistryControlled
	RegistryFading
)

func (r Registry) String() string {
	switch r {
	case RegistryFixated:
		return "fixated"
	case RegistryFalling:
		return "falling"
	case RegistryControlled:
		return "controlled"
	case RegistryFading:
		return "fading"
	default:
		return "none"
	}
}

// Board is a fixed-size grid described by block registries rather than a
// dense cell array. The occupancy index mirrors the registries so every
// cell query is O(1); it is updated on every registry change.
type Board struct {
	width  int
	height int

	fixated    []Block
	falling    []Block
	controlled []Block
	fading     []Block

	occupancy *intmap.Map[int, Registry]
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	return &Board{
		width:     width,
		height:    height,
		occupancy: intmap.New[int, Registry](width * height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// key converts a coordinate to its row-major cell index.
func (b *Board) key(c Coord) int {
	return c.Row*b.width + c.Col
}

// IsWithinBounds reports whether c lies on the board.
func (b *Board) IsWithinBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < b.width && c.Row >= 0 && c.Row < b.height
}

// At returns the registry holding the block at c, or RegistryNone.
func (b *Board) At(c Coord) Registry {
	if !b.IsWithinBounds(c) {
		return RegistryNone
	}
	r, ok := b.occupancy.Get(b.key(c))
	if !ok {
		return RegistryNone
	}
	return r
}

// IsVacant reports whether c is on the board and not held by a settled
// block. Fading blocks are settled until their fade completes. Falling and
// controlled blocks do not make a cell non-vacant; callers that care check
// IsFalling and IsControlled.
func (b *Board) IsVacant(c Coord) bool {
	if !b.IsWithinBounds(c) {
		return false
	}
	r := b.At(c)
	return r != RegistryFixated && r != RegistryFading
}

// IsFalling reports whether a falling block occupies c.
func (b *Board) IsFalling(c Coord) bool {
	return b.At(c) == RegistryFalling
}

// IsControlled reports whether a block of the controlled piece occupies c.
func (b *Board) IsControlled(c Coord) bool {
	return b.At(c) == RegistryControlled
}

// FindFixatedAbove returns the fixated blocks in c's column with a smaller
// row index than c.
func (b *Board) FindFixatedAbove(c Coord) []Block {
	if c.Col < 0 || c.Col >= b.width {
		return nil
	}
	var found []Block
	for _, blk := range b.fixated {
		if blk.Column == c.Col && blk.Row < c.Row {
			found = append(found, blk)
		}
	}
	return found
}

// Fixated returns a copy of the fixated registry.
func (b *Board) Fixated() []Block { return cloneBlocks(b.fixated) }

// Falling returns a copy of the falling registry.
func (b *Board) Falling() []Block { return cloneBlocks(b.falling) }

// Controlled returns a copy of the controlled registry.
func (b *Board) Controlled() []Block { return cloneBlocks(b.controlled) }

// Fading returns a copy of the fading registry.
func (b *Board) Fading() []Block { return cloneBlocks(b.fading) }

// HasMovers reports whether any falling or controlled block exists.
func (b *Board) HasMovers() bool {
	return len(b.falling) > 0 || len(b.controlled) > 0
}

// HasFading reports whether a fade batch is in progress.
func (b *Board) HasFading() bool {
	return len(b.fading) > 0
}

// ColorAt returns the color of whatever block occupies c.
func (b *Board) ColorAt(c Coord) Color {
	list := b.list(b.At(c))
	if list == nil {
		return ColorEmpty
	}
	if i := indexOf(*list, c); i >= 0 {
		return (*list)[i].Color
	}
	return ColorEmpty
}

// list returns a pointer to the registry slice for r.
func (b *Board) list(r Registry) *[]Block {
	switch r {
	case RegistryFixated:
		return &b.fixated
	case RegistryFalling:
		return &b.falling
	case RegistryControlled:
		return &b.controlled
	case RegistryFading:
		return &b.fading
	default:
		return nil
	}
}

// add appends blk to registry r. Cells already occupied or off the board
// are refused.
func (b *Board) add(r Registry, blk Block) bool {
	c := blk.Coord()
	if !b.IsWithinBounds(c) || b.At(c) != RegistryNone {
		return false
	}
	list := b.list(r)
	*list = append(*list, blk)
	b.occupancy.Put(b.key(c), r)
	return true
}

// migrate moves the block at c from one registry to another.
func (b *Board) migrate(c Coord, from, to Registry) bool {
	if b.At(c) != from {
		return false
	}
	src := b.list(from)
	i := indexOf(*src, c)
	if i < 0 {
		return false
	}
	blk := (*src)[i]
	*src = append((*src)[:i], (*src)[i+1:]...)
	dst := b.list(to)
	*dst = append(*dst, blk)
	b.occupancy.Put(b.key(c), to)
	return true
}

// migrateAll moves every block of one registry into another, keeping order.
func (b *Board) migrateAll(from, to Registry) {
	src := b.list(from)
	dst := b.list(to)
	for _, blk := range *src {
		b.occupancy.Put(b.key(blk.Coord()), to)
	}
	*dst = append(*dst, *src...)
	*src = nil
}

// removeAll deletes every block of registry r from the board and returns them.
func (b *Board) removeAll(r Registry) []Block {
	list := b.list(r)
	removed := *list
	for _, blk := range removed {
		b.occupancy.Del(b.key(blk.Coord()))
	}
	*list = nil
	return removed
}

// sortBottomUp orders blocks by row descending, keeping the original order
// of blocks on the same row.
func sortBottomUp(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Row > blocks[j].Row
	})
}

func indexOf(blocks []Block, c Coord) int {
	for i, blk := range blocks {
		if blk.Column == c.Col && blk.Row == c.Row {
			return i
		}
	}
	return -1
}

func cloneBlocks(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}
