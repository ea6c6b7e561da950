package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colorLetters = map[rune]Color{
	'R': ColorRed,
	'G': ColorGreen,
	'B': ColorBlue,
	'Y': ColorYellow,
	'W': ColorWildcard,
}

// placeRow fixates one block per character of colors starting at col.
// '.' leaves a cell empty.
func placeRow(t *testing.T, b *Board, row, col int, colors string) {
	t.Helper()
	for i, ch := range colors {
		if ch == '.' {
			continue
		}
		color, ok := colorLetters[ch]
		require.True(t, ok, "unknown color %q", ch)
		require.True(t, b.add(RegistryFixated, Block{Color: color, Column: col + i, Row: row}))
	}
}

// assertConsistent checks that no cell is held twice and that the occupancy
// index matches the registries.
func assertConsistent(t *testing.T, b *Board) {
	t.Helper()
	seen := make(map[Coord]Registry)
	for _, r := range []Registry{RegistryFixated, RegistryFalling, RegistryControlled, RegistryFading} {
		for _, blk := range *b.list(r) {
			c := blk.Coord()
			prev, dup := seen[c]
			require.False(t, dup, "%v held by %v and %v", c, prev, r)
			seen[c] = r
			assert.Equal(t, r, b.At(c), "index disagrees at %v", c)
		}
	}
	assert.Equal(t, len(seen), b.occupancy.Len())
}

func TestBoardBounds(t *testing.T) {
	b := NewBoard(16, 20)

	testCases := []struct {
		coord    Coord
		inBounds bool
	}{
		{C(0, 0), true},
		{C(15, 19), true},
		{C(-1, 0), false},
		{C(0, -1), false},
		{C(16, 0), false},
		{C(0, 20), false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.inBounds, b.IsWithinBounds(tc.coord), "IsWithinBounds(%v)", tc.coord)
		assert.Equal(t, tc.inBounds, b.IsVacant(tc.coord), "IsVacant(%v) on empty board", tc.coord)
	}
	assert.Equal(t, RegistryNone, b.At(C(99, 99)))
	assert.Equal(t, ColorEmpty, b.ColorAt(C(-5, 3)))
}

func TestBoardVacancyIgnoresMovers(t *testing.T) {
	b := NewBoard(16, 20)
	require.True(t, b.add(RegistryFixated, Block{Color: ColorRed, Column: 1, Row: 1}))
	require.True(t, b.add(RegistryFalling, Block{Color: ColorBlue, Column: 2, Row: 1}))
	require.True(t, b.add(RegistryControlled, Block{Color: ColorGreen, Column: 3, Row: 1}))

	assert.False(t, b.IsVacant(C(1, 1)))
	assert.True(t, b.IsVacant(C(2, 1)))
	assert.True(t, b.IsFalling(C(2, 1)))
	assert.True(t, b.IsVacant(C(3, 1)))
	assert.True(t, b.IsControlled(C(3, 1)))
	assert.Equal(t, ColorBlue, b.ColorAt(C(2, 1)))

	assert.False(t, b.add(RegistryFalling, Block{Color: ColorRed, Column: 1, Row: 1}), "occupied cell accepted")
	assertConsistent(t, b)
}

func TestFindFixatedAbove(t *testing.T) {
	b := NewBoard(16, 20)
	placeRow(t, b, 10, 4, "R")
	placeRow(t, b, 12, 4, "G")
	placeRow(t, b, 14, 4, "B")
	placeRow(t, b, 12, 5, "Y")
	require.True(t, b.add(RegistryFalling, Block{Color: ColorRed, Column: 4, Row: 5}))

	above := b.FindFixatedAbove(C(4, 14))
	require.Len(t, above, 2)
	for _, blk := range above {
		assert.Equal(t, 4, blk.Column)
		assert.Less(t, blk.Row, 14)
	}

	assert.Empty(t, b.FindFixatedAbove(C(4, 10)))
	assert.Empty(t, b.FindFixatedAbove(C(-1, 10)))
}

func TestMigrateKeepsIndex(t *testing.T) {
	b := NewBoard(4, 4)
	placeRow(t, b, 3, 0, "RGBY")

	require.True(t, b.migrate(C(1, 3), RegistryFixated, RegistryFading))
	assert.False(t, b.migrate(C(1, 3), RegistryFixated, RegistryFading), "second migration succeeded")
	assert.Len(t, b.Fixated(), 3)
	assert.Len(t, b.Fading(), 1)
	assertConsistent(t, b)

	removed := b.removeAll(RegistryFading)
	require.Len(t, removed, 1)
	assert.Equal(t, ColorGreen, removed[0].Color)
	assert.True(t, b.IsVacant(C(1, 3)))
	assertConsistent(t, b)

	for _, r := range []Registry{RegistryFixated, RegistryFalling, RegistryControlled, RegistryFading} {
		b.removeAll(r)
	}
	assert.Zero(t, b.occupancy.Len())
	assert.False(t, b.HasMovers())
}
