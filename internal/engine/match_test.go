package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchRow fixates colors on the bottom row of a 16x20 board, queues that
// row and returns the board after one match pass.
func matchRow(t *testing.T, colors string) (*Board, int) {
	t.Helper()
	b := NewBoard(16, 20)
	placeRow(t, b, 19, 0, colors)
	dirty := DirtyRegions{Rows: []int{19}}
	n := b.CollectMatches(&dirty, 4)
	assert.True(t, dirty.Empty(), "dirty regions not cleared")
	assertConsistent(t, b)
	return b, n
}

func TestRowMatches(t *testing.T) {
	testCases := []struct {
		name   string
		colors string
		faded  int
	}{
		{"three does not fade", "RRR", 0},
		{"four fades", "RRRR", 4},
		{"five fades", "GGGGG", 5},
		{"gap splits streak", "RR.RR", 0},
		{"color change splits streak", "RRBB", 0},
		{"two streaks", "RRRRBBBB", 8},
		{"streak after short one", "RRBBBB", 4},
		{"leading wildcard joins", "WRRR", 4},
		{"trailing wildcard joins", "RRRW", 4},
		{"wildcards alone never fade", "WWWWW", 0},
		{"wildcards with one color", "WWRW", 4},
		{"full row", "YYYYYYYYYYYYYYYY", 16},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, n := matchRow(t, tc.colors)
			assert.Equal(t, tc.faded, n)
			assert.Len(t, b.Fading(), tc.faded)
		})
	}
}

func TestWildcardCreditedOnce(t *testing.T) {
	b, n := matchRow(t, "RRRWBBB")

	assert.Equal(t, 7, n)
	fading := b.Fading()
	require.Len(t, fading, 7)
	wildcards := 0
	for _, blk := range fading {
		if blk.Color == ColorWildcard {
			wildcards++
		}
	}
	assert.Equal(t, 1, wildcards)
	assert.Empty(t, b.Fixated())
}

func TestWildcardRescanFindsFarSide(t *testing.T) {
	// Scanning left to right the wildcard is spent on the short red run; only
	// the backward pass sees it next to the blue run.
	b, n := matchRow(t, "RRWBBB")

	assert.Equal(t, 4, n)
	for _, blk := range b.Fading() {
		assert.NotEqual(t, ColorRed, blk.Color)
	}
	assert.Len(t, b.Fixated(), 2)
}

func TestColumnMatch(t *testing.T) {
	b := NewBoard(16, 20)
	for row := 16; row < 20; row++ {
		placeRow(t, b, row, 3, "G")
	}
	placeRow(t, b, 15, 3, "B")

	dirty := DirtyRegions{Columns: []int{3}}
	assert.Equal(t, 4, b.CollectMatches(&dirty, 4))
	assert.Equal(t, RegistryFixated, b.At(C(3, 15)))
}

func TestDiagonalMatches(t *testing.T) {
	t.Run("north-east", func(t *testing.T) {
		b := NewBoard(16, 20)
		for i := 0; i < 4; i++ {
			placeRow(t, b, 19-i, 2+i, "Y")
		}
		var dirty DirtyRegions
		dirty.markFixation(C(4, 17), 16, 20)

		assert.Equal(t, 4, b.CollectMatches(&dirty, 4))
	})

	t.Run("north-west", func(t *testing.T) {
		b := NewBoard(16, 20)
		for i := 0; i < 4; i++ {
			placeRow(t, b, 19-i, 12-i, "B")
		}
		var dirty DirtyRegions
		dirty.markFixation(C(10, 17), 16, 20)

		assert.Equal(t, 4, b.CollectMatches(&dirty, 4))
	})

	t.Run("three on a diagonal", func(t *testing.T) {
		b := NewBoard(16, 20)
		for i := 0; i < 3; i++ {
			placeRow(t, b, 19-i, 2+i, "Y")
		}
		var dirty DirtyRegions
		dirty.markFixation(C(3, 18), 16, 20)

		assert.Zero(t, b.CollectMatches(&dirty, 4))
	})
}

func TestOverlappingStreaksFadeOnce(t *testing.T) {
	// An L of reds: the corner belongs to both the row and the column.
	b := NewBoard(16, 20)
	placeRow(t, b, 19, 0, "RRRR")
	for row := 16; row < 19; row++ {
		placeRow(t, b, row, 0, "R")
	}

	dirty := DirtyRegions{Rows: []int{19}, Columns: []int{0}}
	assert.Equal(t, 7, b.CollectMatches(&dirty, 4))
	assert.Empty(t, b.Fixated())
	assertConsistent(t, b)
}

func TestMatchesIgnoreMovingBlocks(t *testing.T) {
	b := NewBoard(16, 20)
	placeRow(t, b, 19, 0, "RRR")
	require.True(t, b.add(RegistryControlled, Block{Color: ColorRed, Column: 3, Row: 19}))

	dirty := DirtyRegions{Rows: []int{19}}
	assert.Zero(t, b.CollectMatches(&dirty, 4))
}
