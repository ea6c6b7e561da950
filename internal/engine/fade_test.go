package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFadeStates(t *testing.T) {
	b := NewBoard(4, 4)
	f := NewFade(2, 40, 20)
	assert.Equal(t, FadeIdle, f.State(b))
	assert.Nil(t, f.Advance(b, 1000), "idle fade removed tiles")
	assert.Equal(t, 2.0, f.Progress())

	placeRow(t, b, 3, 0, "RRRR")
	for col := 0; col < 4; col++ {
		require.True(t, b.migrate(C(col, 3), RegistryFixated, RegistryFading))
	}
	assert.Equal(t, FadeAccumulating, f.State(b))

	assert.Nil(t, f.Advance(b, 250))
	assert.InDelta(t, 12.0, f.Progress(), 1e-9)
	assert.Equal(t, FadeAccumulating, f.State(b))

	assert.Nil(t, f.Advance(b, 250))
	assert.Equal(t, FadeComplete, f.State(b))
	assert.Equal(t, 1.0, f.Fraction())

	removal := f.Advance(b, 16)
	require.NotNil(t, removal)
	assert.Len(t, removal.Removed, 4)
	assert.Equal(t, FadeIdle, f.State(b))
	assert.Equal(t, 2.0, f.Progress())
	assertConsistent(t, b)
}

func TestRemovalDetachesColumnsOnce(t *testing.T) {
	b := NewBoard(4, 6)
	// Column 0: fading at rows 5 and 3, fixated at 4, 2 and 1.
	placeRow(t, b, 5, 0, "R")
	placeRow(t, b, 4, 0, "G")
	placeRow(t, b, 3, 0, "R")
	placeRow(t, b, 2, 0, "B")
	placeRow(t, b, 1, 0, "Y")
	// Column 1: fading at row 5, nothing above. Column 2 untouched.
	placeRow(t, b, 5, 1, "R")
	placeRow(t, b, 5, 2, "G")
	placeRow(t, b, 4, 2, "B")

	for _, c := range []Coord{C(0, 5), C(0, 3), C(1, 5)} {
		require.True(t, b.migrate(c, RegistryFixated, RegistryFading))
	}

	f := NewFade(20, 40, 20)
	removal := f.Advance(b, 16)
	require.NotNil(t, removal)
	assert.Len(t, removal.Removed, 3)
	assert.Equal(t, 3, removal.Detached)

	assert.ElementsMatch(t, []Block{
		{Color: ColorGreen, Column: 0, Row: 4},
		{Color: ColorBlue, Column: 0, Row: 2},
		{Color: ColorYellow, Column: 0, Row: 1},
	}, b.Falling())
	assert.ElementsMatch(t, []Block{
		{Color: ColorGreen, Column: 2, Row: 5},
		{Color: ColorBlue, Column: 2, Row: 4},
	}, b.Fixated())
	assertConsistent(t, b)
}

func TestFullRowClearDetachesEveryColumn(t *testing.T) {
	b := NewBoard(16, 20)
	placeRow(t, b, 19, 0, "RRRRRRRRRRRRRRRR")
	placeRow(t, b, 18, 0, "GBGBGBGBGBGBGBGB")

	dirty := DirtyRegions{Rows: []int{19}}
	require.Equal(t, 16, b.CollectMatches(&dirty, 4))

	f := NewFade(20, 40, 20)
	removal := f.Advance(b, 16)
	require.NotNil(t, removal)
	assert.Len(t, removal.Removed, 16)
	assert.Equal(t, 16, removal.Detached)
	assert.Len(t, b.Falling(), 16)
	assert.Empty(t, b.Fixated())
	assertConsistent(t, b)
}
