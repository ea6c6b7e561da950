package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(shape Shape, color Color) Template {
	t := make(Template, len(shape))
	for r, row := range shape {
		t[r] = make([]Color, len(row))
		for c, cell := range row {
			if cell == '1' {
				t[r][c] = color
			}
		}
	}
	return t
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)), nil, 1, 0.2)
	for i := 0; i < 50; i++ {
		tmpl := gen.Next(30)
		rotated := tmpl.Rotate().Rotate().Rotate().Rotate()
		assert.True(t, tmpl.Equal(rotated), "four rotations changed\n%s\ninto\n%s", tmpl, rotated)
	}
}

func TestRotateSwapsDimensions(t *testing.T) {
	tmpl := solid(Shape{"110", "011"}, ColorRed)
	rotated := tmpl.Rotate()

	assert.Equal(t, 3, rotated.Height())
	assert.Equal(t, 2, rotated.Width())
	assert.Equal(t, ".R\nRR\nR.", rotated.String())
}

func TestRotateKeepsColors(t *testing.T) {
	tmpl := Template{
		{ColorRed, ColorGreen},
		{ColorBlue, ColorYellow},
	}
	rotated := tmpl.Rotate()
	assert.Equal(t, "GY\nRB", rotated.String())
}

func TestGeneratorColors(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(3)), nil, 15, 0)
	for i := 0; i < 100; i++ {
		tmpl := gen.Next(1)
		var colors []Color
		for _, blk := range tmpl.Blocks(C(0, 0)) {
			assert.NotEqual(t, ColorWildcard, blk.Color)
			colors = append(colors, blk.Color)
		}
		require.NotEmpty(t, colors)
		for _, c := range colors {
			assert.Equal(t, colors[0], c, "level 1 piece uses more than one color")
		}
	}
}

func TestGeneratorUsesWholeCatalog(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(11)), nil, 15, 0)
	outlines := make(map[string]bool)
	for i := 0; i < 200; i++ {
		outlines[outline(gen.Next(1))] = true
	}
	assert.Len(t, outlines, len(DefaultShapes()))
}

func outline(tmpl Template) string {
	var b strings.Builder
	for _, row := range tmpl {
		for _, color := range row {
			if color == ColorEmpty {
				b.WriteByte('0')
			} else {
				b.WriteByte('1')
			}
		}
		b.WriteByte('/')
	}
	return b.String()
}

func TestBarricadeRowHasNoLongRuns(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(5)), nil, 15, 0)
	for i := 0; i < 100; i++ {
		row := gen.BarricadeRow(16)
		require.Len(t, row, 16)
		run := 1
		for c := 1; c < len(row); c++ {
			assert.NotEqual(t, ColorEmpty, row[c])
			assert.NotEqual(t, ColorWildcard, row[c])
			if row[c] == row[c-1] {
				run++
			} else {
				run = 1
			}
			assert.LessOrEqual(t, run, maxBarricadeRun)
		}
	}
}

func TestSpawnAreaAvailable(t *testing.T) {
	square := solid(Shape{"11", "11"}, ColorBlue)

	t.Run("empty board", func(t *testing.T) {
		b := NewBoard(16, 20)
		assert.True(t, b.SpawnAreaAvailable(square, C(6, 0)))
	})

	t.Run("off the board", func(t *testing.T) {
		b := NewBoard(16, 20)
		assert.False(t, b.SpawnAreaAvailable(square, C(15, 0)))
		assert.False(t, b.SpawnAreaAvailable(square, C(0, 19)))
	})

	t.Run("fixated cell", func(t *testing.T) {
		b := NewBoard(16, 20)
		placeRow(t, b, 1, 7, "R")
		assert.False(t, b.SpawnAreaAvailable(square, C(6, 0)))
	})

	t.Run("falling cell", func(t *testing.T) {
		b := NewBoard(16, 20)
		require.True(t, b.add(RegistryFalling, Block{Color: ColorRed, Column: 6, Row: 0}))
		assert.False(t, b.SpawnAreaAvailable(square, C(6, 0)))
	})

	t.Run("unpopulated cells ignored", func(t *testing.T) {
		b := NewBoard(16, 20)
		placeRow(t, b, 0, 6, "R")
		tee := solid(Shape{"010", "111"}, ColorGreen)
		assert.True(t, b.SpawnAreaAvailable(tee, C(6, 0)))
	})
}
