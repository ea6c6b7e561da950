package engine

import "math/rand"

// maxBarricadeRun is the longest horizontal run of one color a barricade row
// may contain, so a fresh barricade never clears itself on landing.
const maxBarricadeRun = 3

// Generator produces colorized piece templates and barricade rows.
type Generator struct {
	rng            *rand.Rand
	shapes         []Shape
	colorsEvery    int
	wildcardChance float64
}

// NewGenerator creates a generator. colorsEvery is the number of levels per
// additional color in a piece; wildcardChance is the probability that a
// populated cell becomes a wildcard.
func NewGenerator(rng *rand.Rand, shapes []Shape, colorsEvery int, wildcardChance float64) *Generator {
	if len(shapes) == 0 {
		shapes = DefaultShapes()
	}
	if colorsEvery <= 0 {
		colorsEvery = 15
	}
	return &Generator{
		rng:            rng,
		shapes:         shapes,
		colorsEvery:    colorsEvery,
		wildcardChance: wildcardChance,
	}
}

// Next picks a shape uniformly and colorizes it for the given level.
func (g *Generator) Next(level int) Template {
	shape := g.shapes[g.rng.Intn(len(g.shapes))]
	palette := g.pickColors(1 + level/g.colorsEvery)

	t := make(Template, len(shape))
	for r, row := range shape {
		t[r] = make([]Color, len(row))
		for c, cell := range row {
			if cell != '1' {
				continue
			}
			if g.wildcardChance > 0 && g.rng.Float64() < g.wildcardChance {
				t[r][c] = ColorWildcard
				continue
			}
			t[r][c] = palette[g.rng.Intn(len(palette))]
		}
	}
	return t
}

// BarricadeRow returns width random base colors with no run longer than
// maxBarricadeRun.
func (g *Generator) BarricadeRow(width int) []Color {
	base := BaseColors()
	row := make([]Color, width)
	for i := range row {
		color := base[g.rng.Intn(len(base))]
		for i >= maxBarricadeRun && runOf(row[i-maxBarricadeRun:i], color) {
			color = base[g.rng.Intn(len(base))]
		}
		row[i] = color
	}
	return row
}

// pickColors draws n base colors with replacement.
func (g *Generator) pickColors(n int) []Color {
	base := BaseColors()
	picked := make([]Color, n)
	for i := range picked {
		picked[i] = base[g.rng.Intn(len(base))]
	}
	return picked
}

func runOf(colors []Color, color Color) bool {
	for _, c := range colors {
		if c != color {
			return false
		}
	}
	return true
}
