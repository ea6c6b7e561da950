package engine

import (
	"errors"
	"fmt"
)

// LevelRule selects what the level is derived from.
type LevelRule string

const (
	// LevelByPieces derives the level from the number of spawned pieces.
	LevelByPieces LevelRule = "pieces"
	// LevelByScore derives the level from the accumulated score.
	LevelByScore LevelRule = "score"
)

// Config holds every tunable of a session. Times are in milliseconds.
type Config struct {
	Width       int
	Height      int
	SpawnColumn int
	PreviewSize int

	BlockSize float64 // fade completes when progress reaches this width
	FadeStart float64
	FadeRate  float64 // fade width gained per second

	MinRun         int // shortest streak that fades
	PointsPerBlock int
	MulliganCount  int
	MulliganBonus  int // added per remaining mulligan on every score increase

	LevelRule LevelRule
	LevelStep int // pieces or points per level

	BaseInterval        int
	SpeedEvery          int // levels per speed step
	SpeedStep           int
	MinInterval         int
	FastForwardInterval int

	ColorsEvery    int // levels per additional piece color
	WildcardChance float64

	BarricadeEvery       int // levels between barricades
	BarricadeBase        int
	BarricadeRowsEvery   int // levels per extra barricade row
	InitialBarricadeRows int

	HighScoreSlots int
}

// DefaultConfig returns the spawn-count leveled rule set.
func DefaultConfig() Config {
	return Config{
		Width:       16,
		Height:      20,
		SpawnColumn: 6,
		PreviewSize: 3,

		BlockSize: 20,
		FadeStart: 2,
		FadeRate:  40,

		MinRun:         4,
		PointsPerBlock: 5,
		MulliganCount:  5,
		MulliganBonus:  5,

		LevelRule: LevelByPieces,
		LevelStep: 20,

		BaseInterval:        500,
		SpeedEvery:          3,
		SpeedStep:           50,
		MinInterval:         200,
		FastForwardInterval: 15,

		ColorsEvery:    15,
		WildcardChance: 0.05,

		BarricadeEvery:       5,
		BarricadeBase:        2,
		BarricadeRowsEvery:   50,
		InitialBarricadeRows: 3,

		HighScoreSlots: 10,
	}
}

// ClassicConfig returns the score leveled rule set.
func ClassicConfig() Config {
	cfg := DefaultConfig()
	cfg.LevelRule = LevelByScore
	cfg.LevelStep = 200
	cfg.SpeedEvery = 5
	cfg.SpeedStep = 25
	cfg.ColorsEvery = 5
	cfg.BarricadeBase = 1
	cfg.BarricadeRowsEvery = 20
	cfg.InitialBarricadeRows = 0
	return cfg
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Validate rejects geometry and rates the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SpawnColumn < 0 || c.SpawnColumn >= c.Width:
		return fmt.Errorf("%w: spawn column %d outside board", ErrInvalidConfig, c.SpawnColumn)
	case c.MinRun < 2:
		return fmt.Errorf("%w: min run %d", ErrInvalidConfig, c.MinRun)
	case c.LevelRule != LevelByPieces && c.LevelRule != LevelByScore:
		return fmt.Errorf("%w: level rule %q", ErrInvalidConfig, c.LevelRule)
	case c.LevelStep <= 0 || c.SpeedEvery <= 0 || c.ColorsEvery <= 0 || c.BarricadeRowsEvery <= 0:
		return fmt.Errorf("%w: level divisors must be positive", ErrInvalidConfig)
	case c.BaseInterval <= 0 || c.MinInterval <= 0:
		return fmt.Errorf("%w: intervals must be positive", ErrInvalidConfig)
	case c.BlockSize <= 0 || c.FadeRate <= 0:
		return fmt.Errorf("%w: fade size and rate must be positive", ErrInvalidConfig)
	}
	return nil
}
