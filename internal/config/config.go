// Package config provides YAML-based preset loading, difficulty presets and
// key binding files for blockbuster.
package config

import "github.com/vovakirdan/blockbuster/internal/engine"

// BlockbusterConfig contains all configuration for one blockbuster preset.
type BlockbusterConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Timing      TimingConfig      `yaml:"timing"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
	Barricade   BarricadeConfig   `yaml:"barricade"`
}

// BoardConfig defines the playfield geometry.
type BoardConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	SpawnColumn int `yaml:"spawn_column"`
	PreviewSize int `yaml:"preview_size"`
	MinRun      int `yaml:"min_run"` // shortest streak that fades
}

// TimingConfig defines gravity and fade pacing. Intervals are milliseconds.
type TimingConfig struct {
	BaseInterval int     `yaml:"base_interval"`
	MinInterval  int     `yaml:"min_interval"`
	SpeedEvery   int     `yaml:"speed_every"` // levels per speed step
	SpeedStep    int     `yaml:"speed_step"`
	FastForward  int     `yaml:"fast_forward"`
	BlockSize    float64 `yaml:"block_size"`
	FadeStart    float64 `yaml:"fade_start"`
	FadeRate     float64 `yaml:"fade_rate"` // fade width per second
}

// ScoringConfig defines points, mulligans and the high-score table size.
type ScoringConfig struct {
	PointsPerBlock int `yaml:"points_per_block"`
	Mulligans      int `yaml:"mulligans"`
	MulliganBonus  int `yaml:"mulligan_bonus"`
	HighScoreSlots int `yaml:"high_score_slots"`
}

// ProgressionConfig defines how the level grows and what it unlocks.
type ProgressionConfig struct {
	Rule           string  `yaml:"rule"` // "pieces" or "score"
	LevelStep      int     `yaml:"level_step"`
	ColorsEvery    int     `yaml:"colors_every"`
	WildcardChance float64 `yaml:"wildcard_chance"`
}

// BarricadeConfig defines garbage rows dropped as the level grows.
type BarricadeConfig struct {
	Every       int `yaml:"every"` // levels between barricades, 0 disables
	BaseRows    int `yaml:"base_rows"`
	RowsEvery   int `yaml:"rows_every"`
	InitialRows int `yaml:"initial_rows"`
}

// ToEngine converts the YAML layout into the engine's flat rule set.
func (c BlockbusterConfig) ToEngine() engine.Config {
	return engine.Config{
		Width:       c.Board.Width,
		Height:      c.Board.Height,
		SpawnColumn: c.Board.SpawnColumn,
		PreviewSize: c.Board.PreviewSize,

		BlockSize: c.Timing.BlockSize,
		FadeStart: c.Timing.FadeStart,
		FadeRate:  c.Timing.FadeRate,

		MinRun:         c.Board.MinRun,
		PointsPerBlock: c.Scoring.PointsPerBlock,
		MulliganCount:  c.Scoring.Mulligans,
		MulliganBonus:  c.Scoring.MulliganBonus,

		LevelRule: engine.LevelRule(c.Progression.Rule),
		LevelStep: c.Progression.LevelStep,

		BaseInterval:        c.Timing.BaseInterval,
		SpeedEvery:          c.Timing.SpeedEvery,
		SpeedStep:           c.Timing.SpeedStep,
		MinInterval:         c.Timing.MinInterval,
		FastForwardInterval: c.Timing.FastForward,

		ColorsEvery:    c.Progression.ColorsEvery,
		WildcardChance: c.Progression.WildcardChance,

		BarricadeEvery:       c.Barricade.Every,
		BarricadeBase:        c.Barricade.BaseRows,
		BarricadeRowsEvery:   c.Barricade.RowsEvery,
		InitialBarricadeRows: c.Barricade.InitialRows,

		HighScoreSlots: c.Scoring.HighScoreSlots,
	}
}

// FromEngine is the inverse of ToEngine.
func FromEngine(e engine.Config) BlockbusterConfig {
	return BlockbusterConfig{
		Board: BoardConfig{
			Width:       e.Width,
			Height:      e.Height,
			SpawnColumn: e.SpawnColumn,
			PreviewSize: e.PreviewSize,
			MinRun:      e.MinRun,
		},
		Timing: TimingConfig{
			BaseInterval: e.BaseInterval,
			MinInterval:  e.MinInterval,
			SpeedEvery:   e.SpeedEvery,
			SpeedStep:    e.SpeedStep,
			FastForward:  e.FastForwardInterval,
			BlockSize:    e.BlockSize,
			FadeStart:    e.FadeStart,
			FadeRate:     e.FadeRate,
		},
		Scoring: ScoringConfig{
			PointsPerBlock: e.PointsPerBlock,
			Mulligans:      e.MulliganCount,
			MulliganBonus:  e.MulliganBonus,
			HighScoreSlots: e.HighScoreSlots,
		},
		Progression: ProgressionConfig{
			Rule:           string(e.LevelRule),
			LevelStep:      e.LevelStep,
			ColorsEvery:    e.ColorsEvery,
			WildcardChance: e.WildcardChance,
		},
		Barricade: BarricadeConfig{
			Every:       e.BarricadeEvery,
			BaseRows:    e.BarricadeBase,
			RowsEvery:   e.BarricadeRowsEvery,
			InitialRows: e.InitialBarricadeRows,
		},
	}
}
