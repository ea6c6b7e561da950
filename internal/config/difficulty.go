package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty accepts a preset name; empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BlockbusterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Barricade.InitialRows = 0
		cfg.Timing.BaseInterval += 100
		cfg.Progression.WildcardChance *= 2
	case DifficultyHard:
		cfg.Barricade.InitialRows += 2
		cfg.Timing.BaseInterval = max(cfg.Timing.BaseInterval-100, cfg.Timing.MinInterval)
		cfg.Progression.WildcardChance /= 2
	case DifficultyFixed:
		cfg.Timing.SpeedStep = 0
	}
}
