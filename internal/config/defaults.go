package config

import (
	_ "embed"

	"github.com/vovakirdan/blockbuster/internal/engine"
)

// Preset IDs, also used as registry IDs and score table keys.
const (
	PresetBlockbuster = "blockbuster"
	PresetClassic     = "blockbuster_classic"
)

//go:embed defaults/blockbuster.yaml
var defaultBlockbusterYAML []byte

//go:embed defaults/blockbuster_classic.yaml
var defaultClassicYAML []byte

// DefaultBlockbusterConfig returns the spawn-count leveled preset.
func DefaultBlockbusterConfig() BlockbusterConfig {
	return FromEngine(engine.DefaultConfig())
}

// DefaultClassicConfig returns the score leveled preset.
func DefaultClassicConfig() BlockbusterConfig {
	return FromEngine(engine.ClassicConfig())
}

// Presets lists the preset IDs with built-in defaults.
func Presets() []string {
	return []string{PresetBlockbuster, PresetClassic}
}

// defaultsFor returns the embedded YAML and the hardcoded fallback of a preset.
func defaultsFor(preset string) ([]byte, BlockbusterConfig, bool) {
	switch preset {
	case PresetBlockbuster:
		return defaultBlockbusterYAML, DefaultBlockbusterConfig(), true
	case PresetClassic:
		return defaultClassicYAML, DefaultClassicConfig(), true
	default:
		return nil, BlockbusterConfig{}, false
	}
}
