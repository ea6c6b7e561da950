package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// dataDirName is the per-user directory under $HOME.
const dataDirName = ".blockbuster"

// Load resolves the configuration of a preset. An explicit customPath must
// exist and parse. Otherwise the first readable file among
// ~/.blockbuster/configs/<preset>.yaml and ./configs/<preset>.yaml wins,
// then the embedded default. Every file is decoded over the preset's
// values, so partial YAML only overrides what it names.
func Load(preset, customPath string) (BlockbusterConfig, error) {
	embedded, fallback, ok := defaultsFor(preset)
	if !ok {
		return BlockbusterConfig{}, fmt.Errorf("config: unknown preset %q", preset)
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeOver(fallback, data)
		if err != nil {
			return fallback, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths(preset + ".yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// A broken file on the search path is skipped, not fatal.
		if cfg, err := decodeOver(fallback, data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := decodeOver(fallback, embedded); err == nil {
		return cfg, nil
	}
	return fallback, nil
}

// decodeOver unmarshals data on top of a copy of base.
func decodeOver(base BlockbusterConfig, data []byte) (BlockbusterConfig, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, user directory first.
func searchPaths(filename string) []string {
	var paths []string
	if dir := DataDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "configs", filename))
	}
	return append(paths, filepath.Join("configs", filename))
}

// DataDir returns ~/.blockbuster, or empty if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dataDirName)
}
