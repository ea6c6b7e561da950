// Package registry maps game preset IDs to factories. Presets register
// themselves in init() so the CLI and the menu can list and create them
// without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbuster/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what the platform drives. Implementations keep all game logic
// free of terminal concerns; the platform maps keys to actions, paces the
// ticks and displays the screen buffer.
type Game interface {
	// ID returns the preset identifier, also used as the score table key.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new session. The RuntimeConfig carries screen size,
	// seed and the current high-score table.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the game by one frame of the configured tick rate.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.GameState
}

// Env is handed to factories when a game is created.
type Env struct {
	ConfigPath string      // explicit YAML config, empty for the search path
	Difficulty string      // difficulty preset name, empty for the default
	Logger     *log.Logger // may be nil
}

// Factory creates a configured game.
type Factory func(env Env) (Game, error)

// Info describes a registered preset.
type Info struct {
	ID          string
	Title       string
	Description string
}

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a preset. It panics if the ID is already taken.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all registered presets sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a preset by ID.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	g, err := e.factory(env)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Lookup returns the metadata of a preset.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}
