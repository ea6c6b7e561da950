package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbuster/internal/platform/tui"
	"github.com/vovakirdan/blockbuster/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Play a preset",
	Long: `Start playing the specified preset (default: blockbuster).

Controls (change them with 'blockbuster controls'):
  Left/A, Right/D  - Move the piece
  Up/W             - Rotate
  Down/S           - Drop faster while held
  M                - Mulligan: replace the next piece
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back to menu (paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - No opening barricade, slower start, more wildcards
  normal - Preset rules as configured
  hard   - Taller opening barricade, faster start, fewer wildcards
  fixed  - Speed never increases

Examples:
  blockbuster play
  blockbuster play blockbuster_classic
  blockbuster play --difficulty hard
  blockbuster play --config ./my-rules.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := presetArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID, env(logger))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Continue without storage - game still works
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	svc := tui.Services{
		Store:    store,
		Bindings: loadBindings(logger),
		Logger:   logger,
	}
	if _, err := tui.Run(game, svc, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
