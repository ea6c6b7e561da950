package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbuster/internal/platform/tui"
	"github.com/vovakirdan/blockbuster/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a preset picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a preset.
Press B after a game ends to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select preset
  Tab          - High scores
  Q            - Quit

Examples:
  blockbuster menu
  blockbuster menu --fps 30
  blockbuster menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	svc := tui.Services{
		Store:    store,
		Bindings: loadBindings(logger),
		Logger:   logger,
	}
	cfg := runtimeConfig()
	lastID := ""

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, lastID)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		lastID = menuResult.GameID

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, menuResult.GameID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		game, err := registry.Create(menuResult.GameID, env(logger))
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// Fresh seed for each game unless one was pinned
		rc := cfg
		if rc.Seed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		result, err := tui.Run(game, svc, rc)
		if err != nil {
			return err
		}
		if !result.BackToMenu {
			return nil
		}
	}
}
