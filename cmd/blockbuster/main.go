// blockbuster is a falling-block color-match puzzle for the terminal.
//
// Usage:
//
//	blockbuster list              - List available presets
//	blockbuster play [preset]     - Play a preset
//	blockbuster menu              - Start menu to pick presets interactively
//	blockbuster serve             - Start SSH server for remote play
//	blockbuster scores [preset]   - Show, export or import high scores
//	blockbuster controls          - Show or change key bindings
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blockbuster/scores.db)
//	--config <path>       - Use a custom rules YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--controls <path>     - Use a custom controls file
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockbuster/internal/config"
	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/registry"
	"github.com/vovakirdan/blockbuster/internal/storage"

	// Import presets to register them
	_ "github.com/vovakirdan/blockbuster/internal/games/blockbuster"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagControls   string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbuster",
	Short: "Blockbuster - a falling-block color-match puzzle",
	Long: `Blockbuster drops pieces of colored blocks into a well. Line up four
or more blocks of one color in a row, column or diagonal to fade them out.
Blocks above a cleared cell fall, and the landings can chain into cascades.

Available commands:
  list      - Show all available presets
  play      - Play a preset directly
  menu      - Interactive preset picker menu
  serve     - Start SSH server for remote play
  scores    - View, export or import high scores
  controls  - View or change key bindings

Examples:
  blockbuster play
  blockbuster play blockbuster_classic --difficulty hard
  blockbuster menu
  blockbuster serve --ssh :2222
  blockbuster scores export top.txt`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockbuster/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagControls, "controls", "", "Path to controls file (default ~/.blockbuster/controls)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(controlsCmd)
}

// newLogger builds the process logger from the global flags. The returned
// func closes the log file, if one was opened.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := os.Stderr
	closeFn := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockbuster",
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// controlsPath resolves --controls, falling back to the user file.
func controlsPath() string {
	if flagControls != "" {
		return flagControls
	}
	return config.ControlsPath()
}

// loadBindings reads the controls file. A broken file is reported and the
// defaults are used.
func loadBindings(logger *log.Logger) config.Bindings {
	path := controlsPath()
	if path == "" {
		return config.DefaultBindings()
	}
	b, err := config.LoadControls(path)
	if err != nil {
		logger.Warn("using default controls", "path", path, "error", err)
	}
	return b
}

// openStore opens the scores database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func env(logger *log.Logger) registry.Env {
	return registry.Env{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Logger:     logger,
	}
}

// presetArg returns the preset named in args, or the default preset.
func presetArg(args []string) (string, error) {
	id := config.PresetBlockbuster
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown preset %q (run 'blockbuster list' to see available presets)", id)
	}
	return id, nil
}
