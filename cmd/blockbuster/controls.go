package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbuster/internal/config"
	"github.com/vovakirdan/blockbuster/internal/core"
)

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "Show the key bindings",
	Long: `Show the key bindings read from the controls file
(default: ~/.blockbuster/controls). The file holds one action|key line
per binding.

Examples:
  blockbuster controls
  blockbuster controls set rotate x
  blockbuster controls reset`,
	Args: cobra.NoArgs,
	RunE: runControls,
}

var controlsSetCmd = &cobra.Command{
	Use:   "set <action> <key>",
	Short: "Bind a key to an action",
	Args:  cobra.ExactArgs(2),
	RunE:  runControlsSet,
}

var controlsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default bindings",
	Args:  cobra.NoArgs,
	RunE:  runControlsReset,
}

func init() {
	controlsCmd.AddCommand(controlsSetCmd)
	controlsCmd.AddCommand(controlsResetCmd)
}

func requireControlsPath() (string, error) {
	path := controlsPath()
	if path == "" {
		return "", errors.New("cannot determine the controls file; pass --controls")
	}
	return path, nil
}

func runControls(_ *cobra.Command, _ []string) error {
	path, err := requireControlsPath()
	if err != nil {
		return err
	}
	b, loadErr := config.LoadControls(path)
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (showing defaults)\n", loadErr)
	}

	fmt.Printf("Controls (%s)\n\n", path)
	for _, a := range core.Actions() {
		fmt.Printf("  %-10s %v\n", a.Key(), b[a])
	}
	return nil
}

func runControlsSet(_ *cobra.Command, args []string) error {
	path, err := requireControlsPath()
	if err != nil {
		return err
	}
	action, ok := core.ParseAction(args[0])
	if !ok {
		return fmt.Errorf("unknown action %q", args[0])
	}

	b, err := config.LoadControls(path)
	if err != nil {
		return fmt.Errorf("controls file is broken, run 'blockbuster controls reset': %w", err)
	}
	if err := b.Set(action, args[1]); err != nil {
		return err
	}
	if err := config.SaveControls(path, b); err != nil {
		return err
	}

	fmt.Printf("%s is now bound to %s\n", action.Key(), args[1])
	return nil
}

func runControlsReset(_ *cobra.Command, _ []string) error {
	path, err := requireControlsPath()
	if err != nil {
		return err
	}
	if err := config.SaveControls(path, config.DefaultBindings()); err != nil {
		return err
	}
	fmt.Printf("Default controls written to %s\n", path)
	return nil
}
