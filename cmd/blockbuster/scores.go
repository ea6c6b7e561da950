package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbuster/internal/registry"
	"github.com/vovakirdan/blockbuster/internal/storage"
)

var (
	flagClear  bool
	flagPreset string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores for a preset",
	Long: `Display the high-score table for the specified preset
(default: blockbuster).

Examples:
  blockbuster scores
  blockbuster scores blockbuster_classic
  blockbuster scores --clear
  blockbuster scores export top.txt
  blockbuster scores import top.txt --preset blockbuster_classic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var scoresExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the high-score table as score|level|name lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runScoresExport,
}

var scoresImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add score|level|name lines to the high-score table",
	Long: `Read a table written by 'scores export'. Blank lines and lines
starting with # are ignored; malformed lines are skipped and counted.`,
	Args: cobra.ExactArgs(1),
	RunE: runScoresImport,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the preset")
	scoresCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Preset for export/import (default: blockbuster)")
	scoresCmd.AddCommand(scoresExportCmd)
	scoresCmd.AddCommand(scoresImportCmd)
}

func openStoreStrict() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening scores database: %w", err)
	}
	return store, nil
}

func presetFlag() (string, error) {
	if flagPreset == "" {
		return presetArg(nil)
	}
	return presetArg([]string{flagPreset})
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := presetArg(args)
	if err != nil {
		return err
	}
	info, _ := registry.Lookup(gameID)

	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared high scores for %s.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, storage.DefaultSlots)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockbuster play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-16s  %s\n", "Rank", "Score", "Level", "Name", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-16s  %s\n", "----", "-----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-16s  %s\n", i+1, entry.Score, entry.Level, entry.Name, dateStr)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Best level: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestLevel, stats.AvgScore)
	}
	return nil
}

func runScoresExport(_ *cobra.Command, args []string) error {
	gameID, err := presetFlag()
	if err != nil {
		return err
	}

	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	n, err := store.Export(f, gameID, storage.DefaultSlots)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("exporting scores: %w", err)
	}

	fmt.Printf("Exported %d scores to %s\n", n, args[0])
	return nil
}

func runScoresImport(_ *cobra.Command, args []string) error {
	gameID, err := presetFlag()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := store.Import(f, gameID)
	if err != nil {
		return fmt.Errorf("importing scores: %w", err)
	}

	fmt.Printf("Imported %d scores", res.Imported)
	if res.Skipped > 0 {
		fmt.Printf(" (%d malformed lines skipped)", res.Skipped)
	}
	fmt.Println()
	if res.Imported == 0 && res.Skipped > 0 {
		return errors.New("no valid score lines found")
	}
	return nil
}
