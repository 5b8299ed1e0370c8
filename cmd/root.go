package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ultistats/go-ufa-metrics/internal/config"
)

var (
	cfg    *config.Config
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "ufametrics",
	Short: "UFA possession metrics tool",
	Long:  "Derive points, possessions, and efficiency metrics from UFA play-by-play event streams.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		// Fall back to defaults; the bad source is reported once on stderr.
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		cfg = config.New()
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(efficiencyCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(dropCmd)
}
