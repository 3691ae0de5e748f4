// Package cli wires the taskpull commands: pull, records, check, version.
package cli

import (
	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	dataDir    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "taskpull",
	Short: "Pull issues and pull requests into a local task store",
	Long: `taskpull imports issues, pull requests and search results from a
GitHub-compatible API, filters them by ownership and inclusion policy, and
normalises each surviving item into a flat task record in a local store.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the config file (default ~/.taskpull/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"path to the data directory (default ~/.taskpull/data)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
