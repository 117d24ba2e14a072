/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/filesort/filesort/internal/config"
	"github.com/filesort/filesort/internal/logging"
)

// fileSystem is the filesystem abstraction, defaults to osFs.
var fileSystem = afero.NewOsFs()

// appConfig holds the config loaded during cobra.OnInitialize; nil
// until initConfig runs.
var appConfig *config.Config

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "filesort",
	Short: "filesort is a rule-driven file organization engine.",
	Long: `filesort reads a user-authored ruleset, walks a source directory,
evaluates each file against the rules in priority order, and performs
the matched actions (move, copy, rename, delete, skip, execute,
compress) with optional dry-run semantics and template-expanded
destinations.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	cobra.OnInitialize(initConfig)
}

// initConfig loads the persistent configuration and sets up logging.
// A config-load failure is fatal: every subcommand needs a resolved
// source folder, rules file and log destination.
func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %s\n", err)
		os.Exit(1)
	}
	appConfig = cfg

	verbosity := cfg.Verbosity
	if verbose {
		verbosity = 2
	}
	logging.Setup(verbosity, cfg.LogsFolder)
}
