/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/filesort/filesort/internal/action"
	"github.com/filesort/filesort/internal/history"
	"github.com/filesort/filesort/internal/rules"
	"github.com/filesort/filesort/internal/sorter"
)

var (
	sortSource  string
	sortRuleIDs string
	sortDryRun  bool
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Walk a source directory and apply the ruleset to every file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := sortSource
		if source == "" {
			source = appConfig.SourceFolder
		}

		store := rules.NewStore(fileSystem, appConfig.RulesFile)
		ruleset, err := store.Load()
		if err != nil {
			return err
		}

		var ruleIDs []string
		if sortRuleIDs != "" {
			ruleIDs = strings.Split(sortRuleIDs, ",")
		}

		trash, err := action.NewFreedesktopTrash()
		if err != nil {
			return fmt.Errorf("resolve trash directory: %w", err)
		}
		s := sorter.New(fileSystem, action.OSCommandRunner{}, trash)

		started := time.Now()
		report, err := s.Sort(context.Background(), source, ruleset, sorter.Options{
			DryRun:  sortDryRun,
			RuleIDs: ruleIDs,
		})
		if err != nil {
			return err
		}
		ended := time.Now()

		if h, err := history.Open(appConfig.HistoryDB); err == nil {
			defer h.Close()
			_, _ = h.Record(source, started, ended, report)
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringVar(&sortSource, "source", "", "source directory (defaults to the configured source folder)")
	sortCmd.Flags().StringVar(&sortRuleIDs, "rules", "", "comma-separated rule id allowlist")
	sortCmd.Flags().BoolVar(&sortDryRun, "dry-run", false, "record intended outcomes without touching the filesystem")
}
