/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/filesort/filesort/internal/history"
)

var historyListLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past sort runs.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sort runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := history.Open(appConfig.HistoryDB)
		if err != nil {
			return err
		}
		defer h.Close()

		runs, err := h.List(historyListLimit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tSCANNED\tMATCHED\tSTARTED")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", r.ID, r.Source, r.ScannedN, r.MatchedN, r.StartedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show a single run's detail.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id: %w", err)
		}
		h, err := history.Open(appConfig.HistoryDB)
		if err != nil {
			return err
		}
		defer h.Close()

		run, err := h.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "source: %s\nscanned: %d\nmatched: %d\ncancelled: %t\ndry_run: %t\nper_action: %s\n",
			run.Source, run.ScannedN, run.MatchedN, run.Cancelled, run.DryRun, run.PerAction)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	historyListCmd.Flags().IntVar(&historyListLimit, "limit", 20, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
