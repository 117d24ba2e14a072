/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/filesort/filesort/internal/rules"
)

func ruleStore() *rules.Store {
	return rules.NewStore(fileSystem, appConfig.RulesFile)
}

var addCmd = &cobra.Command{
	Use:   "add FILE",
	Short: "Add a rule from a YAML file to the ruleset.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read rule file: %w", err)
		}
		var r rules.Rule
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("parse rule file: %w", err)
		}
		if err := ruleStore().Add(r); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added rule %q\n", r.ID)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a rule by id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ruleStore().Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed rule %q\n", args[0])
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Toggle a rule's enabled flag.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ruleStore().Toggle(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Toggled rule %q\n", args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every rule in the ruleset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := ruleStore().List()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tENABLED\tPRIORITY")
		for _, r := range rs {
			fmt.Fprintf(w, "%s\t%s\t%t\t%d\n", r.ID, r.Name, r.Enabled, r.Priority)
		}
		return w.Flush()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export ID PATH",
	Short: "Export a single rule to a standalone YAML file.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ruleStore().Export(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported rule %q to %s\n", args[0], args[1])
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the ruleset without applying it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := ruleStore().Load()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d rule(s) valid\n", len(rs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd, removeCmd, toggleCmd, listCmd, exportCmd, validateCmd)
}
