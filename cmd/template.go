/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const exampleRuleYAML = `rules:
  - id: move-jpegs
    name: Move JPEGs into Pictures
    enabled: false
    priority: 1
    when:
      extensions: [jpg, jpeg]
    then:
      - move:
          to: "~/Pictures"
          preserve_structure: false

  - id: archive-old-logs
    name: Compress logs last modified before 2025
    enabled: false
    priority: 5
    when:
      extensions: [log]
      modified_date:
        to: "2025-01-01"
    then:
      - compress:
          to: "~/Archive/logs"
`

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print an example rule file to get started.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), exampleRuleYAML)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
