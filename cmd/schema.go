package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-checker/internal/report"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the json report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := io.WriteString(cmd.OutOrStdout(), report.Schema())
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
