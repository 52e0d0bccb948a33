// Package commands contains the dbform CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dbform",
		Short:         "Generate HTML forms from table column metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRenderCmd(),
		newPromptCmd(),
		newDescribeCmd(),
		newKindsCmd(),
	)
	return rootCmd
}
