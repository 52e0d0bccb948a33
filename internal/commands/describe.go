package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dbform/pkg/orchestrator"
)

func newDescribeCmd() *cobra.Command {
	opts := &sourceOptions{}

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the synthesized descriptors as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, cleanup, err := opts.request()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := orchestrator.New().Prepare(cmd.Context(), req)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(result.Form, "", "  ")
			if err != nil {
				return fmt.Errorf("encode form model: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	opts.bind(cmd)
	return cmd
}
