package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dbform/pkg/orchestrator"
)

type renderOptions struct {
	source   sourceOptions
	renderer string
	output   string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the HTML form for a table",
		Example: `  # Blank form from a metadata file
  dbform render -f users.yaml

  # Edit form prefilled from a values file, table layout
  dbform render -f users.yaml --values user_7.yaml --renderer table

  # Straight from MySQL
  dbform render --mysql 'app:secret@tcp(localhost:3306)/app' -t users`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	opts.source.bind(cmd)
	cmd.Flags().StringVarP(&opts.renderer, "renderer", "r", "", "Renderer name (vanilla, table)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	req, cleanup, err := opts.source.request()
	if err != nil {
		return err
	}
	defer cleanup()

	req.Renderer = opts.renderer
	if req.Renderer == "" && req.Config != nil {
		req.Renderer = req.Config.Renderer
	}

	output, err := orchestrator.New().Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", opts.output)
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return err
}
