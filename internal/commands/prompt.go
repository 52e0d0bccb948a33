package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dbform/pkg/orchestrator"
	"github.com/goliatone/go-dbform/pkg/render"
	"github.com/goliatone/go-dbform/pkg/renderers/tui"
)

type promptOptions struct {
	source sourceOptions
	format string
	driver tui.PromptDriver
}

func newPromptCmd() *cobra.Command {
	opts := &promptOptions{}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Collect column values interactively",
		Long: `Walk every visible column in the terminal and print the collected
values. Current values from --values and schema defaults prefill the prompts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrompt(cmd, opts)
		},
	}

	opts.source.bind(cmd)
	cmd.Flags().StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "Output format (json, form, pretty)")
	return cmd
}

func runPrompt(cmd *cobra.Command, opts *promptOptions) error {
	format, err := parseOutputFormat(opts.format)
	if err != nil {
		return err
	}

	req, cleanup, err := opts.source.request()
	if err != nil {
		return err
	}
	defer cleanup()

	driver := opts.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(cmd.ErrOrStderr())
	}
	renderer, err := tui.New(tui.WithPromptDriver(driver), tui.WithOutputFormat(format))
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		return err
	}

	req.Renderer = renderer.Name()
	output, err := orchestrator.New(orchestrator.WithRegistry(registry)).Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return err
}

func parseOutputFormat(raw string) (tui.OutputFormat, error) {
	switch format := tui.OutputFormat(raw); format {
	case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, form or pretty)", raw)
	}
}
