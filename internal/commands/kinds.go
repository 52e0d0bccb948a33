package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dbform/pkg/config"
	"github.com/goliatone/go-dbform/pkg/model"
)

func newKindsCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List input kinds and the base type table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types := model.DefaultTypeMap()
			if configFile != "" {
				cfg, err := config.Load(configFile)
				if err != nil {
					return err
				}
				if types, err = cfg.TypeMap(); err != nil {
					return err
				}
			}

			kinds := make([]string, 0, len(model.InputKinds()))
			for _, kind := range model.InputKinds() {
				kinds = append(kinds, string(kind))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Kinds: %s\n\n", strings.Join(kinds, ", "))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tKIND")
			for _, baseType := range types.Types() {
				kind, _ := types.Lookup(baseType)
				fmt.Fprintf(w, "%s\t%s\n", baseType, kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "dbform.yaml whose type overrides to include")
	return cmd
}
