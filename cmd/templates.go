package cmd

import (
	"fmt"

	"github.com/mlenoir/octogym-cli/internal/templates"
	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List quick workout templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, preset := range templates.List() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), preset.Label)
			}
			return nil
		},
	}
}
