package cmd

import (
	"fmt"

	"github.com/mlenoir/octogym-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newThemeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the display theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				theme, err := app.prefs.Theme(cmd.Context())
				if err != nil {
					return err
				}
				if theme == "" {
					theme = "light"
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			}

			theme := args[0]
			if theme != "dark" && theme != "light" {
				return fmt.Errorf("%w: theme must be dark or light", domain.ErrValidation)
			}

			if err := app.prefs.SetTheme(cmd.Context(), theme); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
			return nil
		},
	}
}
