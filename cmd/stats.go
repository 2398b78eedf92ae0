package cmd

import (
	"encoding/json"
	"fmt"

	statsadapter "github.com/mlenoir/octogym-cli/internal/adapters/render/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show training stats derived from your workout history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				if err := app.store.Load(cmd.Context()); err != nil {
					return err
				}
			} else {
				if err := runNetworkSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading workouts...", app.store.Load); err != nil {
					return err
				}
			}

			snapshot := app.store.Stats()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}

			rendered, err := app.statsRenderer(snapshot, statsadapter.RenderOptions{
				Email: app.session.Current().Email,
			})
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
