package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "og",
		Short:         "OctoGym CLI (og): log workouts and watch your hard work add up",
		Long:          "og (OctoGym CLI) keeps your workout history in sync with the OctoGym record store and derives training stats: totals, daily goal progress, a 7-day trend, intensity mix, and your activity streak.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newWorkoutCmd(app),
		newStatsCmd(app),
		newTemplatesCmd(),
		newThemeCmd(app),
	)

	return rootCmd
}
