package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var email string
	var password string
	var loginAfter bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an OctoGym account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// a failed registration must never attempt the follow-up login
			if err := app.session.Register(cmd.Context(), email, password); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", email)

			if !loginAfter {
				return nil
			}
			return establishSession(cmd, app, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().BoolVar(&loginAfter, "login", false, "Log in right after registering")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and load your workout history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return establishSession(cmd, app, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// establishSession logs in and hydrates the workout collection, the
// once-per-session load.
func establishSession(cmd *cobra.Command, app *app, email, password string) error {
	if err := app.session.Login(cmd.Context(), email, password); err != nil {
		return err
	}

	if err := runNetworkSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading workouts...", app.store.Load); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%d workouts)\n",
		app.session.Current().Email, len(app.store.Records()))
	return nil
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := app.session.Current()
			if !session.Established() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), session.Email)
			return nil
		},
	}
}
