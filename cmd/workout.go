package cmd

import (
	"fmt"

	"github.com/mlenoir/octogym-cli/internal/domain"
	"github.com/mlenoir/octogym-cli/internal/templates"
	"github.com/spf13/cobra"
)

func newWorkoutCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Manage workout records",
	}

	cmd.AddCommand(
		newWorkoutListCmd(app),
		newWorkoutAddCmd(app),
		newWorkoutEditCmd(app),
		newWorkoutRemoveCmd(app),
	)

	return cmd
}

func newWorkoutListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your workout history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runNetworkSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading workouts...", app.store.Load); err != nil {
				return err
			}

			records := app.store.Records()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No workouts yet. LOCK IN!")
				return nil
			}

			for _, record := range records {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatWorkout(record))
			}

			return nil
		},
	}
}

func newWorkoutAddCmd(app *app) *cobra.Command {
	var flags workoutFlags
	var template string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var draft domain.WorkoutDraft
			if template != "" {
				preset, ok := templates.Find(template)
				if !ok {
					return fmt.Errorf("%w: unknown template %q", domain.ErrValidation, template)
				}
				draft = preset.Draft()
			}

			if err := flags.apply(cmd, &draft); err != nil {
				return err
			}

			created, err := app.store.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatWorkout(created))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&template, "template", "", "Prefill from a quick template (see `og templates`)")

	return cmd
}

func newWorkoutEditCmd(app *app) *cobra.Command {
	var id int
	var flags workoutFlags

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a workout by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runNetworkSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading workouts...", app.store.Load); err != nil {
				return err
			}

			// prefill from the tracked record when we have it; an id the
			// local collection is behind on is still sent to the server
			draft := domain.WorkoutDraft{}
			for _, record := range app.store.Records() {
				if record.ID == domain.WorkoutID(id) {
					draft = domain.WorkoutDraft{
						Type:            record.Type,
						DurationMinutes: record.DurationMinutes,
						Intensity:       record.Intensity,
						Date:            record.Date,
					}
					break
				}
			}

			if err := flags.apply(cmd, &draft); err != nil {
				return err
			}

			updated, err := app.store.Update(cmd.Context(), domain.WorkoutID(id), draft)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatWorkout(updated))
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Workout id")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newWorkoutRemoveCmd(app *app) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"delete"},
		Short:   "Delete a workout by id",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.store.Delete(cmd.Context(), domain.WorkoutID(id)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout #%d\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Workout id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// workoutFlags carries the draft fields shared by add and edit. Duration is
// kept as raw text until submission so bad input fails local validation
// instead of flag parsing.
type workoutFlags struct {
	workoutType string
	duration    string
	intensity   string
	date        string
}

func (f *workoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.workoutType, "type", "", "Workout type (Jogging, lifting, yoga...)")
	cmd.Flags().StringVar(&f.duration, "duration", "", "Duration in minutes")
	cmd.Flags().StringVar(&f.intensity, "intensity", "", "Intensity (Low, Medium, High)")
	cmd.Flags().StringVar(&f.date, "date", "", "Calendar date (YYYY-MM-DD, defaults to today)")
}

func (f *workoutFlags) apply(cmd *cobra.Command, draft *domain.WorkoutDraft) error {
	if cmd.Flags().Changed("type") {
		draft.Type = f.workoutType
	}
	if cmd.Flags().Changed("duration") {
		minutes, err := domain.ParseDurationMinutes(f.duration)
		if err != nil {
			return err
		}
		draft.DurationMinutes = minutes
	}
	if cmd.Flags().Changed("intensity") {
		draft.Intensity = f.intensity
	}
	if cmd.Flags().Changed("date") {
		draft.Date = f.date
	}
	return nil
}

func formatWorkout(record domain.Workout) string {
	date := record.Date
	if date == "" {
		date = "undated"
	}
	return fmt.Sprintf("#%d %s: %d min (%s) on %s", record.ID, record.Type, record.DurationMinutes, record.Intensity, date)
}
