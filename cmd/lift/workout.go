// ABOUTME: CLI commands for the workout in progress.
// ABOUTME: start, status, add, remove, notes, finish and cancel.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/session"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [name]",
	Short: "Start a workout",
	Long: `Start a new workout. Without a name, one is made from today's date.

Only one workout can be in progress. If one already is, it is shown instead.

EXAMPLES:

  lift start                 # "Workout - Mon, Jun 2"
  lift start "Leg Day"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		w, err := sess.StartWorkout(cmd.Context(), name)
		if errors.Is(err, session.ErrWorkoutActive) {
			color.Yellow("⚠ %s is already in progress (started %s ago)", w.Name, formatDuration(int(sess.Elapsed().Seconds())))
			fmt.Println("  Finish it with 'lift finish' or discard it with 'lift cancel'.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		color.Green("✓ Started %s", w.Name)
		fmt.Printf("  ID: %s\n", shortID(w.ID))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the workout in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := sess.Active()
		if w == nil {
			fmt.Println("No workout in progress. Start one with 'lift start'.")
			return nil
		}
		summary := models.Summarize(w)
		summary.DurationSeconds = int(sess.Elapsed().Seconds())
		printWorkout(w, summary)
		return nil
	},
}

var addExerciseCmd = &cobra.Command{
	Use:     "add <exercise-type-id>",
	Aliases: []string{"a"},
	Short:   "Add an exercise to the workout",
	Long: `Add an exercise from the catalog to the workout in progress.
The exercise starts with one empty set.

EXAMPLES:

  lift add barbell-squat
  lift add deadlift

Find exercise type IDs with 'lift exercises'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, err := db.GetExerciseType(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get exercise: %w", err)
		}
		if et == nil {
			return fmt.Errorf("exercise not found: %s (see 'lift exercises')", args[0])
		}

		id, err := sess.AddExercise(cmd.Context(), et.ID)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		ex := sess.Active().FindExercise(id)
		color.Green("✓ Added %s", et.Name)
		fmt.Printf("  ID: %s\n", shortID(id))
		if ex != nil && len(ex.Sets) > 0 {
			fmt.Printf("  Set 1: %s\n", shortID(ex.Sets[0].ID))
		}
		return nil
	},
}

var removeExerciseCmd = &cobra.Command{
	Use:     "remove <exercise-id>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise and its sets from the workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := db.ResolveExerciseID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		name := id
		if ex := activeExercise(id); ex != nil && ex.ExerciseType != nil {
			name = ex.ExerciseType.Name
		}

		if err := sess.RemoveExercise(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}

		color.Yellow("✗ Removed %s", name)
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <text>",
	Short: "Set notes on the workout in progress",
	Long:  `Replace the notes on the workout in progress. Pass "" to clear them.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.UpdateNotes(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to update notes: %w", err)
		}
		color.Green("✓ Notes saved")
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish and save the workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := sess.FinishWorkout(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}

		summary := models.Summarize(w)
		color.Green("✓ Finished %s", w.Name)
		fmt.Printf("  Duration: %s\n", formatDuration(w.DurationSeconds))
		fmt.Printf("  Exercises: %d  Sets: %d/%d\n", summary.ExerciseCount, summary.CompletedSets, summary.TotalSets)
		fmt.Printf("  Volume: %s\n", formatVolume(summary.Volume, weightUnit()))
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the workout in progress",
	Long: `Discard the workout in progress and everything logged in it.

CAUTION:

  This permanently deletes the workout. There is no undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := sess.Active()
		if err := sess.CancelWorkout(cmd.Context()); err != nil {
			return fmt.Errorf("failed to cancel workout: %w", err)
		}
		color.Yellow("✗ Discarded %s", w.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addExerciseCmd)
	rootCmd.AddCommand(removeExerciseCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(cancelCmd)
}

// printWorkout prints a workout with its exercises and sets.
func printWorkout(w *models.Workout, summary models.WorkoutSummary) {
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)
	unit := weightUnit()

	bold.Printf("%s", w.Name)
	fmt.Printf("  %s\n", faint.Sprint(shortID(w.ID)))
	fmt.Printf("Elapsed: %s\n", formatDuration(summary.DurationSeconds))
	if w.Notes != nil {
		fmt.Printf("Notes: %s\n", *w.Notes)
	}

	if len(w.Exercises) == 0 {
		fmt.Println("\nNo exercises yet. Add one with 'lift add <exercise-type-id>'.")
		return
	}

	for _, ex := range w.Exercises {
		name := ex.ExerciseTypeID
		if ex.ExerciseType != nil {
			name = ex.ExerciseType.Name
		}
		fmt.Println()
		fmt.Printf("%s %s\n", faint.Sprint(shortID(ex.ID)), bold.Sprint(name))
		for _, s := range ex.Sets {
			mark := "[ ]"
			if s.Completed {
				mark = color.GreenString("[x]")
			}
			fmt.Printf("  %s %s %d  %s\n", faint.Sprint(shortID(s.ID)), mark, s.SetNumber, formatSet(s, unit))
		}
	}

	fmt.Println()
	fmt.Printf("Sets: %d/%d  Volume: %s\n", summary.CompletedSets, summary.TotalSets, formatVolume(summary.Volume, unit))
}

// activeExercise finds an exercise instance in the cached workout.
func activeExercise(id string) *models.WorkoutExercise {
	w := sess.Active()
	if w == nil {
		return nil
	}
	return w.FindExercise(id)
}
