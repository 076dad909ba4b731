// ABOUTME: CLI commands for logging sets in the workout in progress.
// ABOUTME: set add, set update, set done (with optional rest) and set rm.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/spf13/cobra"
)

var (
	setWeight   float64
	setReps     int
	setDoneRest int
)

var setCmd = &cobra.Command{
	Use:     "set",
	Aliases: []string{"s"},
	Short:   "Log sets",
	Long: `Log sets for exercises in the workout in progress.

WORKFLOW:

  1. See set IDs:          lift status
  2. Enter weight/reps:    lift set update 1a2b3c4d -w 225 -r 5
  3. Mark it done:         lift set done 1a2b3c4d --rest
  4. Add the next set:     lift set add 9f8e7d6c -w 225 -r 5

COMMANDS:

  add      Append a set to an exercise
  update   Change weight and/or reps
  done     Toggle a set done (optionally start the rest timer)
  rm       Delete a set`,
}

var setAddCmd = &cobra.Command{
	Use:   "add <exercise-id>",
	Short: "Append a set to an exercise",
	Long: `Append a set to an exercise. It is numbered one past the current set count.

EXAMPLES:

  lift set add 9f8e7d6c
  lift set add 9f8e7d6c -w 135 -r 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exID, err := db.ResolveExerciseID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		setID, err := sess.AddNewSet(cmd.Context(), exID)
		if err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}

		if update := setUpdateFromFlags(cmd); !update.IsEmpty() {
			if err := sess.UpdateSet(cmd.Context(), setID, update); err != nil {
				return fmt.Errorf("failed to update set: %w", err)
			}
		}

		s := activeSet(setID)
		color.Green("✓ Added set %d", s.SetNumber)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(shortID(setID)), formatSet(*s, weightUnit()))
		return nil
	},
}

var setUpdateCmd = &cobra.Command{
	Use:     "update <set-id>",
	Aliases: []string{"u"},
	Short:   "Update a set's weight and/or reps",
	Long: `Update a set's weight and/or reps. Flags that are not given are left alone.
Negative values are ignored.

EXAMPLES:

  lift set update 1a2b3c4d -w 225 -r 5
  lift set update 1a2b3c4d --reps 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update := setUpdateFromFlags(cmd)
		if update.IsEmpty() {
			return fmt.Errorf("nothing to update: use --weight and/or --reps")
		}

		setID, err := db.ResolveSetID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := sess.UpdateSet(cmd.Context(), setID, update); err != nil {
			return fmt.Errorf("failed to update set: %w", err)
		}

		s := activeSet(setID)
		color.Green("✓ Updated set %d", s.SetNumber)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(shortID(setID)), formatSet(*s, weightUnit()))
		return nil
	},
}

var setDoneCmd = &cobra.Command{
	Use:   "done <set-id>",
	Short: "Toggle a set done",
	Long: `Toggle a set between done and not done.

With --rest, marking a set done starts the rest timer in the foreground.
--rest alone uses the default rest from your profile; --rest=60 rests 60 seconds.
Press Ctrl-C to skip the rest.

EXAMPLES:

  lift set done 1a2b3c4d
  lift set done 1a2b3c4d --rest
  lift set done 1a2b3c4d --rest=120`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setID, err := db.ResolveSetID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		completed, err := sess.ToggleSetCompleted(cmd.Context(), setID)
		if err != nil {
			return fmt.Errorf("failed to toggle set: %w", err)
		}

		s := activeSet(setID)
		if !completed {
			color.Yellow("○ Set %d not done", s.SetNumber)
			return nil
		}
		color.Green("✓ Set %d done", s.SetNumber)

		if setDoneRest == 0 {
			return nil
		}
		seconds := setDoneRest
		if seconds < 0 {
			seconds = restSeconds()
		}
		return runRestTimer(cmd.Context(), seconds)
	},
}

var setRmCmd = &cobra.Command{
	Use:     "rm <set-id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a set",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setID, err := db.ResolveSetID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := sess.DeleteSet(cmd.Context(), setID); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}

		color.Yellow("✗ Deleted set %s", shortID(setID))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{setAddCmd, setUpdateCmd} {
		c.Flags().Float64VarP(&setWeight, "weight", "w", 0, "weight in your preferred unit")
		c.Flags().IntVarP(&setReps, "reps", "r", 0, "repetitions")
	}

	setDoneCmd.Flags().IntVar(&setDoneRest, "rest", 0, "start a rest timer for this many seconds (default from profile)")
	setDoneCmd.Flags().Lookup("rest").NoOptDefVal = "-1"

	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setUpdateCmd)
	setCmd.AddCommand(setDoneCmd)
	setCmd.AddCommand(setRmCmd)
	rootCmd.AddCommand(setCmd)
}

// setUpdateFromFlags builds an update from the flags the user actually gave.
func setUpdateFromFlags(cmd *cobra.Command) models.SetUpdate {
	var update models.SetUpdate
	if cmd.Flags().Changed("weight") {
		update.Weight = models.Ptr(setWeight)
	}
	if cmd.Flags().Changed("reps") {
		update.Reps = models.Ptr(setReps)
	}
	return update
}

// activeSet finds a set in the cached workout.
func activeSet(setID string) *models.ExerciseSet {
	w := sess.Active()
	if w != nil {
		for i := range w.Exercises {
			for j := range w.Exercises[i].Sets {
				if w.Exercises[i].Sets[j].ID == setID {
					return &w.Exercises[i].Sets[j]
				}
			}
		}
	}
	// Not reached after a successful mutation.
	return &models.ExerciseSet{ID: setID}
}
