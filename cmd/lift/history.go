// ABOUTME: CLI commands for completed workouts and per-exercise progress.
// ABOUTME: history, history show and progress.
package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyOffset int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List completed workouts",
	Long: `List completed workouts, newest first.

OUTPUT FORMAT:

  Each line shows: ID  WHEN  NAME  DURATION

  The ID is an 8-character prefix you can use with 'lift history show'.

EXAMPLES:

  lift history                 # last 20 workouts
  lift history -n 5            # last 5
  lift history -n 20 --offset 20
  lift history show 1a2b3c4d   # full workout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := db.GetWorkoutHistory(cmd.Context(), user.ID, historyLimit, historyOffset)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No completed workouts yet.")
			return nil
		}

		faint := color.New(color.Faint)
		now := time.Now()
		for _, w := range workouts {
			notes := ""
			if w.Notes != nil && *w.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*w.Notes, 30))
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprint(shortID(w.ID)),
				faint.Sprint(padRight(formatRelativeDate(w.Date, now), 14)),
				padRight(truncate(w.Name, 30), 30),
				formatDuration(w.DurationSeconds),
				notes)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <workout-id>",
	Short: "Show a workout with all exercises and sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := db.ResolveWorkoutID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		summary, err := db.GetWorkoutSummary(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to summarize workout: %w", err)
		}
		if summary == nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}
		w, err := db.GetWorkout(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		printWorkout(w, *summary)
		if w.CompletedAt != nil {
			fmt.Printf("Completed: %s (%s)\n", w.CompletedAt.Local().Format("Mon, Jan 2 2006 15:04"), humanize.Time(*w.CompletedAt))
		} else {
			color.Yellow("In progress")
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show exercises you've logged and your personal bests",
	Long: `Show every exercise that appears in a completed workout, most frequent
first, with session counts and personal bests.

See 'lift exercise show <id>' for one exercise's full history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		recent, err := db.GetRecentWorkoutCount(ctx, user.ID, 7)
		if err != nil {
			return fmt.Errorf("failed to count workouts: %w", err)
		}
		logged, err := db.GetLoggedExerciseTypes(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get logged exercises: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		unit := weightUnit()

		bold.Printf("%s in the last 7 days\n", pluralize(recent, "workout"))
		if len(logged) == 0 {
			fmt.Println("\nNo exercises logged yet.")
			return nil
		}

		fmt.Println()
		for _, l := range logged {
			best := faint.Sprint("-")
			weight, ok, err := db.GetPersonalBest(ctx, l.ExerciseTypeID)
			if err != nil {
				return fmt.Errorf("failed to get personal best: %w", err)
			}
			if ok {
				best = formatWeight(weight, unit)
			}
			fmt.Printf("%s %s %s\n",
				padRight(truncate(l.ExerciseName, 28), 28),
				padRight(pluralize(l.SessionCount, "session"), 12),
				best)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of workouts")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "skip this many workouts")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(progressCmd)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
