// ABOUTME: CLI commands for browsing and extending the exercise catalog.
// ABOUTME: exercises (list/filter), exercise show and exercise add.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/spf13/cobra"
)

var (
	exercisesCategory string
	exercisesMuscle   string
	exercisesSearch   string

	exerciseAddCategory    string
	exerciseAddPrimary     []string
	exerciseAddSecondary   []string
	exerciseAddEquipment   []string
	exerciseAddDescription string
)

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ls", "list"},
	Short:   "List the exercise catalog",
	Long: `List exercises in the catalog, sorted by name.

FILTERING:

  --category, -c   strength, cardio or flexibility
  --muscle, -m     primary muscle group: chest, back, shoulders,
                   biceps, triceps, forearms, quadriceps, hamstrings,
                   glutes, calves, abs, traps, lats, cardio
  --search, -s     case-insensitive substring of the name

  Filters combine.

EXAMPLES:

  lift exercises
  lift exercises -m chest
  lift exercises -c cardio
  lift exercises -s press`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exercisesCategory != "" && !models.IsValidCategory(exercisesCategory) {
			return fmt.Errorf("unknown category: %s", exercisesCategory)
		}
		if exercisesMuscle != "" && !models.IsValidMuscleGroup(exercisesMuscle) {
			return fmt.Errorf("unknown muscle group: %s", exercisesMuscle)
		}

		types, err := queryCatalog(cmd.Context(), exercisesCategory, exercisesMuscle, exercisesSearch)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		if len(types) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, et := range types {
			custom := ""
			if et.IsCustom {
				custom = color.CyanString(" (custom)")
			}
			fmt.Printf("%s %s %s%s\n",
				padRight(et.Name, 28),
				faint.Sprint(padRight(string(et.Category), 12)),
				faint.Sprint(strings.Join(et.PrimaryMuscleGroups, ", ")),
				custom)
			fmt.Printf("  %s\n", faint.Sprint(et.ID))
		}
		return nil
	},
}

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Show or create catalog exercises",
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <exercise-type-id>",
	Short: "Show an exercise with your history and personal best",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		et, err := db.GetExerciseType(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get exercise: %w", err)
		}
		if et == nil {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		faint := color.New(color.Faint)
		bold := color.New(color.Bold)
		unit := weightUnit()

		bold.Println(et.Name)
		fmt.Printf("  ID:        %s\n", et.ID)
		fmt.Printf("  Category:  %s\n", et.Category)
		if len(et.PrimaryMuscleGroups) > 0 {
			fmt.Printf("  Primary:   %s\n", strings.Join(et.PrimaryMuscleGroups, ", "))
		}
		if len(et.SecondaryMuscleGroups) > 0 {
			fmt.Printf("  Secondary: %s\n", strings.Join(et.SecondaryMuscleGroups, ", "))
		}
		if len(et.Equipment) > 0 {
			fmt.Printf("  Equipment: %s\n", strings.Join(et.Equipment, ", "))
		}
		if et.Description != "" {
			fmt.Printf("\n  %s\n", et.Description)
		}

		best, ok, err := db.GetPersonalBest(ctx, et.ID)
		if err != nil {
			return fmt.Errorf("failed to get personal best: %w", err)
		}
		if ok {
			fmt.Println()
			color.Green("★ Personal best: %s", formatWeight(best, unit))
		}

		history, err := db.GetExerciseHistory(ctx, et.ID, 10)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}
		fmt.Println()
		if len(history) == 0 {
			fmt.Println("No completed sessions yet.")
			return nil
		}

		now := time.Now()
		for _, entry := range history {
			fmt.Printf("%s  %s\n", bold.Sprint(padRight(formatRelativeDate(entry.Date, now), 14)), faint.Sprint(entry.WorkoutName))
			for _, s := range entry.Sets {
				mark := " "
				if s.Completed {
					mark = color.GreenString("✓")
				}
				fmt.Printf("  %s %d  %s\n", mark, s.SetNumber, formatSet(s, unit))
			}
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a custom exercise",
	Long: `Create a custom exercise in the catalog.

EXAMPLES:

  lift exercise add "Sled Push" -c strength --primary quadriceps,glutes
  lift exercise add "Jump Rope" -c cardio --primary cardio --equipment rope`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, mg := range append(append([]string{}, exerciseAddPrimary...), exerciseAddSecondary...) {
			if !models.IsValidMuscleGroup(mg) {
				return fmt.Errorf("unknown muscle group: %s", mg)
			}
		}

		et := models.NewCustomExerciseType(args[0], models.Category(exerciseAddCategory)).
			WithMuscleGroups(nonNil(exerciseAddPrimary), nonNil(exerciseAddSecondary)).
			WithEquipment(nonNil(exerciseAddEquipment)...).
			WithDescription(exerciseAddDescription)

		if err := db.CreateCustomExercise(cmd.Context(), et); err != nil {
			return fmt.Errorf("failed to create exercise: %w", err)
		}

		color.Green("✓ Created %s", et.Name)
		fmt.Printf("  ID: %s\n", et.ID)
		return nil
	},
}

func init() {
	exercisesCmd.Flags().StringVarP(&exercisesCategory, "category", "c", "", "filter by category")
	exercisesCmd.Flags().StringVarP(&exercisesMuscle, "muscle", "m", "", "filter by muscle group")
	exercisesCmd.Flags().StringVarP(&exercisesSearch, "search", "s", "", "search by name")

	exerciseAddCmd.Flags().StringVarP(&exerciseAddCategory, "category", "c", string(models.CategoryStrength), "strength, cardio or flexibility")
	exerciseAddCmd.Flags().StringSliceVar(&exerciseAddPrimary, "primary", nil, "primary muscle groups")
	exerciseAddCmd.Flags().StringSliceVar(&exerciseAddSecondary, "secondary", nil, "secondary muscle groups")
	exerciseAddCmd.Flags().StringSliceVar(&exerciseAddEquipment, "equipment", nil, "equipment needed")
	exerciseAddCmd.Flags().StringVarP(&exerciseAddDescription, "description", "d", "", "short description")

	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(exerciseCmd)
}

// queryCatalog runs the narrowest catalog query for the given filters and
// applies the rest in memory.
func queryCatalog(ctx context.Context, category, muscle, search string) ([]*models.ExerciseType, error) {
	var types []*models.ExerciseType
	var err error
	switch {
	case search != "":
		types, err = db.SearchExerciseTypes(ctx, search)
	case muscle != "":
		types, err = db.ListExerciseTypesByMuscleGroup(ctx, muscle)
	case category != "":
		types, err = db.ListExerciseTypesByCategory(ctx, models.Category(category))
	default:
		types, err = db.ListExerciseTypes(ctx)
	}
	if err != nil {
		return nil, err
	}
	return filterCatalog(types, category, muscle), nil
}

func filterCatalog(types []*models.ExerciseType, category, muscle string) []*models.ExerciseType {
	out := make([]*models.ExerciseType, 0, len(types))
	for _, et := range types {
		if category != "" && string(et.Category) != category {
			continue
		}
		if muscle != "" && !hasMuscle(et, muscle) {
			continue
		}
		out = append(out, et)
	}
	return out
}

func hasMuscle(et *models.ExerciseType, muscle string) bool {
	for _, mg := range et.PrimaryMuscleGroups {
		if mg == muscle {
			return true
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
