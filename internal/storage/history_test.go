// ABOUTME: Tests for aggregate queries over completed workouts.
// ABOUTME: Exercise history, recent counts, logged types and personal bests.
package storage

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/lift/internal/models"
)

// logWorkout records a completed workout with one exercise per type id,
// each carrying a single completed set at weight.
func logWorkout(t *testing.T, db *DB, userID, name string, weight float64, typeIDs ...string) string {
	t.Helper()
	ctx := context.Background()

	workoutID, err := db.CreateWorkout(ctx, userID, name)
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	for i, typeID := range typeIDs {
		exID, err := db.AddExerciseToWorkout(ctx, workoutID, typeID, i)
		if err != nil {
			t.Fatalf("AddExerciseToWorkout failed: %v", err)
		}
		w, _ := db.GetWorkout(ctx, workoutID)
		setID := w.FindExercise(exID).Sets[0].ID
		if err := db.UpdateSet(ctx, setID, models.SetUpdate{Weight: models.Ptr(weight), Reps: models.Ptr(5)}); err != nil {
			t.Fatalf("UpdateSet failed: %v", err)
		}
		if _, err := db.ToggleSetCompleted(ctx, setID); err != nil {
			t.Fatalf("ToggleSetCompleted failed: %v", err)
		}
	}
	if err := db.CompleteWorkout(ctx, workoutID, 1200); err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	return workoutID
}

func TestGetExerciseHistory(t *testing.T) {
	db, clk := setupTestDBWithClock(t)
	ctx := context.Background()
	user := defaultUser(t, db)

	first := logWorkout(t, db, user.ID, "Mon", 100, "barbell-squat")
	clk.Advance(48 * time.Hour)
	logWorkout(t, db, user.ID, "Wed", 120, "barbell-bench-press")
	clk.Advance(48 * time.Hour)
	// Same type twice in one workout still yields a single entry.
	third := logWorkout(t, db, user.ID, "Fri", 110, "barbell-squat", "barbell-squat")
	clk.Advance(time.Hour)
	// In-progress workouts are excluded.
	active, _ := db.CreateWorkout(ctx, user.ID, "Now")
	db.AddExerciseToWorkout(ctx, active, "barbell-squat", 0)

	history, err := db.GetExerciseHistory(ctx, "barbell-squat", 10)
	if err != nil {
		t.Fatalf("GetExerciseHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d entries, want 2", len(history))
	}
	if history[0].WorkoutID != third || history[1].WorkoutID != first {
		t.Errorf("entries not newest first: %s, %s", history[0].WorkoutName, history[1].WorkoutName)
	}
	if len(history[0].Sets) != 2 {
		t.Errorf("merged entry has %d sets, want 2", len(history[0].Sets))
	}
	if history[1].WorkoutName != "Mon" {
		t.Errorf("WorkoutName = %s, want Mon", history[1].WorkoutName)
	}

	limited, _ := db.GetExerciseHistory(ctx, "barbell-squat", 1)
	if len(limited) != 1 || limited[0].WorkoutID != third {
		t.Errorf("limit 1 = %+v", limited)
	}

	none, err := db.GetExerciseHistory(ctx, "plank", 10)
	if err != nil {
		t.Fatalf("GetExerciseHistory(plank) failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty history, got %#v", none)
	}
}

func TestGetRecentWorkoutCount(t *testing.T) {
	db, clk := setupTestDBWithClock(t)
	ctx := context.Background()
	user := defaultUser(t, db)

	logWorkout(t, db, user.ID, "Old", 50, "deadlift")
	clk.Advance(8 * 24 * time.Hour)
	logWorkout(t, db, user.ID, "Recent", 50, "deadlift")
	clk.Advance(24 * time.Hour)
	logWorkout(t, db, user.ID, "Yesterday", 50, "deadlift")
	clk.Advance(24 * time.Hour)
	if _, err := db.CreateWorkout(ctx, user.ID, "In progress"); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	tests := []struct {
		days int
		want int
	}{
		{7, 2},
		{30, 3},
		{0, 0},
	}
	for _, tt := range tests {
		got, err := db.GetRecentWorkoutCount(ctx, user.ID, tt.days)
		if err != nil {
			t.Fatalf("GetRecentWorkoutCount(%d) failed: %v", tt.days, err)
		}
		if got != tt.want {
			t.Errorf("GetRecentWorkoutCount(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestGetLoggedExerciseTypes(t *testing.T) {
	db, clk := setupTestDBWithClock(t)
	ctx := context.Background()
	user := defaultUser(t, db)

	logWorkout(t, db, user.ID, "A", 100, "barbell-squat", "deadlift")
	clk.Advance(time.Hour)
	logWorkout(t, db, user.ID, "B", 100, "barbell-squat", "barbell-squat")
	clk.Advance(time.Hour)
	logWorkout(t, db, user.ID, "C", 100, "barbell-squat", "overhead-press")

	logged, err := db.GetLoggedExerciseTypes(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetLoggedExerciseTypes failed: %v", err)
	}
	if len(logged) != 3 {
		t.Fatalf("got %d types, want 3", len(logged))
	}
	if logged[0].ExerciseTypeID != "barbell-squat" || logged[0].SessionCount != 3 {
		t.Errorf("first = %+v, want barbell-squat x3", logged[0])
	}
	if logged[0].ExerciseName != "Barbell Squat" {
		t.Errorf("ExerciseName = %s", logged[0].ExerciseName)
	}
	for _, l := range logged[1:] {
		if l.SessionCount != 1 {
			t.Errorf("%s count = %d, want 1", l.ExerciseTypeID, l.SessionCount)
		}
	}
}

func TestGetPersonalBest(t *testing.T) {
	db, clk := setupTestDBWithClock(t)
	ctx := context.Background()
	user := defaultUser(t, db)

	if _, ok, err := db.GetPersonalBest(ctx, "deadlift"); err != nil || ok {
		t.Fatalf("GetPersonalBest on empty log = %v, %v", ok, err)
	}

	logWorkout(t, db, user.ID, "A", 140, "deadlift")
	clk.Advance(time.Hour)
	logWorkout(t, db, user.ID, "B", 160, "deadlift")
	clk.Advance(time.Hour)

	// A heavier set that is not completed does not count.
	workoutID, _ := db.CreateWorkout(ctx, user.ID, "C")
	exID, _ := db.AddExerciseToWorkout(ctx, workoutID, "deadlift", 0)
	db.AddSet(ctx, exID, models.NewSet{SetNumber: 2, Weight: models.Ptr(200.0), Reps: models.Ptr(1)})
	db.CompleteWorkout(ctx, workoutID, 600)

	best, ok, err := db.GetPersonalBest(ctx, "deadlift")
	if err != nil {
		t.Fatalf("GetPersonalBest failed: %v", err)
	}
	if !ok || best != 160 {
		t.Errorf("GetPersonalBest = %v, %v; want 160", best, ok)
	}
}
