// ABOUTME: Aggregate queries over completed workouts: exercise history,
// ABOUTME: recent counts, logged exercise types and personal bests.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/lift/internal/models"
)

// GetExerciseHistory returns one entry per completed workout containing the
// exercise type, newest first. If the type appears more than once in a
// workout, the entry carries the sets of every instance in order.
func (d *DB) GetExerciseHistory(ctx context.Context, exerciseTypeID string, limit int) ([]models.ExerciseHistoryEntry, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT w.id, w.name, w.date
		FROM workouts w
		WHERE w.completed_at IS NOT NULL
			AND EXISTS (
				SELECT 1 FROM workout_exercises we
				WHERE we.workout_id = w.id AND we.exercise_type_id = ?
			)
		ORDER BY w.date DESC
		LIMIT ?
	`, exerciseTypeID, limit)
	if err != nil {
		return nil, fmt.Errorf("get exercise history: %w", err)
	}

	history := []models.ExerciseHistoryEntry{}
	for rows.Next() {
		var entry models.ExerciseHistoryEntry
		var date string
		if err := rows.Scan(&entry.WorkoutID, &entry.WorkoutName, &date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan exercise history: %w", err)
		}
		entry.Date = parseTime(date)
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("get exercise history: %w", err)
	}
	rows.Close()

	for i := range history {
		sets, err := d.setsForType(ctx, history[i].WorkoutID, exerciseTypeID)
		if err != nil {
			return nil, err
		}
		history[i].Sets = sets
	}
	return history, nil
}

func (d *DB) setsForType(ctx context.Context, workoutID, exerciseTypeID string) ([]models.ExerciseSet, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT s.id, s.exercise_id, s.set_number, s.weight, s.reps, s.duration, s.distance, s.completed
		FROM exercise_sets s
		JOIN workout_exercises we ON we.id = s.exercise_id
		WHERE we.workout_id = ? AND we.exercise_type_id = ?
		ORDER BY we.exercise_order, we.rowid, s.set_number
	`, workoutID, exerciseTypeID)
	if err != nil {
		return nil, fmt.Errorf("load history sets: %w", err)
	}
	defer rows.Close()

	sets := []models.ExerciseSet{}
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		sets = append(sets, *s)
	}
	return sets, rows.Err()
}

// GetRecentWorkoutCount counts completed workouts dated within the last
// days days.
func (d *DB) GetRecentWorkoutCount(ctx context.Context, userID string, days int) (int, error) {
	since := d.now().Add(-time.Duration(days) * 24 * time.Hour)

	var n int
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM workouts
		WHERE user_id = ? AND completed_at IS NOT NULL AND date >= ?
	`, userID, formatTime(since)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("get recent workout count: %w", err)
	}
	return n, nil
}

// GetLoggedExerciseTypes lists exercise types used in the user's completed
// workouts with the number of workouts each appeared in, most used first.
func (d *DB) GetLoggedExerciseTypes(ctx context.Context, userID string) ([]models.LoggedExerciseType, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT we.exercise_type_id, et.name, COUNT(DISTINCT w.id) AS session_count
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		JOIN exercise_types et ON et.id = we.exercise_type_id
		WHERE w.user_id = ? AND w.completed_at IS NOT NULL
		GROUP BY we.exercise_type_id
		ORDER BY session_count DESC, et.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get logged exercise types: %w", err)
	}
	defer rows.Close()

	logged := []models.LoggedExerciseType{}
	for rows.Next() {
		var l models.LoggedExerciseType
		if err := rows.Scan(&l.ExerciseTypeID, &l.ExerciseName, &l.SessionCount); err != nil {
			return nil, fmt.Errorf("scan logged exercise type: %w", err)
		}
		logged = append(logged, l)
	}
	return logged, rows.Err()
}

// GetPersonalBest returns the heaviest completed set for an exercise type
// across completed workouts. ok is false when nothing qualifies.
func (d *DB) GetPersonalBest(ctx context.Context, exerciseTypeID string) (weight float64, ok bool, err error) {
	var best sql.NullFloat64
	err = d.db.QueryRowContext(ctx, `
		SELECT MAX(s.weight)
		FROM exercise_sets s
		JOIN workout_exercises we ON we.id = s.exercise_id
		JOIN workouts w ON w.id = we.workout_id
		WHERE we.exercise_type_id = ?
			AND w.completed_at IS NOT NULL
			AND s.completed = 1
			AND s.weight > 0
	`, exerciseTypeID).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("get personal best: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return best.Float64, true, nil
}

// GetWorkoutSummary returns aggregate stats for a workout, or nil if absent.
func (d *DB) GetWorkoutSummary(ctx context.Context, workoutID string) (*models.WorkoutSummary, error) {
	w, err := d.GetWorkout(ctx, workoutID)
	if err != nil || w == nil {
		return nil, err
	}
	summary := models.Summarize(w)
	return &summary, nil
}
