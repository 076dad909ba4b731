// ABOUTME: Workout, exercise-instance and set operations for SQLite storage.
// ABOUTME: Deleting a workout cascades to its exercises and their sets.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/lift/internal/models"
)

const workoutColumns = `id, user_id, date, name, notes, duration_seconds, completed_at`

// CreateWorkout starts a new in-progress workout and returns its id.
// It does not check for an existing active workout.
func (d *DB) CreateWorkout(ctx context.Context, userID, name string) (string, error) {
	id := uuid.NewString()
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO workouts (id, user_id, date, name, duration_seconds)
		VALUES (?, ?, ?, ?, 0)
	`, id, userID, formatTime(d.now()), name)
	if err != nil {
		return "", fmt.Errorf("create workout: %w", err)
	}
	return id, nil
}

// GetWorkout returns the fully hydrated workout, or nil if absent.
func (d *DB) GetWorkout(ctx context.Context, id string) (*models.Workout, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}

	if err := d.hydrate(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetActiveWorkout returns the user's most recent incomplete workout, or nil.
func (d *DB) GetActiveWorkout(ctx context.Context, userID string) (*models.Workout, error) {
	var id string
	err := d.db.QueryRowContext(ctx, `
		SELECT id FROM workouts
		WHERE user_id = ? AND completed_at IS NULL
		ORDER BY date DESC, rowid DESC
		LIMIT 1
	`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active workout: %w", err)
	}
	return d.GetWorkout(ctx, id)
}

// GetWorkoutHistory returns completed workouts newest first. Exercises are
// not loaded; use GetWorkout for the full tree.
func (d *DB) GetWorkoutHistory(ctx context.Context, userID string, limit, offset int) ([]*models.Workout, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT `+workoutColumns+` FROM workouts
		WHERE user_id = ? AND completed_at IS NOT NULL
		ORDER BY date DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get workout history: %w", err)
	}
	defer rows.Close()

	workouts := []*models.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// CompleteWorkout stamps the completion time and stores the caller's
// elapsed duration as-is.
func (d *DB) CompleteWorkout(ctx context.Context, id string, durationSeconds int) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE workouts SET completed_at = ?, duration_seconds = ? WHERE id = ?`,
		formatTime(d.now()), durationSeconds, id)
	if err != nil {
		return fmt.Errorf("complete workout: %w", err)
	}
	return requireAffected(result, "complete workout", id)
}

// UpdateWorkoutNotes replaces the workout notes. An empty string clears them.
func (d *DB) UpdateWorkoutNotes(ctx context.Context, id, notes string) error {
	var value *string
	if strings.TrimSpace(notes) != "" {
		value = &notes
	}
	result, err := d.db.ExecContext(ctx,
		`UPDATE workouts SET notes = ? WHERE id = ?`, nullString(value), id)
	if err != nil {
		return fmt.Errorf("update workout notes: %w", err)
	}
	return requireAffected(result, "update workout notes", id)
}

// DeleteWorkout removes the workout together with its exercises and sets.
// Deleting a missing workout is a no-op.
func (d *DB) DeleteWorkout(ctx context.Context, id string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// AddExerciseToWorkout attaches an exercise type at the given position and
// seeds it with an empty set numbered 1. Both rows are written in one
// transaction.
func (d *DB) AddExerciseToWorkout(ctx context.Context, workoutID, exerciseTypeID string, order int) (string, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("add exercise: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO workout_exercises (id, workout_id, exercise_type_id, exercise_order)
		VALUES (?, ?, ?, ?)
	`, id, workoutID, exerciseTypeID, order)
	if err != nil {
		return "", fmt.Errorf("add exercise: %w", err)
	}

	if _, err := insertSet(ctx, tx, id, models.NewSet{SetNumber: 1}); err != nil {
		return "", fmt.Errorf("add exercise: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("add exercise: commit: %w", err)
	}
	return id, nil
}

// RemoveExercise deletes an exercise instance and its sets.
func (d *DB) RemoveExercise(ctx context.Context, exerciseID string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM workout_exercises WHERE id = ?`, exerciseID); err != nil {
		return fmt.Errorf("remove exercise: %w", err)
	}
	return nil
}

// AddSet appends an incomplete set to an exercise instance.
func (d *DB) AddSet(ctx context.Context, exerciseID string, set models.NewSet) (string, error) {
	id, err := insertSet(ctx, d.db, exerciseID, set)
	if err != nil {
		return "", fmt.Errorf("add set: %w", err)
	}
	return id, nil
}

func insertSet(ctx context.Context, ex execer, exerciseID string, set models.NewSet) (string, error) {
	id := uuid.NewString()
	var weight, reps any
	if set.Weight != nil {
		weight = *set.Weight
	}
	if set.Reps != nil {
		reps = *set.Reps
	}
	_, err := ex.ExecContext(ctx, `
		INSERT INTO exercise_sets (id, exercise_id, set_number, weight, reps, completed)
		VALUES (?, ?, ?, ?, ?, 0)
	`, id, exerciseID, set.SetNumber, weight, reps)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSet writes only the fields present in the update. An empty update
// does nothing.
func (d *DB) UpdateSet(ctx context.Context, setID string, update models.SetUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var assignments []string
	var args []any
	if update.Weight != nil {
		assignments = append(assignments, "weight = ?")
		args = append(args, *update.Weight)
	}
	if update.Reps != nil {
		assignments = append(assignments, "reps = ?")
		args = append(args, *update.Reps)
	}
	args = append(args, setID)

	query := `UPDATE exercise_sets SET ` + strings.Join(assignments, ", ") + ` WHERE id = ?`
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return requireAffected(result, "update set", setID)
}

// DeleteSet removes a set. Remaining sets keep their numbers.
func (d *DB) DeleteSet(ctx context.Context, setID string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM exercise_sets WHERE id = ?`, setID); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

// ToggleSetCompleted flips the completed flag and returns the new value.
func (d *DB) ToggleSetCompleted(ctx context.Context, setID string) (bool, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("toggle set: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var completed int
	err = tx.QueryRowContext(ctx, `SELECT completed FROM exercise_sets WHERE id = ?`, setID).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("toggle set %s: %w", setID, ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("toggle set: %w", err)
	}

	next := completed != 1
	if _, err := tx.ExecContext(ctx,
		`UPDATE exercise_sets SET completed = ? WHERE id = ?`, boolToInt(next), setID); err != nil {
		return false, fmt.Errorf("toggle set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("toggle set: commit: %w", err)
	}
	return next, nil
}

// CountSets returns the number of sets on an exercise instance.
func (d *DB) CountSets(ctx context.Context, exerciseID string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercise_sets WHERE exercise_id = ?`, exerciseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sets: %w", err)
	}
	return n, nil
}

// hydrate loads exercises (with their catalog entries) and sets onto w.
// Each query's rows are fully drained before the next one starts.
func (d *DB) hydrate(ctx context.Context, w *models.Workout) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT we.id, we.workout_id, we.exercise_type_id, we.notes, we.exercise_order,
			et.id, et.name, et.description, et.primary_muscle_groups, et.secondary_muscle_groups,
			et.category, et.equipment, et.is_custom
		FROM workout_exercises we
		JOIN exercise_types et ON et.id = we.exercise_type_id
		WHERE we.workout_id = ?
		ORDER BY we.exercise_order, we.rowid
	`, w.ID)
	if err != nil {
		return fmt.Errorf("load workout exercises: %w", err)
	}

	w.Exercises = []models.WorkoutExercise{}
	index := map[string]int{}
	for rows.Next() {
		var we models.WorkoutExercise
		var notes sql.NullString
		var et models.ExerciseType
		var primary, secondary, equipment, category string
		var isCustom int

		if err := rows.Scan(&we.ID, &we.WorkoutID, &we.ExerciseTypeID, &notes, &we.Order,
			&et.ID, &et.Name, &et.Description, &primary, &secondary, &category, &equipment, &isCustom); err != nil {
			rows.Close()
			return fmt.Errorf("scan workout exercise: %w", err)
		}
		if notes.Valid {
			we.Notes = &notes.String
		}
		et.PrimaryMuscleGroups = decodeTags(primary)
		et.SecondaryMuscleGroups = decodeTags(secondary)
		et.Equipment = decodeTags(equipment)
		et.Category = models.Category(category)
		et.IsCustom = isCustom == 1
		we.ExerciseType = &et
		we.Sets = []models.ExerciseSet{}

		index[we.ID] = len(w.Exercises)
		w.Exercises = append(w.Exercises, we)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("load workout exercises: %w", err)
	}
	rows.Close()

	if len(w.Exercises) == 0 {
		return nil
	}

	setRows, err := d.db.QueryContext(ctx, `
		SELECT s.id, s.exercise_id, s.set_number, s.weight, s.reps, s.duration, s.distance, s.completed
		FROM exercise_sets s
		JOIN workout_exercises we ON we.id = s.exercise_id
		WHERE we.workout_id = ?
		ORDER BY s.set_number, s.rowid
	`, w.ID)
	if err != nil {
		return fmt.Errorf("load sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		s, err := scanSet(setRows)
		if err != nil {
			return fmt.Errorf("scan set: %w", err)
		}
		if i, ok := index[s.ExerciseID]; ok {
			w.Exercises[i].Sets = append(w.Exercises[i].Sets, *s)
		}
	}
	return setRows.Err()
}

func scanWorkout(s scanner) (*models.Workout, error) {
	var w models.Workout
	var date string
	var notes, completedAt sql.NullString

	if err := s.Scan(&w.ID, &w.UserID, &date, &w.Name, &notes, &w.DurationSeconds, &completedAt); err != nil {
		return nil, err
	}
	w.Date = parseTime(date)
	if notes.Valid {
		w.Notes = &notes.String
	}
	w.CompletedAt = parseNullTime(completedAt)
	return &w, nil
}

func scanSet(s scanner) (*models.ExerciseSet, error) {
	var set models.ExerciseSet
	var weight, distance sql.NullFloat64
	var reps, duration sql.NullInt64
	var completed int

	if err := s.Scan(&set.ID, &set.ExerciseID, &set.SetNumber, &weight, &reps, &duration, &distance, &completed); err != nil {
		return nil, err
	}
	if weight.Valid {
		set.Weight = &weight.Float64
	}
	if reps.Valid {
		r := int(reps.Int64)
		set.Reps = &r
	}
	if duration.Valid {
		dur := int(duration.Int64)
		set.Duration = &dur
	}
	if distance.Valid {
		set.Distance = &distance.Float64
	}
	set.Completed = completed == 1
	return &set, nil
}

func requireAffected(result sql.Result, op, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return nil
}
