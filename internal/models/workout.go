// ABOUTME: Workout, WorkoutExercise and ExerciseSet models for session tracking.
// ABOUTME: A workout owns exercise instances, which own their logged sets.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout represents one timed training session.
type Workout struct {
	ID              string            `json:"id" yaml:"id"`
	UserID          string            `json:"user_id" yaml:"user_id"`
	Date            time.Time         `json:"date" yaml:"date"`
	Name            string            `json:"name" yaml:"name"`
	Notes           *string           `json:"notes,omitempty" yaml:"notes,omitempty"`
	DurationSeconds int               `json:"duration_seconds" yaml:"duration_seconds"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Exercises       []WorkoutExercise `json:"exercises,omitempty" yaml:"exercises,omitempty"` // Populated when fetching full workout
}

// NewWorkout creates a new in-progress Workout with generated ID and current timestamp.
func NewWorkout(userID, name string) *Workout {
	return &Workout{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   time.Now(),
		Name:   name,
	}
}

// WithDate sets a custom start timestamp.
func (w *Workout) WithDate(t time.Time) *Workout {
	w.Date = t
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// IsActive reports whether the workout has not been completed yet.
func (w *Workout) IsActive() bool {
	return w.CompletedAt == nil
}

// FindExercise returns the exercise instance with the given ID, or nil.
func (w *Workout) FindExercise(exerciseID string) *WorkoutExercise {
	for i := range w.Exercises {
		if w.Exercises[i].ID == exerciseID {
			return &w.Exercises[i]
		}
	}
	return nil
}

// WorkoutExercise is one occurrence of an exercise type within a workout.
type WorkoutExercise struct {
	ID             string        `json:"id" yaml:"id"`
	WorkoutID      string        `json:"workout_id" yaml:"workout_id"`
	ExerciseTypeID string        `json:"exercise_type_id" yaml:"exercise_type_id"`
	Notes          *string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Order          int           `json:"order" yaml:"order"`
	ExerciseType   *ExerciseType `json:"exercise_type,omitempty" yaml:"exercise_type,omitempty"`
	Sets           []ExerciseSet `json:"sets" yaml:"sets"`
}

// ExerciseSet is one logged set within an exercise instance.
// Weight, Reps, Duration and Distance are nil until the user enters them.
type ExerciseSet struct {
	ID         string   `json:"id" yaml:"id"`
	ExerciseID string   `json:"exercise_id" yaml:"exercise_id"`
	SetNumber  int      `json:"set_number" yaml:"set_number"`
	Weight     *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Reps       *int     `json:"reps,omitempty" yaml:"reps,omitempty"`
	Duration   *int     `json:"duration,omitempty" yaml:"duration,omitempty"`
	Distance   *float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
	Completed  bool     `json:"completed" yaml:"completed"`
}

// NewSet holds the fields for a set being appended to an exercise instance.
type NewSet struct {
	SetNumber int
	Weight    *float64
	Reps      *int
}

// SetUpdate is a partial update of a set. Nil fields are left untouched.
type SetUpdate struct {
	Weight *float64
	Reps   *int
}

// IsEmpty reports whether the update would change nothing.
func (u SetUpdate) IsEmpty() bool {
	return u.Weight == nil && u.Reps == nil
}

// ExerciseHistoryEntry is one past workout's sets for a single exercise type.
type ExerciseHistoryEntry struct {
	WorkoutID   string        `json:"workout_id"`
	WorkoutName string        `json:"workout_name"`
	Date        time.Time     `json:"date"`
	Sets        []ExerciseSet `json:"sets"`
}

// LoggedExerciseType summarises how often an exercise type appears in completed workouts.
type LoggedExerciseType struct {
	ExerciseTypeID string `json:"exercise_type_id"`
	ExerciseName   string `json:"exercise_name"`
	SessionCount   int    `json:"session_count"`
}

// Ptr returns a pointer to v. Handy for optional set fields.
func Ptr[T any](v T) *T {
	return &v
}
