// ABOUTME: Storage interfaces consumed by the session controller, CLI and MCP server.
// ABOUTME: *DB satisfies all of them; tests may substitute fakes.
package storage

import (
	"context"

	"github.com/harperreed/lift/internal/models"
)

// Catalog is the exercise catalog store.
type Catalog interface {
	ListExerciseTypes(ctx context.Context) ([]*models.ExerciseType, error)
	GetExerciseType(ctx context.Context, id string) (*models.ExerciseType, error)
	ListExerciseTypesByCategory(ctx context.Context, category models.Category) ([]*models.ExerciseType, error)
	ListExerciseTypesByMuscleGroup(ctx context.Context, muscleGroup string) ([]*models.ExerciseType, error)
	SearchExerciseTypes(ctx context.Context, query string) ([]*models.ExerciseType, error)
	CreateCustomExercise(ctx context.Context, et *models.ExerciseType) error
}

// WorkoutRepository persists workouts, their exercise instances and sets.
type WorkoutRepository interface {
	// Workouts
	CreateWorkout(ctx context.Context, userID, name string) (string, error)
	GetWorkout(ctx context.Context, id string) (*models.Workout, error)
	GetActiveWorkout(ctx context.Context, userID string) (*models.Workout, error)
	GetWorkoutHistory(ctx context.Context, userID string, limit, offset int) ([]*models.Workout, error)
	CompleteWorkout(ctx context.Context, id string, durationSeconds int) error
	UpdateWorkoutNotes(ctx context.Context, id, notes string) error
	DeleteWorkout(ctx context.Context, id string) error

	// Exercise instances
	AddExerciseToWorkout(ctx context.Context, workoutID, exerciseTypeID string, order int) (string, error)
	RemoveExercise(ctx context.Context, exerciseID string) error

	// Sets
	AddSet(ctx context.Context, exerciseID string, set models.NewSet) (string, error)
	UpdateSet(ctx context.Context, setID string, update models.SetUpdate) error
	DeleteSet(ctx context.Context, setID string) error
	ToggleSetCompleted(ctx context.Context, setID string) (bool, error)
	CountSets(ctx context.Context, exerciseID string) (int, error)

	// Aggregates
	GetExerciseHistory(ctx context.Context, exerciseTypeID string, limit int) ([]models.ExerciseHistoryEntry, error)
	GetRecentWorkoutCount(ctx context.Context, userID string, days int) (int, error)
	GetLoggedExerciseTypes(ctx context.Context, userID string) ([]models.LoggedExerciseType, error)
	GetPersonalBest(ctx context.Context, exerciseTypeID string) (float64, bool, error)
}

// UserStore persists the user profile and preferences.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, username, displayName string) (*models.User, error)
	GetOrCreateDefaultUser(ctx context.Context) (*models.User, error)
	UpdatePreferences(ctx context.Context, userID string, update models.PreferencesUpdate) error
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error
}

// Resolver expands a full id or unique id prefix into a full id.
type Resolver interface {
	ResolveWorkoutID(ctx context.Context, idOrPrefix string) (string, error)
	ResolveExerciseID(ctx context.Context, idOrPrefix string) (string, error)
	ResolveSetID(ctx context.Context, idOrPrefix string) (string, error)
}

// Repository is the full storage surface.
type Repository interface {
	Catalog
	WorkoutRepository
	UserStore
	Resolver

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
