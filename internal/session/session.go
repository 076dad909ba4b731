// ABOUTME: Active-workout session controller: Idle or Active, with a cached
// ABOUTME: workout view reloaded from storage after every mutation.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/clock"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
)

var (
	ErrNoActiveWorkout = errors.New("no active workout")
	ErrWorkoutActive   = errors.New("a workout is already in progress")
	ErrNotInWorkout    = errors.New("not part of the active workout")
	ErrNoUser          = errors.New("session has no user; call Restore first")
)

// Controller owns the single in-progress workout for one user. Operations
// are serialized; each mutation is followed by a full reload.
type Controller struct {
	repo   storage.WorkoutRepository
	clock  clock.Clock
	logger *log.Logger

	mu       sync.Mutex
	userID   string
	active   *models.Workout
	anchorAt time.Time
}

// New returns an Idle controller.
func New(repo storage.WorkoutRepository, clk clock.Clock, logger *log.Logger) *Controller {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{repo: repo, clock: clk, logger: logger}
}

// Restore binds the controller to userID and picks up any workout left in
// progress, anchoring elapsed time at the workout's stored start.
func (c *Controller) Restore(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.userID = userID
	c.clear()

	w, err := c.repo.GetActiveWorkout(ctx, userID)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if w != nil {
		c.adopt(w)
		c.logger.Debug("restored active workout", "id", w.ID, "elapsed", c.elapsed())
	}
	return nil
}

// StartWorkout creates a new workout and makes it active. If one is already
// in progress, that workout is adopted and returned with ErrWorkoutActive.
func (c *Controller) StartWorkout(ctx context.Context, name string) (*models.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.userID == "" {
		return nil, ErrNoUser
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName(c.clock.Now())
	}

	existing, err := c.repo.GetActiveWorkout(ctx, c.userID)
	if err != nil {
		return nil, fmt.Errorf("start workout: %w", err)
	}
	if existing != nil {
		c.adopt(existing)
		return existing, ErrWorkoutActive
	}

	id, err := c.repo.CreateWorkout(ctx, c.userID, name)
	if err != nil {
		return nil, fmt.Errorf("start workout: %w", err)
	}
	w, err := c.repo.GetWorkout(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("start workout: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("start workout: created workout %s vanished", id)
	}

	c.active = w
	c.anchorAt = c.clock.Now()
	c.logger.Info("workout started", "id", id, "name", name)
	return w, nil
}

// AddExercise appends an exercise type at the end of the workout. The new
// instance starts with one empty set.
func (c *Controller) AddExercise(ctx context.Context, exerciseTypeID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return "", ErrNoActiveWorkout
	}
	order := len(c.active.Exercises)
	id, err := c.repo.AddExerciseToWorkout(ctx, c.active.ID, exerciseTypeID, order)
	if err != nil {
		return "", err
	}
	return id, c.reload(ctx)
}

// RemoveExercise deletes an exercise instance and its sets.
func (c *Controller) RemoveExercise(ctx context.Context, exerciseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireExercise(exerciseID); err != nil {
		return err
	}
	if err := c.repo.RemoveExercise(ctx, exerciseID); err != nil {
		return err
	}
	return c.reload(ctx)
}

// AddNewSet appends an empty set numbered one past the current set count.
// Gaps left by deleted sets are not preserved.
func (c *Controller) AddNewSet(ctx context.Context, exerciseID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireExercise(exerciseID); err != nil {
		return "", err
	}
	count, err := c.repo.CountSets(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	id, err := c.repo.AddSet(ctx, exerciseID, models.NewSet{SetNumber: count + 1})
	if err != nil {
		return "", err
	}
	return id, c.reload(ctx)
}

// UpdateSet writes weight and/or reps. Negative values are dropped.
func (c *Controller) UpdateSet(ctx context.Context, setID string, update models.SetUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireSet(setID); err != nil {
		return err
	}
	if update.Weight != nil && *update.Weight < 0 {
		c.logger.Debug("dropping negative weight", "set", setID, "weight", *update.Weight)
		update.Weight = nil
	}
	if update.Reps != nil && *update.Reps < 0 {
		c.logger.Debug("dropping negative reps", "set", setID, "reps", *update.Reps)
		update.Reps = nil
	}
	if update.IsEmpty() {
		return nil
	}
	if err := c.repo.UpdateSet(ctx, setID, update); err != nil {
		return err
	}
	return c.reload(ctx)
}

// DeleteSet removes a set.
func (c *Controller) DeleteSet(ctx context.Context, setID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireSet(setID); err != nil {
		return err
	}
	if err := c.repo.DeleteSet(ctx, setID); err != nil {
		return err
	}
	return c.reload(ctx)
}

// ToggleSetCompleted flips a set's completed flag and returns the new value.
// A true result is the cue to start the rest timer.
func (c *Controller) ToggleSetCompleted(ctx context.Context, setID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireSet(setID); err != nil {
		return false, err
	}
	completed, err := c.repo.ToggleSetCompleted(ctx, setID)
	if err != nil {
		return false, err
	}
	return completed, c.reload(ctx)
}

// UpdateNotes replaces the active workout's notes.
func (c *Controller) UpdateNotes(ctx context.Context, notes string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return ErrNoActiveWorkout
	}
	if err := c.repo.UpdateWorkoutNotes(ctx, c.active.ID, notes); err != nil {
		return err
	}
	return c.reload(ctx)
}

// Refresh reloads the cached view from storage.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil
	}
	return c.reload(ctx)
}

// FinishWorkout completes the workout with the current elapsed seconds and
// returns to Idle. The completed workout is returned.
func (c *Controller) FinishWorkout(ctx context.Context) (*models.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil, ErrNoActiveWorkout
	}
	id := c.active.ID
	seconds := int(c.elapsed().Seconds())
	if err := c.repo.CompleteWorkout(ctx, id, seconds); err != nil {
		return nil, fmt.Errorf("finish workout: %w", err)
	}
	c.clear()

	w, err := c.repo.GetWorkout(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finish workout: %w", err)
	}
	c.logger.Info("workout finished", "id", id, "seconds", seconds)
	return w, nil
}

// CancelWorkout deletes the workout and everything logged in it, then
// returns to Idle.
func (c *Controller) CancelWorkout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return ErrNoActiveWorkout
	}
	id := c.active.ID
	if err := c.repo.DeleteWorkout(ctx, id); err != nil {
		return fmt.Errorf("cancel workout: %w", err)
	}
	c.clear()
	c.logger.Info("workout cancelled", "id", id)
	return nil
}

// Active returns the cached workout view, or nil when Idle. The value is
// replaced, never modified, on reload; callers must not mutate it.
func (c *Controller) Active() *models.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// IsActive reports whether a workout is in progress.
func (c *Controller) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// Elapsed returns the time since the workout started, or zero when Idle.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed()
}

// UserID returns the user bound by Restore.
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// The helpers below expect c.mu to be held.

func (c *Controller) elapsed() time.Duration {
	if c.active == nil {
		return 0
	}
	d := c.clock.Now().Sub(c.anchorAt)
	if d < 0 {
		return 0
	}
	return d
}

func (c *Controller) adopt(w *models.Workout) {
	c.active = w
	c.anchorAt = w.Date
}

func (c *Controller) clear() {
	c.active = nil
	c.anchorAt = time.Time{}
}

func (c *Controller) reload(ctx context.Context) error {
	w, err := c.repo.GetWorkout(ctx, c.active.ID)
	if err != nil {
		return fmt.Errorf("reload workout: %w", err)
	}
	if w == nil {
		// Deleted underneath us.
		c.clear()
		return ErrNoActiveWorkout
	}
	c.active = w
	return nil
}

func (c *Controller) requireExercise(exerciseID string) error {
	if c.active == nil {
		return ErrNoActiveWorkout
	}
	if c.active.FindExercise(exerciseID) == nil {
		return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotInWorkout)
	}
	return nil
}

func (c *Controller) requireSet(setID string) error {
	if c.active == nil {
		return ErrNoActiveWorkout
	}
	for _, ex := range c.active.Exercises {
		for _, s := range ex.Sets {
			if s.ID == setID {
				return nil
			}
		}
	}
	return fmt.Errorf("set %s: %w", setID, ErrNotInWorkout)
}

// defaultName is the quick-start name, e.g. "Workout - Mon, Jun 2".
func defaultName(now time.Time) string {
	return "Workout - " + now.Format("Mon, Jan 2")
}
