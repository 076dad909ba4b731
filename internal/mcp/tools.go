// ABOUTME: MCP tool implementations for the workout tracker.
// ABOUTME: Catalog lookups, the live workout session, history, rest timer and profile.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/timer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// Catalog
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercise types from the catalog, optionally filtered by category, muscle group or a name search",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise",
		Description: "Get an exercise type with its personal best and recent history",
	}, s.handleGetExercise)

	// Session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a new workout. If one is already in progress it is returned instead",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_active_workout",
		Description: "Get the workout in progress with its exercises, sets and elapsed time",
	}, s.handleGetActiveWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise type to the active workout. It starts with one empty set",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_exercise",
		Description: "Remove an exercise and its sets from the active workout",
	}, s.handleRemoveExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Append a set to an exercise in the active workout, optionally with weight and reps",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Update the weight and/or reps of a set in the active workout",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_set",
		Description: "Delete a set from the active workout",
	}, s.handleDeleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_set",
		Description: "Mark a set done (or not done). Marking it done starts the rest timer unless skip_rest is set",
	}, s.handleToggleSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish the active workout, recording its duration",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cancel_workout",
		Description: "Discard the active workout and everything logged in it",
	}, s.handleCancelWorkout)

	// History
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_history",
		Description: "List completed workouts, newest first",
	}, s.handleWorkoutHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_history",
		Description: "List past sets of one exercise type, grouped by workout, newest first",
	}, s.handleExerciseHistory)

	// Rest timer
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_rest_timer",
		Description: "Start the rest timer. Defaults to the rest duration from preferences",
	}, s.handleStartRestTimer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "pause_rest_timer",
		Description: "Pause the running rest timer",
	}, s.handlePauseRestTimer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "resume_rest_timer",
		Description: "Resume the paused rest timer",
	}, s.handleResumeRestTimer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_rest_timer",
		Description: "Stop the rest timer and clear it",
	}, s.handleResetRestTimer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rest_timer_status",
		Description: "Get the rest timer state and remaining seconds",
	}, s.handleRestTimerStatus)

	// Profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the user profile and preferences",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_preferences",
		Description: "Update weight unit (kg or lbs), default rest seconds or theme (light, dark, auto)",
	}, s.handleUpdatePreferences)
}

// Tool input/output types

type emptyInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type listExercisesInput struct {
	Category    string `json:"category,omitempty" jsonschema:"Filter by category: strength, cardio or flexibility"`
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Filter by primary muscle group (e.g. chest, quadriceps)"`
	Search      string `json:"search,omitempty" jsonschema:"Case-insensitive name search"`
}

type getExerciseInput struct {
	ID    string `json:"id" jsonschema:"Exercise type id (e.g. barbell-squat)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max history entries (default 5)"`
}

type startWorkoutInput struct {
	Name string `json:"name,omitempty" jsonschema:"Workout name, defaults to one based on today's date"`
}

type addExerciseInput struct {
	ExerciseTypeID string `json:"exercise_type_id" jsonschema:"Exercise type id from list_exercises"`
}

type exerciseIDInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Workout exercise id or prefix"`
}

type addSetInput struct {
	ExerciseID string   `json:"exercise_id" jsonschema:"Workout exercise id or prefix"`
	Weight     *float64 `json:"weight,omitempty" jsonschema:"Weight in the user's unit"`
	Reps       *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
}

type updateSetInput struct {
	SetID  string   `json:"set_id" jsonschema:"Set id or prefix"`
	Weight *float64 `json:"weight,omitempty" jsonschema:"Weight in the user's unit"`
	Reps   *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
}

type setIDInput struct {
	SetID string `json:"set_id" jsonschema:"Set id or prefix"`
}

type toggleSetInput struct {
	SetID       string `json:"set_id" jsonschema:"Set id or prefix"`
	RestSeconds int    `json:"rest_seconds,omitempty" jsonschema:"Rest duration override in seconds"`
	SkipRest    bool   `json:"skip_rest,omitempty" jsonschema:"Do not start the rest timer"`
}

type finishWorkoutInput struct {
	Notes string `json:"notes,omitempty" jsonschema:"Notes to save on the workout"`
}

type historyInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
	Offset int `json:"offset,omitempty" jsonschema:"Results to skip"`
}

type exerciseHistoryInput struct {
	ExerciseTypeID string `json:"exercise_type_id" jsonschema:"Exercise type id"`
	Limit          int    `json:"limit,omitempty" jsonschema:"Max workouts (default 10)"`
}

type startRestTimerInput struct {
	Seconds int `json:"seconds,omitempty" jsonschema:"Rest duration in seconds, defaults to the preference"`
}

type timerOutput struct {
	State            string  `json:"state"`
	RemainingSeconds int     `json:"remaining_seconds"`
	TotalSeconds     int     `json:"total_seconds"`
	Progress         float64 `json:"progress"`
	Display          string  `json:"display"`
	Message          string  `json:"message"`
}

type updatePreferencesInput struct {
	WeightUnit  string `json:"weight_unit,omitempty" jsonschema:"kg or lbs"`
	RestSeconds int    `json:"rest_seconds,omitempty" jsonschema:"Default rest duration in seconds"`
	Theme       string `json:"theme,omitempty" jsonschema:"light, dark or auto"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	var (
		types []*models.ExerciseType
		err   error
	)
	switch {
	case input.Search != "":
		types, err = s.repo.SearchExerciseTypes(ctx, input.Search)
	case input.MuscleGroup != "":
		types, err = s.repo.ListExerciseTypesByMuscleGroup(ctx, input.MuscleGroup)
	case input.Category != "":
		if !models.IsValidCategory(input.Category) {
			return nil, nil, fmt.Errorf("unknown category: %s", input.Category)
		}
		types, err = s.repo.ListExerciseTypesByCategory(ctx, models.Category(input.Category))
	default:
		types, err = s.repo.ListExerciseTypes(ctx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	if len(types) == 0 {
		return nil, map[string]any{"message": "No exercises found."}, nil
	}

	return nil, map[string]any{"count": len(types), "exercises": types}, nil
}

func (s *Server) handleGetExercise(ctx context.Context, req *mcp.CallToolRequest, input getExerciseInput) (*mcp.CallToolResult, any, error) {
	et, err := s.repo.GetExerciseType(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	if et == nil {
		return nil, nil, fmt.Errorf("exercise not found: %s", input.ID)
	}

	if input.Limit <= 0 {
		input.Limit = 5
	}
	history, err := s.repo.GetExerciseHistory(ctx, et.ID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get exercise history: %w", err)
	}

	result := map[string]any{
		"exercise": et,
		"history":  history,
	}
	best, ok, err := s.repo.GetPersonalBest(ctx, et.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get personal best: %w", err)
	}
	if ok {
		result["personal_best"] = best
	}
	return nil, result, nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, any, error) {
	w, err := s.session.StartWorkout(ctx, input.Name)
	if errors.Is(err, session.ErrWorkoutActive) {
		return nil, map[string]any{
			"message": fmt.Sprintf("Workout %q is already in progress. Finish or cancel it first.", w.Name),
			"workout": w,
		}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start workout: %w", err)
	}

	return nil, map[string]any{
		"message": fmt.Sprintf("Started %s (ID: %s)", w.Name, shortID(w.ID)),
		"workout": w,
	}, nil
}

func (s *Server) handleGetActiveWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	if err := s.session.Refresh(ctx); err != nil && !errors.Is(err, session.ErrNoActiveWorkout) {
		return nil, nil, fmt.Errorf("failed to load workout: %w", err)
	}
	return nil, s.activeView(), nil
}

// activeView is the shared payload of get_active_workout and lift://active.
func (s *Server) activeView() map[string]any {
	w := s.session.Active()
	if w == nil {
		return map[string]any{"active": false, "message": "No workout in progress."}
	}
	summary := models.Summarize(w)
	summary.DurationSeconds = int(s.session.Elapsed().Seconds())
	return map[string]any{
		"active":          true,
		"workout":         w,
		"elapsed_seconds": summary.DurationSeconds,
		"summary":         summary,
		"rest_timer":      s.timer.Tick(),
	}
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, any, error) {
	et, err := s.repo.GetExerciseType(ctx, input.ExerciseTypeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	if et == nil {
		return nil, nil, fmt.Errorf("exercise not found: %s", input.ExerciseTypeID)
	}

	id, err := s.session.AddExercise(ctx, et.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, map[string]any{
		"message":  fmt.Sprintf("Added %s (ID: %s)", et.Name, shortID(id)),
		"exercise": s.session.Active().FindExercise(id),
	}, nil
}

func (s *Server) handleRemoveExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.repo.ResolveExerciseID(ctx, input.ExerciseID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.session.RemoveExercise(ctx, id); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to remove exercise: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Removed exercise: %s", shortID(id)),
	}, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, any, error) {
	exID, err := s.repo.ResolveExerciseID(ctx, input.ExerciseID)
	if err != nil {
		return nil, nil, err
	}
	setID, err := s.session.AddNewSet(ctx, exID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add set: %w", err)
	}

	update := models.SetUpdate{Weight: input.Weight, Reps: input.Reps}
	if !update.IsEmpty() {
		if err := s.session.UpdateSet(ctx, setID, update); err != nil {
			return nil, nil, fmt.Errorf("failed to update set: %w", err)
		}
	}

	set := s.findSet(setID)
	return nil, map[string]any{
		"message": fmt.Sprintf("Added set %d (ID: %s)", set.SetNumber, shortID(setID)),
		"set":     set,
	}, nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, any, error) {
	setID, err := s.repo.ResolveSetID(ctx, input.SetID)
	if err != nil {
		return nil, nil, err
	}
	update := models.SetUpdate{Weight: input.Weight, Reps: input.Reps}
	if update.IsEmpty() {
		return nil, nil, fmt.Errorf("nothing to update: provide weight and/or reps")
	}
	if err := s.session.UpdateSet(ctx, setID, update); err != nil {
		return nil, nil, fmt.Errorf("failed to update set: %w", err)
	}

	return nil, map[string]any{
		"message": fmt.Sprintf("Updated set %s", shortID(setID)),
		"set":     s.findSet(setID),
	}, nil
}

func (s *Server) handleDeleteSet(ctx context.Context, req *mcp.CallToolRequest, input setIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	setID, err := s.repo.ResolveSetID(ctx, input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.session.DeleteSet(ctx, setID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete set: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted set: %s", shortID(setID)),
	}, nil
}

func (s *Server) handleToggleSet(ctx context.Context, req *mcp.CallToolRequest, input toggleSetInput) (*mcp.CallToolResult, any, error) {
	setID, err := s.repo.ResolveSetID(ctx, input.SetID)
	if err != nil {
		return nil, nil, err
	}
	completed, err := s.session.ToggleSetCompleted(ctx, setID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to toggle set: %w", err)
	}

	result := map[string]any{"completed": completed}
	if !completed {
		result["message"] = fmt.Sprintf("Set %s marked not done", shortID(setID))
		return nil, result, nil
	}

	result["message"] = fmt.Sprintf("Set %s done", shortID(setID))
	if !input.SkipRest {
		seconds := input.RestSeconds
		if seconds <= 0 {
			seconds = s.defaultRestSeconds(ctx)
		}
		if err := s.timer.Start(ctx, seconds); err != nil {
			return nil, nil, fmt.Errorf("failed to start rest timer: %w", err)
		}
		result["message"] = fmt.Sprintf("Set %s done. Resting %s", shortID(setID), formatTimer(seconds))
		result["rest_timer"] = s.timer.Snapshot()
	}
	return nil, result, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input finishWorkoutInput) (*mcp.CallToolResult, any, error) {
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		if err := s.session.UpdateNotes(ctx, notes); err != nil {
			return nil, nil, fmt.Errorf("failed to save notes: %w", err)
		}
	}
	w, err := s.session.FinishWorkout(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to finish workout: %w", err)
	}
	s.timer.Reset(ctx)

	summary := models.Summarize(w)
	return nil, map[string]any{
		"message": fmt.Sprintf("Finished %s in %s: %d/%d sets, volume %.1f",
			w.Name, formatTimer(w.DurationSeconds), summary.CompletedSets, summary.TotalSets, summary.Volume),
		"workout": w,
		"summary": summary,
	}, nil
}

func (s *Server) handleCancelWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.session.CancelWorkout(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to cancel workout: %w", err)
	}
	s.timer.Reset(ctx)

	return nil, simpleOutput{Message: "Workout cancelled."}, nil
}

func (s *Server) handleWorkoutHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	workouts, err := s.repo.GetWorkoutHistory(ctx, s.userID, input.Limit, input.Offset)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}

	return nil, map[string]any{"count": len(workouts), "workouts": workouts}, nil
}

func (s *Server) handleExerciseHistory(ctx context.Context, req *mcp.CallToolRequest, input exerciseHistoryInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}
	entries, err := s.repo.GetExerciseHistory(ctx, input.ExerciseTypeID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get exercise history: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]any{"message": "No history for this exercise."}, nil
	}

	return nil, map[string]any{"count": len(entries), "history": entries}, nil
}

func (s *Server) handleStartRestTimer(ctx context.Context, req *mcp.CallToolRequest, input startRestTimerInput) (*mcp.CallToolResult, timerOutput, error) {
	seconds := input.Seconds
	if seconds <= 0 {
		seconds = s.defaultRestSeconds(ctx)
	}
	if err := s.timer.Start(ctx, seconds); err != nil {
		return nil, timerOutput{}, fmt.Errorf("failed to start rest timer: %w", err)
	}
	return nil, timerResult(s.timer.Snapshot(), fmt.Sprintf("Resting %s", formatTimer(seconds))), nil
}

func (s *Server) handlePauseRestTimer(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, timerOutput, error) {
	if err := s.timer.Pause(ctx); err != nil {
		return nil, timerOutput{}, fmt.Errorf("failed to pause rest timer: %w", err)
	}
	return nil, timerResult(s.timer.Snapshot(), "Rest timer paused"), nil
}

func (s *Server) handleResumeRestTimer(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, timerOutput, error) {
	if err := s.timer.Resume(ctx); err != nil {
		return nil, timerOutput{}, fmt.Errorf("failed to resume rest timer: %w", err)
	}
	return nil, timerResult(s.timer.Snapshot(), "Rest timer resumed"), nil
}

func (s *Server) handleResetRestTimer(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, timerOutput, error) {
	s.timer.Reset(ctx)
	return nil, timerResult(s.timer.Snapshot(), "Rest timer reset"), nil
}

func (s *Server) handleRestTimerStatus(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, timerOutput, error) {
	snap := s.timer.Tick()
	var msg string
	switch snap.State {
	case timer.Running:
		msg = fmt.Sprintf("%s remaining", formatTimer(snap.Remaining))
	case timer.Paused:
		msg = fmt.Sprintf("Paused with %s remaining", formatTimer(snap.Remaining))
	default:
		msg = "Rest timer is not running"
	}
	return nil, timerResult(snap, msg), nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	u, err := s.repo.GetUser(ctx, s.userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if u == nil {
		return nil, nil, fmt.Errorf("profile not found")
	}
	return nil, u, nil
}

func (s *Server) handleUpdatePreferences(ctx context.Context, req *mcp.CallToolRequest, input updatePreferencesInput) (*mcp.CallToolResult, any, error) {
	var update models.PreferencesUpdate
	if input.WeightUnit != "" {
		update.WeightUnit = models.Ptr(models.WeightUnit(input.WeightUnit))
	}
	if input.RestSeconds != 0 {
		update.DefaultRestSeconds = models.Ptr(input.RestSeconds)
	}
	if input.Theme != "" {
		update.Theme = models.Ptr(models.Theme(input.Theme))
	}
	if err := update.Validate(); err != nil {
		return nil, nil, err
	}
	if err := s.repo.UpdatePreferences(ctx, s.userID, update); err != nil {
		return nil, nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return s.handleGetProfile(ctx, req, emptyInput{})
}

// Helpers

func (s *Server) defaultRestSeconds(ctx context.Context) int {
	u, err := s.repo.GetUser(ctx, s.userID)
	if err != nil || u == nil || u.Preferences.DefaultRestSeconds <= 0 {
		return models.DefaultRestSeconds
	}
	return u.Preferences.DefaultRestSeconds
}

func (s *Server) findSet(setID string) *models.ExerciseSet {
	w := s.session.Active()
	if w == nil {
		return nil
	}
	for i := range w.Exercises {
		for j := range w.Exercises[i].Sets {
			if w.Exercises[i].Sets[j].ID == setID {
				return &w.Exercises[i].Sets[j]
			}
		}
	}
	return nil
}

func timerResult(snap timer.Snapshot, msg string) timerOutput {
	return timerOutput{
		State:            string(snap.State),
		RemainingSeconds: snap.Remaining,
		TotalSeconds:     snap.Total,
		Progress:         snap.Progress,
		Display:          formatTimer(snap.Remaining),
		Message:          msg,
	}
}

// formatTimer renders seconds as m:ss.
func formatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
