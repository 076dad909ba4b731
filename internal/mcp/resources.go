// ABOUTME: MCP resource implementations for the workout tracker.
// ABOUTME: Provides lift://active, lift://history and lift://progress resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentHistoryLimit = 10
	recentWindowDays   = 7
)

func (s *Server) registerResources() {
	// lift://active - The workout in progress and the rest timer
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://active",
		Name:        "Active Workout",
		Description: "The workout in progress with exercises, sets, elapsed time and rest timer",
		MIMEType:    "application/json",
	}, s.handleActiveResource)

	// lift://history - Recent completed workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://history",
		Name:        "Workout History",
		Description: "Last 10 completed workouts and the 7-day workout count",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// lift://progress - Per-exercise session counts and personal bests
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://progress",
		Name:        "Progress",
		Description: "Every logged exercise type with its session count and personal best",
		MIMEType:    "application/json",
	}, s.handleProgressResource)
}

// Resource handlers

func (s *Server) handleActiveResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.session.Refresh(ctx); err != nil {
		s.logger.Debug("refresh active workout", "err", err)
	}
	return jsonResource("lift://active", s.activeView())
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.GetWorkoutHistory(ctx, s.userID, recentHistoryLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	count, err := s.repo.GetRecentWorkoutCount(ctx, s.userID, recentWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to count workouts: %w", err)
	}

	return jsonResource("lift://history", map[string]any{
		"workouts":         workouts,
		"workouts_last_7d": count,
		"count":            len(workouts),
	})
}

type progressEntry struct {
	ExerciseTypeID string   `json:"exercise_type_id"`
	ExerciseName   string   `json:"exercise_name"`
	SessionCount   int      `json:"session_count"`
	PersonalBest   *float64 `json:"personal_best,omitempty"`
}

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	logged, err := s.repo.GetLoggedExerciseTypes(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logged exercises: %w", err)
	}

	entries := make([]progressEntry, 0, len(logged))
	for _, l := range logged {
		e := progressEntry{
			ExerciseTypeID: l.ExerciseTypeID,
			ExerciseName:   l.ExerciseName,
			SessionCount:   l.SessionCount,
		}
		best, ok, err := s.repo.GetPersonalBest(ctx, l.ExerciseTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get personal best: %w", err)
		}
		if ok {
			e.PersonalBest = &best
		}
		entries = append(entries, e)
	}

	unit := "lbs"
	if u, err := s.repo.GetUser(ctx, s.userID); err == nil && u != nil {
		unit = string(u.Preferences.WeightUnit)
	}

	return jsonResource("lift://progress", map[string]any{
		"unit":      unit,
		"exercises": entries,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
