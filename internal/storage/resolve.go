// ABOUTME: Resolves short id prefixes typed on the command line to full ids.
// ABOUTME: Full UUIDs pass through without a query.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// ResolveWorkoutID expands a workout id prefix.
func (d *DB) ResolveWorkoutID(ctx context.Context, idOrPrefix string) (string, error) {
	return d.resolveID(ctx, "workouts", "workout", idOrPrefix)
}

// ResolveExerciseID expands a workout exercise id prefix.
func (d *DB) ResolveExerciseID(ctx context.Context, idOrPrefix string) (string, error) {
	return d.resolveID(ctx, "workout_exercises", "exercise", idOrPrefix)
}

// ResolveSetID expands a set id prefix.
func (d *DB) ResolveSetID(ctx context.Context, idOrPrefix string) (string, error) {
	return d.resolveID(ctx, "exercise_sets", "set", idOrPrefix)
}

// table is always one of the constants above, never user input.
func (d *DB) resolveID(ctx context.Context, table, kind, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT id FROM `+table+` WHERE id LIKE ? ESCAPE '\' LIMIT 2`, escapeLike(idOrPrefix)+"%")
	if err != nil {
		return "", fmt.Errorf("resolve %s id: %w", kind, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s id: %w", kind, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve %s id: %w", kind, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %s: %w", kind, idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous %s prefix %s: matches multiple records", kind, idOrPrefix)
	}
}
