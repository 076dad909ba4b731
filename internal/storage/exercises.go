// ABOUTME: Exercise catalog queries over the seeded exercise_types table.
// ABOUTME: Tag columns are JSON text, decoded to string slices on read.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/lift/internal/models"
)

const exerciseTypeColumns = `id, name, description, primary_muscle_groups, secondary_muscle_groups, category, equipment, is_custom`

// ListExerciseTypes returns the whole catalog sorted by name.
func (d *DB) ListExerciseTypes(ctx context.Context) ([]*models.ExerciseType, error) {
	return d.queryExerciseTypes(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types ORDER BY name`)
}

// GetExerciseType returns the catalog entry with the given id, or nil if absent.
func (d *DB) GetExerciseType(ctx context.Context, id string) (*models.ExerciseType, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types WHERE id = ?`, id)
	et, err := scanExerciseType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise type: %w", err)
	}
	return et, nil
}

// ListExerciseTypesByCategory returns entries in one category.
func (d *DB) ListExerciseTypesByCategory(ctx context.Context, category models.Category) ([]*models.ExerciseType, error) {
	return d.queryExerciseTypes(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types WHERE category = ? ORDER BY name`,
		string(category))
}

// ListExerciseTypesByMuscleGroup returns entries whose primary muscle
// groups include the given id. Secondary groups are not considered.
func (d *DB) ListExerciseTypesByMuscleGroup(ctx context.Context, muscleGroup string) ([]*models.ExerciseType, error) {
	// Quoting the id keeps "back" from matching a hypothetical "lower-back".
	pattern := `%"` + escapeLike(muscleGroup) + `"%`
	return d.queryExerciseTypes(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types WHERE primary_muscle_groups LIKE ? ESCAPE '\' ORDER BY name`,
		pattern)
}

// SearchExerciseTypes matches a substring of the name. SQLite's LIKE is
// case-insensitive for ASCII.
func (d *DB) SearchExerciseTypes(ctx context.Context, query string) ([]*models.ExerciseType, error) {
	return d.queryExerciseTypes(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types WHERE name LIKE ? ESCAPE '\' ORDER BY name`,
		"%"+escapeLike(query)+"%")
}

// CreateCustomExercise adds a user-defined entry to the catalog.
func (d *DB) CreateCustomExercise(ctx context.Context, et *models.ExerciseType) error {
	if strings.TrimSpace(et.Name) == "" {
		return fmt.Errorf("create custom exercise: name is required")
	}
	if !models.IsValidCategory(string(et.Category)) {
		return fmt.Errorf("create custom exercise: invalid category %q", et.Category)
	}
	et.IsCustom = true

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO exercise_types
			(id, name, description, primary_muscle_groups, secondary_muscle_groups, category, equipment, is_custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
	`,
		et.ID,
		et.Name,
		et.Description,
		encodeTags(et.PrimaryMuscleGroups),
		encodeTags(et.SecondaryMuscleGroups),
		string(et.Category),
		encodeTags(et.Equipment),
	)
	if err != nil {
		return fmt.Errorf("create custom exercise: %w", err)
	}
	return nil
}

// ListCustomExercises returns user-created entries sorted by name.
func (d *DB) ListCustomExercises(ctx context.Context) ([]*models.ExerciseType, error) {
	return d.queryExerciseTypes(ctx,
		`SELECT `+exerciseTypeColumns+` FROM exercise_types WHERE is_custom = 1 ORDER BY name`)
}

func (d *DB) queryExerciseTypes(ctx context.Context, query string, args ...any) ([]*models.ExerciseType, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercise types: %w", err)
	}
	defer rows.Close()

	result := []*models.ExerciseType{}
	for rows.Next() {
		et, err := scanExerciseType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise type: %w", err)
		}
		result = append(result, et)
	}
	return result, rows.Err()
}

func scanExerciseType(s scanner) (*models.ExerciseType, error) {
	var et models.ExerciseType
	var primary, secondary, equipment, category string
	var isCustom int

	if err := s.Scan(&et.ID, &et.Name, &et.Description, &primary, &secondary, &category, &equipment, &isCustom); err != nil {
		return nil, err
	}

	et.PrimaryMuscleGroups = decodeTags(primary)
	et.SecondaryMuscleGroups = decodeTags(secondary)
	et.Equipment = decodeTags(equipment)
	et.Category = models.Category(category)
	et.IsCustom = isCustom == 1
	return &et, nil
}

// encodeTags serializes a tag list. A nil list encodes as "[]".
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE ... ESCAPE '\' pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func encodeTags(tags []string) string {
	if tags == nil {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeTags parses stored tag text. Empty or malformed text yields an
// empty list.
func decodeTags(s string) []string {
	tags := []string{}
	if s == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
