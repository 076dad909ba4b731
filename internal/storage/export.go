// ABOUTME: Export and import of a user's workout log.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the format version written to exports.
const ExportVersion = "1.0"

// ExportData represents the full export format for a user's log.
type ExportData struct {
	Version         string                 `json:"version" yaml:"version"`
	ExportedAt      time.Time              `json:"exported_at" yaml:"exported_at"`
	Tool            string                 `json:"tool" yaml:"tool"`
	User            *models.User           `json:"user" yaml:"user"`
	CustomExercises []*models.ExerciseType `json:"custom_exercises" yaml:"custom_exercises"`
	Workouts        []*models.Workout      `json:"workouts" yaml:"workouts"`
}

// GetAllData collects the user's profile, custom exercises and every
// workout (active included), fully hydrated and newest first.
func (d *DB) GetAllData(ctx context.Context, userID string) (*ExportData, error) {
	user, err := d.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	custom, err := d.ListCustomExercises(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := d.workoutIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	workouts := make([]*models.Workout, 0, len(ids))
	for _, id := range ids {
		w, err := d.GetWorkout(ctx, id)
		if err != nil {
			return nil, err
		}
		if w != nil {
			workouts = append(workouts, w)
		}
	}

	return &ExportData{
		Version:         ExportVersion,
		ExportedAt:      d.now(),
		Tool:            "lift",
		User:            user,
		CustomExercises: custom,
		Workouts:        workouts,
	}, nil
}

func (d *DB) workoutIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id FROM workouts WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan workout id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context, userID string) ([]byte, error) {
	data, err := d.GetAllData(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, flattened for reading by hand.
func (d *DB) ExportYAML(ctx context.Context, userID string) ([]byte, error) {
	data, err := d.GetAllData(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := yamlExport{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Unit:       string(data.User.Preferences.WeightUnit),
		Workouts:   make([]yamlWorkout, 0, len(data.Workouts)),
	}
	for _, et := range data.CustomExercises {
		out.CustomExercises = append(out.CustomExercises, yamlExercise{ID: et.ID, Name: et.Name, Category: string(et.Category)})
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:              shortID(w.ID),
			Name:            w.Name,
			Date:            w.Date.Format(time.RFC3339),
			DurationSeconds: w.DurationSeconds,
			Active:          w.IsActive(),
		}
		if w.Notes != nil {
			yw.Notes = *w.Notes
		}
		for _, ex := range w.Exercises {
			ye := yamlWorkoutExercise{Exercise: ex.ExerciseTypeID}
			if ex.ExerciseType != nil {
				ye.Exercise = ex.ExerciseType.Name
			}
			for _, s := range ex.Sets {
				ys := yamlSet{Number: s.SetNumber, Completed: s.Completed}
				if s.Weight != nil {
					ys.Weight = *s.Weight
				}
				if s.Reps != nil {
					ys.Reps = *s.Reps
				}
				ye.Sets = append(ye.Sets, ys)
			}
			yw.Exercises = append(yw.Exercises, ye)
		}
		out.Workouts = append(out.Workouts, yw)
	}

	return yaml.Marshal(out)
}

type yamlExport struct {
	Version         string         `yaml:"version"`
	ExportedAt      string         `yaml:"exported_at"`
	Tool            string         `yaml:"tool"`
	Unit            string         `yaml:"unit"`
	CustomExercises []yamlExercise `yaml:"custom_exercises,omitempty"`
	Workouts        []yamlWorkout  `yaml:"workouts"`
}

type yamlExercise struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type yamlWorkout struct {
	ID              string                `yaml:"id"`
	Name            string                `yaml:"name"`
	Date            string                `yaml:"date"`
	DurationSeconds int                   `yaml:"duration_seconds"`
	Active          bool                  `yaml:"active,omitempty"`
	Notes           string                `yaml:"notes,omitempty"`
	Exercises       []yamlWorkoutExercise `yaml:"exercises,omitempty"`
}

type yamlWorkoutExercise struct {
	Exercise string    `yaml:"exercise"`
	Sets     []yamlSet `yaml:"sets,omitempty"`
}

type yamlSet struct {
	Number    int     `yaml:"number"`
	Weight    float64 `yaml:"weight,omitempty"`
	Reps      int     `yaml:"reps,omitempty"`
	Completed bool    `yaml:"completed"`
}

// ExportMarkdown renders completed workouts as Markdown, optionally only
// those dated at or after since.
func (d *DB) ExportMarkdown(ctx context.Context, userID string, since *time.Time) (string, error) {
	data, err := d.GetAllData(ctx, userID)
	if err != nil {
		return "", err
	}
	unit := data.User.Preferences.WeightUnit

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Workout Log - %s\n\n", data.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	written := 0
	for _, w := range data.Workouts {
		if w.IsActive() {
			continue
		}
		if since != nil && w.Date.Before(*since) {
			continue
		}
		written++

		summary := models.Summarize(w)
		sb.WriteString(fmt.Sprintf("## %s (%s)\n\n", w.Name, w.Date.Local().Format("2006-01-02 15:04")))
		sb.WriteString(fmt.Sprintf("Duration: %d min | Sets: %d/%d | Volume: %.1f %s\n\n",
			w.DurationSeconds/60, summary.CompletedSets, summary.TotalSets, summary.Volume, unit))
		if w.Notes != nil {
			sb.WriteString(fmt.Sprintf("> %s\n\n", *w.Notes))
		}

		for _, ex := range w.Exercises {
			name := ex.ExerciseTypeID
			if ex.ExerciseType != nil {
				name = ex.ExerciseType.Name
			}
			sb.WriteString(fmt.Sprintf("### %s\n\n", name))
			sb.WriteString("| Set | Weight | Reps | Done |\n")
			sb.WriteString("|-----|--------|------|------|\n")
			for _, s := range ex.Sets {
				weight, reps, done := "-", "-", ""
				if s.Weight != nil {
					weight = fmt.Sprintf("%.1f %s", *s.Weight, unit)
				}
				if s.Reps != nil {
					reps = fmt.Sprintf("%d", *s.Reps)
				}
				if s.Completed {
					done = "x"
				}
				sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", s.SetNumber, weight, reps, done))
			}
			sb.WriteString("\n")
		}
	}

	if written == 0 {
		sb.WriteString("No completed workouts.\n")
	}
	return sb.String(), nil
}

// ImportData restores custom exercises and completed workouts from an
// export into userID's log. Records whose ids already exist are skipped.
func (d *DB) ImportData(ctx context.Context, userID string, data *ExportData) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, et := range data.CustomExercises {
		if et == nil {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO exercise_types
				(id, name, description, primary_muscle_groups, secondary_muscle_groups, category, equipment, is_custom)
			VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		`, et.ID, et.Name, et.Description, encodeTags(et.PrimaryMuscleGroups),
			encodeTags(et.SecondaryMuscleGroups), string(et.Category), encodeTags(et.Equipment))
		if err != nil {
			return fmt.Errorf("import exercise %s: %w", et.ID, err)
		}
	}

	for _, w := range data.Workouts {
		if err := importWorkout(ctx, tx, userID, w); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import: commit: %w", err)
	}
	return nil
}

// importWorkout skips in-progress workouts so an import never creates a
// second active workout. Null entries are skipped too.
func importWorkout(ctx context.Context, ex execer, userID string, w *models.Workout) error {
	if w == nil || w.CompletedAt == nil {
		return nil
	}
	completedAt := formatTime(*w.CompletedAt)
	res, err := ex.ExecContext(ctx, `
		INSERT OR IGNORE INTO workouts (id, user_id, date, name, notes, duration_seconds, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, w.ID, userID, formatTime(w.Date), w.Name, nullString(w.Notes), w.DurationSeconds, completedAt)
	if err != nil {
		return fmt.Errorf("import workout %s: %w", w.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	for _, we := range w.Exercises {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO workout_exercises (id, workout_id, exercise_type_id, notes, exercise_order)
			VALUES (?, ?, ?, ?, ?)
		`, we.ID, w.ID, we.ExerciseTypeID, nullString(we.Notes), we.Order)
		if err != nil {
			return fmt.Errorf("import exercise instance %s: %w", we.ID, err)
		}
		for _, s := range we.Sets {
			var weight, reps, duration, distance any
			if s.Weight != nil {
				weight = *s.Weight
			}
			if s.Reps != nil {
				reps = *s.Reps
			}
			if s.Duration != nil {
				duration = *s.Duration
			}
			if s.Distance != nil {
				distance = *s.Distance
			}
			_, err := ex.ExecContext(ctx, `
				INSERT INTO exercise_sets (id, exercise_id, set_number, weight, reps, duration, distance, completed)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, s.ID, we.ID, s.SetNumber, weight, reps, duration, distance, boolToInt(s.Completed))
			if err != nil {
				return fmt.Errorf("import set %s: %w", s.ID, err)
			}
		}
	}
	return nil
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, userID string, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, userID, &data)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
