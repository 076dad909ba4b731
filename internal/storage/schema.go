// ABOUTME: SQLite schema definition and version-gated initialization.
// ABOUTME: PRAGMA user_version marks which migrations have been applied.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// CurrentSchemaVersion is the schema version this build expects.
const CurrentSchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY NOT NULL,
	username TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL,
	weight_unit TEXT NOT NULL DEFAULT 'lbs',
	default_rest_time INTEGER NOT NULL DEFAULT 90,
	theme TEXT NOT NULL DEFAULT 'auto',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exercise_types (
	id TEXT PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	primary_muscle_groups TEXT NOT NULL DEFAULT '[]',
	secondary_muscle_groups TEXT NOT NULL DEFAULT '[]',
	category TEXT NOT NULL DEFAULT 'strength',
	equipment TEXT NOT NULL DEFAULT '[]',
	is_custom INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS workouts (
	id TEXT PRIMARY KEY NOT NULL,
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	name TEXT NOT NULL,
	notes TEXT,
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	completed_at TEXT,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS workout_exercises (
	id TEXT PRIMARY KEY NOT NULL,
	workout_id TEXT NOT NULL,
	exercise_type_id TEXT NOT NULL,
	notes TEXT,
	exercise_order INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE,
	FOREIGN KEY (exercise_type_id) REFERENCES exercise_types(id)
);

CREATE TABLE IF NOT EXISTS exercise_sets (
	id TEXT PRIMARY KEY NOT NULL,
	exercise_id TEXT NOT NULL,
	set_number INTEGER NOT NULL,
	weight REAL,
	reps INTEGER,
	duration INTEGER,
	distance REAL,
	completed INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (exercise_id) REFERENCES workout_exercises(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, date);
CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id);
CREATE INDEX IF NOT EXISTS idx_exercise_sets_exercise ON exercise_sets(exercise_id);
CREATE INDEX IF NOT EXISTS idx_exercise_types_category ON exercise_types(category);
`

// Initialize brings the schema up to CurrentSchemaVersion. It is safe to
// call on every launch: once the marker is current it does nothing.
//
// Released branches must never change. A schema change adds a new
// `if version < N` block below the existing ones.
func (d *DB) Initialize(ctx context.Context) error {
	version, err := d.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version >= CurrentSchemaVersion {
		return nil
	}

	if version < 1 {
		if err := d.migrateToV1(ctx); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}

	return d.setSchemaVersion(ctx, CurrentSchemaVersion)
}

// SchemaVersion returns the stored schema version marker.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := d.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (d *DB) setSchemaVersion(ctx context.Context, version int) error {
	// PRAGMA does not take bound parameters.
	if _, err := d.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// migrateToV1 creates the initial tables and seeds the exercise catalog.
func (d *DB) migrateToV1(ctx context.Context) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	if err := seedCatalog(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

// seedCatalog inserts the default exercise types. Entries already present
// by id are left alone, so running it twice is harmless.
func seedCatalog(ctx context.Context, tx *sql.Tx) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO exercise_types
			(id, name, description, primary_muscle_groups, secondary_muscle_groups, category, equipment, is_custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, ex := range DefaultExercises {
		_, err := stmt.ExecContext(ctx,
			ex.ID,
			ex.Name,
			ex.Description,
			encodeTags(ex.PrimaryMuscleGroups),
			encodeTags(ex.SecondaryMuscleGroups),
			string(ex.Category),
			encodeTags(ex.Equipment),
		)
		if err != nil {
			return fmt.Errorf("seed exercise %s: %w", ex.ID, err)
		}
	}
	return nil
}
