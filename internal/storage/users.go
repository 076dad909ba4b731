// ABOUTME: User profile and preferences persistence.
// ABOUTME: A single default user is created on first use.
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

const userColumns = `id, username, display_name, weight_unit, default_rest_time, theme, created_at`

// GetUser returns the user with the given id, or nil if absent.
func (d *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(d.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// CreateUser inserts a user with default preferences.
func (d *DB) CreateUser(ctx context.Context, username, displayName string) (*models.User, error) {
	u := &models.User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: displayName,
		Preferences: models.DefaultPreferences(),
		CreatedAt:   d.now(),
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO users (id, username, display_name, weight_unit, default_rest_time, theme, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		u.ID,
		u.Username,
		u.DisplayName,
		string(u.Preferences.WeightUnit),
		u.Preferences.DefaultRestSeconds,
		string(u.Preferences.Theme),
		formatTime(u.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return d.GetUser(ctx, u.ID)
}

// GetOrCreateDefaultUser returns the oldest user, creating one when the
// table is empty.
func (d *DB) GetOrCreateDefaultUser(ctx context.Context) (*models.User, error) {
	u, err := scanUser(d.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, rowid ASC LIMIT 1`))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get default user: %w", err)
	}
	return d.CreateUser(ctx, models.DefaultUsername, models.DefaultDisplayName)
}

// UpdatePreferences writes the provided preference fields. Values are not
// validated here; see models.PreferencesUpdate.Validate.
func (d *DB) UpdatePreferences(ctx context.Context, userID string, update models.PreferencesUpdate) error {
	var assignments []string
	var args []any
	if update.WeightUnit != nil {
		assignments = append(assignments, "weight_unit = ?")
		args = append(args, string(*update.WeightUnit))
	}
	if update.DefaultRestSeconds != nil {
		assignments = append(assignments, "default_rest_time = ?")
		args = append(args, *update.DefaultRestSeconds)
	}
	if update.Theme != nil {
		assignments = append(assignments, "theme = ?")
		args = append(args, string(*update.Theme))
	}
	return d.updateUser(ctx, "update preferences", userID, assignments, args)
}

// UpdateProfile writes the provided profile fields.
func (d *DB) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error {
	var assignments []string
	var args []any
	if update.Username != nil {
		assignments = append(assignments, "username = ?")
		args = append(args, *update.Username)
	}
	if update.DisplayName != nil {
		assignments = append(assignments, "display_name = ?")
		args = append(args, *update.DisplayName)
	}
	return d.updateUser(ctx, "update profile", userID, assignments, args)
}

func (d *DB) updateUser(ctx context.Context, op, userID string, assignments []string, args []any) error {
	if len(assignments) == 0 {
		return nil
	}
	args = append(args, userID)
	result, err := d.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(assignments, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireAffected(result, op, userID)
}

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	var unit, theme, createdAt string

	if err := s.Scan(&u.ID, &u.Username, &u.DisplayName, &unit, &u.Preferences.DefaultRestSeconds, &theme, &createdAt); err != nil {
		return nil, err
	}
	u.Preferences.WeightUnit = models.WeightUnit(unit)
	u.Preferences.Theme = models.Theme(theme)
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
