// ABOUTME: Tests for user profile and preferences persistence.
// ABOUTME: Covers default user creation and partial updates.
package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/lift/internal/models"
)

func TestCreateUserDefaults(t *testing.T) {
	db := setupTestDB(t)

	u, err := db.CreateUser(context.Background(), "sam", "Sam")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.Preferences != models.DefaultPreferences() {
		t.Errorf("Preferences = %+v, want defaults", u.Preferences)
	}
	if u.Preferences.WeightUnit != models.UnitLbs || u.Preferences.DefaultRestSeconds != 90 || u.Preferences.Theme != models.ThemeAuto {
		t.Errorf("unexpected defaults %+v", u.Preferences)
	}
	if !u.CreatedAt.Equal(testStart) {
		t.Errorf("CreatedAt = %v, want %v", u.CreatedAt, testStart)
	}
}

func TestGetUserMissing(t *testing.T) {
	db := setupTestDB(t)

	u, err := db.GetUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil, got %+v", u)
	}
}

func TestGetOrCreateDefaultUser(t *testing.T) {
	db, clk := setupTestDBWithClock(t)
	ctx := context.Background()

	first, err := db.GetOrCreateDefaultUser(ctx)
	if err != nil {
		t.Fatalf("GetOrCreateDefaultUser failed: %v", err)
	}
	if first.Username != models.DefaultUsername || first.DisplayName != models.DefaultDisplayName {
		t.Errorf("default user = %+v", first)
	}

	clk.Advance(time.Hour)
	if _, err := db.CreateUser(ctx, "later", "Later"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	again, err := db.GetOrCreateDefaultUser(ctx)
	if err != nil {
		t.Fatalf("GetOrCreateDefaultUser failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("expected oldest user %s, got %s", first.ID, again.ID)
	}
	if n := countRows(t, db, "users"); n != 2 {
		t.Errorf("users = %d, want 2", n)
	}
}

func TestUpdatePreferences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := defaultUser(t, db)

	unit := models.UnitKg
	if err := db.UpdatePreferences(ctx, user.ID, models.PreferencesUpdate{WeightUnit: &unit}); err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}
	got, _ := db.GetUser(ctx, user.ID)
	if got.Preferences.WeightUnit != models.UnitKg {
		t.Errorf("WeightUnit = %s, want kg", got.Preferences.WeightUnit)
	}
	if got.Preferences.DefaultRestSeconds != 90 || got.Preferences.Theme != models.ThemeAuto {
		t.Errorf("untouched fields changed: %+v", got.Preferences)
	}

	theme := models.ThemeDark
	if err := db.UpdatePreferences(ctx, user.ID, models.PreferencesUpdate{
		DefaultRestSeconds: models.Ptr(120),
		Theme:              &theme,
	}); err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}
	got, _ = db.GetUser(ctx, user.ID)
	want := models.Preferences{WeightUnit: models.UnitKg, DefaultRestSeconds: 120, Theme: models.ThemeDark}
	if got.Preferences != want {
		t.Errorf("Preferences = %+v, want %+v", got.Preferences, want)
	}

	if err := db.UpdatePreferences(ctx, user.ID, models.PreferencesUpdate{}); err != nil {
		t.Errorf("empty update should be a no-op, got %v", err)
	}
	err := db.UpdatePreferences(ctx, "nobody", models.PreferencesUpdate{Theme: &theme})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing user error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := defaultUser(t, db)

	if err := db.UpdateProfile(ctx, user.ID, models.ProfileUpdate{DisplayName: models.Ptr("Coach")}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	got, _ := db.GetUser(ctx, user.ID)
	if got.DisplayName != "Coach" || got.Username != models.DefaultUsername {
		t.Errorf("profile = %s / %s", got.Username, got.DisplayName)
	}

	other, _ := db.CreateUser(ctx, "taken", "Taken")
	if err := db.UpdateProfile(ctx, other.ID, models.ProfileUpdate{Username: models.Ptr(models.DefaultUsername)}); err == nil {
		t.Error("expected unique constraint error for duplicate username")
	}
}
