// ABOUTME: User profile and preference models for the single local athlete.
// ABOUTME: Preferences cover weight unit, default rest duration and theme.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WeightUnit is the unit weights are displayed in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

const (
	// DefaultRestSeconds is the rest duration given to new users.
	DefaultRestSeconds = 90

	DefaultUsername    = "athlete"
	DefaultDisplayName = "Athlete"
)

// Preferences holds the user's settings.
type Preferences struct {
	WeightUnit         WeightUnit `json:"weight_unit" yaml:"weight_unit"`
	DefaultRestSeconds int        `json:"default_rest_seconds" yaml:"default_rest_seconds"`
	Theme              Theme      `json:"theme" yaml:"theme"`
}

// DefaultPreferences returns the preferences assigned at account creation.
func DefaultPreferences() Preferences {
	return Preferences{
		WeightUnit:         UnitLbs,
		DefaultRestSeconds: DefaultRestSeconds,
		Theme:              ThemeAuto,
	}
}

// User is the local profile. There is one per installation.
type User struct {
	ID          string      `json:"id" yaml:"id"`
	Username    string      `json:"username" yaml:"username"`
	DisplayName string      `json:"display_name" yaml:"display_name"`
	Preferences Preferences `json:"preferences" yaml:"preferences"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
}

// NewUser creates a User with generated UUID and default preferences.
func NewUser(username, displayName string) *User {
	return &User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: displayName,
		Preferences: DefaultPreferences(),
		CreatedAt:   time.Now(),
	}
}

// PreferencesUpdate is a partial preference update. Nil fields are left untouched.
type PreferencesUpdate struct {
	WeightUnit         *WeightUnit
	DefaultRestSeconds *int
	Theme              *Theme
}

// Validate checks the provided fields.
func (u PreferencesUpdate) Validate() error {
	if u.WeightUnit != nil && *u.WeightUnit != UnitKg && *u.WeightUnit != UnitLbs {
		return fmt.Errorf("invalid weight unit: %s (want kg or lbs)", *u.WeightUnit)
	}
	if u.DefaultRestSeconds != nil && *u.DefaultRestSeconds <= 0 {
		return fmt.Errorf("default rest must be positive, got %d", *u.DefaultRestSeconds)
	}
	if u.Theme != nil {
		switch *u.Theme {
		case ThemeLight, ThemeDark, ThemeAuto:
		default:
			return fmt.Errorf("invalid theme: %s (want light, dark or auto)", *u.Theme)
		}
	}
	return nil
}

// ProfileUpdate is a partial profile update. Nil fields are left untouched.
type ProfileUpdate struct {
	Username    *string
	DisplayName *string
}
