// ABOUTME: ExerciseType catalog model and the fixed muscle-group vocabulary.
// ABOUTME: Catalog entries are seeded at first launch or created by the user.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Category classifies an exercise type.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
)

// AllCategories returns all valid categories.
var AllCategories = []Category{CategoryStrength, CategoryCardio, CategoryFlexibility}

// IsValidCategory checks if a string is a valid category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// MuscleGroups lists the muscle group tags used by the catalog, keyed by id.
var MuscleGroups = map[string]string{
	"chest":      "Chest",
	"back":       "Back",
	"shoulders":  "Shoulders",
	"biceps":     "Biceps",
	"triceps":    "Triceps",
	"forearms":   "Forearms",
	"quadriceps": "Quadriceps",
	"hamstrings": "Hamstrings",
	"glutes":     "Glutes",
	"calves":     "Calves",
	"abs":        "Abs",
	"traps":      "Traps",
	"lats":       "Lats",
	"cardio":     "Cardiovascular",
}

// IsValidMuscleGroup checks if a string is a known muscle group id.
func IsValidMuscleGroup(s string) bool {
	_, ok := MuscleGroups[s]
	return ok
}

// ExerciseType is a catalog definition of a movement.
type ExerciseType struct {
	ID                    string   `json:"id" yaml:"id"`
	Name                  string   `json:"name" yaml:"name"`
	Description           string   `json:"description" yaml:"description"`
	PrimaryMuscleGroups   []string `json:"primary_muscle_groups" yaml:"primary_muscle_groups"`
	SecondaryMuscleGroups []string `json:"secondary_muscle_groups" yaml:"secondary_muscle_groups"`
	Category              Category `json:"category" yaml:"category"`
	Equipment             []string `json:"equipment" yaml:"equipment"`
	IsCustom              bool     `json:"is_custom" yaml:"is_custom"`
}

// NewCustomExerciseType creates a user-defined catalog entry with a generated ID.
func NewCustomExerciseType(name string, category Category) *ExerciseType {
	return &ExerciseType{
		ID:                    "custom-" + uuid.NewString(),
		Name:                  strings.TrimSpace(name),
		PrimaryMuscleGroups:   []string{},
		SecondaryMuscleGroups: []string{},
		Category:              category,
		Equipment:             []string{},
		IsCustom:              true,
	}
}

// WithMuscleGroups sets the primary and secondary muscle groups.
func (e *ExerciseType) WithMuscleGroups(primary, secondary []string) *ExerciseType {
	e.PrimaryMuscleGroups = primary
	e.SecondaryMuscleGroups = secondary
	return e
}

// WithEquipment sets the equipment tags.
func (e *ExerciseType) WithEquipment(equipment ...string) *ExerciseType {
	e.Equipment = equipment
	return e
}

// WithDescription sets the description.
func (e *ExerciseType) WithDescription(desc string) *ExerciseType {
	e.Description = desc
	return e
}
