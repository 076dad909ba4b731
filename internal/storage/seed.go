// ABOUTME: Built-in exercise catalog inserted on first initialization.
// ABOUTME: IDs are stable slugs so re-seeding is a no-op.
package storage

import "github.com/harperreed/lift/internal/models"

func builtin(id, name, desc string, cat models.Category, primary, secondary, equipment []string) models.ExerciseType {
	return models.ExerciseType{
		ID:                    id,
		Name:                  name,
		Description:           desc,
		PrimaryMuscleGroups:   primary,
		SecondaryMuscleGroups: secondary,
		Category:              cat,
		Equipment:             equipment,
	}
}

func tags(s ...string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// DefaultExercises is the catalog seeded into a fresh database.
var DefaultExercises = []models.ExerciseType{
	// Chest
	builtin("barbell-bench-press", "Barbell Bench Press", "Lie on a flat bench and press the bar from chest to lockout.",
		models.CategoryStrength, tags("chest"), tags("triceps", "shoulders"), tags("barbell", "bench")),
	builtin("dumbbell-bench-press", "Dumbbell Bench Press", "Press a pair of dumbbells from chest level on a flat bench.",
		models.CategoryStrength, tags("chest"), tags("triceps", "shoulders"), tags("dumbbell", "bench")),
	builtin("incline-dumbbell-press", "Incline Dumbbell Press", "Press dumbbells on a bench set to 30-45 degrees.",
		models.CategoryStrength, tags("chest", "shoulders"), tags("triceps"), tags("dumbbell", "bench")),
	builtin("push-up", "Push-Up", "Lower the chest to the floor and press back up with a rigid torso.",
		models.CategoryStrength, tags("chest"), tags("triceps", "shoulders", "abs"), tags()),
	builtin("cable-fly", "Cable Fly", "Bring cable handles together in a wide arc in front of the chest.",
		models.CategoryStrength, tags("chest"), tags("shoulders"), tags("cable")),

	// Back
	builtin("deadlift", "Deadlift", "Lift the bar from the floor to a standing lockout with a neutral spine.",
		models.CategoryStrength, tags("back", "hamstrings", "glutes"), tags("traps", "forearms", "quadriceps"), tags("barbell")),
	builtin("pull-up", "Pull-Up", "Hang from a bar with an overhand grip and pull the chin above it.",
		models.CategoryStrength, tags("lats", "back"), tags("biceps", "forearms"), tags("pull-up bar")),
	builtin("barbell-row", "Barbell Row", "Hinge forward and row the bar to the lower ribs.",
		models.CategoryStrength, tags("back", "lats"), tags("biceps", "traps"), tags("barbell")),
	builtin("lat-pulldown", "Lat Pulldown", "Pull the cable bar down to the upper chest.",
		models.CategoryStrength, tags("lats"), tags("biceps", "back"), tags("cable", "machine")),
	builtin("seated-cable-row", "Seated Cable Row", "Row the cable handle to the torso while seated upright.",
		models.CategoryStrength, tags("back"), tags("lats", "biceps"), tags("cable", "machine")),

	// Shoulders
	builtin("overhead-press", "Overhead Press", "Press the bar from the front rack to overhead lockout.",
		models.CategoryStrength, tags("shoulders"), tags("triceps", "traps"), tags("barbell")),
	builtin("lateral-raise", "Lateral Raise", "Raise dumbbells out to the sides to shoulder height.",
		models.CategoryStrength, tags("shoulders"), tags(), tags("dumbbell")),
	builtin("face-pull", "Face Pull", "Pull a rope attachment toward the face with elbows high.",
		models.CategoryStrength, tags("shoulders", "traps"), tags("back"), tags("cable")),
	builtin("barbell-shrug", "Barbell Shrug", "Elevate the shoulders toward the ears while holding a barbell.",
		models.CategoryStrength, tags("traps"), tags("forearms"), tags("barbell")),

	// Arms
	builtin("barbell-curl", "Barbell Curl", "Curl the bar from the thighs to the shoulders.",
		models.CategoryStrength, tags("biceps"), tags("forearms"), tags("barbell")),
	builtin("hammer-curl", "Hammer Curl", "Curl dumbbells with a neutral grip.",
		models.CategoryStrength, tags("biceps", "forearms"), tags(), tags("dumbbell")),
	builtin("tricep-pushdown", "Tricep Pushdown", "Extend the elbows against a cable attachment.",
		models.CategoryStrength, tags("triceps"), tags(), tags("cable")),
	builtin("skull-crusher", "Skull Crusher", "Lower an EZ bar toward the forehead and extend back up.",
		models.CategoryStrength, tags("triceps"), tags(), tags("ez bar", "bench")),
	builtin("dips", "Dips", "Lower between parallel bars and press back to lockout.",
		models.CategoryStrength, tags("triceps", "chest"), tags("shoulders"), tags("dip bars")),

	// Legs
	builtin("barbell-squat", "Barbell Squat", "Squat with the bar on the upper back to at least parallel.",
		models.CategoryStrength, tags("quadriceps", "glutes"), tags("hamstrings", "abs"), tags("barbell", "squat rack")),
	builtin("front-squat", "Front Squat", "Squat with the bar racked across the front of the shoulders.",
		models.CategoryStrength, tags("quadriceps"), tags("glutes", "abs"), tags("barbell", "squat rack")),
	builtin("romanian-deadlift", "Romanian Deadlift", "Hinge at the hips with soft knees, lowering the bar along the legs.",
		models.CategoryStrength, tags("hamstrings", "glutes"), tags("back"), tags("barbell")),
	builtin("leg-press", "Leg Press", "Press the sled away with the feet shoulder width apart.",
		models.CategoryStrength, tags("quadriceps", "glutes"), tags("hamstrings"), tags("machine")),
	builtin("walking-lunge", "Walking Lunge", "Step forward into alternating lunges.",
		models.CategoryStrength, tags("quadriceps", "glutes"), tags("hamstrings", "calves"), tags("dumbbell")),
	builtin("leg-curl", "Leg Curl", "Curl the pad toward the glutes on a leg curl machine.",
		models.CategoryStrength, tags("hamstrings"), tags("calves"), tags("machine")),
	builtin("calf-raise", "Calf Raise", "Rise onto the balls of the feet under load.",
		models.CategoryStrength, tags("calves"), tags(), tags("machine")),

	// Core
	builtin("plank", "Plank", "Hold a straight line from head to heels on the forearms.",
		models.CategoryStrength, tags("abs"), tags("shoulders"), tags()),
	builtin("hanging-leg-raise", "Hanging Leg Raise", "Hang from a bar and raise the legs to hip height or higher.",
		models.CategoryStrength, tags("abs"), tags("forearms"), tags("pull-up bar")),

	// Cardio
	builtin("running", "Running", "Steady-state or interval running.",
		models.CategoryCardio, tags("cardio"), tags("quadriceps", "calves"), tags()),
	builtin("rowing-machine", "Rowing Machine", "Drive with the legs, then pull the handle to the lower ribs.",
		models.CategoryCardio, tags("cardio"), tags("back", "quadriceps"), tags("rower")),
	builtin("cycling", "Cycling", "Stationary or outdoor cycling.",
		models.CategoryCardio, tags("cardio"), tags("quadriceps", "calves"), tags("bike")),
	builtin("jump-rope", "Jump Rope", "Skip a rope with quick, light contacts.",
		models.CategoryCardio, tags("cardio"), tags("calves"), tags("jump rope")),

	// Flexibility
	builtin("hamstring-stretch", "Hamstring Stretch", "Hinge toward straight legs until a stretch is felt.",
		models.CategoryFlexibility, tags("hamstrings"), tags(), tags()),
	builtin("hip-flexor-stretch", "Hip Flexor Stretch", "Kneel in a split stance and shift the hips forward.",
		models.CategoryFlexibility, tags("quadriceps"), tags("glutes"), tags()),
}
