// ABOUTME: Volume and personal-best calculations over logged sets.
// ABOUTME: Only completed sets with weight and reps count toward volume.
package models

// SetVolume returns weight × reps for a completed set, or 0.
func SetVolume(s ExerciseSet) float64 {
	if !s.Completed || s.Weight == nil || s.Reps == nil {
		return 0
	}
	return *s.Weight * float64(*s.Reps)
}

// ExerciseVolume sums SetVolume over sets.
func ExerciseVolume(sets []ExerciseSet) float64 {
	var total float64
	for _, s := range sets {
		total += SetVolume(s)
	}
	return total
}

// WorkoutVolume sums ExerciseVolume over every exercise instance.
func WorkoutVolume(exercises []WorkoutExercise) float64 {
	var total float64
	for _, ex := range exercises {
		total += ExerciseVolume(ex.Sets)
	}
	return total
}

// FindMaxWeight returns the heaviest weight among completed sets.
// ok is false when no completed set has a positive weight.
func FindMaxWeight(sets []ExerciseSet) (maxWeight float64, ok bool) {
	for _, s := range sets {
		if !s.Completed || s.Weight == nil || *s.Weight <= 0 {
			continue
		}
		if !ok || *s.Weight > maxWeight {
			maxWeight = *s.Weight
			ok = true
		}
	}
	return maxWeight, ok
}

// CountCompletedSets returns how many sets are marked completed.
func CountCompletedSets(sets []ExerciseSet) int {
	n := 0
	for _, s := range sets {
		if s.Completed {
			n++
		}
	}
	return n
}

// WorkoutSummary holds aggregate stats for one workout.
type WorkoutSummary struct {
	ExerciseCount   int     `json:"exercise_count" yaml:"exercise_count"`
	TotalSets       int     `json:"total_sets" yaml:"total_sets"`
	CompletedSets   int     `json:"completed_sets" yaml:"completed_sets"`
	Volume          float64 `json:"volume" yaml:"volume"`
	DurationSeconds int     `json:"duration_seconds" yaml:"duration_seconds"`
}

// Summarize computes stats over a hydrated workout.
func Summarize(w *Workout) WorkoutSummary {
	s := WorkoutSummary{
		ExerciseCount:   len(w.Exercises),
		DurationSeconds: w.DurationSeconds,
		Volume:          WorkoutVolume(w.Exercises),
	}
	for _, ex := range w.Exercises {
		s.TotalSets += len(ex.Sets)
		s.CompletedSets += CountCompletedSets(ex.Sets)
	}
	return s
}
