// ABOUTME: Tests for exercise catalog queries.
// ABOUTME: Covers sorting, filters, search and lenient tag decoding.
package storage

import (
	"context"
	"sort"
	"testing"

	"github.com/harperreed/lift/internal/models"
)

func TestListExerciseTypesSortedByName(t *testing.T) {
	db := setupTestDB(t)

	all, err := db.ListExerciseTypes(context.Background())
	if err != nil {
		t.Fatalf("ListExerciseTypes failed: %v", err)
	}
	if len(all) != len(DefaultExercises) {
		t.Fatalf("got %d exercise types, want %d", len(all), len(DefaultExercises))
	}

	names := make([]string, len(all))
	for i, et := range all {
		names[i] = et.Name
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("exercise types not sorted by name: %v", names)
	}
}

func TestGetExerciseType(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	et, err := db.GetExerciseType(ctx, "barbell-squat")
	if err != nil {
		t.Fatalf("GetExerciseType failed: %v", err)
	}
	if et == nil {
		t.Fatal("expected barbell-squat to exist")
	}
	if et.Name != "Barbell Squat" {
		t.Errorf("Name = %s, want Barbell Squat", et.Name)
	}
	if et.Category != models.CategoryStrength {
		t.Errorf("Category = %s, want strength", et.Category)
	}
	if len(et.PrimaryMuscleGroups) == 0 || et.PrimaryMuscleGroups[0] != "quadriceps" {
		t.Errorf("PrimaryMuscleGroups = %v, want quadriceps first", et.PrimaryMuscleGroups)
	}
	if et.IsCustom {
		t.Error("seeded entry should not be custom")
	}

	missing, err := db.GetExerciseType(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("GetExerciseType(missing) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}
}

func TestListExerciseTypesByCategory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, cat := range models.AllCategories {
		t.Run(string(cat), func(t *testing.T) {
			got, err := db.ListExerciseTypesByCategory(ctx, cat)
			if err != nil {
				t.Fatalf("ListExerciseTypesByCategory failed: %v", err)
			}
			want := 0
			for _, ex := range DefaultExercises {
				if ex.Category == cat {
					want++
				}
			}
			if len(got) != want {
				t.Errorf("got %d, want %d", len(got), want)
			}
			for _, et := range got {
				if et.Category != cat {
					t.Errorf("%s has category %s", et.ID, et.Category)
				}
			}
		})
	}
}

func TestListExerciseTypesByMuscleGroupUsesPrimaryOnly(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.ListExerciseTypesByMuscleGroup(context.Background(), "triceps")
	if err != nil {
		t.Fatalf("ListExerciseTypesByMuscleGroup failed: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected at least one triceps exercise")
	}

	ids := map[string]bool{}
	for _, et := range got {
		ids[et.ID] = true
		found := false
		for _, g := range et.PrimaryMuscleGroups {
			if g == "triceps" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s matched but triceps is not primary: %v", et.ID, et.PrimaryMuscleGroups)
		}
	}
	// Bench press lists triceps only as secondary.
	if ids["barbell-bench-press"] {
		t.Error("secondary muscle group should not match")
	}
	if !ids["tricep-pushdown"] {
		t.Error("expected tricep-pushdown in results")
	}
}

func TestCatalogQueriesMatchWildcardsLiterally(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, mg := range []string{"%", "_", "c_est", `\`} {
		got, err := db.ListExerciseTypesByMuscleGroup(ctx, mg)
		if err != nil {
			t.Fatalf("ListExerciseTypesByMuscleGroup(%q) failed: %v", mg, err)
		}
		if len(got) != 0 {
			t.Errorf("muscle group %q matched %d exercises, want 0", mg, len(got))
		}
	}

	for _, q := range []string{"%", "_", "Bench_Press"} {
		got, err := db.SearchExerciseTypes(ctx, q)
		if err != nil {
			t.Fatalf("SearchExerciseTypes(%q) failed: %v", q, err)
		}
		if len(got) != 0 {
			t.Errorf("search %q matched %d exercises, want 0", q, len(got))
		}
	}
}

func TestSearchExerciseTypes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		query   string
		wantID  string
		wantAny bool
	}{
		{"Squat", "barbell-squat", true},
		{"squat", "front-squat", true},
		{"curl", "hammer-curl", true},
		{"zzz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := db.SearchExerciseTypes(ctx, tt.query)
			if err != nil {
				t.Fatalf("SearchExerciseTypes failed: %v", err)
			}
			if !tt.wantAny {
				if len(got) != 0 {
					t.Errorf("expected no results, got %d", len(got))
				}
				return
			}
			found := false
			for _, et := range got {
				if et.ID == tt.wantID {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s in results for %q", tt.wantID, tt.query)
			}
		})
	}
}

func TestCreateCustomExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	et := models.NewCustomExerciseType("Landmine Press", models.CategoryStrength).
		WithMuscleGroups([]string{"shoulders"}, []string{"chest"}).
		WithEquipment("barbell")
	if err := db.CreateCustomExercise(ctx, et); err != nil {
		t.Fatalf("CreateCustomExercise failed: %v", err)
	}

	got, err := db.GetExerciseType(ctx, et.ID)
	if err != nil || got == nil {
		t.Fatalf("GetExerciseType failed: %v", err)
	}
	if !got.IsCustom {
		t.Error("expected IsCustom")
	}
	if len(got.SecondaryMuscleGroups) != 1 || got.SecondaryMuscleGroups[0] != "chest" {
		t.Errorf("SecondaryMuscleGroups = %v", got.SecondaryMuscleGroups)
	}

	custom, err := db.ListCustomExercises(ctx)
	if err != nil {
		t.Fatalf("ListCustomExercises failed: %v", err)
	}
	if len(custom) != 1 || custom[0].ID != et.ID {
		t.Errorf("ListCustomExercises = %v", custom)
	}
}

func TestCreateCustomExerciseValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.CreateCustomExercise(ctx, models.NewCustomExerciseType("  ", models.CategoryCardio)); err == nil {
		t.Error("expected error for blank name")
	}
	if err := db.CreateCustomExercise(ctx, models.NewCustomExerciseType("Sled Push", "sled")); err == nil {
		t.Error("expected error for invalid category")
	}
}

func TestMalformedTagsDecodeEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.db.Exec(`
		INSERT INTO exercise_types (id, name, primary_muscle_groups, secondary_muscle_groups, equipment, category)
		VALUES ('broken', 'Broken', 'not json', '', 'null', 'strength')
	`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	et, err := db.GetExerciseType(ctx, "broken")
	if err != nil || et == nil {
		t.Fatalf("GetExerciseType failed: %v", err)
	}
	if et.PrimaryMuscleGroups == nil || len(et.PrimaryMuscleGroups) != 0 {
		t.Errorf("PrimaryMuscleGroups = %#v, want empty", et.PrimaryMuscleGroups)
	}
	if et.SecondaryMuscleGroups == nil || len(et.SecondaryMuscleGroups) != 0 {
		t.Errorf("SecondaryMuscleGroups = %#v, want empty", et.SecondaryMuscleGroups)
	}
	if et.Equipment == nil || len(et.Equipment) != 0 {
		t.Errorf("Equipment = %#v, want empty", et.Equipment)
	}
}

func TestEncodeTags(t *testing.T) {
	if got := encodeTags(nil); got != "[]" {
		t.Errorf("encodeTags(nil) = %s, want []", got)
	}
	if got := encodeTags([]string{"chest", "triceps"}); got != `["chest","triceps"]` {
		t.Errorf("encodeTags = %s", got)
	}
}
