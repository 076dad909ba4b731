// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Covers formatting helpers, flags, and end-to-end workout commands.
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{750, "12m 30s"},
		{3600, "1h"},
		{3900, "1h 5m"},
		{3930, "1h 5m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		value float64
		unit  models.WeightUnit
		want  string
	}{
		{225, models.UnitLbs, "225 lbs"},
		{102.5, models.UnitKg, "102.5 kg"},
		{102.54, models.UnitKg, "102.5 kg"},
		{99.96, models.UnitLbs, "100 lbs"},
		{0, models.UnitKg, "0 kg"},
	}

	for _, tt := range tests {
		if got := formatWeight(tt.value, tt.unit); got != tt.want {
			t.Errorf("formatWeight(%v, %s) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	if got := formatVolume(1125, models.UnitLbs); got != "1,125 lbs" {
		t.Errorf("formatVolume(1125) = %q", got)
	}
	if got := formatVolume(12345.5, models.UnitKg); got != "12,345.5 kg" {
		t.Errorf("formatVolume(12345.5) = %q", got)
	}
}

func TestFormatTimerDisplay(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{90, "1:30"},
		{5, "0:05"},
		{0, "0:00"},
		{-3, "0:00"},
		{600, "10:00"},
	}

	for _, tt := range tests {
		if got := formatTimerDisplay(tt.seconds); got != tt.want {
			t.Errorf("formatTimerDisplay(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same moment", now, "Today"},
		{"earlier today", now.Add(-5 * time.Hour), "Today"},
		{"one day", now.Add(-24 * time.Hour), "Yesterday"},
		{"three days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"two weeks", now.Add(-14 * 24 * time.Hour), "2 weeks ago"},
		{"future", now.Add(time.Hour), "Today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeDate(tt.t, now); got != tt.want {
				t.Errorf("formatRelativeDate = %q, want %q", got, tt.want)
			}
		})
	}

	old := now.Add(-40 * 24 * time.Hour)
	if got := formatRelativeDate(old, now); got != old.Local().Format("Jan 2, 2006") {
		t.Errorf("formatRelativeDate(40 days) = %q", got)
	}
}

func TestFormatSet(t *testing.T) {
	full := models.ExerciseSet{Weight: models.Ptr(225.0), Reps: models.Ptr(5)}
	if got := formatSet(full, models.UnitLbs); got != "225 lbs x 5" {
		t.Errorf("formatSet(full) = %q", got)
	}
	if got := formatSet(models.ExerciseSet{}, models.UnitLbs); got != "- x -" {
		t.Errorf("formatSet(empty) = %q", got)
	}
	if got := formatSet(models.ExerciseSet{Reps: models.Ptr(12)}, models.UnitKg); got != "- x 12" {
		t.Errorf("formatSet(reps only) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world this is a long string", 10, "hello w..."},
		{"empty string", "", 10, ""},
		{"very short maxLen", "hello", 3, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"hi", 5, "hi   "},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello world"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "session"); got != "1 session" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(0, "workout"); got != "0 workouts" {
		t.Errorf("pluralize(0) = %q", got)
	}
	if got := pluralize(3, "workout"); got != "3 workouts" {
		t.Errorf("pluralize(3) = %q", got)
	}
}

func TestParseSinceDate(t *testing.T) {
	got, err := parseSinceDate("")
	if err != nil || got != nil {
		t.Errorf("parseSinceDate(\"\") = %v, %v; want nil, nil", got, err)
	}

	got, err = parseSinceDate("2025-03-14")
	if err != nil {
		t.Fatalf("parseSinceDate: %v", err)
	}
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseSinceDate = %v, want %v", got, want)
	}

	for _, bad := range []string{"14-03-2025", "2025-13-01", "yesterday"} {
		if _, err := parseSinceDate(bad); err == nil {
			t.Errorf("parseSinceDate(%q) expected error", bad)
		}
	}
}

func TestFilterCatalog(t *testing.T) {
	types := []*models.ExerciseType{
		{ID: "a", Category: models.CategoryStrength, PrimaryMuscleGroups: []string{"chest"}},
		{ID: "b", Category: models.CategoryStrength, PrimaryMuscleGroups: []string{"back"}, SecondaryMuscleGroups: []string{"chest"}},
		{ID: "c", Category: models.CategoryCardio, PrimaryMuscleGroups: []string{"cardio"}},
	}

	ids := func(list []*models.ExerciseType) string {
		var out []string
		for _, et := range list {
			out = append(out, et.ID)
		}
		return strings.Join(out, ",")
	}

	if got := ids(filterCatalog(types, "", "")); got != "a,b,c" {
		t.Errorf("no filter = %q", got)
	}
	if got := ids(filterCatalog(types, "strength", "")); got != "a,b" {
		t.Errorf("category filter = %q", got)
	}
	if got := ids(filterCatalog(types, "", "chest")); got != "a" {
		t.Errorf("muscle filter = %q, want primary matches only", got)
	}
	if got := ids(filterCatalog(types, "cardio", "chest")); got != "" {
		t.Errorf("combined filter = %q", got)
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "lift" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "lift")
	}
	if rootCmd.PersistentFlags().Lookup("db") == nil {
		t.Error("Expected --db persistent flag")
	}
}

func TestSetCmdSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range setCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"add", "update", "done", "rm"} {
		if !names[want] {
			t.Errorf("Expected set subcommand %q", want)
		}
	}
}

func TestSetDoneRestFlag(t *testing.T) {
	f := setDoneCmd.Flags().Lookup("rest")
	if f == nil {
		t.Fatal("Expected --rest flag on set done")
	}
	if f.NoOptDefVal != "-1" {
		t.Errorf("NoOptDefVal = %q, want -1", f.NoOptDefVal)
	}
	if f.DefValue != "0" {
		t.Errorf("DefValue = %q, want 0", f.DefValue)
	}
}

func TestHistoryCmdFlags(t *testing.T) {
	limit := historyCmd.Flags().Lookup("limit")
	if limit == nil {
		t.Fatal("Expected --limit flag on history")
	}
	if limit.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limit.DefValue)
	}
	if historyCmd.Flags().Lookup("offset") == nil {
		t.Error("Expected --offset flag on history")
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	expected := map[string]bool{"json": false, "yaml": false, "markdown": false}
	for _, arg := range exportCmd.ValidArgs {
		if _, ok := expected[arg]; ok {
			expected[arg] = true
		}
	}
	for arg, found := range expected {
		if !found {
			t.Errorf("Expected valid arg %q for exportCmd", arg)
		}
	}
}

// cliEnv points config and data at temp dirs and returns the database path.
func cliEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("LIFT_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("LIFT_LOG_LEVEL", "error")
	t.Setenv("LIFT_LOG_FILE", "")
	return filepath.Join(dir, "data", "lift.db")
}

// resetFlags returns every flag in the command tree to its default so
// values from one Execute do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command against dbFile.
func runCLI(t *testing.T, dbFile string, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(append([]string{"--db", dbFile}, args...))
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when RunE fails.
	if db != nil {
		_ = db.Close()
		db = nil
	}
	return err
}

func mustRun(t *testing.T, dbFile string, args ...string) {
	t.Helper()
	if err := runCLI(t, dbFile, args...); err != nil {
		t.Fatalf("lift %s: %v", strings.Join(args, " "), err)
	}
}

// inspect opens the database for assertions between commands.
func inspect(t *testing.T, dbFile string, fn func(store *storage.DB, userID string)) {
	t.Helper()
	store, err := storage.Open(dbFile)
	if err != nil {
		t.Fatalf("open %s: %v", dbFile, err)
	}
	defer store.Close()

	u, err := store.GetOrCreateDefaultUser(context.Background())
	if err != nil {
		t.Fatalf("default user: %v", err)
	}
	fn(store, u.ID)
}

func activeWorkout(t *testing.T, dbFile string) *models.Workout {
	t.Helper()
	var w *models.Workout
	inspect(t, dbFile, func(store *storage.DB, userID string) {
		var err error
		w, err = store.GetActiveWorkout(context.Background(), userID)
		if err != nil {
			t.Fatalf("GetActiveWorkout: %v", err)
		}
	})
	return w
}

func TestWorkoutFlow(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "start", "Leg Day")
	w := activeWorkout(t, dbFile)
	if w == nil || w.Name != "Leg Day" {
		t.Fatalf("active workout = %+v, want Leg Day", w)
	}

	mustRun(t, dbFile, "add", "barbell-squat")
	w = activeWorkout(t, dbFile)
	if len(w.Exercises) != 1 || len(w.Exercises[0].Sets) != 1 {
		t.Fatalf("expected one exercise with one set, got %+v", w.Exercises)
	}
	ex := w.Exercises[0]
	first := ex.Sets[0]

	mustRun(t, dbFile, "set", "update", shortID(first.ID), "-w", "225", "-r", "5")
	mustRun(t, dbFile, "set", "done", shortID(first.ID))
	mustRun(t, dbFile, "set", "add", shortID(ex.ID), "-w", "235", "-r", "3")

	w = activeWorkout(t, dbFile)
	sets := w.Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(sets))
	}
	if *sets[0].Weight != 225 || *sets[0].Reps != 5 || !sets[0].Completed {
		t.Errorf("first set = %+v", sets[0])
	}
	if sets[1].SetNumber != 2 || *sets[1].Weight != 235 || *sets[1].Reps != 3 || sets[1].Completed {
		t.Errorf("second set = %+v", sets[1])
	}

	mustRun(t, dbFile, "status")
	mustRun(t, dbFile, "notes", "felt strong")
	mustRun(t, dbFile, "finish")

	if activeWorkout(t, dbFile) != nil {
		t.Fatal("expected no active workout after finish")
	}
	inspect(t, dbFile, func(store *storage.DB, userID string) {
		ctx := context.Background()
		history, err := store.GetWorkoutHistory(ctx, userID, 10, 0)
		if err != nil {
			t.Fatalf("GetWorkoutHistory: %v", err)
		}
		if len(history) != 1 || history[0].Notes == nil || *history[0].Notes != "felt strong" {
			t.Fatalf("history = %+v", history)
		}
		best, ok, err := store.GetPersonalBest(ctx, "barbell-squat")
		if err != nil || !ok || best != 225 {
			t.Errorf("personal best = %v %v %v, want 225 (only completed sets count)", best, ok, err)
		}
	})

	mustRun(t, dbFile, "history")
	mustRun(t, dbFile, "history", "show", shortID(w.ID))
	mustRun(t, dbFile, "progress")
	mustRun(t, dbFile, "exercise", "show", "barbell-squat")
}

func TestStartTwiceKeepsFirstWorkout(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "start", "First")
	mustRun(t, dbFile, "start", "Second")

	w := activeWorkout(t, dbFile)
	if w == nil || w.Name != "First" {
		t.Errorf("active workout = %+v, want First", w)
	}
}

func TestCancelDiscardsWorkout(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "start")
	mustRun(t, dbFile, "add", "deadlift")
	mustRun(t, dbFile, "cancel")

	if activeWorkout(t, dbFile) != nil {
		t.Error("expected no active workout after cancel")
	}
	inspect(t, dbFile, func(store *storage.DB, userID string) {
		history, _ := store.GetWorkoutHistory(context.Background(), userID, 10, 0)
		if len(history) != 0 {
			t.Errorf("cancelled workout appeared in history: %+v", history)
		}
	})
}

func TestRemoveExercise(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "start")
	mustRun(t, dbFile, "add", "deadlift")
	mustRun(t, dbFile, "add", "pull-up")
	w := activeWorkout(t, dbFile)

	mustRun(t, dbFile, "remove", shortID(w.Exercises[0].ID))

	w = activeWorkout(t, dbFile)
	if len(w.Exercises) != 1 || w.Exercises[0].ExerciseTypeID != "pull-up" {
		t.Errorf("exercises = %+v, want only pull-up", w.Exercises)
	}
}

func TestCommandErrors(t *testing.T) {
	dbFile := cliEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"add without workout", []string{"add", "deadlift"}, "no active workout"},
		{"finish without workout", []string{"finish"}, "no active workout"},
		{"unknown exercise", []string{"add", "moon-press"}, "exercise not found"},
		{"update without flags", []string{"set", "update", "abcd1234"}, "nothing to update"},
		{"unknown set", []string{"set", "done", "abcd1234"}, "not found"},
		{"bad timer seconds", []string{"timer", "abc"}, "invalid seconds"},
		{"bad export format", []string{"export", "csv"}, "unknown format"},
		{"bad since", []string{"export", "markdown", "--since", "June"}, "invalid date format"},
		{"bad unit", []string{"profile", "set", "--unit", "stone"}, "invalid weight unit"},
		{"profile without flags", []string{"profile", "set"}, "nothing to change"},
		{"bad muscle filter", []string{"exercises", "-m", "wings"}, "unknown muscle group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, dbFile, tt.args...)
			if err == nil {
				t.Fatalf("lift %s: expected error", strings.Join(tt.args, " "))
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestProfileSet(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "profile", "set", "--unit", "kg", "--rest", "60", "--display-name", "Sam")
	mustRun(t, dbFile, "profile")

	inspect(t, dbFile, func(store *storage.DB, userID string) {
		u, err := store.GetUser(context.Background(), userID)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if u.Preferences.WeightUnit != models.UnitKg {
			t.Errorf("unit = %s, want kg", u.Preferences.WeightUnit)
		}
		if u.Preferences.DefaultRestSeconds != 60 {
			t.Errorf("rest = %d, want 60", u.Preferences.DefaultRestSeconds)
		}
		if u.Preferences.Theme != models.ThemeAuto {
			t.Errorf("theme changed to %s", u.Preferences.Theme)
		}
		if u.DisplayName != "Sam" {
			t.Errorf("display name = %q, want Sam", u.DisplayName)
		}
	})
}

func TestExerciseAddAndList(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "exercise", "add", "Sled Push", "--primary", "quadriceps,glutes", "--equipment", "sled")
	mustRun(t, dbFile, "exercises", "-s", "sled")
	mustRun(t, dbFile, "exercises", "-c", "cardio", "-m", "cardio")

	inspect(t, dbFile, func(store *storage.DB, userID string) {
		custom, err := store.ListCustomExercises(context.Background())
		if err != nil {
			t.Fatalf("ListCustomExercises: %v", err)
		}
		if len(custom) != 1 {
			t.Fatalf("expected 1 custom exercise, got %d", len(custom))
		}
		et := custom[0]
		if et.Name != "Sled Push" || et.Category != models.CategoryStrength {
			t.Errorf("custom exercise = %+v", et)
		}
		if strings.Join(et.PrimaryMuscleGroups, ",") != "quadriceps,glutes" {
			t.Errorf("primary = %v", et.PrimaryMuscleGroups)
		}
		if len(et.SecondaryMuscleGroups) != 0 {
			t.Errorf("secondary = %v, want none", et.SecondaryMuscleGroups)
		}
	})

	// Slice flags must not carry over into the next run.
	mustRun(t, dbFile, "exercise", "add", "Jump Rope", "-c", "cardio")
	inspect(t, dbFile, func(store *storage.DB, userID string) {
		custom, _ := store.ListCustomExercises(context.Background())
		for _, et := range custom {
			if et.Name == "Jump Rope" && len(et.PrimaryMuscleGroups) != 0 {
				t.Errorf("Jump Rope inherited muscle groups %v", et.PrimaryMuscleGroups)
			}
		}
	})

	if err := runCLI(t, dbFile, "exercise", "add", "Wing Flap", "--primary", "wings"); err == nil {
		t.Error("expected error for unknown muscle group")
	}
}

func TestExportImport(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "start", "Push")
	mustRun(t, dbFile, "add", "overhead-press")
	w := activeWorkout(t, dbFile)
	setID := shortID(w.Exercises[0].Sets[0].ID)
	mustRun(t, dbFile, "set", "update", setID, "-w", "95", "-r", "8")
	mustRun(t, dbFile, "set", "done", setID)
	mustRun(t, dbFile, "finish")

	out := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, dbFile, "export", "json", "-o", out)
	mustRun(t, dbFile, "export", "yaml")
	mustRun(t, dbFile, "export", "markdown", "--since", "2000-01-01")

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Push") {
		t.Error("export missing workout name")
	}

	otherDB := filepath.Join(t.TempDir(), "other", "lift.db")
	mustRun(t, otherDB, "import", out)
	mustRun(t, otherDB, "import", out)

	inspect(t, otherDB, func(store *storage.DB, userID string) {
		history, err := store.GetWorkoutHistory(context.Background(), userID, 10, 0)
		if err != nil {
			t.Fatalf("GetWorkoutHistory: %v", err)
		}
		if len(history) != 1 || history[0].Name != "Push" {
			t.Fatalf("imported history = %+v", history)
		}
	})
}

func TestSetDoneWithRest(t *testing.T) {
	if testing.Short() {
		t.Skip("runs a one second rest timer")
	}
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "start")
	mustRun(t, dbFile, "add", "push-up")
	w := activeWorkout(t, dbFile)
	setID := shortID(w.Exercises[0].Sets[0].ID)

	var bell bytes.Buffer
	bellOut = &bell
	t.Cleanup(func() { bellOut = os.Stderr })

	start := time.Now()
	mustRun(t, dbFile, "set", "done", setID, "--rest=1")
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("rest returned after %v, want at least 1s", elapsed)
	}
	if bell.String() != "\a" {
		t.Errorf("bell output = %q, want exactly one bell", bell.String())
	}

	w = activeWorkout(t, dbFile)
	if !w.Exercises[0].Sets[0].Completed {
		t.Error("expected set to be completed")
	}
}

func TestDefaultDatabaseLivesInDataDir(t *testing.T) {
	dbFile := cliEnv(t)

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"start", "Push"})
	err := rootCmd.Execute()
	if db != nil {
		_ = db.Close()
		db = nil
	}
	if err != nil {
		t.Fatalf("lift start: %v", err)
	}

	if _, err := os.Stat(dbFile); err != nil {
		t.Fatalf("expected database at %s: %v", dbFile, err)
	}
	if w := activeWorkout(t, dbFile); w == nil || w.Name != "Push" {
		t.Errorf("active workout = %+v, want Push", w)
	}
}

func TestHistoryShowUnknownWorkout(t *testing.T) {
	dbFile := cliEnv(t)

	mustRun(t, dbFile, "history")

	if err := runCLI(t, dbFile, "history", "show", "zzzzzzzz"); err == nil {
		t.Error("expected error for unknown workout")
	}
}
