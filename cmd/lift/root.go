// ABOUTME: Root Cobra command for lift CLI.
// ABOUTME: Opens config, storage and the session via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/logging"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dbPath string

	cfg    *config.Config
	db     *storage.DB
	user   *models.User
	sess   *session.Controller
	logger *log.Logger
)

// noStorage lists commands that run without opening the database.
var noStorage = map[string]bool{
	"help":          true,
	"version":       true,
	"install-skill": true,
	"completion":    true,
}

var rootCmd = &cobra.Command{
	Use:   "lift",
	Short: "Personal workout tracker",
	Long: `Lift is a CLI tool for logging strength and conditioning workouts.

QUICK START:

  $ lift start "Leg Day"                 # Start a workout
  $ lift add barbell-squat               # Add an exercise (starts with one set)
  $ lift status                          # See exercises and set IDs
  $ lift set update 1a2b3c4d -w 225 -r 5 # Log weight and reps
  $ lift set done 1a2b3c4d --rest        # Mark done and rest
  $ lift finish                          # Save the workout

CATALOG:

  $ lift exercises --muscle chest        # Browse the exercise catalog
  $ lift exercise show barbell-squat     # History and personal best
  $ lift exercise add "Sled Push" -c strength

HISTORY:

  $ lift history                         # Completed workouts
  $ lift progress                        # Exercises you've logged

IDs:

  Workout, exercise and set IDs may be shortened to any unique prefix.
  'lift status' shows 8-character prefixes.

MCP INTEGRATION:

  Run 'lift mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Workouts are stored in SQLite at ~/.local/share/lift/lift.db.
  Override with --db or LIFT_DATA_DIR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noStorage[cmd.Name()] {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dbPath != "" {
			cfg.DataDir = filepath.Dir(dbPath)
		}

		if cmd.Name() == "mcp" {
			// stdout carries the protocol; mcp opens its own file logger.
			logger = logging.Discard()
		} else {
			logger = logging.New(os.Stderr, cfg.GetLogLevel())
		}

		if dbPath != "" {
			db, err = storage.Open(dbPath)
		} else {
			db, err = cfg.OpenStorage()
		}
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		user, err = db.GetOrCreateDefaultUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		sess = session.New(db, nil, logger)
		if err := sess.Restore(cmd.Context(), user.ID); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			err := db.Close()
			db = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.local/share/lift/lift.db)")
}

// restSeconds returns the preferred rest duration.
func restSeconds() int {
	if user != nil && user.Preferences.DefaultRestSeconds > 0 {
		return user.Preferences.DefaultRestSeconds
	}
	if cfg != nil {
		return cfg.GetDefaultRestSeconds()
	}
	return models.DefaultRestSeconds
}

// weightUnit returns the preferred weight unit.
func weightUnit() models.WeightUnit {
	if user != nil && user.Preferences.WeightUnit != "" {
		return user.Preferences.WeightUnit
	}
	return models.UnitLbs
}
