// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/lift/internal/logging"
	"github.com/harperreed/lift/internal/mcp"
	"github.com/harperreed/lift/internal/notify"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to run your workout through a
standardized protocol. The server communicates via stdin/stdout and logs to
~/.local/share/lift/lift.log (override with LIFT_LOG_FILE).

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "lift": {
        "command": "lift",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  list_exercises      Browse or search the exercise catalog
  get_exercise        Get one catalog exercise
  start_workout       Start (or resume) the workout in progress
  get_active_workout  Show the workout in progress
  add_exercise        Add an exercise to the workout
  remove_exercise     Remove an exercise and its sets
  add_set             Append a set
  update_set          Change weight/reps on a set
  delete_set          Delete a set
  toggle_set          Toggle a set done (starts the rest timer)
  finish_workout      Finish and save the workout
  cancel_workout      Discard the workout
  workout_history     Completed workouts
  exercise_history    One exercise's past sessions and personal best
  start_rest_timer    Start the rest timer
  pause_rest_timer    Pause the rest timer
  resume_rest_timer   Resume the rest timer
  reset_rest_timer    Stop the rest timer
  rest_timer_status   Time left on the rest timer
  get_profile         Profile and preferences
  update_preferences  Change unit, default rest or theme

AVAILABLE RESOURCES:

  lift://active       The workout in progress
  lift://history      Recent completed workouts
  lift://progress     Logged exercises with personal bests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileLogger, closeLog := logging.NewFile(cfg.GetLogFile(), cfg.GetLogLevel())
		defer func() { _ = closeLog.Close() }()

		sched, closeSched := cfg.OpenScheduler(func(n notify.Notification) {
			fileLogger.Info("notification", "title", n.Title, "body", n.Body)
		}, fileLogger)
		defer func() { _ = closeSched() }()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		server, err := mcp.NewServer(ctx, db, sched, fileLogger)
		if err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
		defer server.Close()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		fileLogger.Info("mcp server starting", "db", db.Path())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
