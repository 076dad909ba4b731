// ABOUTME: Backup and sharing commands: export to JSON, YAML or Markdown
// ABOUTME: and restore a JSON backup with import.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export your workouts",
	Long: `Write your profile, custom exercises and workouts in one of three formats.

FORMATS:

  json       complete backup, readable by 'lift import'
  yaml       the same data, easier to read
  markdown   completed workouts as a training log

--since limits the markdown log to workouts on or after a date (YYYY-MM-DD).

EXAMPLES:

  lift export json -o ~/lift-backup.json
  lift export yaml | less
  lift export markdown --since 2025-01-01 > log.md`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		since, err := parseSinceDate(exportSince)
		if err != nil {
			return err
		}

		data, err := renderExport(cmd.Context(), args[0], since)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		color.Green("✓ Wrote %s export to %s", args[0], exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <backup.json>",
	Short: "Restore workouts from a JSON backup",
	Long: `Restore custom exercises and completed workouts from 'lift export json'.

Records already in the database are skipped, so importing the same backup
twice changes nothing. Workouts that were still in progress when the backup
was taken are left out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}
		if err := db.ImportJSON(cmd.Context(), user.ID, raw); err != nil {
			return fmt.Errorf("failed to import %s: %w", args[0], err)
		}
		color.Green("✓ Restored %s", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "markdown only: first date to include (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// renderExport produces the export body for format.
func renderExport(ctx context.Context, format string, since *time.Time) ([]byte, error) {
	switch format {
	case "json":
		data, err := db.ExportJSON(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("export failed: %w", err)
		}
		return data, nil
	case "yaml":
		data, err := db.ExportYAML(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("export failed: %w", err)
		}
		return data, nil
	case "markdown":
		md, err := db.ExportMarkdown(ctx, user.ID, since)
		if err != nil {
			return nil, fmt.Errorf("export failed: %w", err)
		}
		return []byte(md), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
	}
}

// parseSinceDate reads a YYYY-MM-DD date as local midnight. Empty means no
// lower bound.
func parseSinceDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return &t, nil
}
