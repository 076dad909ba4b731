// ABOUTME: Display helpers shared by the lift commands.
// ABOUTME: Durations, weights, countdowns, relative dates and column padding.
package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/harperreed/lift/internal/models"
)

// formatDuration renders seconds as "45s", "12m 30s" or "1h 5m".
func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	rem := seconds % 60
	if minutes < 60 {
		if rem > 0 {
			return fmt.Sprintf("%dm %ds", minutes, rem)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	remMin := minutes % 60
	if remMin > 0 {
		return fmt.Sprintf("%dh %dm", hours, remMin)
	}
	return fmt.Sprintf("%dh", hours)
}

// formatWeight rounds to one decimal and drops a trailing ".0".
func formatWeight(value float64, unit models.WeightUnit) string {
	rounded := math.Round(value*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + string(unit)
}

// formatVolume renders a volume total with thousands separators.
func formatVolume(value float64, unit models.WeightUnit) string {
	return humanize.Commaf(math.Round(value*10)/10) + " " + string(unit)
}

// formatTimerDisplay renders a countdown as m:ss.
func formatTimerDisplay(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// formatRelativeDate renders t relative to now: "Today", "Yesterday",
// "3 days ago", "2 weeks ago", then the calendar date.
func formatRelativeDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

// formatSet renders one set line body: "225 lbs x 5".
func formatSet(s models.ExerciseSet, unit models.WeightUnit) string {
	weight := "-"
	if s.Weight != nil {
		weight = formatWeight(*s.Weight, unit)
	}
	reps := "-"
	if s.Reps != nil {
		reps = strconv.Itoa(*s.Reps)
	}
	return weight + " x " + reps
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
