// ABOUTME: CLI rest timer: a foreground countdown that rings the terminal bell
// ABOUTME: once, from the notification scheduler or when the countdown ends.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/notify"
	"github.com/harperreed/lift/internal/timer"
	"github.com/spf13/cobra"
)

var timerCmd = &cobra.Command{
	Use:     "timer [seconds]",
	Aliases: []string{"rest"},
	Short:   "Run a rest timer",
	Long: `Count down a rest period in the foreground. Without an argument the
default rest from your profile is used (see 'lift profile').

Press Ctrl-C to skip the rest.

EXAMPLES:

  lift timer        # default rest
  lift timer 120    # two minutes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds := restSeconds()
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid seconds: %s", args[0])
			}
			seconds = n
		}
		return runRestTimer(cmd.Context(), seconds)
	},
}

// bellOut receives the terminal bell when a rest ends.
var bellOut io.Writer = os.Stderr

func init() {
	rootCmd.AddCommand(timerCmd)
}

// runRestTimer counts down seconds, redrawing one line, until the timer
// expires or the user interrupts.
func runRestTimer(ctx context.Context, seconds int) error {
	// The scheduler and the countdown both try to ring; the first one wins.
	var bell sync.Once
	ring := func() { bell.Do(func() { fmt.Fprint(bellOut, "\a") }) }

	sched, closeSched := cfg.OpenScheduler(func(n notify.Notification) { ring() }, logger)
	defer func() { _ = closeSched() }()

	tm := timer.New(sched, nil, logger)
	defer tm.Close()

	done := make(chan struct{})
	var once sync.Once
	tm.OnTick(func(s timer.Snapshot) {
		fmt.Printf("\r  Rest %s ", formatTimerDisplay(s.Remaining))
	})
	tm.OnExpire(func() {
		once.Do(func() { close(done) })
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tm.Start(ctx, seconds); err != nil {
		return fmt.Errorf("failed to start rest timer: %w", err)
	}

	select {
	case <-done:
		ring()
		fmt.Println()
		color.Green("✓ Rest over. Time for your next set!")
	case <-ctx.Done():
		tm.Reset(context.Background())
		fmt.Println()
		color.Yellow("✗ Rest skipped")
	}
	return nil
}
