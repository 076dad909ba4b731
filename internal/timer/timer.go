// ABOUTME: Rest timer counting down to a wall-clock deadline, with pause,
// ABOUTME: resume and an expiry notification scheduled alongside it.
package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/clock"
	"github.com/harperreed/lift/internal/notify"
)

// DefaultTickInterval is how often a running timer recomputes remaining time.
const DefaultTickInterval = 200 * time.Millisecond

var (
	ErrNotRunning      = errors.New("timer is not running")
	ErrNotPaused       = errors.New("timer is not paused")
	ErrInvalidDuration = errors.New("timer duration must be positive")
	ErrClosed          = errors.New("timer is closed")
)

// State is the timer's lifecycle state.
type State string

const (
	Stopped State = "stopped"
	Running State = "running"
	Paused  State = "paused"
)

// Snapshot is a point-in-time copy of the timer.
type Snapshot struct {
	State     State   `json:"state"`
	Remaining int     `json:"remaining_seconds"`
	Total     int     `json:"total_seconds"`
	Progress  float64 `json:"progress"`
}

// Timer is a rest countdown. Remaining time is always derived from the
// deadline.
type Timer struct {
	sched    notify.Scheduler
	clock    clock.Clock
	logger   *log.Logger
	interval time.Duration

	mu              sync.Mutex
	state           State
	total           int
	remaining       int
	deadline        time.Time
	pausedRemaining int
	notificationID  string
	onTick          func(Snapshot)
	onExpire        func()
	stop            chan struct{}
	closed          bool

	loops sync.WaitGroup
}

// Option configures a Timer.
type Option func(*Timer)

// WithTickInterval sets the recompute interval. Zero or negative disables
// the background loop; callers then drive Tick themselves.
func WithTickInterval(d time.Duration) Option {
	return func(t *Timer) { t.interval = d }
}

// New returns a stopped timer.
func New(sched notify.Scheduler, clk clock.Clock, logger *log.Logger, opts ...Option) *Timer {
	if sched == nil {
		sched = notify.Nop{}
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Timer{
		sched:    sched,
		clock:    clk,
		logger:   logger,
		interval: DefaultTickInterval,
		state:    Stopped,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnTick registers a callback invoked with every recomputed snapshot.
func (t *Timer) OnTick(fn func(Snapshot)) {
	t.mu.Lock()
	t.onTick = fn
	t.mu.Unlock()
}

// OnExpire registers a callback invoked once when a running timer reaches zero.
func (t *Timer) OnExpire(fn func()) {
	t.mu.Lock()
	t.onExpire = fn
	t.mu.Unlock()
}

// Start begins a countdown of seconds, replacing any current one.
func (t *Timer) Start(ctx context.Context, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("start %d: %w", seconds, ErrInvalidDuration)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.cancelNotification(ctx)
	t.stopLoop()

	t.total = seconds
	t.remaining = seconds
	t.pausedRemaining = 0
	t.deadline = t.clock.Now().Add(time.Duration(seconds) * time.Second)
	t.state = Running
	t.scheduleNotification(ctx, seconds)
	t.startLoop()
	snap, onTick := t.snapshot(), t.onTick
	t.mu.Unlock()

	t.logger.Debug("rest timer started", "seconds", seconds)
	if onTick != nil {
		onTick(snap)
	}
	return nil
}

// Pause freezes the remaining time. Valid only while running.
func (t *Timer) Pause(ctx context.Context) error {
	t.mu.Lock()
	if t.state != Running {
		t.mu.Unlock()
		return ErrNotRunning
	}

	remaining := t.computeRemaining()
	if remaining == 0 {
		// Ran out before anyone ticked it; finish the expiry instead.
		t.expire()
		snap, onTick, onExpire := t.snapshot(), t.onTick, t.onExpire
		t.mu.Unlock()
		t.notifyExpired(snap, onTick, onExpire)
		return ErrNotRunning
	}

	t.stopLoop()
	t.cancelNotification(ctx)
	t.remaining = remaining
	t.pausedRemaining = remaining
	t.deadline = time.Time{}
	t.state = Paused
	snap, onTick := t.snapshot(), t.onTick
	t.mu.Unlock()

	t.logger.Debug("rest timer paused", "remaining", remaining)
	if onTick != nil {
		onTick(snap)
	}
	return nil
}

// Resume continues a paused countdown from where it stopped.
func (t *Timer) Resume(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.state != Paused || t.pausedRemaining <= 0 {
		t.mu.Unlock()
		return ErrNotPaused
	}

	seconds := t.pausedRemaining
	t.deadline = t.clock.Now().Add(time.Duration(seconds) * time.Second)
	t.remaining = seconds
	t.state = Running
	t.scheduleNotification(ctx, seconds)
	t.startLoop()
	snap, onTick := t.snapshot(), t.onTick
	t.mu.Unlock()

	t.logger.Debug("rest timer resumed", "remaining", seconds)
	if onTick != nil {
		onTick(snap)
	}
	return nil
}

// Reset stops the timer and zeroes every counter, whatever the state.
func (t *Timer) Reset(ctx context.Context) {
	t.mu.Lock()
	t.cancelNotification(ctx)
	t.stopLoop()
	t.clear()
	snap, onTick := t.snapshot(), t.onTick
	t.mu.Unlock()

	if onTick != nil {
		onTick(snap)
	}
}

// Tick recomputes remaining time and stops the timer once it reaches zero.
func (t *Timer) Tick() Snapshot {
	t.mu.Lock()
	if t.state != Running {
		snap := t.snapshot()
		t.mu.Unlock()
		return snap
	}

	t.remaining = t.computeRemaining()
	expired := t.remaining == 0
	if expired {
		t.expire()
	}
	snap, onTick, onExpire := t.snapshot(), t.onTick, t.onExpire
	t.mu.Unlock()

	if expired {
		t.notifyExpired(snap, onTick, onExpire)
	} else if onTick != nil {
		onTick(snap)
	}
	return snap
}

// Snapshot returns the current state without recomputing.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// Close cancels any pending notification and stops the background loop.
// The timer cannot be started again.
func (t *Timer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.cancelNotification(context.Background())
	t.stopLoop()
	t.clear()
	t.mu.Unlock()

	t.loops.Wait()
}

// The helpers below expect t.mu to be held.

func (t *Timer) computeRemaining() int {
	left := t.deadline.Sub(t.clock.Now())
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

func (t *Timer) snapshot() Snapshot {
	s := Snapshot{State: t.state, Remaining: t.remaining, Total: t.total}
	if t.total > 0 {
		s.Progress = 1 - float64(t.remaining)/float64(t.total)
	}
	return s
}

// expire moves a finished countdown to Stopped. The total is kept so the
// display can show a full bar; the scheduled notification is left to fire.
func (t *Timer) expire() {
	t.stopLoop()
	t.state = Stopped
	t.remaining = 0
	t.pausedRemaining = 0
	t.deadline = time.Time{}
	t.notificationID = ""
}

func (t *Timer) clear() {
	t.state = Stopped
	t.total = 0
	t.remaining = 0
	t.pausedRemaining = 0
	t.deadline = time.Time{}
}

func (t *Timer) scheduleNotification(ctx context.Context, seconds int) {
	id, err := t.sched.Schedule(ctx, time.Duration(seconds)*time.Second, notify.Notification{
		Title: "Rest Timer",
		Body:  "Rest period is over. Time for your next set!",
	})
	if err != nil {
		t.logger.Warn("failed to schedule rest notification", "err", err)
		return
	}
	t.notificationID = id
}

func (t *Timer) cancelNotification(ctx context.Context) {
	if t.notificationID == "" {
		return
	}
	if err := t.sched.Cancel(ctx, t.notificationID); err != nil {
		t.logger.Warn("failed to cancel rest notification", "id", t.notificationID, "err", err)
	}
	t.notificationID = ""
}

func (t *Timer) startLoop() {
	if t.interval <= 0 {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	t.loops.Add(1)
	go t.run(stop)
}

func (t *Timer) stopLoop() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Timer) run(stop <-chan struct{}) {
	defer t.loops.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			if snap := t.Tick(); snap.State != Running {
				return
			}
		}
	}
}

func (t *Timer) notifyExpired(snap Snapshot, onTick func(Snapshot), onExpire func()) {
	t.logger.Debug("rest timer finished", "total", snap.Total)
	if onTick != nil {
		onTick(snap)
	}
	if onExpire != nil {
		onExpire()
	}
}
