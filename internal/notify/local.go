// ABOUTME: Badger-backed local scheduler. Pending notifications survive a
// ABOUTME: restart and expire from the store at their due time.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

const keyPrefix = "notify/"

// Deliverer receives notifications when they come due.
type Deliverer func(Notification)

// Local schedules notifications with in-process timers and records them in
// badger so a later process can re-arm whatever is still pending.
type Local struct {
	db      *badger.DB
	deliver Deliverer
	logger  *log.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// LocalOption configures a Local scheduler.
type LocalOption func(*Local)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) LocalOption {
	return func(s *Local) {
		if l != nil {
			s.logger = l
		}
	}
}

// OpenLocal opens (or creates) the store in dir and re-arms pending
// notifications left by a previous process.
func OpenLocal(dir string, deliver Deliverer, opts ...LocalOption) (*Local, error) {
	return open(badger.DefaultOptions(dir).WithLogger(nil), deliver, opts...)
}

// NewInMemory returns a scheduler whose store lives only in memory.
func NewInMemory(deliver Deliverer, opts ...LocalOption) (*Local, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil), deliver, opts...)
}

func open(bopts badger.Options, deliver Deliverer, opts ...LocalOption) (*Local, error) {
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open notification store: %w", err)
	}

	s := &Local{
		db:      db,
		deliver: deliver,
		logger:  log.New(io.Discard),
		timers:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}

	pending, err := s.Pending(context.Background())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	now := time.Now()
	s.mu.Lock()
	for _, n := range pending {
		s.arm(n, n.DueAt.Sub(now))
	}
	s.mu.Unlock()
	if len(pending) > 0 {
		s.logger.Debug("restored pending notifications", "count", len(pending))
	}

	return s, nil
}

// Schedule persists n and arms a timer for it.
func (s *Local) Schedule(ctx context.Context, after time.Duration, n Notification) (string, error) {
	if after < 0 {
		after = 0
	}
	n.ID = uuid.NewString()
	n.DueAt = time.Now().Add(after)

	raw, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("encode notification: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", fmt.Errorf("schedule notification: scheduler closed")
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		// Round the TTL up so the entry outlives the timer.
		ttl := after.Truncate(time.Second) + time.Second
		return txn.SetEntry(badger.NewEntry(key(n.ID), raw).WithTTL(ttl))
	})
	if err != nil {
		return "", fmt.Errorf("store notification: %w", err)
	}

	s.arm(n, after)
	s.logger.Debug("scheduled notification", "id", n.ID, "after", after)
	return n.ID, nil
}

// Cancel stops the timer and removes the stored entry.
func (s *Local) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	if s.closed {
		return nil
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	}); err != nil {
		return fmt.Errorf("cancel notification: %w", err)
	}
	s.logger.Debug("cancelled notification", "id", id)
	return nil
}

// Pending lists stored notifications that are not yet due, soonest first.
func (s *Local) Pending(ctx context.Context) ([]Notification, error) {
	now := time.Now()
	var pending []Notification

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var n Notification
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &n)
			})
			if err != nil {
				return err
			}
			if n.DueAt.After(now) {
				pending = append(pending, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list pending notifications: %w", err)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].DueAt.Before(pending[j].DueAt)
	})
	return pending, nil
}

// Close stops every timer and closes the store. Pending entries stay on
// disk for the next OpenLocal.
func (s *Local) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	return s.db.Close()
}

// arm must be called with s.mu held.
func (s *Local) arm(n Notification, after time.Duration) {
	if after < 0 {
		after = 0
	}
	s.timers[n.ID] = time.AfterFunc(after, func() { s.fire(n) })
}

func (s *Local) fire(n Notification) {
	s.mu.Lock()
	if _, ok := s.timers[n.ID]; !ok || s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.timers, n.ID)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(n.ID))
	})
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to clear delivered notification", "id", n.ID, "err", err)
	}
	if s.deliver != nil {
		s.deliver(n)
	}
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}
