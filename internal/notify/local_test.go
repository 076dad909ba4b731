// ABOUTME: Tests for the badger-backed scheduler and the no-op scheduler.
// ABOUTME: Uses short real delays; goleak checks timers and badger shut down.
package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// badger's dependencies start these at package init.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/golang/glog.(*fileSink).flushDaemon"),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type inbox struct {
	mu  sync.Mutex
	got []Notification
}

func (i *inbox) deliver(n Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.got = append(i.got, n)
}

func (i *inbox) count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.got)
}

func newTestScheduler(t *testing.T, box *inbox) *Local {
	t.Helper()
	s, err := NewInMemory(box.deliver)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestScheduleDelivers(t *testing.T) {
	box := &inbox{}
	s := newTestScheduler(t, box)
	ctx := context.Background()

	id, err := s.Schedule(ctx, 20*time.Millisecond, Notification{Title: "Rest complete", Body: "Time for your next set"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Eventually(t, func() bool { return box.count() == 1 }, 2*time.Second, 5*time.Millisecond)

	box.mu.Lock()
	got := box.got[0]
	box.mu.Unlock()
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Rest complete", got.Title)

	pending, err := s.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCancelPreventsDelivery(t *testing.T) {
	box := &inbox{}
	s := newTestScheduler(t, box)
	ctx := context.Background()

	id, err := s.Schedule(ctx, 50*time.Millisecond, Notification{Title: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Cancel(ctx, id))

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, box.count())

	pending, err := s.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCancelUnknownIsNoop(t *testing.T) {
	s := newTestScheduler(t, &inbox{})

	assert.NoError(t, s.Cancel(context.Background(), "unknown"))
	assert.NoError(t, s.Cancel(context.Background(), ""))
}

func TestPendingSortedByDueTime(t *testing.T) {
	s := newTestScheduler(t, &inbox{})
	ctx := context.Background()

	late, err := s.Schedule(ctx, time.Hour, Notification{Title: "late"})
	require.NoError(t, err)
	soon, err := s.Schedule(ctx, time.Minute, Notification{Title: "soon"})
	require.NoError(t, err)

	pending, err := s.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, soon, pending[0].ID)
	assert.Equal(t, late, pending[1].ID)
}

func TestPendingSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenLocal(dir, nil)
	require.NoError(t, err)
	id, err := s.Schedule(ctx, time.Hour, Notification{Title: "later"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenLocal(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	pending, err := s.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)

	require.NoError(t, s.Cancel(ctx, id))
	pending, err = s.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestScheduleAfterClose(t *testing.T) {
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Schedule(context.Background(), time.Second, Notification{})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var s Scheduler = Nop{}
	ctx := context.Background()

	id, err := s.Schedule(ctx, time.Second, Notification{Title: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, s.Cancel(ctx, id))
}
