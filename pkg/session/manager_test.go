package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaehq/converse/pkg/adapters/memory"
	"github.com/vitaehq/converse/pkg/domain"
	"github.com/vitaehq/converse/pkg/ports"
)

func newState(node string) *domain.FlowState {
	s := domain.NewState(&domain.FlowDefinition{ID: "test-flow"})
	s.CurrentNodeID = node
	return s
}

func TestManagerSaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memory.NewStore())

	require.NoError(t, mgr.Save(ctx, "s1", newState("q1")))

	loaded, err := mgr.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "q1", loaded.CurrentNodeID)

	require.NoError(t, mgr.Delete(ctx, "s1"))
	_, err = mgr.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestWithLockSerializesAccess(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memory.NewStore())

	const workers = 16
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.WithLock(ctx, "same-session", func(context.Context) error {
				// Unsynchronized on purpose; WithLock must serialize us.
				v := counter
				time.Sleep(time.Millisecond)
				counter = v + 1
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestWithLockReleasesEntries(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memory.NewStore())

	require.NoError(t, mgr.WithLock(ctx, "s1", func(context.Context) error { return nil }))

	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	assert.Empty(t, mgr.locks, "lock entries must be garbage collected at refcount zero")
}

// recordingLocker counts distributed lock round-trips.
type recordingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
	lastKey string
	lastTTL time.Duration
	lockErr error
}

func (l *recordingLocker) Lock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lockErr != nil {
		return nil, l.lockErr
	}
	l.locks++
	l.lastKey = key
	l.lastTTL = ttl
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocks++
		return nil
	}, nil
}

func TestWithLockUsesDistributedLocker(t *testing.T) {
	ctx := context.Background()
	locker := &recordingLocker{}
	mgr := NewManager(memory.NewStore(), WithLocker(locker), WithLockTTL(5*time.Second))

	require.NoError(t, mgr.WithLock(ctx, "s1", func(context.Context) error { return nil }))

	assert.Equal(t, 1, locker.locks)
	assert.Equal(t, 1, locker.unlocks)
	assert.Equal(t, "s1", locker.lastKey)
	assert.Equal(t, 5*time.Second, locker.lastTTL)
}

func TestWithLockPropagatesLockerFailure(t *testing.T) {
	locker := &recordingLocker{lockErr: assert.AnError}
	mgr := NewManager(memory.NewStore(), WithLocker(locker))

	err := mgr.WithLock(context.Background(), "s1", func(context.Context) error {
		t.Fatal("callback must not run when the distributed lock fails")
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
