package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/pool-access-controller/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock driving the registry's lease logic
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(t *testing.T) (*Registry, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)}

	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().RunAndReturn(clock.Now).Maybe()

	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	return NewRegistry(mockTime, mockLogger), clock
}

func TestAcquireRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("Free key is granted immediately", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		ticket, err := registry.Acquire(ctx, "slot/a/2024-06-10", time.Second)

		require.NoError(t, err)
		assert.True(t, registry.Held("slot/a/2024-06-10"))

		require.NoError(t, registry.Release(ticket))
		assert.False(t, registry.Held("slot/a/2024-06-10"))
	})

	t.Run("Different keys do not conflict", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		t1, err := registry.Acquire(ctx, "slot/a/2024-06-10", time.Second)
		require.NoError(t, err)
		t2, err := registry.Acquire(ctx, "slot/b/2024-06-10", time.Second)
		require.NoError(t, err)

		require.NoError(t, registry.Release(t1))
		require.NoError(t, registry.Release(t2))
	})

	t.Run("Double release returns ErrLockNotHeld", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		ticket, err := registry.Acquire(ctx, "k", time.Second)
		require.NoError(t, err)

		require.NoError(t, registry.Release(ticket))
		assert.ErrorIs(t, registry.Release(ticket), errs.ErrLockNotHeld)
	})

	t.Run("Nil ticket returns ErrLockNotHeld", func(t *testing.T) {
		registry, _ := newTestRegistry(t)
		assert.ErrorIs(t, registry.Release(nil), errs.ErrLockNotHeld)
	})
}

func TestMutualExclusion(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()
	const key = "slot/a/2024-06-10"
	const goroutines = 20

	var holders int
	var maxHolders int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ticket, err := registry.Acquire(ctx, key, 5*time.Second)
			require.NoError(t, err)

			mu.Lock()
			holders++
			if holders > maxHolders {
				maxHolders = holders
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()

			require.NoError(t, registry.Release(ticket))
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxHolders, "at most one goroutine may hold the key at a time")
	assert.False(t, registry.Held(key))
}

func TestWaitersServedInArrivalOrder(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()
	const key = "slot/a/2024-06-10"

	first, err := registry.Acquire(ctx, key, time.Second)
	require.NoError(t, err)

	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Park waiters one at a time so their arrival order is deterministic.
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		ready := make(chan struct{})
		go func(n int) {
			defer wg.Done()
			close(ready)

			ticket, err := registry.Acquire(ctx, key, 5*time.Second)
			require.NoError(t, err)

			mu.Lock()
			order = append(order, n)
			mu.Unlock()

			require.NoError(t, registry.Release(ticket))
		}(i)
		<-ready
		// Give the goroutine time to park before the next one arrives.
		time.Sleep(10 * time.Millisecond)
	}

	require.NoError(t, registry.Release(first))
	wg.Wait()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestAcquireTimeout(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()
	const key = "slot/a/2024-06-10"

	holder, err := registry.Acquire(ctx, key, time.Second)
	require.NoError(t, err)

	start := time.Now()
	_, err = registry.Acquire(ctx, key, 50*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrLockTimeout)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)

	// The timed-out waiter must leave no trace: releasing the holder and
	// re-acquiring must succeed without anyone else in line.
	require.NoError(t, registry.Release(holder))

	again, err := registry.Acquire(ctx, key, 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, registry.Release(again))
}

func TestAcquireContextCancellation(t *testing.T) {
	registry, _ := newTestRegistry(t)
	const key = "slot/a/2024-06-10"

	holder, err := registry.Acquire(context.Background(), key, time.Second)
	require.NoError(t, err)
	defer func() { _ = registry.Release(holder) }()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = registry.Acquire(ctx, key, 5*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLeaseReclaim(t *testing.T) {
	registry, clock := newTestRegistry(t)
	registry.WithLease(100 * time.Millisecond)
	ctx := context.Background()
	const key = "slot/a/2024-06-10"

	// Simulate a crashed holder: acquire and never release.
	stale, err := registry.Acquire(ctx, key, time.Second)
	require.NoError(t, err)

	clock.Advance(200 * time.Millisecond)

	// A new acquirer reclaims the expired lease instead of waiting forever.
	fresh, err := registry.Acquire(ctx, key, 50*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, registry.Held(key))

	// The stale ticket was invalidated by the reclaim.
	assert.ErrorIs(t, registry.Release(stale), errs.ErrLockNotHeld)

	require.NoError(t, registry.Release(fresh))
	assert.False(t, registry.Held(key))
}

func TestVersionStamps(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()
	const key = "slot/a/2024-06-10"

	assert.Equal(t, uint64(0), registry.ReadVersion(key))

	ticket, err := registry.Acquire(ctx, key, time.Second)
	require.NoError(t, err)
	require.NoError(t, registry.Release(ticket))

	// Every release bumps the version, so a reader holding the old stamp
	// knows the resource may have changed.
	assert.Equal(t, uint64(1), registry.ReadVersion(key))

	ticket, err = registry.Acquire(ctx, key, time.Second)
	require.NoError(t, err)
	require.NoError(t, registry.Release(ticket))
	assert.Equal(t, uint64(2), registry.ReadVersion(key))
}

func TestCommitIfUnchanged(t *testing.T) {
	ctx := context.Background()
	const key = "slot/a/2024-06-10"

	t.Run("Commit runs when version matches", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		version := registry.ReadVersion(key)
		ran := false
		err := registry.CommitIfUnchanged(ctx, key, version, func(context.Context) error {
			ran = true
			return nil
		})

		require.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("Stale version is rejected without running fn", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		version := registry.ReadVersion(key)

		// An interleaved writer bumps the version.
		ticket, err := registry.Acquire(ctx, key, time.Second)
		require.NoError(t, err)
		require.NoError(t, registry.Release(ticket))

		ran := false
		err = registry.CommitIfUnchanged(ctx, key, version, func(context.Context) error {
			ran = true
			return nil
		})

		assert.ErrorIs(t, err, errs.ErrLockConflict)
		assert.False(t, ran)
	})

	t.Run("fn errors surface and the hold is released", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		sentinel := errs.ErrDatabaseConnection
		err := registry.CommitIfUnchanged(ctx, key, registry.ReadVersion(key), func(context.Context) error {
			return sentinel
		})

		assert.ErrorIs(t, err, sentinel)
		assert.False(t, registry.Held(key))
	})
}

func TestRunOptimistic(t *testing.T) {
	ctx := context.Background()
	const key = "slot/a/2024-06-10"

	t.Run("Succeeds first try without contention", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		attempts := 0
		err := registry.RunOptimistic(ctx, key, func(ctx context.Context, version uint64) (func(context.Context) error, error) {
			attempts++
			return func(context.Context) error { return nil }, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("Retries from the read step on conflict", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		attempts := 0
		err := registry.RunOptimistic(ctx, key, func(ctx context.Context, version uint64) (func(context.Context) error, error) {
			attempts++
			if attempts == 1 {
				// An interleaved writer invalidates the first read.
				ticket, err := registry.Acquire(ctx, key, time.Second)
				require.NoError(t, err)
				require.NoError(t, registry.Release(ticket))
			}
			return func(context.Context) error { return nil }, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("Gives up after the retry ceiling", func(t *testing.T) {
		registry, _ := newTestRegistry(t)
		registry.WithMaxOptimisticRetries(3)

		attempts := 0
		err := registry.RunOptimistic(ctx, key, func(ctx context.Context, version uint64) (func(context.Context) error, error) {
			attempts++
			// Sustained contention: every read is invalidated before commit.
			ticket, err := registry.Acquire(ctx, key, time.Second)
			require.NoError(t, err)
			require.NoError(t, registry.Release(ticket))
			return func(context.Context) error { return nil }, nil
		})

		assert.ErrorIs(t, err, errs.ErrLockConflict)
		assert.Equal(t, 3, attempts)
	})

	t.Run("Attempt errors stop the loop", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		sentinel := errs.ErrDatabaseConnection
		attempts := 0
		err := registry.RunOptimistic(ctx, key, func(context.Context, uint64) (func(context.Context) error, error) {
			attempts++
			return nil, sentinel
		})

		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, attempts)
	})
}

func TestPessimisticAndOptimisticShareState(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()
	const key = "slot/a/2024-06-10"

	// While a pessimistic holder is in its critical section, an optimistic
	// commit on the same key cannot slip in.
	holder, err := registry.Acquire(ctx, key, time.Second)
	require.NoError(t, err)

	registry.WithCommitTimeout(50 * time.Millisecond)
	err = registry.CommitIfUnchanged(ctx, key, registry.ReadVersion(key), func(context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, errs.ErrLockTimeout)

	require.NoError(t, registry.Release(holder))
}
