package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
)

// Default tuning values for the registry
const (
	// DefaultAcquireTimeout bounds a pessimistic acquisition
	DefaultAcquireTimeout = 5 * time.Second
	// DefaultCommitTimeout bounds the exclusive window of an optimistic commit
	DefaultCommitTimeout = 2 * time.Second
	// DefaultMaxOptimisticRetries bounds the read-compute-commit loop
	DefaultMaxOptimisticRetries = 3
)

// Ticket is the opaque handle returned by Acquire. It is only meaningful
// when passed back into Release on the registry that issued it.
type Ticket struct {
	Key         string
	HolderToken string
	AcquiredAt  time.Time
	Version     uint64
}

// waiter is one parked Acquire call. The grant arrives on ready, which is
// buffered so the releaser never blocks.
type waiter struct {
	holderToken string
	ready       chan Ticket
}

// entry is the per-key lock state. All fields are guarded by Registry.mu.
type entry struct {
	held       bool
	holder     string
	leaseUntil time.Time
	version    uint64
	waiters    []*waiter
}

// Registry is a keyed mutual-exclusion primitive scoped to one process.
// Pessimistic acquisition parks callers in arrival order per key; the
// optimistic path shares the same per-key state, so the two modes never
// interleave unsafely on one key. Locks carry a lease: a holder that
// never releases (crashed goroutine) stops blocking new acquirers once
// the lease elapses.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	lease         time.Duration
	commitTimeout time.Duration
	maxRetries    int
}

// NewRegistry creates a lock registry with default tuning
func NewRegistry(timeProvider coreport.TimeProvider, logger coreport.Logger) *Registry {
	return &Registry{
		entries:       make(map[string]*entry),
		timeProvider:  timeProvider,
		logger:        logger,
		lease:         DefaultAcquireTimeout,
		commitTimeout: DefaultCommitTimeout,
		maxRetries:    DefaultMaxOptimisticRetries,
	}
}

// WithLease overrides the holder lease duration
func (r *Registry) WithLease(lease time.Duration) *Registry {
	if lease > 0 {
		r.lease = lease
	}
	return r
}

// WithCommitTimeout overrides the optimistic commit window
func (r *Registry) WithCommitTimeout(timeout time.Duration) *Registry {
	if timeout > 0 {
		r.commitTimeout = timeout
	}
	return r
}

// WithMaxOptimisticRetries overrides the optimistic retry ceiling
func (r *Registry) WithMaxOptimisticRetries(n int) *Registry {
	if n > 0 {
		r.maxRetries = n
	}
	return r
}

// Acquire blocks until the key is free or the timeout elapses. Waiters are
// served strictly in arrival order. A timeout or context cancellation
// leaves no trace in shared state.
func (r *Registry) Acquire(ctx context.Context, key string, timeout time.Duration) (*Ticket, error) {
	if timeout <= 0 {
		timeout = DefaultAcquireTimeout
	}

	holderToken := uuid.NewString()
	now := r.timeProvider.Now()

	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &entry{}
		r.entries[key] = e
	}

	// Reclaim a lease that a crashed holder never released. The version
	// bump invalidates the stale holder's ticket, so a late Release from
	// it becomes a no-op instead of freeing somebody else's hold.
	if e.held && now.After(e.leaseUntil) {
		r.logger.Warn("Reclaiming expired lock lease", map[string]any{
			"key":         key,
			"stale_owner": e.holder,
			"lease_until": e.leaseUntil,
		})
		e.held = false
		e.version++
		r.grantNextLocked(e, key, now)
	}

	if !e.held && len(e.waiters) == 0 {
		e.held = true
		e.holder = holderToken
		e.leaseUntil = now.Add(r.lease)
		ticket := &Ticket{Key: key, HolderToken: holderToken, AcquiredAt: now, Version: e.version}
		r.mu.Unlock()
		return ticket, nil
	}

	// Key is busy: park behind everyone who arrived earlier.
	w := &waiter{holderToken: holderToken, ready: make(chan Ticket, 1)}
	e.waiters = append(e.waiters, w)
	r.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ticket := <-w.ready:
		return &ticket, nil
	case <-timer.C:
		r.abandonWaiter(key, w)
		return nil, &errs.LockTimeoutError{Key: key, Timeout: timeout.String()}
	case <-ctx.Done():
		r.abandonWaiter(key, w)
		return nil, ctx.Err()
	}
}

// grantNextLocked hands a free key to the head waiter, if any.
// Caller must hold r.mu and have e not held.
func (r *Registry) grantNextLocked(e *entry, key string, now time.Time) {
	if e.held || len(e.waiters) == 0 {
		return
	}

	next := e.waiters[0]
	e.waiters = e.waiters[1:]
	e.held = true
	e.holder = next.holderToken
	e.leaseUntil = now.Add(r.lease)
	next.ready <- Ticket{
		Key:         key,
		HolderToken: next.holderToken,
		AcquiredAt:  now,
		Version:     e.version,
	}
}

// abandonWaiter removes a timed-out waiter from the queue. If the grant
// raced with the timeout, the already-issued ticket is released so the
// next waiter is not starved.
func (r *Registry) abandonWaiter(key string, w *waiter) {
	r.mu.Lock()
	if e, ok := r.entries[key]; ok {
		for i, parked := range e.waiters {
			if parked == w {
				e.waiters = append(e.waiters[:i], e.waiters[i+1:]...)
				r.mu.Unlock()
				return
			}
		}
	}
	r.mu.Unlock()

	// Not in the queue anymore: the releaser granted us the key while we
	// were timing out. Hand it straight back.
	select {
	case ticket := <-w.ready:
		if err := r.Release(&ticket); err != nil && !errors.Is(err, errs.ErrLockNotHeld) {
			r.logger.Error("Failed to release abandoned grant", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
		}
	default:
	}
}

// Release frees the key held by the ticket, bumps the version and hands
// the key to the next waiter in arrival order. Releasing a stale ticket
// (expired lease reclaimed by someone else, or double release) returns
// ErrLockNotHeld and changes nothing.
func (r *Registry) Release(ticket *Ticket) error {
	if ticket == nil {
		return errs.ErrLockNotHeld
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[ticket.Key]
	if !ok || !e.held || e.holder != ticket.HolderToken {
		return errs.ErrLockNotHeld
	}

	e.held = false
	e.version++

	// The entry survives even with no waiters: dropping it would reset the
	// version stamp and let a stale optimistic commit pass. One record per
	// slot+date is a bounded cost.
	r.grantNextLocked(e, ticket.Key, r.timeProvider.Now())
	return nil
}

// ReadVersion returns the current version of the key. Keys that were never
// locked report version zero.
func (r *Registry) ReadVersion(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		return e.version
	}
	return 0
}

// CommitIfUnchanged takes a short exclusive hold on the key and runs fn,
// but only if the key's version still equals expectedVersion; otherwise it
// returns ErrLockConflict without running fn. The hold is bounded by the
// registry's commit timeout. A successful commit bumps the version via the
// release, invalidating every other outstanding read.
func (r *Registry) CommitIfUnchanged(ctx context.Context, key string, expectedVersion uint64, fn func(ctx context.Context) error) error {
	ticket, err := r.Acquire(ctx, key, r.commitTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := r.Release(ticket); relErr != nil && !errors.Is(relErr, errs.ErrLockNotHeld) {
			r.logger.Error("Failed to release commit hold", map[string]any{
				"key":   key,
				"error": relErr.Error(),
			})
		}
	}()

	if ticket.Version != expectedVersion {
		return errs.ErrLockConflict
	}

	return fn(ctx)
}

// RunOptimistic drives the read-compute-commit loop. attempt reads current
// state outside any lock and returns the commit closure; the closure runs
// under CommitIfUnchanged. On version conflicts the whole attempt is
// repeated from the read step, up to the retry ceiling, after which
// ErrLockConflict surfaces to the caller. Unbounded retry under sustained
// contention is deliberately not offered.
func (r *Registry) RunOptimistic(ctx context.Context, key string, attempt func(ctx context.Context, version uint64) (func(ctx context.Context) error, error)) error {
	var lastErr error

	for i := 0; i < r.maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		version := r.ReadVersion(key)
		commit, err := attempt(ctx, version)
		if err != nil {
			return err
		}

		err = r.CommitIfUnchanged(ctx, key, version, commit)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrLockConflict) {
			return err
		}

		lastErr = err
		r.logger.Debug("Optimistic commit conflicted, retrying from read", map[string]any{
			"key":     key,
			"attempt": i + 1,
			"of":      r.maxRetries,
		})
	}

	if lastErr == nil {
		lastErr = errs.ErrLockConflict
	}
	return lastErr
}

// Held reports whether the key is currently held. Intended for tests and
// monitoring, not for lock decisions.
func (r *Registry) Held(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	return ok && e.held
}
