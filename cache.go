package keyonce

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"
)

type cache[K comparable, V, A any] struct {
	// slow serializes the miss path for the whole cache, not per key:
	// misses for different keys contend here, trading some parallelism for
	// a simple drain story in Clear and Dispose. The hit path never
	// touches it. Acquire honors context cancellation, which is the only
	// point where any operation may block.
	slow *semaphore.Weighted

	st       atomic.Pointer[Store[K, V]] // swapped to nil by Dispose
	producer atomic.Pointer[Producer[K, V, A]]
	disposed atomic.Bool

	log   Logger
	hooks Hooks
}

func newCache[K comparable, V, A any](opts Options[K, V, A]) (*cache[K, V, A], error) {
	if opts.Producer != nil && opts.Producer.kind == producerNone {
		return nil, fmt.Errorf("keyonce: options producer has no shape; use one of the Producer constructors")
	}

	c := &cache[K, V, A]{slow: semaphore.NewWeighted(1)}

	st := opts.Store
	if st == nil {
		st = NewStore[K, V]()
	}
	c.st.Store(&st)

	if opts.Producer != nil {
		c.producer.Store(opts.Producer)
	}

	c.log = NopLogger{}
	if opts.Logger != nil {
		c.log = opts.Logger
	}
	c.hooks = NopHooks{}
	if opts.Hooks != nil {
		c.hooks = opts.Hooks
	}
	return c, nil
}

// loadStore returns the live store, or ErrDisposed after teardown. Callers
// on the slow path must re-check after acquiring the lock since disposal can
// race the wait.
func (c *cache[K, V, A]) loadStore() (Store[K, V], error) {
	p := c.st.Load()
	if p == nil || c.disposed.Load() {
		return nil, ErrDisposed
	}
	return *p, nil
}

// argSource carries the extra argument in whichever form the caller chose:
// a literal, a lazy factory, or a state+factory pair. Passed by value so the
// hit path allocates nothing for it.
type argSource[K comparable, A any] struct {
	arg   A
	fn    func(context.Context) (A, error)
	state any
	sfn   func(context.Context, any, K) (A, error)
}

func (s argSource[K, A]) resolve(ctx context.Context, key K) (A, error) {
	// state form first, matching the registry's priority order
	if s.sfn != nil {
		return s.sfn(ctx, s.state, key)
	}
	if s.fn != nil {
		return s.fn(ctx)
	}
	return s.arg, nil
}

func (c *cache[K, V, A]) Get(ctx context.Context, key K, arg A) (V, error) {
	return c.getOrCreate(ctx, key, argSource[K, A]{arg: arg})
}

func (c *cache[K, V, A]) GetFunc(ctx context.Context, key K, argFn func(ctx context.Context) (A, error)) (V, error) {
	return c.getOrCreate(ctx, key, argSource[K, A]{fn: argFn})
}

func (c *cache[K, V, A]) GetState(ctx context.Context, key K, state any, argFn func(ctx context.Context, state any, key K) (A, error)) (V, error) {
	return c.getOrCreate(ctx, key, argSource[K, A]{state: state, sfn: argFn})
}

func (c *cache[K, V, A]) getOrCreate(ctx context.Context, key K, src argSource[K, A]) (V, error) {
	var zero V

	st, err := c.loadStore()
	if err != nil {
		return zero, err
	}
	if v, ok := st.Load(key); ok {
		c.hooks.Hit()
		return v, nil
	}

	if err := c.slow.Acquire(ctx, 1); err != nil {
		return zero, err
	}
	defer c.slow.Release(1)

	// disposal can race the lock wait
	st, err = c.loadStore()
	if err != nil {
		return zero, err
	}
	// another caller may have committed while we waited
	if v, ok := st.Load(key); ok {
		c.hooks.Hit()
		return v, nil
	}

	p := c.producer.Load()
	if p == nil {
		return zero, ErrNotConfigured
	}

	// confirmed miss: only now is the extra argument materialized
	arg, err := src.resolve(ctx, key)
	if err != nil {
		return zero, err
	}

	start := time.Now()
	v, err := p.invoke(ctx, key, arg)
	if err != nil {
		// not cached; the next caller retries creation from scratch
		c.hooks.ProducerError(key, err)
		c.log.Warn("producer failed", Fields{"key": key, "err": err})
		return zero, err
	}
	st.Store(key, v)

	elapsed := time.Since(start)
	c.hooks.Created(key, elapsed)
	c.log.Debug("entry created", Fields{"key": key, "elapsed": elapsed})
	return v, nil
}

func (c *cache[K, V, A]) TryGet(key K) (V, bool, error) {
	var zero V
	st, err := c.loadStore()
	if err != nil {
		return zero, false, err
	}
	v, ok := st.Load(key)
	if ok {
		c.hooks.Hit()
	}
	return v, ok, nil
}

func (c *cache[K, V, A]) Configure(p *Producer[K, V, A]) error {
	if c.disposed.Load() {
		return ErrDisposed
	}
	if p == nil || p.kind == producerNone {
		return fmt.Errorf("keyonce: producer has no shape; use one of the Producer constructors")
	}
	if !c.producer.CompareAndSwap(nil, p) {
		return ErrAlreadyConfigured
	}
	return nil
}

func (c *cache[K, V, A]) Remove(ctx context.Context, key K) error {
	st, err := c.loadStore()
	if err != nil {
		return err
	}

	// lock-free first: the store's atomic remove already resolves a race
	// with another removal of the same key
	if v, ok := st.LoadAndDelete(key); ok {
		return c.finishRemove(ctx, key, v)
	}

	// a creation may be in flight; retry under the lock
	if err := c.slow.Acquire(ctx, 1); err != nil {
		return err
	}
	st, err = c.loadStore()
	if err != nil {
		c.slow.Release(1)
		return err
	}
	v, ok := st.LoadAndDelete(key)
	c.slow.Release(1)
	if !ok {
		return nil
	}
	return c.finishRemove(ctx, key, v)
}

// finishRemove releases an entry Remove won from the store. Winning the
// atomic remove makes this caller the value's sole owner, even when teardown
// flipped the disposed flag in between: Dispose's drain re-fetches each entry
// and skips the ones it lost. A removal that raced teardown still releases
// its value but reports ErrDisposed instead of a normal removal.
func (c *cache[K, V, A]) finishRemove(ctx context.Context, key K, v V) error {
	if c.disposed.Load() {
		return multierr.Append(ErrDisposed, c.disposeOne(ctx, key, v))
	}
	c.hooks.Removed(key)
	c.log.Debug("entry removed", Fields{"key": key})
	return c.disposeOne(ctx, key, v)
}

func (c *cache[K, V, A]) Clear(ctx context.Context) error {
	if err := c.slow.Acquire(ctx, 1); err != nil {
		return err
	}

	st, err := c.loadStore()
	if err != nil {
		c.slow.Release(1)
		return err
	}

	// drain under the lock; bulk structural change must be fully
	// serialized against creations
	type drained struct {
		key K
		val V
	}
	var entries []drained
	st.Range(func(k K, _ V) bool {
		if v, ok := st.LoadAndDelete(k); ok {
			entries = append(entries, drained{key: k, val: v})
		}
		return true
	})
	c.slow.Release(1)

	// best-effort release outside the lock; one failure must not stop the
	// rest, and none may be swallowed
	var errs error
	for _, e := range entries {
		if err := disposeValue(ctx, e.val); err != nil {
			c.hooks.DisposalError(e.key, err)
			errs = multierr.Append(errs, &DisposalError{Key: e.key, Err: err})
		}
	}
	c.hooks.Cleared(len(entries))
	c.log.Debug("cache cleared", Fields{"drained": len(entries)})
	return errs
}

func (c *cache[K, V, A]) Entries(ctx context.Context) (map[K]V, error) {
	st, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer c.slow.Release(1)

	out := make(map[K]V, st.Len())
	st.Range(func(k K, v V) bool {
		out[k] = v
		return true
	})
	return out, nil
}

func (c *cache[K, V, A]) Keys(ctx context.Context) ([]K, error) {
	st, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer c.slow.Release(1)

	out := make([]K, 0, st.Len())
	st.Range(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out, nil
}

func (c *cache[K, V, A]) Values(ctx context.Context) ([]V, error) {
	st, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer c.slow.Release(1)

	out := make([]V, 0, st.Len())
	st.Range(func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	return out, nil
}

// snapshot acquires the lock for a consistent point-in-time view. The caller
// must release it; on error the lock is already released.
func (c *cache[K, V, A]) snapshot(ctx context.Context) (Store[K, V], error) {
	if err := c.slow.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	st, err := c.loadStore()
	if err != nil {
		c.slow.Release(1)
		return nil, err
	}
	return st, nil
}

func (c *cache[K, V, A]) Dispose(ctx context.Context) error {
	// only the first caller performs teardown
	if !c.disposed.CompareAndSwap(false, true) {
		return nil
	}

	// swap the store out so no later operation can observe it; entries
	// racing with the swap abort on their post-lock disposed re-check
	// instead of inserting into a torn-down store
	stp := c.st.Swap(nil)
	if stp == nil {
		return nil
	}
	st := *stp

	var errs error
	drained := 0
	st.Range(func(k K, _ V) bool {
		// re-fetch atomically: a lock-free Remove that passed its disposed
		// check before the flag flipped may still win this entry, and
		// exactly one of the racers may release it
		v, ok := st.LoadAndDelete(k)
		if !ok {
			return true
		}
		drained++
		if err := disposeValue(ctx, v); err != nil {
			c.hooks.DisposalError(k, err)
			errs = multierr.Append(errs, &DisposalError{Key: k, Err: err})
		}
		return true
	})

	c.hooks.TornDown(drained)
	c.log.Info("cache disposed", Fields{"drained": drained})
	return errs
}

func (c *cache[K, V, A]) disposeOne(ctx context.Context, key K, v V) error {
	if err := disposeValue(ctx, v); err != nil {
		c.hooks.DisposalError(key, err)
		return &DisposalError{Key: key, Err: err}
	}
	return nil
}
