// Package asynchook decorates a keyonce.Hooks so events are delivered from
// worker goroutines instead of the caller's path. Events are dropped, not
// queued unboundedly, when the queue is full; the cache's hot path must
// never block on observability.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{HitEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cc, _ := keyonce.New(keyonce.Options[string, *Conn, keyonce.NoArg]{
//	    Producer: producer,
//	    Hooks:    hooks, // or `raw` if async delivery is not wanted
//	})
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/keyonce"
)

type Hooks struct {
	inner keyonce.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ keyonce.Hooks = (*Hooks)(nil)

func New(inner keyonce.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and stops the workers. Idempotent.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit()          { h.try(func() { h.inner.Hit() }) }
func (h *Hooks) Removed(k any) { h.try(func() { h.inner.Removed(k) }) }
func (h *Hooks) Cleared(n int) { h.try(func() { h.inner.Cleared(n) }) }
func (h *Hooks) TornDown(n int) {
	h.try(func() { h.inner.TornDown(n) })
}
func (h *Hooks) Created(k any, elapsed time.Duration) {
	h.try(func() { h.inner.Created(k, elapsed) })
}
func (h *Hooks) ProducerError(k any, err error) {
	h.try(func() { h.inner.ProducerError(k, err) })
}
func (h *Hooks) DisposalError(k any, err error) {
	h.try(func() { h.inner.DisposalError(k, err) })
}
