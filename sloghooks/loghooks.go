// Package sloghooks implements keyonce.Hooks on top of log/slog, with
// sampling for the high-frequency events so a hot cache cannot flood the log.
package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/keyonce"
)

type Options struct {
	// Sampling for high-frequency events; 0/1 = log all.
	HitEvery     uint64
	CreatedEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr     atomic.Uint64
	createdCtr atomic.Uint64
}

var _ keyonce.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit() {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("keyonce.hit")
}

func (h *Hooks) Created(key any, elapsed time.Duration) {
	if h.l == nil || !sample(h.opts.CreatedEvery, &h.createdCtr) {
		return
	}
	h.l.Debug("keyonce.created",
		"key", key,
		"elapsed", elapsed)
}

func (h *Hooks) ProducerError(key any, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("keyonce.producer_error",
		"key", key,
		"err", err)
}

func (h *Hooks) Removed(key any) {
	if h.l == nil {
		return
	}
	h.l.Debug("keyonce.removed", "key", key)
}

func (h *Hooks) DisposalError(key any, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("keyonce.disposal_error",
		"key", key,
		"err", err)
}

func (h *Hooks) Cleared(drained int) {
	if h.l == nil {
		return
	}
	h.l.Info("keyonce.cleared", "drained", drained)
}

func (h *Hooks) TornDown(drained int) {
	if h.l == nil {
		return
	}
	h.l.Info("keyonce.torn_down", "drained", drained)
}
