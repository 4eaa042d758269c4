package keyonce

import "time"

// Hooks are lightweight callbacks for cache lifecycle events.
// Implementations MUST be cheap and non-blocking; Hit fires on the lock-free
// fast path. Wrap with hooks/async to move heavy sinks off the caller.
type Hooks interface {
	// A Get-family call returned an already-committed value.
	Hit()

	// The producer ran and its value was committed for key.
	Created(key any, elapsed time.Duration)

	// The producer failed; nothing was committed and the error went to
	// the caller unchanged.
	ProducerError(key any, err error)

	// An entry was removed via Remove.
	Removed(key any)

	// Releasing a removed value failed (Remove, Clear or Dispose).
	DisposalError(key any, err error)

	// Clear drained this many entries.
	Cleared(drained int)

	// Dispose tore the cache down; drained entries were released.
	TornDown(drained int)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) Hit()                        {}
func (NopHooks) Created(any, time.Duration)  {}
func (NopHooks) ProducerError(any, error)    {}
func (NopHooks) Removed(any)                 {}
func (NopHooks) DisposalError(any, error)    {}
func (NopHooks) Cleared(int)                 {}
func (NopHooks) TornDown(int)                {}
