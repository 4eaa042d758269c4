package keyonce

import (
	"errors"
	"fmt"
)

var (
	// ErrDisposed is returned by every operation invoked after Dispose
	// completed. Permanent for the instance.
	ErrDisposed = errors.New("keyonce: cache disposed")

	// ErrNotConfigured is returned by the Get family when no producer has
	// been registered yet.
	ErrNotConfigured = errors.New("keyonce: no producer configured")

	// ErrAlreadyConfigured is returned by Configure when a producer is
	// already registered. Silent replacement would retroactively break the
	// at-most-once creation guarantee, so the first registration wins.
	ErrAlreadyConfigured = errors.New("keyonce: producer already configured")
)

// should be unreachable: the registry only stores tagged producers.
var errUnknownProducer = errors.New("keyonce: unrecognized producer shape")

// DisposalError wraps a failure to release a removed value. Key identifies
// the entry; Clear and Dispose aggregate one DisposalError per failed entry.
type DisposalError struct {
	Key any
	Err error
}

func (e *DisposalError) Error() string {
	return fmt.Sprintf("keyonce: dispose value for key %v: %v", e.Key, e.Err)
}

func (e *DisposalError) Unwrap() error { return e.Err }
