package keyonce

import (
	"context"
	"io"
)

// Releaser is the context-aware release capability. Values that only need a
// synchronous release should implement io.Closer instead; when a value
// implements both, Close wins.
type Releaser interface {
	Release(ctx context.Context) error
}

// disposeValue releases v if it exposes a release capability. Values with
// neither capability are left untouched. The cache calls this at most once
// per removed entry; the store's atomic remove guarantees single ownership.
func disposeValue[V any](ctx context.Context, v V) error {
	switch r := any(v).(type) {
	case io.Closer:
		return r.Close()
	case Releaser:
		return r.Release(ctx)
	}
	return nil
}
