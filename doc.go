// Package keyonce implements a concurrent, lazily-initializing keyed cache:
// Get returns the value previously computed for a key, or computes and caches
// it exactly once, even under concurrent access. The hit path is lock-free;
// a miss takes a single per-cache lock and re-checks the store before calling
// the configured producer (double-checked locking).
//
// Components:
//   - Store: concurrent key/value container (default backed by xsync.MapOf).
//   - Producer[K, V, A]: the user-supplied initialization function in one of
//     several shapes, settable exactly once.
//   - Releaser / io.Closer: release capabilities honored when a value is
//     removed, cleared, or the cache is disposed.
//
// Entries never expire and are never evicted: they live until Remove, Clear
// or Dispose. The cache is not distributed and persists nothing.
//
// The extra-argument type A carries whatever the producer needs beyond the
// key. Use NoArg when the key alone is enough; use a small struct for two or
// more arguments:
//
//	cc, _ := keyonce.New(keyonce.Options[string, *Conn, keyonce.NoArg]{
//	    Producer: keyonce.KeyProducer(func(addr string, _ keyonce.NoArg) (*Conn, error) {
//	        return dial(addr)
//	    }),
//	})
//	conn, err := cc.Get(ctx, "10.0.0.1:5432", keyonce.NoArg{})
//
// Lock waits honor context cancellation; pass context.Background() for the
// plain blocking form. Both forms are equivalent in outcome.
package keyonce
