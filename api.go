package keyonce

import "context"

// NoArg is the extra-argument type for producers that only need the key.
type NoArg = struct{}

// Cache computes and caches one value per key, invoking the configured
// producer at most once per key. K is the key type, V the cached value type,
// A the extra-argument type handed to the producer beyond the key (NoArg if
// the key is enough; a small struct for several arguments).
//
// Every lock-acquiring operation takes a context: cancellation while waiting
// for the slow-path lock aborts only that caller. Pass context.Background()
// for plain blocking behavior.
type Cache[K comparable, V, A any] interface {
	// Get returns the cached value for key, creating it through the
	// registered producer on first use. arg is passed to the producer only
	// when a value is actually created.
	Get(ctx context.Context, key K, arg A) (V, error)

	// GetFunc is Get with a lazily evaluated extra argument: argFn runs
	// only on the creation path, never on a hit.
	GetFunc(ctx context.Context, key K, argFn func(ctx context.Context) (A, error)) (V, error)

	// GetState is the closure-free form of GetFunc: state is handed back
	// to argFn explicitly so argFn can be a plain function value.
	GetState(ctx context.Context, key K, state any, argFn func(ctx context.Context, state any, key K) (A, error)) (V, error)

	// TryGet observes an already-committed entry without creating one.
	// It never touches the slow-path lock.
	TryGet(key K) (V, bool, error)

	// Configure registers the producer. At most one registration succeeds
	// for the cache's lifetime; a second returns ErrAlreadyConfigured.
	// Equivalent to setting Options.Producer at construction.
	Configure(p *Producer[K, V, A]) error

	// Remove deletes key's entry, if any, and releases the removed value.
	// Removing an absent key is not an error.
	Remove(ctx context.Context, key K) error

	// Clear drains every entry and releases each removed value
	// best-effort: one failing release does not stop the rest, and all
	// failures are returned aggregated.
	Clear(ctx context.Context) error

	// Entries, Keys and Values return consistent point-in-time copies
	// that do not alias the live store.
	Entries(ctx context.Context) (map[K]V, error)
	Keys(ctx context.Context) ([]K, error)
	Values(ctx context.Context) ([]V, error)

	// Dispose tears the cache down and releases every cached value.
	// Idempotent: only the first call performs teardown. Every operation
	// after Dispose returns ErrDisposed.
	Dispose(ctx context.Context) error
}

// Options tune the cache. All fields are optional.
type Options[K comparable, V, A any] struct {
	// Producer pre-registers the initialization function, equivalent to
	// construction followed by Configure.
	Producer *Producer[K, V, A]

	// Store overrides the backing container. Nil => NewStore (xsync).
	Store Store[K, V]

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
}

// New constructs a Cache from opts.
func New[K comparable, V, A any](opts Options[K, V, A]) (Cache[K, V, A], error) {
	return newCache[K, V, A](opts)
}
