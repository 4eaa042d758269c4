package keyonce

import "github.com/puzpuzpuz/xsync/v3"

// Store is the associative container behind the cache. Implementations must
// be safe for concurrent use without an external lock; the cache relies on
// Load being lock-free on the hit path and on LoadAndDelete being atomic so
// two racing removals cannot both observe the same entry.
//
// The cache serializes inserts through its own lock, so Store does not need
// an atomic load-or-store.
type Store[K comparable, V any] interface {
	Load(key K) (V, bool)
	Store(key K, value V)
	LoadAndDelete(key K) (V, bool)
	Range(fn func(key K, value V) bool)
	Len() int
}

// NewStore returns the default Store, backed by xsync.MapOf.
func NewStore[K comparable, V any]() Store[K, V] {
	return xsyncStore[K, V]{m: xsync.NewMapOf[K, V]()}
}

type xsyncStore[K comparable, V any] struct {
	m *xsync.MapOf[K, V]
}

func (s xsyncStore[K, V]) Load(key K) (V, bool)          { return s.m.Load(key) }
func (s xsyncStore[K, V]) Store(key K, value V)          { s.m.Store(key, value) }
func (s xsyncStore[K, V]) LoadAndDelete(key K) (V, bool) { return s.m.LoadAndDelete(key) }
func (s xsyncStore[K, V]) Range(fn func(K, V) bool)      { s.m.Range(fn) }
func (s xsyncStore[K, V]) Len() int                      { return s.m.Size() }
