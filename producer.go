package keyonce

import "context"

type producerKind uint8

const (
	producerNone producerKind = iota
	producerState
	producerContext
	producerKey
	producerValue
)

// Producer is the user-supplied initialization function, tagged with the
// shape it was built from. Exactly one shape is active per Producer; the
// cache registers at most one Producer for its whole lifetime.
//
// In Go the synchronous and asynchronous shapes of the original contract
// collapse into one: a producer that needs cancellation takes the context,
// one that does not simply ignores it.
type Producer[K comparable, V, A any] struct {
	kind producerKind

	valueFn func(A) (V, error)
	keyFn   func(K, A) (V, error)
	ctxFn   func(context.Context, K, A) (V, error)

	state   any
	stateFn func(ctx context.Context, state any, key K, arg A) (V, error)
}

// ValueProducer builds a key-agnostic producer: the value depends only on
// the extra argument (or on nothing, with NoArg).
func ValueProducer[K comparable, V, A any](fn func(arg A) (V, error)) *Producer[K, V, A] {
	return &Producer[K, V, A]{kind: producerValue, valueFn: fn}
}

// KeyProducer builds a key-aware producer.
func KeyProducer[K comparable, V, A any](fn func(key K, arg A) (V, error)) *Producer[K, V, A] {
	return &Producer[K, V, A]{kind: producerKey, keyFn: fn}
}

// ContextProducer builds a key- and cancellation-aware producer. The context
// is the one passed to the Get call that ended up creating the value.
func ContextProducer[K comparable, V, A any](fn func(ctx context.Context, key K, arg A) (V, error)) *Producer[K, V, A] {
	return &Producer[K, V, A]{kind: producerContext, ctxFn: fn}
}

// StateProducer builds a closure-free producer: state is captured once at
// registration and handed back explicitly on every creation, so fn itself
// can be a plain function value with no per-call allocation.
func StateProducer[K comparable, V, A any](state any, fn func(ctx context.Context, state any, key K, arg A) (V, error)) *Producer[K, V, A] {
	return &Producer[K, V, A]{kind: producerState, state: state, stateFn: fn}
}

// invoke dispatches to the one registered shape. The state shape is matched
// first, mirroring the registry's priority order.
func (p *Producer[K, V, A]) invoke(ctx context.Context, key K, arg A) (V, error) {
	switch p.kind {
	case producerState:
		return p.stateFn(ctx, p.state, key, arg)
	case producerContext:
		return p.ctxFn(ctx, key, arg)
	case producerKey:
		return p.keyFn(key, arg)
	case producerValue:
		return p.valueFn(arg)
	}
	var zero V
	return zero, errUnknownProducer
}
