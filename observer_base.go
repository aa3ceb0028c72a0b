package reactive

import (
	"sync"
	"sync/atomic"
)

// observerCore is the inner handler set a concrete observer supplies to
// [observerBase]. Core methods are only ever invoked on the winning side of
// the stop transition, so they may assume the grammar holds.
type observerCore[T any] interface {
	onNextCore(value T)
	onErrorCore(err error)
	onCompletedCore()
}

// observerBase enforces the observer grammar for the concrete observers in
// this package: values flow through only while the observer is active, and
// exactly one terminal notification wins the one-way Active -> Stopped
// transition. Everything after that transition is a no-op.
//
// The mutex is held across onNextCore so that a terminal notification can
// never be delivered while a value delivery is still in flight; the stop
// flag itself is atomic so Dispose stays safe to call from within a core
// handler (the auto-detach wrapper does exactly that on a panic).
type observerBase[T any] struct {
	mu      sync.Mutex
	stopped atomic.Bool
	core    observerCore[T]
}

func (b *observerBase[T]) init(core observerCore[T]) {
	b.core = core
}

// OnNext forwards value to the core handler iff the observer has not
// stopped. Calls racing with the stop transition are delivered best-effort,
// but never after a terminal notification.
func (b *observerBase[T]) OnNext(value T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped.Load() {
		return
	}
	b.core.onNextCore(value)
}

// OnError performs the stop transition and, if this call won it, forwards
// err to the core handler exactly once.
func (b *observerBase[T]) OnError(err error) {
	if b.stop() {
		b.core.onErrorCore(err)
	}
}

// OnCompleted performs the stop transition and, if this call won it,
// forwards the completion exactly once.
func (b *observerBase[T]) OnCompleted() {
	if b.stop() {
		b.core.onCompletedCore()
	}
}

// Dispose stops the observer without forwarding any notification.
// Idempotent.
func (b *observerBase[T]) Dispose() {
	b.stopped.Store(true)
}

// IsStopped reports whether the observer has reached its terminal state.
func (b *observerBase[T]) IsStopped() bool {
	return b.stopped.Load()
}

// Fail behaves like OnError but reports whether this call performed the
// stop transition. Callers that race to terminate an observer use the
// return value to learn whether they won.
func (b *observerBase[T]) Fail(err error) bool {
	if b.stop() {
		b.core.onErrorCore(err)
		return true
	}
	return false
}

// stop attempts the Active -> Stopped transition, waiting out any value
// delivery in flight. Exactly one caller ever sees true.
func (b *observerBase[T]) stop() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopped.CompareAndSwap(false, true)
}
