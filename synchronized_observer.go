package reactive

import "sync"

// SynchronizedObserver serializes calls from multiple producer goroutines
// through a caller-supplied lock, so an inner observer that is not itself
// thread-safe never sees concurrent invocations. The lock is held only for
// the duration of the forwarded call; the grammar base still enforces the
// stop/idempotence invariant beneath it.
//
// The gate may be shared across several observer chains by the caller; this
// wrapper does not assume exclusive ownership of it.
type SynchronizedObserver[T any] struct {
	observerBase[T]
	observer Observer[T]
	gate     sync.Locker
}

// NewSynchronizedObserver wraps observer with the given gate. Most callers
// want [Synchronize], which defaults the gate to a private mutex.
func NewSynchronizedObserver[T any](observer Observer[T], gate sync.Locker) *SynchronizedObserver[T] {
	o := &SynchronizedObserver[T]{observer: observer, gate: gate}
	o.observerBase.init(o)
	return o
}

func (o *SynchronizedObserver[T]) onNextCore(value T) {
	o.gate.Lock()
	defer o.gate.Unlock()
	o.observer.OnNext(value)
}

func (o *SynchronizedObserver[T]) onErrorCore(err error) {
	o.gate.Lock()
	defer o.gate.Unlock()
	o.observer.OnError(err)
}

func (o *SynchronizedObserver[T]) onCompletedCore() {
	o.gate.Lock()
	defer o.gate.Unlock()
	o.observer.OnCompleted()
}
