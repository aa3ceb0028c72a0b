package reactive

import "sync"

// AsyncLock serializes units of work without blocking callers: Wait either
// runs the queued work itself (becoming the drainer for everything queued
// behind it) or, if another goroutine is already draining, leaves the work
// behind for that goroutine and returns immediately.
//
// If a unit of work panics, the lock is permanently faulted: queued and
// future work is discarded and the panic propagates from the draining call.
//
// The zero value is ready to use.
type AsyncLock struct {
	mu       sync.Mutex
	queue    []func()
	acquired bool
	faulted  bool
}

// Wait queues action and drains the queue unless another caller is already
// draining. A disposed or faulted lock drops the action silently.
func (l *AsyncLock) Wait(action func()) {
	l.mu.Lock()
	if l.faulted {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, action)
	if l.acquired {
		l.mu.Unlock()
		return
	}
	l.acquired = true
	l.mu.Unlock()

	for {
		l.mu.Lock()
		if len(l.queue) == 0 || l.faulted {
			l.acquired = false
			l.mu.Unlock()
			return
		}
		work := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		ok := false
		func() {
			defer func() {
				if !ok {
					l.mu.Lock()
					l.faulted = true
					l.queue = nil
					l.mu.Unlock()
				}
			}()
			work()
			ok = true
		}()
	}
}

// Dispose discards queued work and causes all future Wait calls to be
// no-ops.
func (l *AsyncLock) Dispose() {
	l.mu.Lock()
	l.queue = nil
	l.faulted = true
	l.mu.Unlock()
}

// AsyncLockObserver forwards notifications to an inner observer through an
// [AsyncLock], guaranteeing the inner observer is never entered concurrently
// while keeping producers non-blocking. The gate may be shared with other
// work that must be serialized against deliveries.
type AsyncLockObserver[T any] struct {
	observerBase[T]
	observer Observer[T]
	gate     *AsyncLock
}

// NewAsyncLockObserver wraps observer behind gate.
func NewAsyncLockObserver[T any](observer Observer[T], gate *AsyncLock) *AsyncLockObserver[T] {
	o := &AsyncLockObserver[T]{observer: observer, gate: gate}
	o.observerBase.init(o)
	return o
}

func (o *AsyncLockObserver[T]) onNextCore(value T) {
	o.gate.Wait(func() { o.observer.OnNext(value) })
}

func (o *AsyncLockObserver[T]) onErrorCore(err error) {
	o.gate.Wait(func() { o.observer.OnError(err) })
}

func (o *AsyncLockObserver[T]) onCompletedCore() {
	o.gate.Wait(func() { o.observer.OnCompleted() })
}
