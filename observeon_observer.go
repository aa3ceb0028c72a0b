package reactive

import "sync"

// ObserveOnObserver is a [ScheduledObserver] that activates a dispatch pass
// on every producer call, and that additionally owns the upstream
// subscription's cancellation handle, releasing it exactly once when the
// wrapper disposes. It is the building block of observe-on style thread
// hops: values go in on the producer's goroutine and come out on the
// scheduler's.
type ObserveOnObserver[T any] struct {
	ScheduledObserver[T]

	cancelMu sync.Mutex
	cancel   Disposable
}

// NewObserveOnObserver wraps observer in a self-activating dispatcher driven
// by scheduler. cancel, if non-nil, is the upstream subscription handle to
// release on disposal.
func NewObserveOnObserver[T any](scheduler Scheduler, observer Observer[T], cancel Disposable) *ObserveOnObserver[T] {
	o := &ObserveOnObserver[T]{cancel: cancel}
	initScheduledObserver(&o.ScheduledObserver, scheduler, observer, o)
	return o
}

func (o *ObserveOnObserver[T]) onNextCore(value T) {
	o.ScheduledObserver.onNextCore(value)
	o.EnsureActive(1)
}

func (o *ObserveOnObserver[T]) onErrorCore(err error) {
	o.ScheduledObserver.onErrorCore(err)
	o.EnsureActive(1)
}

func (o *ObserveOnObserver[T]) onCompletedCore() {
	o.ScheduledObserver.onCompletedCore()
	o.EnsureActive(1)
}

// Dispose tears down the dispatcher and releases the upstream handle. Both
// are idempotent; the upstream handle is disposed at most once no matter
// how many goroutines race here.
func (o *ObserveOnObserver[T]) Dispose() {
	o.ScheduledObserver.Dispose()

	o.cancelMu.Lock()
	old := o.cancel
	o.cancel = nil
	o.cancelMu.Unlock()

	if old != nil {
		old.Dispose()
	}
}
