package reactive

// AutoDetachObserver owns the disposable representing its subscription to
// the upstream producer and releases it exactly once when the sequence
// terminates — whether via OnError, OnCompleted, or a panic raised by the
// inner observer during a value delivery. This is what prevents subscription
// leaks when a subscriber misbehaves or the stream ends naturally.
type AutoDetachObserver[T any] struct {
	observerBase[T]
	observer Observer[T]
	m        SingleAssignmentDisposable
}

// NewAutoDetachObserver wraps observer. If a disposable is supplied it is
// assigned as the owned subscription immediately; otherwise assign it later
// via [AutoDetachObserver.SetDisposable].
func NewAutoDetachObserver[T any](observer Observer[T], disposable ...Disposable) *AutoDetachObserver[T] {
	o := &AutoDetachObserver[T]{observer: observer}
	o.observerBase.init(o)
	if len(disposable) > 0 && disposable[0] != nil {
		o.m.Set(disposable[0])
	}
	return o
}

// SetDisposable assigns the owned subscription. It may be assigned at most
// once; if the observer has already terminated, the subscription is
// disposed immediately.
func (o *AutoDetachObserver[T]) SetDisposable(d Disposable) {
	o.m.Set(d)
}

func (o *AutoDetachObserver[T]) onNextCore(value T) {
	ok := false
	defer func() {
		if !ok {
			o.Dispose()
		}
	}()
	o.observer.OnNext(value)
	ok = true
}

func (o *AutoDetachObserver[T]) onErrorCore(err error) {
	defer o.Dispose()
	o.observer.OnError(err)
}

func (o *AutoDetachObserver[T]) onCompletedCore() {
	defer o.Dispose()
	o.observer.OnCompleted()
}

// Dispose stops the observer and releases the owned subscription.
// Idempotent, and safe to call from within a delivery.
func (o *AutoDetachObserver[T]) Dispose() {
	o.observerBase.Dispose()
	o.m.Dispose()
}
