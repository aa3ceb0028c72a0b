package reactive

import "sync"

// Observer is the consumer-side capability of a notification sequence.
//
// Implementations must be driven according to the observer grammar: zero or
// more OnNext calls followed by at most one of OnError or OnCompleted. The
// wrappers in this package enforce or diagnose that grammar; raw
// implementations are free to assume it.
type Observer[T any] interface {
	// OnNext delivers the next value of the sequence.
	OnNext(value T)

	// OnError terminates the sequence with an error.
	OnError(err error)

	// OnCompleted terminates the sequence successfully.
	OnCompleted()
}

// AnonymousObserver adapts a triple of handler functions to the [Observer]
// interface, enforcing the observer grammar on top of them. Handlers left
// nil default to no-ops, except the error handler which panics with the
// delivered error: silently discarding a sequence failure is never the
// right default.
type AnonymousObserver[T any] struct {
	observerBase[T]
	onNext      func(T)
	onError     func(error)
	onCompleted func()
}

// NewObserver builds an [AnonymousObserver] from the supplied handlers. Any
// handler may be nil.
func NewObserver[T any](onNext func(T), onError func(error), onCompleted func()) *AnonymousObserver[T] {
	o := &AnonymousObserver[T]{
		onNext:      onNext,
		onError:     onError,
		onCompleted: onCompleted,
	}
	if o.onNext == nil {
		o.onNext = func(T) {}
	}
	if o.onError == nil {
		o.onError = func(err error) { panic(err) }
	}
	if o.onCompleted == nil {
		o.onCompleted = func() {}
	}
	o.observerBase.init(o)
	return o
}

func (o *AnonymousObserver[T]) onNextCore(v T)        { o.onNext(v) }
func (o *AnonymousObserver[T]) onErrorCore(err error) { o.onError(err) }
func (o *AnonymousObserver[T]) onCompletedCore()      { o.onCompleted() }

// FromNotifier builds an observer that funnels every call through handler as
// a materialized [Notification].
func FromNotifier[T any](handler func(Notification[T])) Observer[T] {
	return NewObserver(
		func(v T) { handler(NextNotification(v)) },
		func(err error) { handler(ErrorNotification[T](err)) },
		func() { handler(CompletedNotification[T]()) },
	)
}

// ToNotifier returns a function that replays materialized notifications
// on o.
func ToNotifier[T any](o Observer[T]) func(Notification[T]) {
	return func(n Notification[T]) { n.Accept(o) }
}

// AsObserver hides the concrete type of o behind a fresh grammar-enforcing
// wrapper, so callers cannot reach extension methods such as Fail or
// Dispose.
func AsObserver[T any](o Observer[T]) Observer[T] {
	return NewObserver(o.OnNext, o.OnError, o.OnCompleted)
}

// Checked wraps o in a [CheckedObserver] that panics on grammar violations
// instead of masking them. Intended as a development-time diagnostic.
func Checked[T any](o Observer[T]) *CheckedObserver[T] {
	return NewCheckedObserver(o)
}

// Synchronize wraps o so that calls from multiple producer goroutines are
// serialized through gate. If gate is omitted a private mutex is used; pass
// an explicit gate to share one exclusion domain across several observers.
func Synchronize[T any](o Observer[T], gate ...sync.Locker) *SynchronizedObserver[T] {
	var lock sync.Locker
	if len(gate) > 0 && gate[0] != nil {
		lock = gate[0]
	} else {
		lock = new(sync.Mutex)
	}
	return NewSynchronizedObserver(o, lock)
}

// NotifyOn wraps o in a [ScheduledObserver] that buffers notifications and
// redelivers them on scheduler.
func NotifyOn[T any](o Observer[T], scheduler Scheduler) *ScheduledObserver[T] {
	return NewScheduledObserver(scheduler, o)
}

// MakeSafe wraps o in an [AutoDetachObserver] that releases its subscription
// when the sequence terminates or a delivery panics.
func MakeSafe[T any](o Observer[T]) *AutoDetachObserver[T] {
	return NewAutoDetachObserver(o)
}
