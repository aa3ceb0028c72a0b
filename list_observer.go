package reactive

// ListObserver broadcasts every notification to a fixed set of observers in
// registration order. Instances are immutable: Add and Remove return a new
// ListObserver, so a holder can publish against a snapshot without locking
// while membership changes elsewhere.
type ListObserver[T any] struct {
	observers []Observer[T]
}

// NewListObserver builds a broadcast observer over the given members. The
// slice is copied.
func NewListObserver[T any](observers ...Observer[T]) *ListObserver[T] {
	members := make([]Observer[T], len(observers))
	copy(members, observers)
	return &ListObserver[T]{observers: members}
}

func (l *ListObserver[T]) OnNext(value T) {
	for _, o := range l.observers {
		o.OnNext(value)
	}
}

func (l *ListObserver[T]) OnError(err error) {
	for _, o := range l.observers {
		o.OnError(err)
	}
}

func (l *ListObserver[T]) OnCompleted() {
	for _, o := range l.observers {
		o.OnCompleted()
	}
}

// Len returns the number of members.
func (l *ListObserver[T]) Len() int { return len(l.observers) }

// Add returns a new ListObserver with observer appended. The receiver is
// unchanged.
func (l *ListObserver[T]) Add(observer Observer[T]) *ListObserver[T] {
	members := make([]Observer[T], len(l.observers)+1)
	copy(members, l.observers)
	members[len(l.observers)] = observer
	return &ListObserver[T]{observers: members}
}

// Remove returns a new ListObserver without the first member identical to
// observer, or the receiver itself if observer is not a member. Members are
// matched by identity.
func (l *ListObserver[T]) Remove(observer Observer[T]) *ListObserver[T] {
	index := -1
	for i, o := range l.observers {
		if o == observer {
			index = i
			break
		}
	}
	if index < 0 {
		return l
	}

	members := make([]Observer[T], 0, len(l.observers)-1)
	members = append(members, l.observers[:index]...)
	members = append(members, l.observers[index+1:]...)
	return &ListObserver[T]{observers: members}
}

type noopObserver[T any] struct{}

func (noopObserver[T]) OnNext(T)      {}
func (noopObserver[T]) OnError(error) {}
func (noopObserver[T]) OnCompleted()  {}

// NoopObserver returns the observer that absorbs every notification. It is
// stateless; every call returns an equivalent value.
func NoopObserver[T any]() Observer[T] { return noopObserver[T]{} }

// doneObserver is the terminal sentinel: a sequence that has already ended,
// optionally with an error. It swallows everything.
type doneObserver[T any] struct {
	err error
}

func (d doneObserver[T]) OnNext(T)      {}
func (d doneObserver[T]) OnError(error) {}
func (d doneObserver[T]) OnCompleted()  {}

// Err returns the error the sequence terminated with, if any.
func (d doneObserver[T]) Err() error { return d.err }

// DoneObserver returns the sentinel standing for a successfully completed
// sequence.
func DoneObserver[T any]() Observer[T] { return doneObserver[T]{} }

// DoneObserverWithError returns the sentinel standing for a sequence that
// terminated with err.
func DoneObserverWithError[T any](err error) Observer[T] {
	return doneObserver[T]{err: err}
}

type disposedObserver[T any] struct{}

func (disposedObserver[T]) OnNext(T)      { panic(ErrDisposed) }
func (disposedObserver[T]) OnError(error) { panic(ErrDisposed) }
func (disposedObserver[T]) OnCompleted()  { panic(ErrDisposed) }

// DisposedObserver returns the poisoned placeholder installed after
// teardown: every operation panics with [ErrDisposed].
func DisposedObserver[T any]() Observer[T] { return disposedObserver[T]{} }
