package reactive

import "fmt"

// Kind identifies the three notification types an [Observer] can receive.
type Kind int

const (
	// KindNext carries a value of the sequence.
	KindNext Kind = iota

	// KindError terminates the sequence with an error.
	KindError

	// KindCompleted terminates the sequence successfully.
	KindCompleted
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "Next"
	case KindError:
		return "Error"
	case KindCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Notification is an immutable, materialized observer call: a value, an
// error, or a completion marker. A well-formed sequence consists of zero or
// more Next notifications followed by at most one terminal notification
// (Error or Completed).
type Notification[T any] struct {
	kind  Kind
	value T
	err   error
}

// NextNotification materializes an OnNext call carrying v.
func NextNotification[T any](v T) Notification[T] {
	return Notification[T]{kind: KindNext, value: v}
}

// ErrorNotification materializes an OnError call carrying err.
func ErrorNotification[T any](err error) Notification[T] {
	return Notification[T]{kind: KindError, err: err}
}

// CompletedNotification materializes an OnCompleted call.
func CompletedNotification[T any]() Notification[T] {
	return Notification[T]{kind: KindCompleted}
}

// Kind returns the notification type.
func (n Notification[T]) Kind() Kind { return n.kind }

// Value returns the carried value. It is the zero value unless Kind is
// [KindNext].
func (n Notification[T]) Value() T { return n.value }

// Err returns the carried error. It is nil unless Kind is [KindError].
func (n Notification[T]) Err() error { return n.err }

// Accept replays the notification on o, invoking the observer method the
// notification was materialized from.
func (n Notification[T]) Accept(o Observer[T]) {
	switch n.kind {
	case KindNext:
		o.OnNext(n.value)
	case KindError:
		o.OnError(n.err)
	case KindCompleted:
		o.OnCompleted()
	}
}

func (n Notification[T]) String() string {
	switch n.kind {
	case KindNext:
		return fmt.Sprintf("Next(%v)", n.value)
	case KindError:
		return fmt.Sprintf("Error(%v)", n.err)
	default:
		return "Completed"
	}
}
