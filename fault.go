package reactive

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrObserverBusy reports a reentrant or concurrent call detected by a
	// [CheckedObserver] while a previous call is still in flight.
	ErrObserverBusy = errors.New("reactive: observer is currently busy")

	// ErrObserverTerminated reports a call made after a terminal
	// notification, detected by a [CheckedObserver].
	ErrObserverTerminated = errors.New("reactive: observer already terminated")

	// ErrDisposed reports a call on an observer or disposable that has
	// already been torn down.
	ErrDisposed = errors.New("reactive: object has been disposed")
)

// DeliveryFault wraps a panic raised by an inner observer's handler while a
// dispatcher or scheduler was delivering a notification, together with the
// goroutine stack captured at the point of the panic.
//
// A delivery fault is fatal to the dispatcher instance it occurred on: any
// buffered work is discarded and no further notification of any kind is
// delivered. The fault itself is never swallowed; it propagates to whatever
// drives the execution context (see [GoroutineScheduler] and
// [WithFaultHandler]).
type DeliveryFault struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of the panic.
	Stack string
}

func (e *DeliveryFault) Error() string {
	return fmt.Sprintf("reactive: delivery fault: %v", e.Value)
}

// Unwrap returns the panic value if it was an error, nil otherwise.
func (e *DeliveryFault) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsDeliveryFault reports whether err (or any error in its chain) is a
// [*DeliveryFault].
func IsDeliveryFault(err error) bool {
	if err == nil {
		return false
	}
	var df *DeliveryFault
	return errors.As(err, &df)
}

func newDeliveryFault(v any) *DeliveryFault {
	// 8 KiB is enough for most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &DeliveryFault{
		Value: v,
		Stack: string(buf[:n]),
	}
}
