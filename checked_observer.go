package reactive

import "sync/atomic"

const (
	checkedIdle int32 = iota
	checkedBusy
	checkedDone
)

// CheckedObserver is a diagnostic wrapper that rejects, loudly, the two
// contract violations the production-path grammar base masks by design:
// reentrant or concurrent calls, and calls after a terminal notification.
//
// A call made while another call on the same instance is still in flight
// panics with [ErrObserverBusy]; any call after a terminal one panics with
// [ErrObserverTerminated]. Use it during development to surface misbehaving
// producers instead of silently dropping their calls.
type CheckedObserver[T any] struct {
	observer Observer[T]
	state    atomic.Int32
}

// NewCheckedObserver wraps observer in a reentrancy and lifecycle guard.
func NewCheckedObserver[T any](observer Observer[T]) *CheckedObserver[T] {
	return &CheckedObserver[T]{observer: observer}
}

func (c *CheckedObserver[T]) OnNext(value T) {
	c.checkAccess()
	defer c.state.Store(checkedIdle)
	c.observer.OnNext(value)
}

func (c *CheckedObserver[T]) OnError(err error) {
	c.checkAccess()
	defer c.state.Store(checkedDone)
	c.observer.OnError(err)
}

func (c *CheckedObserver[T]) OnCompleted() {
	c.checkAccess()
	defer c.state.Store(checkedDone)
	c.observer.OnCompleted()
}

// checkAccess claims the Busy slot via compare-and-swap, panicking if the
// observer is mid-call or already terminated. The matching release happens
// in the callers' deferred state store, so the guard resets even when the
// forwarded call panics.
func (c *CheckedObserver[T]) checkAccess() {
	for {
		switch old := c.state.Load(); old {
		case checkedBusy:
			panic(ErrObserverBusy)
		case checkedDone:
			panic(ErrObserverTerminated)
		default:
			if c.state.CompareAndSwap(old, checkedBusy) {
				return
			}
		}
	}
}
