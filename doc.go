// Package reactive provides the concurrency core of a push-based
// notification pipeline: observers, the wrappers that make them safe to
// drive from multiple goroutines, and the dispatcher that moves a sequence
// across execution contexts without reordering it.
//
// A notification sequence follows the observer grammar: zero or more values,
// then at most one terminal notification (an error or a completion). Every
// wrapper in this package enforces one concern on top of that grammar and
// forwards to an inner [Observer]:
//
//   - [NewObserver]: adapt plain handler functions, defaulting the ones you
//     do not supply.
//   - [Checked]: panic on reentrant or post-terminal calls instead of
//     masking them — a development-time diagnostic.
//   - [Synchronize]: serialize producers through a shared lock.
//   - [MakeSafe]: release the owned subscription exactly once when the
//     sequence terminates or a delivery panics.
//   - [NotifyOn]: buffer notifications and redeliver them, strictly in
//     order and never concurrently, on a [Scheduler].
//   - [NewListObserver]: immutable fan-out to a set of observers.
//
// # Crossing goroutines
//
// The scheduled dispatcher is the only component that crosses execution
// contexts. Producers append to an unbounded queue and return; delivery
// happens either on a dedicated goroutine woken by a counting semaphore
// (long-running schedulers) or through trampolined recursive steps
// coordinated by a compare-and-swap state machine (everything else). In
// both modes the inner observer sees values in enqueue order, one at a
// time, with a terminal notification only after the queue has drained.
//
// # Teardown
//
// Every handle handed out here is a [Disposable]: disposal is idempotent
// and cooperative. Single-assignment, serial and composite slots compose
// disposal the usual ways. A panic raised by an inner observer during
// dispatch is fatal to that dispatcher: buffered work is discarded and the
// fault surfaces on the execution context driving delivery (see
// [DeliveryFault]).
package reactive
