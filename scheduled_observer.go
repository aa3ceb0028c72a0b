package reactive

import (
	"sync"
	"sync/atomic"
)

// Dispatcher states for the trampoline (strategy B) coordination machine.
// Transitions happen via compare-and-swap on an atomic register; see
// ensureActiveSlow and run for the handshake.
const (
	// dispatchStopped: idle, no delivery step scheduled.
	dispatchStopped int32 = iota
	// dispatchRunning: a delivery step is scheduled or executing.
	dispatchRunning
	// dispatchPending: work arrived while running; the in-flight step must
	// schedule one more pass before stopping.
	dispatchPending
	// dispatchFaulted: a delivery panicked; permanently disabled.
	dispatchFaulted
)

// ScheduledObserver decouples the goroutine that produces notifications from
// the execution context that delivers them. Producer calls only buffer
// values or set terminal flags; a scheduler-driven dispatch routine
// redelivers everything to the inner observer with three guarantees:
//
//   - strict FIFO order,
//   - at most one delivery in flight at any time,
//   - a terminal notification only after every previously buffered value.
//
// Two coordination strategies exist. On a long-running scheduler a single
// dedicated routine blocks on a counting semaphore that producers release
// once per notification. On any other scheduler the dispatcher drives
// itself through trampolined recursive steps, coordinated by the
// Stopped/Running/Pending/Faulted state machine.
//
// Buffering does not start delivery by itself: a caller (typically
// [ObserveOnObserver]) must invoke EnsureActive after each producer call.
type ScheduledObserver[T any] struct {
	observerBase[T]
	scheduler Scheduler
	observer  Observer[T]

	state atomic.Int32
	queue pendingQueue[T]

	failed    atomic.Bool
	err       error // written before failed is set, read after it is observed
	completed atomic.Bool

	disposable SerialDisposable

	mu            sync.Mutex // guards dispatcherJob
	dispatcherJob Disposable
	wake          *semaphore

	// selfDispose points at the outermost Dispose so the dispatch routine
	// tears down derived wrappers (and whatever they own) after a terminal
	// delivery, not just the embedded dispatcher.
	selfDispose func()
}

// NewScheduledObserver wraps observer in a dispatcher driven by scheduler.
// The returned observer buffers only; callers drive delivery through
// EnsureActive. Use [NotifyOn] or [ObserveOnObserver] for a dispatcher that
// activates itself on every call.
func NewScheduledObserver[T any](scheduler Scheduler, observer Observer[T]) *ScheduledObserver[T] {
	o := &ScheduledObserver[T]{}
	initScheduledObserver(o, scheduler, observer, o)
	return o
}

// initScheduledObserver initializes the embedded dispatcher of a derived
// observer, wiring the grammar base to the derived core.
func initScheduledObserver[T any](o *ScheduledObserver[T], scheduler Scheduler, observer Observer[T], core observerCore[T]) {
	o.scheduler = scheduler
	o.observer = observer
	o.wake = newSemaphore()
	o.observerBase.init(core)
	if d, ok := core.(Disposable); ok {
		o.selfDispose = d.Dispose
	} else {
		o.selfDispose = o.Dispose
	}
}

// Producer-side handlers: buffer or flag only, never deliver synchronously.

func (o *ScheduledObserver[T]) onNextCore(value T) {
	o.queue.enqueue(value)
}

func (o *ScheduledObserver[T]) onErrorCore(err error) {
	o.err = err
	o.failed.Store(true)
}

func (o *ScheduledObserver[T]) onCompletedCore() {
	o.completed.Store(true)
}

// EnsureActive makes sure a dispatch pass will observe the n notifications
// just buffered. On a long-running scheduler it starts the dedicated
// dispatcher (once) and releases the wake semaphore n times; otherwise it
// runs the trampoline handshake.
func (o *ScheduledObserver[T]) EnsureActive(n int) {
	if o.scheduler.IsLongRunning() {
		o.ensureDispatcher()
		for ; n > 0; n-- {
			o.wake.Release()
		}
		return
	}
	o.ensureActiveSlow()
}

// ensureDispatcher schedules the dedicated dispatch routine, guarded by a
// lock so only one is ever started. Its cancellation handle is combined
// with a final semaphore release so that disposal wakes a blocked dispatcher
// and lets it observe the cancel signal.
func (o *ScheduledObserver[T]) ensureDispatcher() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.dispatcherJob != nil {
		return
	}
	o.dispatcherJob = o.scheduler.ScheduleLongRunning(o.dispatch)
	o.disposable.Set(NewCompositeDisposable(
		o.dispatcherJob,
		NewDisposable(o.wake.Release),
	))
}

// dispatch is the strategy-A loop. One semaphore token is consumed per
// delivery attempt; when the queue is observed empty the buffered terminal
// flag, if any, is delivered and the dispatcher shuts down.
func (o *ScheduledObserver[T]) dispatch(cancel Cancelable) {
	for {
		o.wake.Acquire()
		if cancel.IsDisposed() {
			return
		}

		for {
			value, ok := o.queue.tryDequeue()
			if !ok {
				break
			}
			o.deliver(value)

			o.wake.Acquire()
			if cancel.IsDisposed() {
				return
			}
		}

		if o.failed.Load() {
			o.observer.OnError(o.err)
			o.selfDispose()
			return
		}
		if o.completed.Load() {
			o.observer.OnCompleted()
			o.selfDispose()
			return
		}
	}
}

// deliver forwards one value; if the inner observer panics the remaining
// queue is discarded and the panic propagates out of the dispatch routine.
func (o *ScheduledObserver[T]) deliver(value T) {
	ok := false
	defer func() {
		if !ok {
			o.queue.clear()
		}
	}()
	o.observer.OnNext(value)
	ok = true
}

// ensureActiveSlow is the strategy-B entry point: claim ownership of a
// dispatch pass via Stopped -> Running, or leave a Pending marker for the
// pass already in flight.
func (o *ScheduledObserver[T]) ensureActiveSlow() {
	for {
		switch o.state.Load() {
		case dispatchStopped:
			if o.state.CompareAndSwap(dispatchStopped, dispatchRunning) {
				o.disposable.Set(o.scheduler.ScheduleRecursive(o.run))
				return
			}
		case dispatchRunning:
			if o.state.CompareAndSwap(dispatchRunning, dispatchPending) {
				return
			}
		case dispatchPending:
			// Another pass is already requested.
			return
		case dispatchFaulted:
			return
		}
	}
}

// run is one trampolined delivery step: deliver the oldest buffered value
// and reschedule, or detect quiescence / a drained terminal and stop.
func (o *ScheduledObserver[T]) run(self func()) {
	var next T
	for {
		value, ok := o.queue.tryDequeue()
		if ok {
			next = value
			break
		}

		// Terminal paths leave the state at Running on purpose: the flags
		// are set before the flag-setter's own activation arrives, so an
		// in-flight pass may deliver the terminal first. Were the state
		// reset to Stopped here, that late activation could win
		// Stopped -> Running and deliver the terminal a second time.
		if o.failed.Load() {
			// A value may still be in flight from a producer that
			// enqueued after our dequeue attempt; the terminal must
			// not overtake it.
			if !o.queue.empty() {
				continue
			}
			o.observer.OnError(o.err)
			o.selfDispose()
			return
		}
		if o.completed.Load() {
			if !o.queue.empty() {
				continue
			}
			o.observer.OnCompleted()
			o.selfDispose()
			return
		}

		// Queue empty, no terminal buffered: try to go quiescent. Losing
		// the race means a producer moved us to Pending, so take another
		// pass instead of stopping.
		old := o.casState(dispatchStopped, dispatchRunning)
		if old == dispatchRunning || old == dispatchFaulted {
			return
		}
		o.state.Store(dispatchRunning)
	}

	o.state.Store(dispatchRunning)

	ok := false
	defer func() {
		if !ok {
			o.state.Store(dispatchFaulted)
			o.queue.clear()
		}
	}()
	o.observer.OnNext(next)
	ok = true

	self()
}

// casState attempts expected -> value and returns the state observed before
// the attempt. The retry loop makes the exchange atomic against concurrent
// transitions to unrelated states.
func (o *ScheduledObserver[T]) casState(value, expected int32) int32 {
	for {
		old := o.state.Load()
		if old != expected {
			return old
		}
		if o.state.CompareAndSwap(expected, value) {
			return old
		}
	}
}

// Dispose stops the observer and cancels the dispatch routine. For the
// dedicated-thread strategy this also wakes a blocked dispatcher so it can
// observe the cancellation.
func (o *ScheduledObserver[T]) Dispose() {
	o.observerBase.Dispose()
	o.disposable.Dispose()
}
