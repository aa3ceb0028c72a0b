package reactive

// Scheduler is the execution-context capability consumed by the scheduled
// dispatcher. Implementations fall into two classes, selected via
// IsLongRunning:
//
//   - Long-running schedulers can dedicate an execution context to a single
//     action for its whole lifetime. The dispatcher then runs as one blocking
//     loop woken by a counting semaphore.
//   - All other schedulers only run short steps. The dispatcher then drives
//     itself through ScheduleRecursive, one delivery per step, never
//     blocking.
type Scheduler interface {
	// Schedule runs action once. The returned disposable cancels the
	// action if it has not started yet.
	Schedule(action func()) Disposable

	// ScheduleRecursive runs action, passing it a continuation the action
	// may call to request one more invocation of itself. The recursion is
	// trampolined: calling the continuation never grows the call stack.
	ScheduleRecursive(action func(self func())) Disposable

	// ScheduleLongRunning dedicates an execution context to action until
	// it returns. The cancel handle is the cooperative stop signal:
	// action must poll it and return once it is disposed. Disposing the
	// returned disposable fires that signal.
	//
	// Must only be called when IsLongRunning reports true; other
	// schedulers panic.
	ScheduleLongRunning(action func(cancel Cancelable)) Disposable

	// IsLongRunning reports whether ScheduleLongRunning is supported.
	IsLongRunning() bool
}

// GoroutineScheduler runs each action on its own goroutine and supports
// long-running work. It is the strategy-A host for [ScheduledObserver].
//
// A panic escaping a scheduled action is wrapped in a [*DeliveryFault] and
// handed to the scheduler's fault handler; see [WithFaultHandler] for the
// default behavior.
type GoroutineScheduler struct {
	cfg schedulerConfig
}

// NewGoroutineScheduler constructs a goroutine-backed scheduler.
func NewGoroutineScheduler(opts ...SchedulerOption) *GoroutineScheduler {
	return &GoroutineScheduler{cfg: newSchedulerConfig(opts)}
}

func (s *GoroutineScheduler) Schedule(action func()) Disposable {
	cancel := NewBooleanDisposable()
	go s.guard(func() {
		if cancel.IsDisposed() {
			return
		}
		action()
	})
	return cancel
}

func (s *GoroutineScheduler) ScheduleRecursive(action func(self func())) Disposable {
	group := NewCompositeDisposable()

	var step func()
	step = func() {
		action(func() {
			group.Add(s.Schedule(step))
		})
	}
	group.Add(s.Schedule(step))

	return group
}

func (s *GoroutineScheduler) ScheduleLongRunning(action func(cancel Cancelable)) Disposable {
	cancel := NewBooleanDisposable()
	go s.guard(func() { action(cancel) })
	return cancel
}

func (s *GoroutineScheduler) IsLongRunning() bool { return true }

// guard surfaces panics escaping scheduled actions. Without it a misbehaving
// observer would take the whole process down from a dispatcher goroutine.
func (s *GoroutineScheduler) guard(run func()) {
	defer func() {
		if r := recover(); r != nil {
			s.cfg.onFault(newDeliveryFault(r))
		}
	}()
	run()
}

// TrampolineScheduler runs work immediately on the caller's goroutine with
// zero latency. Recursive work is flattened into a loop instead of growing
// the call stack. It is the strategy-B host for [ScheduledObserver].
//
// Panics propagate synchronously to whichever caller triggered the step,
// matching the contract that delivery faults surface on the execution
// context that drives the dispatcher.
type TrampolineScheduler struct{}

// NewTrampolineScheduler constructs an immediate trampolining scheduler.
func NewTrampolineScheduler() *TrampolineScheduler {
	return &TrampolineScheduler{}
}

func (s *TrampolineScheduler) Schedule(action func()) Disposable {
	action()
	return Empty()
}

func (s *TrampolineScheduler) ScheduleRecursive(action func(self func())) Disposable {
	pending := 1
	for pending > 0 {
		pending--
		action(func() { pending++ })
	}
	return Empty()
}

func (s *TrampolineScheduler) ScheduleLongRunning(func(cancel Cancelable)) Disposable {
	panic("reactive: TrampolineScheduler does not support long-running work")
}

func (s *TrampolineScheduler) IsLongRunning() bool { return false }
