package reactive

import (
	"sync"
	"sync/atomic"
)

// Disposable is a scoped-acquisition handle, typically representing a
// subscription or a unit of scheduled work. Dispose is idempotent: the
// underlying resource is released exactly once no matter how many times or
// from how many goroutines Dispose is called.
type Disposable interface {
	Dispose()
}

// Cancelable is a [Disposable] whose state can be observed.
type Cancelable interface {
	Disposable
	IsDisposed() bool
}

type emptyDisposable struct{}

func (emptyDisposable) Dispose() {}

// Empty returns a Disposable that does nothing when disposed.
func Empty() Disposable { return emptyDisposable{} }

type anonymousDisposable struct {
	disposed atomic.Bool
	action   func()
}

// NewDisposable wraps action in a [Cancelable] that invokes it on the first
// call to Dispose. A nil action behaves like [Empty] but still tracks state.
func NewDisposable(action func()) Cancelable {
	return &anonymousDisposable{action: action}
}

func (d *anonymousDisposable) Dispose() {
	if d.disposed.CompareAndSwap(false, true) && d.action != nil {
		d.action()
	}
}

func (d *anonymousDisposable) IsDisposed() bool { return d.disposed.Load() }

// BooleanDisposable is a [Cancelable] with no underlying resource; it only
// records that it has been disposed. Used as a cooperative cancellation flag.
type BooleanDisposable struct {
	disposed atomic.Bool
}

// NewBooleanDisposable returns a fresh, undisposed flag.
func NewBooleanDisposable() *BooleanDisposable { return &BooleanDisposable{} }

func (d *BooleanDisposable) Dispose() { d.disposed.Store(true) }

func (d *BooleanDisposable) IsDisposed() bool { return d.disposed.Load() }

// SingleAssignmentDisposable is a slot holding at most one underlying
// [Disposable]. Assigning a second time panics. If the slot is disposed
// before assignment, the assigned disposable is disposed immediately.
//
// The zero value is ready to use.
type SingleAssignmentDisposable struct {
	mu       sync.Mutex
	disposed bool
	current  Disposable
}

// Set assigns the underlying disposable. It panics with a
// "reactive:"-prefixed message if a disposable was already assigned.
func (d *SingleAssignmentDisposable) Set(value Disposable) {
	d.mu.Lock()
	if d.current != nil {
		d.mu.Unlock()
		panic("reactive: SingleAssignmentDisposable already assigned")
	}
	d.current = value
	shouldDispose := d.disposed
	d.mu.Unlock()

	if shouldDispose && value != nil {
		value.Dispose()
	}
}

// Disposable returns the underlying disposable, or [Empty] if the slot is
// disposed or unassigned.
func (d *SingleAssignmentDisposable) Disposable() Disposable {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed || d.current == nil {
		return Empty()
	}
	return d.current
}

func (d *SingleAssignmentDisposable) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	old := d.current
	d.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
}

func (d *SingleAssignmentDisposable) IsDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

// SerialDisposable is a slot whose underlying [Disposable] can be replaced;
// replacing disposes the previous occupant. Disposing the slot disposes the
// current occupant and every occupant assigned afterwards.
//
// The zero value is ready to use.
type SerialDisposable struct {
	mu       sync.Mutex
	disposed bool
	current  Disposable
}

// Set replaces the underlying disposable, disposing the previous one. If the
// slot is already disposed, value is disposed immediately.
func (d *SerialDisposable) Set(value Disposable) {
	d.mu.Lock()
	shouldDispose := d.disposed
	var old Disposable
	if !shouldDispose {
		old = d.current
		d.current = value
	}
	d.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
	if shouldDispose && value != nil {
		value.Dispose()
	}
}

// Disposable returns the current occupant, or [Empty] if the slot is
// disposed or vacant.
func (d *SerialDisposable) Disposable() Disposable {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed || d.current == nil {
		return Empty()
	}
	return d.current
}

func (d *SerialDisposable) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	old := d.current
	d.current = nil
	d.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
}

func (d *SerialDisposable) IsDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

// CompositeDisposable is a group of disposables released together. Members
// added after the group has been disposed are disposed immediately.
type CompositeDisposable struct {
	mu          sync.Mutex
	disposed    bool
	disposables []Disposable
}

// NewCompositeDisposable groups the given disposables. Nil members are
// skipped.
func NewCompositeDisposable(disposables ...Disposable) *CompositeDisposable {
	c := &CompositeDisposable{}
	for _, d := range disposables {
		if d != nil {
			c.disposables = append(c.disposables, d)
		}
	}
	return c
}

// Add includes d in the group, disposing it immediately if the group has
// already been disposed.
func (c *CompositeDisposable) Add(d Disposable) {
	if d == nil {
		return
	}

	c.mu.Lock()
	shouldDispose := c.disposed
	if !shouldDispose {
		c.disposables = append(c.disposables, d)
	}
	c.mu.Unlock()

	if shouldDispose {
		d.Dispose()
	}
}

// Remove drops d from the group and disposes it. It reports whether d was a
// member. Members are matched by identity.
func (c *CompositeDisposable) Remove(d Disposable) bool {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return false
	}

	found := false
	for i, member := range c.disposables {
		if member == d {
			c.disposables = append(c.disposables[:i], c.disposables[i+1:]...)
			found = true
			break
		}
	}
	c.mu.Unlock()

	if found {
		d.Dispose()
	}
	return found
}

// Len returns the number of members currently in the group.
func (c *CompositeDisposable) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.disposables)
}

// Clear disposes all current members without disposing the group itself.
func (c *CompositeDisposable) Clear() {
	c.mu.Lock()
	old := c.disposables
	c.disposables = nil
	c.mu.Unlock()

	for _, d := range old {
		d.Dispose()
	}
}

func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	old := c.disposables
	c.disposables = nil
	c.mu.Unlock()

	for _, d := range old {
		d.Dispose()
	}
}

func (c *CompositeDisposable) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// RefCountDisposable wraps an underlying disposable and releases it only
// once the primary handle and every dependent handle obtained via
// [RefCountDisposable.GetDisposable] have all been disposed.
type RefCountDisposable struct {
	mu              sync.Mutex
	disposed        bool
	primaryDisposed bool
	count           int
	underlying      Disposable
}

// NewRefCountDisposable wraps underlying in a reference-counted handle.
func NewRefCountDisposable(underlying Disposable) *RefCountDisposable {
	return &RefCountDisposable{underlying: underlying}
}

// GetDisposable returns a dependent handle that holds the underlying
// disposable alive until released. Returns [Empty] if already disposed.
func (d *RefCountDisposable) GetDisposable() Disposable {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return Empty()
	}
	d.count++
	inner := &refCountInner{}
	inner.parent.Store(d)
	return inner
}

// Dispose releases the primary handle. The underlying disposable is disposed
// once no dependent handles remain.
func (d *RefCountDisposable) Dispose() {
	var underlying Disposable

	d.mu.Lock()
	if !d.disposed && !d.primaryDisposed {
		d.primaryDisposed = true
		if d.count == 0 {
			d.disposed = true
			underlying = d.underlying
		}
	}
	d.mu.Unlock()

	if underlying != nil {
		underlying.Dispose()
	}
}

func (d *RefCountDisposable) IsDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

func (d *RefCountDisposable) release() {
	var underlying Disposable

	d.mu.Lock()
	if !d.disposed {
		d.count--
		if d.primaryDisposed && d.count == 0 {
			d.disposed = true
			underlying = d.underlying
		}
	}
	d.mu.Unlock()

	if underlying != nil {
		underlying.Dispose()
	}
}

type refCountInner struct {
	parent atomic.Pointer[RefCountDisposable]
}

func (d *refCountInner) Dispose() {
	if parent := d.parent.Swap(nil); parent != nil {
		parent.release()
	}
}
