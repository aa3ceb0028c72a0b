package reactive

import "sync"

// semaphore is a counting semaphore used to wake the dedicated dispatcher
// goroutine of a [ScheduledObserver]: producers release once per buffered
// notification and the dispatcher acquires once per delivery attempt.
//
// Unlike a slot-limiting semaphore, the count starts at zero and may grow
// without bound, so it is backed by a condition variable rather than a
// buffered channel.
type semaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

func newSemaphore() *semaphore {
	s := &semaphore{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Acquire blocks until the count is positive, then decrements it.
func (s *semaphore) Acquire() {
	s.mu.Lock()
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
	s.mu.Unlock()
}

// Release increments the count and wakes one waiter.
func (s *semaphore) Release() {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
	s.cond.Signal()
}
