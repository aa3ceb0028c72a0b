package reactive

import "sync"

// pendingQueue is the unbounded FIFO of buffered values awaiting redelivery
// by a [ScheduledObserver]. Producer goroutines append; the dispatch routine
// drains. All operations are non-blocking.
type pendingQueue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
}

func (q *pendingQueue[T]) enqueue(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// tryDequeue pops the oldest value, reporting false on an empty queue.
func (q *pendingQueue[T]) tryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		var zero T
		return zero, false
	}

	v := q.items[q.head]
	var zero T
	q.items[q.head] = zero // release the reference
	q.head++

	// Compact once the dead prefix dominates, so the backing array does
	// not grow without bound on long-lived observers.
	if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v, true
}

func (q *pendingQueue[T]) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.head == len(q.items)
}

// clear discards all buffered values. Called when a delivery fault poisons
// the dispatcher.
func (q *pendingQueue[T]) clear() {
	q.mu.Lock()
	q.items = nil
	q.head = 0
	q.mu.Unlock()
}
