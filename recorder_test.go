package reactive_test

import (
	"sync"
	"testing"
	"time"

	"github.com/baxromumarov/reactive"
)

// recorder is the inner observer used across the suite: it records every
// notification it receives, in order, and signals on the first terminal.
type recorder[T any] struct {
	mu     sync.Mutex
	events []reactive.Notification[T]
	done   chan struct{}
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{done: make(chan struct{})}
}

func (r *recorder[T]) OnNext(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, reactive.NextNotification(value))
}

func (r *recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, reactive.ErrorNotification[T](err))
	close(r.done)
}

func (r *recorder[T]) OnCompleted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, reactive.CompletedNotification[T]())
	close(r.done)
}

func (r *recorder[T]) Events() []reactive.Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reactive.Notification[T], len(r.events))
	copy(out, r.events)
	return out
}

// Strings renders the recorded sequence for diffing.
func (r *recorder[T]) Strings() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

func (r *recorder[T]) WaitDone(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for terminal notification; recorded so far: %v", r.Strings())
	}
}

// panicking wraps a recorder and panics on the OnNext call carrying trigger.
type panicking[T comparable] struct {
	*recorder[T]
	trigger T
	with    any
}

func (p *panicking[T]) OnNext(value T) {
	if value == p.trigger {
		panic(p.with)
	}
	p.recorder.OnNext(value)
}
