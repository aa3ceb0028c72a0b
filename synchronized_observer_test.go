package reactive_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/reactive"
)

func TestSynchronizedObserverSerializesProducers(t *testing.T) {
	const producers = 8
	const perProducer = 200

	var inside atomic.Int32
	var overlapped atomic.Bool
	var count atomic.Int32

	inner := reactive.NewObserver(
		func(int) {
			if inside.Add(1) != 1 {
				overlapped.Store(true)
			}
			count.Add(1)
			inside.Add(-1)
		},
		nil, nil,
	)

	obs := reactive.Synchronize[int](inner)

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := 0; i < perProducer; i++ {
				obs.OnNext(i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	obs.OnCompleted()

	assert.False(t, overlapped.Load(), "inner observer entered concurrently")
	assert.Equal(t, int32(producers*perProducer), count.Load())
}

func TestSynchronizedObserverSharedGate(t *testing.T) {
	// Two chains sharing one gate never run their inner observers at the
	// same time.
	var gate sync.Mutex
	var inside atomic.Int32
	var overlapped atomic.Bool

	handler := func(int) {
		if inside.Add(1) != 1 {
			overlapped.Store(true)
		}
		inside.Add(-1)
	}

	a := reactive.Synchronize[int](reactive.NewObserver(handler, nil, nil), &gate)
	b := reactive.Synchronize[int](reactive.NewObserver(handler, nil, nil), &gate)

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 500; i++ {
			a.OnNext(i)
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < 500; i++ {
			b.OnNext(i)
		}
		return nil
	})
	require.NoError(t, g.Wait())

	assert.False(t, overlapped.Load())
}

func TestSynchronizedObserverKeepsGrammar(t *testing.T) {
	rec := newRecorder[int]()
	obs := reactive.Synchronize[int](rec)

	obs.OnNext(1)
	obs.OnError(errBoom)
	obs.OnNext(2)
	obs.OnCompleted()

	assert.Equal(t, []string{"Next(1)", "Error(boom)"}, rec.Strings())
}
