package reactive_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/reactive"
)

var errBoom = errors.New("boom")

func TestObserverGrammarTerminalIsIdempotent(t *testing.T) {
	rec := newRecorder[int]()
	obs := reactive.NewObserver(rec.OnNext, rec.OnError, rec.OnCompleted)

	obs.OnNext(1)
	obs.OnCompleted()

	// Everything after the terminal is a no-op.
	obs.OnNext(2)
	obs.OnCompleted()
	obs.OnError(errBoom)

	assert.Equal(t, []string{"Next(1)", "Completed"}, rec.Strings())
}

func TestObserverGrammarErrorWinsOnce(t *testing.T) {
	rec := newRecorder[int]()
	obs := reactive.NewObserver(rec.OnNext, rec.OnError, rec.OnCompleted)

	obs.OnError(errBoom)
	obs.OnError(errors.New("second"))
	obs.OnNext(1)

	require.Equal(t, []string{"Error(boom)"}, rec.Strings())
}

func TestObserverDisposeStopsWithoutForwarding(t *testing.T) {
	rec := newRecorder[int]()
	obs := reactive.NewObserver(rec.OnNext, rec.OnError, rec.OnCompleted)

	obs.OnNext(1)
	obs.Dispose()
	obs.OnNext(2)
	obs.OnCompleted()

	assert.Equal(t, []string{"Next(1)"}, rec.Strings())
	assert.True(t, obs.IsStopped())
}

// For all interleavings of concurrent terminal calls, exactly one delivery
// reaches the inner handler.
func TestObserverConcurrentTerminalsExactlyOne(t *testing.T) {
	for k := 0; k < 200; k++ {
		var terminals atomic.Int32
		obs := reactive.NewObserver(
			func(int) {},
			func(error) { terminals.Add(1) },
			func() { terminals.Add(1) },
		)

		var g errgroup.Group
		g.Go(func() error { obs.OnError(errBoom); return nil })
		g.Go(func() error { obs.OnCompleted(); return nil })
		g.Go(func() error { obs.OnCompleted(); return nil })
		require.NoError(t, g.Wait())

		require.Equal(t, int32(1), terminals.Load())
	}
}

func TestObserverFailReportsWinnerExactlyOnce(t *testing.T) {
	const callers = 8

	var delivered atomic.Int32
	obs := reactive.NewObserver(
		func(int) {},
		func(error) { delivered.Add(1) },
		nil,
	)

	var wins atomic.Int32
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if obs.Fail(errBoom) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(1), delivered.Load())
	assert.False(t, obs.Fail(errBoom), "stopped observer must report false")
}

func TestNewObserverDefaultsNilHandlers(t *testing.T) {
	// Nil next and completed handlers are no-ops.
	obs := reactive.NewObserver[int](nil, func(error) {}, nil)
	obs.OnNext(1)
	obs.OnCompleted()

	// The default error handler panics with the delivered error.
	fresh := reactive.NewObserver[int](nil, nil, nil)
	require.PanicsWithError(t, errBoom.Error(), func() {
		fresh.OnError(errBoom)
	})
}

func TestFromNotifierAndToNotifierRoundTrip(t *testing.T) {
	var seen []string
	obs := reactive.FromNotifier(func(n reactive.Notification[int]) {
		seen = append(seen, n.String())
	})

	notify := reactive.ToNotifier[int](obs)
	notify(reactive.NextNotification(7))
	notify(reactive.CompletedNotification[int]())
	notify(reactive.NextNotification(8)) // after terminal: dropped by grammar

	assert.Equal(t, []string{"Next(7)", "Completed"}, seen)
}

func TestAsObserverHidesConcreteType(t *testing.T) {
	rec := newRecorder[int]()
	wrapped := reactive.AsObserver[int](rec)

	_, isRecorder := wrapped.(*recorder[int])
	assert.False(t, isRecorder)

	wrapped.OnNext(42)
	wrapped.OnCompleted()
	assert.Equal(t, []string{"Next(42)", "Completed"}, rec.Strings())
}
