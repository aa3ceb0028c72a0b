package reactive_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/reactive"
)

// countDisposable counts raw Dispose calls, deliberately without its own
// idempotence, so the tests observe exactly how often the wrapper releases
// the subscription.
type countDisposable struct {
	n atomic.Int32
}

func (d *countDisposable) Dispose() { d.n.Add(1) }

func TestAutoDetachReleasesOnCompleted(t *testing.T) {
	rec := newRecorder[int]()
	sub := &countDisposable{}

	obs := reactive.MakeSafe[int](rec)
	obs.SetDisposable(sub)

	obs.OnNext(1)
	obs.OnCompleted()

	assert.Equal(t, []string{"Next(1)", "Completed"}, rec.Strings())
	assert.Equal(t, int32(1), sub.n.Load())

	// Further teardown must not release again.
	obs.Dispose()
	assert.Equal(t, int32(1), sub.n.Load())
}

func TestAutoDetachReleasesOnError(t *testing.T) {
	rec := newRecorder[int]()
	sub := &countDisposable{}

	obs := reactive.NewAutoDetachObserver[int](rec, sub)
	obs.OnError(errBoom)

	assert.Equal(t, []string{"Error(boom)"}, rec.Strings())
	assert.Equal(t, int32(1), sub.n.Load())
}

func TestAutoDetachReleasesWhenDeliveryPanics(t *testing.T) {
	sub := &countDisposable{}
	inner := reactive.NewObserver(
		func(int) { panic(errBoom) },
		nil, nil,
	)

	obs := reactive.NewAutoDetachObserver[int](inner, sub)
	require.Panics(t, func() { obs.OnNext(1) })

	assert.Equal(t, int32(1), sub.n.Load())
	assert.True(t, obs.IsStopped(), "a panicking delivery stops the wrapper")

	// The chain is dead; nothing further is forwarded or released.
	obs.OnNext(2)
	obs.OnCompleted()
	assert.Equal(t, int32(1), sub.n.Load())
}

func TestAutoDetachSetDisposableAfterTerminationDisposesImmediately(t *testing.T) {
	obs := reactive.MakeSafe[int](newRecorder[int]())
	obs.OnCompleted()

	sub := &countDisposable{}
	obs.SetDisposable(sub)
	assert.Equal(t, int32(1), sub.n.Load())
}

func TestAutoDetachSecondAssignmentPanics(t *testing.T) {
	obs := reactive.MakeSafe[int](newRecorder[int]())
	obs.SetDisposable(&countDisposable{})

	require.Panics(t, func() {
		obs.SetDisposable(&countDisposable{})
	})
}
