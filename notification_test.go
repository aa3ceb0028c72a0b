package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baxromumarov/reactive"
)

func TestNotificationAccessors(t *testing.T) {
	next := reactive.NextNotification("hello")
	assert.Equal(t, reactive.KindNext, next.Kind())
	assert.Equal(t, "hello", next.Value())
	assert.NoError(t, next.Err())

	fail := reactive.ErrorNotification[string](errBoom)
	assert.Equal(t, reactive.KindError, fail.Kind())
	assert.Equal(t, errBoom, fail.Err())

	done := reactive.CompletedNotification[string]()
	assert.Equal(t, reactive.KindCompleted, done.Kind())
}

func TestNotificationAcceptDispatchesToMatchingMethod(t *testing.T) {
	rec := newRecorder[int]()

	reactive.NextNotification(1).Accept(rec)
	reactive.NextNotification(2).Accept(rec)
	reactive.ErrorNotification[int](errBoom).Accept(rec)

	assert.Equal(t, []string{"Next(1)", "Next(2)", "Error(boom)"}, rec.Strings())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Next", reactive.KindNext.String())
	assert.Equal(t, "Error", reactive.KindError.String())
	assert.Equal(t, "Completed", reactive.KindCompleted.String())
}
