package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingQueueFIFO(t *testing.T) {
	var q pendingQueue[int]

	_, ok := q.tryDequeue()
	assert.False(t, ok)
	assert.True(t, q.empty())

	for i := 0; i < 5; i++ {
		q.enqueue(i)
	}
	assert.False(t, q.empty())

	for want := 0; want < 5; want++ {
		got, ok := q.tryDequeue()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, q.empty())
}

func TestPendingQueueInterleaved(t *testing.T) {
	var q pendingQueue[int]

	// Keep a rolling window alive long enough to cross the compaction
	// threshold several times; order must survive every compaction.
	next := 0
	for i := 0; i < 500; i++ {
		q.enqueue(i)
		if i%3 == 0 {
			continue
		}
		got, ok := q.tryDequeue()
		require.True(t, ok)
		require.Equal(t, next, got)
		next++
	}
	for {
		got, ok := q.tryDequeue()
		if !ok {
			break
		}
		require.Equal(t, next, got)
		next++
	}
	assert.Equal(t, 500, next)
	assert.True(t, q.empty())
}

func TestPendingQueueClear(t *testing.T) {
	var q pendingQueue[int]
	q.enqueue(1)
	q.enqueue(2)

	q.clear()

	assert.True(t, q.empty())
	_, ok := q.tryDequeue()
	assert.False(t, ok)

	q.enqueue(3)
	got, ok := q.tryDequeue()
	require.True(t, ok)
	assert.Equal(t, 3, got)
}
