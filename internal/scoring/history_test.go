package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historySnapshot(n int) Snapshot {
	return Snapshot{GamePoints: [2]int{n, 0}}
}

func TestHistoryPushPop(t *testing.T) {
	var h History

	_, ok := h.Pop()
	assert.False(t, ok, "empty ring has nothing to pop")

	h.Push(historySnapshot(1))
	h.Push(historySnapshot(2))
	assert.Equal(t, 2, h.Len())

	sn, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, sn.GamePoints[0], "pop returns the most recent snapshot")
	sn, ok = h.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, sn.GamePoints[0])
	assert.Equal(t, 0, h.Len())
}

func TestHistoryEvictsOldest(t *testing.T) {
	var h History
	for i := 1; i <= HistoryDepth+3; i++ {
		h.Push(historySnapshot(i))
	}
	assert.Equal(t, HistoryDepth, h.Len(), "ring never grows past its depth")

	// The newest HistoryDepth entries survive, newest first on pop.
	for want := HistoryDepth + 3; want > 3; want-- {
		sn, ok := h.Pop()
		require.True(t, ok)
		assert.Equal(t, want, sn.GamePoints[0])
	}
	_, ok := h.Pop()
	assert.False(t, ok, "evicted entries are unrecoverable")
}

func TestHistoryPushAfterPop(t *testing.T) {
	var h History
	h.Push(historySnapshot(1))
	h.Push(historySnapshot(2))
	_, ok := h.Pop()
	require.True(t, ok)

	h.Push(historySnapshot(3))
	sn, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, 3, sn.GamePoints[0])
	sn, ok = h.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, sn.GamePoints[0])
}

func TestHistoryJSONRoundTrip(t *testing.T) {
	var h History
	// Wrap the ring so the start offset is non-zero.
	for i := 1; i <= HistoryDepth+2; i++ {
		h.Push(historySnapshot(i))
	}

	data, err := json.Marshal(&h)
	require.NoError(t, err)

	var loaded History
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Equal(t, h.Len(), loaded.Len())

	for {
		want, ok := h.Pop()
		got, gotOK := loaded.Pop()
		require.Equal(t, ok, gotOK)
		if !ok {
			break
		}
		assert.Equal(t, want, got)
	}
}

func TestHistoryUnmarshalTruncatesToDepth(t *testing.T) {
	entries := make([]Snapshot, HistoryDepth+5)
	for i := range entries {
		entries[i] = historySnapshot(i + 1)
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)

	var h History
	require.NoError(t, json.Unmarshal(data, &h))
	assert.Equal(t, HistoryDepth, h.Len())

	sn, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, HistoryDepth+5, sn.GamePoints[0], "the newest entries win")
}
