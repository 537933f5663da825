package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func noopSend([]byte) error { return nil }

func TestRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry(3)
	r.Register("a", noopSend)
	r.Register("a", noopSend)
	assert.Equal(t, 1, r.Len())
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	r := NewRegistry(3)
	r.Unregister("missing")
	r.Register("a", noopSend)
	r.Unregister("a")
	r.Unregister("a")
	assert.Equal(t, 0, r.Len())
}

func TestSnapshotReturnsAllChannels(t *testing.T) {
	r := NewRegistry(3)
	r.Register("a", noopSend)
	r.Register("b", noopSend)

	snap := r.Snapshot()
	assert.Len(t, snap, 2)
	ids := map[string]bool{}
	for _, ch := range snap {
		ids[ch.ID] = true
	}
	assert.True(t, ids["a"])
	assert.True(t, ids["b"])
}

func TestFailureThresholdEvicts(t *testing.T) {
	r := NewRegistry(3)
	r.Register("a", noopSend)

	assert.False(t, r.RecordFailure("a"))
	assert.False(t, r.RecordFailure("a"))
	assert.True(t, r.RecordFailure("a"))
	assert.Equal(t, 0, r.Len())

	// further failures on the evicted channel are no-ops
	assert.False(t, r.RecordFailure("a"))
}

func TestSuccessResetsFailureCount(t *testing.T) {
	r := NewRegistry(3)
	r.Register("a", noopSend)

	r.RecordFailure("a")
	r.RecordFailure("a")
	r.RecordSuccess("a")
	assert.False(t, r.RecordFailure("a"))
	assert.False(t, r.RecordFailure("a"))
	assert.True(t, r.RecordFailure("a"))
}

func TestConcurrentMutationAndSnapshot(t *testing.T) {
	r := NewRegistry(3)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%8))
			for j := 0; j < 200; j++ {
				r.Register(id, noopSend)
				_ = r.Snapshot()
				r.Unregister(id)
			}
		}(i)
	}
	wg.Wait()
}
