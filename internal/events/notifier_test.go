package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juanjsts/game-catalog-service/internal/config"
	"github.com/juanjsts/game-catalog-service/internal/observability"
)

func newTestNotifier(t *testing.T, registry *Registry) *Notifier {
	t.Helper()
	n := NewNotifier(registry, zap.NewNop(), observability.NewMetrics(), config.NotifyConfig{
		Workers:   2,
		QueueSize: 64,
	})
	n.Start()
	t.Cleanup(n.Close)
	return n
}

func TestNotifyWithEmptyRegistryIsNoop(t *testing.T) {
	n := newTestNotifier(t, NewRegistry(3))
	// must return immediately and not panic
	n.Notify(NewChangeEvent(EntityGames, ChangeCreate, map[string]string{"id": "game-1"}))
}

func TestNotifyReturnsBeforeDeliveryCompletes(t *testing.T) {
	registry := NewRegistry(3)
	release := make(chan struct{})
	delivered := make(chan struct{})
	registry.Register("slow", func([]byte) error {
		<-release
		close(delivered)
		return nil
	})

	n := newTestNotifier(t, registry)

	start := time.Now()
	n.Notify(NewChangeEvent(EntityGames, ChangeUpdate, map[string]string{"id": "game-42"}))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond, "notify must not wait for delivery")

	select {
	case <-delivered:
		t.Fatal("delivery completed before the sender was released")
	default:
	}

	close(release)
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("delivery never happened")
	}
}

func TestFailingChannelDoesNotAffectOthers(t *testing.T) {
	registry := NewRegistry(3)

	registry.Register("a", func([]byte) error {
		return errors.New("connection closed")
	})

	received := make(chan []byte, 1)
	registry.Register("b", func(payload []byte) error {
		received <- payload
		return nil
	})

	n := newTestNotifier(t, registry)
	n.Notify(NewChangeEvent(EntityGames, ChangeUpdate, map[string]string{"id": "game-42"}))

	select {
	case payload := <-received:
		assert.Contains(t, string(payload), `"kind":"UPDATE"`)
		assert.Contains(t, string(payload), "game-42")
	case <-time.After(time.Second):
		t.Fatal("channel b never received the event")
	}
}

func TestRepeatedFailuresEvictChannel(t *testing.T) {
	registry := NewRegistry(3)

	var mu sync.Mutex
	failures := 0
	registry.Register("flaky", func([]byte) error {
		mu.Lock()
		failures++
		mu.Unlock()
		return errors.New("write error")
	})

	n := newTestNotifier(t, registry)

	for i := 0; i < 5; i++ {
		n.Notify(NewChangeEvent(EntityPlayers, ChangeDelete, map[string]int{"seq": i}))
		// let the workers drain between events so failures are counted in order
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return failures > i || registry.Len() == 0
		}, time.Second, time.Millisecond)
	}

	assert.Equal(t, 0, registry.Len(), "channel should be evicted after 3 consecutive failures")
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, failures)
}

func TestSerializationFailureAbandonsDispatch(t *testing.T) {
	registry := NewRegistry(3)
	received := make(chan struct{}, 1)
	registry.Register("a", func([]byte) error {
		received <- struct{}{}
		return nil
	})

	n := newTestNotifier(t, registry)
	// channels cannot be marshalled to JSON
	n.Notify(NewChangeEvent(EntityGames, ChangeCreate, map[string]any{"bad": make(chan int)}))

	select {
	case <-received:
		t.Fatal("no delivery should happen for an unserializable event")
	case <-time.After(50 * time.Millisecond):
	}
}
