package events

import "sync"

// SendFunc delivers a serialized event to one connected client.
type SendFunc func(payload []byte) error

// Channel is a snapshot entry handed to the dispatcher.
type Channel struct {
	ID   string
	Send SendFunc
}

// Registry tracks the live outbound channels interested in change
// events. Safe for concurrent register/unregister/snapshot; snapshot
// iteration may race benignly with membership changes.
type Registry struct {
	mu          sync.RWMutex
	channels    map[string]*channelEntry
	maxFailures int
}

type channelEntry struct {
	id       string
	send     SendFunc
	failures int
}

// NewRegistry builds a registry. A channel is evicted after maxFailures
// consecutive delivery failures; a successful delivery resets the count.
func NewRegistry(maxFailures int) *Registry {
	if maxFailures < 1 {
		maxFailures = 3
	}
	return &Registry{
		channels:    make(map[string]*channelEntry),
		maxFailures: maxFailures,
	}
}

// Register adds a channel. Re-registering an ID replaces its send
// function and resets its failure count.
func (r *Registry) Register(id string, send SendFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[id] = &channelEntry{id: id, send: send}
}

// Unregister removes a channel. Removing an unknown ID is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, id)
}

// Snapshot returns the current channel set for iteration.
func (r *Registry) Snapshot() []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Channel, 0, len(r.channels))
	for _, entry := range r.channels {
		out = append(out, Channel{ID: entry.id, Send: entry.send})
	}
	return out
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// RecordSuccess resets the consecutive-failure count for a channel.
func (r *Registry) RecordSuccess(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.channels[id]; ok {
		entry.failures = 0
	}
}

// RecordFailure bumps the consecutive-failure count and evicts the
// channel once it reaches the threshold. Returns true when evicted.
func (r *Registry) RecordFailure(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.channels[id]
	if !ok {
		return false
	}
	entry.failures++
	if entry.failures >= r.maxFailures {
		delete(r.channels, id)
		return true
	}
	return false
}
