package events

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/juanjsts/game-catalog-service/internal/config"
	"github.com/juanjsts/game-catalog-service/internal/observability"
)

// Notifier fans committed change events out to every registered channel.
// Dispatch runs on a fixed pool of workers fed by a bounded queue, so the
// mutating request never blocks on delivery and never sees a delivery
// error.
type Notifier struct {
	registry *Registry
	logger   *zap.Logger
	metrics  *observability.Metrics
	queue    chan delivery
	done     chan struct{}
	wg       sync.WaitGroup
	workers  int

	closeOnce sync.Once
}

type delivery struct {
	channelID string
	send      SendFunc
	payload   []byte
}

// NewNotifier constructs a notifier. Call Start before the first Notify
// and Close on shutdown.
func NewNotifier(registry *Registry, logger *zap.Logger, metrics *observability.Metrics, cfg config.NotifyConfig) *Notifier {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = 256
	}
	return &Notifier{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		queue:    make(chan delivery, queueSize),
		done:     make(chan struct{}),
		workers:  workers,
	}
}

// Start launches the dispatch workers.
func (n *Notifier) Start() {
	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
}

// Close stops the workers. In-flight deliveries may be dropped; delivery
// is best-effort.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.done)
	})
	n.wg.Wait()
}

// Notify serializes the event once and enqueues one delivery per
// registered channel. It returns without waiting for any send to
// complete. A full queue drops the delivery rather than blocking the
// caller.
func (n *Notifier) Notify(event ChangeEvent) {
	channels := n.registry.Snapshot()
	if len(channels) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("change event serialization failed",
			zap.String("entity", string(event.Entity)),
			zap.String("kind", string(event.Kind)),
			zap.Error(err))
		return
	}

	for _, ch := range channels {
		select {
		case n.queue <- delivery{channelID: ch.ID, send: ch.Send, payload: payload}:
		case <-n.done:
			return
		default:
			n.metrics.RecordDrop()
			n.logger.Warn("dispatch queue full; dropping delivery",
				zap.String("channel_id", ch.ID),
				zap.String("entity", string(event.Entity)))
		}
	}
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for {
		select {
		case <-n.done:
			return
		case d := <-n.queue:
			n.deliver(d)
		}
	}
}

func (n *Notifier) deliver(d delivery) {
	if err := d.send(d.payload); err != nil {
		n.metrics.RecordDispatch(false)
		evicted := n.registry.RecordFailure(d.channelID)
		if evicted {
			n.metrics.RecordEviction()
		}
		n.logger.Warn("change event delivery failed",
			zap.String("channel_id", d.channelID),
			zap.Bool("evicted", evicted),
			zap.Error(err))
		return
	}
	n.metrics.RecordDispatch(true)
	n.registry.RecordSuccess(d.channelID)
}
