package worker

import (
	"github.com/juanjsts/game-catalog-service/internal/events"
)

// StartDispatchWorkers launches the change-event dispatch pool. The
// returned stop function drains the workers on shutdown.
func StartDispatchWorkers(notifier *events.Notifier) (stop func()) {
	if notifier == nil {
		return func() {}
	}
	notifier.Start()
	return notifier.Close
}
