package notifier

import (
	"context"

	"slotify/utils"

	"go.uber.org/zap"
)

// Dispatcher delivers a named event to the notification collaborator.
// Delivery is fire-and-forget from the booking core's point of view: the
// event worker retries, but booking success never depends on it.
type Dispatcher interface {
	Send(ctx context.Context, event string, payload []byte) error
}

// LogDispatcher is the default transport-free dispatcher: it records the
// event and leaves delivery to whatever ships alongside the deployment
// (push, email, webhooks are all owned by the notification collaborator).
type LogDispatcher struct{}

func (d *LogDispatcher) Send(_ context.Context, event string, payload []byte) error {
	utils.GetLogger().Info("notification event",
		zap.String("event", event), zap.ByteString("payload", payload))
	return nil
}
