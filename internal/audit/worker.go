package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. Failed
// appends are logged and dropped so a broker outage never stalls requests.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until ctx is done or the inbox is closed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit event",
					"action", string(event.Action),
					"subscriber", event.Subscriber.String(),
					"request_id", event.RequestID,
					"error", err,
				)
			}
		}
	}
}
