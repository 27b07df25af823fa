// Package logstore writes audit events as structured log records. It is the
// sink used when no broker is configured: nothing is retained in process.
package logstore

import (
	"context"
	"log/slog"

	"pushgraph/internal/audit"
)

type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger.With("component", "audit")}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	attrs := []slog.Attr{
		slog.String("action", string(event.Action)),
		slog.Time("timestamp", event.Timestamp),
	}
	add := func(key, value string) {
		if value != "" {
			attrs = append(attrs, slog.String(key, value))
		}
	}
	add("subscriber", event.Subscriber.String())
	add("resource", event.Resource.String())
	add("topic", event.Topic.String())
	add("hub", event.Hub.String())
	add("subscription", event.Subscription.String())
	add("reason", event.Reason)
	add("request_id", event.RequestID)

	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit event", attrs...)
	return nil
}
