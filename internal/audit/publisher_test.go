package audit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushgraph/internal/audit"
	"pushgraph/internal/audit/store/memory"
	"pushgraph/pkg/requestcontext"
)

func TestPublisherWritesThrough(t *testing.T) {
	store := memory.NewInMemoryStore()
	p := audit.NewPublisher(store)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(requestcontext.WithRequestID(context.Background(), "req-1"), now)
	require.NoError(t, p.Emit(ctx, audit.Event{Action: audit.EventSubscriptionCreated, Subscriber: "http://x/u1"}))

	events, err := store.ListBySubscriber(ctx, "http://x/u1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "req-1", events[0].RequestID)
}

func TestPublisherQueue(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan audit.Event, 1)
	p := audit.NewPublisher(store, audit.WithQueue(inbox))
	ctx := context.Background()

	require.NoError(t, p.Emit(ctx, audit.Event{Action: audit.EventSubscriptionCreated, Subscriber: "http://x/u1"}))
	assert.ErrorIs(t, p.Emit(ctx, audit.Event{Action: audit.EventSubscriptionCreated}), audit.ErrQueueFull)

	all, _ := store.ListAll(ctx)
	assert.Empty(t, all, "queued events are written by the worker")

	close(inbox)
	var logs bytes.Buffer
	worker := audit.NewWorker(store, inbox, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, worker.Run(ctx))

	all, _ = store.ListAll(ctx)
	assert.Len(t, all, 1)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("broker unavailable")
}

func TestWorkerKeepsGoingOnStoreErrors(t *testing.T) {
	inbox := make(chan audit.Event, 2)
	inbox <- audit.Event{Action: audit.EventSubscriptionCreated}
	inbox <- audit.Event{Action: audit.EventHubSubscribeFailed}
	close(inbox)

	var logs bytes.Buffer
	worker := audit.NewWorker(failingStore{}, inbox, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, worker.Run(context.Background()))
	assert.Equal(t, 2, bytes.Count(logs.Bytes(), []byte("failed to persist audit event")))
}

func TestWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker := audit.NewWorker(memory.NewInMemoryStore(), make(chan audit.Event), slog.Default())
	assert.ErrorIs(t, worker.Run(ctx), context.Canceled)
}
