package logstore

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushgraph/internal/audit"
)

func TestAppendLogsWithoutRetaining(t *testing.T) {
	var buf bytes.Buffer
	store := New(slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, audit.Event{
		Action:     audit.EventSubscriptionCreated,
		Subscriber: "http://x/u1",
		Topic:      "http://x/f1",
		RequestID:  "req-1",
	}))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "audit event", record["msg"])
	assert.Equal(t, "audit", record["component"])
	assert.Equal(t, "subscription_created", record["action"])
	assert.Equal(t, "http://x/u1", record["subscriber"])
	assert.Equal(t, "http://x/f1", record["topic"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.NotContains(t, record, "hub", "empty fields are omitted")
}

func TestPublisherOverLogStore(t *testing.T) {
	var buf bytes.Buffer
	p := audit.NewPublisher(New(slog.New(slog.NewJSONHandler(&buf, nil))))

	for range 3 {
		require.NoError(t, p.Emit(context.Background(), audit.Event{Action: audit.EventAlreadySubscribed}))
	}
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
}
