//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"pushgraph/internal/audit"
	"pushgraph/internal/audit/kafka"
	"pushgraph/pkg/testutil/containers"
)

type KafkaStoreSuite struct {
	suite.Suite
	brokers []string
	ctx     context.Context
}

func TestKafkaStoreSuite(t *testing.T) {
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.brokers = containers.GetManager().GetRedpanda(s.T()).Brokers
	s.ctx = context.Background()
}

func (s *KafkaStoreSuite) TestAppendProducesKeyedJSON() {
	const topic = "pushgraph.audit.test"
	store, err := kafka.New(s.brokers, topic)
	s.Require().NoError(err)
	defer store.Close()

	s.Require().NoError(store.EnsureTopic(s.ctx, 1, 1))
	s.Require().NoError(store.EnsureTopic(s.ctx, 1, 1), "existing topics are fine")

	event := audit.Event{
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Action:     audit.EventSubscriptionCreated,
		Subscriber: "http://x/u1",
		Topic:      "http://x/f1",
	}
	s.Require().NoError(store.Append(s.ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollRecords(ctx, 1)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal("http://x/u1", string(records[0].Key))

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(event, got)
}
