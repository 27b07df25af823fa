package audit

import (
	"time"

	"pushgraph/pkg/rdf"
)

// Action names a subscription lifecycle event.
type Action string

const (
	EventSubscriptionCreated Action = "subscription_created"
	EventAlreadySubscribed   Action = "subscription_exists"
	EventHubSubscribeFailed  Action = "hub_subscribe_failed"
	EventActivityFeedLinked  Action = "activity_feed_linked"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time `json:"timestamp"`
	Action       Action    `json:"action"`
	Subscriber   rdf.IRI   `json:"subscriber,omitempty"`
	Resource     rdf.IRI   `json:"resource,omitempty"`
	Topic        rdf.IRI   `json:"topic,omitempty"`
	Hub          rdf.IRI   `json:"hub,omitempty"`
	Subscription rdf.IRI   `json:"subscription,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
}
