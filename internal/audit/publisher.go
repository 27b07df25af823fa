package audit

import (
	"context"
	"errors"

	"pushgraph/pkg/requestcontext"
)

// ErrQueueFull is returned by a queued Publisher whose worker is behind.
var ErrQueueFull = errors.New("audit queue full")

// Store persists events. Implementations: store/memory, kafka.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and either
// writes through to the store or hands events to a Worker.
type Publisher struct {
	store Store
	inbox chan<- Event
}

type Option func(*Publisher)

// WithQueue makes Emit enqueue into inbox instead of writing to the store.
// A Worker must drain the other end.
func WithQueue(inbox chan<- Event) Option {
	return func(p *Publisher) {
		p.inbox = inbox
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stamps the event with the request time and id, then stores or queues
// it. Queued emits never block.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		default:
			return ErrQueueFull
		}
	}
	return p.store.Append(ctx, event)
}
