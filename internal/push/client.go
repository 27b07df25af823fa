// Package push is the WebSub subscriber side: it asks a hub to start
// delivering a topic to this application's callback.
package push

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pushgraph/internal/push/metrics"
	"pushgraph/pkg/platform/circuit"
	"pushgraph/pkg/rdf"
)

// ErrHubRejected is returned when the hub answers with a non-2xx status.
var ErrHubRejected = errors.New("hub rejected subscription")

var tracer = otel.Tracer("pushgraph/internal/push")

// Request names the hub to contact and the topic to subscribe to.
type Request struct {
	Hub      rdf.IRI
	Topic    rdf.IRI
	Callback rdf.IRI
}

// Client sends subscribe requests to WebSub hubs.
type Client struct {
	http         *http.Client
	timeout      time.Duration
	leaseSeconds int
	secret       string
	breaker      *circuit.Breaker
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout bounds each subscribe call. Zero keeps the 10s default.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithLease asks hubs for a lease of n seconds.
func WithLease(n int) Option {
	return func(cl *Client) {
		cl.leaseSeconds = n
	}
}

// WithSecret sets hub.secret for authenticated content distribution.
func WithSecret(secret string) Option {
	return func(cl *Client) {
		cl.secret = secret
	}
}

// WithBreaker installs a circuit breaker around hub calls.
func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) {
		cl.breaker = b
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient builds a hub client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		timeout: 10 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe performs the subscribe request. The hub verifies intent
// asynchronously against the callback; a 2xx answer (normally 202) means the
// request was accepted. A timeout surfaces as context.DeadlineExceeded.
func (c *Client) Subscribe(ctx context.Context, req Request) error {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "push.Subscribe")
	defer span.End()
	span.SetAttributes(
		attribute.String("websub.hub", req.Hub.String()),
		attribute.String("websub.topic", req.Topic.String()),
	)

	if c.breaker != nil && !c.breaker.Allow() {
		c.observe(metrics.OutcomeCircuitOpen, start)
		span.SetStatus(codes.Error, "circuit open")
		return fmt.Errorf("hub %s: %w", req.Hub, circuit.ErrOpen)
	}

	err := c.send(ctx, req)
	c.record(ctx, err)
	switch {
	case err == nil:
		c.observe(metrics.OutcomeAccepted, start)
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		c.observe(metrics.OutcomeTimeout, start)
	case errors.Is(err, ErrHubRejected):
		c.observe(metrics.OutcomeRejected, start)
	default:
		c.observe(metrics.OutcomeUnreachable, start)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (c *Client) send(ctx context.Context, req Request) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{
		"hub.mode":     {"subscribe"},
		"hub.topic":    {req.Topic.String()},
		"hub.callback": {req.Callback.String()},
	}
	if c.leaseSeconds > 0 {
		form.Set("hub.lease_seconds", strconv.Itoa(c.leaseSeconds))
	}
	if c.secret != "" {
		form.Set("hub.secret", c.secret)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Hub.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build hub request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("hub %s: %w", req.Hub, ctx.Err())
		}
		return fmt.Errorf("hub %s: %w", req.Hub, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s answered %d: %s", ErrHubRejected, req.Hub, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (c *Client) record(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	if err == nil {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "hub circuit closed", "breaker", c.breaker.Name())
			c.setCircuit(false)
		}
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "hub circuit opened", "breaker", c.breaker.Name(), "error", err)
		c.setCircuit(true)
	}
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(outcome, start)
	}
}

func (c *Client) setCircuit(open bool) {
	if c.metrics != nil {
		c.metrics.SetCircuitOpen(open)
	}
}
