package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pushgraph/internal/graph"
	"pushgraph/internal/notification/metrics"
	"pushgraph/internal/notification/models"
	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/rdf"
)

// Graph is the read side of the graph model.
type Graph interface {
	Select(ctx context.Context, q graph.Query) ([]graph.Binding, error)
}

// Index answers per-user reads over notifications and subscriptions. Every
// read is one query; a failing query fails the whole read.
type Index struct {
	graph   Graph
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Index)

func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) {
		i.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(i *Index) {
		i.metrics = m
	}
}

func New(g Graph, opts ...Option) (*Index, error) {
	if g == nil {
		return nil, errors.New("graph is required")
	}
	i := &Index{graph: g, logger: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// GetNotifications returns the notifications targeting user keyed by their
// IRI. Repeated rows for one notification collapse into one entry.
func (i *Index) GetNotifications(ctx context.Context, user rdf.IRI) (map[rdf.IRI]*models.Notification, error) {
	defer i.observe(metrics.QueryNotifications, time.Now())

	rows, err := i.graph.Select(ctx, graph.Select("uri").
		Where(graph.V("uri"), graph.U(rdf.DSSNNotify), graph.U(user)))
	if err != nil {
		return nil, i.fail(metrics.QueryNotifications, err, "failed to list notifications")
	}

	notifications := make(map[rdf.IRI]*models.Notification, len(rows))
	for _, row := range rows {
		uri, ok := row.IRI("uri")
		if !ok {
			continue
		}
		if _, seen := notifications[uri]; seen {
			continue
		}
		n, err := i.notification(ctx, uri)
		if err != nil {
			return nil, i.fail(metrics.QueryNotifications, err, "failed to load notification")
		}
		notifications[uri] = n
	}
	return notifications, nil
}

// notification materializes uri from all of its own triples.
func (i *Index) notification(ctx context.Context, uri rdf.IRI) (*models.Notification, error) {
	rows, err := i.graph.Select(ctx, graph.Select("p", "o").
		Where(graph.U(uri), graph.V("p"), graph.V("o")))
	if err != nil {
		return nil, err
	}
	props := make(map[rdf.IRI][]rdf.Term)
	for _, row := range rows {
		p, ok := row.IRI("p")
		if !ok {
			continue
		}
		props[p] = append(props[p], row["o"])
	}
	return models.FromProperties(uri, props), nil
}

// GetSubscriptions returns the topics user is subscribed to in store order.
func (i *Index) GetSubscriptions(ctx context.Context, user rdf.IRI) ([]rdf.IRI, error) {
	defer i.observe(metrics.QuerySubscriptions, time.Now())

	rows, err := i.graph.Select(ctx, graph.Select("feedUri").
		Where(graph.U(user), graph.U(rdf.DSSNSubscribedTo), graph.V("subUri")).
		Where(graph.V("subUri"), graph.U(rdf.DSSNSubscriptionTopic), graph.V("feedUri")))
	if err != nil {
		return nil, i.fail(metrics.QuerySubscriptions, err, "failed to list subscriptions")
	}
	feeds := make([]rdf.IRI, 0, len(rows))
	for _, row := range rows {
		if feed, ok := row.IRI("feedUri"); ok {
			feeds = append(feeds, feed)
		}
	}
	return feeds, nil
}

// GetSubscriptionResources returns the distinct resources whose activity feed
// user is subscribed to.
func (i *Index) GetSubscriptionResources(ctx context.Context, user rdf.IRI) ([]rdf.IRI, error) {
	defer i.observe(metrics.QueryResources, time.Now())

	rows, err := i.graph.Select(ctx, graph.Select("resUri").
		Where(graph.U(user), graph.U(rdf.DSSNSubscribedTo), graph.V("subUri")).
		Where(graph.V("subUri"), graph.U(rdf.DSSNSubscriptionTopic), graph.V("feedUri")).
		Where(graph.V("resUri"), graph.U(rdf.DSSNActivityFeed), graph.V("feedUri")).
		WithDistinct())
	if err != nil {
		return nil, i.fail(metrics.QueryResources, err, "failed to list subscribed resources")
	}
	resources := make([]rdf.IRI, 0, len(rows))
	for _, row := range rows {
		if res, ok := row.IRI("resUri"); ok {
			resources = append(resources, res)
		}
	}
	return resources, nil
}

func (i *Index) fail(query string, err error, msg string) error {
	if i.metrics != nil {
		i.metrics.IncrementError(query)
	}
	return dErrors.Wrap(err, dErrors.CodeStoreFailure, msg)
}

func (i *Index) observe(query string, start time.Time) {
	if i.metrics != nil {
		i.metrics.ObserveQuery(query, start)
	}
}
