package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"pushgraph/internal/graph"
	"pushgraph/internal/user/metrics"
	"pushgraph/internal/user/models"
	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/rdf"
	"pushgraph/pkg/requestcontext"
)

// Graph is the read side of the graph model.
type Graph interface {
	Select(ctx context.Context, q graph.Query) ([]graph.Binding, error)
}

// Cache stores resolved users by IRI.
type Cache interface {
	Get(ctx context.Context, uri rdf.IRI) (*models.User, bool, error)
	Put(ctx context.Context, user *models.User) error
}

// Service resolves account IRIs to users and persons to accounts.
type Service struct {
	graph   Graph
	minter  *rdf.Minter
	cache   Cache
	group   singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service. cache is required; use cache.NewInMemory for a
// process-local one.
func New(g Graph, minter *rdf.Minter, cache Cache, opts ...Option) (*Service, error) {
	if g == nil {
		return nil, errors.New("graph is required")
	}
	if minter == nil {
		return nil, errors.New("uri minter is required")
	}
	if cache == nil {
		return nil, errors.New("user cache is required")
	}
	s := &Service{graph: g, minter: minter, cache: cache, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resolve returns the user behind uri. An empty uri means the session user:
// its IRI is minted from the session id, which doubles as the account name.
// Otherwise the name is read from foaf:accountName, defaulting to "unknown".
// Concurrent misses for one IRI share a single store lookup.
func (s *Service) Resolve(ctx context.Context, uri rdf.IRI) (*models.User, error) {
	start := time.Now()
	defer s.observeResolve(start)

	sessionName := ""
	if uri.IsZero() {
		userID := requestcontext.UserID(ctx)
		if userID == "" {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "no session user")
		}
		uri = s.minter.UserURI(userID)
		sessionName = userID
	}

	cached, ok, err := s.cache.Get(ctx, uri)
	switch {
	case err != nil:
		s.incrementCache("error")
		s.logger.WarnContext(ctx, "user cache read failed",
			"user_uri", uri.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	case ok:
		s.incrementCache("hit")
		return cached, nil
	default:
		s.incrementCache("miss")
	}

	v, err, _ := s.group.Do(uri.String(), func() (any, error) {
		name := sessionName
		if name == "" {
			var lookupErr error
			name, lookupErr = s.accountName(ctx, uri)
			if lookupErr != nil {
				return nil, lookupErr
			}
		}
		user := &models.User{URI: uri, Name: name}
		if err := s.cache.Put(ctx, user); err != nil {
			s.logger.WarnContext(ctx, "user cache write failed",
				"user_uri", uri.String(),
				"error", err,
			)
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}
	user := *v.(*models.User)
	return &user, nil
}

// Invalidate is the cache invalidation hook. Account IRIs are immutable once
// minted, so resolved users are kept for the life of the process and this is
// a no-op.
func (s *Service) Invalidate(_ context.Context, _ rdf.IRI) {}

func (s *Service) accountName(ctx context.Context, uri rdf.IRI) (string, error) {
	rows, err := s.graph.Select(ctx, graph.Select("name").
		Where(graph.U(uri), graph.U(rdf.FOAFAccountName), graph.V("name")).
		WithLimit(1))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to look up account name")
	}
	if len(rows) == 0 {
		return models.UnknownName, nil
	}
	name, ok := rows[0].Value("name")
	if !ok {
		return models.UnknownName, nil
	}
	return name, nil
}

// ResolveAccountForPerson returns the account a person profile points to via
// foaf:account. found is false when the person has none.
func (s *Service) ResolveAccountForPerson(ctx context.Context, person rdf.IRI) (rdf.IRI, bool, error) {
	rows, err := s.graph.Select(ctx, graph.Select("account").
		Where(graph.U(person), graph.U(rdf.FOAFAccount), graph.V("account")))
	if err != nil {
		return "", false, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to look up person account")
	}
	for _, row := range rows {
		if account, ok := row.IRI("account"); ok {
			return account, true, nil
		}
	}
	return "", false, nil
}

// TypeOf returns the first rdf:type of resource. found is false for untyped
// resources.
func (s *Service) TypeOf(ctx context.Context, resource rdf.IRI) (rdf.IRI, bool, error) {
	rows, err := s.graph.Select(ctx, graph.Select("type").
		Where(graph.U(resource), graph.U(rdf.RDFType), graph.V("type")))
	if err != nil {
		return "", false, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to look up resource type")
	}
	for _, row := range rows {
		if t, ok := row.IRI("type"); ok {
			return t, true, nil
		}
	}
	return "", false, nil
}

// IsPerson reports whether resource is typed foaf:Person.
func (s *Service) IsPerson(ctx context.Context, resource rdf.IRI) (bool, error) {
	rows, err := s.graph.Select(ctx, graph.Select("type").
		Where(graph.U(resource), graph.U(rdf.RDFType), graph.V("type")))
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to look up resource type")
	}
	for _, row := range rows {
		if t, ok := row.IRI("type"); ok && t == rdf.FOAFPerson {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) incrementCache(result string) {
	if s.metrics != nil {
		s.metrics.IncrementCache(result)
	}
}

func (s *Service) observeResolve(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveResolve(start)
	}
}
