package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pushgraph/internal/audit"
	"pushgraph/internal/feed"
	"pushgraph/internal/graph"
	"pushgraph/internal/push"
	"pushgraph/internal/subscription/lock"
	"pushgraph/internal/subscription/metrics"
	"pushgraph/internal/subscription/models"
	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/platform/circuit"
	"pushgraph/pkg/platform/sentinel"
	"pushgraph/pkg/rdf"
	"pushgraph/pkg/requestcontext"
)

// Graph is the part of the graph model the registry needs.
type Graph interface {
	Ask(ctx context.Context, q graph.Query) (graph.Answer, error)
	Write(ctx context.Context, statements rdf.Statements) error
	AddStatement(ctx context.Context, subject, predicate rdf.IRI, object rdf.Term) error
}

// FeedResolver discovers the hub and canonical topic of a feed.
type FeedResolver interface {
	Resolve(ctx context.Context, feedURL rdf.IRI) (feed.Topic, error)
}

// HubClient performs the subscribe handshake with a push hub.
type HubClient interface {
	Subscribe(ctx context.Context, req push.Request) error
}

// FeedDeriver names the activity feed of a resource.
type FeedDeriver interface {
	DeriveFeedURI(resource rdf.IRI) rdf.IRI
}

// Accounts translates person profiles to the accounts that subscribe.
type Accounts interface {
	IsPerson(ctx context.Context, resource rdf.IRI) (bool, error)
	ResolveAccountForPerson(ctx context.Context, person rdf.IRI) (rdf.IRI, bool, error)
}

// Locker serializes work on one (subscriber, topic) key.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the subscription registry. It keeps at most one subscription per
// (subscriber, topic) pair and never records a subscription the hub did not
// accept.
type Service struct {
	graph          Graph
	feeds          FeedResolver
	hub            HubClient
	deriver        FeedDeriver
	accounts       Accounts
	minter         *rdf.Minter
	locker         Locker
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
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

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithLocker replaces the in-process keyed mutex, e.g. with a Redis lock
// shared by several instances.
func WithLocker(locker Locker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// Deps groups the collaborators New requires.
type Deps struct {
	Graph    Graph
	Feeds    FeedResolver
	Hub      HubClient
	Deriver  FeedDeriver
	Accounts Accounts
	Minter   *rdf.Minter
}

func New(deps Deps, opts ...Option) (*Service, error) {
	switch {
	case deps.Graph == nil:
		return nil, errors.New("graph is required")
	case deps.Feeds == nil:
		return nil, errors.New("feed resolver is required")
	case deps.Hub == nil:
		return nil, errors.New("hub client is required")
	case deps.Deriver == nil:
		return nil, errors.New("feed deriver is required")
	case deps.Accounts == nil:
		return nil, errors.New("account resolver is required")
	case deps.Minter == nil:
		return nil, errors.New("uri minter is required")
	}
	s := &Service{
		graph:    deps.Graph,
		feeds:    deps.Feeds,
		hub:      deps.Hub,
		deriver:  deps.Deriver,
		accounts: deps.Accounts,
		minter:   deps.Minter,
		locker:   lock.NewKeyedMutex(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// outcome is what one subscribe attempt settled on.
type outcome struct {
	created    bool
	subscriber rdf.IRI
	topic      feed.Topic
}

// Subscribe subscribes subscriberRef to feedURL. A person is replaced by its
// account first. created is false when the pair was already subscribed.
func (s *Service) Subscribe(ctx context.Context, subscriberRef, feedURL rdf.IRI) (bool, error) {
	out, err := s.subscribe(ctx, subscriberRef, feedURL)
	if err != nil {
		return false, err
	}
	return out.created, nil
}

// SubscribeResourceToFeed links resource to its activity feed and subscribes
// subscriberRef to that feed. A zero feedURL is derived from the resource.
func (s *Service) SubscribeResourceToFeed(ctx context.Context, subscriberRef, resource, feedURL rdf.IRI) (*models.Result, error) {
	if resource.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "resource is required")
	}
	if subscriberRef.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "subscriber is required")
	}
	if feedURL.IsZero() {
		feedURL = s.deriver.DeriveFeedURI(resource)
	}
	if err := s.graph.AddStatement(ctx, resource, rdf.DSSNActivityFeed, rdf.URI(feedURL)); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to record activity feed")
	}
	s.logAudit(ctx, audit.Event{
		Action:   audit.EventActivityFeedLinked,
		Resource: resource,
		Topic:    feedURL,
	})

	out, err := s.subscribe(ctx, subscriberRef, feedURL)
	if err != nil {
		return nil, err
	}
	return &models.Result{
		Created:    out.created,
		Subscriber: out.subscriber,
		Resource:   resource,
		Feed:       feedURL,
		Topic:      out.topic.Self,
		Hub:        out.topic.Hub,
	}, nil
}

// IsSubscribed reports whether subscriber holds a subscription for topic. An
// answer that is neither a clean boolean nor a result set is an error with
// code ambiguous_result, never false.
func (s *Service) IsSubscribed(ctx context.Context, subscriber, topic rdf.IRI) (bool, error) {
	answer, err := s.graph.Ask(ctx, graph.Ask().
		Where(graph.U(subscriber), graph.U(rdf.DSSNSubscribedTo), graph.V("sub")).
		Where(graph.V("sub"), graph.U(rdf.DSSNSubscriptionTopic), graph.U(topic)))
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to check subscription")
	}
	ok, err := answer.Truth()
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeAmbiguousResult, "subscription check returned an ambiguous answer")
	}
	return ok, nil
}

func (s *Service) subscribe(ctx context.Context, subscriberRef, feedURL rdf.IRI) (out outcome, err error) {
	start := time.Now()
	defer func() {
		s.observeSubscribe(start)
		switch {
		case err != nil:
			s.incrementSubscribe(metrics.OutcomeFailed)
		case out.created:
			s.incrementSubscribe(metrics.OutcomeCreated)
		default:
			s.incrementSubscribe(metrics.OutcomeExisting)
		}
	}()

	if subscriberRef.IsZero() {
		return out, dErrors.New(dErrors.CodeValidation, "subscriber is required")
	}
	if feedURL.IsZero() {
		return out, dErrors.New(dErrors.CodeValidation, "feed is required")
	}

	subscriber, err := s.subscriberAccount(ctx, subscriberRef)
	if err != nil {
		return out, err
	}
	out.subscriber = subscriber

	topic, err := s.feeds.Resolve(ctx, feedURL)
	if err != nil {
		return out, feedError(err)
	}
	out.topic = topic

	lockStart := time.Now()
	unlock, err := s.locker.Lock(ctx, lock.Key(subscriber, topic.Self))
	s.observeLockWait(lockStart)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return out, dErrors.Wrap(err, dErrors.CodeTimeout, "timed out waiting for subscription lock")
		}
		return out, dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire subscription lock")
	}
	defer unlock()

	subscribed, err := s.IsSubscribed(ctx, subscriber, topic.Self)
	if err != nil {
		return out, err
	}
	if subscribed {
		s.logger.DebugContext(ctx, "already subscribed",
			"subscriber", subscriber.String(),
			"topic", topic.Self.String(),
		)
		s.logAudit(ctx, audit.Event{
			Action:     audit.EventAlreadySubscribed,
			Subscriber: subscriber,
			Topic:      topic.Self,
			Hub:        topic.Hub,
		})
		return out, nil
	}

	callback := s.minter.CallbackURI()
	if err := s.hub.Subscribe(ctx, push.Request{Hub: topic.Hub, Topic: topic.Self, Callback: callback}); err != nil {
		s.logger.WarnContext(ctx, "hub subscribe failed",
			"subscriber", subscriber.String(),
			"topic", topic.Self.String(),
			"hub", topic.Hub.String(),
			"error", err,
		)
		s.logAudit(ctx, audit.Event{
			Action:     audit.EventHubSubscribeFailed,
			Subscriber: subscriber,
			Topic:      topic.Self,
			Hub:        topic.Hub,
			Reason:     err.Error(),
		})
		return out, hubError(err)
	}

	uri, err := s.minter.SubscriptionURI()
	if err != nil {
		return out, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mint subscription uri")
	}
	record := models.Subscription{
		URI:        uri,
		Subscriber: subscriber,
		Hub:        topic.Hub,
		Topic:      topic.Self,
		Callback:   callback,
	}
	if err := s.graph.Write(ctx, record.Statements()); err != nil {
		return out, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to record subscription")
	}

	s.logger.InfoContext(ctx, "subscription created",
		"subscriber", subscriber.String(),
		"topic", topic.Self.String(),
		"hub", topic.Hub.String(),
		"subscription", uri.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.logAudit(ctx, audit.Event{
		Action:       audit.EventSubscriptionCreated,
		Subscriber:   subscriber,
		Topic:        topic.Self,
		Hub:          topic.Hub,
		Subscription: uri,
	})
	out.created = true
	return out, nil
}

// subscriberAccount returns ref itself, or the account of ref when ref is a
// person.
func (s *Service) subscriberAccount(ctx context.Context, ref rdf.IRI) (rdf.IRI, error) {
	isPerson, err := s.accounts.IsPerson(ctx, ref)
	if err != nil {
		return "", err
	}
	if !isPerson {
		return ref, nil
	}
	account, found, err := s.accounts.ResolveAccountForPerson(ctx, ref)
	if err != nil {
		return "", err
	}
	if !found {
		return "", dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "person has no account")
	}
	return account, nil
}

func feedError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "feed discovery timed out")
	case errors.Is(err, feed.ErrNoHub):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "feed does not advertise a hub")
	case errors.Is(err, feed.ErrFetch):
		return dErrors.Wrap(err, dErrors.CodeHubFailure, "feed is unreachable")
	default:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to resolve feed")
	}
}

func hubError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "hub subscribe timed out")
	case errors.Is(err, circuit.ErrOpen):
		return dErrors.Wrap(err, dErrors.CodeHubFailure, "hub temporarily unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeHubFailure, "hub subscribe failed")
	}
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", string(event.Action),
			"error", err,
		)
	}
}

func (s *Service) incrementSubscribe(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSubscribe(outcome)
	}
}

func (s *Service) observeSubscribe(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSubscribe(start)
	}
}

func (s *Service) observeLockWait(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveLockWait(start)
	}
}
