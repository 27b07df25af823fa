// Package app wires configuration into running services and the HTTP router.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"pushgraph/internal/audit"
	auditkafka "pushgraph/internal/audit/kafka"
	auditlog "pushgraph/internal/audit/store/logstore"
	"pushgraph/internal/feed"
	"pushgraph/internal/graph"
	graphmemory "pushgraph/internal/graph/store/memory"
	"pushgraph/internal/graph/store/sqlstore"
	notificationhandler "pushgraph/internal/notification/handler"
	notificationmetrics "pushgraph/internal/notification/metrics"
	notificationservice "pushgraph/internal/notification/service"
	"pushgraph/internal/platform/config"
	"pushgraph/internal/platform/database"
	platformmetrics "pushgraph/internal/platform/metrics"
	"pushgraph/internal/platform/ratelimit"
	platformredis "pushgraph/internal/platform/redis"
	"pushgraph/internal/push"
	pushmetrics "pushgraph/internal/push/metrics"
	subscriptionhandler "pushgraph/internal/subscription/handler"
	"pushgraph/internal/subscription/lock"
	subscriptionmetrics "pushgraph/internal/subscription/metrics"
	subscriptionservice "pushgraph/internal/subscription/service"
	httptransport "pushgraph/internal/transport/http"
	usercache "pushgraph/internal/user/cache"
	userhandler "pushgraph/internal/user/handler"
	usermetrics "pushgraph/internal/user/metrics"
	userservice "pushgraph/internal/user/service"
	"pushgraph/pkg/platform/circuit"
	"pushgraph/pkg/rdf"
)

const auditQueueSize = 256

// App holds the wired services and the resources that need closing.
type App struct {
	cfg      config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	model    *graph.Model
	checks   map[string]httptransport.HealthCheck
	window   *ratelimit.InMemoryWindow
	limiter  *ratelimit.Middleware
	handlers []httptransport.Registrar

	auditWorker *audit.Worker
	closers     []func()
}

// New builds every dependency cfg selects. Close must be called when the App
// is no longer needed.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (_ *App, err error) {
	a := &App{
		cfg:      cfg,
		log:      log,
		registry: prometheus.NewRegistry(),
		checks:   make(map[string]httptransport.HealthCheck),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	minter, err := rdf.NewMinter(cfg.App.BaseURI)
	if err != nil {
		return nil, fmt.Errorf("uri minter: %w", err)
	}
	graphIRI, err := rdf.ParseIRI(cfg.App.GraphURI)
	if err != nil {
		return nil, fmt.Errorf("graph uri: %w", err)
	}
	store, err := a.graphStore(ctx)
	if err != nil {
		return nil, err
	}
	model, err := graph.NewModel(store, graphIRI)
	if err != nil {
		return nil, err
	}
	a.model = model

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	var (
		cache  userservice.Cache = usercache.NewInMemory()
		locker subscriptionservice.Locker
	)
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		a.checks["redis"] = redisClient.Health
		cache = usercache.NewRedis(redisClient, "")
		locker = lock.NewRedis(redisClient, cfg.Redis.LockTTL)
		log.Info("redis enabled for user cache and subscribe locks")
	}

	auditPublisher, err := a.auditPublisher(ctx)
	if err != nil {
		return nil, err
	}

	users, err := userservice.New(model, minter, cache,
		userservice.WithLogger(log),
		userservice.WithMetrics(usermetrics.New(a.registry)),
	)
	if err != nil {
		return nil, err
	}

	resolver := feed.NewResolver(
		feed.WithTimeout(cfg.Feed.DiscoveryTimeout),
		feed.WithMaxBodyBytes(cfg.Feed.MaxBodyBytes),
		feed.WithDefaultHub(rdf.IRI(cfg.Hub.DefaultHub)),
		feed.WithLocalBase(minter.Base()),
		feed.WithLogger(log),
	)
	breaker := circuit.New("hub",
		circuit.WithFailureThreshold(cfg.Hub.FailureThreshold),
		circuit.WithSuccessThreshold(cfg.Hub.SuccessThreshold),
		circuit.WithCooldown(cfg.Hub.Cooldown),
	)
	hub := push.NewClient(
		push.WithTimeout(cfg.Hub.Timeout),
		push.WithLease(cfg.Hub.LeaseSeconds),
		push.WithSecret(cfg.Hub.Secret),
		push.WithBreaker(breaker),
		push.WithMetrics(pushmetrics.New(a.registry)),
		push.WithLogger(log),
	)

	subOpts := []subscriptionservice.Option{
		subscriptionservice.WithLogger(log),
		subscriptionservice.WithMetrics(subscriptionmetrics.New(a.registry)),
		subscriptionservice.WithAuditPublisher(auditPublisher),
	}
	if locker != nil {
		subOpts = append(subOpts, subscriptionservice.WithLocker(locker))
	}
	registry, err := subscriptionservice.New(subscriptionservice.Deps{
		Graph:    model,
		Feeds:    resolver,
		Hub:      hub,
		Deriver:  feed.NewDeriver(minter),
		Accounts: users,
		Minter:   minter,
	}, subOpts...)
	if err != nil {
		return nil, err
	}

	index, err := notificationservice.New(model,
		notificationservice.WithLogger(log),
		notificationservice.WithMetrics(notificationmetrics.New(a.registry)),
	)
	if err != nil {
		return nil, err
	}

	a.window = ratelimit.NewInMemoryWindow()
	a.limiter = ratelimit.New(a.window, cfg.Server.RateLimit, cfg.Server.RateWindow, log)
	a.handlers = []httptransport.Registrar{
		userhandler.New(users, log),
		subscriptionhandler.New(registry, index, users, log),
		notificationhandler.New(index, users, log),
	}
	return a, nil
}

func (a *App) graphStore(ctx context.Context) (graph.Store, error) {
	var (
		db      *sql.DB
		dialect sqlstore.Dialect
		err     error
	)
	switch a.cfg.Store.Backend {
	case config.StoreMemory:
		a.log.Warn("using in-memory graph store; data is lost on restart")
		return graphmemory.New(), nil
	case config.StorePostgres:
		db, err = database.OpenPostgres(ctx, a.cfg.Database)
		dialect = sqlstore.Postgres
	case config.StoreSQLite:
		db, err = database.OpenSQLite(ctx, a.cfg.Store.SQLitePath)
		dialect = sqlstore.SQLite
	default:
		return nil, fmt.Errorf("unknown graph store backend %q", a.cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	a.checks["graph_store"] = db.PingContext

	store := sqlstore.New(db, dialect)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// auditPublisher ships events to Kafka through a queue drained by a worker
// when brokers are configured, and writes them to the log otherwise.
func (a *App) auditPublisher(ctx context.Context) (*audit.Publisher, error) {
	if len(a.cfg.Kafka.Brokers) == 0 {
		return audit.NewPublisher(auditlog.New(a.log)), nil
	}
	store, err := auditkafka.New(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	if err := store.EnsureTopic(ctx, a.cfg.Kafka.Partitions, a.cfg.Kafka.ReplicationFactor); err != nil {
		return nil, err
	}
	a.checks["kafka"] = store.Ping

	inbox := make(chan audit.Event, auditQueueSize)
	a.auditWorker = audit.NewWorker(store, inbox, a.log)
	a.log.Info("audit events go to kafka", "topic", a.cfg.Kafka.Topic)
	return audit.NewPublisher(store, audit.WithQueue(inbox)), nil
}

// Handler returns the HTTP router over the wired services.
func (a *App) Handler() http.Handler {
	return httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         a.log,
		Metrics:        platformmetrics.New(a.registry),
		Gatherer:       a.registry,
		SessionHeader:  a.cfg.Server.SessionHeader,
		RequestTimeout: a.cfg.Server.RequestTimeout,
		RateLimit:      a.limiter.Handler,
		Checks:         a.checks,
		Handlers:       a.handlers,
	})
}

// Model returns the graph model the services share. In-process producers
// write notifications through it.
func (a *App) Model() *graph.Model {
	return a.model
}

// AuditWorker returns the worker draining the audit queue, or nil when
// events are written synchronously.
func (a *App) AuditWorker() *audit.Worker {
	return a.auditWorker
}

// SweepRateLimits drops idle rate limit windows once per window until ctx
// is done.
func (a *App) SweepRateLimits(ctx context.Context) error {
	interval := a.cfg.Server.RateWindow
	if interval <= 0 {
		interval = time.Minute
	}
	return a.window.Run(ctx, interval)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
