package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	pkgstrings "pushgraph/pkg/platform/strings"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// LockTTLMargin is the time a subscribe lock must outlive the hub call by,
// covering the existence check and the store write around it.
const LockTTLMargin = 5 * time.Second

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	// SessionHeader carries the session user id set by the fronting gateway.
	SessionHeader string `yaml:"session_header"`
	// RateLimit caps API requests per caller per RateWindow. Zero disables.
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

// App holds the identifiers the application mints IRIs from.
type App struct {
	BaseURI  string `yaml:"base_uri"`
	GraphURI string `yaml:"graph_uri"`
}

// StoreConfig selects the graph store backend.
type StoreConfig struct {
	Backend    string `yaml:"backend"`
	SQLitePath string `yaml:"sqlite_path"`
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RedisConfig configures the optional Redis client used for the shared user
// cache and subscribe locks. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	LockTTL      time.Duration `yaml:"lock_ttl"`
}

// HubConfig configures the push hub client.
type HubConfig struct {
	// DefaultHub is used for feeds that do not advertise a hub.
	DefaultHub       string        `yaml:"default_hub"`
	Timeout          time.Duration `yaml:"timeout"`
	LeaseSeconds     int           `yaml:"lease_seconds"`
	Secret           string        `yaml:"secret"`
	FailureThreshold int           `yaml:"failure_threshold"`
	SuccessThreshold int           `yaml:"success_threshold"`
	Cooldown         time.Duration `yaml:"cooldown"`
}

// FeedConfig configures hub/self discovery.
type FeedConfig struct {
	DiscoveryTimeout time.Duration `yaml:"discovery_timeout"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`
}

// KafkaConfig configures the audit event publisher. No brokers means events
// stay in memory.
type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	Topic             string   `yaml:"topic"`
	Partitions        int32    `yaml:"partitions"`
	ReplicationFactor int16    `yaml:"replication_factor"`
}

// LogConfig configures slog.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the full service configuration.
type Config struct {
	Server   Server         `yaml:"server"`
	App      App            `yaml:"app"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Hub      HubConfig      `yaml:"hub"`
	Feed     FeedConfig     `yaml:"feed"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns development defaults.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  30 * time.Second,
			SessionHeader:   "X-Session-User",
			RateLimit:       120,
			RateWindow:      time.Minute,
		},
		App: App{
			BaseURI:  "http://localhost:8080/",
			GraphURI: "http://localhost:8080/",
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			SQLitePath: "pushgraph.db",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			LockTTL:      30 * time.Second,
		},
		Hub: HubConfig{
			Timeout:          10 * time.Second,
			FailureThreshold: 5,
			SuccessThreshold: 2,
			Cooldown:         30 * time.Second,
		},
		Feed: FeedConfig{
			DiscoveryTimeout: 10 * time.Second,
			MaxBodyBytes:     1 << 20,
		},
		Kafka: KafkaConfig{
			Topic:             "pushgraph.subscriptions",
			Partitions:        1,
			ReplicationFactor: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv is Load without a config file, for callers that only use env vars.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "PUSHGRAPH_ADDR")
	setString(&cfg.Server.SessionHeader, "SESSION_HEADER")
	setString(&cfg.App.BaseURI, "BASE_URI")
	setString(&cfg.App.GraphURI, "GRAPH_URI")
	setString(&cfg.Store.Backend, "GRAPH_STORE")
	setString(&cfg.Store.SQLitePath, "SQLITE_PATH")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Hub.DefaultHub, "HUB_DEFAULT")
	setString(&cfg.Hub.Secret, "HUB_SECRET")
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	if brokers := pkgstrings.SplitList(os.Getenv("KAFKA_BROKERS")); len(brokers) > 0 {
		cfg.Kafka.Brokers = brokers
	}

	durations := []struct {
		dst *time.Duration
		key string
	}{
		{&cfg.Server.ShutdownTimeout, "SHUTDOWN_TIMEOUT"},
		{&cfg.Server.RequestTimeout, "REQUEST_TIMEOUT"},
		{&cfg.Server.RateWindow, "RATE_WINDOW"},
		{&cfg.Hub.Timeout, "HUB_TIMEOUT"},
		{&cfg.Hub.Cooldown, "HUB_COOLDOWN"},
		{&cfg.Feed.DiscoveryTimeout, "FEED_DISCOVERY_TIMEOUT"},
		{&cfg.Redis.LockTTL, "REDIS_LOCK_TTL"},
	}
	for _, d := range durations {
		if err := setDuration(d.dst, d.key); err != nil {
			return err
		}
	}
	ints := []struct {
		dst *int
		key string
	}{
		{&cfg.Server.RateLimit, "RATE_LIMIT"},
		{&cfg.Hub.LeaseSeconds, "HUB_LEASE_SECONDS"},
		{&cfg.Hub.FailureThreshold, "HUB_FAILURE_THRESHOLD"},
		{&cfg.Database.MaxOpenConns, "DATABASE_MAX_OPEN_CONNS"},
		{&cfg.Redis.PoolSize, "REDIS_POOL_SIZE"},
	}
	for _, i := range ints {
		if err := setInt(i.dst, i.key); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	if c.App.BaseURI == "" {
		return fmt.Errorf("BASE_URI is required")
	}
	if c.App.GraphURI == "" {
		return fmt.Errorf("GRAPH_URI is required")
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StorePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres graph store")
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite graph store")
		}
	default:
		return fmt.Errorf("unknown graph store backend %q", c.Store.Backend)
	}
	if c.Hub.Timeout <= 0 {
		return fmt.Errorf("hub timeout must be positive")
	}
	if c.Redis.URL != "" && c.Redis.LockTTL < c.Hub.Timeout+LockTTLMargin {
		return fmt.Errorf("REDIS_LOCK_TTL (%s) must be at least HUB_TIMEOUT (%s) plus %s",
			c.Redis.LockTTL, c.Hub.Timeout, LockTTLMargin)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}
