package config

import "time"

// Config is the root configuration structure for Mercator Janus.
// It covers the data-plane server, routing policy, origin deployments,
// the control-plane API, binding persistence, the admin listener, and
// telemetry.
type Config struct {
	// Server contains the data-plane HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Routing contains tenant-matching and environment-resolution policy.
	Routing RoutingConfig `yaml:"routing"`

	// Origins describes the two backend deployments traffic is routed to.
	Origins OriginsConfig `yaml:"origins"`

	// ControlPlane configures the authenticated binding-management API.
	ControlPlane ControlPlaneConfig `yaml:"control_plane"`

	// Bindings configures persistence of the tenant → environment mapping.
	Bindings BindingsConfig `yaml:"bindings"`

	// Admin configures the operational listener (health, readiness, metrics).
	Admin AdminConfig `yaml:"admin"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the data-plane HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for tenant traffic and the
	// control-plane API. Format: "host:port".
	// Default: "0.0.0.0:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. Proxied responses may stream, so this should be generous.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on a
	// kept-alive connection.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for in-flight
	// requests during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// RoutingConfig contains tenant matching and environment resolution policy.
type RoutingConfig struct {
	// BaseDomain is the domain tenant subdomains hang off
	// (e.g. "example.com" for "acme.example.com"). Required.
	BaseDomain string `yaml:"base_domain"`

	// DefaultEnvironment is used when a tenant has no binding and
	// auto-detection is disabled or inconclusive.
	// Options: "dev", "stable"
	// Default: "stable"
	DefaultEnvironment string `yaml:"default_environment"`

	// AutoDetect enables probing both origins for unbound tenants.
	// A conclusive probe result is written back to the binding store.
	// Default: false
	AutoDetect bool `yaml:"auto_detect"`

	// ProbeTimeout bounds each auto-detection probe.
	// Default: 5s
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

// OriginsConfig describes the dev and stable backend deployments.
type OriginsConfig struct {
	// Scheme is the URL scheme used to reach the origins.
	// Options: "http", "https"
	// Default: "https"
	Scheme string `yaml:"scheme"`

	// DevHost is the dev deployment hostname (optionally host:port). Required.
	DevHost string `yaml:"dev_host"`

	// StableHost is the stable deployment hostname (optionally host:port). Required.
	StableHost string `yaml:"stable_host"`

	// HealthCheckSchedule is a cron expression for periodic origin
	// reachability sweeps feeding the /ready endpoint. Supports the
	// "@every <duration>" form. Empty disables sweeps.
	// Default: "@every 30s"
	HealthCheckSchedule string `yaml:"health_check_schedule"`
}

// ControlPlaneConfig configures the authenticated binding-management API.
type ControlPlaneConfig struct {
	// BearerSecret is the shared secret for the control-plane API.
	// When empty, every control-plane request is rejected with 401
	// (fail closed). Prefer setting it via JANUS_CONTROL_PLANE_BEARER_SECRET
	// instead of the config file.
	BearerSecret string `yaml:"bearer_secret"`
}

// BindingsConfig configures binding persistence.
type BindingsConfig struct {
	// Backend selects the store implementation.
	// Options: "memory", "sqlite", "redis"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Redis contains settings for the redis backend.
	Redis RedisConfig `yaml:"redis"`
}

// SQLiteConfig contains settings for the SQLite binding store.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/bindings.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RedisConfig contains settings for the Redis binding store.
type RedisConfig struct {
	// Addr is the Redis server address ("host:port").
	// Default: "127.0.0.1:6379"
	Addr string `yaml:"addr"`

	// Password is the optional AUTH password.
	Password string `yaml:"password"`

	// DB is the logical database number.
	// Default: 0
	DB int `yaml:"db"`

	// DialTimeout bounds connection establishment.
	// Default: 5s
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// AdminConfig configures the operational listener. It is separate from the
// data-plane listener so that tenant application paths like /health are
// never shadowed by the router's own endpoints.
type AdminConfig struct {
	// Enabled controls whether the admin listener is started.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address and port for /health, /ready and /metrics.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`
}

// TelemetryConfig contains logging and metrics configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "janus"
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets defines histogram buckets for proxied request
	// duration in seconds.
	// Default: [0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
