package config

import "time"

// Default values applied to fields left unset in the configuration file.
const (
	DefaultListenAddress   = "0.0.0.0:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20 // 1MB

	DefaultEnvironment  = "stable"
	DefaultProbeTimeout = 5 * time.Second

	DefaultOriginScheme        = "https"
	DefaultHealthCheckSchedule = "@every 30s"

	DefaultBindingsBackend  = "memory"
	DefaultSQLitePath       = "data/bindings.db"
	DefaultSQLiteBusyWait   = 5 * time.Second
	DefaultRedisAddr        = "127.0.0.1:6379"
	DefaultRedisDialTimeout = 5 * time.Second

	DefaultAdminListenAddress = "127.0.0.1:9090"

	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultMetricsNamespace = "janus"
)

// DefaultRequestDurationBuckets are histogram buckets tuned for proxied
// request latency: most requests complete well under a second, origin
// problems show up in the multi-second tail.
var DefaultRequestDurationBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0,
}

// ApplyDefaults fills in default values for any unset configuration fields.
// Booleans keep their zero value unless noted: Admin.Enabled and
// Telemetry.Metrics.Enabled default to true and can only be disabled
// explicitly in the file.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	if cfg.Routing.DefaultEnvironment == "" {
		cfg.Routing.DefaultEnvironment = DefaultEnvironment
	}
	if cfg.Routing.ProbeTimeout == 0 {
		cfg.Routing.ProbeTimeout = DefaultProbeTimeout
	}

	if cfg.Origins.Scheme == "" {
		cfg.Origins.Scheme = DefaultOriginScheme
	}
	if cfg.Origins.HealthCheckSchedule == "" {
		cfg.Origins.HealthCheckSchedule = DefaultHealthCheckSchedule
	}

	if cfg.Bindings.Backend == "" {
		cfg.Bindings.Backend = DefaultBindingsBackend
	}
	if cfg.Bindings.SQLite.Path == "" {
		cfg.Bindings.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Bindings.SQLite.BusyTimeout == 0 {
		cfg.Bindings.SQLite.BusyTimeout = DefaultSQLiteBusyWait
	}
	if cfg.Bindings.Redis.Addr == "" {
		cfg.Bindings.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Bindings.Redis.DialTimeout == 0 {
		cfg.Bindings.Redis.DialTimeout = DefaultRedisDialTimeout
	}

	if cfg.Admin.ListenAddress == "" {
		cfg.Admin.ListenAddress = DefaultAdminListenAddress
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.RequestDurationBuckets == nil {
		cfg.Telemetry.Metrics.RequestDurationBuckets = DefaultRequestDurationBuckets
	}
}

// NewDefaultConfig returns a Config with all defaults applied and the
// enabled-by-default toggles switched on. Required fields (base domain,
// origin hosts) are left empty and must be provided by the caller.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Admin.Enabled = true
	cfg.Telemetry.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}
