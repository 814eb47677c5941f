package config

import (
	"fmt"
	"strings"
)

// Validate checks a configuration for errors.
// It returns the first problem found; required fields are checked before
// enum memberships.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address is required")
	}

	if cfg.Routing.BaseDomain == "" {
		return fmt.Errorf("routing.base_domain is required")
	}
	if strings.Contains(cfg.Routing.BaseDomain, "://") {
		return fmt.Errorf("routing.base_domain must be a hostname, not a URL: %q", cfg.Routing.BaseDomain)
	}

	switch cfg.Routing.DefaultEnvironment {
	case "dev", "stable":
	default:
		return fmt.Errorf("routing.default_environment must be \"dev\" or \"stable\", got %q",
			cfg.Routing.DefaultEnvironment)
	}

	if cfg.Routing.ProbeTimeout < 0 {
		return fmt.Errorf("routing.probe_timeout must not be negative")
	}

	switch cfg.Origins.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("origins.scheme must be \"http\" or \"https\", got %q", cfg.Origins.Scheme)
	}

	if cfg.Origins.DevHost == "" {
		return fmt.Errorf("origins.dev_host is required")
	}
	if cfg.Origins.StableHost == "" {
		return fmt.Errorf("origins.stable_host is required")
	}
	if cfg.Origins.DevHost == cfg.Origins.StableHost {
		return fmt.Errorf("origins.dev_host and origins.stable_host must differ")
	}

	switch cfg.Bindings.Backend {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("bindings.backend must be one of \"memory\", \"sqlite\", \"redis\", got %q",
			cfg.Bindings.Backend)
	}

	if cfg.Bindings.Backend == "sqlite" && cfg.Bindings.SQLite.Path == "" {
		return fmt.Errorf("bindings.sqlite.path is required for the sqlite backend")
	}
	if cfg.Bindings.Backend == "redis" && cfg.Bindings.Redis.Addr == "" {
		return fmt.Errorf("bindings.redis.addr is required for the redis backend")
	}

	if cfg.Admin.Enabled && cfg.Admin.ListenAddress == "" {
		return fmt.Errorf("admin.listen_address is required when the admin listener is enabled")
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug, info, warn, error, got %q",
			cfg.Telemetry.Logging.Level)
	}

	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be \"json\" or \"text\", got %q",
			cfg.Telemetry.Logging.Format)
	}

	return nil
}
