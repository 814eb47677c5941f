package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values and validates the result. Environment variable
// overrides are not applied; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Enabled-by-default toggles are set before unmarshalling so that an
	// absent field keeps the default while an explicit "false" disables.
	cfg := Config{}
	cfg.Admin.Enabled = true
	cfg.Telemetry.Metrics.Enabled = true

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention JANUS_SECTION_FIELD (e.g. JANUS_ROUTING_BASE_DOMAIN) and always
// take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies JANUS_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("JANUS_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("JANUS_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("JANUS_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Routing overrides
	if val := os.Getenv("JANUS_ROUTING_BASE_DOMAIN"); val != "" {
		cfg.Routing.BaseDomain = val
	}
	if val := os.Getenv("JANUS_ROUTING_DEFAULT_ENVIRONMENT"); val != "" {
		cfg.Routing.DefaultEnvironment = val
	}
	if val := os.Getenv("JANUS_ROUTING_AUTO_DETECT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Routing.AutoDetect = b
		}
	}
	if val := os.Getenv("JANUS_ROUTING_PROBE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Routing.ProbeTimeout = d
		}
	}

	// Origins overrides
	if val := os.Getenv("JANUS_ORIGINS_SCHEME"); val != "" {
		cfg.Origins.Scheme = val
	}
	if val := os.Getenv("JANUS_ORIGINS_DEV_HOST"); val != "" {
		cfg.Origins.DevHost = val
	}
	if val := os.Getenv("JANUS_ORIGINS_STABLE_HOST"); val != "" {
		cfg.Origins.StableHost = val
	}
	if val := os.Getenv("JANUS_ORIGINS_HEALTH_CHECK_SCHEDULE"); val != "" {
		cfg.Origins.HealthCheckSchedule = val
	}

	// Control-plane overrides
	if val := os.Getenv("JANUS_CONTROL_PLANE_BEARER_SECRET"); val != "" {
		cfg.ControlPlane.BearerSecret = val
	}

	// Bindings overrides
	if val := os.Getenv("JANUS_BINDINGS_BACKEND"); val != "" {
		cfg.Bindings.Backend = val
	}
	if val := os.Getenv("JANUS_BINDINGS_SQLITE_PATH"); val != "" {
		cfg.Bindings.SQLite.Path = val
	}
	if val := os.Getenv("JANUS_BINDINGS_REDIS_ADDR"); val != "" {
		cfg.Bindings.Redis.Addr = val
	}
	if val := os.Getenv("JANUS_BINDINGS_REDIS_PASSWORD"); val != "" {
		cfg.Bindings.Redis.Password = val
	}
	if val := os.Getenv("JANUS_BINDINGS_REDIS_DB"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Bindings.Redis.DB = i
		}
	}

	// Admin overrides
	if val := os.Getenv("JANUS_ADMIN_LISTEN_ADDRESS"); val != "" {
		cfg.Admin.ListenAddress = val
	}
	if val := os.Getenv("JANUS_ADMIN_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Admin.Enabled = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv("JANUS_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("JANUS_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("JANUS_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
