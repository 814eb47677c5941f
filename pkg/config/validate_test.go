package config

import "testing"

// validTestConfig returns a fully valid configuration for mutation tests.
func validTestConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Routing.BaseDomain = "example.com"
	cfg.Origins.DevHost = "dev.internal.example.com"
	cfg.Origins.StableHost = "stable.internal.example.com"
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validTestConfig()); err != nil {
		t.Errorf("Validate returned error for valid config: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base domain", func(c *Config) { c.Routing.BaseDomain = "" }},
		{"base domain is a URL", func(c *Config) { c.Routing.BaseDomain = "https://example.com" }},
		{"invalid default environment", func(c *Config) { c.Routing.DefaultEnvironment = "production" }},
		{"negative probe timeout", func(c *Config) { c.Routing.ProbeTimeout = -1 }},
		{"invalid origin scheme", func(c *Config) { c.Origins.Scheme = "ftp" }},
		{"missing dev host", func(c *Config) { c.Origins.DevHost = "" }},
		{"missing stable host", func(c *Config) { c.Origins.StableHost = "" }},
		{"identical origin hosts", func(c *Config) { c.Origins.StableHost = c.Origins.DevHost }},
		{"invalid bindings backend", func(c *Config) { c.Bindings.Backend = "postgres" }},
		{"sqlite backend without path", func(c *Config) {
			c.Bindings.Backend = "sqlite"
			c.Bindings.SQLite.Path = ""
		}},
		{"redis backend without addr", func(c *Config) {
			c.Bindings.Backend = "redis"
			c.Bindings.Redis.Addr = ""
		}},
		{"admin enabled without address", func(c *Config) { c.Admin.ListenAddress = "" }},
		{"invalid log level", func(c *Config) { c.Telemetry.Logging.Level = "trace" }},
		{"invalid log format", func(c *Config) { c.Telemetry.Logging.Format = "console" }},
		{"missing listen address", func(c *Config) { c.Server.ListenAddress = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
