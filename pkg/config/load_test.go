package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// minimalYAML carries only the required fields; everything else comes from
// defaults.
const minimalYAML = `
routing:
  base_domain: example.com
origins:
  dev_host: dev.internal.example.com
  stable_host: stable.internal.example.com
`

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadConfig_MinimalFileGetsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, minimalYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("listen address = %q, want %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Routing.DefaultEnvironment != "stable" {
		t.Errorf("default environment = %q, want stable", cfg.Routing.DefaultEnvironment)
	}
	if cfg.Routing.AutoDetect {
		t.Error("auto detect should default to false")
	}
	if cfg.Routing.ProbeTimeout != DefaultProbeTimeout {
		t.Errorf("probe timeout = %v, want %v", cfg.Routing.ProbeTimeout, DefaultProbeTimeout)
	}
	if cfg.Origins.Scheme != "https" {
		t.Errorf("origin scheme = %q, want https", cfg.Origins.Scheme)
	}
	if cfg.Bindings.Backend != "memory" {
		t.Errorf("bindings backend = %q, want memory", cfg.Bindings.Backend)
	}
	if !cfg.Admin.Enabled {
		t.Error("admin listener should default to enabled")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadConfig_ExplicitFalseDisablesAdmin(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, minimalYAML+`
admin:
  enabled: false
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Admin.Enabled {
		t.Error("admin.enabled: false in the file should disable the listener")
	}
}

func TestLoadConfig_FileValuesOverrideDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, `
server:
  listen_address: "0.0.0.0:9999"
  read_timeout: 10s
routing:
  base_domain: example.com
  default_environment: dev
  auto_detect: true
origins:
  scheme: http
  dev_host: dev.internal.example.com
  stable_host: stable.internal.example.com
bindings:
  backend: sqlite
  sqlite:
    path: /tmp/test-bindings.db
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9999" {
		t.Errorf("listen address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Routing.DefaultEnvironment != "dev" {
		t.Errorf("default environment = %q", cfg.Routing.DefaultEnvironment)
	}
	if !cfg.Routing.AutoDetect {
		t.Error("auto_detect should be enabled")
	}
	if cfg.Bindings.Backend != "sqlite" {
		t.Errorf("bindings backend = %q", cfg.Bindings.Backend)
	}
	if cfg.Bindings.SQLite.Path != "/tmp/test-bindings.db" {
		t.Errorf("sqlite path = %q", cfg.Bindings.SQLite.Path)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	if _, err := LoadConfig(writeConfigFile(t, "routing: [not a map")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("JANUS_ROUTING_DEFAULT_ENVIRONMENT", "dev")
	t.Setenv("JANUS_ROUTING_AUTO_DETECT", "true")
	t.Setenv("JANUS_ORIGINS_DEV_HOST", "dev-override.internal")
	t.Setenv("JANUS_CONTROL_PLANE_BEARER_SECRET", "from-env")

	cfg, err := LoadConfigWithEnvOverrides(writeConfigFile(t, minimalYAML))
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if cfg.Routing.DefaultEnvironment != "dev" {
		t.Errorf("default environment = %q, want dev (env override)", cfg.Routing.DefaultEnvironment)
	}
	if !cfg.Routing.AutoDetect {
		t.Error("auto detect should be enabled via env override")
	}
	if cfg.Origins.DevHost != "dev-override.internal" {
		t.Errorf("dev host = %q, want env override value", cfg.Origins.DevHost)
	}
	if cfg.ControlPlane.BearerSecret != "from-env" {
		t.Errorf("bearer secret = %q, want from-env", cfg.ControlPlane.BearerSecret)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverrideRejected(t *testing.T) {
	t.Setenv("JANUS_ROUTING_DEFAULT_ENVIRONMENT", "production")

	if _, err := LoadConfigWithEnvOverrides(writeConfigFile(t, minimalYAML)); err == nil {
		t.Error("expected validation error for invalid env override")
	}
}
