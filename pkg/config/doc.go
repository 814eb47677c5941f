// Package config defines the configuration model for Mercator Janus and
// handles loading it from YAML files with environment variable overrides.
//
// Configuration is loaded in four stages: read YAML, apply defaults,
// apply JANUS_* environment overrides, validate. The resulting Config is an
// explicit value passed into components; routing logic never reads the
// environment ad hoc, which keeps it testable without a live deployment.
//
// A subset of the configuration (default environment, auto-detection
// toggle) can be hot-reloaded at runtime via Watcher; listener addresses
// and the binding store backend require a restart.
package config
