// Janus is a tenant-aware edge router for dual-environment deployments.
//
// It sits in front of a dev and a stable origin and routes each tenant's
// traffic to the environment the tenant is bound to, providing:
//   - Tenant extraction from request hostnames under a base domain
//   - Persistent tenant-to-environment bindings (memory, SQLite, Redis)
//   - Automatic environment detection by probing both origins
//   - A bearer-authenticated binding management API
//   - Host-preserving reverse proxying with diagnostic headers
//
// Usage:
//
//	# Start the router with default configuration
//	janus run
//
//	# Start with custom configuration file
//	janus run --config /path/to/config.yaml
//
//	# Validate a configuration file
//	janus validate --config /path/to/config.yaml
//
//	# Show version information
//	janus version
package main

func main() {
	Execute()
}
