package bindings

import (
	"context"
	"fmt"
)

// Environment identifies which backend deployment serves a tenant.
type Environment string

const (
	// EnvDev routes a tenant to the dev deployment.
	EnvDev Environment = "dev"

	// EnvStable routes a tenant to the stable deployment.
	EnvStable Environment = "stable"
)

// ParseEnvironment validates a raw environment tag.
// Returns an error for anything outside the {dev, stable} enum.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvDev:
		return EnvDev, nil
	case EnvStable:
		return EnvStable, nil
	default:
		return "", fmt.Errorf("invalid environment %q: must be %q or %q", s, EnvDev, EnvStable)
	}
}

// Valid reports whether e is a member of the environment enum.
func (e Environment) Valid() bool {
	return e == EnvDev || e == EnvStable
}

// Store is the persistence interface for tenant bindings.
// Implementations must be safe for concurrent use.
//
// Get reports ok=false when no binding exists for the tenant; that is not
// an error. Errors are reserved for backend failures (connection loss,
// corrupted storage), on which callers must not fabricate a routing
// decision.
type Store interface {
	// Get returns the bound environment for a tenant, if any.
	Get(ctx context.Context, tenantID string) (Environment, bool, error)

	// Put creates or overwrites the binding for a tenant.
	// Environment validation is the caller's responsibility.
	Put(ctx context.Context, tenantID string, env Environment) error

	// Delete removes the binding for a tenant.
	// Deleting a non-existent binding is a no-op, not an error.
	Delete(ctx context.Context, tenantID string) error

	// Close releases backend resources. The store must not be used after
	// Close returns.
	Close() error
}
