package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"mercator-hq/janus/pkg/bindings"
	"mercator-hq/janus/pkg/telemetry/metrics"
)

// Source records how a routing decision was made, for diagnostics.
type Source string

const (
	// SourceBinding means an explicit binding from the store was used.
	SourceBinding Source = "binding"

	// SourceDetected means auto-detection probed the origins and won.
	SourceDetected Source = "detected"

	// SourceDefault means the configured default environment applied.
	SourceDefault Source = "default"
)

// Decision is the routing outcome for one request. It is derived, never
// persisted, and never reused across requests.
type Decision struct {
	// TenantID is the tenant the decision was made for.
	TenantID string

	// Env is the chosen environment.
	Env bindings.Environment

	// OriginHost is the origin hostname serving Env.
	OriginHost string

	// Source records how the decision was reached.
	Source Source
}

// Options are the runtime-adjustable parts of routing policy. They can be
// swapped atomically on config reload without restarting the listener.
type Options struct {
	// DefaultEnvironment is used when no binding exists and detection is
	// off or inconclusive.
	DefaultEnvironment bindings.Environment

	// AutoDetect enables origin probing for unbound tenants.
	AutoDetect bool
}

// Detector probes the origins for an unbound tenant.
// ok=false means the result was ambiguous and must not be persisted.
type Detector interface {
	Detect(ctx context.Context, tenantID string) (bindings.Environment, bool)
}

// Resolver computes the environment decision for tenant requests.
// It is safe for concurrent use.
type Resolver struct {
	store      bindings.Store
	detector   Detector
	devHost    string
	stableHost string
	opts       atomic.Pointer[Options]
	collector  *metrics.Collector
	logger     *slog.Logger
}

// NewResolver creates a resolver over the given store and origin hosts.
// detector may be nil when auto-detection is disabled for the process
// lifetime; enabling AutoDetect without a detector is a configuration
// error surfaced at Resolve time.
func NewResolver(store bindings.Store, detector Detector, devHost, stableHost string, opts Options, collector *metrics.Collector) *Resolver {
	r := &Resolver{
		store:      store,
		detector:   detector,
		devHost:    devHost,
		stableHost: stableHost,
		collector:  collector,
		logger:     slog.Default().With("component", "routing"),
	}
	r.opts.Store(&opts)
	return r
}

// SetOptions atomically replaces the runtime routing options.
// Used by config hot reload.
func (r *Resolver) SetOptions(opts Options) {
	r.opts.Store(&opts)
}

// Options returns the current runtime routing options.
func (r *Resolver) Options() Options {
	return *r.opts.Load()
}

// Resolve computes the routing decision for a tenant.
//
// A store read failure is returned as an error: without the lookup there is
// no safe routing decision and the caller must answer 5xx. A failed
// write-back of a detected environment is logged but does not fail the
// request, since the decision itself is still valid.
func (r *Resolver) Resolve(ctx context.Context, tenantID string) (*Decision, error) {
	opts := r.opts.Load()

	env, bound, err := r.store.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("binding lookup for %q: %w", tenantID, err)
	}
	if bound {
		return r.decision(tenantID, env, SourceBinding), nil
	}

	if opts.AutoDetect && r.detector != nil {
		if detected, ok := r.detector.Detect(ctx, tenantID); ok {
			r.collector.RecordDetection(string(detected))

			// Write-through: the store self-heals so the next request
			// skips the probes.
			if err := r.store.Put(ctx, tenantID, detected); err != nil {
				r.logger.Warn("persisting detected binding failed",
					"tenant", tenantID,
					"env", detected,
					"error", err,
				)
			}
			return r.decision(tenantID, detected, SourceDetected), nil
		}
		r.collector.RecordDetection("ambiguous")
	}

	return r.decision(tenantID, opts.DefaultEnvironment, SourceDefault), nil
}

// decision maps an environment to its origin host.
func (r *Resolver) decision(tenantID string, env bindings.Environment, source Source) *Decision {
	host := r.stableHost
	if env == bindings.EnvDev {
		host = r.devHost
	}
	return &Decision{
		TenantID:   tenantID,
		Env:        env,
		OriginHost: host,
		Source:     source,
	}
}
