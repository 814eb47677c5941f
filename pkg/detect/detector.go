package detect

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"mercator-hq/janus/pkg/bindings"
)

// DefaultProbeTimeout bounds each origin probe when no timeout is configured.
// An unreachable origin must not stall routing for longer than this.
const DefaultProbeTimeout = 5 * time.Second

// Detector probes the dev and stable origins to decide which one serves a
// tenant that has no explicit binding.
type Detector struct {
	client       *http.Client
	scheme       string
	devHost      string
	stableHost   string
	probeTimeout time.Duration
	logger       *slog.Logger
}

// Config configures a Detector.
type Config struct {
	// Scheme is the URL scheme used for probe requests ("http" or "https").
	Scheme string

	// DevHost is the dev origin hostname.
	DevHost string

	// StableHost is the stable origin hostname.
	StableHost string

	// ProbeTimeout bounds each individual probe.
	// Default: DefaultProbeTimeout
	ProbeTimeout time.Duration

	// Client is the HTTP client for probes. Defaults to a dedicated client;
	// tests inject their own.
	Client *http.Client
}

// NewDetector creates a detector for the two configured origins.
func NewDetector(cfg Config) (*Detector, error) {
	if cfg.DevHost == "" || cfg.StableHost == "" {
		return nil, fmt.Errorf("detector: both dev and stable origin hosts must be configured")
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{
			// A redirect away from the probe endpoint is not a claim.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	return &Detector{
		client:       client,
		scheme:       cfg.Scheme,
		devHost:      cfg.DevHost,
		stableHost:   cfg.StableHost,
		probeTimeout: cfg.ProbeTimeout,
		logger:       slog.Default().With("component", "detect"),
	}, nil
}

// Detect probes both origins for the tenant and returns the environment
// that claimed it, if exactly one did.
//
// The two probes run concurrently and are awaited jointly, so total latency
// is bounded by the slower probe rather than the sum. ok=false means the
// result was ambiguous (both origins claimed the tenant, or neither did)
// and the caller should fall back to the default environment.
func (d *Detector) Detect(ctx context.Context, tenantID string) (bindings.Environment, bool) {
	var (
		wg        sync.WaitGroup
		devOK     bool
		stableOK  bool
		startTime = time.Now()
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		devOK = d.probe(ctx, d.devHost, tenantID)
	}()
	go func() {
		defer wg.Done()
		stableOK = d.probe(ctx, d.stableHost, tenantID)
	}()
	wg.Wait()

	latency := time.Since(startTime)

	switch {
	case devOK && !stableOK:
		d.logger.Info("tenant detected", "tenant", tenantID, "env", bindings.EnvDev, "latency", latency)
		return bindings.EnvDev, true
	case stableOK && !devOK:
		d.logger.Info("tenant detected", "tenant", tenantID, "env", bindings.EnvStable, "latency", latency)
		return bindings.EnvStable, true
	default:
		// Both or neither claimed the tenant; never guess.
		d.logger.Debug("tenant detection ambiguous",
			"tenant", tenantID,
			"dev_claims", devOK,
			"stable_claims", stableOK,
			"latency", latency,
		)
		return "", false
	}
}

// probe asks one origin whether it serves the tenant. Any transport error,
// timeout, or non-2xx status counts as "does not serve".
func (d *Detector) probe(ctx context.Context, host, tenantID string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, d.probeTimeout)
	defer cancel()

	probeURL := fmt.Sprintf("%s://%s/api/tenant/%s", d.scheme, host, url.PathEscape(tenantID))

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, probeURL, nil)
	if err != nil {
		d.logger.Warn("building probe request failed", "host", host, "error", err)
		return false
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("probe failed", "host", host, "tenant", tenantID, "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
