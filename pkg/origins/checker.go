package origins

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mercator-hq/janus/pkg/bindings"
	"mercator-hq/janus/pkg/telemetry/metrics"
)

// Status is the recorded reachability of one origin.
type Status struct {
	// Reachable is the result of the most recent sweep.
	Reachable bool

	// ConsecutiveFailures counts sweeps failed in a row.
	ConsecutiveFailures int

	// LastChecked is when the origin was last swept. Zero before the
	// first sweep.
	LastChecked time.Time

	// LastError describes the most recent failure, empty when reachable.
	LastError string
}

// Checker sweeps both origins on a cron schedule.
type Checker struct {
	client    *http.Client
	scheme    string
	hosts     map[bindings.Environment]string
	schedule  string
	cron      *cron.Cron
	collector *metrics.Collector
	logger    *slog.Logger

	mu     sync.RWMutex
	status map[bindings.Environment]Status
}

// Config configures a Checker.
type Config struct {
	// Scheme is the URL scheme used to reach the origins.
	Scheme string

	// DevHost and StableHost are the two origin hostnames.
	DevHost    string
	StableHost string

	// Schedule is a cron expression, including the "@every <duration>"
	// form. Empty disables scheduled sweeps (manual Sweep still works).
	Schedule string

	// CheckTimeout bounds each reachability check.
	// Default: 5s
	CheckTimeout time.Duration

	// Client is the HTTP client for checks. Defaults to a dedicated client.
	Client *http.Client
}

// NewChecker creates a checker for the two origins.
func NewChecker(cfg Config, collector *metrics.Collector) *Checker {
	if cfg.CheckTimeout == 0 {
		cfg.CheckTimeout = 5 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.CheckTimeout}
	}

	return &Checker{
		client: client,
		scheme: cfg.Scheme,
		hosts: map[bindings.Environment]string{
			bindings.EnvDev:    cfg.DevHost,
			bindings.EnvStable: cfg.StableHost,
		},
		schedule:  cfg.Schedule,
		cron:      cron.New(),
		collector: collector,
		logger:    slog.Default().With("component", "origins"),
		status:    make(map[bindings.Environment]Status),
	}
}

// Start runs an immediate sweep and then sweeps on the configured
// schedule until the context is cancelled. With an empty schedule only the
// initial sweep runs.
func (c *Checker) Start(ctx context.Context) error {
	c.Sweep(ctx)

	if c.schedule == "" {
		c.logger.Info("origin sweep schedule not configured, scheduled sweeps disabled")
		return nil
	}

	if _, err := cron.ParseStandard(c.schedule); err != nil {
		return fmt.Errorf("invalid origin health schedule %q: %w", c.schedule, err)
	}

	if _, err := c.cron.AddFunc(c.schedule, func() { c.Sweep(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule origin sweeps: %w", err)
	}
	c.cron.Start()

	c.logger.Info("origin health sweeps started", "schedule", c.schedule)

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return nil
}

// Stop halts scheduled sweeps.
func (c *Checker) Stop() {
	stopped := c.cron.Stop()
	<-stopped.Done()
}

// Sweep checks both origins concurrently and records the results.
func (c *Checker) Sweep(ctx context.Context) {
	var wg sync.WaitGroup
	for env, host := range c.hosts {
		wg.Add(1)
		go func(env bindings.Environment, host string) {
			defer wg.Done()
			c.check(ctx, env, host)
		}(env, host)
	}
	wg.Wait()
}

// check performs one reachability check. Any HTTP response counts as
// reachable; only transport-level failures mark the origin down.
func (c *Checker) check(ctx context.Context, env bindings.Environment, host string) {
	url := fmt.Sprintf("%s://%s/", c.scheme, host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.record(env, host, err)
		return
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.record(env, host, err)
		return
	}
	resp.Body.Close()
	c.record(env, host, nil)
}

// record updates the status for one origin and emits telemetry.
func (c *Checker) record(env bindings.Environment, host string, err error) {
	c.mu.Lock()
	st := c.status[env]
	st.LastChecked = time.Now()
	if err != nil {
		st.Reachable = false
		st.ConsecutiveFailures++
		st.LastError = err.Error()
	} else {
		if st.ConsecutiveFailures > 0 {
			c.logger.Info("origin recovered", "env", env, "previous_failures", st.ConsecutiveFailures)
		}
		st.Reachable = true
		st.ConsecutiveFailures = 0
		st.LastError = ""
	}
	c.status[env] = st
	c.mu.Unlock()

	c.collector.SetOriginUp(string(env), err == nil)

	if err != nil {
		c.logger.Warn("origin unreachable", "env", env, "host", host, "error", err)
	}
}

// Status returns a snapshot of the recorded origin statuses.
func (c *Checker) Status() map[bindings.Environment]Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[bindings.Environment]Status, len(c.status))
	for env, st := range c.status {
		out[env] = st
	}
	return out
}

// Ready reports whether at least one origin is reachable. Before the
// first sweep completes nothing has been recorded and Ready is false.
func (c *Checker) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, st := range c.status {
		if st.Reachable {
			return true
		}
	}
	return false
}
