package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httputil"

	"mercator-hq/janus/pkg/routing"
)

// Diagnostic headers added to proxied responses.
const (
	// HeaderEnv carries the environment tag the request was routed to.
	HeaderEnv = "X-Janus-Env"

	// HeaderOrigin carries the origin hostname that served the request.
	HeaderOrigin = "X-Janus-Origin"

	// HeaderTenant carries the tenant id that produced the decision.
	HeaderTenant = "X-Janus-Tenant"

	// HeaderForwarded marks a request that already passed through this
	// proxy. A passthrough request arriving with it means the destination
	// hostname resolves back to the router, and forwarding again would
	// loop until the connection pool saturates.
	HeaderForwarded = "X-Janus-Forwarded"
)

// decisionKey carries the routing decision through the reverse proxy.
type decisionKey struct{}

func withDecision(ctx context.Context, d *routing.Decision) context.Context {
	return context.WithValue(ctx, decisionKey{}, d)
}

func decisionFrom(ctx context.Context) *routing.Decision {
	d, _ := ctx.Value(decisionKey{}).(*routing.Decision)
	return d
}

// failureKey carries a per-request flag the error handler sets, so Forward
// can report whether the upstream actually answered.
type failureKey struct{}

func markUpstreamFailed(ctx context.Context) {
	if failed, ok := ctx.Value(failureKey{}).(*bool); ok {
		*failed = true
	}
}

// Forwarder proxies requests to origins while preserving the
// client-visible hostname.
type Forwarder struct {
	scheme      string
	resolved    *httputil.ReverseProxy
	passthrough *httputil.ReverseProxy
	logger      *slog.Logger
}

// Config configures a Forwarder.
type Config struct {
	// Scheme is the URL scheme used to reach origins ("http" or "https").
	Scheme string

	// Transport is the RoundTripper for outbound requests.
	// Defaults to http.DefaultTransport; tests inject their own.
	Transport http.RoundTripper
}

// NewForwarder creates a forwarder for resolved tenant traffic and
// passthrough traffic.
func NewForwarder(cfg Config) *Forwarder {
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}

	f := &Forwarder{
		scheme: cfg.Scheme,
		logger: slog.Default().With("component", "proxy"),
	}

	f.resolved = &httputil.ReverseProxy{
		Transport: cfg.Transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			d := decisionFrom(pr.In.Context())
			pr.Out.URL.Scheme = f.scheme
			pr.Out.URL.Host = d.OriginHost
			// The origin must see the hostname the client used, not its
			// own; only the network destination changes.
			pr.Out.Host = pr.In.Host
		},
		ModifyResponse: func(resp *http.Response) error {
			d := decisionFrom(resp.Request.Context())
			if d != nil {
				resp.Header.Set(HeaderEnv, string(d.Env))
				resp.Header.Set(HeaderOrigin, d.OriginHost)
				resp.Header.Set(HeaderTenant, d.TenantID)
			}
			return nil
		},
		ErrorHandler: f.upstreamError,
		// Flush as the origin writes so streamed responses (SSE, chunked
		// downloads) are not buffered.
		FlushInterval: -1,
	}

	f.passthrough = &httputil.ReverseProxy{
		Transport: cfg.Transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = f.scheme
			pr.Out.URL.Host = pr.In.Host
			pr.Out.Host = pr.In.Host
			pr.Out.Header.Set(HeaderForwarded, "1")
		},
		ErrorHandler:  f.upstreamError,
		FlushInterval: -1,
	}

	return f
}

// Forward proxies the request to the origin named by the decision and
// annotates the response with the diagnostic headers. It reports false when
// the upstream round trip failed and the error handler answered instead.
func (f *Forwarder) Forward(w http.ResponseWriter, r *http.Request, d *routing.Decision) bool {
	failed := false
	ctx := withDecision(r.Context(), d)
	ctx = context.WithValue(ctx, failureKey{}, &failed)
	f.resolved.ServeHTTP(w, r.WithContext(ctx))
	return !failed
}

// Passthrough forwards a non-tenant request to its original destination
// unmodified, with no routing logic and no diagnostic headers. A request
// that already carries the forwarding marker is refused instead of
// forwarded again.
func (f *Forwarder) Passthrough(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(HeaderForwarded) != "" {
		f.logger.Warn("passthrough loop detected",
			"host", r.Host,
			"path", r.URL.Path,
		)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusLoopDetected)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "request loop detected"})
		return
	}
	f.passthrough.ServeHTTP(w, r)
}

// upstreamError answers 502 with a generic JSON body. Internal hostnames
// go to the log, never to the client.
func (f *Forwarder) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	markUpstreamFailed(r.Context())

	// The client went away; nothing useful can be written.
	if errors.Is(err, context.Canceled) {
		return
	}

	d := decisionFrom(r.Context())
	origin := r.Host
	if d != nil {
		origin = d.OriginHost
	}
	f.logger.Error("upstream request failed",
		"origin", origin,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "upstream request failed"})
}
