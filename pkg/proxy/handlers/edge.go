package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/janus/pkg/proxy"
	"mercator-hq/janus/pkg/routing"
	"mercator-hq/janus/pkg/telemetry/metrics"
)

// EdgeHandler routes ordinary tenant traffic. For each request it extracts
// the tenant from the hostname, resolves an environment and forwards the
// request there. Hostnames outside the base domain are passed through
// untouched.
type EdgeHandler struct {
	baseDomain string
	resolver   *routing.Resolver
	forwarder  *proxy.Forwarder
	extract    func(hostname, baseDomain string) (string, bool)
	collector  *metrics.Collector
	logger     *slog.Logger
}

// NewEdgeHandler creates the data-plane edge handler.
func NewEdgeHandler(baseDomain string, resolver *routing.Resolver, forwarder *proxy.Forwarder, extract func(hostname, baseDomain string) (string, bool), collector *metrics.Collector) *EdgeHandler {
	return &EdgeHandler{
		baseDomain: baseDomain,
		resolver:   resolver,
		forwarder:  forwarder,
		extract:    extract,
		collector:  collector,
		logger:     slog.Default().With("component", "edge"),
	}
}

func (h *EdgeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tenantID, ok := h.extract(r.Host, h.baseDomain)
	if !ok {
		h.collector.RecordRequest("", "passthrough", "ok", 0)
		h.forwarder.Passthrough(w, r)
		return
	}

	decision, err := h.resolver.Resolve(r.Context(), tenantID)
	if err != nil {
		// Without the binding lookup there is no safe routing decision.
		h.logger.Error("environment resolution failed",
			"tenant", tenantID,
			"host", r.Host,
			"error", err,
		)
		h.collector.RecordRequest("", "none", "error", 0)
		writeError(w, http.StatusBadGateway, "routing unavailable")
		return
	}

	h.logger.Debug("routing tenant request",
		"tenant", decision.TenantID,
		"env", decision.Env,
		"origin", decision.OriginHost,
		"source", decision.Source,
		"method", r.Method,
		"path", r.URL.Path,
	)

	outcome := "ok"
	if !h.forwarder.Forward(w, r, decision) {
		outcome = "upstream_error"
	}
	h.collector.RecordRequest(string(decision.Env), string(decision.Source), outcome, time.Since(start).Seconds())
}
