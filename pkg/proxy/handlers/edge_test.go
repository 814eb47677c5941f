package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/janus/pkg/bindings"
	"mercator-hq/janus/pkg/config"
	"mercator-hq/janus/pkg/proxy"
	"mercator-hq/janus/pkg/routing"
	"mercator-hq/janus/pkg/telemetry/metrics"
	"mercator-hq/janus/pkg/tenant"
)

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}
	return string(body)
}

func TestEdgeHandler_RecordsUpstreamFailureOutcome(t *testing.T) {
	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:                true,
		Namespace:              "janus",
		RequestDurationBuckets: config.DefaultRequestDurationBuckets,
	})

	store := bindings.NewMemoryStore()
	defer store.Close()
	if err := store.Put(context.Background(), "acme", bindings.EnvDev); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Nothing listens on the dev origin; the proxy must answer 502 and the
	// request counter must say so.
	resolver := routing.NewResolver(store, nil, "127.0.0.1:1", "127.0.0.1:2",
		routing.Options{DefaultEnvironment: bindings.EnvStable}, collector)
	forwarder := proxy.NewForwarder(proxy.Config{Scheme: "http"})

	h := NewEdgeHandler("example.com", resolver, forwarder, tenant.Extract, collector)

	req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
	req.Host = "acme.example.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	out := scrape(t, collector)
	want := `janus_requests_total{env="dev",outcome="upstream_error",source="binding"} 1`
	if !strings.Contains(out, want) {
		t.Errorf("metrics output missing %q", want)
	}
	if strings.Contains(out, `outcome="ok"`) {
		t.Error("failed upstream request was recorded as ok")
	}
}

func TestEdgeHandler_RecordsServedRequestAsOK(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer origin.Close()
	originHost := strings.TrimPrefix(origin.URL, "http://")

	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:                true,
		Namespace:              "janus",
		RequestDurationBuckets: config.DefaultRequestDurationBuckets,
	})

	store := bindings.NewMemoryStore()
	defer store.Close()
	if err := store.Put(context.Background(), "acme", bindings.EnvDev); err != nil {
		t.Fatalf("Put: %v", err)
	}

	resolver := routing.NewResolver(store, nil, originHost, "127.0.0.1:2",
		routing.Options{DefaultEnvironment: bindings.EnvStable}, collector)
	forwarder := proxy.NewForwarder(proxy.Config{Scheme: "http"})

	h := NewEdgeHandler("example.com", resolver, forwarder, tenant.Extract, collector)

	req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
	req.Host = "acme.example.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := scrape(t, collector)
	want := `janus_requests_total{env="dev",outcome="ok",source="binding"} 1`
	if !strings.Contains(out, want) {
		t.Errorf("metrics output missing %q", want)
	}
}
