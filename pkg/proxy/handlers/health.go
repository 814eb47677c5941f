package handlers

import (
	"net/http"
	"time"

	"mercator-hq/janus/pkg/bindings"
	"mercator-hq/janus/pkg/origins"
)

// OriginStatus reports the reachability of the routed origins. It is
// implemented by origins.Checker.
type OriginStatus interface {
	Ready() bool
	Status() map[bindings.Environment]origins.Status
}

// HealthHandler handles liveness probe requests. It always reports healthy
// while the process is serving.
type HealthHandler struct{}

// NewHealthHandler creates a new liveness handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// ReadyHandler handles readiness probe requests. The router is ready when at
// least one origin is reachable; with no checker configured it is always
// ready.
type ReadyHandler struct {
	origins OriginStatus
}

// NewReadyHandler creates a new readiness handler. The checker may be nil.
func NewReadyHandler(oc OriginStatus) *ReadyHandler {
	return &ReadyHandler{origins: oc}
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ready := h.origins == nil || h.origins.Ready()

	status := "ready"
	statusCode := http.StatusOK
	if !ready {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
	}
	if h.origins != nil {
		origins := make(map[string]interface{})
		for env, st := range h.origins.Status() {
			entry := map[string]interface{}{
				"reachable":  st.Reachable,
				"last_check": st.LastChecked.Unix(),
			}
			if st.LastError != "" {
				entry["last_error"] = st.LastError
			}
			origins[string(env)] = entry
		}
		response["origins"] = origins
	}

	writeJSON(w, statusCode, response)
}
