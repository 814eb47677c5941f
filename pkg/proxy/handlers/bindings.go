package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"mercator-hq/janus/pkg/bindings"
	"mercator-hq/janus/pkg/security/auth"
	"mercator-hq/janus/pkg/telemetry/metrics"
)

// ControlPlanePrefix is the path family for the binding-management API.
const ControlPlanePrefix = "/__binding/"

// BindingsHandler implements the authenticated control-plane API:
//
//	GET    /__binding/{tenantId}   read the binding (env is null if unbound)
//	PUT    /__binding/{tenantId}   set the binding, body {"env":"dev"|"stable"}
//	DELETE /__binding/{tenantId}   remove the binding (idempotent)
//
// Every request is authenticated before the store is touched.
type BindingsHandler struct {
	store     bindings.Store
	verifier  *auth.BearerVerifier
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewBindingsHandler creates the control-plane handler.
func NewBindingsHandler(store bindings.Store, verifier *auth.BearerVerifier, collector *metrics.Collector) *BindingsHandler {
	return &BindingsHandler{
		store:     store,
		verifier:  verifier,
		collector: collector,
		logger:    slog.Default().With("component", "controlplane"),
	}
}

// bindingResponse is the GET response body. Env is a pointer so an unbound
// tenant serializes as env: null rather than an empty string.
type bindingResponse struct {
	TenantID string  `json:"tenantId"`
	Env      *string `json:"env"`
}

// putRequest is the PUT request body.
type putRequest struct {
	Env string `json:"env"`
}

func (h *BindingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.verifier.Verify(r) {
		h.logger.Warn("unauthorized control-plane request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tenantID := strings.ToLower(strings.TrimPrefix(r.URL.Path, ControlPlanePrefix))
	if tenantID == "" || strings.Contains(tenantID, "/") {
		writeError(w, http.StatusBadRequest, "missing or invalid tenant id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, tenantID)
	case http.MethodPut:
		h.handlePut(w, r, tenantID)
	case http.MethodDelete:
		h.handleDelete(w, r, tenantID)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *BindingsHandler) handleGet(w http.ResponseWriter, r *http.Request, tenantID string) {
	env, ok, err := h.store.Get(r.Context(), tenantID)
	if err != nil {
		h.storeError(w, "get", tenantID, err)
		return
	}
	h.collector.RecordBindingOp("get", "ok")

	resp := bindingResponse{TenantID: tenantID}
	if ok {
		s := string(env)
		resp.Env = &s
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BindingsHandler) handlePut(w http.ResponseWriter, r *http.Request, tenantID string) {
	var body putRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with an \"env\" field")
		return
	}

	env, err := bindings.ParseEnvironment(body.Env)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Put(r.Context(), tenantID, env); err != nil {
		h.storeError(w, "put", tenantID, err)
		return
	}
	h.collector.RecordBindingOp("put", "ok")
	h.logger.Info("binding updated", "tenant", tenantID, "env", env)

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"tenantId": tenantID,
		"env":      string(env),
	})
}

func (h *BindingsHandler) handleDelete(w http.ResponseWriter, r *http.Request, tenantID string) {
	if err := h.store.Delete(r.Context(), tenantID); err != nil {
		h.storeError(w, "delete", tenantID, err)
		return
	}
	h.collector.RecordBindingOp("delete", "ok")
	h.logger.Info("binding deleted", "tenant", tenantID)

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"tenantId": tenantID,
		"deleted":  true,
	})
}

// storeError answers 500 with a generic message; the cause stays in the log.
func (h *BindingsHandler) storeError(w http.ResponseWriter, op, tenantID string, err error) {
	h.collector.RecordBindingOp(op, "error")
	h.logger.Error("binding store operation failed",
		"op", op,
		"tenant", tenantID,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "binding store unavailable")
}
