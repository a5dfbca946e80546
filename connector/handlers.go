// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"datashelf/platform/auth"
	"datashelf/platform/service"
	"datashelf/platform/sources/base"
)

// DataService is the service surface the handlers dispatch to.
type DataService interface {
	ValidateConnection(ctx context.Context, settings base.Settings) auth.ValidationResult
	QueryData(ctx context.Context, req service.QueryRequest) (service.QueryResult, error)
	DiscoverData(ctx context.Context, req service.QueryRequest) (service.DiscoveryResult, error)
}

// Handler handles the connector's HTTP API
type Handler struct {
	service DataService
	logger  *log.Logger
}

// NewHandler creates a new connector handler
func NewHandler(service DataService) *Handler {
	return &Handler{
		service: service,
		logger:  log.Default(),
	}
}

// NewHandlerWithLogger creates a new connector handler with a custom logger
func NewHandlerWithLogger(service DataService, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the connector API routes with a gorilla/mux router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/validate", h.Validate).Methods("POST")
	r.HandleFunc("/api/query", h.Query).Methods("POST")
	r.HandleFunc("/api/discovery", h.Discovery).Methods("POST")
	r.HandleFunc("/api/healthcheck", h.HealthCheck).Methods("GET")
}

// ValidateRequest is the request body of the validate endpoint.
type ValidateRequest struct {
	Settings base.Settings `json:"settings"`
}

// Validate handles POST /api/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.ValidateConnection(r.Context(), req.Settings))
}

// Query handles POST /api/query
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req service.QueryRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.QueryData(r.Context(), req)
	if err != nil {
		h.writeQueryError(w, "Query", err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Discovery handles POST /api/discovery
func (h *Handler) Discovery(w http.ResponseWriter, r *http.Request) {
	var req service.QueryRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.DiscoverData(r.Context(), req)
	if err != nil {
		h.writeQueryError(w, "Discovery", err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /api/healthcheck
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		h.writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return false
	}
	return true
}

// writeQueryError maps a pipeline error onto its HTTP status. Internal error
// details stay in the log; the client gets a generic message.
func (h *Handler) writeQueryError(w http.ResponseWriter, operation string, err error) {
	kind := base.KindOf(err)
	status := kind.HTTPStatus()

	switch kind {
	case base.ErrorUnauthorized:
		h.writeError(w, status, "UNAUTHORIZED", err.Error())
	case base.ErrorBadRequest:
		h.writeError(w, status, "BAD_REQUEST", err.Error())
	case base.ErrorNotFound:
		h.writeError(w, status, "NOT_FOUND", err.Error())
	default:
		h.logger.Printf("[Connector] %s error: %v", operation, err)
		h.writeError(w, status, "INTERNAL_ERROR", "Internal server error")
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   strings.ToLower(code),
		Code:    code,
		Message: message,
	})
}
