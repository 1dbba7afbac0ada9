package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sechelper/internal/core/domain"
	"sechelper/internal/core/domain/repository"
	"sechelper/internal/logger"
)

// HTTPHandler handles incoming HTTP requests for the status API.
type HTTPHandler struct {
	registry repository.AddressRegistry
	detector string
	started  time.Time
	logger   logger.AppLogger
}

// NewHTTPHandler creates a new handler. The registry may be nil when the detector runs without one.
func NewHTTPHandler(registry repository.AddressRegistry, detector string, appLogger logger.AppLogger) (*HTTPHandler, error) {
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for HTTPHandler")
	}
	return &HTTPHandler{
		registry: registry,
		detector: detector,
		started:  time.Now(),
		logger:   appLogger,
	}, nil
}

// HandleHealth handles requests to GET /health
func (h *HTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", requestLogger)
		return
	}

	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Detector:      h.detector,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}, requestLogger)
}

// HandleRegistry handles requests to GET /registry/{category}
func (h *HTTPHandler) HandleRegistry(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", requestLogger)
		return
	}
	if h.registry == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Registry is not configured", requestLogger)
		return
	}

	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), requestLogger)
		return
	}

	addrs, err := h.registry.Classified(r.Context(), category)
	if err != nil {
		requestLogger.Error("Error reading registry", "category", category, logger.KeyError, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to read registry", requestLogger)
		return
	}

	resp := RegistryResponse{
		Category:  string(category),
		Count:     len(addrs),
		Addresses: make([]string, 0, len(addrs)),
	}
	for _, a := range addrs {
		resp.Addresses = append(resp.Addresses, a.Checksum())
	}
	respondWithJSON(w, http.StatusOK, resp, requestLogger)
}

// respondWithError logs a warning and sends a JSON error response with the given code and message.
func respondWithError(w http.ResponseWriter, code int, message string, l logger.AppLogger) {
	l.Warn("Responding with error", "http_code", code, "message", message)
	respondWithJSON(w, code, ErrorResponse{Error: message}, l)
}

// respondWithJSON marshals the given payload into JSON and writes it to the response writer.
func respondWithJSON(w http.ResponseWriter, code int, payload any, l logger.AppLogger) {
	response, err := json.Marshal(payload)
	if err != nil {
		l.Error("Error marshaling JSON response", logger.KeyError, err.Error(), "payload_type", fmt.Sprintf("%T", payload))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if n, writeErr := w.Write(response); writeErr != nil {
		l.Error("Error writing response body", logger.KeyError, writeErr, "bytes_written", n)
	}
}
