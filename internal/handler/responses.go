package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to a buffer first; headers are already sent, so an encode error
	// can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a domain error to an HTTP status and user-facing
// message. Internal error details never reach the client.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		respondError(w, http.StatusNotFound, ErrMsgNoActiveActivity)
	case errors.Is(err, domain.ErrActivityActive):
		respondError(w, http.StatusConflict, ErrMsgActivityInProgress)
	case errors.Is(err, domain.ErrResourceNotFound):
		respondError(w, http.StatusNotFound, ErrMsgResourceNotFound)
	case errors.Is(err, domain.ErrResourceUnavailable):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgResourceUnavailable)
	case errors.Is(err, domain.ErrToolRequired):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgToolRequired)
	case errors.Is(err, domain.ErrInsufficientLevel):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgInsufficientLevel)
	case errors.Is(err, domain.ErrBaitRequired):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgBaitRequired)
	case errors.Is(err, domain.ErrBaitInvalid):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgBaitInvalid)
	case errors.Is(err, domain.ErrInsufficientMaterials):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgInsufficientMaterials)
	case errors.Is(err, domain.ErrInventoryFull):
		respondError(w, http.StatusUnprocessableEntity, ErrMsgInventoryFull)
	case errors.Is(err, domain.ErrPlayerNotFound):
		respondError(w, http.StatusNotFound, ErrMsgPlayerNotFound)
	default:
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
	}
}
