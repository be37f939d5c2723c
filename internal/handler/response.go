package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-backend/internal/apperror"
)

// ErrorResponse is the error format returned by every endpoint.
//
// The capitalized singular "Error" key is the contract the web client was
// built against — it predates this server and is kept verbatim.
type ErrorResponse struct {
	Error string `json:"Error"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body; once Encode writes,
// header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and sends the body.
//
// Status mapping (the API's historical contract, not the usual REST one):
//
//	validation   → 403 (the API has always used 403, not 400, for input errors)
//	not found    → 404
//	forbidden    → 403 (wrong password, wrong auth path)
//	conflict     → 409 (duplicate email)
//	anything else → 500, with the underlying message in the body
//
// The 500 branch deliberately exposes err.Error(): upstream failures are
// reported "with the underlying message" per the API contract.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		}

		writeJSON(w, status, ErrorResponse{Error: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
