package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/apperror"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}

// writeAppError is the single place mapping the error taxonomy to HTTP
// status codes.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperror.As(err)
	if ae == nil {
		slog.ErrorContext(r.Context(), "unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	status := http.StatusInternalServerError
	switch ae.Kind() {
	case apperror.KindValidation, apperror.KindUnavailable, apperror.KindInvalidState:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindAuthorization:
		status = http.StatusForbidden
	case apperror.KindDependency:
		status = http.StatusBadGateway
		slog.ErrorContext(r.Context(), "dependency failure", "code", ae.Code(), "error", err)
	}
	writeError(w, status, ae.Code(), ae.Message())
}
