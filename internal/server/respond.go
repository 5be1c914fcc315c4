package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/observability"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch orgerrors.GetCode(err) {
	case orgerrors.ErrCodeMissingUnitData:
		return http.StatusUnprocessableEntity
	case orgerrors.ErrCodeInvalidInput, orgerrors.ErrCodeInvalidFormat, orgerrors.ErrCodeInvalidStyle,
		orgerrors.ErrCodeInvalidUnitID, orgerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case orgerrors.ErrCodeNotFound, orgerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case orgerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Internal errors hide their message and
// are reported to the HTTP hooks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(orgerrors.GetCode(err))
	message := orgerrors.UserMessage(err)

	if status == http.StatusInternalServerError || status == http.StatusGatewayTimeout {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		if code == "" {
			code = string(orgerrors.ErrCodeInternal)
		}
		message = http.StatusText(status)
	}
	writeError(w, status, code, message)
}
