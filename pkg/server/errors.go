package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pyrx/pyrx-cli/pkg/export"
	"github.com/pyrx/pyrx-cli/pkg/layout"
)

// errBadRequest marks malformed request bodies and parameters
var errBadRequest = errors.New("bad request")

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error to its HTTP status and a stable code
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, layout.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, layout.ErrDuplicateName):
		return http.StatusConflict, "duplicate_name"
	case errors.Is(err, layout.ErrCapacityExceeded):
		return http.StatusConflict, "capacity_exceeded"
	case errors.Is(err, layout.ErrLastContainer):
		return http.StatusConflict, "last_container"
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict, "export_in_progress"
	case errors.Is(err, layout.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "confirmation_required"
	case errors.Is(err, layout.ErrUnsupportedNesting):
		return http.StatusUnprocessableEntity, "unsupported_nesting"
	case errors.Is(err, layout.ErrInvalidName):
		return http.StatusBadRequest, "invalid_name"
	case errors.Is(err, layout.ErrInvalidDocument):
		return http.StatusBadRequest, "invalid_document"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
