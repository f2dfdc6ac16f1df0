package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/smartview/pkg/errors"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// statusOf maps an error code to the HTTP status it answers with.
func statusOf(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeTreeNotFound), errors.Is(err, errors.ErrCodeNotFound),
		errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeConflict):
		return http.StatusConflict
	case errors.Is(err, errors.ErrCodeNetwork):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error", Code: errors.ErrCodeInternal})
		return
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}
