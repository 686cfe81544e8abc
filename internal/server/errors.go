package server

import (
	"encoding/json"
	"errors"
	"net/http"

	ferrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/observability"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch code := ferrors.GetCode(err); {
	case ferrors.IsValidation(err):
		return http.StatusBadRequest
	case code == ferrors.ErrCodeSizing:
		return http.StatusUnprocessableEntity
	case code == ferrors.ErrCodeNotFound, code == ferrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == ferrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := ferrors.GetCode(err)
	if code == "" {
		code = ferrors.ErrCodeInternal
	}

	msg := clientMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	s.writeJSON(w, status, ErrorResponse{
		RequestID: RequestID(r.Context()),
		Code:      string(code),
		Message:   msg,
	})
}

// clientMessage is the user-facing message of err followed by that of its
// direct cause, if any.
func clientMessage(err error) string {
	var e *ferrors.Error
	if errors.As(err, &e) && e.Cause != nil {
		return e.Message + ": " + ferrors.UserMessage(e.Cause)
	}
	return ferrors.UserMessage(err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}
