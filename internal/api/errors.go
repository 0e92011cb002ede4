package api

import (
	"net/http"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

type errorResponse struct {
	Code    errors.Code `json:"code,omitempty"`
	Message string      `json:"message"`
	Detail  string      `json:"detail"`
}

// statusFor maps a coded error to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNoSuchXform, errors.ErrCodeNoSuchInputPort, errors.ErrCodeNoSuchOutputPort,
		errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeXformExists, errors.ErrCodeGraphHasCycle:
		return http.StatusConflict
	case errors.ErrCodePortsIncompatible:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logger.Warn("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	writeJSON(w, status, errorResponse{
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
		Detail:  err.Error(),
	})
}
