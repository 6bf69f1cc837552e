package handlers

import (
	"encoding/json"
	"net/http"

	"screen_navigator/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code"`
}

func sendError(w http.ResponseWriter, message string, err error, code int) {
	log.WithFields(log.Fields{
		"error": err,
		"code":  code,
	}).Error(message)

	response := ErrorResponse{
		Message: message,
		Code:    code,
	}
	if err != nil {
		response.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// statusFor maps service errors to response codes. Unrecognised errors are
// upstream faults (model, search backend) and report as 502.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, errors.ErrUnknownAgent),
		errors.Is(err, errors.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrToolNotEnabled),
		errors.Is(err, errors.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrArtifactTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadGateway
	}
}

func sendJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
