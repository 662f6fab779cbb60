package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"musicapp/core/catalog"
	"musicapp/logger"
	"musicapp/model"
)

var (
	notFoundBody         = model.ErrorResponse{Error: "Not found"}
	methodNotAllowedBody = model.ErrorResponse{Error: "Method not allowed"}
)

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, methodNotAllowedBody)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// statusFor maps a catalog error kind onto an HTTP status.
func statusFor(kind catalog.ErrorKind) int {
	switch kind {
	case catalog.KindNotFound:
		return http.StatusNotFound
	case catalog.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": msg}. The underlying cause of a
// service failure is logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *catalog.Error
	if !errors.As(err, &apiErr) {
		apiErr = catalog.ServiceError("Internal server error", err)
	}

	status := statusFor(apiErr.Kind)
	if status == http.StatusInternalServerError {
		logger.Error(apiErr.Message,
			logger.String("path", r.URL.Path),
			logger.String("request_id", requestIDFrom(r.Context())),
			logger.ErrorField(apiErr.Err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: apiErr.Message})
}
