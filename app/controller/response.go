package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"storefront-home/service"
)

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrLocationNotFound),
		errors.Is(err, service.ErrStoreNotFound),
		errors.Is(err, service.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyLayout),
		errors.Is(err, service.ErrInvalidLayout),
		errors.Is(err, service.ErrInvalidImageSource):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError answers a failed service call. Unexpected errors are logged and hidden from the client.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("❌ %s failed", op)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
