package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"mentorhub/domain/entities"

	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logrus.WithError(err).Error("failed to encode response")
		}
	}
}

// writeError maps domain errors onto HTTP status codes. Unrecognized errors
// become 500s with a generic body so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidInterval):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, entities.ErrMentorNotFound),
		errors.Is(err, entities.ErrAppointmentNotFound),
		errors.Is(err, entities.ErrWalletNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, entities.ErrSlotUnavailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, entities.ErrInsufficientBalance):
		writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: err.Error()})
	case errors.Is(err, entities.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		logrus.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
