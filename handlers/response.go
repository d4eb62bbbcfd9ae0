package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskboard/logging"
	"taskboard/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps the service error taxonomy onto status codes. Anything
// unclassified is logged and surfaces as a generic 500 with no internal
// detail.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrNotificationNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		respondMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUserExists):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, err.Error())
	default:
		logging.Logger.Errorf("Event ID: UNHANDLED_ERROR, Description: %v", err)
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
