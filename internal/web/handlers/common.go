package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondEngineError maps an engine error to an HTTP response. Local
// validation problems are the caller's fault, remote rejections keep the
// upstream status, and connectivity failures surface as a bad gateway.
func respondEngineError(w http.ResponseWriter, guidance *config.GuidanceConfig, err error) {
	var validationErr *kiosk.ValidationError
	var remoteErr *faceapi.RemoteError
	var connErr *faceapi.ConnectivityError

	switch {
	case errors.Is(err, kiosk.ErrBusy):
		respondError(w, http.StatusConflict, "another attempt is already in progress")
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &remoteErr):
		respondError(w, remoteErr.StatusCode, remoteErr.Message)
	case errors.As(err, &connErr):
		respondError(w, http.StatusBadGateway, guidance.Message("connect_failed"))
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
