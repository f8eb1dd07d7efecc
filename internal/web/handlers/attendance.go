package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

// AttendanceHandler manages today's attendance records.
type AttendanceHandler struct {
	engine   *kiosk.Kiosk
	broker   *ConfirmBroker
	guidance *config.GuidanceConfig
}

// NewAttendanceHandler creates an attendance handler.
func NewAttendanceHandler(engine *kiosk.Kiosk, broker *ConfirmBroker, guidance *config.GuidanceConfig) *AttendanceHandler {
	return &AttendanceHandler{engine: engine, broker: broker, guidance: guidance}
}

// Delete removes today's attendance for one person, guarded by the
// confirmation token exchange.
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := faceapi.NormalizeUsername(chi.URLParam(r, "username"))

	prompt := "Remove today's attendance for " + faceapi.DisplayName(username) + "?"
	if !h.broker.Require(w, r, "delete-attendance:"+username, prompt) {
		return
	}

	if err := h.engine.Board.DeleteRecord(r.Context(), faceapi.AttendanceRecord{Username: username}); err != nil {
		log.Printf("attendance: delete for %q failed: %v", sanitizeForLog(username), err)
		respondEngineError(w, h.guidance, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"removed": true, "username": username})
}

// Clear removes every record currently shown for today and returns the
// aggregate summary.
func (h *AttendanceHandler) Clear(w http.ResponseWriter, r *http.Request) {
	count := len(h.engine.Poller.Snapshot().Today)
	if count == 0 {
		respondJSON(w, http.StatusOK, kiosk.ClearSummary{})
		return
	}

	if !h.broker.Require(w, r, "clear-attendance", h.guidance.Message("clear_all_prompt", count)) {
		return
	}

	summary, err := h.engine.Board.ClearAll(r.Context())
	if err != nil {
		log.Printf("attendance: clear all failed: %v", err)
		respondEngineError(w, h.guidance, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
