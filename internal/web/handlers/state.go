package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

// StateHandler exposes the engine's display state and the active tab.
type StateHandler struct {
	engine *kiosk.Kiosk
}

// NewStateHandler creates a state handler.
func NewStateHandler(engine *kiosk.Kiosk) *StateHandler {
	return &StateHandler{engine: engine}
}

// StateResponse is the full snapshot a frontend needs to render the kiosk.
type StateResponse struct {
	Tab          kiosk.Tab                   `json:"tab"`
	Status       *faceapi.ModelStatus        `json:"status"`
	Today        []faceapi.AttendanceRecord  `json:"today"`
	UpdatedAt    time.Time                   `json:"updated_at"`
	CanRecognize bool                        `json:"can_recognize"`
	Guidance     string                      `json:"guidance,omitempty"`
	Outcome      *faceapi.RecognitionOutcome `json:"outcome,omitempty"`
	Banner       *kiosk.Banner               `json:"banner,omitempty"`
	WizardStep   string                      `json:"wizard_step"`
	HasImage     bool                        `json:"wizard_has_image"`
}

// Get returns the current display state.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Poller.Snapshot()
	today := snap.Today
	if today == nil {
		today = []faceapi.AttendanceRecord{}
	}

	respondJSON(w, http.StatusOK, StateResponse{
		Tab:          h.engine.Tabs.Active(),
		Status:       snap.Status,
		Today:        today,
		UpdatedAt:    snap.UpdatedAt,
		CanRecognize: h.engine.Board.CanRecognize(),
		Guidance:     h.engine.Board.Guidance(),
		Outcome:      h.engine.Board.Outcome(),
		Banner:       h.engine.Board.Banner(),
		WizardStep:   h.engine.Wizard.Step().String(),
		HasImage:     h.engine.Wizard.HasImage(),
	})
}

// Refresh asks the poller for an immediate tick.
func (h *StateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.engine.Poller.Refresh()
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
}

// SetTab switches the active view.
func (h *StateHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tab string `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tab, err := kiosk.ParseTab(body.Tab)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.engine.SetTab(tab)
	respondJSON(w, http.StatusOK, map[string]string{"tab": string(tab)})
}
