package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

// UsersHandler serves the people directory.
type UsersHandler struct {
	engine   *kiosk.Kiosk
	broker   *ConfirmBroker
	guidance *config.GuidanceConfig
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(engine *kiosk.Kiosk, broker *ConfirmBroker, guidance *config.GuidanceConfig) *UsersHandler {
	return &UsersHandler{engine: engine, broker: broker, guidance: guidance}
}

// UsersResponse bundles the summary list with the derived aggregates.
type UsersResponse struct {
	Users []faceapi.RegisteredUser `json:"users"`
	Stats kiosk.DirectoryStats     `json:"stats"`
}

// List fetches and returns the registered people with directory stats.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	dir := h.engine.Directory
	if err := dir.Load(r.Context()); err != nil {
		respondEngineError(w, h.guidance, err)
		return
	}
	users := dir.Users()
	if users == nil {
		users = []faceapi.RegisteredUser{}
	}
	respondJSON(w, http.StatusOK, UsersResponse{Users: users, Stats: dir.Stats()})
}

// Get returns one person's detail.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	detail, err := h.engine.Directory.Select(r.Context(), username)
	if err != nil {
		if faceapi.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondEngineError(w, h.guidance, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Delete removes a person after the confirmation token exchange. The 409
// response spells out the cascade so the frontend can show it verbatim.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := faceapi.NormalizeUsername(chi.URLParam(r, "username"))

	prompt := h.guidance.Message("delete_user_consequences", faceapi.DisplayName(username))
	if !h.broker.Require(w, r, "delete-user:"+username, prompt) {
		return
	}

	result, err := h.engine.Directory.Delete(r.Context(), username)
	if err != nil {
		log.Printf("users: delete of %q failed: %v", sanitizeForLog(username), err)
		respondEngineError(w, h.guidance, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
