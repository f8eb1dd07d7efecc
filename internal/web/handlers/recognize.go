package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

// RecognizeHandler runs single-attempt recognition. A multipart request
// submits the frontend's own camera frame; an empty body falls back to the
// kiosk's configured camera.
type RecognizeHandler struct {
	engine   *kiosk.Kiosk
	guidance *config.GuidanceConfig
}

// NewRecognizeHandler creates a recognize handler.
func NewRecognizeHandler(engine *kiosk.Kiosk, guidance *config.GuidanceConfig) *RecognizeHandler {
	return &RecognizeHandler{engine: engine, guidance: guidance}
}

// Recognize submits one attempt and returns the outcome.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	board := h.engine.Board

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		artifact, err := readUploadedImage(r)
		if err != nil {
			respondEngineError(w, h.guidance, err)
			return
		}
		outcome, err := board.RecognizeImage(r.Context(), artifact)
		if err != nil {
			log.Printf("recognize: uploaded frame failed: %v", err)
			respondEngineError(w, h.guidance, err)
			return
		}
		respondJSON(w, http.StatusOK, outcome)
		return
	}

	outcome, err := board.Recognize(r.Context())
	if err != nil {
		log.Printf("recognize: camera attempt failed: %v", err)
		respondEngineError(w, h.guidance, err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}
