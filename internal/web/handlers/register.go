package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

const maxUploadBytes = 10 << 20

// RegisterHandler drives the registration wizard over HTTP. The frontend
// captures the photo itself, so a submission arrives as one multipart
// request carrying the identity fields and the image.
type RegisterHandler struct {
	engine   *kiosk.Kiosk
	guidance *config.GuidanceConfig
}

// NewRegisterHandler creates a register handler.
func NewRegisterHandler(engine *kiosk.Kiosk, guidance *config.GuidanceConfig) *RegisterHandler {
	return &RegisterHandler{engine: engine, guidance: guidance}
}

// Register validates the identity fields, attaches the uploaded photo and
// submits the registration in one step.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	wizard := h.engine.Wizard
	wizard.SetIdentity(kiosk.Identity{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Department: r.FormValue("department"),
		Role:       r.FormValue("role"),
	})
	if err := wizard.Next(); err != nil {
		respondEngineError(w, h.guidance, err)
		return
	}

	artifact, err := readUploadedImage(r)
	if err != nil {
		respondEngineError(w, h.guidance, err)
		return
	}
	if err := wizard.Attach(artifact); err != nil {
		respondEngineError(w, h.guidance, err)
		return
	}

	result, err := wizard.Submit(r.Context())
	if err != nil {
		log.Printf("register: submission for %q failed: %v", sanitizeForLog(r.FormValue("name")), err)
		h.respondSubmitError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// respondSubmitError reports a failed registration. Errors that carry no
// user-facing message fall back to the generic registration failure text
// instead of leaking internals.
func (h *RegisterHandler) respondSubmitError(w http.ResponseWriter, err error) {
	var validationErr *kiosk.ValidationError
	var remoteErr *faceapi.RemoteError
	var connErr *faceapi.ConnectivityError
	if errors.Is(err, kiosk.ErrBusy) || errors.As(err, &validationErr) ||
		errors.As(err, &remoteErr) || errors.As(err, &connErr) {
		respondEngineError(w, h.guidance, err)
		return
	}
	respondError(w, http.StatusInternalServerError, h.guidance.Message("register_failed"))
}

// readUploadedImage extracts the photo from the multipart form.
func readUploadedImage(r *http.Request) (*capture.Artifact, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &kiosk.ValidationError{Message: "Please capture or select a photo first"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, &kiosk.ValidationError{Message: "could not read the uploaded photo"}
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	filename := header.Filename
	if filename == "" {
		filename = "photo.jpg"
	}
	return &capture.Artifact{Data: data, MIME: mimeType, Filename: filename}, nil
}
