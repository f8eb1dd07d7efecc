package kiosk

import (
	"context"
	"strings"
	"sync"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

// WizardStep is the registration wizard's current state.
type WizardStep int

const (
	// StepIdentity collects the name and optional classification fields.
	StepIdentity WizardStep = iota
	// StepPhoto hosts the capture source and gates submission on an image.
	StepPhoto
)

func (s WizardStep) String() string {
	if s == StepPhoto {
		return "photo"
	}
	return "identity"
}

// Identity is the set of fields collected in the first wizard step. Only
// presence is validated, never format.
type Identity struct {
	Name       string
	Email      string
	Department string
	Role       string
}

// Wizard is the two-step registration flow. On success it resets to its
// initial state and notifies the parent; on failure all entered data is
// kept so the operator can retry.
type Wizard struct {
	gw             Gateway
	guidance       *config.GuidanceConfig
	requireDetails bool
	onRegistered   func()

	mu         sync.Mutex
	step       WizardStep
	identity   Identity
	image      *capture.Artifact
	submitting bool
}

// NewWizard creates a wizard. When requireDetails is set, email, department
// and role must be non-empty to advance past the identity step.
func NewWizard(gw Gateway, guidance *config.GuidanceConfig, requireDetails bool, onRegistered func()) *Wizard {
	return &Wizard{
		gw:             gw,
		guidance:       guidance,
		requireDetails: requireDetails,
		onRegistered:   onRegistered,
	}
}

// Step returns the current wizard step.
func (w *Wizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SetIdentity replaces the collected identity fields.
func (w *Wizard) SetIdentity(id Identity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.identity = id
}

// Identity returns the currently collected fields.
func (w *Wizard) Identity() Identity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.identity
}

// Next advances from the identity step to the photo step. All configured
// required fields must be non-empty.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepIdentity {
		return nil
	}
	if err := w.validateIdentityLocked(); err != nil {
		return err
	}
	w.step = StepPhoto
	return nil
}

// Back returns to the identity step and discards any captured image.
// Always allowed.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepIdentity
	w.image = nil
}

// Attach stores a capture artifact, replacing any previous one.
func (w *Wizard) Attach(image *capture.Artifact) error {
	if image == nil || len(image.Data) == 0 {
		return &ValidationError{Message: w.guidance.Message("missing_image")}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.image = image
	return nil
}

// ClearImage discards the captured image without touching identity fields.
func (w *Wizard) ClearImage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.image = nil
}

// HasImage reports whether a capture artifact is attached.
func (w *Wizard) HasImage() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.image != nil
}

// CanSubmit reports whether a submission would pass local validation and no
// submission is currently in flight.
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step == StepPhoto && w.image != nil && !w.submitting && w.validateIdentityLocked() == nil
}

// Submit registers the user. Exactly one submission may be in flight at a
// time. On success the wizard is reset to the identity step and the
// registered callback fires; on failure the state is left untouched.
func (w *Wizard) Submit(ctx context.Context) (*faceapi.RegisterResult, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	if err := w.validateIdentityLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.image == nil {
		w.mu.Unlock()
		return nil, &ValidationError{Message: w.guidance.Message("missing_image")}
	}
	w.submitting = true
	req := faceapi.RegisterRequest{
		Username:   strings.TrimSpace(w.identity.Name),
		Email:      w.identity.Email,
		Department: w.identity.Department,
		Role:       w.identity.Role,
		Image:      w.image,
	}
	w.mu.Unlock()

	result, err := w.gw.RegisterUser(ctx, req)

	w.mu.Lock()
	w.submitting = false
	if err == nil {
		w.identity = Identity{}
		w.image = nil
		w.step = StepIdentity
	}
	w.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if w.onRegistered != nil {
		w.onRegistered()
	}
	return result, nil
}

func (w *Wizard) validateIdentityLocked() error {
	if strings.TrimSpace(w.identity.Name) == "" {
		return &ValidationError{Message: w.guidance.Message("missing_name")}
	}
	if w.requireDetails {
		for _, field := range []string{w.identity.Email, w.identity.Department, w.identity.Role} {
			if strings.TrimSpace(field) == "" {
				return &ValidationError{Message: "Please fill in email, department and role"}
			}
		}
	}
	return nil
}
