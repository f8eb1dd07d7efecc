package kiosk

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

// BannerLevel classifies a result banner.
type BannerLevel string

const (
	BannerSuccess BannerLevel = "success"
	BannerWarning BannerLevel = "warning"
	BannerError   BannerLevel = "error"
)

// Banner is a transient result message shown after a deletion. It
// auto-clears after the configured TTL.
type Banner struct {
	Level   BannerLevel `json:"level"`
	Message string      `json:"message"`
}

// ClearSummary aggregates a clear-all run. Partial failures are not
// itemized; the follow-up refresh reveals the true remaining set.
type ClearSummary struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Board drives the single-attempt recognize flow and deletion of today's
// attendance records.
type Board struct {
	gw        Gateway
	camera    capture.Source
	poller    *Poller
	confirm   Confirmer
	guidance  *config.GuidanceConfig
	bannerTTL time.Duration

	mu          sync.Mutex
	recognizing bool
	outcome     *faceapi.RecognitionOutcome
	banner      *Banner
	bannerTimer *time.Timer
}

// NewBoard creates a board bound to a camera and the shared poller.
func NewBoard(gw Gateway, camera capture.Source, poller *Poller, confirm Confirmer, guidance *config.GuidanceConfig, bannerTTL time.Duration) *Board {
	return &Board{
		gw:        gw,
		camera:    camera,
		poller:    poller,
		confirm:   confirm,
		guidance:  guidance,
		bannerTTL: bannerTTL,
	}
}

// CanRecognize reports whether the recognize control is enabled: the model
// must be trained and no attempt may be in flight.
func (b *Board) CanRecognize() bool {
	st := b.poller.Snapshot().Status
	b.mu.Lock()
	defer b.mu.Unlock()
	return st != nil && st.ModelTrained && !b.recognizing
}

// Guidance returns the text shown next to a disabled recognize control, or
// an empty string when the control is enabled.
func (b *Board) Guidance() string {
	st := b.poller.Snapshot().Status
	if st != nil && st.ModelTrained {
		return ""
	}
	if st != nil && st.TrainingInProgress {
		return b.guidance.Message("training_in_progress")
	}
	minUsers := 2
	if st != nil && st.MinUsersRequired > 0 {
		minUsers = st.MinUsersRequired
	}
	return b.guidance.Message("model_not_ready", minUsers)
}

// Recognize captures one camera frame, submits it, and stores the outcome.
// Refused with a ValidationError while the model is untrained. The poller
// is asked for an immediate refresh after every submitted attempt, success
// or failure, so the display reflects server truth.
func (b *Board) Recognize(ctx context.Context) (*faceapi.RecognitionOutcome, error) {
	release, err := b.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	image, err := b.camera.Capture(ctx)
	if err != nil {
		return nil, &ValidationError{Message: b.guidance.Message("camera_failed")}
	}
	return b.submit(ctx, image)
}

// RecognizeImage submits a frame captured by the caller, for frontends
// that run their own camera. Gating and outcome handling match Recognize.
func (b *Board) RecognizeImage(ctx context.Context, image *capture.Artifact) (*faceapi.RecognitionOutcome, error) {
	if image == nil || len(image.Data) == 0 {
		return nil, &ValidationError{Message: b.guidance.Message("missing_image")}
	}
	release, err := b.begin()
	if err != nil {
		return nil, err
	}
	defer release()
	return b.submit(ctx, image)
}

// begin enforces the trained-model gate and the one-attempt-at-a-time rule.
func (b *Board) begin() (release func(), err error) {
	st := b.poller.Snapshot().Status
	if st == nil || !st.ModelTrained {
		return nil, &ValidationError{Message: b.Guidance()}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.recognizing {
		return nil, ErrBusy
	}
	b.recognizing = true
	b.outcome = nil
	return func() {
		b.mu.Lock()
		b.recognizing = false
		b.mu.Unlock()
	}, nil
}

func (b *Board) submit(ctx context.Context, image *capture.Artifact) (*faceapi.RecognitionOutcome, error) {
	defer b.poller.Refresh()

	outcome, err := b.gw.Recognize(ctx, image)
	if err != nil {
		outcome = &faceapi.RecognitionOutcome{
			Status:  faceapi.StatusError,
			Message: faceapi.Message(err, b.guidance.Message("recognize_failed")),
		}
		b.setOutcome(outcome)
		return nil, err
	}

	b.setOutcome(outcome)
	return outcome, nil
}

func (b *Board) setOutcome(outcome *faceapi.RecognitionOutcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outcome = outcome
}

// Outcome returns the result of the last recognize attempt. It persists
// until the next attempt or until the board's tab is left.
func (b *Board) Outcome() *faceapi.RecognitionOutcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outcome
}

// ClearOutcome drops the last recognition result.
func (b *Board) ClearOutcome() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outcome = nil
}

// DeleteRecord removes today's attendance for the record's user after
// interactive confirmation. A response with removed=false is treated the
// same as an HTTP error.
func (b *Board) DeleteRecord(ctx context.Context, record faceapi.AttendanceRecord) error {
	prompt := "Remove today's attendance for " + faceapi.DisplayName(record.Username) + "?"
	if !b.confirm(prompt) {
		return ErrConfirmationDeclined
	}

	result, err := b.gw.DeleteTodayAttendance(ctx, record.Username)
	if err != nil {
		b.setBanner(BannerError, faceapi.Message(err, b.guidance.Message("delete_failed")))
		return err
	}
	if !result.Removed {
		message := result.Message
		if message == "" {
			message = b.guidance.Message("delete_failed")
		}
		b.setBanner(BannerError, message)
		return &faceapi.RemoteError{StatusCode: http.StatusOK, Message: message}
	}

	message := result.Message
	if message == "" {
		message = b.guidance.Message("delete_success")
	}
	b.setBanner(BannerSuccess, message)
	b.poller.Refresh()
	return nil
}

// ClearAll removes every currently visible record for today. The deletes
// are issued concurrently and one summary is reported after all of them
// settle, followed by exactly one refresh.
func (b *Board) ClearAll(ctx context.Context) (*ClearSummary, error) {
	records := b.poller.Snapshot().Today
	if len(records) == 0 {
		return &ClearSummary{}, nil
	}

	if !b.confirm(b.guidance.Message("clear_all_prompt", len(records))) {
		return nil, ErrConfirmationDeclined
	}

	var succeeded atomic.Int64
	var g errgroup.Group
	for _, record := range records {
		record := record
		g.Go(func() error {
			result, err := b.gw.DeleteTodayAttendance(ctx, record.Username)
			if err == nil && result.Removed {
				succeeded.Add(1)
			}
			// Individual failures are absorbed into the summary.
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return errors

	summary := &ClearSummary{
		Requested: len(records),
		Succeeded: int(succeeded.Load()),
	}
	summary.Failed = summary.Requested - summary.Succeeded

	level := BannerSuccess
	if summary.Failed > 0 {
		level = BannerWarning
	}
	b.setBanner(level, b.guidance.Message("clear_all_summary", summary.Succeeded, summary.Requested))
	b.poller.Refresh()
	return summary, nil
}

// Banner returns the current result banner, or nil after it expires.
func (b *Board) Banner() *Banner {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.banner
}

func (b *Board) setBanner(level BannerLevel, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bannerTimer != nil {
		b.bannerTimer.Stop()
	}
	banner := &Banner{Level: level, Message: message}
	b.banner = banner
	b.bannerTimer = time.AfterFunc(b.bannerTTL, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.banner == banner {
			b.banner = nil
		}
	})
}
