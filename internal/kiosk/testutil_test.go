package kiosk

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

// fakeGateway implements Gateway with per-operation hooks and call counters.
type fakeGateway struct {
	statusCalls    atomic.Int64
	todayCalls     atomic.Int64
	usersCalls     atomic.Int64
	userCalls      atomic.Int64
	registerCalls  atomic.Int64
	recognizeCalls atomic.Int64
	deleteCalls    atomic.Int64
	delUserCalls   atomic.Int64

	statusFn    func(ctx context.Context) (*faceapi.ModelStatus, error)
	todayFn     func(ctx context.Context) ([]faceapi.AttendanceRecord, error)
	usersFn     func(ctx context.Context) ([]faceapi.RegisteredUser, error)
	userFn      func(ctx context.Context, username string) (*faceapi.UserDetail, error)
	registerFn  func(ctx context.Context, req faceapi.RegisterRequest) (*faceapi.RegisterResult, error)
	recognizeFn func(ctx context.Context, image *capture.Artifact) (*faceapi.RecognitionOutcome, error)
	deleteFn    func(ctx context.Context, username string) (*faceapi.DeleteResult, error)
	delUserFn   func(ctx context.Context, username string) (*faceapi.DeleteUserResult, error)
}

func (f *fakeGateway) ModelStatus(ctx context.Context) (*faceapi.ModelStatus, error) {
	f.statusCalls.Add(1)
	if f.statusFn != nil {
		return f.statusFn(ctx)
	}
	return &faceapi.ModelStatus{ModelTrained: true, TotalUsers: 2, MinUsersRequired: 2}, nil
}

func (f *fakeGateway) TodayAttendance(ctx context.Context) ([]faceapi.AttendanceRecord, error) {
	f.todayCalls.Add(1)
	if f.todayFn != nil {
		return f.todayFn(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) Users(ctx context.Context) ([]faceapi.RegisteredUser, error) {
	f.usersCalls.Add(1)
	if f.usersFn != nil {
		return f.usersFn(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) User(ctx context.Context, username string) (*faceapi.UserDetail, error) {
	f.userCalls.Add(1)
	if f.userFn != nil {
		return f.userFn(ctx, username)
	}
	return &faceapi.UserDetail{}, nil
}

func (f *fakeGateway) RegisterUser(ctx context.Context, req faceapi.RegisterRequest) (*faceapi.RegisterResult, error) {
	f.registerCalls.Add(1)
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}
	return &faceapi.RegisterResult{Message: "registered"}, nil
}

func (f *fakeGateway) Recognize(ctx context.Context, image *capture.Artifact) (*faceapi.RecognitionOutcome, error) {
	f.recognizeCalls.Add(1)
	if f.recognizeFn != nil {
		return f.recognizeFn(ctx, image)
	}
	return &faceapi.RecognitionOutcome{Status: faceapi.StatusSuccess}, nil
}

func (f *fakeGateway) DeleteTodayAttendance(ctx context.Context, username string) (*faceapi.DeleteResult, error) {
	f.deleteCalls.Add(1)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, username)
	}
	return &faceapi.DeleteResult{Removed: true, Message: "removed"}, nil
}

func (f *fakeGateway) DeleteUser(ctx context.Context, username string) (*faceapi.DeleteUserResult, error) {
	f.delUserCalls.Add(1)
	if f.delUserFn != nil {
		return f.delUserFn(ctx, username)
	}
	return &faceapi.DeleteUserResult{Message: "deleted"}, nil
}

// fakeCamera returns a canned artifact or an error.
type fakeCamera struct {
	artifact *capture.Artifact
	err      error
}

func (f *fakeCamera) Capture(ctx context.Context) (*capture.Artifact, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.artifact != nil {
		return f.artifact, nil
	}
	return &capture.Artifact{Data: []byte("jpeg"), MIME: "image/jpeg", Filename: "camera_capture.jpg"}, nil
}

// scriptedConfirmer records prompts and answers with a fixed verdict.
type scriptedConfirmer struct {
	answer  bool
	prompts []string
}

func (s *scriptedConfirmer) confirm(prompt string) bool {
	s.prompts = append(s.prompts, prompt)
	return s.answer
}

func testGuidance() *config.GuidanceConfig {
	cfg := config.Load()
	return &cfg.Guidance
}

// trainedStatus is a snapshot that qualifies for recognition.
func trainedStatus() *faceapi.ModelStatus {
	return &faceapi.ModelStatus{ModelTrained: true, TotalUsers: 3, MinUsersRequired: 2}
}

// seedSnapshot pre-loads a poller with a snapshot without running it.
func seedSnapshot(p *Poller, status *faceapi.ModelStatus, today []faceapi.AttendanceRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = Snapshot{Status: status, Today: today, UpdatedAt: time.Now()}
}

// drainRefresh reports whether a refresh request is queued and consumes it.
func drainRefresh(p *Poller) bool {
	select {
	case <-p.kick:
		return true
	default:
		return false
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}
