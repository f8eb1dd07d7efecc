package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

// stubCamera hands back a fixed frame without any real capture device.
type stubCamera struct{}

func (stubCamera) Capture(ctx context.Context) (*capture.Artifact, error) {
	return &capture.Artifact{Data: []byte("frame"), MIME: "image/jpeg", Filename: "camera_capture.jpg"}, nil
}

// setupMockFaceAPI creates a mock face recognition service. The default
// handlers report a trained model and an empty day; tests override paths
// they care about.
func setupMockFaceAPI(t *testing.T, overrides map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	handled := make(map[string]bool)
	for pattern, handler := range overrides {
		mux.HandleFunc(pattern, handler)
		handled[pattern] = true
	}
	if !handled["/model_status"] {
		mux.HandleFunc("/model_status", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(faceapi.ModelStatus{ModelTrained: true, TotalUsers: 3, MinUsersRequired: 2})
		})
	}
	if !handled["/attendance/today"] {
		mux.HandleFunc("/attendance/today", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"attendance": []faceapi.AttendanceRecord{}, "total": 0})
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestEngine builds a running engine backed by the mock service and
// waits for the first poll to land.
func newTestEngine(t *testing.T, server *httptest.Server) *kiosk.Kiosk {
	t.Helper()

	cfg := config.Load()
	cfg.Kiosk.PollInterval = time.Hour
	cfg.Kiosk.AutoSwitchDelay = time.Hour
	cfg.Kiosk.BannerTTL = time.Minute

	client, err := faceapi.NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("failed to create face service client: %v", err)
	}

	engine := kiosk.New(cfg, client, stubCamera{}, kiosk.AutoConfirm)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go engine.Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !engine.Poller.Snapshot().UpdatedAt.IsZero() {
			return engine
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("engine never completed its first poll")
	return nil
}

func testGuidanceConfig() *config.GuidanceConfig {
	cfg := config.Load()
	return &cfg.Guidance
}

// requestWithChiParams creates a request with chi URL parameters.
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// multipartBody builds a multipart form with string fields and an optional
// photo part, returning the body and its content type.
func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if photo != nil {
		part, err := writer.CreateFormFile("file", "photo.jpg")
		if err != nil {
			t.Fatalf("failed to create photo part: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("failed to write photo part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// parseJSONResponse parses a JSON response body into the target type.
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code.
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message.
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}

// drainBodyReader reads a stream fully so mock handlers can inspect uploads.
func drainBodyReader(r io.Reader) []byte {
	data, _ := io.ReadAll(r)
	return data
}
