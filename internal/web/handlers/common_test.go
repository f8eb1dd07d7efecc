package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
)

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assertStatusCode(t, rec, http.StatusOK)
	var result map[string]string
	parseJSONResponse(t, rec, &result)
	if result["status"] != "ok" {
		t.Errorf("unexpected health response %+v", result)
	}
}

func TestRespondEngineError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation",
			err:        &kiosk.ValidationError{Message: "Please enter a name"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter a name",
		},
		{
			name:       "busy",
			err:        kiosk.ErrBusy,
			wantStatus: http.StatusConflict,
			wantError:  "another attempt is already in progress",
		},
		{
			name:       "remote",
			err:        &faceapi.RemoteError{StatusCode: http.StatusNotFound, Message: "User not found"},
			wantStatus: http.StatusNotFound,
			wantError:  "User not found",
		},
		{
			name:       "connectivity",
			err:        &faceapi.ConnectivityError{Op: "GET model_status", Err: errors.New("connection refused")},
			wantStatus: http.StatusBadGateway,
			wantError:  testGuidanceConfig().Message("connect_failed"),
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondEngineError(rec, testGuidanceConfig(), tt.err)
			assertStatusCode(t, rec, tt.wantStatus)
			assertJSONError(t, rec, tt.wantError)
		})
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("john\r\ndoe"); got != "johndoe" {
		t.Errorf("sanitizeForLog = %q", got)
	}
}
