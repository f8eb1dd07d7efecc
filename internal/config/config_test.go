package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.FaceAPI.URL != "http://localhost:8000" {
		t.Errorf("unexpected default service URL %q", cfg.FaceAPI.URL)
	}
	if cfg.FaceAPI.Timeout != 15*time.Second {
		t.Errorf("unexpected default timeout %v", cfg.FaceAPI.Timeout)
	}
	if cfg.Kiosk.PollInterval != 3*time.Second {
		t.Errorf("unexpected default poll interval %v", cfg.Kiosk.PollInterval)
	}
	if cfg.Kiosk.BannerTTL != 4*time.Second {
		t.Errorf("unexpected default banner TTL %v", cfg.Kiosk.BannerTTL)
	}
	if cfg.Kiosk.AutoSwitchDelay != time.Second {
		t.Errorf("unexpected default auto switch delay %v", cfg.Kiosk.AutoSwitchDelay)
	}
	if cfg.Camera.MaxWidth != 640 || cfg.Camera.MaxHeight != 480 {
		t.Errorf("unexpected default camera bounds %dx%d", cfg.Camera.MaxWidth, cfg.Camera.MaxHeight)
	}
	if cfg.Kiosk.RequireDetails {
		t.Error("details must be optional by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FACE_API_URL", "http://faces.internal:9000")
	t.Setenv("KIOSK_POLL_INTERVAL", "10s")
	t.Setenv("CAMERA_MAX_WIDTH", "1280")
	t.Setenv("KIOSK_REQUIRE_DETAILS", "true")

	cfg := Load()
	if cfg.FaceAPI.URL != "http://faces.internal:9000" {
		t.Errorf("unexpected service URL %q", cfg.FaceAPI.URL)
	}
	if cfg.Kiosk.PollInterval != 10*time.Second {
		t.Errorf("unexpected poll interval %v", cfg.Kiosk.PollInterval)
	}
	if cfg.Camera.MaxWidth != 1280 {
		t.Errorf("unexpected camera width %d", cfg.Camera.MaxWidth)
	}
	if !cfg.Kiosk.RequireDetails {
		t.Error("expected required details")
	}
}

func TestLoadInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("KIOSK_POLL_INTERVAL", "not-a-duration")
	t.Setenv("CAMERA_MAX_WIDTH", "-5")

	cfg := Load()
	if cfg.Kiosk.PollInterval != 3*time.Second {
		t.Errorf("invalid duration must fall back to the default, got %v", cfg.Kiosk.PollInterval)
	}
	if cfg.Camera.MaxWidth != 640 {
		t.Errorf("invalid int must fall back to the default, got %d", cfg.Camera.MaxWidth)
	}
}

func TestGuidanceMessage(t *testing.T) {
	cfg := Load()

	msg := cfg.Guidance.Message("model_not_ready", 2)
	if msg == "model_not_ready" {
		t.Fatal("expected the embedded guidance text, got the key")
	}
	if want := "register at least 2 users"; !strings.Contains(msg, want) {
		t.Errorf("expected %q in %q", want, msg)
	}

	if got := cfg.Guidance.Message("no_such_key"); got != "no_such_key" {
		t.Errorf("unknown keys must echo the key, got %q", got)
	}
}
