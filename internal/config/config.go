package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed guidance.yaml
var guidanceYAML []byte

type Config struct {
	FaceAPI  FaceAPIConfig
	Camera   CameraConfig
	Kiosk    KioskConfig
	Guidance GuidanceConfig
}

type FaceAPIConfig struct {
	URL     string        // base URL of the face recognition service
	Timeout time.Duration // per-request timeout (default 15s)
}

type CameraConfig struct {
	URL       string // HTTP still or MJPEG camera endpoint
	MaxWidth  int    // frames larger than this are downscaled (default 640)
	MaxHeight int    // default 480
}

type KioskConfig struct {
	PollInterval    time.Duration // status/attendance poll period (default 3s)
	BannerTTL       time.Duration // how long transient result banners stay up (default 4s)
	AutoSwitchDelay time.Duration // delay before the Register -> Recognize auto switch (default 1s)
	RequireDetails  bool          // require email/department/role during registration
}

type GuidanceConfig struct {
	Messages map[string]string `yaml:"messages"`
}

// Message returns the guidance text for a key, formatted with args.
// Unknown keys return the key itself so a missing entry is visible, not silent.
func (g *GuidanceConfig) Message(key string, args ...any) string {
	tpl, ok := g.Messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tpl
	}
	return fmt.Sprintf(tpl, args...)
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envDuration reads an environment variable and parses it as a duration.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE":
		return true
	case "0", "false", "FALSE":
		return false
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var guidance GuidanceConfig
	if err := yaml.Unmarshal(guidanceYAML, &guidance); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded guidance.yaml: " + err.Error())
	}

	return &Config{
		FaceAPI: FaceAPIConfig{
			URL:     envString("FACE_API_URL", "http://localhost:8000"),
			Timeout: envDuration("FACE_API_TIMEOUT", 15*time.Second),
		},
		Camera: CameraConfig{
			URL:       os.Getenv("CAMERA_URL"),
			MaxWidth:  envInt("CAMERA_MAX_WIDTH", 640),
			MaxHeight: envInt("CAMERA_MAX_HEIGHT", 480),
		},
		Kiosk: KioskConfig{
			PollInterval:    envDuration("KIOSK_POLL_INTERVAL", 3*time.Second),
			BannerTTL:       envDuration("KIOSK_BANNER_TTL", 4*time.Second),
			AutoSwitchDelay: envDuration("KIOSK_AUTOSWITCH_DELAY", time.Second),
			RequireDetails:  envBool("KIOSK_REQUIRE_DETAILS", false),
		},
		Guidance: guidance,
	}
}
