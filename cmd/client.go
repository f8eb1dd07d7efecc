package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/spf13/cobra"
)

// newFaceClient builds the face service client from the loaded config,
// with --api-url taking precedence over the environment.
func newFaceClient(cfg *config.Config) (*faceapi.Client, error) {
	if apiURL != "" {
		cfg.FaceAPI.URL = apiURL
	}
	client, err := faceapi.NewClient(cfg.FaceAPI.URL, cfg.FaceAPI.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create face service client: %w", err)
	}
	return client, nil
}

// resolveImage picks the photo source for commands that submit a face:
// --photo reads a file, otherwise the configured camera takes a frame.
func resolveImage(cmd *cobra.Command, cfg *config.Config) (*capture.Artifact, error) {
	if path := mustGetString(cmd, "photo"); path != "" {
		return capture.FromFile(path)
	}
	if cfg.Camera.URL == "" {
		return nil, errors.New("no --photo given and CAMERA_URL is not set")
	}
	camera := capture.NewCamera(cfg.Camera.URL, cfg.Camera.MaxWidth, cfg.Camera.MaxHeight)
	return camera.Capture(cmd.Context())
}

// formatConfidence renders the service's 0-1 confidence as a percentage.
func formatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

func confirmAction(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
