package cmd

import (
	"fmt"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize",
	Short: "Recognize a face and mark attendance",
	Long: `Submit one face image to the recognition service. When the face
matches a registered person, the service marks their attendance for
today.

The image comes from --photo or, when omitted, from the camera
configured with CAMERA_URL.`,
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().String("photo", "", "Path to a face photo (default: capture from camera)")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	status, err := client.ModelStatus(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch model status: %w", err)
	}
	if !status.ModelTrained {
		return fmt.Errorf("the model is not trained yet; register at least %d users first", status.MinUsersRequired)
	}

	image, err := resolveImage(cmd, cfg)
	if err != nil {
		return fmt.Errorf("failed to get a face photo: %w", err)
	}

	outcome, err := client.Recognize(cmd.Context(), image)
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	switch outcome.Status {
	case faceapi.StatusSuccess:
		fmt.Printf("Welcome, %s!\n", faceapi.DisplayName(outcome.User))
	case faceapi.StatusAlreadyMarked:
		fmt.Printf("%s already marked attendance today\n", faceapi.DisplayName(outcome.User))
	case faceapi.StatusUnknown:
		fmt.Println("Face not recognized")
	default:
		fmt.Printf("Recognition error: %s\n", outcome.Message)
	}
	if outcome.Message != "" && outcome.Status != faceapi.StatusError {
		fmt.Println(outcome.Message)
	}
	if outcome.Confidence != nil {
		fmt.Printf("Confidence: %s\n", formatConfidence(*outcome.Confidence))
	}
	return nil
}
