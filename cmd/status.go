package cmd

import (
	"fmt"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the face recognition model status",
	Long: `Show whether the recognition model is trained, how many people are
registered, and when the model was last trained.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	status, err := client.ModelStatus(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch model status: %w", err)
	}

	fmt.Printf("Service: %s\n", cfg.FaceAPI.URL)
	if status.ModelTrained {
		fmt.Println("Model:   trained")
	} else {
		fmt.Println("Model:   not trained")
	}
	if status.TrainingInProgress {
		fmt.Println("         training in progress")
	}
	fmt.Printf("Users:   %d (minimum %d required)\n", status.TotalUsers, status.MinUsersRequired)
	if status.LastTrained != nil {
		fmt.Printf("Trained: %s\n", *status.LastTrained)
	}
	return nil
}
