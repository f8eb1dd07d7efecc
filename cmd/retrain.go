package cmd

import (
	"fmt"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/spf13/cobra"
)

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Ask the service to rebuild the recognition model",
	Long: `Ask the face recognition service to rebuild its model from the
registered face data. Retraining runs in the background on the service;
use the status command to watch for completion.`,
	RunE: runRetrain,
}

func init() {
	rootCmd.AddCommand(retrainCmd)
}

func runRetrain(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	result, err := client.Retrain(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to start retraining: %w", err)
	}
	if result.Message != "" {
		fmt.Println(result.Message)
	} else {
		fmt.Println("Retraining started")
	}
	return nil
}
