package cmd

import (
	"fmt"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a new person",
	Long: `Register a new person with the face recognition service.

The face image comes from --photo or, when omitted, from the camera
configured with CAMERA_URL. The service retrains the model in the
background after a successful registration.

Example:
  attend-kiosk register "Jane Doe" --photo jane.jpg --department Engineering`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("photo", "", "Path to a face photo (default: capture from camera)")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("department", "", "Department")
	registerCmd.Flags().String("role", "", "Role or job title")
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	image, err := resolveImage(cmd, cfg)
	if err != nil {
		return fmt.Errorf("failed to get a face photo: %w", err)
	}

	result, err := client.RegisterUser(cmd.Context(), faceapi.RegisterRequest{
		Username:   args[0],
		Email:      mustGetString(cmd, "email"),
		Department: mustGetString(cmd, "department"),
		Role:       mustGetString(cmd, "role"),
		Image:      image,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Registered %s (%d users total)\n", faceapi.DisplayName(result.Username), result.TotalUsers)
	if result.Message != "" {
		fmt.Println(result.Message)
	}
	return nil
}
