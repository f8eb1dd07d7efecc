package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "attend-kiosk",
	Short: "An attendance kiosk for a face recognition service",
	Long: `Attend Kiosk is the client side of a face recognition attendance
system. It registers people, marks attendance by recognizing camera
frames, and manages the registered directory, all against a remote
Attend-II service. The serve command runs the kiosk web interface.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Face service URL (overrides FACE_API_URL)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
