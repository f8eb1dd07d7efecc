package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/kiosk"
	"github.com/kozaktomas/attend-kiosk/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the kiosk web server",
	Long: `Start the attendance kiosk web server.
The server polls the face recognition service for model status and
today's attendance and exposes the kiosk workflow (register, recognize,
manage) to a browser frontend.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// noCamera stands in when no camera endpoint is configured; browser
// frontends capture their own frames so the kiosk still works.
type noCamera struct{}

func (noCamera) Capture(ctx context.Context) (*capture.Artifact, error) {
	return nil, errors.New("CAMERA_URL is not configured")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	var camera capture.Source = noCamera{}
	if cfg.Camera.URL != "" {
		camera = capture.NewCamera(cfg.Camera.URL, cfg.Camera.MaxWidth, cfg.Camera.MaxHeight)
		fmt.Printf("Using camera at %s\n", cfg.Camera.URL)
	}

	// The web layer enforces confirmation with its token exchange, so the
	// engine itself runs unattended.
	engine := kiosk.New(cfg, client, camera, kiosk.AutoConfirm)

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, port, host, engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engineDone := make(chan struct{})
	go func() {
		engine.Run(ctx)
		close(engineDone)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Attendance Kiosk on http://%s:%d\n", host, port)
	fmt.Printf("Face service: %s\n", cfg.FaceAPI.URL)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	<-engineDone
	return nil
}
