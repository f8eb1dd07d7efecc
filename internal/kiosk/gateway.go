// Package kiosk is the orchestration engine behind the attendance kiosk:
// a poller reconciling server state on a fixed cadence, a two-step
// registration wizard, a recognize-and-mark board with batch deletion, a
// user directory, and the tab state machine tying them together.
package kiosk

import (
	"context"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

// Gateway is the slice of the face service client the engine needs.
// *faceapi.Client satisfies it; tests supply fakes.
type Gateway interface {
	ModelStatus(ctx context.Context) (*faceapi.ModelStatus, error)
	TodayAttendance(ctx context.Context) ([]faceapi.AttendanceRecord, error)
	Users(ctx context.Context) ([]faceapi.RegisteredUser, error)
	User(ctx context.Context, username string) (*faceapi.UserDetail, error)
	RegisterUser(ctx context.Context, req faceapi.RegisterRequest) (*faceapi.RegisterResult, error)
	Recognize(ctx context.Context, image *capture.Artifact) (*faceapi.RecognitionOutcome, error)
	DeleteTodayAttendance(ctx context.Context, username string) (*faceapi.DeleteResult, error)
	DeleteUser(ctx context.Context, username string) (*faceapi.DeleteUserResult, error)
}
