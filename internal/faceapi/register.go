package faceapi

import (
	"context"
	"strings"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
)

// RegisterRequest carries the identity fields and face image for a new user.
// Email, Department and Role are optional from the service's point of view.
type RegisterRequest struct {
	Username   string
	Email      string
	Department string
	Role       string
	Image      *capture.Artifact
}

// RegisterUser creates a new user from a name and a face image. The service
// retrains the model in the background on success.
func (c *Client) RegisterUser(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	fields := map[string]string{
		"username": strings.TrimSpace(req.Username),
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Department != "" {
		fields["department"] = req.Department
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}
	return doPostMultipart[RegisterResult](ctx, c, "register_user", fields, req.Image)
}
