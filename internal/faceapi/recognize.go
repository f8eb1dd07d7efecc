package faceapi

import (
	"context"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
)

// Recognize submits one face image; the service matches it against the
// trained model and marks attendance when it recognizes someone.
func (c *Client) Recognize(ctx context.Context, image *capture.Artifact) (*RecognitionOutcome, error) {
	return doPostMultipart[RecognitionOutcome](ctx, c, "recognize_face", nil, image)
}
