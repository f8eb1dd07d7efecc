package faceapi

import "context"

// ModelStatus fetches the current model readiness snapshot.
func (c *Client) ModelStatus(ctx context.Context) (*ModelStatus, error) {
	return doGetJSON[ModelStatus](ctx, c, "model_status")
}

// Retrain asks the service to rebuild the recognition model in the
// background.
func (c *Client) Retrain(ctx context.Context) (*RetrainResult, error) {
	return doPostJSON[RetrainResult](ctx, c, "retrain")
}
