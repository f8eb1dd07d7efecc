// Package capture turns a live camera view or a chosen file into a single
// still image artifact ready for upload to the recognition service.
package capture

import "context"

// Artifact is a captured still image. It exists only between capture and
// submit and is never persisted by the kiosk.
type Artifact struct {
	Data     []byte
	MIME     string
	Filename string
}

// Source produces capture artifacts. Capture either returns exactly one
// complete artifact or an error; it never yields a partial image.
type Source interface {
	Capture(ctx context.Context) (*Artifact, error)
}
