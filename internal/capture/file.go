package capture

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// FromFile wraps a user-chosen image file as an artifact. The file bytes are
// used as-is with no re-encoding.
func FromFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided file path for upload
	if err != nil {
		return nil, fmt.Errorf("could not read image file: %w", err)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &Artifact{
		Data:     data,
		MIME:     mimeType,
		Filename: filepath.Base(path),
	}, nil
}
