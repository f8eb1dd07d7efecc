package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const jpegQuality = 85

// Camera captures frames from an HTTP camera endpoint. Both single-shot
// still endpoints and MJPEG streams (multipart/x-mixed-replace) are
// supported; for a stream the first complete frame is taken.
type Camera struct {
	url       string
	maxWidth  int
	maxHeight int
	client    *http.Client
}

// NewCamera creates a camera source. Frames larger than maxWidth x maxHeight
// are downscaled before encoding.
func NewCamera(url string, maxWidth, maxHeight int) *Camera {
	return &Camera{
		url:       url,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Capture grabs the current frame and encodes it as a JPEG artifact.
func (c *Camera) Capture(ctx context.Context) (*Artifact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach camera: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	frame, err := readFrame(resp)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("could not decode camera frame: %w", err)
	}

	img = fitWithin(img, c.maxWidth, c.maxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("could not encode frame: %w", err)
	}

	return &Artifact{
		Data:     buf.Bytes(),
		MIME:     "image/jpeg",
		Filename: "camera_capture.jpg",
	}, nil
}

// readFrame returns the raw image bytes from a camera response, taking the
// first part of an MJPEG stream or the whole body of a still endpoint.
func readFrame(resp *http.Response) ([]byte, error) {
	contentType := resp.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err == nil && strings.HasPrefix(mediaType, "multipart/") {
		mr := multipart.NewReader(resp.Body, params["boundary"])
		part, err := mr.NextPart()
		if err != nil {
			return nil, fmt.Errorf("could not read stream frame: %w", err)
		}
		defer part.Close()
		frame, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("could not read stream frame: %w", err)
		}
		return frame, nil
	}

	frame, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read camera frame: %w", err)
	}
	return frame, nil
}

// fitWithin downscales img to fit inside maxWidth x maxHeight while keeping
// aspect ratio. Smaller images are returned unchanged.
func fitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	newWidth := int(float64(width) * ratio)
	newHeight := int(float64(height) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
