package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
)

// doGetJSON performs a GET request and unmarshals the JSON response into the
// result type. The endpoint is the path after the base URL.
func doGetJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	return doJSON[T](ctx, c, http.MethodGet, endpoint)
}

// doDeleteJSON performs a DELETE request and unmarshals the JSON response.
func doDeleteJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	return doJSON[T](ctx, c, http.MethodDelete, endpoint)
}

// doPostJSON performs a bodyless POST request and unmarshals the JSON response.
func doPostJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	return doJSON[T](ctx, c, http.MethodPost, endpoint)
}

func doJSON[T any](ctx context.Context, c *Client, method, endpoint string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Op: method + " " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	return decodeResponse[T](resp)
}

// doPostMultipart performs a POST request with a multipart form containing
// the given string fields and one image file under the "file" field.
func doPostMultipart[T any](ctx context.Context, c *Client, endpoint string, fields map[string]string, image *capture.Artifact) (*T, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("could not write form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("file", image.Filename)
	if err != nil {
		return nil, fmt.Errorf("could not create form file: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, fmt.Errorf("could not write image data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), &body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Op: "POST " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	return decodeResponse[T](resp)
}

func decodeResponse[T any](resp *http.Response) (*T, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}
