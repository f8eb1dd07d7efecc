package faceapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ConnectivityError means the request never produced a response: the server
// is unreachable, the connection dropped, or the request timed out.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: could not reach face service: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// RemoteError means the server responded with a failure status. Message holds
// the server-provided detail when one was present.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("face service error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// Message extracts the best human-readable message from a gateway error:
// the server detail for remote errors, a generic connectivity phrase for
// transport failures, and err.Error() otherwise.
func Message(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var ce *ConnectivityError
	if errors.As(err, &ce) {
		return fallback
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}

// errorMessage pulls the service's detail/message field out of an error
// response body, falling back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "request failed"
}
