// Package faceapi is the client for the Attend-II face recognition service.
// Every operation is a single request/response with no implicit retry; a
// non-2xx response is mapped to *RemoteError and a transport failure to
// *ConnectivityError.
package faceapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the face recognition service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient creates a client for the service at rawURL.
func NewClient(rawURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid face service URL: %w", err)
	}
	return &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// resolveURL builds a full URL from the base URL and the given path segments.
// If the last segment contains a query string (e.g. "attendance/jane?date=..."),
// it is split so JoinPath only receives the path portion and the query is
// appended.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.baseURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := c.baseURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return c.baseURL.JoinPath(pathSegments...).String()
}

// NormalizeUsername mirrors the server's canonical form: trimmed, lowercased,
// spaces replaced with underscores. Applied before building request paths so
// the client and server always agree on record identity.
func NormalizeUsername(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
