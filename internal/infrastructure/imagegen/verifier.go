package imagegen

import (
	"context"
	"net/http"
	"strings"
	"time"

	"NewsCurator/internal/ports"
)

// HTTPVerifier checks discovered image URLs with a lightweight HEAD
// request before the pipeline reuses them.
type HTTPVerifier struct {
	client *http.Client
}

var _ ports.ImageVerifier = (*HTTPVerifier)(nil)

// NewHTTPVerifier wires an HTTP client; nil gets a 5s-timeout default.
func NewHTTPVerifier(client *http.Client) *HTTPVerifier {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPVerifier{client: client}
}

// Verify reports whether the URL answers 200 with an image content type.
func (v *HTTPVerifier) Verify(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK &&
		strings.Contains(resp.Header.Get("Content-Type"), "image")
}
