package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// maxPageBytes caps how much of a page body is read.
const maxPageBytes = 5 << 20

// HTTPRenderer fetches pages over plain HTTP with browser-like headers.
// It stands in for a headless-browser rendering collaborator; pages that
// require script execution are out of its reach.
type HTTPRenderer struct {
	client    *http.Client
	userAgent string
}

var _ ports.Renderer = (*HTTPRenderer)(nil)

// NewHTTPRenderer wires an HTTP client bounded by timeout.
func NewHTTPRenderer(client *http.Client, timeout time.Duration, userAgent string) *HTTPRenderer {
	if client == nil {
		client = &http.Client{}
	}
	if timeout > 0 {
		client.Timeout = timeout
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	return &HTTPRenderer{client: client, userAgent: userAgent}
}

// Render fetches the page and returns its HTML. A request that never
// settles within the timeout maps to domain.ErrRenderTimeout.
func (r *HTTPRenderer) Render(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.google.com/")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := r.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrRenderTimeout, url)
		}
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrRenderTimeout, url)
		}
		return "", fmt.Errorf("read page: %w", err)
	}

	return string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
