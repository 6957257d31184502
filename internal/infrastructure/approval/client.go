package approval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// Client submits post candidates to the approval-queue REST API. The
// queue is authoritative; nothing is persisted locally.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.ApprovalQueue = (*Client)(nil)

// NewClient wires the queue base URL (e.g. http://localhost:5000).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit posts the candidate and returns the identifier the queue
// assigned. Rejections and transport failures wrap
// domain.ErrSubmissionFailed.
func (c *Client) Submit(ctx context.Context, post domain.PostCandidate) (int64, error) {
	body, err := json.Marshal(post)
	if err != nil {
		return 0, fmt.Errorf("%w: marshal post: %v", domain.ErrSubmissionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pending-posts", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: new request: %v", domain.ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	var reply struct {
		Success bool `json:"success"`
		Data    struct {
			ID int64 `json:"id"`
		} `json:"data"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return 0, fmt.Errorf("%w: decode response (%s): %v", domain.ErrSubmissionFailed, resp.Status, err)
	}

	if resp.StatusCode != http.StatusCreated || !reply.Success {
		detail := reply.Error
		if detail == "" {
			detail = resp.Status
		}
		return 0, fmt.Errorf("%w: %s", domain.ErrSubmissionFailed, detail)
	}

	return reply.Data.ID, nil
}
