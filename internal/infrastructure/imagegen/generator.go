package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsCurator/internal/config"
	"NewsCurator/internal/ports"
)

// maxImageBytes caps downloaded generated images.
const maxImageBytes = 20 << 20

// Generator implements ports.ImageGenerator against an OpenAI-compatible
// image-generation API. The API returns a time-limited URL; Generate
// downloads the bytes immediately so callers can copy them into owned
// storage before the URL expires.
type Generator struct {
	endpoint   string
	model      string
	apiKey     string
	size       string
	quality    string
	httpClient *http.Client
}

var _ ports.ImageGenerator = (*Generator)(nil)

// NewGenerator builds a generation client from configuration.
func NewGenerator(cfg config.OpenAIConfig) *Generator {
	return &Generator{
		endpoint: cfg.ImageEndpoint,
		model:    cfg.ImageModel,
		apiKey:   cfg.APIKey,
		size:     "1792x1024",
		quality:  "standard",
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.ImageTimeoutSeconds) * time.Second,
		},
	}
}

// Generate synthesizes one image for the prompt and returns its bytes.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if g.apiKey == "" || g.endpoint == "" || g.model == "" {
		return nil, fmt.Errorf("image generator misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":   g.model,
		"prompt":  prompt,
		"size":    g.size,
		"quality": g.quality,
		"n":       1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("image api error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var reply struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if len(reply.Data) == 0 || reply.Data[0].URL == "" {
		return nil, fmt.Errorf("image api returned no image")
	}

	return g.download(ctx, reply.Data[0].URL)
}

func (g *Generator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image bytes: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image download was empty")
	}

	return data, nil
}
