package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

const (
	// maxPromptChars bounds the article body sent to the model.
	maxPromptChars = 1500

	// minSummaryChars rejects degenerate model output.
	minSummaryChars = 40
)

const systemPrompt = "You are an editorial assistant for a technology news feed. " +
	"Given an article, respond ONLY with a JSON object of the form " +
	`{"title": string, "summary": string, "type": string}. ` +
	"The summary must be 2-3 sentences. The type must be one of: News, Article, Video, Other."

// Summarizer shapes extracted content into a single language-model call
// and validates the structured response.
type Summarizer struct {
	chat   ports.ChatClient
	logger *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// New wires the chat client; logger may be nil.
func New(chat ports.ChatClient, logger *slog.Logger) *Summarizer {
	return &Summarizer{chat: chat, logger: logger}
}

// Summarize produces the summary, validated title, content type and
// provider name for one URL. It fails with domain.ErrUnusableSummary on
// empty input or when the model returns nothing usable.
func (s *Summarizer) Summarize(ctx context.Context, content domain.ExtractedContent, sourceURL string) (domain.ProcessedContent, error) {
	body := content.Body()
	description := content.Meta["description"]

	if body == "" && description == "" {
		return domain.ProcessedContent{}, fmt.Errorf("%w: empty input for %s", domain.ErrUnusableSummary, sourceURL)
	}

	raw, err := s.chat.Complete(ctx, systemPrompt, buildUserPrompt(content.Title, body, description))
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("%w: %v", domain.ErrUnusableSummary, err)
	}

	var reply struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("%w: malformed model reply: %v", domain.ErrUnusableSummary, err)
	}

	summary := strings.TrimSpace(reply.Summary)
	if len(summary) < minSummaryChars {
		return domain.ProcessedContent{}, fmt.Errorf("%w: summary too short (%d chars)", domain.ErrUnusableSummary, len(summary))
	}

	title := strings.TrimSpace(reply.Title)
	if title == "" {
		title = content.Title
	}

	processed := domain.ProcessedContent{
		Title:       title,
		Summary:     summary,
		ContentType: domain.NormalizeContentType(reply.Type),
		Provider:    deriveProvider(sourceURL),
	}

	if s.logger != nil {
		s.logger.Debug("content summarized",
			"url", sourceURL, "type", processed.ContentType, "provider", processed.Provider)
	}

	return processed, nil
}

func buildUserPrompt(title, body, description string) string {
	if len(body) > maxPromptChars {
		body = body[:maxPromptChars]
	}

	var b strings.Builder
	b.WriteString("Summarize this article in 2-3 sentences.\n\n")
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n\n", title)
	}
	if body != "" {
		fmt.Fprintf(&b, "Content: %s\n", body)
	}
	if description != "" {
		fmt.Fprintf(&b, "\nPage description: %s\n", description)
	}
	return b.String()
}

// stripFences removes a markdown code fence the model may wrap around
// its JSON reply.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

// deriveProvider turns the source host into a display name: strip the
// www prefix, keep the first label, capitalize it.
func deriveProvider(sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Hostname() == "" {
		return "Web"
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "Web"
	}

	return strings.ToUpper(label[:1]) + label[1:]
}
