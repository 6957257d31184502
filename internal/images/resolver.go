package images

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// maxPromptChars bounds the generation prompt.
const maxPromptChars = 1000

// summaryPromptChars bounds how much of the summary leaks into the prompt.
const summaryPromptChars = 200

// siteSuffix matches trailing " - SiteName" / " | Domain.tld" title tails.
// Raw site names pollute generated imagery with logos and text artifacts.
var siteSuffix = regexp.MustCompile(`\s+[|\-–—]\s+[^|\-–—]{1,60}$`)

// Resolver decides between reusing a discovered preview image and
// generating a new one. Generated images are copied into owned storage
// because generation-service URLs expire after a short window.
type Resolver struct {
	verifier  ports.ImageVerifier
	generator ports.ImageGenerator
	store     ports.ImageStore
	logger    *slog.Logger
}

var _ ports.ImageResolver = (*Resolver)(nil)

// NewResolver wires the reuse and generation collaborators.
func NewResolver(verifier ports.ImageVerifier, generator ports.ImageGenerator, store ports.ImageStore, logger *slog.Logger) *Resolver {
	return &Resolver{verifier: verifier, generator: generator, store: store, logger: logger}
}

// Resolve returns the final image reference: the discovered URL verbatim
// when it verifies, otherwise the root-relative path of a freshly
// generated and stored image. Both paths failing yields
// domain.ErrImageUnavailable.
func (r *Resolver) Resolve(ctx context.Context, content domain.ExtractedContent, processed domain.ProcessedContent) (string, error) {
	if content.ImageURL != "" && r.verifier != nil && r.verifier.Verify(ctx, content.ImageURL) {
		r.debug("reusing discovered image", "url", content.ImageURL)
		return content.ImageURL, nil
	}

	if r.generator == nil || r.store == nil {
		return "", fmt.Errorf("%w: no generation path configured", domain.ErrImageUnavailable)
	}

	prompt := BuildPrompt(CleanTitle(processed.Title), processed.Summary)

	data, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", domain.ErrImageUnavailable, err)
	}

	path, err := r.store.Save(ctx, data, "png")
	if err != nil {
		return "", fmt.Errorf("%w: store: %v", domain.ErrImageUnavailable, err)
	}

	r.debug("generated image stored", "path", path)
	return path, nil
}

// CleanTitle strips trailing site-name suffixes and collapses whitespace.
func CleanTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	stripped := siteSuffix.ReplaceAllString(title, "")
	if len(stripped) >= 10 {
		return stripped
	}
	return title
}

// BuildPrompt embeds the cleaned title and truncated summary into fixed
// editorial style directives.
func BuildPrompt(title, summary string) string {
	if len(summary) > summaryPromptChars {
		summary = summary[:summaryPromptChars]
	}

	prompt := fmt.Sprintf(
		"Editorial illustration for an article titled %q. Theme: %s. "+
			"Horizontal banner composition, modern professional style, clean shapes. "+
			"Do not include any text, letters, logos or watermarks.",
		title, summary)

	if len(prompt) > maxPromptChars {
		prompt = prompt[:maxPromptChars]
	}
	return prompt
}

func (r *Resolver) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
