package ports

import (
	"context"

	"NewsCurator/internal/domain"
)

// Renderer fetches fully rendered HTML for a URL.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ContentExtractor turns rendered HTML into cleaned article content.
type ContentExtractor interface {
	Extract(html, sourceURL string) (domain.ExtractedContent, error)
}

// Summarizer produces the summary, validated title, classification and
// provider name for extracted content.
type Summarizer interface {
	Summarize(ctx context.Context, content domain.ExtractedContent, sourceURL string) (domain.ProcessedContent, error)
}

// ChatClient issues a single chat completion against a language model.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ImageResolver decides between reusing a discovered image and generating
// a new one, returning the final image reference.
type ImageResolver interface {
	Resolve(ctx context.Context, content domain.ExtractedContent, processed domain.ProcessedContent) (string, error)
}

// ImageVerifier checks that a discovered image URL is reachable and
// actually serves an image.
type ImageVerifier interface {
	Verify(ctx context.Context, url string) bool
}

// ImageGenerator synthesizes illustration bytes from a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// ImageStore persists image bytes and returns a root-relative public path.
type ImageStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

// ApprovalQueue accepts post candidates for human review.
type ApprovalQueue interface {
	Submit(ctx context.Context, post domain.PostCandidate) (int64, error)
}

// MessageSource delivers inbound messages carrying candidate URLs.
// The channel closes when the source stops or ctx is cancelled.
type MessageSource interface {
	Subscribe(ctx context.Context) (<-chan domain.Message, error)
}

// Ledger tracks which messages already ran through the pipeline.
type Ledger interface {
	HasProcessed(ctx context.Context, messageID int64) (bool, error)
	Record(ctx context.Context, rec domain.ProcessedMessage) error
}
