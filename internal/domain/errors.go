package domain

import "errors"

// Stage-level failure kinds. Adapters wrap these so the orchestrator can
// classify a failure without inspecting adapter internals.
var (
	// ErrNoArticleContent signals that noise filtering left no usable
	// paragraph text for a page.
	ErrNoArticleContent = errors.New("no article content survived filtering")

	// ErrUnusableSummary signals that the language-model call failed or
	// returned output that did not validate.
	ErrUnusableSummary = errors.New("summarization produced no usable output")

	// ErrImageUnavailable signals that neither the reuse path nor the
	// generation path produced an image reference.
	ErrImageUnavailable = errors.New("no image could be resolved")

	// ErrSubmissionFailed signals that the approval queue rejected the
	// post or was unreachable.
	ErrSubmissionFailed = errors.New("post submission failed")

	// ErrRenderTimeout signals that a page never settled within the
	// configured rendering window.
	ErrRenderTimeout = errors.New("page render timed out")
)
