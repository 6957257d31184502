package domain

// PostCandidate is a structured, not-yet-published item awaiting approval.
// Ownership transfers to the approval queue on successful submission.
type PostCandidate struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	SourceURL   string `json:"source_url"`
	ImageRef    string `json:"image_url,omitempty"`
	ReleaseDate string `json:"release_date"`
	Provider    string `json:"provider"`
	Type        string `json:"type"`
}
