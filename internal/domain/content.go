package domain

import "strings"

// ExtractedContent is the cleaned representation of a rendered page.
type ExtractedContent struct {
	Title      string
	Paragraphs []string
	ImageURL   string
	Meta       map[string]string
}

// Body joins the extracted paragraphs with single spaces.
func (c ExtractedContent) Body() string {
	return strings.Join(c.Paragraphs, " ")
}

// ContentType classifies the linked page for the public feed.
type ContentType string

const (
	TypeNews    ContentType = "News"
	TypeArticle ContentType = "Article"
	TypeVideo   ContentType = "Video"
	TypeOther   ContentType = "Other"
)

// NormalizeContentType maps free-form model output onto the enum,
// defaulting to Article.
func NormalizeContentType(raw string) ContentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "news":
		return TypeNews
	case "article", "blog", "post":
		return TypeArticle
	case "video":
		return TypeVideo
	case "other":
		return TypeOther
	default:
		return TypeArticle
	}
}

// ProcessedContent is the summarizer output for one URL.
type ProcessedContent struct {
	Title       string
	Summary     string
	ContentType ContentType
	Provider    string
}
