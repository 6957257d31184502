package extractor

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

const (
	// minContentChars is the threshold below which a page is considered
	// to carry no usable article text.
	minContentChars = 120

	// maxBodyChars bounds the extracted body; anything beyond it adds
	// nothing to a 2-3 sentence summary.
	maxBodyChars = 2000
)

// noiseTags are removed wholesale before content selection.
var noiseTags = []string{
	"script", "style", "nav", "footer", "header", "aside",
	"iframe", "embed", "object", "noscript", "form", "button", "svg",
}

// noisePatterns match class/id substrings of non-content blocks.
var noisePatterns = []string{
	"sidebar", "menu", "nav", "ad-", "widget", "cookie", "social",
	"share", "comment", "related", "popup", "banner", "advertisement",
	"promo", "newsletter", "subscribe",
}

// contentSelectors are tried most-specific first; the first one yielding
// non-empty paragraph text wins. An empty document-wide pass runs last.
var contentSelectors = []string{
	`[itemprop="articleBody"]`,
	".article-body",
	".article-content",
	".post-content",
	".entry-content",
	"article",
	"main",
}

// Extractor cleans rendered HTML into article content.
type Extractor struct {
	logger *slog.Logger
}

var _ ports.ContentExtractor = (*Extractor)(nil)

// New builds an Extractor; logger may be nil.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract strips noise from the rendered page and returns its title,
// paragraph text, discovered image and Open Graph metadata. It fails
// with domain.ErrNoArticleContent when filtering leaves no usable text.
func (e *Extractor) Extract(html, sourceURL string) (domain.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.ExtractedContent{}, fmt.Errorf("parse document: %w", err)
	}

	// Meta tags are read from the head before any noise removal so that
	// body-extraction failures never lose them.
	meta := extractMeta(doc)
	title := resolveTitle(doc, meta)

	stripNoise(doc)

	root, paragraphs := selectContent(doc)
	body := strings.Join(paragraphs, " ")

	if len(body) < minContentChars {
		if fallback := readabilityParagraphs(html, sourceURL); len(strings.Join(fallback, " ")) >= minContentChars {
			e.debug("readability fallback used", "url", sourceURL)
			paragraphs = fallback
			body = strings.Join(paragraphs, " ")
		}
	}

	if len(body) < minContentChars {
		return domain.ExtractedContent{}, fmt.Errorf("%w: %s", domain.ErrNoArticleContent, sourceURL)
	}

	image := meta["image"]
	if image == "" {
		image = discoverImage(root, sourceURL)
	}

	e.debug("extracted content",
		"url", sourceURL, "paragraphs", len(paragraphs), "chars", len(body), "image", image != "")

	return domain.ExtractedContent{
		Title:      title,
		Paragraphs: paragraphs,
		ImageURL:   image,
		Meta:       meta,
	}, nil
}

// extractMeta collects Open Graph and Twitter Card tags from the head.
func extractMeta(doc *goquery.Document) map[string]string {
	meta := map[string]string{}

	read := func(selector, key string) {
		if _, ok := meta[key]; ok {
			return
		}
		if content, exists := doc.Find(selector).First().Attr("content"); exists {
			if v := strings.TrimSpace(content); v != "" {
				meta[key] = v
			}
		}
	}

	read(`meta[property="og:title"]`, "title")
	read(`meta[property="og:description"]`, "description")
	read(`meta[property="og:image"]`, "image")
	read(`meta[name="twitter:title"]`, "title")
	read(`meta[name="twitter:description"]`, "description")
	read(`meta[name="twitter:image"]`, "image")

	return meta
}

// resolveTitle prefers og:title, then <title>, then the first heading.
func resolveTitle(doc *goquery.Document, meta map[string]string) string {
	if t := meta["title"]; t != "" {
		return t
	}
	if t := collapse(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return collapse(doc.Find("h1").First().Text())
}

// stripNoise removes non-content elements by tag name and by class/id
// substring match.
func stripNoise(doc *goquery.Document) {
	doc.Find(strings.Join(noiseTags, ", ")).Remove()

	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		marker := strings.ToLower(class + " " + id)
		for _, pattern := range noisePatterns {
			if strings.Contains(marker, pattern) {
				sel.Remove()
				return
			}
		}
	})
}

// selectContent walks the selector priority list and returns the first
// root with paragraph text, falling back to the whole document.
func selectContent(doc *goquery.Document) (*goquery.Selection, []string) {
	for _, selector := range contentSelectors {
		root := doc.Find(selector).First()
		if root.Length() == 0 {
			continue
		}
		if paragraphs := collectParagraphs(root); len(paragraphs) > 0 {
			return root, paragraphs
		}
	}

	root := doc.Selection
	return root, collectParagraphs(root)
}

// collectParagraphs pulls paragraph-level text from the root, collapsing
// whitespace and stopping once the body cap is reached.
func collectParagraphs(root *goquery.Selection) []string {
	var (
		paragraphs []string
		total      int
	)

	root.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := collapse(p.Text())
		if text == "" {
			return true
		}
		paragraphs = append(paragraphs, text)
		total += len(text)
		return total < maxBodyChars
	})

	return paragraphs
}

// readabilityParagraphs re-extracts the page with go-readability, used
// when the selector pass finds nothing (e.g. non-semantic markup).
func readabilityParagraphs(html, sourceURL string) []string {
	pageURL, err := url.Parse(sourceURL)
	if err != nil {
		return nil
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		return nil
	}

	var (
		paragraphs []string
		total      int
	)
	for _, line := range strings.Split(article.TextContent, "\n") {
		text := collapse(line)
		if text == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
		total += len(text)
		if total >= maxBodyChars {
			break
		}
	}

	return paragraphs
}

// discoverImage looks for an inline image inside the content root when
// the page declares no preview image. Relative sources are resolved
// against the page URL so references stay absolute.
func discoverImage(root *goquery.Selection, sourceURL string) string {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}

	var found string
	root.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		if width, ok := img.Attr("width"); ok && !wideEnough(width) {
			return true
		}

		ref, err := url.Parse(src)
		if err != nil {
			return true
		}
		found = base.ResolveReference(ref).String()
		return false
	})

	return found
}

// wideEnough filters out icons and spacers by declared width.
func wideEnough(width string) bool {
	width = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(width), "px"), "%")
	n, err := strconv.Atoi(width)
	if err != nil {
		return true
	}
	return n > 200
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
