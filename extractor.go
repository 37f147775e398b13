package legible

// ExtractResult holds the readable content extracted from an HTML page.
type ExtractResult struct {
	// Title is the derived article title.
	Title string

	// ContentHTML is the article body as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// TextContent is the article body as plain text.
	TextContent string

	// Length is the rune count of TextContent.
	Length int

	// Success reports whether a genuine content candidate was found.
	// When false the result is a best-effort fallback built from the
	// whole page body.
	Success bool
}

// Extractor extracts the main readable content from HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the readable content.
	// The source URL is used to resolve relative links and may be empty.
	// Returns EINVALID if the input is empty.
	Extract(html, sourceURL string) (*ExtractResult, error)
}
