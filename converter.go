package legible

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}

// Sanitizer removes unsafe markup from HTML.
type Sanitizer interface {
	// Sanitize strips scripts, event handlers, and other unsafe
	// constructs, returning HTML safe for display.
	Sanitize(html string) string
}
