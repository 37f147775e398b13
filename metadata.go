package legible

// PageMetadata holds document metadata read from meta tags. It is
// independent of the heuristic title derivation: the extractor guesses the
// title from the markup, while metadata reports what the page declares
// about itself.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SiteName    string `json:"siteName"`
	Author      string `json:"author"`
	Canonical   string `json:"canonical"`
	ImageURL    string `json:"imageUrl"`
	Published   string `json:"published"`
}

// MetadataReader extracts declared metadata from HTML pages.
type MetadataReader interface {
	// ReadMetadata parses the page and returns its declared metadata.
	// Missing fields are left empty; a page with no metadata yields a
	// zero-valued result, not an error.
	ReadMetadata(html string) (*PageMetadata, error)
}
