package mock

import "github.com/legiblehq/legible"

var _ legible.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of legible.Extractor.
type Extractor struct {
	ExtractFn func(html, sourceURL string) (*legible.ExtractResult, error)
}

func (e *Extractor) Extract(html, sourceURL string) (*legible.ExtractResult, error) {
	return e.ExtractFn(html, sourceURL)
}
