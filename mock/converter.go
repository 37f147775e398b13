package mock

import "github.com/legiblehq/legible"

// Compile-time interface verification.
var (
	_ legible.Converter = (*Converter)(nil)
	_ legible.Sanitizer = (*Sanitizer)(nil)
)

// Converter is a mock implementation of legible.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// Sanitizer is a mock implementation of legible.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) string
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.SanitizeFn(html)
}
