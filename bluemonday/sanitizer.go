// Package bluemonday provides a bluemonday-based implementation of
// legible.Sanitizer that strips unsafe markup from extracted HTML.
package bluemonday

import (
	"regexp"

	"github.com/legiblehq/legible"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements legible.Sanitizer at compile time.
var _ legible.Sanitizer = (*Sanitizer)(nil)

// extractorClasses matches the class values the extraction engine attaches
// to its own output nodes. All other class values are dropped.
var extractorClasses = regexp.MustCompile(`^(footnote-ref|readability-styled)$`)

// Sanitizer removes scripts, event handlers, inline styles, and embedded
// content from HTML while keeping the formatting an article needs.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a new Sanitizer. The policy is bluemonday's
// UGCPolicy with two adjustments: links keep their original rel
// attributes, and the class values produced by the extraction engine
// survive so footnote markup stays addressable. Iframes are removed,
// including video embeds the content cleaner spared.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("class").Matching(extractorClasses).OnElements("a", "p", "sup")
	return &Sanitizer{policy: p}
}

// Sanitize strips unsafe constructs and returns HTML safe for display.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
