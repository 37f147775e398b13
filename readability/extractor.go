// Package readability locates the main readable content of an HTML
// page using the Arc90 readability heuristics: paragraph-bearing
// elements score points for their ancestors, the best-scoring container
// wins, and everything that looks like navigation or page chrome is
// stripped from it. Extraction never fails on malformed input; it
// degrades to a placeholder result with Success set to false.
package readability

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/legiblehq/legible"
	"golang.org/x/net/html"
)

// Ensure Extractor implements legible.Extractor at compile time.
var _ legible.Extractor = (*Extractor)(nil)

// LogFunc is the signature for a diagnostic logging function.
type LogFunc func(format string, args ...any)

// Extractor extracts main content from HTML.
type Extractor struct {
	lightClean   bool
	revertForced bool
	footnotes    bool
	logf         LogFunc
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLightClean selects between the light (default) and standard
// conditional-cleaning rule sets. The standard rules remove embeds and
// duplicate headers more aggressively.
func WithLightClean(v bool) Option {
	return func(e *Extractor) { e.lightClean = v }
}

// WithRevertForcedParagraphs controls whether paragraphs synthesized
// around loose text during extraction are turned back into plain text
// in the output. Enabled by default.
func WithRevertForcedParagraphs(v bool) Option {
	return func(e *Extractor) { e.revertForced = v }
}

// WithFootnotes enables rewriting of content links into numbered
// footnote references with an appended references section.
func WithFootnotes(v bool) Option {
	return func(e *Extractor) { e.footnotes = v }
}

// WithDebug enables diagnostic tracing through logf. Tracing has no
// effect on extraction behavior. A nil logf disables tracing.
func WithDebug(logf LogFunc) Option {
	return func(e *Extractor) { e.logf = logf }
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{lightClean: true, revertForced: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document is the tree-level result of an extraction. TitleNode and
// Content remain attached to the extractor's working tree and are
// exclusively owned by the caller once returned.
type Document struct {
	Title     string
	TitleNode *html.Node
	Content   *html.Node
	Success   bool
}

// Extract processes raw HTML and returns the main content rendered back
// to markup. sourceURL, when non-empty, is used to resolve relative
// links.
func (e *Extractor) Extract(rawHTML, sourceURL string) (*legible.ExtractResult, error) {
	doc, err := e.ExtractDocument(rawHTML, sourceURL)
	if err != nil {
		return nil, err
	}
	text := innerText(doc.Content, false)
	return &legible.ExtractResult{
		Title:       doc.Title,
		ContentHTML: renderNode(doc.Content),
		TextContent: text,
		Length:      utf8.RuneCountInString(text),
		Success:     doc.Success,
	}, nil
}

// ExtractDocument runs the extraction pipeline and returns the result
// as document tree nodes, for callers that want to keep transforming
// the content before serializing it.
func (e *Extractor) ExtractDocument(rawHTML, sourceURL string) (*Document, error) {
	doc, err := html.Parse(strings.NewReader(preprocess(rawHTML)))
	if err != nil {
		e.trace("parsing input: %v", err)
		doc, err = html.Parse(strings.NewReader(emptyShell))
		if err != nil {
			return nil, legible.Errorf(legible.EINTERNAL, "parsing document shell: %v", err)
		}
	}

	title, titleNode := deriveTitle(doc)

	body := findBody(doc)
	if body == nil {
		return nil, legible.Errorf(legible.EINTERNAL, "parsed document has no body")
	}
	cached, err := innerHTML(body)
	if err != nil {
		e.trace("caching body markup: %v", err)
	}

	container, genuine := e.grab(body, allFlags(), cached)
	if !genuine && utf8.RuneCountInString(innerText(container, false)) < minContentLength {
		container = placeholderContent()
	}

	if sourceURL != "" {
		resolveLinks(container, sourceURL)
	}
	if e.footnotes {
		e.addFootnotes(container, sourceURL)
	}

	return &Document{
		Title:     title,
		TitleNode: titleNode,
		Content:   container,
		Success:   genuine,
	}, nil
}

// placeholderContent builds the stand-in container returned when no
// readable content could be located.
func placeholderContent() *html.Node {
	div := createElement("div")
	p := createElement("p")
	p.AppendChild(textNode("Unable to find readable content in this page."))
	div.AppendChild(p)
	return div
}

// resolveLinks rewrites relative link and image targets against the
// page's source URL so the extracted fragment keeps working out of its
// original context. Fragment-only links are left alone.
func resolveLinks(container *html.Node, sourceURL string) {
	base, err := url.Parse(sourceURL)
	if err != nil || base.Host == "" {
		return
	}
	for _, a := range findAll(container, "a") {
		href := getAttr(a, "href")
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		if u, err := url.Parse(href); err == nil && !u.IsAbs() {
			setAttr(a, "href", base.ResolveReference(u).String())
		}
	}
	for _, img := range findAll(container, "img") {
		src := getAttr(img, "src")
		if src == "" {
			continue
		}
		if u, err := url.Parse(src); err == nil && !u.IsAbs() {
			setAttr(img, "src", base.ResolveReference(u).String())
		}
	}
}

// trace emits a diagnostic line when debug logging is configured.
func (e *Extractor) trace(format string, args ...any) {
	if e.logf != nil {
		e.logf(format, args...)
	}
}
