// Package goquery provides a goquery-based implementation of
// legible.MetadataReader that reads page metadata from Open Graph,
// Twitter card, and standard meta tags.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/legiblehq/legible"
)

// Ensure MetadataReader implements legible.MetadataReader at compile time.
var _ legible.MetadataReader = (*MetadataReader)(nil)

// MetadataReader reads page metadata from meta tags.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata parses HTML and collects page metadata. Open Graph tags
// take precedence over Twitter card tags, which take precedence over
// plain meta tags. Missing fields are left empty; a page without any
// metadata yields a zero-valued result, not an error.
func (r *MetadataReader) ReadMetadata(html string) (*legible.PageMetadata, error) {
	if html == "" {
		return nil, legible.Errorf(legible.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, legible.Errorf(legible.EINVALID, "failed to parse HTML: %v", err)
	}

	// First occurrence of each key wins, so precedence between keys can
	// be decided after collection regardless of tag order.
	values := make(map[string]string)
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content := strings.TrimSpace(sel.AttrOr("content", ""))
		if content == "" {
			return
		}
		key := sel.AttrOr("property", "")
		if key == "" {
			key = sel.AttrOr("name", "")
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return
		}
		if _, ok := values[key]; !ok {
			values[key] = content
		}
	})

	meta := &legible.PageMetadata{
		Title:       pick(values, "og:title", "twitter:title"),
		Description: pick(values, "og:description", "twitter:description", "description"),
		SiteName:    pick(values, "og:site_name"),
		Author:      pick(values, "author", "article:author"),
		ImageURL:    pick(values, "og:image", "twitter:image"),
		Published:   pick(values, "article:published_time", "date"),
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		meta.Canonical = strings.TrimSpace(href)
	}

	return meta, nil
}

// pick returns the value of the first key present in values.
func pick(values map[string]string, keys ...string) string {
	for _, key := range keys {
		if v, ok := values[key]; ok {
			return v
		}
	}
	return ""
}
