package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/legiblehq/legible"
)

// extractOutput is the JSON serialization of an extraction.
type extractOutput struct {
	SourceURL   string                `json:"sourceUrl,omitempty"`
	Title       string                `json:"title"`
	ContentHTML string                `json:"contentHtml"`
	TextContent string                `json:"textContent"`
	Markdown    string                `json:"markdown"`
	Length      int                   `json:"length"`
	Extracted   bool                  `json:"extracted"`
	Metadata    *legible.PageMetadata `json:"metadata,omitempty"`
	Sections    []legible.Section     `json:"sections,omitempty"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, sourceURL, err := c.readSource(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
		return err
	}

	result, err := deps.Extractor.Extract(html, sourceURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
		return err
	}

	contentHTML := result.ContentHTML
	if deps.Sanitizer != nil {
		contentHTML = deps.Sanitizer.Sanitize(contentHTML)
	}

	markdown, err := deps.Converter.Convert(contentHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
		return err
	}

	switch c.Format {
	case "html":
		fmt.Fprintln(deps.Stdout, contentHTML)
	case "text":
		fmt.Fprintln(deps.Stdout, result.TextContent)
	case "json":
		out := extractOutput{
			SourceURL:   sourceURL,
			Title:       result.Title,
			ContentHTML: contentHTML,
			TextContent: result.TextContent,
			Markdown:    markdown,
			Length:      result.Length,
			Extracted:   result.Success,
			Sections:    legible.ExtractSections(markdown),
		}
		if deps.Metadata != nil {
			if meta, err := deps.Metadata.ReadMetadata(html); err == nil {
				out.Metadata = meta
			}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	default:
		fmt.Fprintln(deps.Stdout, markdown)
	}

	// Cache the article when the source is a URL. Output already went to
	// stdout, so a cache failure is reported but does not fail the command.
	if sourceURL != "" && !c.NoCache && deps.Articles != nil {
		article := &legible.Article{
			SourceURL:   sourceURL,
			Title:       result.Title,
			ContentHTML: contentHTML,
			TextContent: result.TextContent,
			Markdown:    markdown,
			Length:      result.Length,
			Extracted:   result.Success,
		}
		if err := deps.Articles.CreateArticle(deps.Ctx, article); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: failed to cache article: %v\n", err)
		}
	}

	return nil
}

// readSource loads the HTML to extract. URLs are fetched, "-" reads stdin,
// and anything else is treated as a file path. The source URL is returned
// only for fetched pages; local input has no URL to resolve links against.
func (c *ExtractCmd) readSource(deps *Dependencies) (string, string, error) {
	switch {
	case c.Source == "-":
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), "", nil

	case strings.HasPrefix(c.Source, "http://"), strings.HasPrefix(c.Source, "https://"):
		html, err := deps.Fetcher.Fetch(deps.Ctx, c.Source)
		if err != nil {
			return "", "", err
		}
		return html, c.Source, nil

	default:
		b, err := os.ReadFile(c.Source)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", c.Source, err)
		}
		return string(b), "", nil
	}
}
