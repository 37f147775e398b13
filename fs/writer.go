// Package fs provides file-based export for extracted articles.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/legiblehq/legible"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path.
// Example: https://example.com/blog/post → blog/post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	// Reject paths that would escape the base directory
	if strings.Contains("/"+path+"/", "/../") {
		return "", fmt.Errorf("path traversal in URL: %s", rawURL)
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Otherwise append .md
	return path + ".md", nil
}

// frontmatter is the YAML header written at the top of exported files.
type frontmatter struct {
	Source  string `yaml:"source"`
	Title   string `yaml:"title"`
	Fetched string `yaml:"fetched"`
}

// FormatArticle formats an article as markdown with YAML frontmatter.
// The FetchedAt timestamp is used when set; otherwise the current date.
func FormatArticle(article *legible.Article) (string, error) {
	fetched := article.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}

	fm, err := yaml.Marshal(frontmatter{
		Source:  article.SourceURL,
		Title:   article.Title,
		Fetched: fetched.Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	content := article.Markdown
	if content == "" {
		content = article.ContentHTML
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(content)
	return b.String(), nil
}

// Ensure Writer implements legible.ArticleWriter at compile time.
var _ legible.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteArticle writes an article to disk as a markdown file.
func (w *Writer) WriteArticle(ctx context.Context, article *legible.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(article.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content, err := FormatArticle(article)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
