package legible

import (
	"context"
	"time"
)

// Article represents an extracted page stored in the cache.
type Article struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	ContentHTML string    `json:"contentHtml"`
	TextContent string    `json:"textContent"`
	Markdown    string    `json:"markdown"`
	ContentHash string    `json:"contentHash"`
	Length      int       `json:"length"`
	Extracted   bool      `json:"extracted"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	return nil
}

// ArticleWriter exports articles to external storage such as files.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, article *Article) error
}

// ArticleStore persists exported articles with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ArticleStore interface {
	Save(ctx context.Context, article *Article) error
	Commit() error
	Abort() error
}

// ArticleService represents a service for managing cached articles.
type ArticleService interface {
	// CreateArticle stores a new article.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticleBySourceURL retrieves the article cached for a URL.
	// Returns ENOTFOUND if no article has been cached for it.
	FindArticleBySourceURL(ctx context.Context, sourceURL string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// SortOrder represents the sort order for article queries.
type SortOrder string

// SortOrder constants for ArticleFilter.
const (
	SortByFetchedAt SortOrder = "fetched_at"
	SortByTitle     SortOrder = "title"
)

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
