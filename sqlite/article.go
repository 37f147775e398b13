package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/legiblehq/legible"
)

// Compile-time interface verification.
var _ legible.ArticleService = (*ArticleService)(nil)

// ArticleService implements legible.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes the xxHash of content as a fixed-width hex string.
// pipeline.ComputeHash uses the same encoding so hashes stored here compare
// equal to hashes computed during a batch run.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// CreateArticle stores a new article, assigning its ID, content hash, and
// fetch timestamp. Each source URL holds at most one cached article, so
// caching the same URL again replaces the earlier entry.
func (s *ArticleService) CreateArticle(ctx context.Context, article *legible.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	article.FetchedAt = time.Now().UTC()
	article.ContentHash = hashContent(article.ContentHTML)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (id, source_url, title, content_html, text_content, markdown, content_hash, length, extracted, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_url) DO UPDATE SET
			id = excluded.id,
			title = excluded.title,
			content_html = excluded.content_html,
			text_content = excluded.text_content,
			markdown = excluded.markdown,
			content_hash = excluded.content_hash,
			length = excluded.length,
			extracted = excluded.extracted,
			fetched_at = excluded.fetched_at
	`, article.ID, article.SourceURL, article.Title, article.ContentHTML, article.TextContent,
		article.Markdown, article.ContentHash, article.Length, article.Extracted,
		article.FetchedAt.Format(time.RFC3339))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*legible.Article, error) {
	var article legible.Article
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, content_html, text_content, markdown, content_hash, length, extracted, fetched_at
		FROM articles
		WHERE id = ?
	`, id).Scan(&article.ID, &article.SourceURL, &article.Title, &article.ContentHTML,
		&article.TextContent, &article.Markdown, &article.ContentHash, &article.Length,
		&article.Extracted, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, legible.Errorf(legible.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}

	article.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// FindArticleBySourceURL retrieves the article cached for a URL.
func (s *ArticleService) FindArticleBySourceURL(ctx context.Context, sourceURL string) (*legible.Article, error) {
	articles, err := s.FindArticles(ctx, legible.ArticleFilter{SourceURL: &sourceURL})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, legible.Errorf(legible.ENOTFOUND, "article not found")
	}
	return articles[0], nil
}

// FindArticles retrieves articles matching the filter.
func (s *ArticleService) FindArticles(ctx context.Context, filter legible.ArticleFilter) ([]*legible.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, content_html, text_content, markdown, content_hash, length, extracted, fetched_at FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	switch filter.SortBy {
	case legible.SortByTitle:
		query.WriteString(" ORDER BY title ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*legible.Article
	for rows.Next() {
		var article legible.Article
		var fetchedAt string

		if err := rows.Scan(&article.ID, &article.SourceURL, &article.Title, &article.ContentHTML,
			&article.TextContent, &article.Markdown, &article.ContentHash, &article.Length,
			&article.Extracted, &fetchedAt); err != nil {
			return nil, err
		}

		article.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		articles = append(articles, &article)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return legible.Errorf(legible.ENOTFOUND, "article not found")
	}

	return nil
}
