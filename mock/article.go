package mock

import (
	"context"

	"github.com/legiblehq/legible"
)

// Compile-time interface verification.
var (
	_ legible.ArticleService = (*ArticleService)(nil)
	_ legible.ArticleWriter  = (*ArticleWriter)(nil)
	_ legible.ArticleStore   = (*ArticleStore)(nil)
)

// ArticleService is a mock implementation of legible.ArticleService.
type ArticleService struct {
	CreateArticleFn          func(ctx context.Context, article *legible.Article) error
	FindArticleByIDFn        func(ctx context.Context, id string) (*legible.Article, error)
	FindArticleBySourceURLFn func(ctx context.Context, sourceURL string) (*legible.Article, error)
	FindArticlesFn           func(ctx context.Context, filter legible.ArticleFilter) ([]*legible.Article, error)
	DeleteArticleFn          func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *legible.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*legible.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticleBySourceURL(ctx context.Context, sourceURL string) (*legible.Article, error) {
	return s.FindArticleBySourceURLFn(ctx, sourceURL)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter legible.ArticleFilter) ([]*legible.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}

// ArticleWriter is a mock implementation of legible.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *legible.Article) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *legible.Article) error {
	return w.WriteArticleFn(ctx, article)
}

// ArticleStore is a mock implementation of legible.ArticleStore.
type ArticleStore struct {
	SaveFn   func(ctx context.Context, article *legible.Article) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ArticleStore) Save(ctx context.Context, article *legible.Article) error {
	return s.SaveFn(ctx, article)
}

func (s *ArticleStore) Commit() error {
	return s.CommitFn()
}

func (s *ArticleStore) Abort() error {
	return s.AbortFn()
}
