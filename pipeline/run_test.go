package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/legiblehq/legible"
	"github.com/legiblehq/legible/mock"
	"github.com/legiblehq/legible/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns error when required dependencies are missing", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Runner{}

		result, err := r.Run(context.Background(), []string{"https://example.com"}, nil)

		assert.Nil(t, result)
		require.Error(t, err)
		assert.Equal(t, legible.EINVALID, legible.ErrorCode(err))
	})

	t.Run("returns zero result when no URLs provided", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Runner{
			Fetcher:     &mock.Fetcher{},
			Extractor:   &mock.Extractor{},
			Converter:   &mock.Converter{},
			Concurrency: 10,
			RetryDelays: []time.Duration{0}, // no delay for tests
		}

		result, err := r.Run(context.Background(), []string{}, nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 0, result.Unchanged)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 0, result.Bytes)
	})

	t.Run("extracts single URL and caches article", func(t *testing.T) {
		t.Parallel()

		var saved *legible.Article
		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html><body><p>Readable content</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "Test Page",
						ContentHTML: "<p>Readable content</p>",
						TextContent: "Readable content",
						Length:      16,
						Success:     true,
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "Readable content", nil
				},
			},
			Articles: &mock.ArticleService{
				FindArticleBySourceURLFn: func(_ context.Context, _ string) (*legible.Article, error) {
					return nil, legible.Errorf(legible.ENOTFOUND, "article not found")
				},
				CreateArticleFn: func(_ context.Context, article *legible.Article) error {
					saved = article
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		result, err := r.Run(context.Background(), []string{"https://example.com/post"}, nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 0, result.Unchanged)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, len("Readable content"), result.Bytes)

		// Verify cached article
		require.NotNil(t, saved)
		assert.Equal(t, "https://example.com/post", saved.SourceURL)
		assert.Equal(t, "Test Page", saved.Title)
		assert.Equal(t, "<p>Readable content</p>", saved.ContentHTML)
		assert.Equal(t, "Readable content", saved.TextContent)
		assert.Equal(t, "Readable content", saved.Markdown)
		assert.Equal(t, pipeline.ComputeHash("<p>Readable content</p>"), saved.ContentHash)
		assert.Equal(t, 16, saved.Length)
		assert.True(t, saved.Extracted)
	})

	t.Run("counts failed URLs when fetch fails", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://example.com/page1" {
						return "", legible.Errorf(legible.EINTERNAL, "fetch failed")
					}
					return "<html><body>Page 2</body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "Page 2",
						ContentHTML: "<p>Page 2 content</p>",
						TextContent: "Page 2 content",
						Success:     true,
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "Page 2 content", nil
				},
			},
			Articles: &mock.ArticleService{
				FindArticleBySourceURLFn: func(_ context.Context, _ string) (*legible.Article, error) {
					return nil, legible.Errorf(legible.ENOTFOUND, "article not found")
				},
				CreateArticleFn: func(_ context.Context, _ *legible.Article) error {
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{0}, // no retry delay for tests
		}

		urls := []string{"https://example.com/page1", "https://example.com/page2"}
		result, err := r.Run(context.Background(), urls, nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("uses the default retry schedule when no delays are configured", func(t *testing.T) {
		t.Parallel()

		// RetryDelays stays nil so the fetch rides the default schedule.
		var attempts int
		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					attempts++
					return "<html><body><p>First try</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "First",
						ContentHTML: "<p>First try</p>",
						TextContent: "First try",
						Success:     true,
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "First try", nil
				},
			},
			Concurrency: 1,
		}

		result, err := r.Run(context.Background(), []string{"https://example.com/post"}, nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, attempts, "a first-try success needs no retries")
	})

	t.Run("skips cache write when content is unchanged", func(t *testing.T) {
		t.Parallel()

		var createCalled bool
		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body><p>Same content</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "Same",
						ContentHTML: "<p>Same content</p>",
						TextContent: "Same content",
						Success:     true,
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "Same content", nil
				},
			},
			Articles: &mock.ArticleService{
				FindArticleBySourceURLFn: func(_ context.Context, sourceURL string) (*legible.Article, error) {
					return &legible.Article{
						SourceURL:   sourceURL,
						ContentHash: pipeline.ComputeHash("<p>Same content</p>"),
					}, nil
				},
				CreateArticleFn: func(_ context.Context, _ *legible.Article) error {
					createCalled = true
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		result, err := r.Run(context.Background(), []string{"https://example.com/post"}, nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 1, result.Unchanged)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, len("Same content"), result.Bytes)
		assert.False(t, createCalled, "unchanged content should not be rewritten")
	})

	t.Run("sanitizes content before conversion when sanitizer is set", func(t *testing.T) {
		t.Parallel()

		var convertedFrom string
		var saved *legible.Article
		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "Test",
						ContentHTML: `<p onclick="x()">Hi</p>`,
						TextContent: "Hi",
						Success:     true,
					}, nil
				},
			},
			Sanitizer: &mock.Sanitizer{
				SanitizeFn: func(_ string) string {
					return "<p>Hi</p>"
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					convertedFrom = html
					return "Hi", nil
				},
			},
			Articles: &mock.ArticleService{
				FindArticleBySourceURLFn: func(_ context.Context, _ string) (*legible.Article, error) {
					return nil, legible.Errorf(legible.ENOTFOUND, "article not found")
				},
				CreateArticleFn: func(_ context.Context, article *legible.Article) error {
					saved = article
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		_, err := r.Run(context.Background(), []string{"https://example.com/post"}, nil)

		require.NoError(t, err)
		assert.Equal(t, "<p>Hi</p>", convertedFrom, "converter should receive sanitized HTML")
		require.NotNil(t, saved)
		assert.Equal(t, "<p>Hi</p>", saved.ContentHTML)
		assert.Equal(t, pipeline.ComputeHash("<p>Hi</p>"), saved.ContentHash)
	})

	t.Run("saves articles to the store when configured", func(t *testing.T) {
		t.Parallel()

		var stored *legible.Article
		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body><p>Content</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "Stored",
						ContentHTML: "<p>Content</p>",
						TextContent: "Content",
						Success:     true,
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "Content", nil
				},
			},
			Store: &mock.ArticleStore{
				SaveFn: func(_ context.Context, article *legible.Article) error {
					stored = article
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		result, err := r.Run(context.Background(), []string{"https://example.com/post"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		require.NotNil(t, stored)
		assert.Equal(t, "https://example.com/post", stored.SourceURL)
		assert.Equal(t, "Stored", stored.Title)
		assert.Equal(t, "Content", stored.Markdown)
	})

	t.Run("waits for the domain limiter before fetching", func(t *testing.T) {
		t.Parallel()

		var domains []string
		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body><p>Content</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "Test",
						ContentHTML: "<p>Content</p>",
						TextContent: "Content",
						Success:     true,
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "Content", nil
				},
			},
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					domains = append(domains, domain)
					return nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		_, err := r.Run(context.Background(), []string{"https://example.com/post"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"example.com"}, domains)
	})

	t.Run("calls progress callback with events", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Runner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body>Test</body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_, _ string) (*legible.ExtractResult, error) {
					return &legible.ExtractResult{
						Title:       "Test",
						ContentHTML: "<p>Test</p>",
						TextContent: "Test",
						Success:     true,
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "Test", nil
				},
			},
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		var events []pipeline.ProgressEvent
		progress := func(e pipeline.ProgressEvent) {
			events = append(events, e)
		}

		_, err := r.Run(context.Background(), []string{"https://example.com/page1"}, progress)

		require.NoError(t, err)
		require.Len(t, events, 3) // Started, Completed, Finished

		// First event: Started
		assert.Equal(t, pipeline.ProgressStarted, events[0].Type)
		assert.Equal(t, 1, events[0].Total)

		// Second event: Completed for the URL
		assert.Equal(t, pipeline.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, 1, events[1].Total)
		assert.Equal(t, "https://example.com/page1", events[1].URL)

		// Third event: Finished
		assert.Equal(t, pipeline.ProgressFinished, events[2].Type)
		assert.Equal(t, 1, events[2].Total)
	})
}

func TestProgressType_Constants(t *testing.T) {
	t.Parallel()

	// Verify constants are defined and have expected order
	assert.Equal(t, pipeline.ProgressStarted, pipeline.ProgressType(0))
	assert.Equal(t, pipeline.ProgressCompleted, pipeline.ProgressType(1))
	assert.Equal(t, pipeline.ProgressFailed, pipeline.ProgressType(2))
	assert.Equal(t, pipeline.ProgressFinished, pipeline.ProgressType(3))
}

func TestResult_Fields(t *testing.T) {
	t.Parallel()

	// Verify Result struct has expected fields
	r := pipeline.Result{
		Saved:     10,
		Unchanged: 3,
		Failed:    2,
		Bytes:     1024,
	}

	assert.Equal(t, 10, r.Saved)
	assert.Equal(t, 3, r.Unchanged)
	assert.Equal(t, 2, r.Failed)
	assert.Equal(t, 1024, r.Bytes)
}

func TestProgressEvent_Fields(t *testing.T) {
	t.Parallel()

	// Verify ProgressEvent struct has expected fields
	testErr := legible.Errorf(legible.EINTERNAL, "test error")
	e := pipeline.ProgressEvent{
		Type:      pipeline.ProgressFailed,
		Completed: 5,
		Total:     10,
		URL:       "https://example.com/page",
		Error:     testErr,
	}

	assert.Equal(t, pipeline.ProgressFailed, e.Type)
	assert.Equal(t, 5, e.Completed)
	assert.Equal(t, 10, e.Total)
	assert.Equal(t, "https://example.com/page", e.URL)
	assert.Equal(t, testErr, e.Error)
}

func TestProgressFunc_Type(t *testing.T) {
	t.Parallel()

	// Verify ProgressFunc is callable
	var called bool
	var fn pipeline.ProgressFunc = func(event pipeline.ProgressEvent) {
		called = true
	}

	fn(pipeline.ProgressEvent{Type: pipeline.ProgressStarted})
	assert.True(t, called)
}
