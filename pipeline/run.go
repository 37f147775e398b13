// Package pipeline provides batch extraction orchestration.
// It coordinates fetching, extraction, sanitization, markdown conversion,
// and storage of articles across many URLs.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/legiblehq/legible"
	"golang.org/x/sync/errgroup"
)

// Runner orchestrates batch extraction of articles from URLs.
// Fetcher, Extractor, and Converter are required. Sanitizer, Articles,
// Store, and Limiter are optional; a nil field skips that stage.
type Runner struct {
	Fetcher     legible.Fetcher
	Extractor   legible.Extractor
	Converter   legible.Converter
	Sanitizer   legible.Sanitizer
	Articles    legible.ArticleService
	Store       legible.ArticleStore
	Limiter     legible.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a batch run.
type Result struct {
	Saved     int
	Unchanged int
	Failed    int
	Bytes     int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position    int
	url         string
	title       string
	contentHTML string
	textContent string
	markdown    string
	hash        string
	length      int
	success     bool
	err         error
}

// Run processes all URLs and records the extracted articles.
// The progress callback, if provided, receives events as the run proceeds.
// Each URL ends up in exactly one of the Saved, Unchanged, or Failed counts.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if r.Fetcher == nil || r.Extractor == nil || r.Converter == nil {
		return nil, legible.Errorf(legible.EINVALID, "runner requires a fetcher, extractor, and converter")
	}

	if len(urls) == 0 {
		return &Result{}, nil
	}

	// Set up concurrency
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	// Channel for collecting results
	resultCh := make(chan pageResult, len(urls))

	// Progress tracking
	var completed atomic.Int64
	total := len(urls)

	// Notify start
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	// Start workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				result := r.processURL(gctx, i, url)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]pageResult, len(urls))
	var failedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
					Error:     result.err,
				})
			}
		} else {
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
				})
			}
		}
	}

	// Record articles and accumulate stats
	var savedCount int
	var unchangedCount int
	var totalBytes int

	for _, result := range results {
		if result.err != nil {
			continue
		}

		article := &legible.Article{
			SourceURL:   result.url,
			Title:       result.title,
			ContentHTML: result.contentHTML,
			TextContent: result.textContent,
			Markdown:    result.markdown,
			ContentHash: result.hash,
			Length:      result.length,
			Extracted:   result.success,
		}

		if r.Store != nil {
			if err := r.Store.Save(ctx, article); err != nil {
				failedCount++
				continue
			}
		}

		// Content identical to the cached copy needs no cache write.
		unchanged := false
		if r.Articles != nil {
			if existing, err := r.Articles.FindArticleBySourceURL(ctx, result.url); err == nil && existing.ContentHash == result.hash {
				unchanged = true
			}
		}

		if unchanged {
			unchangedCount++
		} else {
			if r.Articles != nil {
				if err := r.Articles.CreateArticle(ctx, article); err != nil {
					failedCount++
					continue
				}
			}
			savedCount++
		}

		totalBytes += len(result.markdown)
	}

	// Notify finished
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &Result{
		Saved:     savedCount,
		Unchanged: unchangedCount,
		Failed:    failedCount,
		Bytes:     totalBytes,
	}, nil
}

// processURL fetches and processes a single URL.
func (r *Runner) processURL(ctx context.Context, position int, rawURL string) pageResult {
	result := pageResult{
		position: position,
		url:      rawURL,
	}

	// Rate limit per domain
	if r.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			result.err = fmt.Errorf("invalid URL %q: %w", rawURL, err)
			return result
		}
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	// Fetch on the default backoff schedule unless the runner carries
	// its own delays. An empty non-nil slice means a single attempt.
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return r.Fetcher.Fetch(ctx, url)
	}
	var html string
	var err error
	if r.RetryDelays == nil {
		html, err = FetchWithRetry(ctx, rawURL, fetchFn, nil)
	} else {
		html, err = FetchWithRetryDelays(ctx, rawURL, fetchFn, nil, r.RetryDelays)
	}
	if err != nil {
		result.err = err
		return result
	}

	// Extract content
	extracted, err := r.Extractor.Extract(html, rawURL)
	if err != nil {
		result.err = err
		return result
	}

	contentHTML := extracted.ContentHTML
	if r.Sanitizer != nil {
		contentHTML = r.Sanitizer.Sanitize(contentHTML)
	}

	// Convert to markdown
	markdown, err := r.Converter.Convert(contentHTML)
	if err != nil {
		result.err = err
		return result
	}

	result.title = extracted.Title
	result.contentHTML = contentHTML
	result.textContent = extracted.TextContent
	result.markdown = markdown
	result.hash = ComputeHash(contentHTML)
	result.length = extracted.Length
	result.success = extracted.Success

	return result
}
