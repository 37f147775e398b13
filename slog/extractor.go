package slog

import (
	"log/slog"
	"time"

	"github.com/legiblehq/legible"
)

// Ensure LoggingExtractor implements legible.Extractor.
var _ legible.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   legible.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next legible.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html, sourceURL string) (result *legible.ExtractResult, err error) {
	defer func(begin time.Time) {
		var length int
		var success bool
		if result != nil {
			length = result.Length
			success = result.Success
		}
		e.logger.Info("extract",
			"url", sourceURL,
			"length", length,
			"success", success,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, sourceURL)
}
