package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/legiblehq/legible"
	"github.com/legiblehq/legible/pipeline"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := readURLFile(c.URLFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to fetch")
		return nil
	}

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d URLs\n", event.Total)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", event.URL, event.Error)
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", event.Completed, event.Total, pipeline.TruncateURL(event.URL, 40))
		case pipeline.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", event.Completed, event.Total, pipeline.TruncateURL(event.URL, 40))
		case pipeline.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Runner.Run(deps.Ctx, urls, progress)
	if err != nil {
		if deps.Store != nil {
			_ = deps.Store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error fetching: %v\n", err)
		return err
	}

	// Clear the progress line
	fmt.Fprintf(deps.Stdout, "\r%80s\r", "")

	if deps.Store != nil {
		if result.Saved+result.Unchanged > 0 {
			if err := deps.Store.Commit(); err != nil {
				fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
				return err
			}
		} else {
			_ = deps.Store.Abort()
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s)\n", result.Saved, pipeline.FormatBytes(result.Bytes))
	if result.Unchanged > 0 {
		fmt.Fprintf(deps.Stdout, "  %d unchanged\n", result.Unchanged)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d failed\n", result.Failed)
	}

	return nil
}

// readURLFile parses a file containing one URL per line. Blank lines and
// lines starting with # are skipped; duplicates are dropped while
// preserving order.
func readURLFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	seen := make(map[string]bool)
	var urls []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		urls = append(urls, line)
	}

	return urls, nil
}
