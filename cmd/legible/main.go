package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/legiblehq/legible"
	"github.com/legiblehq/legible/bluemonday"
	"github.com/legiblehq/legible/fs"
	"github.com/legiblehq/legible/goquery"
	"github.com/legiblehq/legible/htmltomarkdown"
	leghttp "github.com/legiblehq/legible/http"
	"github.com/legiblehq/legible/pipeline"
	"github.com/legiblehq/legible/readability"
	legslog "github.com/legiblehq/legible/slog"
	"github.com/legiblehq/legible/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Database path. Resolved from LEGIBLE_DB, the config file, or the
	// default location when empty.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService legible.ArticleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("legible"),
		kong.Description("Extract readable content from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'legible --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// args[0] can be a global flag like --debug rather than the command, so
	// resolve the command from Kong. Command() returns the full path with
	// argument placeholders ("extract <source>"); the first token names it.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Open the article cache unless the command runs without it
	if cmd != "extract" || !cli.Extract.NoCache {
		if m.DBPath == "" {
			m.DBPath = resolveDBPath(cfg)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LEGIBLE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.ArticleService = sqlite.NewArticleService(m.DB)
		deps.Articles = m.ArticleService
	}

	// Wire the extraction pipeline for commands that process pages
	if cmd == "extract" || cmd == "batch" {
		timeout, err := resolveTimeout(cfg)
		if err != nil {
			return err
		}

		httpOpts := []leghttp.Option{leghttp.WithTimeout(timeout)}
		if cfg.UserAgent != "" {
			httpOpts = append(httpOpts, leghttp.WithUserAgent(cfg.UserAgent))
		}
		httpFetcher := leghttp.NewFetcher(httpOpts...)
		defer httpFetcher.Close()

		lightClean := cfg.LightClean == nil || *cfg.LightClean
		if cli.Extract.FullClean {
			lightClean = false
		}

		extOpts := []readability.Option{readability.WithLightClean(lightClean)}
		if cli.Extract.Footnotes {
			extOpts = append(extOpts, readability.WithFootnotes(true))
		}
		if logger != nil {
			extOpts = append(extOpts, readability.WithDebug(func(format string, args ...any) {
				logger.Debug(fmt.Sprintf(format, args...))
			}))
		}

		var fetcher legible.Fetcher = httpFetcher
		var extractor legible.Extractor = readability.NewExtractor(extOpts...)
		if logger != nil {
			fetcher = legslog.NewLoggingFetcher(fetcher, logger)
			extractor = legslog.NewLoggingExtractor(extractor, logger)
		}

		deps.Fetcher = fetcher
		deps.Extractor = extractor
		deps.Converter = htmltomarkdown.NewConverter()
		deps.Metadata = goquery.NewMetadataReader()
		if cli.Extract.Sanitize || cfg.Sanitize {
			deps.Sanitizer = bluemonday.NewSanitizer()
		}
	}

	// Assemble the batch runner with resolved concurrency and rate limits
	if cmd == "batch" {
		concurrency := cli.Batch.Concurrency
		if concurrency <= 0 {
			concurrency = cfg.Concurrency
		}
		if concurrency <= 0 {
			concurrency = defaultConcurrency
		}

		rps := cli.Batch.RPS
		if rps <= 0 {
			rps = cfg.RPS
		}
		if rps <= 0 {
			rps = defaultRPS
		}

		runner := &pipeline.Runner{
			Fetcher:     deps.Fetcher,
			Extractor:   deps.Extractor,
			Converter:   deps.Converter,
			Sanitizer:   deps.Sanitizer,
			Articles:    deps.Articles,
			Limiter:     pipeline.NewDomainLimiter(rps),
			Concurrency: concurrency,
		}
		if cli.Batch.Out != "" {
			store := fs.NewFileStore(filepath.Dir(cli.Batch.Out), filepath.Base(cli.Batch.Out))
			runner.Store = store
			deps.Store = store
		}
		deps.Runner = runner
	}

	return kongCtx.Run(deps)
}

// resolveDBPath picks the article cache location: the LEGIBLE_DB
// environment variable wins, then the config file, then ~/.legible.
func resolveDBPath(cfg Config) string {
	if path := os.Getenv("LEGIBLE_DB"); path != "" {
		return path
	}
	if cfg.CachePath != "" {
		return cfg.CachePath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "legible.db"
	}
	dir := filepath.Join(home, ".legible")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "legible.db")
}
