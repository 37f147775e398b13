package main

import (
	"context"
	"io"

	"github.com/legiblehq/legible"
	"github.com/legiblehq/legible/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Articles  legible.ArticleService
	Fetcher   legible.Fetcher
	Extractor legible.Extractor
	Converter legible.Converter
	Sanitizer legible.Sanitizer
	Metadata  legible.MetadataReader
	Store     legible.ArticleStore
	Runner    *pipeline.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Log fetch and extraction details to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract readable content from a page"`
	Batch   BatchCmd   `cmd:"" help:"Extract a list of URLs concurrently"`
	List    ListCmd    `cmd:"" help:"List cached articles"`
	Delete  DeleteCmd  `cmd:"" help:"Delete cached articles"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source    string `arg:"" help:"URL, file path, or - for stdin"`
	Format    string `short:"f" default:"markdown" enum:"html,markdown,text,json" help:"Output format (html, markdown, text, json)"`
	FullClean bool   `help:"Apply the aggressive cleanup passes instead of the light default"`
	Footnotes bool   `help:"Append links and embeds as numbered footnotes"`
	Sanitize  bool   `help:"Strip unsafe markup from the extracted content"`
	NoCache   bool   `help:"Skip the article cache"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLFile     string  `arg:"" help:"File with one URL per line"`
	Out         string  `short:"o" help:"Export markdown files to this directory"`
	Concurrency int     `short:"c" help:"Concurrent fetch limit (default 10)"`
	RPS         float64 `help:"Requests per second per domain (default 1)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Full bool `help:"Show full article content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" optional:"" help:"Article ID"`
	All   bool   `help:"Delete every cached article"`
	Force bool   `help:"Confirm deletion"`
}
