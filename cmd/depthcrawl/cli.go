package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/depthcrawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   depthcrawl.Fetcher
	Extractor depthcrawl.LinkExtractor
	Runs      depthcrawl.RunService
	Links     depthcrawl.LinkService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl from a seed URL and print every discovered link"`
	Runs  RunsCmd  `cmd:"" help:"List recorded crawl runs"`
	Links LinksCmd `cmd:"" help:"Print the links recorded for a run"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Seed URL, e.g. https://github.com/about"`
	Depth       int           `short:"d" default:"1" help:"Maximum depth; the seed is depth 1"`
	Capacity    int           `default:"1" help:"Result channel capacity"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Browser     bool          `short:"b" help:"Render pages in headless Chrome"`
	Parser      string        `enum:"tokenizer,goquery" default:"tokenizer" help:"Link extractor (tokenizer, goquery)"`
	Dedup       bool          `help:"Fetch each URL at most once"`
	Strict      bool          `help:"Fail on malformed links instead of skipping them"`
	HTTPOnly    bool          `name:"http-only" default:"true" negatable:"" help:"Only fetch http and https links"`
	Concurrency int           `short:"c" default:"0" help:"Concurrent fetch limit (0 = unbounded)"`
	Save        bool          `short:"s" help:"Record the run and its links in the database"`
	Output      string        `short:"o" type:"path" help:"Write discovered links to this file, replaced only when the crawl succeeds"`
	Verbose     bool          `short:"v" help:"Log every fetch and extraction"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to show"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	RunID  string `arg:"" name:"run-id" help:"Run ID"`
	Limit  int    `short:"n" help:"Maximum number of links to show"`
	Offset int    `help:"Number of links to skip"`
}
