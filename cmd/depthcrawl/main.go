package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/depthcrawl"
	"github.com/fwojciec/depthcrawl/goquery"
	"github.com/fwojciec/depthcrawl/html"
	crawlhttp "github.com/fwojciec/depthcrawl/http"
	"github.com/fwojciec/depthcrawl/rod"
	crawlslog "github.com/fwojciec/depthcrawl/slog"
	"github.com/fwojciec/depthcrawl/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService  depthcrawl.RunService
	LinkService depthcrawl.LinkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	stdout = &lockedWriter{w: stdout}
	stderr = &lockedWriter{w: stderr}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("depthcrawl"),
		kong.Description("Depth-bounded concurrent web crawler"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'depthcrawl --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cmd == "crawl" && cli.Crawl.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Reject a bad seed before touching the database or launching a browser.
	if cmd == "crawl" {
		if err := cli.Crawl.validate(); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", depthcrawl.ErrorMessage(err))
			return err
		}
	}

	if cmd != "crawl" || cli.Crawl.Save {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DEPTHCRAWL_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		m.LinkService = sqlite.NewLinkService(m.DB)
		deps.Runs = m.RunService
		deps.Links = m.LinkService
	}

	if cmd == "crawl" {
		fetcher, err := newFetcher(&cli.Crawl)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		var extractor depthcrawl.LinkExtractor = html.NewExtractor()
		if cli.Crawl.Parser == "goquery" {
			extractor = goquery.NewExtractor()
		}

		if cli.Crawl.Verbose {
			fetcher = crawlslog.NewLoggingFetcher(fetcher, deps.Logger)
			extractor = crawlslog.NewLoggingExtractor(extractor, deps.Logger)
		}
		deps.Fetcher = fetcher
		deps.Extractor = extractor
	}

	return kongCtx.Run(deps)
}

func newFetcher(c *CrawlCmd) (depthcrawl.Fetcher, error) {
	if c.Browser {
		return rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
	}
	return crawlhttp.NewFetcher(crawlhttp.WithTimeout(c.Timeout)), nil
}

func defaultDBPath() string {
	if path := os.Getenv("DEPTHCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "depthcrawl.db"
	}
	dir := filepath.Join(home, ".depthcrawl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "depthcrawl.db")
}
