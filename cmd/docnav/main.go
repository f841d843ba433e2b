package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docnav"
	"github.com/fwojciec/docnav/bubbletea"
	"github.com/fwojciec/docnav/goldmark"
	"github.com/fwojciec/docnav/goquery"
	dochttp "github.com/fwojciec/docnav/http"
	"github.com/fwojciec/docnav/rod"
	docslog "github.com/fwojciec/docnav/slog"
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
	// Services for end-to-end testing. Nil fields are built from the flags.
	Navigator docnav.Navigator
	Searcher  docnav.Searcher
	Host      Host
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docnav"),
		kong.Description("Search and browse a documentation site from the terminal"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.SiteURL = docnav.Slashify(cli.Site)

	deps.Navigator = m.Navigator
	if deps.Navigator == nil {
		var fetcher docnav.Fetcher = dochttp.NewFetcher(dochttp.WithTimeout(cli.Timeout))
		if cli.Render {
			rf, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rf
		}
		fetcher = docslog.NewLoggingFetcher(dochttp.NewRetryingFetcher(fetcher), deps.Logger)
		defer fetcher.Close()

		deps.Navigator = docslog.NewLoggingNavigator(goquery.NewNavigator(fetcher), deps.Logger)
	}

	deps.Searcher = m.Searcher
	if deps.Searcher == nil {
		client := dochttp.NewSearchClient(cli.SearchEndpoint, deps.SiteURL, goldmark.NewNormalizer(),
			dochttp.WithSearchTimeout(cli.Timeout),
			dochttp.WithRateLimit(cli.RPS),
		)
		deps.Searcher = docslog.NewLoggingSearcher(client, deps.Logger)
	}

	deps.Host = m.Host
	if deps.Host == nil {
		deps.Host = bubbletea.NewHost(rod.NewOpener())
	}

	return kongCtx.Run(deps)
}

// newLogger writes text logs to w when verbose is set. The terminal host
// owns the screen otherwise, so logs are discarded.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
