package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docnav"
)

// Host runs a list plugin in the foreground and serves as its desktop.
type Host interface {
	docnav.Desktop
	Run(ctx context.Context, plugin docnav.ListPlugin, action docnav.Action) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	SiteURL   string
	Navigator docnav.Navigator
	Searcher  docnav.Searcher
	Host      Host
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Site           string        `default:"https://oi-wiki.org/" env:"DOCNAV_SITE" help:"Documentation site root"`
	SearchEndpoint string        `name:"search-endpoint" default:"https://search.oi-wiki.org:8443/" env:"DOCNAV_SEARCH" help:"Search service endpoint"`
	Timeout        time.Duration `short:"t" default:"10s" env:"DOCNAV_TIMEOUT" help:"Timeout per request"`
	Render         bool          `env:"DOCNAV_RENDER" help:"Render pages with headless Chrome"`
	RPS            float64       `name:"rps" default:"5" help:"Search requests per second (0 disables the limit)"`
	Verbose        bool          `short:"v" help:"Log requests to stderr"`

	Browse BrowseCmd `cmd:"" default:"withargs" help:"Browse and search the site interactively"`
	Search SearchCmd `cmd:"" help:"Print search results for a keyword"`
	Tree   TreeCmd   `cmd:"" help:"Print the site's navigation tree"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Placeholder string `help:"Prompt shown while the input is empty"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Keyword []string `arg:"" help:"Keyword to search for"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct {
	Depth       int `short:"d" default:"1" help:"Levels to print; tabs are fetched from level 2"`
	Concurrency int `short:"c" default:"4" help:"Concurrent tab fetches"`
}

// logger returns the configured logger, discarding output when unset.
func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}
