package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docnav"
	"golang.org/x/sync/errgroup"
)

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	root, err := deps.Navigator.BuildTopLevel(deps.Ctx, deps.SiteURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docnav.ErrorMessage(err))
		return err
	}

	if c.Depth >= 2 {
		if err := c.prefetch(deps.Ctx, deps.Navigator, root); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docnav.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, root.Title)
	printTree(deps.Stdout, root, 1, c.Depth)
	return nil
}

// prefetch loads every tab of root that has not been loaded yet.
func (c *TreeCmd) prefetch(ctx context.Context, nav docnav.Navigator, root *docnav.List) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Concurrency, 1))

	for _, item := range root.Items {
		item := item
		if item.Kind != docnav.KindExpand || item.Sub.Loaded() {
			continue
		}
		g.Go(func() error {
			_, err := item.Sub.Load(ctx, func(ctx context.Context) (*docnav.List, error) {
				return nav.BuildSubLevel(ctx, item.URL, item.Title, root)
			})
			if err != nil {
				return fmt.Errorf("loading %s: %w", item.Title, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func printTree(w io.Writer, list *docnav.List, level, depth int) {
	indent := strings.Repeat("  ", level-1)
	for _, item := range list.Items {
		switch item.Kind {
		case docnav.KindBack:
			continue
		case docnav.KindExpand:
			fmt.Fprintf(w, "%s+ %s\n", indent, item.Title)
			if level < depth && item.Sub.Loaded() {
				printTree(w, item.Sub.List(), level+1, depth)
			}
		default:
			fmt.Fprintf(w, "%s- %s  %s\n", indent, item.Title, item.URL)
		}
	}
}
