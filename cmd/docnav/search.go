package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docnav"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	keyword := strings.TrimSpace(strings.Join(c.Keyword, " "))
	if keyword == "" {
		return fmt.Errorf("keyword is required")
	}

	list, err := deps.Searcher.Search(deps.Ctx, keyword, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docnav.ErrorMessage(err))
		return err
	}

	if list.Len() == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q.\n", keyword)
		return nil
	}

	for _, item := range list.Items {
		fmt.Fprintln(deps.Stdout, item.Title)
		fmt.Fprintf(deps.Stdout, "  %s\n", item.Description)
		if item.URL != "" {
			fmt.Fprintf(deps.Stdout, "  %s\n", item.URL)
		}
	}
	return nil
}
