package main

import (
	"fmt"

	"github.com/fwojciec/docnav"
	"github.com/fwojciec/docnav/session"
	docslog "github.com/fwojciec/docnav/slog"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	logger := deps.logger()
	ctrl := &session.Controller{
		Navigator: deps.Navigator,
		Searcher:  deps.Searcher,
		Desktop:   docslog.NewLoggingDesktop(deps.Host, logger),
		Logger:    logger,
		SiteURL:   deps.SiteURL,
		Prompt:    c.Placeholder,
	}
	defer ctrl.Close()

	action := docnav.Action{Code: "docnav", Type: "text"}
	if err := deps.Host.Run(deps.Ctx, ctrl, action); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docnav.ErrorMessage(err))
		return err
	}
	return nil
}
