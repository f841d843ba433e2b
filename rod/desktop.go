package rod

import (
	"github.com/fwojciec/docnav"
	"github.com/go-rod/rod/lib/launcher"
)

// Opener hands URLs to the operating system's default browser. rod's launcher
// already knows the per-platform command for that.
type Opener struct {
	// Open is called with the URL. Defaults to launcher.Open.
	Open func(url string)
}

// NewOpener returns an Opener backed by the system browser.
func NewOpener() *Opener {
	return &Opener{Open: launcher.Open}
}

// OpenExternal validates the URL and opens it.
func (o *Opener) OpenExternal(url string) error {
	if url == "" {
		return docnav.Errorf(docnav.EINVALID, "empty url")
	}
	u, err := docnav.Resolve(url, url)
	if err != nil {
		return err
	}
	open := o.Open
	if open == nil {
		open = launcher.Open
	}
	open(u)
	return nil
}
