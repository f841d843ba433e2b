package mock

import "github.com/fwojciec/docnav"

var _ docnav.Desktop = (*Desktop)(nil)

// Desktop is a mock implementation of docnav.Desktop.
type Desktop struct {
	HideMainWindowFn func()
	OpenExternalFn   func(url string) error
	ExitPluginFn     func()
	NotifyFn         func(message string)
}

func (d *Desktop) HideMainWindow() {
	d.HideMainWindowFn()
}

func (d *Desktop) OpenExternal(url string) error {
	return d.OpenExternalFn(url)
}

func (d *Desktop) ExitPlugin() {
	d.ExitPluginFn()
}

func (d *Desktop) Notify(message string) {
	d.NotifyFn(message)
}
