package slog

import (
	"log/slog"

	"github.com/fwojciec/docnav"
)

// Ensure LoggingDesktop implements docnav.Desktop.
var _ docnav.Desktop = (*LoggingDesktop)(nil)

// LoggingDesktop wraps a Desktop and logs what the plugin asks of the host.
type LoggingDesktop struct {
	next   docnav.Desktop
	logger *slog.Logger
}

// NewLoggingDesktop creates a new LoggingDesktop.
func NewLoggingDesktop(next docnav.Desktop, logger *slog.Logger) *LoggingDesktop {
	return &LoggingDesktop{next: next, logger: logger}
}

// HideMainWindow delegates to the wrapped desktop.
func (d *LoggingDesktop) HideMainWindow() {
	d.logger.Debug("hide main window")
	d.next.HideMainWindow()
}

// OpenExternal delegates to the wrapped desktop and logs the URL.
func (d *LoggingDesktop) OpenExternal(url string) error {
	err := d.next.OpenExternal(url)
	d.logger.Info("open external", "url", url, "err", err)
	return err
}

// ExitPlugin delegates to the wrapped desktop.
func (d *LoggingDesktop) ExitPlugin() {
	d.logger.Debug("exit plugin")
	d.next.ExitPlugin()
}

// Notify logs the message and delegates to the wrapped desktop.
func (d *LoggingDesktop) Notify(message string) {
	d.logger.Warn("notify", "message", message)
	d.next.Notify(message)
}
