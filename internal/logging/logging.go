// Package logging configures structured logging for the realty backend.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide slog logger. Dev mode prints
// human-readable text at debug level; production emits JSON at info level.
// Logs go to stderr so command output on stdout stays parseable.
func Setup(devMode bool) {
	var handler slog.Handler
	if devMode {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
