// Package cli implements the directivemd command-line interface.
//
// Commands:
//   - compile: article JSON (content tree, chapters, cue timeline, stats)
//   - render: article HTML
//   - check: print diagnostics, --strict fails when any exist
//   - serve: HTTP backend with optional live recompile
//   - sync-log: validate and copy agent-log.json into the public dir
//
// All commands accept --verbose (-v) for debug logging and --config for a
// TOML render configuration.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with a short timestamp.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() when none is set.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
