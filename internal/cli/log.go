// Package cli implements the topcoll command-line interface.
//
// The commands compute collapsed-topics layouts for a course file, manage
// per-course settings and per-user toggle states, and serve the same
// operations over HTTP. The CLI is built with cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - layout: Compute the layout plan for a course file
//   - view: Browse a course interactively, opening and closing toggles
//   - settings: Show or change a course's stored layout settings
//   - toggles: Inspect and edit a user's toggle state
//   - truncate: Shorten a section name the way navigation labels are
//   - serve: Run the HTTP API
//   - cache: Manage the local plan cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger on w at level. Timestamps are formatted as
// "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor maps the --verbose flag to a log level.
func levelFor(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// progress measures an operation and logs its completion with the elapsed
// time as an "elapsed" field. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// done logs msg at info level, e.g. "laid out sections sections=12 shown=9
// columns=2 elapsed=3ms".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", p.elapsed())...)
}

// debug is done at debug level, for steps only --verbose shows.
func (p *progress) debug(msg string, keyvals ...any) {
	p.logger.Debug(msg, append(keyvals, "elapsed", p.elapsed())...)
}

type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the serve command.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
