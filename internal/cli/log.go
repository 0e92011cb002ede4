// Package cli implements the xformgraph command-line interface.
//
// Every command works on one graph document (JSON or YAML) chosen with
// --graph, the settings file or graph.json in the working directory. Edits
// load the document, apply one change through the graph API and write it
// back, so each invocation sees the same rules as the HTTP API.
//
// # Commands
//
// The main commands are:
//   - new, add, delete, connect, disconnect, configure: edit the graph
//   - list, show, types, validate, dot: inspect it
//   - run: evaluate it and optionally save every output texture
//   - tui: browse states and evaluate interactively
//   - library: keep named graphs in the file or Redis store
//   - serve: expose the graph over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// settings file's log_level can lower the threshold further but never
// silences --verbose.
//
// # Example
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string) {
	p.logger.Debug(msg, "elapsed", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
