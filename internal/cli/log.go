// Package cli implements the bomstock command-line interface.
//
// This package provides commands for enriching a BOM with distributor
// pricing and stock, looking up single parts, and managing the cached
// DigiKey access token. The CLI is built using cobra and logs with the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - enrich: Look up every row of a BOM and write the augmented copy
//   - lookup: Query both distributors for one part number
//   - token: Fetch or forget the DigiKey access token
//   - cache: Manage the token cache directory
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every distributor request.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Enriched 42 rows (12.345s)"
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
