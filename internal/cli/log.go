// Package cli implements the snakecodec command-line interface.
//
// This package provides commands for encoding and decoding text, chaining
// and detecting transforms, signing, and managing the history store and the
// action journal. The CLI is built using cobra, configured with koanf, and
// logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - encode, decode: Apply one transform (caesar, rot, morse, binary, ascii, a1z26, base32, base64)
//   - chain: Run a pipeline of transforms, or undo one with --reverse
//   - detect: Guess the transform behind a text
//   - history, log: Browse and export what was recorded
//   - serve: Expose the transforms over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// shows every transform and history store call. Loggers are passed through
// context.Context.
//
// # Example
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the application logger. Records carry a wall clock
// timestamp with centiseconds, such as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a batch operation took, such as an import.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the formatted message followed by the elapsed time rounded to
// milliseconds: "Imported 42 entries (12ms)".
func (p *progress) done(format string, args ...any) {
	p.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() for commands run without it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
