// Package logger owns the process-wide structured logger.
//
// Call Init exactly once during startup, then Get (or With for a
// component-scoped child) anywhere else. Output is JSON by default;
// enable Pretty for local development.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger at startup.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn, error.
	// Unknown or empty values fall back to info.
	Level string
	// Service is stamped on every line as the "service" field.
	Service string
	// Pretty switches to the coloured console writer for local runs.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	root  zerolog.Logger
	once  sync.Once
	ready bool
)

// Init builds the root logger. Subsequent calls are no-ops and return the
// logger from the first call.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		ctx := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
		if opts.Service != "" {
			ctx = ctx.Str("service", opts.Service)
		}
		root = ctx.Logger()
		ready = true
	})
	return root
}

// Get returns the root logger. Panics if Init has not run.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get called before Init")
	}
	return root
}

// With returns a child of the root logger tagged with a component name.
func With(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

// Reset discards the singleton so the next Init rebuilds it. Test use only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
