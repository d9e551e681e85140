// Package logger configures the process-wide zerolog logger.
//
// Call Init once during startup and pass the returned logger down; Get exists
// for the rare place that cannot take it as a dependency.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn, error.
	// Unrecognised or empty values mean info.
	Level string
	// Pretty switches from JSON to colourised console output. Leave off in
	// production so log shippers get machine-readable lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	once        sync.Once
	instance    zerolog.Logger
	initialized bool
)

// Init builds the shared logger. Subsequent calls return the logger from the
// first call unchanged.
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

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		instance = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Caller().
			Logger()
		initialized = true
	})
	return instance
}

// Get returns the shared logger and panics when Init has not run yet, which
// always indicates a wiring bug in main.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() before Init()")
	}
	return instance
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
