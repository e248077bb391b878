// Package obslog wraps zerolog for the CLI and the root engine's entry
// points. None of the core engine packages (pixelgrid, cryptoengine, prng,
// pointerset, chain, keycodec) import this package: spec.md §5's
// determinism requirement means the deterministic algorithm itself must
// stay free of side effects that could vary run to run, and a logger call
// is exactly such a side effect.
package obslog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger, mirroring the
// New()+embedded-Logger shape kit-style Go services use.
type Logger struct {
	zerolog.Logger
}

// New builds a console-writer logger at Info level, or Debug level when
// verbose is set (the CLI's -v flag).
func New(verbose bool) *Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit sink, used by tests that want to
// capture log output.
func NewWithWriter(w io.Writer, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return &Logger{Logger: zerolog.New(cw).Level(level).With().Timestamp().Logger()}
}

// Phase logs a progress-sink callback at debug level, keyed by phase name
// and fraction, per spec.md §6's progress sink phases.
func (l *Logger) Phase(phase string, fraction float64) {
	l.Debug().Str("phase", phase).Float64("fraction", fraction).Msg("progress")
}
