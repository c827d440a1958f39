// Package logging builds the zerolog logger of the CLI and bridges it to
// logr for packages that take a logr.Logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Formats accepted by New.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configure New.
type Options struct {
	Level  string
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger. FormatAuto writes human-readable lines when Output
// is a terminal and JSON otherwise.
func New(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch opts.Format {
	case "", FormatAuto:
		if isTerminal(out) {
			out = consoleWriter(out)
		}
	case FormatConsole:
		out = consoleWriter(out)
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", opts.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Logr adapts logger to logr. V(1) and above are only emitted when logger is
// at debug level or lower.
func Logr(logger zerolog.Logger) logr.Logger {
	verbosity := 0
	if logger.GetLevel() <= zerolog.DebugLevel {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		e := logger.Info()
		if prefix != "" {
			e = e.Str("logger", prefix)
		}
		e.Msg(args)
	}, funcr.Options{Verbosity: verbosity})
}
