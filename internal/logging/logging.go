// Package logging builds the zerolog loggers used by the command-line tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	EnvLevel = "UART_LOG_LEVEL"
	EnvFile  = "UART_LOG_FILE"

	DefaultLevel = "info"
)

// Options controls where log records go and which are kept.
type Options struct {
	// Level is a zerolog level name; empty means DefaultLevel.
	Level string
	// File, when set, receives JSON records through a rotating writer.
	File string
	// Console receives human-readable records. Nil means os.Stderr.
	Console io.Writer
	// NoColor disables ANSI colour on the console writer. It is forced on
	// when Console is not a terminal.
	NoColor bool
}

// Logger wraps zerolog.Logger with the resources that must be released on exit.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// OptionsFromEnv fills unset fields from UART_LOG_LEVEL and UART_LOG_FILE.
func OptionsFromEnv(opts Options, lookup func(string) (string, bool)) Options {
	if v, ok := lookup(EnvLevel); ok && opts.Level == "" {
		opts.Level = v
	}
	if v, ok := lookup(EnvFile); ok && opts.File == "" {
		opts.File = v
	}
	return opts
}

// New builds a Logger from opts.
func New(opts Options) (*Logger, error) {
	levelName := strings.TrimSpace(opts.Level)
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", opts.Level, err)
	}

	console := consoleWriter(opts)
	writers := []io.Writer{console}

	var closer io.Closer
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, lj)
		closer = lj
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: zl, closer: closer}, nil
}

func consoleWriter(opts Options) zerolog.ConsoleWriter {
	out := opts.Console
	noColor := opts.NoColor
	if out == nil {
		out = os.Stderr
	}
	if f, ok := out.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			noColor = true
		} else {
			out = colorable.NewColorable(f)
		}
	} else {
		noColor = true
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
}
