package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Config holds logging configuration
type Config struct {
	Level      string // trace, debug, info, warn, error
	Format     string // "auto", "json" or "console"
	File       string // empty means the default sink
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "auto",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a logger writing to sink. The returned closer releases a log
// file when cfg.File is set.
func New(cfg Config, sink *os.File) (zerolog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		sink = f
		closer = f
	}

	if sink == nil {
		return zerolog.Nop(), closer, nil
	}

	var output io.Writer = sink
	if useConsole(cfg.Format, sink) {
		output = zerolog.ConsoleWriter{
			Out:        sink,
			TimeFormat: cfg.TimeFormat,
			NoColor:    !term.IsTerminal(int(sink.Fd())),
		}
	}

	logger := zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

func useConsole(format string, sink *os.File) bool {
	switch format {
	case "console":
		return true
	case "json":
		return false
	default:
		return term.IsTerminal(int(sink.Fd()))
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
