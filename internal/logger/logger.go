// Package logger builds the zerolog loggers handed to the engine components.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Config controls level, output format and timestamps.
type Config struct {
	Level        string `json:"level" yaml:"level"`
	Format       string `json:"format" yaml:"format" validate:"omitempty,oneof=json pretty"`
	TimeFormat   string `json:"time_format" yaml:"time_format"`
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"`
}

// DefaultConfig logs json at info level.
func DefaultConfig() Config {
	return Config{Level: "info", Format: FormatJSON}
}

// ParseLevel is zerolog.ParseLevel with an empty string meaning info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New builds a logger writing to w, or to stderr when w is nil. An unparseable level falls back to info.
// Package-level zerolog settings are left untouched.
func New(cfg Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	if cfg.Format == FormatPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat}
	}

	logger := zerolog.New(w).Level(level).Hook(timestampHook(timeFormat))
	if cfg.ReportCaller {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// timestampHook stamps events with the configured layout instead of zerolog.TimeFieldFormat.
func timestampHook(layout string) zerolog.HookFunc {
	return func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Str(zerolog.TimestampFieldName, time.Now().Format(layout))
	}
}
