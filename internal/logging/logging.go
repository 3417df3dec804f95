// Package logging builds the slog loggers used across bounce. Records are
// rendered by charmbracelet/log so daemon output stays readable on a terminal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// TimeFormat renders timestamps as "HH:MM:SS.ms" (e.g. "14:32:01.45").
const TimeFormat = "15:04:05.00"

// New returns a slog logger writing to w at the given level.
func New(w io.Writer, level log.Level) *slog.Logger {
	return slog.New(NewHandler(w, level))
}

// NewHandler returns the charm logger backing New, for callers that want the
// handler itself.
func NewHandler(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           level,
	})
}

// ParseLevel maps a config log_level to a charm level. "warn" is accepted as
// an alias of "warning".
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
