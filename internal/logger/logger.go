package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// FromEnv creates a stderr logger whose level is parsed from name
// ("debug", "info", "warn", "error"). Unknown names fall back to info.
func FromEnv(name string) *Logger {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		level = log.InfoLevel
	}
	return NewWithLevel(os.Stderr, level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// NoFrontMatter logs content that carried no recognizable metadata block
func (l *Logger) NoFrontMatter(size int) {
	l.Debug("no front matter found",
		"bytes", size)
}

// ListDecodeFailed logs a list literal that could not be decoded
func (l *Logger) ListDecodeFailed(key, value string, err error) {
	l.Warn("invalid list value",
		"key", key,
		"value", value,
		"error", err)
}

// DateUnparsable logs a date field that could not be interpreted
func (l *Logger) DateUnparsable(collection, id, value string) {
	l.Warn("unparsable date",
		"collection", collection,
		"id", id,
		"value", value)
}

// FetchFailed logs a single content read that failed inside a batch
func (l *Logger) FetchFailed(collection, id string, err error) {
	l.Warn("content fetch failed",
		"collection", collection,
		"id", id,
		"error", err)
}

// TierAdvanced logs the fallback chain moving on to the next source
func (l *Logger) TierAdvanced(collection, from, to string, reason error) {
	l.Warn("falling back",
		"collection", collection,
		"from", from,
		"to", to,
		"reason", reason)
}

// ListingServed logs which tier produced a collection
func (l *Logger) ListingServed(collection, tier string, items int, duration time.Duration) {
	l.Debug("listing served",
		"collection", collection,
		"tier", tier,
		"items", items,
		"duration", duration.Round(time.Millisecond))
}

// Request logs a completed HTTP request
func (l *Logger) Request(id, method, path string, status int, duration time.Duration) {
	l.Info("request",
		"id", id,
		"method", method,
		"path", path,
		"status", status,
		"duration", duration.Round(time.Microsecond))
}

// StoreError logs a failed visitor/view store operation
func (l *Logger) StoreError(operation string, err error) {
	l.Error("store error",
		"operation", operation,
		"error", err)
}
