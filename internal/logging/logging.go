package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New initializes a new slog logger and sets it as the default.
// The format is "text" for development or "json" for production; an empty
// format falls back to text.
func New(format, level string) *slog.Logger {
	logger := slog.New(NewHandler(os.Stdout, format, level))
	slog.SetDefault(logger)
	return logger
}

// NewHandler builds the handler used by New, writing to w.
func NewHandler(w io.Writer, format, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	switch format {
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		opts.AddSource = true // Adds source file and line number
		return slog.NewTextHandler(w, opts)
	}
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to debug.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
