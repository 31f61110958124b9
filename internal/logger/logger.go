package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var globalLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Options controls how Init builds the global logger.
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // text or json
	Verbose bool   // forces debug level
	Quiet   bool   // only errors are written
	Output  io.Writer
}

// Init initializes the global logger and installs it as the slog default
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	switch {
	case opts.Quiet && !opts.Verbose:
		handler = newHandler(opts.Format, out, slog.LevelError)
	default:
		handler = newHandler(opts.Format, out, level)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func newHandler(format string, out io.Writer, level slog.Level) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.NewTextHandler(out, handlerOpts)
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs debug messages
func Debug(msg string, args ...any) {
	globalLogger.Debug(msg, args...)
}

// Info logs info messages
func Info(msg string, args ...any) {
	globalLogger.Info(msg, args...)
}

// Warn logs warning messages
func Warn(msg string, args ...any) {
	globalLogger.Warn(msg, args...)
}

// Error always logs error messages
func Error(msg string, args ...any) {
	globalLogger.Error(msg, args...)
}

// Log logs at the given level
func Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	globalLogger.Log(ctx, level, msg, args...)
}

// Enabled reports whether the global logger emits records at level
func Enabled(level slog.Level) bool {
	return globalLogger.Enabled(context.Background(), level)
}
