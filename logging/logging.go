package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text logger on stdout as the slog default. The level comes
// from LOG_LEVEL (debug|info|warn|error).
func Setup() *slog.Logger {
	return SetupWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

func SetupWriter(w io.Writer, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true,
	}
	logger := slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(logger)
	return logger
}

var exit = os.Exit

// Fatal logs msg at error level on the default logger and exits with status 1.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	exit(1)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
