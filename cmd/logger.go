package cmd

import (
	"log/slog"
	"os"
)

// buildLogger builds the slog logger. Diagnostics go to stderr: stdout
// belongs to the monitoring supervisor and must carry exactly one summary
// line.
func buildLogger(level string, format string) *slog.Logger {
	var programLevel = new(slog.LevelVar)
	switch level {
	case "debug":
		programLevel.Set(slog.LevelDebug)
	case "info":
		programLevel.Set(slog.LevelInfo)
	case "warn":
		programLevel.Set(slog.LevelWarn)
	case "error":
		programLevel.Set(slog.LevelError)
	default:
		programLevel.Set(slog.LevelInfo)
	}

	options := &slog.HandlerOptions{Level: programLevel}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, options))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
}
