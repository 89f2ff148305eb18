// v0
// internal/logging/logger.go
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Init configures slog to log to both stdout and the given log file. It
// returns the logger and the opened *os.File so callers can Close() on
// shutdown. If the file cannot be opened the logger degrades to stdout only.
func Init(logPath string) (*slog.Logger, *os.File) {
	if logPath == "" {
		logPath = "logs/ferienplanung.log"
	}
	_ = os.MkdirAll(filepath.Dir(logPath), 0o755)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
		logger.Error("failed to open log file; falling back to stdout only", "path", logPath, "error", err)
		return logger, nil
	}

	mw := io.MultiWriter(f, os.Stdout)
	logger := slog.New(slog.NewTextHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Align the legacy stdlib log output with the multi-writer too.
	log.SetOutput(mw)
	return logger, f
}
