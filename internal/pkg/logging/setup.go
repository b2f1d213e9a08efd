package logging

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Setup configures the global logger. Every run gets a fresh run_id so
// interleaved cron runs stay distinguishable in shared log files.
func Setup(serviceName string) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_DEBUG") == "1" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		"service", serviceName,
		"run_id", uuid.NewString(),
	)
	slog.SetDefault(logger)
	return logger
}
