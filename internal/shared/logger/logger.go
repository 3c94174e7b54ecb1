package logger

import (
	"log/slog"
	"os"
)

// Setup configures the global slog logger based on environment
func Setup(env string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	switch env {
	case "production", "prod":
		// Production: JSON for log shipping
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "local", "dev", "development":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))

	slog.Info("logger initialized", "env", env, "level", opts.Level.Level().String())
}
