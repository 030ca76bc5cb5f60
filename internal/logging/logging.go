package logging

import (
	"io"
	"log/slog"
)

// SetDefault installs a JSON slog logger tagged with the binary name.
func SetDefault(w io.Writer, name string, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})).With("service", name)
	slog.SetDefault(logger)
	return logger
}
