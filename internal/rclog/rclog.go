// Package rclog wires the forest facade's diagnostic output into
// log/slog with a JSON handler, the same shape this codebase's other
// services build their loggers with.
package rclog

import (
	"io"
	"log/slog"
)

// New builds a JSON slog.Logger at the given level, writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Default returns slog.Default(), used when a caller does not supply a
// logger via WithLogger.
func Default() *slog.Logger {
	return slog.Default()
}
