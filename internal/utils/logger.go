package utils

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger: JSON lines at the given level
// (debug, info, warn, error). Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// LogEvent prints a standardized line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string, attrs ...any) {
	args := append([]any{
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
	}, attrs...)
	slog.Info(message, args...)
}

// LogError is LogEvent at error level with the error attached.
func LogError(requestID, module, action string, err error, attrs ...any) {
	args := append([]any{
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
		"error", err,
	}, attrs...)
	slog.Error(action+" failed", args...)
}
