package errors

import (
	"context"
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that writes structured records to a slog.Logger.
type LogHandler struct {
	// Logger receives the records. Nil logs as text to stderr.
	Logger *slog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// HandleError logs a DriftError.
func (h *LogHandler) HandleError(err *DriftError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.Any("error", err.Err),
	}
	if err.Channel != "" {
		attrs = append(attrs, slog.String("channel", err.Channel))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "drift error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "drift panic", attrs...)
}

// HandlePropertyError logs a PropertyError at warning level.
func (h *LogHandler) HandlePropertyError(err *PropertyError) {
	if err == nil {
		return
	}
	h.logger().Warn("drift property rejected",
		slog.String("control", err.Control),
		slog.String("property", err.Property),
		slog.Any("value", err.Value),
		slog.String("reason", err.Reason),
	)
}
