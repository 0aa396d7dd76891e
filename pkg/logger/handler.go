// Package logger provides the slog handler and HTTP request logging used by the service.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Options configures the handler returned by NewHandler.
type Options struct {
	Level  slog.Leveler
	Output io.Writer
}

// Handler is a JSON slog handler that adds trace_id and span_id from the context.
type Handler struct {
	slog.Handler
}

// NewHandler creates a new Handler. A nil opts logs at Info level to stdout.
func NewHandler(opts *Options) *Handler {
	level := slog.Leveler(slog.LevelInfo)
	var out io.Writer = os.Stdout
	if opts != nil {
		if opts.Level != nil {
			level = opts.Level
		}
		if opts.Output != nil {
			out = opts.Output
		}
	}

	return &Handler{
		Handler: slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}),
	}
}

// Handle adds tracing context attributes before calling the underlying handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanContext.TraceID().String()))
	}
	if spanContext.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanContext.SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the trace decoration on derived handlers.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the trace decoration on derived handlers.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}
