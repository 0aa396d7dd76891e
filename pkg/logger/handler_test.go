package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestHandler_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&Options{Output: &buf}))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	log.With("component", "test").InfoContext(ctx, "hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record["trace_id"] != traceID.String() || record["span_id"] != spanID.String() {
		t.Fatalf("trace attributes missing: %v", record)
	}
	if record["component"] != "test" {
		t.Fatalf("derived attributes missing: %v", record)
	}
}

func TestHandler_NoSpanNoTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&Options{Output: &buf})).Info("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := record["trace_id"]; ok {
		t.Fatalf("unexpected trace_id: %v", record)
	}
}
