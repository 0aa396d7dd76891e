package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func tracedContext(t *testing.T) context.Context {
	t.Helper()
	otel.SetTextMapPropagator(propagation.TraceContext{})

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		TraceFlags: trace.FlagsSampled,
	})

	return trace.ContextWithSpanContext(context.Background(), sc)
}

const wantTraceparent = "00-0102030405060708090a0b0c0d0e0f10-0102030405060708-01"

func TestAMQPHeaders(t *testing.T) {
	headers := AMQPHeaders(tracedContext(t))
	if headers["traceparent"] != wantTraceparent {
		t.Fatalf("traceparent = %v", headers["traceparent"])
	}
}

func TestKafkaHeaders(t *testing.T) {
	headers := KafkaHeaders(tracedContext(t))
	if len(headers) != 1 || headers[0].Key != "traceparent" || string(headers[0].Value) != wantTraceparent {
		t.Fatalf("unexpected headers: %+v", headers)
	}
}

func TestHeaders_NoSpan(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	if headers := AMQPHeaders(context.Background()); len(headers) != 0 {
		t.Fatalf("unexpected headers: %v", headers)
	}
}
