package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestWithContext_TraceAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "debug")
	t.Cleanup(func() { Setup(&bytes.Buffer{}, "info") })

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = ContextWithRequestID(ctx, "req-1")

	WithContext(ctx).Error("boom")

	out := buf.String()
	assert.Contains(t, out, "trace_id=4bf92f3577b34da6a3ce929d0e0e4736")
	assert.Contains(t, out, "span_id=00f067aa0ba902b7")
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "boom")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := New(&bytes.Buffer{}, "chatty")
	assert.Equal(t, "info", l.GetLevel().String())
}
