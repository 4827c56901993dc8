package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNew_TagsService(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("order-service", "info", &buf).Info("started")

	out := decodeLine(t, &buf)
	assert.Equal(t, "order-service", out["service"])
	assert.Equal(t, "started", out["msg"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("svc", "warn", &buf)
	l.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestWithContext_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("svc", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-9")
	WithContext(ctx, l).Info("hello")

	out := decodeLine(t, &buf)
	assert.Equal(t, "req-1", out["correlation_id"])
	assert.Equal(t, "user-9", out["user_id"])
	assert.NotContains(t, out, "trace_id")
}

func TestWithContext_AddsSpan(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("svc", "info", &buf)

	traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	WithContext(ctx, l).Info("traced")

	out := decodeLine(t, &buf)
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", out["trace_id"])
	assert.Equal(t, "b7ad6b7169203331", out["span_id"])
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := NewWithWriter("svc", "info", &bytes.Buffer{})
	assert.Same(t, l, FromContext(NewContext(context.Background(), l)))
}

func TestContextAccessors_Empty(t *testing.T) {
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.Empty(t, UserIDFromContext(context.Background()))
}
