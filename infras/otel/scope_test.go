package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpan(t *testing.T, use func(Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "service.Create")
	scope := NewScope(span)
	use(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScope_TraceError(t *testing.T) {
	span := recordSpan(t, func(scope Scope) {
		scope.TraceIfError(nil)
		scope.TraceError(errors.New("quota full"))
	})

	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "quota full", span.Status().Description)
	require.Len(t, span.Events(), 1)
	assert.Contains(t, span.Events()[0].Attributes, attribute.String(attributeErrorType, "*errors.errorString"))
}

func TestScope_NilErrorLeavesStatusUnset(t *testing.T) {
	span := recordSpan(t, func(scope Scope) {
		scope.TraceError(nil)
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Empty(t, span.Events())
}

func TestScope_Attributes(t *testing.T) {
	departure := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)

	span := recordSpan(t, func(scope Scope) {
		scope.SetAttribute("booking.code", "BK-2030-12345")
		scope.SetAttributes(map[string]any{
			"participants": 3,
			"price":        int64(15_000_000),
			"paid":         false,
			"departure":    departure,
			"roles":        []string{"admin"},
			"ratio":        0.5,
			"other":        struct{ N int }{N: 1},
		})
	})

	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("booking.code", "BK-2030-12345"),
		attribute.Int("participants", 3),
		attribute.Int64("price", 15_000_000),
		attribute.Bool("paid", false),
		attribute.String("departure", "2030-01-10T00:00:00Z"),
		attribute.StringSlice("roles", []string{"admin"}),
		attribute.Float64("ratio", 0.5),
		attribute.String("other", "{1}"),
	}, span.Attributes())
}
