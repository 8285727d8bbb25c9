package otel_test

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

	"rentwheels/infras/otel"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "unit")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScopeAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"car.seats":   5,
			"car.name":    "Tesla Model S",
			"sweep.took":  1500 * time.Millisecond,
			"sweep.ok":    true,
			"booking.ids": []string{"r-1", "r-2"},
		})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(5), attrs["car.seats"].AsInt64())
	assert.Equal(t, "Tesla Model S", attrs["car.name"].AsString())
	assert.Equal(t, int64(1500), attrs["sweep.took"].AsInt64())
	assert.True(t, attrs["sweep.ok"].AsBool())
	assert.Equal(t, []string{"r-1", "r-2"}, attrs["booking.ids"].AsStringSlice())
}

func TestScopeTraceIfError(t *testing.T) {
	t.Run("nil error leaves status unset", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Empty(t, span.Events())
	})

	t.Run("error marks the span", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("car is not available"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "car is not available", span.Status().Description)
	})
}
