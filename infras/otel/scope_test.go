package otel_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hotel/infras/otel"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) tracetest.SpanStub {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "service.Checkout")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return tracetest.SpanStubFromReadOnlySpan(spans[0])
}

func attributeValue(stub tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, kv := range stub.Attributes {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_TraceError(t *testing.T) {
	t.Run("illegal transition is an event", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) {
			scope.TraceError(fmt.Errorf("booking is not checked in: %w", failure.IllegalTransitionError))
		})

		assert.Equal(t, codes.Unset, stub.Status.Code)
		require.Len(t, stub.Events, 1)
		assert.Equal(t, "request.rejected", stub.Events[0].Name)

		code, ok := attributeValue(stub, "error.code")
		require.True(t, ok)
		assert.Equal(t, int64(409), code.AsInt64())
	})

	t.Run("missing rate fails the span", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) {
			scope.TraceError(failure.RateNotFoundError)
		})

		assert.Equal(t, codes.Error, stub.Status.Code)
	})

	t.Run("driver error fails the span", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("pq: connection reset"))
		})

		assert.Equal(t, codes.Error, stub.Status.Code)
		assert.Equal(t, "pq: connection reset", stub.Status.Description)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Equal(t, codes.Unset, stub.Status.Code)
		assert.Empty(t, stub.Events)
	})
}

func TestScope_SetAttributes(t *testing.T) {
	checkOut := time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC)

	stub := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.id":        "b1",
			"booking.overtime":  90 * time.Minute,
			"booking.check_out": checkOut,
			"room.floor":        3,
			"room.roles":        []string{"admin", "reception"},
		})
	})

	id, _ := attributeValue(stub, "booking.id")
	overtime, _ := attributeValue(stub, "booking.overtime")
	out, _ := attributeValue(stub, "booking.check_out")
	floor, _ := attributeValue(stub, "room.floor")
	roles, _ := attributeValue(stub, "room.roles")

	assert.Equal(t, "b1", id.AsString())
	assert.Equal(t, "1h30m0s", overtime.AsString())
	assert.Equal(t, "2026-03-14T13:30:00Z", out.AsString())
	assert.Equal(t, int64(3), floor.AsInt64())
	assert.Equal(t, []string{"admin", "reception"}, roles.AsStringSlice())
}
