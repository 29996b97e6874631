package selector

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphmesh/gqltel/internal/pipeline"
	"github.com/graphmesh/gqltel/internal/telemetry"
)

func valuePtr(v telemetry.Value) *telemetry.Value { return &v }

func strPtr(s string) *string { return &s }

// ambientTrace returns a context carrying a valid span context whose trace
// id is the given low 64 bits.
func ambientTrace(t *testing.T, low byte) context.Context {
	t.Helper()
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{15: low},
		SpanID:     trace.SpanID{7: 1},
		TraceFlags: trace.FlagsSampled,
	})
	require.True(t, sc.IsValid())
	return trace.ContextWithSpanContext(context.Background(), sc)
}

// ambientBaggage returns a context carrying a single baggage member.
func ambientBaggage(t *testing.T, key, value string) context.Context {
	t.Helper()
	m, err := baggage.NewMember(key, value)
	require.NoError(t, err)
	bag, err := baggage.New(m)
	require.NoError(t, err)
	return baggage.ContextWithBaggage(context.Background(), bag)
}

func TestRouterRequestHeader(t *testing.T) {
	sel := RouterRequestHeader{Name: "X-Header-Key", Default: valuePtr(telemetry.StringValue("defaulted"))}
	ctx := context.Background()

	req := &pipeline.RouterRequest{Header: http.Header{}}
	req.Header.Set("x-header-key", "header_value")

	v, ok := sel.OnRequest(ctx, req)
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("header_value"), v)

	v, ok = sel.OnRequest(ctx, &pipeline.RouterRequest{Header: http.Header{}})
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("defaulted"), v)

	_, ok = sel.OnResponse(ctx, &pipeline.RouterResponse{Header: http.Header{"X-Header-Key": {"header_value"}}})
	assert.False(t, ok, "request-header selector must be absent at response time")
}

func TestRouterRequestHeaderNoDefault(t *testing.T) {
	sel := RouterRequestHeader{Name: "X-Missing"}
	_, ok := sel.OnRequest(context.Background(), &pipeline.RouterRequest{Header: http.Header{}})
	assert.False(t, ok)
}

func TestRouterResponseHeader(t *testing.T) {
	sel := RouterResponseHeader{Name: "X-Header-Key", Default: valuePtr(telemetry.StringValue("defaulted"))}
	ctx := context.Background()

	resp := &pipeline.RouterResponse{Header: http.Header{}}
	resp.Header.Set("X-Header-Key", "header_value")

	v, ok := sel.OnResponse(ctx, resp)
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("header_value"), v)

	v, ok = sel.OnResponse(ctx, &pipeline.RouterResponse{Header: http.Header{}})
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("defaulted"), v)

	_, ok = sel.OnRequest(ctx, &pipeline.RouterRequest{Header: http.Header{"X-Header-Key": {"header_value"}}})
	assert.False(t, ok, "response-header selector must be absent at request time")
}

func TestRouterResponseStatus(t *testing.T) {
	ctx := context.Background()
	resp := &pipeline.RouterResponse{StatusCode: http.StatusNoContent}

	v, ok := RouterResponseStatus{Mode: ResponseStatusCode}.OnResponse(ctx, resp)
	require.True(t, ok)
	assert.Equal(t, telemetry.Int64Value(204), v)

	v, ok = RouterResponseStatus{Mode: ResponseStatusReason}.OnResponse(ctx, resp)
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("No Content"), v)

	_, ok = RouterResponseStatus{Mode: ResponseStatusReason}.OnResponse(ctx, &pipeline.RouterResponse{StatusCode: 599})
	assert.False(t, ok, "unknown status code has no reason phrase")

	_, ok = RouterResponseStatus{Mode: ResponseStatusCode}.OnRequest(ctx, &pipeline.RouterRequest{})
	assert.False(t, ok)
}

func TestRouterTraceID(t *testing.T) {
	ctx := ambientTrace(t, 42)
	req := &pipeline.RouterRequest{}

	v, ok := RouterTraceID{Format: TraceIDOpenTelemetry}.OnRequest(ctx, req)
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("0000000000000000000000000000002a"), v)

	v, ok = RouterTraceID{Format: TraceIDDatadog}.OnRequest(ctx, req)
	require.True(t, ok)
	assert.Equal(t, telemetry.Uint128Value(telemetry.Uint128{Lo: 42}), v)

	// No valid span context on a bare background context.
	_, ok = RouterTraceID{Format: TraceIDOpenTelemetry}.OnRequest(context.Background(), req)
	assert.False(t, ok)
	_, ok = RouterTraceID{Format: TraceIDDatadog}.OnRequest(context.Background(), req)
	assert.False(t, ok)
}

func TestRouterBaggage(t *testing.T) {
	sel := RouterBaggage{Name: "cluster", Default: valuePtr(telemetry.StringValue("unknown"))}

	ctx := ambientBaggage(t, "cluster", "east-1")
	v, ok := sel.OnRequest(ctx, &pipeline.RouterRequest{})
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("east-1"), v)

	v, ok = sel.OnResponse(ctx, &pipeline.RouterResponse{})
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("east-1"), v)

	v, ok = sel.OnRequest(context.Background(), &pipeline.RouterRequest{})
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("unknown"), v)
}

func TestRouterEnv(t *testing.T) {
	t.Setenv("GQLTEL_TEST_ROUTER_ENV", "from-env")

	v, ok := RouterEnv{Name: "GQLTEL_TEST_ROUTER_ENV"}.OnRequest(context.Background(), &pipeline.RouterRequest{})
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("from-env"), v)

	v, ok = RouterEnv{Name: "GQLTEL_TEST_ROUTER_ENV_UNSET", Default: strPtr("fallback")}.OnRequest(context.Background(), &pipeline.RouterRequest{})
	require.True(t, ok)
	assert.Equal(t, telemetry.StringValue("fallback"), v)

	_, ok = RouterEnv{Name: "GQLTEL_TEST_ROUTER_ENV_UNSET"}.OnRequest(context.Background(), &pipeline.RouterRequest{})
	assert.False(t, ok)

	_, ok = RouterEnv{Name: "GQLTEL_TEST_ROUTER_ENV"}.OnResponse(context.Background(), &pipeline.RouterResponse{})
	assert.False(t, ok)
}

func TestRouterResponseContext(t *testing.T) {
	pc := pipeline.NewContext()
	pc.Set("cost", 12)

	sel := RouterResponseContext{Key: "cost", Default: valuePtr(telemetry.Int64Value(-1))}

	v, ok := sel.OnResponse(context.Background(), &pipeline.RouterResponse{Context: pc})
	require.True(t, ok)
	assert.Equal(t, telemetry.Int64Value(12), v)

	v, ok = sel.OnResponse(context.Background(), &pipeline.RouterResponse{Context: pipeline.NewContext()})
	require.True(t, ok)
	assert.Equal(t, telemetry.Int64Value(-1), v)

	_, ok = sel.OnRequest(context.Background(), &pipeline.RouterRequest{Context: pc})
	assert.False(t, ok)
}
