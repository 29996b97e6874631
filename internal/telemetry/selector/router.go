package selector

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/graphmesh/gqltel/internal/pipeline"
	"github.com/graphmesh/gqltel/internal/telemetry"
)

// Router is the selector capability for the edge tier.
type Router = telemetry.Selector[*pipeline.RouterRequest, *pipeline.RouterResponse]

// RouterRequestHeader selects a header from the edge request.
type RouterRequestHeader struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s RouterRequestHeader) OnRequest(_ context.Context, req *pipeline.RouterRequest) (telemetry.Value, bool) {
	v, ok := headerValue(req.Header, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s RouterRequestHeader) OnResponse(context.Context, *pipeline.RouterResponse) (telemetry.Value, bool) {
	return absent, false
}

// RouterResponseHeader selects a header from the edge response.
type RouterResponseHeader struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s RouterResponseHeader) OnRequest(context.Context, *pipeline.RouterRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s RouterResponseHeader) OnResponse(_ context.Context, resp *pipeline.RouterResponse) (telemetry.Value, bool) {
	v, ok := headerValue(resp.Header, s.Name)
	return orDefault(v, ok, s.Default)
}

// RouterResponseStatus selects the edge response status code or reason.
type RouterResponseStatus struct {
	Mode ResponseStatusMode
}

func (s RouterResponseStatus) OnRequest(context.Context, *pipeline.RouterRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s RouterResponseStatus) OnResponse(_ context.Context, resp *pipeline.RouterResponse) (telemetry.Value, bool) {
	return statusValue(resp.StatusCode, s.Mode)
}

// RouterTraceID selects the active trace id in the configured format.
type RouterTraceID struct {
	Format TraceIDFormat
}

func (s RouterTraceID) OnRequest(ctx context.Context, _ *pipeline.RouterRequest) (telemetry.Value, bool) {
	return traceIDValue(ctx, s.Format)
}

func (s RouterTraceID) OnResponse(context.Context, *pipeline.RouterResponse) (telemetry.Value, bool) {
	return absent, false
}

// RouterResponseContext selects a pipeline context entry at response time.
type RouterResponseContext struct {
	Key     string
	Redact  string
	Default *telemetry.Value
}

func (s RouterResponseContext) OnRequest(context.Context, *pipeline.RouterRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s RouterResponseContext) OnResponse(_ context.Context, resp *pipeline.RouterResponse) (telemetry.Value, bool) {
	v, ok := contextValue(resp.Context, s.Key)
	return orDefault(v, ok, s.Default)
}

// RouterBaggage selects an ambient baggage member. Baggage travels with the
// trace rather than a phase, so it resolves on both request and response.
type RouterBaggage struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s RouterBaggage) OnRequest(ctx context.Context, _ *pipeline.RouterRequest) (telemetry.Value, bool) {
	v, ok := baggageValue(ctx, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s RouterBaggage) OnResponse(ctx context.Context, _ *pipeline.RouterResponse) (telemetry.Value, bool) {
	v, ok := baggageValue(ctx, s.Name)
	return orDefault(v, ok, s.Default)
}

// RouterEnv selects a process environment variable at request time.
type RouterEnv struct {
	Name    string
	Redact  string
	Default *string
}

func (s RouterEnv) OnRequest(context.Context, *pipeline.RouterRequest) (telemetry.Value, bool) {
	v, ok := os.LookupEnv(s.Name)
	v, ok = orDefaultString(v, ok, s.Default)
	if !ok {
		return absent, false
	}
	return telemetry.StringValue(v), true
}

func (s RouterEnv) OnResponse(context.Context, *pipeline.RouterResponse) (telemetry.Value, bool) {
	return absent, false
}

// traceIDValue reads the active span context carried by ctx. An absent or
// invalid span context is absent regardless of the requested format.
func traceIDValue(ctx context.Context, format TraceIDFormat) (telemetry.Value, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return absent, false
	}
	tid := sc.TraceID()
	switch format {
	case TraceIDDatadog:
		return telemetry.Uint128Value(telemetry.Uint128FromBytes(tid)), true
	default:
		return telemetry.StringValue(tid.String()), true
	}
}
