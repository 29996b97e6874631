package selector

import (
	"context"
	"os"

	"github.com/graphmesh/gqltel/internal/pipeline"
	"github.com/graphmesh/gqltel/internal/telemetry"
)

// Supergraph is the selector capability for the federated-operation tier.
type Supergraph = telemetry.Selector[*pipeline.SupergraphRequest, *pipeline.SupergraphResponse]

// SupergraphOperationName selects the operation name recorded by query
// planning, raw or hashed.
type SupergraphOperationName struct {
	Format  OperationNameFormat
	Redact  string
	Default *string
}

func (s SupergraphOperationName) OnRequest(_ context.Context, req *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	name, ok := req.Context.GetString(pipeline.OperationNameKey)
	return operationNameValue(name, ok, s.Format, s.Default)
}

func (s SupergraphOperationName) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphOperationKind selects the operation kind recorded by query planning.
type SupergraphOperationKind struct {
	Format OperationKindFormat
}

func (s SupergraphOperationKind) OnRequest(_ context.Context, req *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	return contextValue(req.Context, pipeline.OperationKindKey)
}

func (s SupergraphOperationKind) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphQuery selects the raw query text of the federated operation.
type SupergraphQuery struct {
	Format  QueryFormat
	Redact  string
	Default *string
}

func (s SupergraphQuery) OnRequest(_ context.Context, req *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	return queryText(req.Body, s.Default)
}

func (s SupergraphQuery) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphQueryVariable selects a named query variable, serialized to its
// canonical JSON text.
type SupergraphQueryVariable struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphQueryVariable) OnRequest(_ context.Context, req *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	v, ok := variableValue(req.Body, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SupergraphQueryVariable) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphRequestHeader selects a header from the supergraph request.
type SupergraphRequestHeader struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphRequestHeader) OnRequest(_ context.Context, req *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	v, ok := headerValue(req.Header, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SupergraphRequestHeader) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphResponseHeader selects a header from the supergraph response.
type SupergraphResponseHeader struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphResponseHeader) OnRequest(context.Context, *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s SupergraphResponseHeader) OnResponse(_ context.Context, resp *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	v, ok := headerValue(resp.Header, s.Name)
	return orDefault(v, ok, s.Default)
}

// SupergraphRequestContext selects a pipeline context entry at request time.
type SupergraphRequestContext struct {
	Key     string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphRequestContext) OnRequest(_ context.Context, req *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	v, ok := contextValue(req.Context, s.Key)
	return orDefault(v, ok, s.Default)
}

func (s SupergraphRequestContext) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphResponseContext selects a pipeline context entry at response time.
type SupergraphResponseContext struct {
	Key     string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphResponseContext) OnRequest(context.Context, *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s SupergraphResponseContext) OnResponse(_ context.Context, resp *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	v, ok := contextValue(resp.Context, s.Key)
	return orDefault(v, ok, s.Default)
}

// SupergraphBaggage selects an ambient baggage member at request time.
type SupergraphBaggage struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphBaggage) OnRequest(ctx context.Context, _ *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	v, ok := baggageValue(ctx, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SupergraphBaggage) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphEnv selects a process environment variable at request time.
type SupergraphEnv struct {
	Name    string
	Redact  string
	Default *string
}

func (s SupergraphEnv) OnRequest(context.Context, *pipeline.SupergraphRequest) (telemetry.Value, bool) {
	v, ok := os.LookupEnv(s.Name)
	v, ok = orDefaultString(v, ok, s.Default)
	if !ok {
		return absent, false
	}
	return telemetry.StringValue(v), true
}

func (s SupergraphEnv) OnResponse(context.Context, *pipeline.SupergraphResponse) (telemetry.Value, bool) {
	return absent, false
}
