package selector

import (
	"context"
	"os"

	"github.com/tidwall/gjson"

	"github.com/graphmesh/gqltel/internal/pipeline"
	"github.com/graphmesh/gqltel/internal/telemetry"
)

// Subgraph is the selector capability for the per-backend fetch tier.
type Subgraph = telemetry.Selector[*pipeline.SubgraphRequest, *pipeline.SubgraphResponse]

// SubgraphOperationName selects the operation name of the subgraph fetch,
// raw or hashed.
type SubgraphOperationName struct {
	Format  OperationNameFormat
	Redact  string
	Default *string
}

func (s SubgraphOperationName) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	var name string
	if req.SubgraphBody != nil {
		name = req.SubgraphBody.OperationName
	}
	n, ok := stringOrAbsent(name)
	return operationNameValue(n, ok, s.Format, s.Default)
}

func (s SubgraphOperationName) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphSubOperationName selects the supergraph operation name recorded
// by query planning, raw or hashed, while at the subgraph tier.
type SupergraphSubOperationName struct {
	Format  OperationNameFormat
	Redact  string
	Default *string
}

func (s SupergraphSubOperationName) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	name, ok := req.Context.GetString(pipeline.OperationNameKey)
	return operationNameValue(name, ok, s.Format, s.Default)
}

func (s SupergraphSubOperationName) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SubgraphOperationKind selects the kind of the subgraph operation.
type SubgraphOperationKind struct {
	Format OperationKindFormat
}

func (s SubgraphOperationKind) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	kind, ok := stringOrAbsent(string(req.OperationKind))
	if !ok {
		return absent, false
	}
	return telemetry.StringValue(kind), true
}

func (s SubgraphOperationKind) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphSubOperationKind selects the supergraph operation kind recorded
// by query planning, while at the subgraph tier.
type SupergraphSubOperationKind struct {
	Format OperationKindFormat
}

func (s SupergraphSubOperationKind) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	return contextValue(req.Context, pipeline.OperationKindKey)
}

func (s SupergraphSubOperationKind) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SubgraphQuery selects the raw query text sent to the subgraph.
type SubgraphQuery struct {
	Format  QueryFormat
	Redact  string
	Default *string
}

func (s SubgraphQuery) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	return queryText(req.SubgraphBody, s.Default)
}

func (s SubgraphQuery) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphSubQuery selects the raw supergraph query text, while at the
// subgraph tier.
type SupergraphSubQuery struct {
	Format  QueryFormat
	Redact  string
	Default *string
}

func (s SupergraphSubQuery) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	return queryText(req.SupergraphBody, s.Default)
}

func (s SupergraphSubQuery) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SubgraphQueryVariable selects a variable of the subgraph query.
type SubgraphQueryVariable struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SubgraphQueryVariable) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	v, ok := variableValue(req.SubgraphBody, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SubgraphQueryVariable) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphSubQueryVariable selects a variable of the supergraph query,
// while at the subgraph tier.
type SupergraphSubQueryVariable struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphSubQueryVariable) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	v, ok := variableValue(req.SupergraphBody, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SupergraphSubQueryVariable) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SubgraphResponseBody selects the first scalar matched by a JSON path
// query over the raw subgraph response body.
type SubgraphResponseBody struct {
	Path    string
	Redact  string
	Default *telemetry.Value
}

func (s SubgraphResponseBody) OnRequest(context.Context, *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s SubgraphResponseBody) OnResponse(_ context.Context, resp *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	if len(resp.Body) > 0 && gjson.ValidBytes(resp.Body) {
		if v, ok := telemetry.FromJSONScalar(gjson.GetBytes(resp.Body, s.Path)); ok {
			return v, true
		}
	}
	return orDefault(absent, false, s.Default)
}

// SubgraphRequestHeader selects a header of the subgraph request.
type SubgraphRequestHeader struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SubgraphRequestHeader) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	v, ok := headerValue(req.SubgraphHeader, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SubgraphRequestHeader) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SupergraphSubRequestHeader selects a header of the supergraph request,
// while at the subgraph tier.
type SupergraphSubRequestHeader struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SupergraphSubRequestHeader) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	v, ok := headerValue(req.SupergraphHeader, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SupergraphSubRequestHeader) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SubgraphResponseHeader selects a header of the subgraph response.
type SubgraphResponseHeader struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SubgraphResponseHeader) OnRequest(context.Context, *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s SubgraphResponseHeader) OnResponse(_ context.Context, resp *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	v, ok := headerValue(resp.Header, s.Name)
	return orDefault(v, ok, s.Default)
}

// SubgraphResponseStatus selects the subgraph response status code or reason.
type SubgraphResponseStatus struct {
	Mode ResponseStatusMode
}

func (s SubgraphResponseStatus) OnRequest(context.Context, *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s SubgraphResponseStatus) OnResponse(_ context.Context, resp *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return statusValue(resp.StatusCode, s.Mode)
}

// SubgraphRequestContext selects a pipeline context entry at request time.
type SubgraphRequestContext struct {
	Key     string
	Redact  string
	Default *telemetry.Value
}

func (s SubgraphRequestContext) OnRequest(_ context.Context, req *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	v, ok := contextValue(req.Context, s.Key)
	return orDefault(v, ok, s.Default)
}

func (s SubgraphRequestContext) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SubgraphResponseContext selects a pipeline context entry at response time.
type SubgraphResponseContext struct {
	Key     string
	Redact  string
	Default *telemetry.Value
}

func (s SubgraphResponseContext) OnRequest(context.Context, *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	return absent, false
}

func (s SubgraphResponseContext) OnResponse(_ context.Context, resp *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	v, ok := contextValue(resp.Context, s.Key)
	return orDefault(v, ok, s.Default)
}

// SubgraphBaggage selects an ambient baggage member at request time.
type SubgraphBaggage struct {
	Name    string
	Redact  string
	Default *telemetry.Value
}

func (s SubgraphBaggage) OnRequest(ctx context.Context, _ *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	v, ok := baggageValue(ctx, s.Name)
	return orDefault(v, ok, s.Default)
}

func (s SubgraphBaggage) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}

// SubgraphEnv selects a process environment variable at request time.
type SubgraphEnv struct {
	Name    string
	Redact  string
	Default *string
}

func (s SubgraphEnv) OnRequest(context.Context, *pipeline.SubgraphRequest) (telemetry.Value, bool) {
	v, ok := os.LookupEnv(s.Name)
	v, ok = orDefaultString(v, ok, s.Default)
	if !ok {
		return absent, false
	}
	return telemetry.StringValue(v), true
}

func (s SubgraphEnv) OnResponse(context.Context, *pipeline.SubgraphResponse) (telemetry.Value, bool) {
	return absent, false
}
