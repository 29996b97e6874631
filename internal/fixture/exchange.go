package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphmesh/gqltel/internal/pipeline"
)

// Ambient installs the recorded trace context and baggage onto ctx, so
// trace_id and baggage selectors observe the recorded state.
func (e *Exchange) Ambient(ctx context.Context) (context.Context, error) {
	if e.TraceID != "" {
		tid, err := trace.TraceIDFromHex(e.TraceID)
		if err != nil {
			return nil, fmt.Errorf("invalid trace_id %q: %w", e.TraceID, err)
		}
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    tid,
			SpanID:     trace.SpanID{1},
			TraceFlags: trace.FlagsSampled,
		})
		ctx = trace.ContextWithSpanContext(ctx, sc)
	}

	if len(e.Baggage) > 0 {
		members := make([]baggage.Member, 0, len(e.Baggage))
		for k, v := range e.Baggage {
			m, err := baggage.NewMember(k, v)
			if err != nil {
				return nil, fmt.Errorf("invalid baggage member %q: %w", k, err)
			}
			members = append(members, m)
		}
		bag, err := baggage.New(members...)
		if err != nil {
			return nil, fmt.Errorf("invalid baggage: %w", err)
		}
		ctx = baggage.ContextWithBaggage(ctx, bag)
	}

	return ctx, nil
}

// PipelineContext builds the shared pipeline context from the recorded
// entries, filling the operation name and kind keys from the request when
// the recording did not set them explicitly.
func (e *Exchange) PipelineContext() *pipeline.Context {
	pc := pipeline.NewContext()
	for k, v := range e.Context {
		pc.Set(k, v)
	}
	if _, ok := pc.Get(pipeline.OperationNameKey); !ok && e.Request.OperationName != "" {
		pc.Set(pipeline.OperationNameKey, e.Request.OperationName)
	}
	if _, ok := pc.Get(pipeline.OperationKindKey); !ok && e.Request.OperationKind != "" {
		pc.Set(pipeline.OperationKindKey, e.Request.OperationKind)
	}
	return pc
}

// RouterRequest builds the edge-tier request object.
func (e *Exchange) RouterRequest(pc *pipeline.Context) *pipeline.RouterRequest {
	return &pipeline.RouterRequest{
		Header:  toHeader(e.Request.Headers),
		Context: pc,
	}
}

// RouterResponse builds the edge-tier response object.
func (e *Exchange) RouterResponse(pc *pipeline.Context) *pipeline.RouterResponse {
	return &pipeline.RouterResponse{
		Header:     toHeader(e.Response.Headers),
		StatusCode: e.Response.Status,
		Context:    pc,
	}
}

// SupergraphRequest builds the federated-operation request object.
func (e *Exchange) SupergraphRequest(pc *pipeline.Context) (*pipeline.SupergraphRequest, error) {
	body, err := toBody(e.Request)
	if err != nil {
		return nil, err
	}
	return &pipeline.SupergraphRequest{
		Header:  toHeader(e.Request.Headers),
		Body:    body,
		Context: pc,
	}, nil
}

// SupergraphResponse builds the federated-operation response object.
func (e *Exchange) SupergraphResponse(pc *pipeline.Context) *pipeline.SupergraphResponse {
	return &pipeline.SupergraphResponse{
		Header:  toHeader(e.Response.Headers),
		Context: pc,
	}
}

// SubgraphRequest builds the backend-fetch request object, or nil when the
// recording has no subgraph call.
func (e *Exchange) SubgraphRequest(pc *pipeline.Context) (*pipeline.SubgraphRequest, error) {
	if e.Subgraph == nil {
		return nil, nil
	}
	subBody, err := toBody(e.Subgraph.Request)
	if err != nil {
		return nil, err
	}
	superBody, err := toBody(e.Request)
	if err != nil {
		return nil, err
	}
	return &pipeline.SubgraphRequest{
		SubgraphName:     e.Subgraph.Name,
		SubgraphHeader:   toHeader(e.Subgraph.Request.Headers),
		SubgraphBody:     subBody,
		SupergraphHeader: toHeader(e.Request.Headers),
		SupergraphBody:   superBody,
		OperationKind:    pipeline.OperationKind(e.Subgraph.Request.OperationKind),
		Context:          pc,
	}, nil
}

// SubgraphResponse builds the backend-fetch response object, or nil when
// the recording has no subgraph call.
func (e *Exchange) SubgraphResponse(pc *pipeline.Context) *pipeline.SubgraphResponse {
	if e.Subgraph == nil {
		return nil
	}
	return &pipeline.SubgraphResponse{
		Header:     toHeader(e.Subgraph.Response.Headers),
		StatusCode: e.Subgraph.Response.Status,
		Body:       []byte(e.Subgraph.Response.Body),
		Context:    pc,
	}
}

func toHeader(m map[string]string) http.Header {
	h := make(http.Header, len(m))
	for k, v := range m {
		h.Set(k, v)
	}
	return h
}

func toBody(r Request) (*pipeline.GraphQLRequest, error) {
	body := &pipeline.GraphQLRequest{
		Query:         r.Query,
		OperationName: r.OperationName,
	}
	if len(r.Variables) > 0 {
		body.Variables = make(map[string]json.RawMessage, len(r.Variables))
		for name, v := range r.Variables {
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("variable %q is not JSON-serializable: %w", name, err)
			}
			body.Variables[name] = raw
		}
	}
	return body, nil
}
