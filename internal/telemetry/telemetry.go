// Package telemetry defines the attribute value model and the selector
// evaluation contract used by the router's instrumentation layer.
//
// A Selector is a compiled, immutable description of one attribute to
// extract from a pipeline stage. Selectors are evaluated once per phase
// (request or response); a selector that is not meaningful for the phase it
// is invoked at reports absent rather than an error. Evaluation is pure:
// it reads the pipeline objects and the ambient trace state carried by the
// context.Context, and never mutates either.
package telemetry

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"
)

// Selector extracts one attribute value from a pipeline stage. Req and Resp
// are the request and response types of the tier the selector belongs to.
//
// Both methods report false when no value applies: wrong phase, missing
// source with no configured default, or an unconvertible source value.
type Selector[Req any, Resp any] interface {
	OnRequest(ctx context.Context, req Req) (Value, bool)
	OnResponse(ctx context.Context, resp Resp) (Value, bool)
}

// AttributeSet is a named collection of selectors for one pipeline tier.
// Evaluating a set merges the per-selector results into an attribute record,
// dropping absent results.
type AttributeSet[Req any, Resp any] struct {
	names     []string
	selectors map[string]Selector[Req, Resp]
}

// NewAttributeSet builds an AttributeSet from a name-to-selector map.
// Evaluation order is stable (sorted by attribute name).
func NewAttributeSet[Req any, Resp any](selectors map[string]Selector[Req, Resp]) AttributeSet[Req, Resp] {
	names := make([]string, 0, len(selectors))
	for name := range selectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return AttributeSet[Req, Resp]{names: names, selectors: selectors}
}

// Len returns the number of configured attributes.
func (s AttributeSet[Req, Resp]) Len() int { return len(s.names) }

// Names returns the configured attribute names in evaluation order.
func (s AttributeSet[Req, Resp]) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// EvaluateRequest evaluates every selector at request time.
func (s AttributeSet[Req, Resp]) EvaluateRequest(ctx context.Context, req Req) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, name := range s.names {
		if v, ok := s.selectors[name].OnRequest(ctx, req); ok {
			attrs = append(attrs, keyValue(name, v))
		}
	}
	return attrs
}

// EvaluateResponse evaluates every selector at response time.
func (s AttributeSet[Req, Resp]) EvaluateResponse(ctx context.Context, resp Resp) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, name := range s.names {
		if v, ok := s.selectors[name].OnResponse(ctx, resp); ok {
			attrs = append(attrs, keyValue(name, v))
		}
	}
	return attrs
}

// keyValue maps a Value onto the OpenTelemetry attribute type system.
// Uint128 exceeds OTel's integer range and is carried as its decimal string.
func keyValue(name string, v Value) attribute.KeyValue {
	key := attribute.Key(name)
	switch v.Kind() {
	case KindInt64:
		i, _ := v.AsInt64()
		return key.Int64(i)
	case KindBool:
		b, _ := v.AsBool()
		return key.Bool(b)
	case KindFloat64:
		f, _ := v.AsFloat64()
		return key.Float64(f)
	default:
		return key.String(v.String())
	}
}
