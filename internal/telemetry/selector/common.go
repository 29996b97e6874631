// Package selector implements the three closed selector families evaluated
// by the telemetry layer: Router (edge HTTP), Supergraph (federated
// operation) and Subgraph (per-backend fetch). Each family is a set of
// variant structs sharing the telemetry.Selector capability for its tier's
// request and response types.
//
// Evaluation never fails: every missing source, wrong phase or
// unconvertible value degrades to absent, which falls back to the variant's
// configured default when one exists.
package selector

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/baggage"

	"github.com/graphmesh/gqltel/internal/pipeline"
	"github.com/graphmesh/gqltel/internal/telemetry"
)

var absent = telemetry.Value{}

// headerValue looks up the first value of a header by canonical name.
func headerValue(h http.Header, name string) (telemetry.Value, bool) {
	if h == nil {
		return absent, false
	}
	vs := h.Values(name)
	if len(vs) == 0 {
		return absent, false
	}
	return telemetry.StringValue(vs[0]), true
}

// contextValue looks up a pipeline context entry and converts it to a
// scalar. Unset keys and non-scalar entries are both absent.
func contextValue(c *pipeline.Context, key string) (telemetry.Value, bool) {
	v, ok := c.Get(key)
	if !ok {
		return absent, false
	}
	return telemetry.FromAny(v)
}

// baggageValue looks up a member of the ambient baggage carried by ctx.
func baggageValue(ctx context.Context, name string) (telemetry.Value, bool) {
	return telemetry.FromBaggageMember(baggage.FromContext(ctx).Member(name))
}

// variableValue serializes a query variable to its canonical JSON text.
func variableValue(body *pipeline.GraphQLRequest, name string) (telemetry.Value, bool) {
	raw, ok := body.Variable(name)
	if !ok {
		return absent, false
	}
	text, err := json.Marshal(raw)
	if err != nil {
		return absent, false
	}
	return telemetry.StringValue(string(text)), true
}

// statusValue renders an HTTP status per the configured mode. Reason is
// absent when the implementation knows no phrase for the code.
func statusValue(code int, mode ResponseStatusMode) (telemetry.Value, bool) {
	switch mode {
	case ResponseStatusReason:
		reason := http.StatusText(code)
		if reason == "" {
			return absent, false
		}
		return telemetry.StringValue(reason), true
	default:
		return telemetry.Int64Value(int64(code)), true
	}
}

// hashOperationName digests an operation name to lowercase hex SHA-256.
func hashOperationName(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])
}

// operationNameValue applies the raw-or-hash transform after defaulting.
// Hashing is applied to whichever string survived defaulting, never to an
// absent result.
func operationNameValue(name string, ok bool, format OperationNameFormat, def *string) (telemetry.Value, bool) {
	name, ok = orDefaultString(name, ok, def)
	if !ok {
		return absent, false
	}
	if format == OperationNameHash {
		name = hashOperationName(name)
	}
	return telemetry.StringValue(name), true
}

// orDefault substitutes the configured default when the source was absent.
func orDefault(v telemetry.Value, ok bool, def *telemetry.Value) (telemetry.Value, bool) {
	if ok {
		return v, true
	}
	if def != nil {
		return *def, true
	}
	return absent, false
}

// orDefaultString is orDefault for the variants whose default is a string.
func orDefaultString(s string, ok bool, def *string) (string, bool) {
	if ok {
		return s, true
	}
	if def != nil {
		return *def, true
	}
	return "", false
}

// stringOrAbsent treats the empty string as an absent source.
func stringOrAbsent(s string) (string, bool) {
	return s, s != ""
}

// queryText applies empty-is-absent and defaulting to a query body.
func queryText(body *pipeline.GraphQLRequest, def *string) (telemetry.Value, bool) {
	var query string
	if body != nil {
		query = body.Query
	}
	v, ok := stringOrAbsent(query)
	v, ok = orDefaultString(v, ok, def)
	if !ok {
		return absent, false
	}
	return telemetry.StringValue(v), true
}
