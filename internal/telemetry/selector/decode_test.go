package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmesh/gqltel/internal/telemetry"
)

func TestDecodeRouterVariants(t *testing.T) {
	sel, err := DecodeRouter(map[string]any{"request_header": "x-request-id", "default": "unknown"})
	require.NoError(t, err)
	assert.Equal(t, RouterRequestHeader{
		Name:    "x-request-id",
		Default: valuePtr(telemetry.StringValue("unknown")),
	}, sel)

	sel, err = DecodeRouter(map[string]any{"response_status": "code"})
	require.NoError(t, err)
	assert.Equal(t, RouterResponseStatus{Mode: ResponseStatusCode}, sel)

	sel, err = DecodeRouter(map[string]any{"trace_id": "datadog"})
	require.NoError(t, err)
	assert.Equal(t, RouterTraceID{Format: TraceIDDatadog}, sel)

	sel, err = DecodeRouter(map[string]any{"env": "DEPLOY_ENV", "default": "dev"})
	require.NoError(t, err)
	assert.Equal(t, RouterEnv{Name: "DEPLOY_ENV", Default: strPtr("dev")}, sel)

	sel, err = DecodeRouter(map[string]any{"baggage": "team", "redact": "secret-.*"})
	require.NoError(t, err)
	assert.Equal(t, RouterBaggage{Name: "team", Redact: "secret-.*"}, sel)
}

func TestDecodeRouterRejectsUnknownField(t *testing.T) {
	_, err := DecodeRouter(map[string]any{"request_header": "x", "unexpected": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "unexpected"`)
}

func TestDecodeRouterRejectsNoVariant(t *testing.T) {
	_, err := DecodeRouter(map[string]any{"default": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches no variant")

	_, err = DecodeRouter(map[string]any{})
	assert.Error(t, err)
}

func TestDecodeRouterRejectsAmbiguousVariant(t *testing.T) {
	_, err := DecodeRouter(map[string]any{"request_header": "a", "response_header": "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous selector")
}

func TestDecodeRouterRejectsMistypedFields(t *testing.T) {
	_, err := DecodeRouter(map[string]any{"request_header": 7})
	assert.Error(t, err, "source key must be a string")

	_, err = DecodeRouter(map[string]any{"request_header": "x", "default": map[string]any{"no": "scalars"}})
	assert.Error(t, err, "default must be a scalar")

	_, err = DecodeRouter(map[string]any{"env": "X", "default": 3})
	assert.Error(t, err, "env default must be a string")

	_, err = DecodeRouter(map[string]any{"request_header": "x", "redact": 1})
	assert.Error(t, err, "redact must be a string")

	// Enum-only variants carry no default or redact.
	_, err = DecodeRouter(map[string]any{"response_status": "code", "default": 200})
	assert.Error(t, err)
	_, err = DecodeRouter(map[string]any{"trace_id": "datadog", "redact": "x"})
	assert.Error(t, err)
}

func TestDecodeRouterRejectsUnknownEnumValues(t *testing.T) {
	_, err := DecodeRouter(map[string]any{"trace_id": "b3"})
	assert.Error(t, err)

	_, err = DecodeRouter(map[string]any{"response_status": "text"})
	assert.Error(t, err)
}

func TestDecodeSupergraphVariants(t *testing.T) {
	sel, err := DecodeSupergraph(map[string]any{"operation_name": "hash", "default": "anonymous"})
	require.NoError(t, err)
	assert.Equal(t, SupergraphOperationName{Format: OperationNameHash, Default: strPtr("anonymous")}, sel)

	sel, err = DecodeSupergraph(map[string]any{"operation_kind": "string"})
	require.NoError(t, err)
	assert.Equal(t, SupergraphOperationKind{Format: OperationKindString}, sel)

	sel, err = DecodeSupergraph(map[string]any{"query": "string", "redact": ".*"})
	require.NoError(t, err)
	assert.Equal(t, SupergraphQuery{Format: QueryString, Redact: ".*"}, sel)

	sel, err = DecodeSupergraph(map[string]any{"query_variable": "key", "default": 10})
	require.NoError(t, err)
	assert.Equal(t, SupergraphQueryVariable{Name: "key", Default: valuePtr(telemetry.Int64Value(10))}, sel)

	_, err = DecodeSupergraph(map[string]any{"operation_name": "sha1"})
	assert.Error(t, err)

	_, err = DecodeSupergraph(map[string]any{"operation_kind": "string", "default": "query"})
	assert.Error(t, err, "operation_kind has no default field")
}

func TestDecodeSubgraphVariants(t *testing.T) {
	sel, err := DecodeSubgraph(map[string]any{"subgraph_operation_name": "string"})
	require.NoError(t, err)
	assert.Equal(t, SubgraphOperationName{Format: OperationNameString}, sel)

	sel, err = DecodeSubgraph(map[string]any{"supergraph_operation_name": "hash"})
	require.NoError(t, err)
	assert.Equal(t, SupergraphSubOperationName{Format: OperationNameHash}, sel)

	sel, err = DecodeSubgraph(map[string]any{"subgraph_response_body": "data.products.0.name", "default": "none"})
	require.NoError(t, err)
	assert.Equal(t, SubgraphResponseBody{
		Path:    "data.products.0.name",
		Default: valuePtr(telemetry.StringValue("none")),
	}, sel)

	sel, err = DecodeSubgraph(map[string]any{"subgraph_response_status": "reason"})
	require.NoError(t, err)
	assert.Equal(t, SubgraphResponseStatus{Mode: ResponseStatusReason}, sel)

	sel, err = DecodeSubgraph(map[string]any{"supergraph_request_header": "x-client", "default": true})
	require.NoError(t, err)
	assert.Equal(t, SupergraphSubRequestHeader{Name: "x-client", Default: valuePtr(telemetry.BoolValue(true))}, sel)

	_, err = DecodeSubgraph(map[string]any{"subgraph_response_body": ""})
	assert.Error(t, err, "empty path is rejected")

	_, err = DecodeSubgraph(map[string]any{"subgraph_query": "string", "supergraph_query": "string"})
	assert.Error(t, err, "one selector cannot name two variants")
}

func TestDecodeDefaultScalarCoercion(t *testing.T) {
	// JSON-sourced config delivers whole numbers as float64.
	sel, err := DecodeRouter(map[string]any{"response_context": "cost", "default": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, RouterResponseContext{Key: "cost", Default: valuePtr(telemetry.Int64Value(5))}, sel)

	sel, err = DecodeRouter(map[string]any{"response_context": "ratio", "default": 0.25})
	require.NoError(t, err)
	assert.Equal(t, RouterResponseContext{Key: "ratio", Default: valuePtr(telemetry.Float64Value(0.25))}, sel)
}
