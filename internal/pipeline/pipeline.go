// Package pipeline provides the request and response types that flow through
// the router's multi-hop execution pipeline.
//
// Three tiers exist: the edge-facing router tier (raw HTTP in and out), the
// supergraph tier (the parsed federated GraphQL operation), and the subgraph
// tier (one request/response pair per backend service). Telemetry selectors
// are evaluated against these objects and never mutate them.
package pipeline

import (
	"encoding/json"
	"net/http"
)

// OperationKind classifies a GraphQL operation.
type OperationKind string

const (
	OperationQuery        OperationKind = "query"
	OperationMutation     OperationKind = "mutation"
	OperationSubscription OperationKind = "subscription"
)

// GraphQLRequest is a parsed GraphQL request payload.
type GraphQLRequest struct {
	Query         string                     `json:"query,omitempty"`
	OperationName string                     `json:"operationName,omitempty"`
	Variables     map[string]json.RawMessage `json:"variables,omitempty"`
}

// Variable returns the raw JSON value bound to the named variable.
func (r *GraphQLRequest) Variable(name string) (json.RawMessage, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Variables[name]
	return v, ok
}

// RouterRequest is the edge-facing HTTP request before GraphQL parsing.
type RouterRequest struct {
	Header  http.Header
	Context *Context
}

// RouterResponse is the edge-facing HTTP response.
type RouterResponse struct {
	Header     http.Header
	StatusCode int
	Context    *Context
}

// SupergraphRequest is the parsed federated operation about to be planned.
type SupergraphRequest struct {
	Header  http.Header
	Body    *GraphQLRequest
	Context *Context
}

// SupergraphResponse is the merged response for the federated operation.
type SupergraphResponse struct {
	Header  http.Header
	Context *Context
}

// SubgraphRequest is the request sent to a single backend subgraph, carried
// together with the supergraph request that produced it.
type SubgraphRequest struct {
	SubgraphName string

	SubgraphHeader http.Header
	SubgraphBody   *GraphQLRequest

	SupergraphHeader http.Header
	SupergraphBody   *GraphQLRequest

	OperationKind OperationKind
	Context       *Context
}

// SubgraphResponse is the raw response from a single backend subgraph.
// Body is the unparsed JSON payload.
type SubgraphResponse struct {
	Header     http.Header
	StatusCode int
	Body       []byte
	Context    *Context
}
