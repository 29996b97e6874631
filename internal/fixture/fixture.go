// Package fixture loads recorded pipeline exchanges from files so selector
// configuration can be evaluated offline, without a running router.
package fixture

// Exchange is one recorded round trip through the pipeline: the edge
// request and response, the parsed operation, optional per-subgraph calls,
// and the ambient state (trace id, baggage, pipeline context) active at the
// time of recording.
type Exchange struct {
	// TraceID is the hex trace id to install as the active span context.
	// Empty means no valid trace context.
	TraceID string `json:"trace_id,omitempty" yaml:"trace_id,omitempty"`

	// Baggage holds ambient baggage members.
	Baggage map[string]string `json:"baggage,omitempty" yaml:"baggage,omitempty"`

	// Context holds pipeline context entries shared by all stages.
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	Request  Request  `json:"request" yaml:"request"`
	Response Response `json:"response" yaml:"response"`

	// Subgraph records one backend fetch made for this operation.
	Subgraph *SubgraphCall `json:"subgraph,omitempty" yaml:"subgraph,omitempty"`
}

// Request is a recorded request: edge headers plus the parsed operation.
type Request struct {
	Headers       map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Query         string            `json:"query,omitempty" yaml:"query,omitempty"`
	OperationName string            `json:"operation_name,omitempty" yaml:"operation_name,omitempty"`
	OperationKind string            `json:"operation_kind,omitempty" yaml:"operation_kind,omitempty"`
	Variables     map[string]any    `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Response is a recorded response.
type Response struct {
	Status  int               `json:"status" yaml:"status"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    string            `json:"body,omitempty" yaml:"body,omitempty"`
}

// SubgraphCall is a recorded fetch to one backend subgraph.
type SubgraphCall struct {
	Name     string   `json:"name" yaml:"name"`
	Request  Request  `json:"request" yaml:"request"`
	Response Response `json:"response" yaml:"response"`
}
