package selector

import (
	"fmt"
	"sort"

	"github.com/graphmesh/gqltel/internal/telemetry"
)

// The selector config language is untagged: the variant is resolved by
// which discriminating field name is present in the object. Field sets are
// disjoint across a family, so an input matching zero or more than one
// variant is rejected, as is any field outside the matched variant's set.

var routerFields = []string{
	"request_header",
	"response_header",
	"response_status",
	"trace_id",
	"response_context",
	"baggage",
	"env",
}

var supergraphFields = []string{
	"operation_name",
	"operation_kind",
	"query",
	"query_variable",
	"request_header",
	"response_header",
	"request_context",
	"response_context",
	"baggage",
	"env",
}

var subgraphFields = []string{
	"subgraph_operation_name",
	"subgraph_operation_kind",
	"subgraph_query",
	"subgraph_query_variable",
	"subgraph_response_body",
	"subgraph_request_header",
	"subgraph_response_header",
	"subgraph_response_status",
	"supergraph_operation_name",
	"supergraph_operation_kind",
	"supergraph_query",
	"supergraph_query_variable",
	"supergraph_request_header",
	"request_context",
	"response_context",
	"baggage",
	"env",
}

// DecodeRouter resolves and validates one router-tier selector object.
func DecodeRouter(raw map[string]any) (Router, error) {
	field, err := discriminator(raw, routerFields)
	if err != nil {
		return nil, err
	}
	switch field {
	case "request_header":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return RouterRequestHeader{Name: name, Redact: redact, Default: def}, nil
	case "response_header":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return RouterResponseHeader{Name: name, Redact: redact, Default: def}, nil
	case "response_status":
		mode, err := decodeEnum(raw, field, ParseResponseStatusMode)
		if err != nil {
			return nil, err
		}
		return RouterResponseStatus{Mode: mode}, nil
	case "trace_id":
		format, err := decodeEnum(raw, field, ParseTraceIDFormat)
		if err != nil {
			return nil, err
		}
		return RouterTraceID{Format: format}, nil
	case "response_context":
		key, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return RouterResponseContext{Key: key, Redact: redact, Default: def}, nil
	case "baggage":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return RouterBaggage{Name: name, Redact: redact, Default: def}, nil
	case "env":
		name, redact, def, err := decodeKeyedString(raw, field)
		if err != nil {
			return nil, err
		}
		return RouterEnv{Name: name, Redact: redact, Default: def}, nil
	}
	return nil, fmt.Errorf("unhandled selector field %q", field)
}

// DecodeSupergraph resolves and validates one supergraph-tier selector object.
func DecodeSupergraph(raw map[string]any) (Supergraph, error) {
	field, err := discriminator(raw, supergraphFields)
	if err != nil {
		return nil, err
	}
	switch field {
	case "operation_name":
		format, redact, def, err := decodeEnumKeyed(raw, field, ParseOperationNameFormat)
		if err != nil {
			return nil, err
		}
		return SupergraphOperationName{Format: format, Redact: redact, Default: def}, nil
	case "operation_kind":
		format, err := decodeEnum(raw, field, ParseOperationKindFormat)
		if err != nil {
			return nil, err
		}
		return SupergraphOperationKind{Format: format}, nil
	case "query":
		format, redact, def, err := decodeEnumKeyed(raw, field, ParseQueryFormat)
		if err != nil {
			return nil, err
		}
		return SupergraphQuery{Format: format, Redact: redact, Default: def}, nil
	case "query_variable":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphQueryVariable{Name: name, Redact: redact, Default: def}, nil
	case "request_header":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphRequestHeader{Name: name, Redact: redact, Default: def}, nil
	case "response_header":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphResponseHeader{Name: name, Redact: redact, Default: def}, nil
	case "request_context":
		key, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphRequestContext{Key: key, Redact: redact, Default: def}, nil
	case "response_context":
		key, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphResponseContext{Key: key, Redact: redact, Default: def}, nil
	case "baggage":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphBaggage{Name: name, Redact: redact, Default: def}, nil
	case "env":
		name, redact, def, err := decodeKeyedString(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphEnv{Name: name, Redact: redact, Default: def}, nil
	}
	return nil, fmt.Errorf("unhandled selector field %q", field)
}

// DecodeSubgraph resolves and validates one subgraph-tier selector object.
func DecodeSubgraph(raw map[string]any) (Subgraph, error) {
	field, err := discriminator(raw, subgraphFields)
	if err != nil {
		return nil, err
	}
	switch field {
	case "subgraph_operation_name":
		format, redact, def, err := decodeEnumKeyed(raw, field, ParseOperationNameFormat)
		if err != nil {
			return nil, err
		}
		return SubgraphOperationName{Format: format, Redact: redact, Default: def}, nil
	case "supergraph_operation_name":
		format, redact, def, err := decodeEnumKeyed(raw, field, ParseOperationNameFormat)
		if err != nil {
			return nil, err
		}
		return SupergraphSubOperationName{Format: format, Redact: redact, Default: def}, nil
	case "subgraph_operation_kind":
		format, err := decodeEnum(raw, field, ParseOperationKindFormat)
		if err != nil {
			return nil, err
		}
		return SubgraphOperationKind{Format: format}, nil
	case "supergraph_operation_kind":
		format, err := decodeEnum(raw, field, ParseOperationKindFormat)
		if err != nil {
			return nil, err
		}
		return SupergraphSubOperationKind{Format: format}, nil
	case "subgraph_query":
		format, redact, def, err := decodeEnumKeyed(raw, field, ParseQueryFormat)
		if err != nil {
			return nil, err
		}
		return SubgraphQuery{Format: format, Redact: redact, Default: def}, nil
	case "supergraph_query":
		format, redact, def, err := decodeEnumKeyed(raw, field, ParseQueryFormat)
		if err != nil {
			return nil, err
		}
		return SupergraphSubQuery{Format: format, Redact: redact, Default: def}, nil
	case "subgraph_query_variable":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SubgraphQueryVariable{Name: name, Redact: redact, Default: def}, nil
	case "supergraph_query_variable":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphSubQueryVariable{Name: name, Redact: redact, Default: def}, nil
	case "subgraph_response_body":
		path, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return nil, fmt.Errorf("%s: path must not be empty", field)
		}
		return SubgraphResponseBody{Path: path, Redact: redact, Default: def}, nil
	case "subgraph_request_header":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SubgraphRequestHeader{Name: name, Redact: redact, Default: def}, nil
	case "supergraph_request_header":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SupergraphSubRequestHeader{Name: name, Redact: redact, Default: def}, nil
	case "subgraph_response_header":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SubgraphResponseHeader{Name: name, Redact: redact, Default: def}, nil
	case "subgraph_response_status":
		mode, err := decodeEnum(raw, field, ParseResponseStatusMode)
		if err != nil {
			return nil, err
		}
		return SubgraphResponseStatus{Mode: mode}, nil
	case "request_context":
		key, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SubgraphRequestContext{Key: key, Redact: redact, Default: def}, nil
	case "response_context":
		key, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SubgraphResponseContext{Key: key, Redact: redact, Default: def}, nil
	case "baggage":
		name, redact, def, err := decodeKeyed(raw, field)
		if err != nil {
			return nil, err
		}
		return SubgraphBaggage{Name: name, Redact: redact, Default: def}, nil
	case "env":
		name, redact, def, err := decodeKeyedString(raw, field)
		if err != nil {
			return nil, err
		}
		return SubgraphEnv{Name: name, Redact: redact, Default: def}, nil
	}
	return nil, fmt.Errorf("unhandled selector field %q", field)
}

// discriminator finds the single family field present in raw.
func discriminator(raw map[string]any, fields []string) (string, error) {
	var found []string
	for _, f := range fields {
		if _, ok := raw[f]; ok {
			found = append(found, f)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", fmt.Errorf("selector matches no variant; object keys %v must include exactly one of %v", sortedKeys(raw), fields)
	default:
		return "", fmt.Errorf("ambiguous selector: fields %v each identify a different variant", found)
	}
}

// decodeKeyed handles variants shaped {<field>: string, redact?, default?: scalar}.
func decodeKeyed(raw map[string]any, field string) (string, string, *telemetry.Value, error) {
	if err := rejectUnknown(raw, field, "redact", "default"); err != nil {
		return "", "", nil, err
	}
	name, err := stringField(raw, field)
	if err != nil {
		return "", "", nil, err
	}
	redact, err := optRedact(raw, field)
	if err != nil {
		return "", "", nil, err
	}
	def, err := optDefault(raw, field)
	if err != nil {
		return "", "", nil, err
	}
	return name, redact, def, nil
}

// decodeKeyedString handles variants whose default must be a string.
func decodeKeyedString(raw map[string]any, field string) (string, string, *string, error) {
	if err := rejectUnknown(raw, field, "redact", "default"); err != nil {
		return "", "", nil, err
	}
	name, err := stringField(raw, field)
	if err != nil {
		return "", "", nil, err
	}
	redact, err := optRedact(raw, field)
	if err != nil {
		return "", "", nil, err
	}
	def, err := optStringDefault(raw, field)
	if err != nil {
		return "", "", nil, err
	}
	return name, redact, def, nil
}

// decodeEnum handles variants shaped {<field>: enum} with no other fields.
func decodeEnum[T any](raw map[string]any, field string, parse func(string) (T, error)) (T, error) {
	var zero T
	if err := rejectUnknown(raw, field); err != nil {
		return zero, err
	}
	s, err := stringField(raw, field)
	if err != nil {
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// decodeEnumKeyed handles variants shaped {<field>: enum, redact?, default?: string}.
func decodeEnumKeyed[T any](raw map[string]any, field string, parse func(string) (T, error)) (T, string, *string, error) {
	var zero T
	if err := rejectUnknown(raw, field, "redact", "default"); err != nil {
		return zero, "", nil, err
	}
	s, err := stringField(raw, field)
	if err != nil {
		return zero, "", nil, err
	}
	v, err := parse(s)
	if err != nil {
		return zero, "", nil, fmt.Errorf("%s: %w", field, err)
	}
	redact, err := optRedact(raw, field)
	if err != nil {
		return zero, "", nil, err
	}
	def, err := optStringDefault(raw, field)
	if err != nil {
		return zero, "", nil, err
	}
	return v, redact, def, nil
}

func rejectUnknown(raw map[string]any, allowed ...string) error {
	for _, key := range sortedKeys(raw) {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown field %q in %s selector", key, allowed[0])
		}
	}
	return nil
}

func stringField(raw map[string]any, field string) (string, error) {
	v := raw[field]
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected a string, got %T", field, v)
	}
	return s, nil
}

func optRedact(raw map[string]any, field string) (string, error) {
	v, ok := raw["redact"]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: redact must be a string, got %T", field, v)
	}
	return s, nil
}

func optDefault(raw map[string]any, field string) (*telemetry.Value, error) {
	v, ok := raw["default"]
	if !ok {
		return nil, nil
	}
	val, ok := telemetry.FromAny(v)
	if !ok {
		return nil, fmt.Errorf("%s: default must be a scalar, got %T", field, v)
	}
	return &val, nil
}

func optStringDefault(raw map[string]any, field string) (*string, error) {
	v, ok := raw["default"]
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s: default must be a string, got %T", field, v)
	}
	return &s, nil
}

func sortedKeys(raw map[string]any) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
