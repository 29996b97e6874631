package selector

import "fmt"

// TraceIDFormat controls how a trace_id selector renders the active trace id.
type TraceIDFormat string

const (
	// TraceIDOpenTelemetry renders the id as a 32-character lowercase hex string.
	TraceIDOpenTelemetry TraceIDFormat = "opentelemetry"
	// TraceIDDatadog renders the id as a big-endian unsigned 128-bit integer.
	TraceIDDatadog TraceIDFormat = "datadog"
)

// ParseTraceIDFormat validates a trace_id format name from configuration.
func ParseTraceIDFormat(s string) (TraceIDFormat, error) {
	switch TraceIDFormat(s) {
	case TraceIDOpenTelemetry, TraceIDDatadog:
		return TraceIDFormat(s), nil
	default:
		return "", fmt.Errorf("unknown trace_id format: %q (supported: opentelemetry, datadog)", s)
	}
}

// OperationNameFormat controls whether an operation name is emitted raw or
// as a SHA-256 digest.
type OperationNameFormat string

const (
	OperationNameString OperationNameFormat = "string"
	OperationNameHash   OperationNameFormat = "hash"
)

// ParseOperationNameFormat validates an operation_name format from configuration.
func ParseOperationNameFormat(s string) (OperationNameFormat, error) {
	switch OperationNameFormat(s) {
	case OperationNameString, OperationNameHash:
		return OperationNameFormat(s), nil
	default:
		return "", fmt.Errorf("unknown operation_name format: %q (supported: string, hash)", s)
	}
}

// OperationKindFormat has a single mode; the enum exists so the config
// surface stays closed and forward-extensible.
type OperationKindFormat string

const OperationKindString OperationKindFormat = "string"

// ParseOperationKindFormat validates an operation_kind format from configuration.
func ParseOperationKindFormat(s string) (OperationKindFormat, error) {
	if OperationKindFormat(s) != OperationKindString {
		return "", fmt.Errorf("unknown operation_kind format: %q (supported: string)", s)
	}
	return OperationKindString, nil
}

// QueryFormat has a single mode, the raw query text.
type QueryFormat string

const QueryString QueryFormat = "string"

// ParseQueryFormat validates a query format from configuration.
func ParseQueryFormat(s string) (QueryFormat, error) {
	if QueryFormat(s) != QueryString {
		return "", fmt.Errorf("unknown query format: %q (supported: string)", s)
	}
	return QueryString, nil
}

// ResponseStatusMode selects between the numeric status code and the
// canonical reason phrase.
type ResponseStatusMode string

const (
	ResponseStatusCode   ResponseStatusMode = "code"
	ResponseStatusReason ResponseStatusMode = "reason"
)

// ParseResponseStatusMode validates a response_status mode from configuration.
func ParseResponseStatusMode(s string) (ResponseStatusMode, error) {
	switch ResponseStatusMode(s) {
	case ResponseStatusCode, ResponseStatusReason:
		return ResponseStatusMode(s), nil
	default:
		return "", fmt.Errorf("unknown response_status mode: %q (supported: code, reason)", s)
	}
}
