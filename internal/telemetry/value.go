package telemetry

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/baggage"
)

// Kind identifies the scalar kind held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt64
	KindUint128
	KindBool
	KindFloat64
)

// Uint128 is an unsigned 128-bit integer, used for wide trace identifiers.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128FromBytes interprets b as a big-endian unsigned 128-bit integer.
func Uint128FromBytes(b [16]byte) Uint128 {
	var u Uint128
	for i := 0; i < 8; i++ {
		u.Hi = u.Hi<<8 | uint64(b[i])
		u.Lo = u.Lo<<8 | uint64(b[i+8])
	}
	return u
}

// String renders the integer in decimal.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return strconv.FormatUint(u.Lo, 10)
	}
	n := new(big.Int).SetUint64(u.Hi)
	n.Lsh(n, 64)
	n.Or(n, new(big.Int).SetUint64(u.Lo))
	return n.String()
}

// Value is an immutable scalar attribute value. The zero Value is invalid
// and represents "absent" wherever a (Value, bool) pair is not used.
// Values compare equal only when both kind and payload match.
type Value struct {
	kind Kind
	str  string
	i64  int64
	u128 Uint128
	b    bool
	f64  float64
}

// StringValue returns a string-kinded Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// Int64Value returns a signed-integer Value.
func Int64Value(i int64) Value { return Value{kind: KindInt64, i64: i} }

// Uint128Value returns an unsigned 128-bit integer Value.
func Uint128Value(u Uint128) Value { return Value{kind: KindUint128, u128: u} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Float64Value returns a float Value.
func Float64Value(f float64) Value { return Value{kind: KindFloat64, f64: f} }

// Kind reports the scalar kind, or KindInvalid for the zero Value.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the payload of a string-kinded Value.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt64 returns the payload of a signed-integer Value.
func (v Value) AsInt64() (int64, bool) { return v.i64, v.kind == KindInt64 }

// AsUint128 returns the payload of an unsigned 128-bit Value.
func (v Value) AsUint128() (Uint128, bool) { return v.u128, v.kind == KindUint128 }

// AsBool returns the payload of a boolean Value.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsFloat64 returns the payload of a float Value.
func (v Value) AsFloat64() (float64, bool) { return v.f64, v.kind == KindFloat64 }

// String renders the value for human consumption.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt64:
		return strconv.FormatInt(v.i64, 10)
	case KindUint128:
		return v.u128.String()
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindFloat64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	default:
		return ""
	}
}

// FromBaggageMember converts a baggage entry into a string Value.
// A zero member (missing entry) reports false.
func FromBaggageMember(m baggage.Member) (Value, bool) {
	if m.Key() == "" {
		return Value{}, false
	}
	return StringValue(m.Value()), true
}

// FromJSONScalar converts a JSON query result into a Value. Only scalar
// results convert; null, missing, arrays and objects report false.
func FromJSONScalar(r gjson.Result) (Value, bool) {
	switch r.Type {
	case gjson.String:
		return StringValue(r.Str), true
	case gjson.True:
		return BoolValue(true), true
	case gjson.False:
		return BoolValue(false), true
	case gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return Float64Value(r.Num), true
		}
		return Int64Value(r.Int()), true
	default:
		return Value{}, false
	}
}

// FromAny converts a JSON-like Go scalar (as stored in a pipeline context or
// produced by a config decoder) into a Value. Non-scalar values report false.
func FromAny(v any) (Value, bool) {
	switch t := v.(type) {
	case string:
		return StringValue(t), true
	case bool:
		return BoolValue(t), true
	case int:
		return Int64Value(int64(t)), true
	case int64:
		return Int64Value(t), true
	case uint64:
		if t > math.MaxInt64 {
			return Uint128Value(Uint128{Lo: t}), true
		}
		return Int64Value(int64(t)), true
	case float64:
		// JSON decoders deliver every number as float64.
		if t == float64(int64(t)) {
			return Int64Value(int64(t)), true
		}
		return Float64Value(t), true
	case float32:
		return Float64Value(float64(t)), true
	default:
		return Value{}, false
	}
}
