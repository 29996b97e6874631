package telemetry

import (
	"math"
	"testing"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/baggage"
)

func TestUint128FromBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes [16]byte
		want  string
	}{
		{"zero", [16]byte{}, "0"},
		{"small", [16]byte{15: 42}, "42"},
		{"low word max", [16]byte{8: 0xff, 9: 0xff, 10: 0xff, 11: 0xff, 12: 0xff, 13: 0xff, 14: 0xff, 15: 0xff}, "18446744073709551615"},
		{"high bit", [16]byte{0: 0x80}, "170141183460469231731687303715884105728"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Uint128FromBytes(tt.bytes).String()
			if got != tt.want {
				t.Errorf("Uint128FromBytes(%v).String() = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestValueEquality(t *testing.T) {
	if StringValue("42") == Int64Value(42) {
		t.Error("values of different kinds must not compare equal")
	}
	if Int64Value(42) != Int64Value(42) {
		t.Error("values of same kind and payload must compare equal")
	}
	if (Value{}) == StringValue("") {
		t.Error("zero value must differ from an empty string value")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{StringValue("hello"), "hello"},
		{Int64Value(-3), "-3"},
		{BoolValue(true), "true"},
		{Float64Value(1.5), "1.5"},
		{Uint128Value(Uint128{Lo: 42}), "42"},
		{Value{}, ""},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFromJSONScalar(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		path   string
		want   Value
		wantOK bool
	}{
		{"string", `{"a":"value"}`, "a", StringValue("value"), true},
		{"integer", `{"a":42}`, "a", Int64Value(42), true},
		{"float", `{"a":1.25}`, "a", Float64Value(1.25), true},
		{"exponent", `{"a":1e3}`, "a", Float64Value(1000), true},
		{"true", `{"a":true}`, "a", BoolValue(true), true},
		{"false", `{"a":false}`, "a", BoolValue(false), true},
		{"null", `{"a":null}`, "a", Value{}, false},
		{"object", `{"a":{"b":1}}`, "a", Value{}, false},
		{"array", `{"a":[1,2]}`, "a", Value{}, false},
		{"missing", `{"a":1}`, "b", Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromJSONScalar(gjson.Get(tt.json, tt.path))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FromJSONScalar() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFromBaggageMember(t *testing.T) {
	m, err := baggage.NewMember("team", "platform")
	if err != nil {
		t.Fatalf("NewMember: %v", err)
	}

	got, ok := FromBaggageMember(m)
	if !ok || got != StringValue("platform") {
		t.Errorf("FromBaggageMember() = (%v, %v), want (platform, true)", got, ok)
	}

	if _, ok := FromBaggageMember(baggage.Member{}); ok {
		t.Error("zero member must be absent")
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   Value
		wantOK bool
	}{
		{"string", "s", StringValue("s"), true},
		{"bool", true, BoolValue(true), true},
		{"int", 7, Int64Value(7), true},
		{"int64", int64(7), Int64Value(7), true},
		{"small uint64", uint64(7), Int64Value(7), true},
		{"max int64 uint64", uint64(math.MaxInt64), Int64Value(math.MaxInt64), true},
		{"wide uint64", uint64(math.MaxInt64) + 1, Uint128Value(Uint128{Lo: uint64(math.MaxInt64) + 1}), true},
		{"whole float", float64(7), Int64Value(7), true},
		{"fractional float", 7.5, Float64Value(7.5), true},
		{"map", map[string]any{}, Value{}, false},
		{"slice", []any{1}, Value{}, false},
		{"nil", nil, Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromAny(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FromAny(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
