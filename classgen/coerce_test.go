package classgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceDefault(t *testing.T) {
	tests := []struct {
		name  string
		value any
		typ   TypeTag
		want  any
	}{
		{name: "string as is", value: "hello", typ: TypeString, want: "hello"},
		{name: "string from int", value: 42, typ: TypeString, want: ""},
		{name: "string from bool", value: true, typ: TypeString, want: ""},

		{name: "bool true", value: true, typ: TypeBool, want: true},
		{name: "bool false", value: false, typ: TypeBool, want: false},
		{name: "bool from one", value: 1, typ: TypeBool, want: true},
		{name: "bool from zero", value: 0, typ: TypeBool, want: false},
		{name: "bool from zero float", value: 0.0, typ: TypeBool, want: false},
		{name: "bool from empty string", value: "", typ: TypeBool, want: false},
		{name: "bool from string zero", value: "0", typ: TypeBool, want: false},
		{name: "bool from string false", value: "false", typ: TypeBool, want: true},
		{name: "bool from empty list", value: []any{}, typ: TypeBool, want: false},
		{name: "bool from list", value: []any{0}, typ: TypeBool, want: true},
		{name: "bool from empty map", value: Map{}, typ: TypeBool, want: false},

		{name: "int", value: 30, typ: TypeInt, want: 30},
		{name: "int from int64", value: int64(-7), typ: TypeInt, want: -7},
		{name: "int from uint", value: uint8(9), typ: TypeInt, want: 9},
		{name: "int from string", value: "8080", typ: TypeInt, want: 8080},
		{name: "int from signed string", value: "-12", typ: TypeInt, want: -12},
		{name: "int from padded string", value: "  15 ", typ: TypeInt, want: 15},
		{name: "int from decimal string", value: "12.9", typ: TypeInt, want: 12},
		{name: "int from negative decimal", value: "-12.9", typ: TypeInt, want: -12},
		{name: "int from exponent string", value: "1e3", typ: TypeInt, want: 1000},
		{name: "int from float", value: 3.7, typ: TypeInt, want: 3},
		{name: "int from word", value: "abc", typ: TypeInt, want: 0},
		{name: "int from trailing garbage", value: "12abc", typ: TypeInt, want: 0},
		{name: "int from bool", value: true, typ: TypeInt, want: 0},
		{name: "int from list", value: []any{1}, typ: TypeInt, want: 0},
		{name: "int overflow saturates", value: "99999999999999999999", typ: TypeInt, want: math.MaxInt},

		{name: "float", value: 1.5, typ: TypeFloat, want: 1.5},
		{name: "float from int", value: 2, typ: TypeFloat, want: 2.0},
		{name: "float from string", value: "0.25", typ: TypeFloat, want: 0.25},
		{name: "float from leading dot", value: ".5", typ: TypeFloat, want: 0.5},
		{name: "float from trailing dot", value: "5.", typ: TypeFloat, want: 5.0},
		{name: "float from word", value: "fast", typ: TypeFloat, want: 0.0},
		{name: "float from bool", value: false, typ: TypeFloat, want: 0.0},

		{name: "array from list", value: []any{"a", "b"}, typ: TypeArray, want: []any{"a", "b"}},
		{name: "array from map", value: Map{{Key: "k", Value: 1}}, typ: TypeArray, want: Map{{Key: "k", Value: 1}}},
		{name: "array from plain map", value: map[string]any{"b": 2, "a": 1}, typ: TypeArray, want: Map{{Key: "a", Value: 1}, {Key: "b", Value: 2}}},
		{name: "array from typed slice", value: []string{"x"}, typ: TypeArray, want: []any{"x"}},
		{name: "array from scalar", value: "x", typ: TypeArray, want: []any{}},

		{name: "unknown tag keeps string", value: "Foo", typ: "?string", want: "Foo"},
		{name: "unknown tag drops non string", value: 3, typ: "mixed", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceDefault(tt.value, tt.typ)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceDefaultNil(t *testing.T) {
	for _, typ := range []TypeTag{TypeString, TypeBool, TypeInt, TypeFloat, TypeArray, "other"} {
		got, ok := CoerceDefault(nil, typ)
		assert.False(t, ok, typ)
		assert.Nil(t, got, typ)
	}
}

func TestCoerceDefaultIntFromNumericStrings(t *testing.T) {
	for s, want := range map[string]int{
		"0":    0,
		"7":    7,
		"+7":   7,
		"007":  7,
		"1.0":  1,
		"2e2":  200,
		"\t3 ": 3,
	} {
		got, ok := CoerceDefault(s, TypeInt)
		require.True(t, ok)
		assert.Equal(t, want, got, s)
	}
}

func TestCoerceDefaultArrayCopies(t *testing.T) {
	inner := []any{"x"}
	in := []any{inner, Map{{Key: "k", Value: []any{1}}}}

	got, ok := CoerceDefault(in, TypeArray)
	require.True(t, ok)

	inner[0] = "changed"
	in[1].(Map)[0].Value.([]any)[0] = 2

	assert.Equal(t, []any{[]any{"x"}, Map{{Key: "k", Value: []any{1}}}}, got)
}

func TestIsNumeric(t *testing.T) {
	for _, v := range []any{1, int8(1), uint64(1), 1.5, float32(1), "1", "-1.5", ".5", "1e-3", " 42 "} {
		assert.True(t, IsNumeric(v), "%#v", v)
	}
	for _, v := range []any{true, nil, "", " ", "1x", "0x1A", "1_000", "e5", "--1", "inf", []any{1}} {
		assert.False(t, IsNumeric(v), "%#v", v)
	}
}
