package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  Number
	}{
		{"0", IntNumber(0)},
		{"-42", IntNumber(-42)},
		{"9223372036854775807", IntNumber(math.MaxInt64)},
		{"9223372036854775808", Number{Kind: NumberUint, Uint: 1 << 63}},
		{"18446744073709551615", Number{Kind: NumberUint, Uint: math.MaxUint64}},
		{"18446744073709551616", FloatNumber(18446744073709551616)},
		{"1.5", FloatNumber(1.5)},
		{"1.0", FloatNumber(1)},
		{"1e3", FloatNumber(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	_, err := ParseNumber("abc")
	assert.Error(t, err)
}

func TestUintNumberNarrowsToInt(t *testing.T) {
	assert.Equal(t, NumberInt, UintNumber(7).Kind)
	assert.Equal(t, NumberUint, UintNumber(math.MaxUint64).Kind)
}

func TestObjectKeepsInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", Int(1))
	o.Set("a", Int(2))
	o.Set("b", Int(3))

	assert.Equal(t, []string{"b", "a"}, o.Keys())

	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Number.Int)
	assert.False(t, o.Has("c"))
}

func TestInterface(t *testing.T) {
	tree := Obj(Pairs(
		"name", Str("x"),
		"n", Int(1),
		"list", Arr(Bool(true), Null()),
	))

	assert.Equal(t, map[string]any{
		"name": "x",
		"n":    int64(1),
		"list": []any{true, nil},
	}, tree.Interface())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "invalid", Kind(99).String())
	assert.Equal(t, "uint64", NumberUint.String())
}

func TestPairs_MalformedPanics(t *testing.T) {
	tests := []struct {
		name string
		kv   []any
	}{
		{"odd count", []any{"a", Int(1), "b"}},
		{"non-string key", []any{1, Int(1)}},
		{"non-value", []any{"a", 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { Pairs(tt.kv...) })
		})
	}
}

func TestPairs_KeepsOrder(t *testing.T) {
	o := Pairs("b", Int(2), "a", Int(1))

	assert.Equal(t, []string{"b", "a"}, o.Keys())
}
