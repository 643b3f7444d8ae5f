package value

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// NumberKind tells which Go numeric type holds a Number exactly.
type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberUint
	NumberFloat
)

// String returns a human-readable number kind name.
func (k NumberKind) String() string {
	switch k {
	case NumberInt:
		return "int64"
	case NumberUint:
		return "uint64"
	default:
		return "float64"
	}
}

// Number is a parsed numeric literal.
type Number struct {
	Kind  NumberKind
	Int   int64
	Uint  uint64
	Float float64
}

// IntNumber returns a signed integer Number.
func IntNumber(i int64) Number { return Number{Kind: NumberInt, Int: i} }

// UintNumber returns an unsigned Number. Values that fit int64 are stored as
// NumberInt so that classification does not depend on the parser.
func UintNumber(u uint64) Number {
	if u <= math.MaxInt64 {
		return IntNumber(int64(u))
	}

	return Number{Kind: NumberUint, Uint: u}
}

// FloatNumber returns a floating point Number.
func FloatNumber(f float64) Number { return Number{Kind: NumberFloat, Float: f} }

// ParseNumber classifies a numeric literal: int64 first, then uint64, then
// float64. Literals with a fraction or exponent are always floats.
func ParseNumber(s string) (Number, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntNumber(i), nil
	}

	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return UintNumber(u), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat returns ±Inf with ErrRange for huge literals; keep them.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return FloatNumber(f), nil
		}

		return Number{}, err
	}

	return FloatNumber(f), nil
}

// Float64 returns the number converted to float64.
func (n Number) Float64() float64 {
	switch n.Kind {
	case NumberInt:
		return float64(n.Int)
	case NumberUint:
		return float64(n.Uint)
	default:
		return n.Float
	}
}

// String formats the number the way it would appear in source.
func (n Number) String() string {
	switch n.Kind {
	case NumberInt:
		return strconv.FormatInt(n.Int, 10)
	case NumberUint:
		return strconv.FormatUint(n.Uint, 10)
	default:
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
}

// Value is one node of the value tree.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Bool   bool
	Number Number
	String string
	Array  []*Value
	Object *Object
}

// Null returns a null node.
func Null() *Value { return &Value{Kind: KindNull} }

// Bool returns a boolean node.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Num returns a numeric node.
func Num(n Number) *Value { return &Value{Kind: KindNumber, Number: n} }

// Int returns a signed integer node.
func Int(i int64) *Value { return Num(IntNumber(i)) }

// Uint returns an unsigned integer node.
func Uint(u uint64) *Value { return Num(UintNumber(u)) }

// Float returns a float node.
func Float(f float64) *Value { return Num(FloatNumber(f)) }

// Str returns a string node.
func Str(s string) *Value { return &Value{Kind: KindString, String: s} }

// Arr returns an array node.
func Arr(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}

	return &Value{Kind: KindArray, Array: items}
}

// Obj returns an object node.
func Obj(o *Object) *Value {
	if o == nil {
		o = NewObject()
	}

	return &Value{Kind: KindObject, Object: o}
}

// IsObject reports whether v is an object node.
func (v *Value) IsObject() bool { return v != nil && v.Kind == KindObject }

// Interface converts the tree to plain Go values: nil, bool, int64, uint64,
// float64, string, []any and map[string]any. Key order is lost.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		switch v.Number.Kind {
		case NumberInt:
			return v.Number.Int
		case NumberUint:
			return v.Number.Uint
		default:
			return v.Number.Float
		}
	case KindString:
		return v.String
	case KindArray:
		out := make([]any, len(v.Array))
		for i, item := range v.Array {
			out[i] = item.Interface()
		}

		return out
	case KindObject:
		out := make(map[string]any, v.Object.Len())
		for _, key := range v.Object.Keys() {
			item, _ := v.Object.Get(key)
			out[key] = item.Interface()
		}

		return out
	default:
		return nil
	}
}
