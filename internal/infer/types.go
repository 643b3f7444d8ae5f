package infer

import (
	"fmt"
)

// TypeKind is the kind of an inferred type.
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypeBool
	TypeInt64
	TypeUint64
	TypeFloat64
	TypeString
	TypeAny      // element of an empty list
	TypeList     // slice of Elem
	TypeOptional // pointer to Elem
	TypeStruct   // named struct
)

// String returns the descriptor name of the kind.
func (k TypeKind) String() string {
	switch k {
	case TypeBool:
		return "Bool"
	case TypeInt64:
		return "Int64"
	case TypeUint64:
		return "Uint64"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	case TypeAny:
		return "Any"
	case TypeList:
		return "List"
	case TypeOptional:
		return "Optional"
	case TypeStruct:
		return "Struct"
	default:
		return "Invalid"
	}
}

// Type is an inferred type descriptor. Compare with Equal.
type Type struct {
	Kind TypeKind
	Elem *Type  // TypeList, TypeOptional
	Name string // TypeStruct
}

// Scalar type descriptors.
var (
	Bool    = &Type{Kind: TypeBool}
	Int64   = &Type{Kind: TypeInt64}
	Uint64  = &Type{Kind: TypeUint64}
	Float64 = &Type{Kind: TypeFloat64}
	String  = &Type{Kind: TypeString}
	Any     = &Type{Kind: TypeAny}
)

// List returns a list type.
func List(elem *Type) *Type { return &Type{Kind: TypeList, Elem: elem} }

// Optional returns an optional type.
func Optional(elem *Type) *Type { return &Type{Kind: TypeOptional, Elem: elem} }

// Struct returns a named struct type.
func Struct(name string) *Type { return &Type{Kind: TypeStruct, Name: name} }

// Equal reports structural equality.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}

	if t.Kind != other.Kind || t.Name != other.Name {
		return false
	}

	return t.Elem.Equal(other.Elem)
}

// IsScalar reports whether the type is a Go basic type.
func (t *Type) IsScalar() bool {
	switch t.Kind {
	case TypeBool, TypeInt64, TypeUint64, TypeFloat64, TypeString:
		return true
	default:
		return false
	}
}

// String renders the descriptor, e.g. "List(Optional(Int64))".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeList, TypeOptional:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Elem)
	case TypeStruct:
		return fmt.Sprintf("Struct(%s)", t.Name)
	default:
		return t.Kind.String()
	}
}

// GoType renders the Go spelling of the type.
func (t *Type) GoType() string {
	switch t.Kind {
	case TypeBool:
		return "bool"
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeAny:
		return "any"
	case TypeList:
		return "[]" + t.Elem.GoType()
	case TypeOptional:
		return "*" + t.Elem.GoType()
	case TypeStruct:
		return t.Name
	default:
		return "invalid"
	}
}
