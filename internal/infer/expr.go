package infer

import (
	"confstruct/internal/value"
)

// ExprKind is the kind of a default value expression.
type ExprKind int

const (
	ExprLiteral ExprKind = iota // scalar literal
	ExprNil                     // absent optional
	ExprSome                    // present optional wrapping Inner
	ExprList                    // slice literal of Items
	ExprNew                     // call to the named struct's value-populated constructor
	ExprStruct                  // composite literal of the named struct with Fields
)

// Expr is a default value expression. Type is the Go type it produces.
type Expr struct {
	Kind    ExprKind
	Type    *Type
	Literal *value.Value // ExprLiteral: a bool, number or string node
	Inner   *Expr        // ExprSome
	Items   []*Expr      // ExprList
	Fields  []FieldValue // ExprStruct, only keys present in the source
}

// FieldValue is one field of a composite literal.
type FieldValue struct {
	Name string
	Expr *Expr
}

func literal(t *Type, v *value.Value) *Expr { return &Expr{Kind: ExprLiteral, Type: t, Literal: v} }

func none(t *Type) *Expr { return &Expr{Kind: ExprNil, Type: t} }

func some(t *Type, inner *Expr) *Expr { return &Expr{Kind: ExprSome, Type: t, Inner: inner} }

func newCall(t *Type) *Expr { return &Expr{Kind: ExprNew, Type: t} }

// Equal reports whether two expressions produce the same value.
func (e *Expr) Equal(other *Expr) bool {
	if e == nil || other == nil {
		return e == other
	}

	if e.Kind != other.Kind || !e.Type.Equal(other.Type) {
		return false
	}

	switch e.Kind {
	case ExprLiteral:
		return literalEqual(e.Literal, other.Literal)
	case ExprSome:
		return e.Inner.Equal(other.Inner)
	case ExprList:
		if len(e.Items) != len(other.Items) {
			return false
		}

		for i := range e.Items {
			if !e.Items[i].Equal(other.Items[i]) {
				return false
			}
		}

		return true
	case ExprStruct:
		if len(e.Fields) != len(other.Fields) {
			return false
		}

		for i := range e.Fields {
			if e.Fields[i].Name != other.Fields[i].Name || !e.Fields[i].Expr.Equal(other.Fields[i].Expr) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

func literalEqual(a, b *value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case value.KindBool:
		return a.Bool == b.Bool
	case value.KindString:
		return a.String == b.String
	case value.KindNumber:
		return a.Number == b.Number
	default:
		return true
	}
}
