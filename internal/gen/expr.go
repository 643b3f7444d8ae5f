package gen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"confstruct/internal/infer"
	"confstruct/internal/value"
)

// exprRenderer turns inferred types and expressions into Go source text.
// It records the imports and helpers the rendered text needs.
type exprRenderer struct {
	ptrHelper string
	structs   map[string]*StructDef
	imports   map[string]bool
	usedPtr   bool
}

func newExprRenderer(m *Module) *exprRenderer {
	r := &exprRenderer{
		ptrHelper: ptrHelperName(m),
		structs:   make(map[string]*StructDef, len(m.Structs)),
		imports:   make(map[string]bool),
	}

	for _, s := range m.Structs {
		r.structs[s.Name] = s
	}

	return r
}

// DescribeValue renders a default expression of m as it would appear in
// the generated constructor, on one line.
func DescribeValue(m *Module, e *infer.Expr) string {
	return strings.ReplaceAll(newExprRenderer(m).value(e), "\n", " ")
}

// value renders e in a position where the composite literal type is needed.
func (r *exprRenderer) value(e *infer.Expr) string {
	return r.expr(e, false)
}

// expr renders e. elide drops the type of a composite literal, which is
// allowed for slice elements.
func (r *exprRenderer) expr(e *infer.Expr, elide bool) string {
	switch e.Kind {
	case infer.ExprLiteral:
		return r.literal(e.Literal, e.Type, false)
	case infer.ExprNil:
		return "nil"
	case infer.ExprSome:
		r.usedPtr = true
		return fmt.Sprintf("%s[%s](%s)", r.ptrHelper, e.Type.Elem.GoType(), r.expr(e.Inner, false))
	case infer.ExprNew:
		return r.structs[e.Type.Name].NewFunc() + "()"
	case infer.ExprList:
		return r.list(e, elide)
	case infer.ExprStruct:
		return r.composite(e, elide)
	default:
		return "nil"
	}
}

func (r *exprRenderer) list(e *infer.Expr, elide bool) string {
	prefix := e.Type.GoType()
	if elide {
		prefix = ""
	}

	if len(e.Items) == 0 {
		return prefix + "{}"
	}

	elem := e.Type.Elem
	items := make([]string, len(e.Items))

	for i, item := range e.Items {
		if elem.Kind == infer.TypeAny {
			items[i] = r.anyItem(item)
			continue
		}

		items[i] = r.expr(item, elem.Kind == infer.TypeStruct || elem.Kind == infer.TypeList)
	}

	if elem.IsScalar() || elem.Kind == infer.TypeAny {
		return prefix + "{" + strings.Join(items, ", ") + "}"
	}

	return prefix + "{\n" + strings.Join(items, ",\n") + ",\n}"
}

// anyItem renders an element of []any. Numbers are typed so the dynamic
// type matches the inferred scalar type.
func (r *exprRenderer) anyItem(e *infer.Expr) string {
	if e.Kind != infer.ExprLiteral {
		return "nil"
	}

	return r.literal(e.Literal, e.Type, true)
}

func (r *exprRenderer) composite(e *infer.Expr, elide bool) string {
	prefix := e.Type.Name
	if elide {
		prefix = ""
	}

	if len(e.Fields) == 0 {
		return prefix + "{}"
	}

	parts := make([]string, len(e.Fields))
	multiline := len(e.Fields) > 2

	for i, f := range e.Fields {
		parts[i] = f.Name + ": " + r.value(f.Expr)
		if strings.Contains(parts[i], "\n") {
			multiline = true
		}
	}

	if !multiline {
		return prefix + "{" + strings.Join(parts, ", ") + "}"
	}

	return prefix + "{\n" + strings.Join(parts, ",\n") + ",\n}"
}

func (r *exprRenderer) literal(v *value.Value, t *infer.Type, typed bool) string {
	switch t.Kind {
	case infer.TypeBool:
		return strconv.FormatBool(v.Bool)
	case infer.TypeString:
		return strconv.Quote(v.String)
	case infer.TypeInt64:
		s := strconv.FormatInt(v.Number.Int, 10)
		if typed {
			return "int64(" + s + ")"
		}

		return s
	case infer.TypeUint64:
		u := v.Number.Uint
		if v.Number.Kind == value.NumberInt {
			u = uint64(v.Number.Int)
		}

		s := strconv.FormatUint(u, 10)
		if typed {
			return "uint64(" + s + ")"
		}

		return s
	case infer.TypeFloat64:
		return r.float(v.Number.Float64(), typed)
	default:
		return "nil"
	}
}

func (r *exprRenderer) float(f float64, typed bool) string {
	switch {
	case math.IsNaN(f):
		r.imports["math"] = true
		return "math.NaN()"
	case math.IsInf(f, 1):
		r.imports["math"] = true
		return "math.Inf(1)"
	case math.IsInf(f, -1):
		r.imports["math"] = true
		return "math.Inf(-1)"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if typed {
		return "float64(" + s + ")"
	}

	return s
}

// equal renders a boolean expression comparing a and b of type t.
func (r *exprRenderer) equal(t *infer.Type, a, b string) string {
	switch t.Kind {
	case infer.TypeStruct:
		return paren(a) + ".Equal(" + b + ")"
	case infer.TypeOptional:
		return fmt.Sprintf("(%s == nil) == (%s == nil) && (%s == nil || %s)",
			a, b, a, r.equal(t.Elem, "*"+a, "*"+b))
	case infer.TypeList:
		r.imports["slices"] = true

		switch {
		case t.Elem.IsScalar():
			return fmt.Sprintf("slices.Equal(%s, %s)", a, b)
		case t.Elem.Kind == infer.TypeAny:
			r.imports["reflect"] = true
			return fmt.Sprintf("slices.EqualFunc(%s, %s, func(x, y any) bool { return reflect.DeepEqual(x, y) })", a, b)
		default:
			return fmt.Sprintf("slices.EqualFunc(%s, %s, func(x, y %s) bool { return %s })",
				a, b, t.Elem.GoType(), r.equal(t.Elem, "x", "y"))
		}
	default:
		return a + " == " + b
	}
}

// clone renders a deep copy of src, or "" when assignment already copies.
func (r *exprRenderer) clone(t *infer.Type, src string) string {
	switch t.Kind {
	case infer.TypeStruct:
		return paren(src) + ".Clone()"
	case infer.TypeList:
		if t.Elem.IsScalar() || t.Elem.Kind == infer.TypeAny {
			r.imports["slices"] = true
			return "slices.Clone(" + src + ")"
		}

		typ := t.GoType()
		elem := r.clone(t.Elem, "e")

		if elem == "" {
			elem = "e"
		}

		return fmt.Sprintf(`func(s %[1]s) %[1]s {
	if s == nil {
		return nil
	}

	cp := make(%[1]s, len(s))
	for i, e := range s {
		cp[i] = %[2]s
	}

	return cp
}(%[3]s)`, typ, elem, src)
	case infer.TypeOptional:
		typ := t.GoType()
		elem := r.clone(t.Elem, "*p")

		if elem == "" {
			elem = "*p"
		}

		return fmt.Sprintf(`func(p %[1]s) %[1]s {
	if p == nil {
		return nil
	}

	v := %[2]s

	return &v
}(%[3]s)`, typ, elem, src)
	default:
		return ""
	}
}

func paren(expr string) string {
	if strings.HasPrefix(expr, "*") {
		return "(" + expr + ")"
	}

	return expr
}
