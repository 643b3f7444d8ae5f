package infer

import (
	"strconv"

	"confstruct/internal/common"
	"confstruct/internal/naming"
	"confstruct/internal/value"
)

// Optional-value convention keys.
const (
	KeySome = "opt_some"
	KeyNone = "opt_none"
)

// Inferrer walks a value tree. It is single-use per tree: the Registry it
// fills describes exactly the structs of one generated module.
type Inferrer struct {
	reg *Registry
}

// NewInferrer creates an Inferrer with an empty Registry.
func NewInferrer() *Inferrer {
	return &Inferrer{reg: NewRegistry()}
}

// Registry returns the structs registered so far.
func (in *Inferrer) Registry() *Registry {
	return in.reg
}

// Root infers the root object under the given struct name and returns its
// struct info. A Null root, as read from an empty document, is an object
// without keys.
func (in *Inferrer) Root(root *value.Value, name string) (*StructInfo, error) {
	if root != nil && root.Kind == value.KindNull {
		root = value.Obj(value.NewObject())
	}

	if !root.IsObject() {
		kind := "nil"
		if root != nil {
			kind = root.Kind.String()
		}

		return nil, &ShapeError{Description: "the root value must be an object, got " + kind}
	}

	t, _, err := in.Infer(root, name)
	if err != nil {
		return nil, err
	}

	if t.Kind != TypeStruct {
		return nil, &ShapeError{Description: "the root object cannot use the " + KeySome + "/" + KeyNone + " convention"}
	}

	s, _ := in.reg.Lookup(t.Name)

	return s, nil
}

// Infer maps a node to its type and default expression. owningName is the
// composite name a struct for this node would get.
func (in *Inferrer) Infer(node *value.Value, owningName string) (*Type, *Expr, error) {
	return in.infer(node, owningName, "")
}

// InferFields infers one field per key of obj, in key order. Each child is
// named CompositeName(owningName, key).
func (in *Inferrer) InferFields(obj *value.Object, owningName string) ([]Field, error) {
	return in.inferFields(obj, owningName, "")
}

func (in *Inferrer) infer(node *value.Value, owningName, path string) (*Type, *Expr, error) {
	if node == nil {
		return nil, nil, &ShapeError{Path: path, Description: "missing value"}
	}

	switch node.Kind {
	case value.KindNull:
		t := Optional(String)
		return t, none(t), nil
	case value.KindBool:
		return Bool, literal(Bool, node), nil
	case value.KindNumber:
		t := numberType(node.Number)
		return t, literal(t, node), nil
	case value.KindString:
		return String, literal(String, node), nil
	case value.KindArray:
		return in.inferArray(node, owningName, path)
	case value.KindObject:
		return in.inferObject(node.Object, owningName, path)
	default:
		return nil, nil, &ShapeError{Path: path, Description: "unsupported value kind " + node.Kind.String()}
	}
}

func numberType(n value.Number) *Type {
	switch n.Kind {
	case value.NumberInt:
		return Int64
	case value.NumberUint:
		return Uint64
	default:
		return Float64
	}
}

func (in *Inferrer) inferArray(node *value.Value, owningName, path string) (*Type, *Expr, error) {
	first, ok := common.First(node.Array)
	if !ok {
		t := List(Any)
		return t, &Expr{Kind: ExprList, Type: t}, nil
	}

	elem, _, err := in.infer(first, owningName, indexPath(path, 0))
	if err != nil {
		return nil, nil, err
	}

	t := List(elem)
	items := make([]*Expr, 0, len(node.Array))

	for i, item := range node.Array {
		e, err := in.convert(item, elem, indexPath(path, i))
		if err != nil {
			return nil, nil, err
		}

		items = append(items, e)
	}

	return t, &Expr{Kind: ExprList, Type: t, Items: items}, nil
}

func (in *Inferrer) inferObject(obj *value.Object, owningName, path string) (*Type, *Expr, error) {
	if payload, ok := obj.Get(KeySome); ok {
		inner, innerExpr, err := in.infer(payload, owningName, keyPath(path, KeySome))
		if err != nil {
			return nil, nil, err
		}

		t := Optional(inner)

		return t, some(t, innerExpr), nil
	}

	if payload, ok := obj.Get(KeyNone); ok {
		inner, _, err := in.infer(payload, owningName, keyPath(path, KeyNone))
		if err != nil {
			return nil, nil, err
		}

		t := Optional(inner)

		return t, none(t), nil
	}

	slot := in.reg.reserve()

	fields, err := in.inferFields(obj, owningName, path)
	if err != nil {
		return nil, nil, err
	}

	t := Struct(naming.TypeIdent(owningName))
	if err := in.reg.fill(slot, &StructInfo{Name: t.Name, Fields: fields, Path: path}); err != nil {
		return nil, nil, err
	}

	return t, newCall(t), nil
}

func (in *Inferrer) inferFields(obj *value.Object, owningName, path string) ([]Field, error) {
	keys := obj.Keys()

	names := naming.FieldIdents(keys)
	fields := make([]Field, 0, len(keys))

	for i, key := range keys {
		child, _ := obj.Get(key)
		childPath := keyPath(path, key)

		t, e, err := in.infer(child, naming.CompositeName(owningName, key), childPath)
		if err != nil {
			return nil, err
		}

		fields = append(fields, Field{Key: key, Name: names[i], Type: t, Default: e, Path: childPath})
	}

	return fields, nil
}

// convert builds the expression for node as a value of type t. It is used
// for array elements, which are values and not named fields.
func (in *Inferrer) convert(node *value.Value, t *Type, path string) (*Expr, error) {
	mismatch := func() error {
		return &ConversionError{Path: path, Want: t.String(), Got: describe(node)}
	}

	if node == nil {
		return nil, &ShapeError{Path: path, Description: "missing value"}
	}

	switch t.Kind {
	case TypeBool:
		if node.Kind != value.KindBool {
			return nil, mismatch()
		}
	case TypeString:
		if node.Kind != value.KindString {
			return nil, mismatch()
		}
	case TypeInt64:
		if node.Kind != value.KindNumber || node.Number.Kind != value.NumberInt {
			return nil, mismatch()
		}
	case TypeUint64:
		if node.Kind != value.KindNumber || node.Number.Kind == value.NumberFloat ||
			(node.Number.Kind == value.NumberInt && node.Number.Int < 0) {
			return nil, mismatch()
		}
	case TypeFloat64:
		if node.Kind != value.KindNumber {
			return nil, mismatch()
		}
	case TypeAny:
		if node.Kind == value.KindArray || node.Kind == value.KindObject {
			return nil, mismatch()
		}

		if node.Kind == value.KindNull {
			return none(Any), nil
		}

		st, _, err := in.infer(node, "", path)
		if err != nil {
			return nil, err
		}

		return literal(st, node), nil
	case TypeList:
		return in.convertList(node, t, path)
	case TypeOptional:
		return in.convertOptional(node, t, path)
	case TypeStruct:
		return in.convertStruct(node, t, path)
	default:
		return nil, &ShapeError{Path: path, Description: "cannot convert to " + t.String()}
	}

	return literal(t, node), nil
}

func (in *Inferrer) convertList(node *value.Value, t *Type, path string) (*Expr, error) {
	if node.Kind != value.KindArray {
		return nil, &ConversionError{Path: path, Want: t.String(), Got: describe(node)}
	}

	items := make([]*Expr, 0, len(node.Array))

	for i, item := range node.Array {
		e, err := in.convert(item, t.Elem, indexPath(path, i))
		if err != nil {
			return nil, err
		}

		items = append(items, e)
	}

	return &Expr{Kind: ExprList, Type: t, Items: items}, nil
}

func (in *Inferrer) convertOptional(node *value.Value, t *Type, path string) (*Expr, error) {
	if node.Kind == value.KindNull {
		return none(t), nil
	}

	if node.IsObject() {
		if payload, ok := node.Object.Get(KeySome); ok {
			inner, err := in.convert(payload, t.Elem, keyPath(path, KeySome))
			if err != nil {
				return nil, err
			}

			return some(t, inner), nil
		}

		if node.Object.Has(KeyNone) {
			return none(t), nil
		}
	}

	inner, err := in.convert(node, t.Elem, path)
	if err != nil {
		return nil, err
	}

	return some(t, inner), nil
}

func (in *Inferrer) convertStruct(node *value.Value, t *Type, path string) (*Expr, error) {
	if !node.IsObject() {
		return nil, &ConversionError{Path: path, Want: t.String(), Got: describe(node)}
	}

	s, ok := in.reg.Lookup(t.Name)
	if !ok {
		return nil, &ShapeError{Path: path, Description: "struct " + t.Name + " is not registered"}
	}

	byKey := make(map[string]*value.Value, node.Object.Len())
	for _, key := range node.Object.Keys() {
		if _, known := s.FieldByKey(key); !known {
			return nil, &ConversionError{Path: keyPath(path, key), Want: t.String(), Got: "unknown key " + strconv.Quote(key)}
		}

		byKey[key], _ = node.Object.Get(key)
	}

	e := &Expr{Kind: ExprStruct, Type: t}

	for _, f := range s.Fields {
		child, present := byKey[f.Key]
		if !present {
			continue
		}

		fe, err := in.convert(child, f.Type, keyPath(path, f.Key))
		if err != nil {
			return nil, err
		}

		e.Fields = append(e.Fields, FieldValue{Name: f.Name, Expr: fe})
	}

	return e, nil
}

func describe(node *value.Value) string {
	if node.Kind == value.KindNumber {
		return node.Number.Kind.String() + " " + node.Number.String()
	}

	return node.Kind.String()
}

func keyPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
