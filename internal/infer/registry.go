package infer

// Field is one inferred struct field.
type Field struct {
	// Key is the key in the source object.
	Key string
	// Name is the Go field name.
	Name string
	// Type is the inferred type.
	Type *Type
	// Default is the value read from the source file.
	Default *Expr
	// Path is the origin path in the source, e.g. "server.ports[0]".
	Path string
}

// StructInfo is one struct met during inference.
type StructInfo struct {
	Name   string
	Fields []Field
	Path   string
}

// FieldByKey returns the field for a source key.
func (s *StructInfo) FieldByKey(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}

	return Field{}, false
}

// Registry collects structs in depth-first pre-order. A slot is reserved
// when the walk enters an object and filled when it leaves, so nested
// structs keep pre-order positions even though their fields are known
// first.
type Registry struct {
	slots  []*StructInfo
	byName map[string]*StructInfo
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*StructInfo)}
}

func (r *Registry) reserve() int {
	r.slots = append(r.slots, nil)
	return len(r.slots) - 1
}

// fill stores s in slot idx. A struct with the same name and identical
// fields is kept once; different fields are a collision.
func (r *Registry) fill(idx int, s *StructInfo) error {
	if prev, ok := r.byName[s.Name]; ok {
		if !fieldsEqual(prev.Fields, s.Fields) {
			return &NameCollisionError{Name: s.Name, FirstPath: prev.Path, SecondPath: s.Path}
		}

		return nil
	}

	r.slots[idx] = s
	r.byName[s.Name] = s

	return nil
}

// Lookup returns the struct with the given name.
func (r *Registry) Lookup(name string) (*StructInfo, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Structs returns the registered structs in pre-order.
func (r *Registry) Structs() []*StructInfo {
	out := make([]*StructInfo, 0, len(r.byName))

	for _, s := range r.slots {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

func fieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Key != b[i].Key || a[i].Name != b[i].Name ||
			!a[i].Type.Equal(b[i].Type) || !a[i].Default.Equal(b[i].Default) {
			return false
		}
	}

	return true
}
