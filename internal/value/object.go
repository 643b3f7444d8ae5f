package value

import "fmt"

// Object is a string-keyed map that remembers insertion order.
type Object struct {
	keys   []string
	values map[string]*Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]*Value)}
}

// Set stores v under key. An existing key keeps its original position.
func (o *Object) Set(key string, v *Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = v
}

// Get returns the value under key.
func (o *Object) Get(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}

	v, ok := o.values[key]

	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.keys)
}

// Pairs builds an Object from alternating key/value arguments. It is meant
// for tests and literals and panics on a malformed argument list.
func Pairs(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("value.Pairs: odd argument count %d", len(kv)))
	}

	o := NewObject()

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("value.Pairs: argument %d is %T, want string", i, kv[i]))
		}

		v, ok := kv[i+1].(*Value)
		if !ok {
			panic(fmt.Sprintf("value.Pairs: argument %d is %T, want *Value", i+1, kv[i+1]))
		}

		o.Set(key, v)
	}

	return o
}
