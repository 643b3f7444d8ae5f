// Package infer derives Go field types and default value expressions from a
// value tree.
//
// Mapping rules:
//   - null -> *string, nil
//   - bool, int64, uint64, float64, string -> the literal
//   - array -> slice of the first element's type; every element is converted
//     against that type, empty arrays become []any
//   - {"opt_some": x} -> pointer to x's type, present
//   - {"opt_none": x} -> pointer to x's type, absent
//   - any other object -> a named struct, registered in the Registry
//
// Struct names are composite names of the path from the root (see package
// naming). The Registry records each struct once, in depth-first pre-order.
package infer
