// Package value defines the format-agnostic value tree produced by the
// format parsers and consumed by inference.
//
// Key types:
//   - Value: tagged union over Null, Bool, Number, String, Array, Object
//   - Number: integer-or-float preserving the int64/uint64/float64 distinction
//   - Object: insertion-ordered string-keyed map
package value
