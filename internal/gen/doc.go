// Package gen synthesizes Go declarations from a configuration value tree.
//
// For every object met in the tree it emits one struct with tagged fields,
// an all-defaults constructor, a value-populated constructor, Equal and
// Clone. The root struct also gets IsEmpty. Structs are emitted after the
// structs they reference, and the root comes last.
//
// Rendering uses text/template + go/format; imports and the generic pointer
// helper are emitted only when the rendered code needs them.
package gen
