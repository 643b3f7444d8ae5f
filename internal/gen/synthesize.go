package gen

import (
	"fmt"
	"go/token"

	"confstruct/internal/errors"
	"confstruct/internal/infer"
	"confstruct/internal/naming"
	"confstruct/internal/value"
)

// Options controls how a Module is rendered.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Source is the configuration file path recorded in the header.
	Source string
	// Header enables the "Code generated" header comment.
	Header bool
	// Comments enables doc comments on generated declarations.
	Comments bool
	// OutputPath is where the file will be written. When set, a failed
	// gofmt pass leaves the unformatted text next to it.
	OutputPath string
}

// Module is the set of declarations generated for one root type.
type Module struct {
	Options Options
	// Root is the top-level struct. It is also the last element of Structs.
	Root *StructDef
	// Structs lists every struct, each after the structs it references.
	Structs []*StructDef
}

// StructDef is one generated struct.
type StructDef struct {
	Name   string
	Fields []infer.Field
	// Path is the origin path in the source, empty for the root.
	Path   string
	IsRoot bool
}

// Lookup returns the struct with the given name.
func (m *Module) Lookup(name string) (*StructDef, bool) {
	for _, s := range m.Structs {
		if s.Name == name {
			return s, true
		}
	}

	return nil, false
}

// Exported reports whether the type and its constructors are exported.
func (s *StructDef) Exported() bool { return naming.IsExported(s.Name) }

// DefaultFunc is the name of the all-defaults constructor.
func (s *StructDef) DefaultFunc() string { return s.constructor("Default") }

// NewFunc is the name of the value-populated constructor.
func (s *StructDef) NewFunc() string { return s.constructor("New") }

func (s *StructDef) constructor(prefix string) string {
	if s.Exported() {
		return prefix + s.Name
	}

	return naming.Unexport(prefix) + naming.Capitalize(s.Name)
}

// InvalidNameError is returned when the requested type name or the package
// clause cannot be used in the generated file.
type InvalidNameError struct {
	// Kind is "type" or "package".
	Kind   string
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	msg := fmt.Sprintf("invalid %s name %q", e.Kind, e.Name)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

// importedPackages are the packages generated code may import. A root type
// with one of these names would shadow the import.
var importedPackages = map[string]bool{
	"math":    true,
	"reflect": true,
	"slices":  true,
}

// DuplicateDeclarationError is returned when two generated top-level
// declarations would share a name.
type DuplicateDeclarationError struct {
	Name string
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("generated declaration %s is declared twice", e.Name)
}

// Synthesize infers the struct set of root and returns it in emission order.
func Synthesize(root *value.Value, name string, opts Options) (*Module, error) {
	if name == "_" || !token.IsIdentifier(name) {
		return nil, &InvalidNameError{Kind: "type", Name: name, Reason: "not a Go identifier"}
	}

	if importedPackages[name] {
		return nil, errors.WithHint(
			&InvalidNameError{Kind: "type", Name: name, Reason: "shadows the " + name + " import"},
			"pick another -type, e.g. "+naming.Capitalize(name))
	}

	in := infer.NewInferrer()

	rootInfo, err := in.Root(root, name)
	if err != nil {
		return nil, err
	}

	infos := in.Registry().Structs()

	index := make(map[string]int, len(infos))
	for i, s := range infos {
		index[s.Name] = i
	}

	order, err := topoSort(len(infos), func(i int) []int {
		var deps []int

		for _, f := range infos[i].Fields {
			for _, ref := range structRefs(f.Type, nil) {
				if j, ok := index[ref]; ok && j != i {
					deps = append(deps, j)
				}
			}
		}

		return deps
	})
	if err != nil {
		return nil, errors.AssertionFailedf("ordering structs of %s: %v", name, err)
	}

	m := &Module{Options: opts}

	for _, i := range order {
		def := &StructDef{
			Name:   infos[i].Name,
			Fields: infos[i].Fields,
			Path:   infos[i].Path,
			IsRoot: infos[i] == rootInfo,
		}
		if def.IsRoot {
			m.Root = def
		}

		m.Structs = append(m.Structs, def)
	}

	if m.Root == nil || m.Structs[len(m.Structs)-1] != m.Root {
		return nil, errors.AssertionFailedf("root struct %s is not emitted last", name)
	}

	if pkg := packageName(m); pkg == "_" || !token.IsIdentifier(pkg) {
		return nil, errors.WithHint(
			&InvalidNameError{Kind: "package", Name: pkg, Reason: "not a Go identifier"},
			"set -package in the directive or package in the config")
	}

	if err := checkDeclarations(m); err != nil {
		return nil, err
	}

	return m, nil
}

// structRefs appends the struct names referenced by t.
func structRefs(t *infer.Type, acc []string) []string {
	switch {
	case t == nil:
		return acc
	case t.Kind == infer.TypeStruct:
		return append(acc, t.Name)
	default:
		return structRefs(t.Elem, acc)
	}
}

// ptrHelperName is the generic pointer helper of the module.
func ptrHelperName(m *Module) string {
	return naming.Unexport(m.Root.Name) + "Ptr"
}

func checkDeclarations(m *Module) error {
	seen := map[string]bool{ptrHelperName(m): true}

	for _, s := range m.Structs {
		for _, decl := range []string{s.Name, s.DefaultFunc(), s.NewFunc()} {
			if seen[decl] {
				return &DuplicateDeclarationError{Name: decl}
			}

			seen[decl] = true
		}
	}

	return nil
}
