package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstruct/internal/errors"
	"confstruct/internal/infer"
	"confstruct/internal/value"
)

func scenario() *value.Value {
	return value.Obj(value.Pairs(
		"data", value.Str("test"),
		"count", value.Int(3),
		"nested", value.Obj(value.Pairs("flag", value.Bool(true))),
	))
}

func structNames(m *Module) []string {
	names := make([]string, len(m.Structs))
	for i, s := range m.Structs {
		names[i] = s.Name
	}

	return names
}

func TestSynthesize_Scenario(t *testing.T) {
	m, err := Synthesize(scenario(), "Cfg", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"CfgNested", "Cfg"}, structNames(m))
	assert.Same(t, m.Root, m.Structs[1])
	assert.True(t, m.Root.IsRoot)
	assert.False(t, m.Structs[0].IsRoot)

	require.Len(t, m.Root.Fields, 3)
	assert.Equal(t, "Data", m.Root.Fields[0].Name)
	assert.Equal(t, "Count", m.Root.Fields[1].Name)
	assert.Equal(t, "Nested", m.Root.Fields[2].Name)
	assert.True(t, m.Root.Fields[2].Type.Equal(infer.Struct("CfgNested")))
	assert.Equal(t, "nested", m.Structs[0].Path)
}

func TestSynthesize_DependenciesFirst(t *testing.T) {
	root := value.Obj(value.Pairs(
		"a", value.Obj(value.Pairs("x", value.Obj(value.Pairs("k", value.Int(1))))),
		"b", value.Obj(value.Pairs("k", value.Int(2))),
		"c", value.Arr(value.Obj(value.Pairs("k", value.Int(3)))),
	))

	m, err := Synthesize(root, "Cfg", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"CfgAX", "CfgA", "CfgB", "CfgC", "Cfg"}, structNames(m))
}

func TestSynthesize_Constructors(t *testing.T) {
	tests := []struct {
		name        string
		defaultFunc string
		newFunc     string
		nested      string
	}{
		{"Cfg", "DefaultCfg", "NewCfg", "DefaultCfgNested"},
		{"cfg", "defaultCfg", "newCfg", "defaultCfgNested"},
		{"appConfig", "defaultAppConfig", "newAppConfig", "defaultAppConfigNested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Synthesize(scenario(), tt.name, Options{})
			require.NoError(t, err)

			assert.Equal(t, tt.defaultFunc, m.Root.DefaultFunc())
			assert.Equal(t, tt.newFunc, m.Root.NewFunc())
			assert.Equal(t, tt.nested, m.Structs[0].DefaultFunc())
			assert.Equal(t, tt.name == "Cfg", m.Root.Exported())
		})
	}
}

func TestSynthesize_InvalidName(t *testing.T) {
	for _, name := range []string{"", "_", "1cfg", "my-cfg", "func"} {
		t.Run(name, func(t *testing.T) {
			_, err := Synthesize(scenario(), name, Options{})

			var nameErr *InvalidNameError
			require.True(t, errors.As(err, &nameErr), "got %v", err)
			assert.Equal(t, name, nameErr.Name)
		})
	}
}

func TestSynthesize_ImportNamesRejected(t *testing.T) {
	for _, name := range []string{"math", "reflect", "slices"} {
		t.Run(name, func(t *testing.T) {
			_, err := Synthesize(scenario(), name, Options{})

			var nameErr *InvalidNameError
			require.True(t, errors.As(err, &nameErr), "got %v", err)
			assert.Equal(t, "type", nameErr.Kind)
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}

	_, err := Synthesize(scenario(), "Math", Options{})
	assert.NoError(t, err)
}

func TestSynthesize_InvalidPackage(t *testing.T) {
	tests := []struct {
		name string
		pkg  string
		root string
	}{
		{"dash", "my-pkg", "Cfg"},
		{"keyword", "map", "Cfg"},
		{"blank", "_", "Cfg"},
		{"spaces", "not a package", "Cfg"},
		{"default from keyword root", "", "Map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Synthesize(scenario(), tt.root, Options{Package: tt.pkg})

			var nameErr *InvalidNameError
			require.True(t, errors.As(err, &nameErr), "got %v", err)
			assert.Equal(t, "package", nameErr.Kind)
		})
	}
}

func TestSynthesize_NonObjectRoot(t *testing.T) {
	for _, root := range []*value.Value{value.Arr(value.Int(1)), value.Str("x"), value.Bool(true)} {
		_, err := Synthesize(root, "Cfg", Options{})

		var shapeErr *infer.ShapeError
		assert.True(t, errors.As(err, &shapeErr), "root %s: got %v", root.Kind, err)
	}
}

func TestSynthesize_NullRoot(t *testing.T) {
	m, err := Synthesize(value.Null(), "Cfg", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Cfg"}, structNames(m))
	assert.Empty(t, m.Root.Fields)
}

func TestSynthesize_InferenceErrorsPropagate(t *testing.T) {
	root := value.Obj(value.Pairs("list", value.Arr(value.Int(1), value.Str("two"))))

	_, err := Synthesize(root, "Cfg", Options{})

	var convErr *infer.ConversionError
	require.True(t, errors.As(err, &convErr), "got %v", err)
	assert.Equal(t, "list[1]", convErr.Path)
}

func TestSynthesize_DuplicateDeclaration(t *testing.T) {
	root := value.Obj(value.Pairs("default", value.Obj(value.Pairs("x", value.Int(1)))))

	_, err := Synthesize(root, "Default", Options{})

	var dupErr *DuplicateDeclarationError
	require.True(t, errors.As(err, &dupErr), "got %v", err)
	assert.Equal(t, "DefaultDefault", dupErr.Name)
}

func TestStructRefs(t *testing.T) {
	typ := infer.List(infer.Optional(infer.Struct("CfgItems")))
	assert.Equal(t, []string{"CfgItems"}, structRefs(typ, nil))
	assert.Empty(t, structRefs(infer.List(infer.Int64), nil))
}

func TestModuleLookup(t *testing.T) {
	m, err := Synthesize(scenario(), "Cfg", Options{})
	require.NoError(t, err)

	s, ok := m.Lookup("CfgNested")
	require.True(t, ok)
	assert.Equal(t, "NewCfgNested", s.NewFunc())

	_, ok = m.Lookup("Missing")
	assert.False(t, ok)
}

func TestDescribeValue(t *testing.T) {
	root := value.Obj(value.Pairs(
		"servers", value.Arr(value.Obj(value.Pairs("name", value.Str("a b")))),
		"port", value.Obj(value.Pairs("opt_some", value.Int(1))),
	))

	m, err := Synthesize(root, "Cfg", Options{})
	require.NoError(t, err)

	assert.Equal(t, `[]CfgServers{ {Name: "a b"}, }`, DescribeValue(m, m.Root.Fields[0].Default))
	assert.Equal(t, "cfgPtr[int64](1)", DescribeValue(m, m.Root.Fields[1].Default))
}
