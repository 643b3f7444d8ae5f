package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"confstruct/internal/errors"
	"confstruct/internal/naming"
)

// Generator is the tool name written into generated headers.
const Generator = "confstruct"

// RenderError wraps a failure to produce valid Go source.
type RenderError struct {
	Cause error
	// Unformatted is the template output when gofmt rejected it.
	Unformatted []byte
}

func (e *RenderError) Error() string { return "rendering generated code: " + e.Cause.Error() }

func (e *RenderError) Unwrap() error { return e.Cause }

type fileData struct {
	Header    string
	Package   string
	Imports   []string
	Structs   []structData
	PtrHelper string
	Comments  bool
}

type structData struct {
	Name        string
	Doc         string
	DefaultFunc string
	NewFunc     string
	IsRoot      bool
	Fields      []fieldData
	Equal       string
	Clones      []string
}

type fieldData struct {
	Name  string
	Type  string
	Tag   string
	Value string
}

var fileTemplate = template.Must(template.New("file").Parse(`
{{- if .Header}}{{.Header}}

{{end -}}
package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{end}}
{{- range .Structs}}
{{if $.Comments}}// {{.Doc}}
{{end -}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}} {{.Tag}}
{{- end}}
}

{{if $.Comments}}// {{.DefaultFunc}} returns a {{.Name}} with every field at its zero value.
{{end -}}
func {{.DefaultFunc}}() {{.Name}} {
	return {{.Name}}{}
}

{{if $.Comments}}// {{.NewFunc}} returns a {{.Name}} holding the values of the source file.
{{end -}}
func {{.NewFunc}}() {{.Name}} {
	return {{.Name}}{
{{- range .Fields}}
		{{.Name}}: {{.Value}},
{{- end}}
	}
}

{{if $.Comments}}// Equal reports whether c and other hold the same values.
{{end -}}
func (c {{.Name}}) Equal(other {{.Name}}) bool {
	return {{.Equal}}
}

{{if $.Comments}}// Clone returns a deep copy of c.
{{end -}}
func (c {{.Name}}) Clone() {{.Name}} {
	out := c
{{- range .Clones}}
	{{.}}
{{- end}}

	return out
}
{{if .IsRoot}}
{{if $.Comments}}// IsEmpty reports whether every field of c is at its zero value.
{{end -}}
func (c {{.Name}}) IsEmpty() bool {
	return c.Equal({{.DefaultFunc}}())
}
{{end}}
{{- end}}
{{- if .PtrHelper}}
{{.PtrHelper}}
{{end}}`))

// Render renders m as a formatted Go source file.
//
// When gofmt rejects the template output, the unformatted text is written
// next to Options.OutputPath (if set) and a *RenderError is returned.
func Render(m *Module) ([]byte, error) {
	if m == nil || m.Root == nil {
		return nil, errors.AssertionFailedf("render: empty module")
	}

	r := newExprRenderer(m)

	data := fileData{
		Package:  packageName(m),
		Comments: m.Options.Comments,
	}

	if m.Options.Header {
		data.Header = header(m.Options.Source)
	}

	for _, s := range m.Structs {
		data.Structs = append(data.Structs, buildStructData(r, s, m.Options.Source))
	}

	if r.usedPtr {
		data.PtrHelper = fmt.Sprintf("func %s[T any](v T) *T { return &v }", r.ptrHelper)
	}

	for imp := range r.imports {
		data.Imports = append(data.Imports, imp)
	}

	slices.Sort(data.Imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if m.Options.OutputPath != "" {
			_ = writeDebugUnformatted(m.Options.OutputPath, buf.Bytes())
		}

		return nil, &RenderError{Cause: err, Unformatted: buf.Bytes()}
	}

	return formatted, nil
}

func buildStructData(r *exprRenderer, s *StructDef, source string) structData {
	sd := structData{
		Name:        s.Name,
		Doc:         structDoc(s, source),
		DefaultFunc: s.DefaultFunc(),
		NewFunc:     s.NewFunc(),
		IsRoot:      s.IsRoot,
	}

	eqs := make([]string, 0, len(s.Fields))

	for _, f := range s.Fields {
		sd.Fields = append(sd.Fields, fieldData{
			Name:  f.Name,
			Type:  f.Type.GoType(),
			Tag:   structTag(f.Key),
			Value: r.value(f.Default),
		})

		eqs = append(eqs, r.equal(f.Type, "c."+f.Name, "other."+f.Name))

		if cp := r.clone(f.Type, "c."+f.Name); cp != "" {
			sd.Clones = append(sd.Clones, "out."+f.Name+" = "+cp)
		}
	}

	sd.Equal = "true"
	if len(eqs) > 0 {
		sd.Equal = strings.Join(eqs, " &&\n\t\t")
	}

	return sd
}

func structDoc(s *StructDef, source string) string {
	switch {
	case s.IsRoot && source != "":
		return fmt.Sprintf("%s holds the configuration read from %s.", s.Name, source)
	case s.IsRoot:
		return fmt.Sprintf("%s holds a generated configuration.", s.Name)
	default:
		return fmt.Sprintf("%s holds the values under %q.", s.Name, s.Path)
	}
}

// structTag renders the json, yaml and toml tags for key. Keys holding a
// backtick fall back to an interpreted string literal.
func structTag(key string) string {
	tag := fmt.Sprintf("json:%s yaml:%s toml:%s", strconv.Quote(key), strconv.Quote(key), strconv.Quote(key))
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}

	return "`" + tag + "`"
}

func header(source string) string {
	if source == "" {
		return fmt.Sprintf("// Code generated by %s. DO NOT EDIT.", Generator)
	}

	return fmt.Sprintf("// Code generated by %s from %s. DO NOT EDIT.", Generator, source)
}

func packageName(m *Module) string {
	if m.Options.Package != "" {
		return m.Options.Package
	}

	return strings.ReplaceAll(naming.SnakeCase(m.Root.Name), "_", "")
}
