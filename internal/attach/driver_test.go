package attach

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstruct/internal/diagnostic"
)

// mapReader serves files from memory.
type mapReader map[string]string

func (m mapReader) ReadFile(path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return []byte(content), nil
}

const scenarioJSON = `{"data": "test", "count": 3, "nested": {"flag": true}}`

func attachment(dir, typeName, source, format string) Attachment {
	return Attachment{
		Type:     typeName,
		Source:   filepath.Join(dir, source),
		Format:   format,
		Package:  "example",
		Output:   filepath.Join(dir, strings.ToLower(typeName)+"_confstruct.go"),
		Position: "config.go:" + typeName,
	}
}

func TestDriverRun_WritesFile(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "testdata/struct.json", "")
	d := NewDriver(mapReader{a.Source: scenarioJSON}, Options{Header: true})

	res := d.Run(context.Background(), []Attachment{a})
	require.True(t, res.Diagnostics.IsValid(), res.Diagnostics.All())
	assert.Equal(t, []string{a.Output}, res.Written)

	src, err := os.ReadFile(a.Output)
	require.NoError(t, err)
	assert.Contains(t, string(src), "// Code generated by confstruct from testdata/struct.json. DO NOT EDIT.")
	assert.Contains(t, string(src), "func NewCfg() Cfg")

	again := d.Run(context.Background(), []Attachment{a})
	assert.Empty(t, again.Written)
	assert.Equal(t, []string{a.Output}, again.Unchanged)
}

func TestDriverRun_FailureIsIsolated(t *testing.T) {
	dir := t.TempDir()
	good := attachment(dir, "Good", "good.json", "")
	missing := attachment(dir, "Missing", "missing.json", "")

	d := NewDriver(mapReader{good.Source: scenarioJSON}, Options{Workers: 2})

	res := d.Run(context.Background(), []Attachment{missing, good})

	assert.Equal(t, []string{good.Output}, res.Written)
	require.Len(t, res.Diagnostics.Errors, 1)

	diag := res.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeFileRead, diag.Code)
	assert.Equal(t, missing.Source, diag.File)
	assert.Equal(t, missing.Position, diag.Position)
	assert.Contains(t, diag.String(), "missing.json")

	_, err := os.Stat(missing.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestDriverRun_DiagnosticCodes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		source    string
		format    string
		content   string
		typeName  string
		code      string
		fieldPath string
	}{
		{"unsupported format", "a.xml", "", `<a/>`, "Cfg", diagnostic.CodeUnsupportedFormat, ""},
		{"no extension", "config", "", `{}`, "Cfg", diagnostic.CodeUnsupportedFormat, ""},
		{"parse", "a.json", "", `{"a":`, "Cfg", diagnostic.CodeParse, ""},
		{"override wins", "a.conf", "yaml", `{"a":`, "Cfg", diagnostic.CodeParse, ""},
		{"shape", "a.json", "", `[1, 2]`, "Cfg", diagnostic.CodeShape, ""},
		{"conversion", "a.json", "", `{"ports": [1, "x"]}`, "Cfg", diagnostic.CodeConversion, "ports[1]"},
		{"collision", "a.json", "", `{"a": {"b": {"x": 1}}, "a_b": {"y": 2}}`, "Cfg", diagnostic.CodeNameCollision, "a_b"},
		{"invalid name", "a.json", "", `{}`, "my-cfg", diagnostic.CodeInvalidName, ""},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := attachment(dir, tt.typeName, fmt.Sprintf("%d/%s", i, tt.source), tt.format)
			d := NewDriver(mapReader{a.Source: tt.content}, Options{})

			res := d.Run(context.Background(), []Attachment{a})
			require.Len(t, res.Diagnostics.Errors, 1)
			assert.Equal(t, tt.code, res.Diagnostics.Errors[0].Code, res.Diagnostics.Errors[0].String())
			assert.Equal(t, tt.fieldPath, res.Diagnostics.Errors[0].FieldPath)
			assert.Empty(t, res.Written)
		})
	}
}

func TestDriverRun_FormatOverride(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "struct.conf", "json")
	d := NewDriver(mapReader{a.Source: scenarioJSON}, Options{})

	res := d.Run(context.Background(), []Attachment{a})
	require.True(t, res.Diagnostics.IsValid(), res.Diagnostics.All())
}

func TestDriverRun_ManyAttachmentsInParallel(t *testing.T) {
	dir := t.TempDir()
	files := mapReader{}

	var atts []Attachment
	for i := range 12 {
		a := attachment(dir, fmt.Sprintf("Cfg%d", i), fmt.Sprintf("c%d.json", i), "")
		files[a.Source] = scenarioJSON
		atts = append(atts, a)
	}

	res := NewDriver(files, Options{Workers: 4}).Run(context.Background(), atts)
	require.True(t, res.Diagnostics.IsValid())
	assert.Len(t, res.Written, 12)
	assert.IsIncreasing(t, res.Written)
}

func TestDriverRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "a.json", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewDriver(mapReader{a.Source: scenarioJSON}, Options{}).Run(ctx, []Attachment{a})
	assert.Empty(t, res.Written)

	_, err := os.Stat(a.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestDriverCheck(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "a.json", "")
	files := mapReader{a.Source: scenarioJSON}
	d := NewDriver(files, Options{Header: true})

	res := d.Check(context.Background(), []Attachment{a})
	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeStale, res.Diagnostics.Errors[0].Code)
	assert.Equal(t, "generated file does not exist", res.Diagnostics.Errors[0].Message)

	d.Run(context.Background(), []Attachment{a})

	res = d.Check(context.Background(), []Attachment{a})
	assert.True(t, res.Diagnostics.IsValid())
	assert.Equal(t, []string{a.Output}, res.Unchanged)

	files[a.Source] = `{"data": "changed"}`

	res = d.Check(context.Background(), []Attachment{a})
	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, "generated file is out of date", res.Diagnostics.Errors[0].Message)
}

func TestDiagnose_SuggestsFormat(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "struct.conf", "yamll")
	d := NewDriver(mapReader{a.Source: "a: 1"}, Options{})

	res := d.Run(context.Background(), []Attachment{a})
	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, []string{"did you mean -format=yaml?", "pass -format=json, yaml or toml"},
		res.Diagnostics.Errors[0].Hints)
}

func TestDiagnose_UpperCaseFormatIsUnsupported(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "struct.conf", "JSON")
	d := NewDriver(mapReader{a.Source: scenarioJSON}, Options{})

	res := d.Run(context.Background(), []Attachment{a})
	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnsupportedFormat, res.Diagnostics.Errors[0].Code)
	assert.Contains(t, res.Diagnostics.Errors[0].Hints, "did you mean -format=json?")
	assert.Empty(t, res.Written)
}

func TestDriver_InvalidPackageWritesNothing(t *testing.T) {
	for _, pkg := range []string{"my-pkg", "map"} {
		t.Run(pkg, func(t *testing.T) {
			dir := t.TempDir()
			a := attachment(dir, "Cfg", "c.json", "")
			a.Package = pkg
			d := NewDriver(mapReader{a.Source: scenarioJSON}, Options{Header: true})

			for _, res := range []Result{
				d.Run(context.Background(), []Attachment{a}),
				d.Check(context.Background(), []Attachment{a}),
			} {
				require.Len(t, res.Diagnostics.Errors, 1)
				assert.Equal(t, diagnostic.CodeInvalidName, res.Diagnostics.Errors[0].Code)
				assert.Contains(t, res.Diagnostics.Errors[0].Message, "package")
				assert.NotEmpty(t, res.Diagnostics.Errors[0].Hints)
			}

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestDriverRun_EmptyDocumentGivesEmptyStruct(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "empty.yaml", "")
	d := NewDriver(mapReader{a.Source: "# nothing yet\n"}, Options{})

	res := d.Run(context.Background(), []Attachment{a})
	require.True(t, res.Diagnostics.IsValid(), res.Diagnostics.All())
	require.Equal(t, []string{a.Output}, res.Written)

	content, err := os.ReadFile(a.Output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "type Cfg struct")
	assert.Contains(t, string(content), "func NewCfg() Cfg")
}
