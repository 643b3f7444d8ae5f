package attach

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstruct/internal/errors"
)

func TestIsDirective(t *testing.T) {
	assert.True(t, IsDirective("//confstruct:generate -type=X -file=a.json"))
	assert.True(t, IsDirective("//confstruct:generate"))
	assert.False(t, IsDirective("// confstruct:generate -type=X"))
	assert.False(t, IsDirective("//confstruct:generated"))
	assert.False(t, IsDirective("//go:generate confstruct"))
}

func TestParseDirective(t *testing.T) {
	pos := token.Position{Filename: "config.go", Line: 3, Column: 1}

	tests := []struct {
		name    string
		comment string
		want    Directive
	}{
		{
			name:    "minimal",
			comment: "//confstruct:generate -type=Config -file=testdata/struct.json",
			want:    Directive{Type: "Config", File: "testdata/struct.json", Pos: pos},
		},
		{
			name:    "override and output",
			comment: "//confstruct:generate -type=cfg -file=testdata/struct.conf -format=json -output=cfg_gen.go -package=settings",
			want: Directive{
				Type: "cfg", File: "testdata/struct.conf", Format: "json",
				Output: "cfg_gen.go", Package: "settings", Pos: pos,
			},
		},
		{
			name:    "quoted path",
			comment: `//confstruct:generate -type Config -file "test data/my config.yaml"`,
			want:    Directive{Type: "Config", File: "test data/my config.yaml", Pos: pos},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirective(tt.comment, pos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseDirective_Errors(t *testing.T) {
	tests := []struct {
		name    string
		comment string
	}{
		{"no prefix", "//go:generate -type=X"},
		{"missing type", "//confstruct:generate -file=a.json"},
		{"missing file", "//confstruct:generate -type=X"},
		{"unknown flag", "//confstruct:generate -type=X -file=a.json -mode=fast"},
		{"positional", "//confstruct:generate -type=X -file=a.json extra"},
		{"bad quoting", `//confstruct:generate -type=X -file="a.json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDirective(tt.comment, token.Position{Filename: "x.go", Line: 1})

			var dirErr *DirectiveError
			require.True(t, errors.As(err, &dirErr), "got %v", err)
			assert.Equal(t, "x.go", dirErr.Pos.Filename)
		})
	}
}

func TestParseDirective_UnknownFlagHint(t *testing.T) {
	_, err := ParseDirective("//confstruct:generate -type=X -fille=a.json", token.Position{Filename: "x.go", Line: 1})
	require.Error(t, err)
	assert.Contains(t, errors.GetAllHints(err), "did you mean -file?")

	_, err = ParseDirective("//confstruct:generate -type=X -file=a.json -zzzz", token.Position{Filename: "x.go", Line: 1})
	require.Error(t, err)
	assert.Empty(t, errors.GetAllHints(err))
}
