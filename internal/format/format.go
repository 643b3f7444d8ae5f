package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"confstruct/internal/common"
	"confstruct/internal/value"
)

// Format is a canonical format name.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Formats lists the canonical formats in a stable order.
var Formats = []Format{JSON, YAML, TOML}

var aliases = map[string]Format{
	"json": JSON,
	"yaml": YAML,
	"yml":  YAML,
	"toml": TOML,
}

var parsers = map[Format]func([]byte) (*value.Value, error){
	JSON: parseJSON,
	YAML: parseYAML,
	TOML: parseTOML,
}

// Tags returns every accepted format tag, sorted.
func Tags() []string {
	return common.SortedKeys(aliases)
}

// UnsupportedFormatError is returned for a tag with no parser.
type UnsupportedFormatError struct {
	Tag string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Tag == "" {
		return "unsupported format: no format given and the file has no extension"
	}

	return fmt.Sprintf("unsupported format %q", e.Tag)
}

// ParseError wraps a backend diagnostic for malformed content.
type ParseError struct {
	Format Format
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Format, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ResolveTag returns the format tag for a file: override verbatim when set,
// otherwise the extension of path without the dot (empty when none).
func ResolveTag(path, override string) string {
	if override != "" {
		return override
	}

	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Lookup maps a tag to its canonical Format. Tags match exactly: "JSON" or
// ".json" are unsupported.
func Lookup(tag string) (Format, error) {
	f, ok := aliases[tag]
	if !ok {
		return "", &UnsupportedFormatError{Tag: tag}
	}

	return f, nil
}

// Parse parses content in the format named by tag.
func Parse(content []byte, tag string) (*value.Value, error) {
	f, err := Lookup(tag)
	if err != nil {
		return nil, err
	}

	v, err := parsers[f](content)
	if err != nil {
		return nil, &ParseError{Format: f, Cause: err}
	}

	return v, nil
}
