package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"confstruct/internal/common"
	"confstruct/internal/errors"
)

// Diagnostic codes.
const (
	CodeFileRead          = "file-read"
	CodeUnsupportedFormat = "unsupported-format"
	CodeParse             = "parse"
	CodeShape             = "shape"
	CodeConversion        = "conversion"
	CodeNameCollision     = "name-collision"
	CodeInvalidName       = "invalid-name"
	CodeDirective         = "directive"
	CodeRender            = "render"
	CodeWrite             = "write"
	CodeStale             = "stale"
)

// Diagnostics holds all diagnostic information from a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Position is the directive location, e.g. "config.go:12:1".
	Position string
	// Type is the generated root type the diagnostic belongs to.
	Type string
	// File is the configuration file involved.
	File string
	// FieldPath is the path inside the configuration file (if any).
	FieldPath string
	// Hints are potential fixes.
	Hints []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, position, file string) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Position: position, File: file})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, position, file string) {
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Position: position, File: file})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, position, file string) {
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, Position: position, File: file})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Sort orders every list by position, then code. Parallel runs append in
// completion order; sorting makes reports reproducible.
func (d *Diagnostics) Sort() {
	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Position != list[j].Position {
				return list[i].Position < list[j].Position
			}

			return list[i].Code < list[j].Code
		})
	}
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.Newf("%d attachment(s) failed: %s", len(d.Errors), strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Position != "" {
		prefix = append(prefix, d.Position)
	}

	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.File != "" {
		where := d.File
		if d.FieldPath != "" {
			where += " at " + d.FieldPath
		}

		msg += " (" + where + ")"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
