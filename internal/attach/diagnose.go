package attach

import (
	"confstruct/internal/diagnostic"
	"confstruct/internal/errors"
	"confstruct/internal/format"
	"confstruct/internal/gen"
	"confstruct/internal/infer"
	"confstruct/internal/match"
)

// Diagnose converts an attachment failure into a diagnostic.
func Diagnose(a Attachment, err error) diagnostic.Diagnostic {
	diag := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeRender,
		Message:  err.Error(),
		Position: a.Position,
		Type:     a.Type,
		File:     a.Source,
		Hints:    errors.GetAllHints(err),
	}

	var (
		readErr      *FileReadError
		writeErr     *WriteError
		dirErr       *DirectiveError
		formatErr    *format.UnsupportedFormatError
		parseErr     *format.ParseError
		shapeErr     *infer.ShapeError
		convErr      *infer.ConversionError
		collisionErr *infer.NameCollisionError
		nameErr      *gen.InvalidNameError
		dupErr       *gen.DuplicateDeclarationError
	)

	switch {
	case errors.As(err, &readErr):
		diag.Code = diagnostic.CodeFileRead
		diag.File = readErr.Path
	case errors.As(err, &writeErr):
		diag.Code = diagnostic.CodeWrite
		diag.File = writeErr.Path
	case errors.As(err, &dirErr):
		diag.Code = diagnostic.CodeDirective
		diag.File = ""
	case errors.As(err, &formatErr):
		diag.Code = diagnostic.CodeUnsupportedFormat
		if hint := match.Hint(formatErr.Tag, format.Tags(), "did you mean -format=%s?"); hint != "" {
			diag.Hints = append(diag.Hints, hint)
		}

		diag.Hints = append(diag.Hints, "pass -format=json, yaml or toml")
	case errors.As(err, &parseErr):
		diag.Code = diagnostic.CodeParse
	case errors.As(err, &shapeErr):
		diag.Code = diagnostic.CodeShape
		diag.FieldPath = shapeErr.Path
	case errors.As(err, &convErr):
		diag.Code = diagnostic.CodeConversion
		diag.FieldPath = convErr.Path
	case errors.As(err, &collisionErr):
		diag.Code = diagnostic.CodeNameCollision
		diag.FieldPath = collisionErr.SecondPath
	case errors.As(err, &nameErr):
		diag.Code = diagnostic.CodeInvalidName
		diag.File = ""
	case errors.As(err, &dupErr):
		diag.Code = diagnostic.CodeNameCollision
	}

	return diag
}

// DiagnoseDirective reports a directive that failed to parse.
func DiagnoseDirective(err *DirectiveError) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeDirective,
		Message:  err.Cause.Error(),
		Position: err.Pos.String(),
		Hints:    errors.GetAllHints(err),
	}
}
