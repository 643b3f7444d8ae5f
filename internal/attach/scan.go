package attach

import (
	"context"
	"go/token"
	"sort"

	"golang.org/x/tools/go/packages"

	"confstruct/internal/errors"
)

// LoadMode specifies what information to load from packages. Directives
// only need comments, so type checking is skipped and packages whose
// generated files do not exist yet still load.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// Found is a directive with the package it was declared in.
type Found struct {
	Directive *Directive
	Package   string
}

// ScanResult holds the directives of the scanned packages and the
// directives that failed to parse.
type ScanResult struct {
	Found  []Found
	Errors []*DirectiveError
}

// Scan loads the packages matching patterns, relative to dir, and collects
// their directives in file and line order.
func Scan(ctx context.Context, dir string, patterns ...string) (*ScanResult, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Fset:    fset,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.ListError || e.Kind == packages.ParseError {
				errs = append(errs, e)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Newf("package errors: %v", errs)
	}

	res := &ScanResult{}

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, group := range file.Comments {
				for _, c := range group.List {
					if !IsDirective(c.Text) {
						continue
					}

					d, err := ParseDirective(c.Text, fset.Position(c.Pos()))
					if err != nil {
						var dirErr *DirectiveError
						if errors.As(err, &dirErr) {
							res.Errors = append(res.Errors, dirErr)
							continue
						}

						return nil, err
					}

					res.Found = append(res.Found, Found{Directive: d, Package: pkg.Name})
				}
			}
		}
	}

	sort.SliceStable(res.Found, func(i, j int) bool {
		return positionLess(res.Found[i].Directive.Pos, res.Found[j].Directive.Pos)
	})

	return res, nil
}

// Attachments resolves every found directive.
func (r *ScanResult) Attachments(defs Defaults) []Attachment {
	out := make([]Attachment, 0, len(r.Found))
	for _, f := range r.Found {
		out = append(out, f.Directive.Resolve(f.Package, defs))
	}

	return out
}

func positionLess(a, b token.Position) bool {
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}

	return a.Line < b.Line
}
