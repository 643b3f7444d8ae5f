package attach

import (
	"flag"
	"fmt"
	"go/token"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"

	"confstruct/internal/errors"
	"confstruct/internal/match"
)

// Prefix starts every directive comment.
const Prefix = "//confstruct:generate"

// Directive is one parsed generation request. Paths are relative to the
// directory of the file holding it.
type Directive struct {
	Type    string
	File    string
	Format  string
	Package string
	Output  string
	Pos     token.Position
}

// DirectiveError reports a malformed directive.
type DirectiveError struct {
	Pos   token.Position
	Cause error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: invalid directive: %v", e.Pos, e.Cause)
}

func (e *DirectiveError) Unwrap() error { return e.Cause }

// IsDirective reports whether a comment line is a directive.
func IsDirective(comment string) bool {
	rest, ok := strings.CutPrefix(comment, Prefix)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// ParseDirective parses a directive comment. Arguments use shell quoting
// and go-style flags: -type=Name -file=path [-format=tag] [-package=name]
// [-output=path].
func ParseDirective(comment string, pos token.Position) (*Directive, error) {
	if !IsDirective(comment) {
		return nil, &DirectiveError{Pos: pos, Cause: errors.Newf("missing %s prefix", Prefix)}
	}

	args, err := shellquote.Split(strings.TrimPrefix(comment, Prefix))
	if err != nil {
		return nil, &DirectiveError{Pos: pos, Cause: err}
	}

	d := &Directive{Pos: pos}

	fs := flag.NewFlagSet(Prefix, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&d.Type, "type", "", "generated root type name")
	fs.StringVar(&d.File, "file", "", "configuration file")
	fs.StringVar(&d.Format, "format", "", "format override")
	fs.StringVar(&d.Package, "package", "", "package clause override")
	fs.StringVar(&d.Output, "output", "", "output file")

	if err := fs.Parse(args); err != nil {
		return nil, &DirectiveError{Pos: pos, Cause: withFlagHint(fs, args, err)}
	}

	if fs.NArg() > 0 {
		return nil, &DirectiveError{Pos: pos, Cause: errors.Newf("unexpected arguments %q", fs.Args())}
	}

	switch {
	case d.Type == "":
		return nil, &DirectiveError{Pos: pos, Cause: errors.WithHint(errors.New("-type is required"),
			"example: "+Prefix+" -type=Config -file=config.json")}
	case d.File == "":
		return nil, &DirectiveError{Pos: pos, Cause: errors.New("-file is required")}
	}

	return d, nil
}

// withFlagHint attaches a "did you mean" hint to err when one of args names
// an undefined flag close to a known one.
func withFlagHint(fs *flag.FlagSet, args []string, err error) error {
	var known []string
	fs.VisitAll(func(f *flag.Flag) { known = append(known, f.Name) })

	for _, arg := range args {
		name, ok := strings.CutPrefix(arg, "-")
		if !ok {
			continue
		}

		name, _, _ = strings.Cut(strings.TrimPrefix(name, "-"), "=")
		if fs.Lookup(name) != nil {
			continue
		}

		if hint := match.Hint(name, known, "did you mean -%s?"); hint != "" {
			return errors.WithHint(err, hint)
		}
	}

	return err
}
