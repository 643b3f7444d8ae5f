package attach

import (
	"path/filepath"

	"confstruct/internal/common"
	"confstruct/internal/config"
	"confstruct/internal/gen"
)

// Attachment is a directive or job resolved against its directory.
type Attachment struct {
	// Type is the root type name.
	Type string
	// Source is the path of the configuration file, absolute for
	// directives and jobs.
	Source string
	// Format overrides the extension-based format when set.
	Format string
	// Package is the package clause of the generated file.
	Package string
	// Output is the absolute path of the generated file, empty when the
	// result is printed instead.
	Output string
	// Position is where the request came from, e.g. "config.go:3:1" or
	// "confstruct.yaml:jobs[0]".
	Position string
}

// Defaults fill the fields a directive or job leaves empty.
type Defaults struct {
	Package string
	Suffix  string
}

// DefaultsFromConfig picks the attachment defaults out of cfg.
func DefaultsFromConfig(cfg *config.Config) Defaults {
	return Defaults{Package: cfg.Package, Suffix: cfg.Suffix}
}

// Resolve turns a directive found in a file of package pkgName into an
// attachment.
func (d *Directive) Resolve(pkgName string, defs Defaults) Attachment {
	dir := filepath.Dir(d.Pos.Filename)

	pkg := d.Package
	if pkg == "" {
		pkg = defs.Package
	}

	if pkg == "" {
		pkg = pkgName
	}

	return Attachment{
		Type:     d.Type,
		Source:   absJoin(dir, d.File),
		Format:   d.Format,
		Package:  pkg,
		Output:   outputPath(dir, d.Output, d.Type, defs.Suffix),
		Position: d.Pos.String(),
	}
}

// FromJob turns a configured job into an attachment. Paths are relative
// to baseDir.
func FromJob(job config.Job, baseDir, position string, defs Defaults) Attachment {
	out := outputPath(baseDir, job.Output, job.Type, defs.Suffix)

	pkg := job.Package
	if pkg == "" {
		pkg = defs.Package
	}

	if pkg == "" {
		pkg = common.PkgNameFromDir(filepath.Dir(out))
	}

	return Attachment{
		Type:     job.Type,
		Source:   absJoin(baseDir, job.File),
		Format:   job.Format,
		Package:  pkg,
		Output:   out,
		Position: position,
	}
}

// HeaderSource is the source path written into the generated header,
// relative to the output directory when possible.
func (a Attachment) HeaderSource() string {
	if a.Output == "" {
		return filepath.ToSlash(a.Source)
	}

	rel, err := filepath.Rel(filepath.Dir(a.Output), a.Source)
	if err != nil {
		return filepath.ToSlash(a.Source)
	}

	return filepath.ToSlash(rel)
}

func outputPath(dir, output, typeName, suffix string) string {
	if output != "" {
		return absJoin(dir, output)
	}

	return absJoin(dir, gen.OutputName(typeName, suffix))
}

func absJoin(dir, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}

	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}

	return filepath.Clean(p)
}
