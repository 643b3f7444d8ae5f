package attach

import (
	"bytes"
	"context"
	"os"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"confstruct/internal/diagnostic"
	"confstruct/internal/errors"
	"confstruct/internal/format"
	"confstruct/internal/gen"
	"confstruct/internal/logger"
)

// Options tune rendering and parallelism.
type Options struct {
	Header   bool
	Comments bool
	// Workers bounds the attachments processed at once. Values below 1 mean 1.
	Workers int
}

// Result collects the outcome of a run.
type Result struct {
	// Written lists output files that were created or changed.
	Written []string
	// Unchanged lists output files whose content was already current.
	Unchanged []string
	// Diagnostics holds one error per failed attachment, or one stale
	// report per outdated file in check mode.
	Diagnostics diagnostic.Diagnostics
}

// Driver runs attachments.
type Driver struct {
	reader Reader
	opts   Options
}

// NewDriver creates a Driver. A nil reader means OSReader.
func NewDriver(reader Reader, opts Options) *Driver {
	if reader == nil {
		reader = OSReader{}
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Driver{reader: reader, opts: opts}
}

// Generate produces the formatted source for one attachment without
// writing it. A render failure leaves an unformatted sidecar next to the
// output for inspection.
func (d *Driver) Generate(a Attachment) ([]byte, error) {
	return d.generate(a, a.Output)
}

// generate renders a; sidecarPath receives unformatted text on a render
// failure, none when empty.
func (d *Driver) generate(a Attachment, sidecarPath string) ([]byte, error) {
	content, err := d.reader.ReadFile(a.Source)
	if err != nil {
		return nil, &FileReadError{Path: a.Source, Cause: err}
	}

	tree, err := format.Parse(content, format.ResolveTag(a.Source, a.Format))
	if err != nil {
		return nil, err
	}

	m, err := gen.Synthesize(tree, a.Type, gen.Options{
		Package:    a.Package,
		Source:     a.HeaderSource(),
		Header:     d.opts.Header,
		Comments:   d.opts.Comments,
		OutputPath: sidecarPath,
	})
	if err != nil {
		return nil, err
	}

	return gen.Render(m)
}

// Run generates and writes every attachment. Failures are reported as
// diagnostics; they never stop the other attachments. Run returns early
// only when ctx is cancelled.
func (d *Driver) Run(ctx context.Context, attachments []Attachment) Result {
	return d.each(ctx, attachments, func(a Attachment, res *collector) {
		src, err := d.Generate(a)
		if err != nil {
			res.fail(a, err)
			return
		}

		written, err := gen.WriteFile(a.Output, src)
		if err != nil {
			res.fail(a, &WriteError{Path: a.Output, Cause: err})
			return
		}

		res.done(a.Output, written)
	})
}

// Check regenerates every attachment in memory and reports the output files
// that are missing or differ from the generated text. It writes nothing.
func (d *Driver) Check(ctx context.Context, attachments []Attachment) Result {
	return d.each(ctx, attachments, func(a Attachment, res *collector) {
		src, err := d.generate(a, "")
		if err != nil {
			res.fail(a, err)
			return
		}

		current, err := os.ReadFile(a.Output)
		if err == nil && bytes.Equal(current, src) {
			res.done(a.Output, false)
			return
		}

		reason := "generated file is out of date"
		if errors.Is(err, os.ErrNotExist) {
			reason = "generated file does not exist"
		}

		res.add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeStale,
			Message:  reason,
			Position: a.Position,
			Type:     a.Type,
			File:     a.Output,
			Hints:    []string{"run confstruct scan to regenerate"},
		})
	})
}

func (d *Driver) each(ctx context.Context, attachments []Attachment, fn func(Attachment, *collector)) Result {
	res := &collector{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)

	for _, a := range attachments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			logger.Debugw("Processing attachment",
				"type", a.Type,
				"source", a.Source,
				"output", a.Output)

			fn(a, res)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warnw("Run interrupted", "error", err)
	}

	return res.result()
}

// collector guards a Result shared by the workers of one run.
type collector struct {
	mu  sync.Mutex
	res Result
}

func (c *collector) done(path string, written bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if written {
		c.res.Written = append(c.res.Written, path)
	} else {
		c.res.Unchanged = append(c.res.Unchanged, path)
	}
}

func (c *collector) fail(a Attachment, err error) {
	diag := Diagnose(a, err)

	logger.Warnw("Attachment failed",
		"type", a.Type,
		"position", a.Position,
		"code", diag.Code,
		"error", err)

	c.add(diag)
}

func (c *collector) add(diag diagnostic.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.res.Diagnostics.Add(diag)
}

func (c *collector) result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.res
	res.Diagnostics.Sort()
	slices.Sort(res.Written)
	slices.Sort(res.Unchanged)

	return res
}
