package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"confstruct/internal/attach"
	"confstruct/internal/common"
	"confstruct/internal/diagnostic"
	"confstruct/internal/errors"
)

type genOptions struct {
	file     string
	typeName string
	format   string
	pkg      string
	output   string
	watch    bool
}

func newGenCmd(a *app) *cobra.Command {
	o := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate structs from a file or from the configured jobs",
		Long: `Generate Go structs from one configuration file, or from every job listed
in the project config when no file is given.

Without -o the generated code is printed to stdout.

Examples:
  confstruct gen -f testdata/struct.json -t Config
  confstruct gen -f app.conf --format yaml -t appConfig -p settings -o settings/app_gen.go
  confstruct gen                      # run the jobs of confstruct.yaml
  confstruct gen --watch              # and keep them up to date`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGen(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Configuration file (default: run the configured jobs)")
	cmd.Flags().StringVarP(&o.typeName, "type", "t", "Config", "Root type name; lower-case makes the API unexported")
	cmd.Flags().StringVar(&o.format, "format", "", "Format override: json, yaml or toml (default: file extension)")
	cmd.Flags().StringVarP(&o.pkg, "package", "p", "", "Package clause (default: config package, then output directory)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "Regenerate when a configuration file changes")

	return cmd
}

func (a *app) runGen(cmd *cobra.Command, o *genOptions) error {
	atts, err := a.genAttachments(o)
	if err != nil {
		return err
	}

	d := a.driver()

	if o.file != "" && o.output == "" {
		if o.watch {
			return errors.WithHint(errors.New("--watch needs an output file"), "pass -o FILE")
		}

		src, err := d.Generate(atts[0])
		if err != nil {
			printDiagnostics(cmd.ErrOrStderr(), []diagnostic.Diagnostic{attach.Diagnose(atts[0], err)})
			return errors.New("generation failed")
		}

		_, err = cmd.OutOrStdout().Write(src)

		return err
	}

	res := d.Run(cmd.Context(), atts)
	if err := a.report(cmd, res); err != nil && !o.watch {
		return err
	}

	if !o.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return d.Watch(ctx, atts, a.cfg.Watch.Debounce, func(r attach.Result) {
		_ = a.report(cmd, r)
	})
}

// genAttachments builds the attachment of the -f flags, or of every
// configured job.
func (a *app) genAttachments(o *genOptions) ([]attach.Attachment, error) {
	if o.file != "" {
		return []attach.Attachment{a.fileAttachment(o)}, nil
	}

	if len(a.cfg.Jobs) == 0 {
		return nil, errors.WithHint(errors.New("nothing to generate"),
			"pass -f FILE or list jobs in confstruct.yaml")
	}

	base, name := a.workDir, "config"
	if a.cfg.Source != "" {
		base, name = filepath.Dir(a.cfg.Source), filepath.Base(a.cfg.Source)
	}

	defs := attach.DefaultsFromConfig(a.cfg)
	atts := make([]attach.Attachment, 0, len(a.cfg.Jobs))

	for i, job := range a.cfg.Jobs {
		atts = append(atts, attach.FromJob(job, base, fmt.Sprintf("%s:jobs[%d]", name, i), defs))
	}

	return atts, nil
}

func (a *app) fileAttachment(o *genOptions) attach.Attachment {
	att := attach.Attachment{
		Type:     o.typeName,
		Source:   o.file,
		Format:   o.format,
		Package:  o.pkg,
		Position: "command line",
	}

	if att.Package == "" {
		att.Package = a.cfg.Package
	}

	if o.output != "" {
		att.Output = a.abs(o.output)
		att.Source = a.abs(o.file)
	}

	if att.Package == "" {
		dir := a.workDir
		if att.Output != "" {
			dir = filepath.Dir(att.Output)
		}

		att.Package = common.PkgNameFromDir(dir)
	}

	return att
}

func (a *app) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(a.workDir, path)
}
