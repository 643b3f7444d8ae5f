package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"confstruct/internal/attach"
	"confstruct/internal/common"
	"confstruct/internal/logger"
)

func newScanCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scan [patterns...]",
		Short: "Run every //confstruct:generate directive in the given packages",
		Long: `Load the packages matching the patterns (default ".") and run every
//confstruct:generate directive found in their files.

Directive syntax:
  //confstruct:generate -type=Config -file=testdata/config.json [-format=json] [-package=name] [-output=file.go]

Paths are relative to the directory of the file holding the directive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			atts, res, err := a.scan(cmd.Context(), dir, args)
			if err != nil {
				return err
			}

			run := a.driver().Run(cmd.Context(), atts)
			res.Diagnostics.Merge(run.Diagnostics)
			res.Written = run.Written
			res.Unchanged = run.Unchanged

			return a.report(cmd, res)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Directory to resolve patterns in (default: working directory)")

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Fail when generated files are missing or out of date",
		RunE: func(cmd *cobra.Command, args []string) error {
			atts, res, err := a.scan(cmd.Context(), dir, args)
			if err != nil {
				return err
			}

			check := a.driver().Check(cmd.Context(), atts)
			res.Diagnostics.Merge(check.Diagnostics)

			if err := a.report(cmd, res); err != nil {
				return err
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("%d generated file(s) up to date", len(check.Unchanged))

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Directory to resolve patterns in (default: working directory)")

	return cmd
}

// scan finds the directives of the packages matching patterns. Directives
// that fail to parse are returned as diagnostics.
func (a *app) scan(ctx context.Context, dir string, patterns []string) ([]attach.Attachment, attach.Result, error) {
	var res attach.Result

	if dir == "" {
		dir = a.workDir
	}

	found, err := attach.Scan(ctx, dir, patterns...)
	if err != nil {
		return nil, res, err
	}

	for _, dirErr := range found.Errors {
		res.Diagnostics.Add(attach.DiagnoseDirective(dirErr))
	}

	atts := found.Attachments(attach.DefaultsFromConfig(a.cfg))
	if common.IsEmpty(atts) {
		logger.Infow("No directives found", "dir", dir, "patterns", patterns)
	}

	return atts, res, nil
}
