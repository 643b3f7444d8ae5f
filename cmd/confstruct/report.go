package main

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"confstruct/internal/attach"
	"confstruct/internal/diagnostic"
	"confstruct/internal/errors"
)

// report prints a run result and returns an error when any attachment
// failed.
func (a *app) report(cmd *cobra.Command, res attach.Result) error {
	out := cmd.OutOrStdout()

	for _, path := range res.Written {
		pterm.Success.WithWriter(out).Printfln("generated %s", a.rel(path))
	}

	printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics.All())

	if res.Diagnostics.HasErrors() {
		return errors.Newf("%d attachment(s) failed", len(res.Diagnostics.Errors))
	}

	return nil
}

func printDiagnostics(w io.Writer, diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		printer := pterm.Error
		switch d.Severity {
		case diagnostic.DiagnosticWarning:
			printer = pterm.Warning
		case diagnostic.DiagnosticInfo:
			printer = pterm.Info
		}

		printer.WithWriter(w).Println(d.String())

		for _, hint := range d.Hints {
			pterm.Fprintln(w, "  "+pterm.Gray("hint: ")+hint)
		}
	}
}

// rel shortens path relative to the working directory when it lies below it.
func (a *app) rel(path string) string {
	rel, err := filepath.Rel(a.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}
