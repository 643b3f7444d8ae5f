package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"

	"confstruct/internal/attach"
	"confstruct/internal/errors"
	"confstruct/internal/format"
	"confstruct/internal/gen"
	"confstruct/internal/infer"
)

type inspectOptions struct {
	file     string
	format   string
	typeName string
	to       string
	dump     bool
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newInspectCmd(a *app) *cobra.Command {
	o := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the schema inferred from a configuration file",
		Long: `Show the structs and field types inferred from a configuration file.

Examples:
  confstruct inspect -f config.toml            # Schema tree
  confstruct inspect -f config.yaml --to json  # Re-encode the parsed values
  confstruct inspect -f config.json --dump     # Dump the value tree`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Configuration file")
	cmd.Flags().StringVar(&o.format, "format", "", "Format override: json, yaml or toml")
	cmd.Flags().StringVarP(&o.typeName, "type", "t", "Config", "Root type name")
	cmd.Flags().StringVar(&o.to, "to", "", "Re-encode the values as json, yaml or toml")
	cmd.Flags().BoolVar(&o.dump, "dump", false, "Dump the parsed value tree")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runInspect(cmd *cobra.Command, o *inspectOptions) error {
	content, err := os.ReadFile(o.file)
	if err != nil {
		return &attach.FileReadError{Path: o.file, Cause: err}
	}

	tree, err := format.Parse(content, format.ResolveTag(o.file, o.format))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch {
	case o.dump:
		dumpConfig.Fdump(out, tree)
		return nil
	case o.to != "":
		encoded, err := format.Encode(tree, o.to)
		if err != nil {
			return err
		}

		_, err = out.Write(encoded)

		return err
	}

	m, err := gen.Synthesize(tree, o.typeName, gen.Options{})
	if err != nil {
		return err
	}

	text, err := pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(schemaList(m))).Srender()
	if err != nil {
		return errors.Wrap(err, "rendering schema tree")
	}

	_, err = fmt.Fprint(out, text)

	return err
}

// schemaList flattens a module into a leveled list: the root type, its
// fields, and under each struct-typed field the fields of that struct.
func schemaList(m *gen.Module) pterm.LeveledList {
	list := pterm.LeveledList{{Level: 0, Text: m.Root.Name}}
	appendFields(&list, m, m.Root, 1)

	return list
}

func appendFields(list *pterm.LeveledList, m *gen.Module, s *gen.StructDef, level int) {
	for _, f := range s.Fields {
		text := fmt.Sprintf("%s %s %q", f.Name, f.Type.GoType(), f.Key)
		if f.Default.Kind != infer.ExprNew {
			text += " = " + gen.DescribeValue(m, f.Default)
		}

		*list = append(*list, pterm.LeveledListItem{Level: level, Text: text})

		if name := structOf(f.Type); name != "" {
			if child, ok := m.Lookup(name); ok {
				appendFields(list, m, child, level+1)
			}
		}
	}
}

// structOf returns the struct a type refers to through lists and pointers.
func structOf(t *infer.Type) string {
	for t != nil {
		if t.Kind == infer.TypeStruct {
			return t.Name
		}

		t = t.Elem
	}

	return ""
}
