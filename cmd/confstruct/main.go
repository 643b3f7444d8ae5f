// Package main provides the CLI entrypoint for confstruct.
//
// confstruct turns JSON, YAML and TOML configuration files into Go structs:
//   - one struct per object in the file, with json/yaml/toml tags
//   - a zero-value constructor and a constructor holding the file's values
//   - Equal, Clone and, on the root, IsEmpty
//
// Requests come from //confstruct:generate directives (scan, check), from
// the command line or from jobs in confstruct.yaml (gen).
package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"confstruct/internal/attach"
	"confstruct/internal/config"
	"confstruct/internal/errors"
	"confstruct/internal/logger"
)

// app holds the state shared by all commands.
type app struct {
	configPath string
	jsonLog    bool
	verbose    bool

	cfg     *config.Config
	workDir string
}

func main() {
	err := newRootCmd().Execute()

	logger.Cleanup()

	if err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err)

		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.WithWriter(os.Stderr).Println(hint)
		}

		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "confstruct",
		Short: "Generate Go structs from configuration files",
		Long: `confstruct - Go structs from JSON, YAML and TOML files.

Every object in the file becomes a struct; every key becomes a tagged field
whose type is inferred from its value. The generated code carries the file's
values in a New<Type>() constructor.

Examples:
  confstruct gen -f config.json -t Config        # Print generated code
  confstruct gen -f config.yaml -o config_gen.go # Write it
  confstruct scan ./...                          # Run every //confstruct:generate directive
  confstruct check ./...                         # Fail if generated files are stale
  confstruct inspect -f config.toml              # Show the inferred schema`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default: ./confstruct.yaml, .toml or .json when present)")
	root.PersistentFlags().BoolVar(&a.jsonLog, "json-log", false, "Emit logs as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newGenCmd(a))
	root.AddCommand(newScanCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newInspectCmd(a))

	return root
}

// setup loads the configuration and initializes the logger before any
// command runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}

	cfg, err := config.Load(a.configPath, wd)
	if err != nil {
		return err
	}

	if err := logger.Initialize(a.jsonLog || cfg.Log.JSON, a.verbose || cfg.Log.Verbose); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	logger.Debugw("Loaded configuration",
		"source", cfg.Source,
		"workers", cfg.Workers,
		"jobs", len(cfg.Jobs))

	a.cfg = cfg
	a.workDir = wd

	return nil
}

func (a *app) driver() *attach.Driver {
	return attach.NewDriver(attach.OSReader{}, attach.Options{
		Header:   a.cfg.Header,
		Comments: a.cfg.Comments,
		Workers:  a.cfg.Workers,
	})
}
