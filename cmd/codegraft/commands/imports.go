package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/imports"
)

// ImportsCommand holds the flags for the imports command.
type ImportsCommand struct {
	configPath  string
	destination string
	prune       bool
	infer       bool
}

// NewImportsCommand creates and configures the imports command.
func NewImportsCommand() *cobra.Command {
	cmd := &ImportsCommand{}

	cobraCmd := &cobra.Command{
		Use:   "imports <component> [flags]",
		Short: "Merge and sort the leading import block of a component",
		Long: `Imports resolves the leading import block of a generated component
against a destination file: declarations merge by module, the result is
grouped by origin (framework, third party, local, style) and sorted
within each group, and the canonical block is printed.

The component argument is a file path, or "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd.OutOrStdout(), args[0])
		},
	}

	cobraCmd.Flags().StringVarP(&cmd.destination, "into", "d", "", "Destination file whose imports merge with the component's")
	cobraCmd.Flags().BoolVar(&cmd.prune, "prune", false, "Drop imports with no whole-word reference in the merged bodies")
	cobraCmd.Flags().BoolVar(&cmd.infer, "infer", false, "Add the framework import when hooks or markup require it")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cobraCmd
}

// Run executes the imports command.
func (c *ImportsCommand) Run(stdout io.Writer, componentPath string) error {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	component, err := readSource(componentPath)
	if err != nil {
		return err
	}

	destination, err := readOptional(c.destination)
	if err != nil {
		return err
	}

	engine := imports.NewEngine(cfg.Framework.Package)
	merged := imports.Merge(imports.Parse(destination), imports.Parse(component))

	componentBody := imports.StripImports(component)
	if c.prune {
		body := imports.StripImports(destination) + "\n" + componentBody
		merged = imports.PruneUnused(merged, body)
	}

	if c.infer {
		inferred, needed := engine.InferFrameworkNeeds(componentBody)
		if needed {
			merged = imports.Merge(merged, []imports.Declaration{inferred})
		}
	}

	block := engine.RenderBlock(engine.SortAndGroup(merged))
	if block == "" {
		return nil
	}

	_, err = fmt.Fprintln(stdout, block)

	return err
}
