package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/render"
	"github.com/codegraft/codegraft/internal/report"
)

// defaultPlotFile is where the HTML report lands when --out is not set.
const defaultPlotFile = "codegraft-report.html"

// IntegrateCommand holds the flags for the integrate command.
type IntegrateCommand struct {
	configPath  string
	destination string
	output      string
	format      string
	overrides   []string
	write       bool
	showDiff    bool
	quiet       bool
	noColor     bool
	verbose     bool
}

// NewIntegrateCommand creates and configures the integrate command.
func NewIntegrateCommand() *cobra.Command {
	cmd := &IntegrateCommand{}

	cobraCmd := &cobra.Command{
		Use:   "integrate <component> [flags]",
		Short: "Integrate a generated component into a destination file",
		Long: `Integrate runs the full pipeline on a generated component: style
normalization through the formatting engine, quality analysis with safe
automatic fixes, and import resolution against the destination file.

The component argument is a file path, or "-" to read standard input.
The integrated text is printed to stdout (or written with --out or
--write) and the quality report is rendered alongside it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd.Context(), cobraCmd.OutOrStdout(), cobraCmd.ErrOrStderr(), args[0])
		},
	}

	cobraCmd.Flags().StringVarP(&cmd.destination, "into", "d", "", "Destination file to integrate into")
	cobraCmd.Flags().StringVarP(&cmd.output, "out", "o", "", "Write output to file instead of stdout")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "text", "Output format: text, json, yaml, binary, plot")
	cobraCmd.Flags().StringArrayVar(&cmd.overrides, "override", nil, "Style override as key=value (repeatable)")
	cobraCmd.Flags().BoolVarP(&cmd.write, "write", "w", false, "Write the integrated text back into the destination file")
	cobraCmd.Flags().BoolVar(&cmd.showDiff, "diff", false, "Show a line diff between the destination and the result")
	cobraCmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false, "Suppress the rendered report")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Verbose logging to stderr")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cobraCmd
}

// Run executes the integrate command.
func (c *IntegrateCommand) Run(ctx context.Context, stdout, stderr io.Writer, componentPath string) error {
	if c.noColor {
		color.NoColor = true
	}

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

	overrides, err := resolveOverrides(cfg, c.overrides)
	if err != nil {
		return err
	}

	pipeline := newPipeline(cfg, newLogger(c.verbose))

	result, err := pipeline.Integrate(ctx, integrate.Request{
		Source:         component,
		FileName:       fileNameHint(componentPath),
		Destination:    destination,
		StyleOverrides: overrides,
	})
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(c.format)
	if err != nil {
		return err
	}

	switch format {
	case report.FormatText:
		return c.writeText(result, destination, stdout, stderr)
	case report.FormatPlot:
		return c.writePlot(result, componentPath, stdout)
	default:
		return c.writeEncoded(result, format, stdout)
	}
}

// writeText places the integrated text and renders the report next to
// it. The report goes to stderr when the text occupies stdout, and to
// stdout otherwise.
func (c *IntegrateCommand) writeText(result *integrate.Result, destination string, stdout, stderr io.Writer) error {
	target := c.output
	if c.write {
		target = c.destination
	}

	err := writeTextOutput(target, result.Text, stdout)
	if err != nil {
		return err
	}

	if c.quiet {
		return nil
	}

	reportOut := stdout
	if target == "" {
		reportOut = stderr
	}

	renderer := render.NewRenderer(render.Config{ShowScoreBars: true})

	fmt.Fprintln(reportOut, renderer.Report(result.Report))

	if c.showDiff && destination != "" {
		diff := renderer.Diff(destination, result.Text)
		if diff != "" {
			fmt.Fprintln(reportOut, diff)
		}
	}

	return nil
}

// writePlot renders the report as a self-contained HTML page.
func (c *IntegrateCommand) writePlot(result *integrate.Result, componentPath string, stdout io.Writer) error {
	target := c.output
	if target == "" {
		target = defaultPlotFile
	}

	file, err := createFile(target)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.Config{})

	renderErr := renderer.Plot(file, filepath.Base(componentPath), result.Report)

	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", target, closeErr)
	}

	fmt.Fprintf(stdout, "Report written to %s\n", target)

	return nil
}

// writeEncoded serializes the full result in the requested format.
func (c *IntegrateCommand) writeEncoded(result *integrate.Result, format report.Format, stdout io.Writer) error {
	if c.output == "" {
		return report.Write(result, format, stdout)
	}

	file, err := createFile(c.output)
	if err != nil {
		return err
	}

	writeErr := report.Write(result, format, file)

	closeErr := file.Close()
	if writeErr != nil {
		return writeErr
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", c.output, closeErr)
	}

	return nil
}
