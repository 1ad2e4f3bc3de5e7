package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/internal/render"
	"github.com/codegraft/codegraft/internal/report"
)

// AnalyzeCommand holds the flags for the analyze command.
type AnalyzeCommand struct {
	configPath  string
	format      string
	output      string
	maxFindings int
	noColor     bool
}

// NewAnalyzeCommand creates and configures the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &AnalyzeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "analyze <file> [flags]",
		Short: "Score accessibility and performance and apply safe fixes",
		Long: `Analyze runs the quality rules over a source file without touching the
formatting engine. It reports accessibility and performance findings,
the scores they produce, and the remediated code after safe automatic
fixes.

The file argument is a path, or "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd.OutOrStdout(), args[0])
		},
	}

	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "text", "Output format: text, json, yaml, binary, plot")
	cobraCmd.Flags().StringVarP(&cmd.output, "out", "o", "", "Write output to file instead of stdout")
	cobraCmd.Flags().IntVar(&cmd.maxFindings, "max-findings", 0, "Cap the findings listed in text output (0 = all)")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cobraCmd
}

// Run executes the analyze command.
func (c *AnalyzeCommand) Run(stdout io.Writer, sourcePath string) error {
	if c.noColor {
		color.NoColor = true
	}

	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	source, err := readSource(sourcePath)
	if err != nil {
		return err
	}

	analyzer := quality.NewAnalyzer(policyFrom(cfg))
	optimization := analyzer.Optimize(source)

	format, err := report.ParseFormat(c.format)
	if err != nil {
		return err
	}

	switch format {
	case report.FormatText:
		return c.writeText(optimization, stdout)
	case report.FormatPlot:
		return c.writePlot(optimization, sourcePath, stdout)
	default:
		return c.writeEncoded(optimization, format, stdout)
	}
}

func (c *AnalyzeCommand) writeText(optimization quality.Optimization, stdout io.Writer) error {
	renderer := render.NewRenderer(render.Config{
		ShowScoreBars: true,
		MaxFindings:   c.maxFindings,
	})

	return writeTextOutput(c.output, renderer.Optimization(optimization)+"\n", stdout)
}

func (c *AnalyzeCommand) writePlot(optimization quality.Optimization, sourcePath string, stdout io.Writer) error {
	target := c.output
	if target == "" {
		target = defaultPlotFile
	}

	file, err := createFile(target)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.Config{})

	renderErr := renderer.Plot(file, filepath.Base(sourcePath), reportFromOptimization(optimization))

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

func (c *AnalyzeCommand) writeEncoded(optimization quality.Optimization, format report.Format, stdout io.Writer) error {
	if c.output == "" {
		return report.Write(optimization, format, stdout)
	}

	file, err := createFile(c.output)
	if err != nil {
		return err
	}

	writeErr := report.Write(optimization, format, file)

	closeErr := file.Close()
	if writeErr != nil {
		return writeErr
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", c.output, closeErr)
	}

	return nil
}

// reportFromOptimization adapts a standalone analysis to the report
// shape the plot page renders.
func reportFromOptimization(optimization quality.Optimization) integrate.Report {
	findings := make([]quality.Finding, 0, len(optimization.AccessibilityIssues)+len(optimization.PerformanceIssues))
	findings = append(findings, optimization.AccessibilityIssues...)
	findings = append(findings, optimization.PerformanceIssues...)

	return integrate.Report{
		AccessibilityScore: optimization.AccessibilityScore,
		PerformanceScore:   optimization.PerformanceScore,
		Findings:           findings,
		AppliedFixes:       optimization.Improvements,
		SizeDelta:          optimization.CodeSize,
	}
}
