package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/render"
	"github.com/codegraft/codegraft/internal/report"
)

// errFormatFailed is returned when the engine rejects the source and
// the rendered failure has already been shown.
var errFormatFailed = errors.New("formatting failed")

// FormatCommand holds the flags for the format command.
type FormatCommand struct {
	configPath string
	fileName   string
	output     string
	format     string
	overrides  []string
	write      bool
	noColor    bool
	verbose    bool
}

// NewFormatCommand creates and configures the format command.
func NewFormatCommand() *cobra.Command {
	cmd := &FormatCommand{}

	cobraCmd := &cobra.Command{
		Use:   "format <file> [flags]",
		Short: "Normalize source style through the formatting engine",
		Long: `Format normalizes a source file through the formatting engine using
the configured style defaults, persisted preferences, and any explicit
--override pairs.

The file argument is a path, or "-" to read standard input. On engine
failure the command prints the parse diagnostics, a repaired candidate
when one can be produced, and fix suggestions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd.Context(), cobraCmd.OutOrStdout(), cobraCmd.ErrOrStderr(), args[0])
		},
	}

	cobraCmd.Flags().StringVar(&cmd.fileName, "file-name", "", "Dialect hint when reading from stdin (e.g. Button.tsx)")
	cobraCmd.Flags().StringVarP(&cmd.output, "out", "o", "", "Write formatted text to file instead of stdout")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "text", "Output format: text, json, yaml")
	cobraCmd.Flags().StringArrayVar(&cmd.overrides, "override", nil, "Style override as key=value (repeatable)")
	cobraCmd.Flags().BoolVarP(&cmd.write, "write", "w", false, "Rewrite the input file in place")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Verbose logging to stderr")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cobraCmd
}

// Run executes the format command.
func (c *FormatCommand) Run(ctx context.Context, stdout, stderr io.Writer, sourcePath string) error {
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

	overrides, err := resolveOverrides(cfg, c.overrides)
	if err != nil {
		return err
	}

	hint := c.fileName
	if hint == "" {
		hint = fileNameHint(sourcePath)
	}

	normalizer := newNormalizer(cfg, newLogger(c.verbose))
	outcome := normalizer.Format(ctx, source, hint, overrides)

	format, err := report.ParseFormat(c.format)
	if err != nil {
		return err
	}

	if format != report.FormatText {
		return report.Write(outcome, format, stdout)
	}

	if !outcome.Success {
		renderer := render.NewRenderer(render.Config{})

		fmt.Fprintln(stderr, renderer.Outcome(outcome))

		return errFormatFailed
	}

	target := c.output
	if c.write && sourcePath != stdinMarker {
		target = sourcePath
	}

	return writeTextOutput(target, outcome.FormattedText, stdout)
}
