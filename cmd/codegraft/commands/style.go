package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/report"
	"github.com/codegraft/codegraft/internal/settings"
	"github.com/codegraft/codegraft/internal/style"
)

// NewStyleCommand groups the style preference subcommands.
func NewStyleCommand() *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "style",
		Short: "Inspect or persist formatting preferences",
		Long: `Style manages the formatting preferences applied on top of the
configured defaults. Preferences persist in a per-user settings store
and apply to every integrate and format run.`,
	}

	cobraCmd.AddCommand(newStyleShowCommand())
	cobraCmd.AddCommand(newStyleSetCommand())
	cobraCmd.AddCommand(newStyleResetCommand())

	return cobraCmd
}

func newStyleShowCommand() *cobra.Command {
	var (
		configPath string
		format     string
	)

	cobraCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective formatting configuration",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runStyleShow(cobraCmd.OutOrStdout(), configPath, format)
		},
	}

	cobraCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml")
	cobraCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cobraCmd
}

func runStyleShow(stdout io.Writer, configPath, formatName string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	overrides := settings.LoadStyleOverrides(cfg.Settings.Path)
	effective := styleConfigFrom(cfg).Merge(overrides)

	return report.Write(effective, format, stdout)
}

func newStyleSetCommand() *cobra.Command {
	var configPath string

	cobraCmd := &cobra.Command{
		Use:   "set <key=value> [key=value ...]",
		Short: "Persist formatting preferences",
		Long: `Set validates the given key=value pairs against the formatting option
schema and persists them in the settings store, layered over any pairs
saved earlier.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runStyleSet(cobraCmd.OutOrStdout(), configPath, args)
		},
	}

	cobraCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cobraCmd
}

func runStyleSet(stdout io.Writer, configPath string, pairs []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	parsed, err := parseOverridePairs(pairs)
	if err != nil {
		return err
	}

	overrides := settings.LoadStyleOverrides(cfg.Settings.Path)
	for key, value := range parsed {
		overrides[key] = value
	}

	err = style.ValidateOverrides(overrides)
	if err != nil {
		return err
	}

	err = settings.SaveStyleOverrides(cfg.Settings.Path, overrides)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Saved %d style preference(s)\n", len(overrides))

	return nil
}

func newStyleResetCommand() *cobra.Command {
	var configPath string

	cobraCmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all persisted formatting preferences",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runStyleReset(cobraCmd.OutOrStdout(), configPath)
		},
	}

	cobraCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .codegraft.yaml in CWD or $HOME)")

	return cobraCmd
}

func runStyleReset(stdout io.Writer, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	err = settings.SaveStyleOverrides(cfg.Settings.Path, map[string]any{})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Cleared persisted style preferences")

	return nil
}
