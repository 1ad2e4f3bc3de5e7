// Package main provides the entry point for the codegraft CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codegraft/codegraft/cmd/codegraft/commands"
	"github.com/codegraft/codegraft/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codegraft",
		Short: "Codegraft - generated code integration pipeline",
		Long: `Codegraft integrates generated UI components into existing source files.

Commands:
  integrate Format, analyze, and merge a component into a destination file
  format    Normalize source style through the formatting engine
  analyze   Score accessibility and performance and apply safe fixes
  imports   Merge and sort the leading import block of a component
  style     Inspect or persist formatting preferences
  mcp       Start MCP server for IDE and agent integration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewIntegrateCommand())
	rootCmd.AddCommand(commands.NewFormatCommand())
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewImportsCommand())
	rootCmd.AddCommand(commands.NewStyleCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "codegraft %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
