// Package commands implements the codegraft CLI subcommands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/imports"
	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/internal/settings"
	"github.com/codegraft/codegraft/internal/style"
)

// stdinMarker selects standard input as the source argument.
const stdinMarker = "-"

// outputFilePerm is the mode for files written by commands.
const outputFilePerm = 0o644

// errMalformedOverride indicates an --override flag without key=value shape.
var errMalformedOverride = errors.New("override must be key=value")

// newLogger returns a stderr text logger when verbose output is on,
// and a discard logger otherwise.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// styleConfigFrom maps the loaded configuration onto formatting defaults.
func styleConfigFrom(cfg *config.Config) style.Config {
	return style.Config{
		IndentWidth:    cfg.Style.IndentWidth,
		UseTabs:        cfg.Style.UseTabs,
		SingleQuote:    cfg.Style.SingleQuote,
		TrailingComma:  cfg.Style.TrailingComma,
		BracketSpacing: cfg.Style.BracketSpacing,
		PrintWidth:     cfg.Style.PrintWidth,
		LineEnding:     cfg.Style.LineEnding,
	}
}

// policyFrom maps the loaded configuration onto scoring weights.
func policyFrom(cfg *config.Config) quality.Policy {
	return quality.Policy{
		AccessibilityError:   cfg.Quality.AccessibilityErrorPenalty,
		AccessibilityWarning: cfg.Quality.AccessibilityWarningPenalty,
		AccessibilityInfo:    cfg.Quality.AccessibilityInfoPenalty,
		PerformanceHigh:      cfg.Quality.PerformanceHighPenalty,
		PerformanceMedium:    cfg.Quality.PerformanceMediumPenalty,
		PerformanceLow:       cfg.Quality.PerformanceLowPenalty,
	}
}

// newNormalizer builds the style normalizer backed by a lazy engine loader.
func newNormalizer(cfg *config.Config, logger *slog.Logger) *style.Normalizer {
	loader := style.NewLoader(style.LoaderOptions{
		PinnedVersion:  cfg.Engine.PinnedVersion,
		AllowRemote:    cfg.Engine.AllowRemote,
		AcquireTimeout: time.Duration(cfg.Engine.AcquireTimeoutSec) * time.Second,
		FormatTimeout:  time.Duration(cfg.Engine.FormatTimeoutSec) * time.Second,
		Logger:         logger,
	})

	return style.NewNormalizer(loader, styleConfigFrom(cfg), logger)
}

// newPipeline wires the full integration pipeline from configuration.
func newPipeline(cfg *config.Config, logger *slog.Logger) *integrate.Pipeline {
	return integrate.New(integrate.Options{
		Normalizer: newNormalizer(cfg, logger),
		Analyzer:   quality.NewAnalyzer(policyFrom(cfg)),
		Imports:    imports.NewEngine(cfg.Framework.Package),
		Logger:     logger,
	})
}

// readSource reads the named file, or standard input when path is "-".
func readSource(path string) (string, error) {
	if path == stdinMarker {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return string(data), nil
}

// readOptional reads path when non-empty and returns "" otherwise.
func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	return readSource(path)
}

// createFile opens path for writing, truncating any previous content.
func createFile(path string) (*os.File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	return file, nil
}

// fileNameHint derives the dialect hint from the component argument.
// Standard input carries no name, so detection falls back to content.
func fileNameHint(componentPath string) string {
	if componentPath == stdinMarker {
		return ""
	}

	return filepath.Base(componentPath)
}

// writeTextOutput writes text to the named file, or to fallback when
// path is empty.
func writeTextOutput(path, text string, fallback io.Writer) error {
	if path == "" {
		_, err := io.WriteString(fallback, text)

		return err
	}

	err := os.WriteFile(path, []byte(text), outputFilePerm)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// resolveOverrides merges persisted style preferences with explicit
// key=value pairs from the command line. Explicit pairs win.
func resolveOverrides(cfg *config.Config, pairs []string) (map[string]any, error) {
	overrides := settings.LoadStyleOverrides(cfg.Settings.Path)

	explicit, err := parseOverridePairs(pairs)
	if err != nil {
		return nil, err
	}

	for key, value := range explicit {
		overrides[key] = value
	}

	if len(overrides) == 0 {
		return nil, nil
	}

	return overrides, nil
}

// parseOverridePairs converts repeated key=value flags into an
// override document. Values parse as bool, then int, then string.
func parseOverridePairs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	overrides := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", errMalformedOverride, pair)
		}

		overrides[key] = parseOverrideValue(raw)
	}

	return overrides, nil
}

func parseOverrideValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}

	return raw
}
