package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/config"
)

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(""), 0o600))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.DefaultFrameworkPackage, cfg.Framework.Package)
	assert.Equal(t, config.DefaultStyleIndentWidth, cfg.Style.IndentWidth)
	assert.Equal(t, config.DefaultStyleUseTabs, cfg.Style.UseTabs)
	assert.Equal(t, config.DefaultStyleSingleQuote, cfg.Style.SingleQuote)
	assert.Equal(t, config.DefaultStyleTrailingComma, cfg.Style.TrailingComma)
	assert.Equal(t, config.DefaultStylePrintWidth, cfg.Style.PrintWidth)
	assert.Equal(t, config.DefaultEnginePinnedVersion, cfg.Engine.PinnedVersion)
	assert.Equal(t, config.DefaultEngineAllowRemote, cfg.Engine.AllowRemote)
	assert.Equal(t, config.DefaultEngineAcquireTimeoutSec, cfg.Engine.AcquireTimeoutSec)
	assert.Equal(t, config.DefaultAccessibilityErrorPenalty, cfg.Quality.AccessibilityErrorPenalty)
	assert.Equal(t, config.DefaultPerformanceHighPenalty, cfg.Quality.PerformanceHighPenalty)
	assert.Equal(t, config.DefaultSettingsPath, cfg.Settings.Path)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".codegraft.yaml")
	content := `framework:
  package: preact
style:
  indent_width: 4
  use_tabs: true
  single_quote: false
  trailing_comma: all
  print_width: 120
engine:
  pinned_version: "3.2.0"
  allow_remote: false
  acquire_timeout_sec: 5
  format_timeout_sec: 15
quality:
  accessibility_error_penalty: 20
  performance_high_penalty: 25
settings:
  path: /tmp/graft-settings.db
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "preact", cfg.Framework.Package)
	assert.Equal(t, 4, cfg.Style.IndentWidth)
	assert.True(t, cfg.Style.UseTabs)
	assert.False(t, cfg.Style.SingleQuote)
	assert.Equal(t, config.TrailingCommaAll, cfg.Style.TrailingComma)
	assert.Equal(t, 120, cfg.Style.PrintWidth)
	assert.Equal(t, "3.2.0", cfg.Engine.PinnedVersion)
	assert.False(t, cfg.Engine.AllowRemote)
	assert.Equal(t, 5, cfg.Engine.AcquireTimeoutSec)
	assert.Equal(t, 15, cfg.Engine.FormatTimeoutSec)
	assert.Equal(t, 20, cfg.Quality.AccessibilityErrorPenalty)
	assert.Equal(t, 25, cfg.Quality.PerformanceHighPenalty)
	assert.Equal(t, "/tmp/graft-settings.db", cfg.Settings.Path)

	// Unset sections keep their defaults.
	assert.Equal(t, config.DefaultStyleLineEnding, cfg.Style.LineEnding)
	assert.Equal(t, config.DefaultAccessibilityWarningPenalty, cfg.Quality.AccessibilityWarningPenalty)
}

func TestLoadConfig_MalformedYAML_ReturnsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("style: [unclosed"), 0o600))

	_, err := config.LoadConfig(cfgPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_InvalidTrailingComma_ReturnsValidationError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".codegraft.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("style:\n  trailing_comma: banana\n"), 0o600))

	_, err := config.LoadConfig(cfgPath)

	require.ErrorIs(t, err, config.ErrInvalidTrailingComma)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	// t.Setenv is process-wide, so this test must not run in parallel.
	t.Setenv("CODEGRAFT_STYLE_INDENT_WIDTH", "8")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(""), 0o600))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Style.IndentWidth)
}

func TestValidate_EmptyFrameworkPackage(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Framework.Package = ""

	require.ErrorIs(t, cfg.Validate(), config.ErrEmptyFrameworkPackage)
}

func TestValidate_NonPositiveIndentWidth(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Style.IndentWidth = 0

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidIndentWidth)
}

func TestValidate_UnknownLineEnding(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Style.LineEnding = "cr"

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidLineEnding)
}

func TestValidate_NonPositiveTimeouts(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Engine.AcquireTimeoutSec = 0

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidAcquireTimeout)

	cfg = validConfig()
	cfg.Engine.FormatTimeoutSec = -1

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidFormatTimeout)
}

func TestValidate_NegativePenalty(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Quality.PerformanceLowPenalty = -5

	require.ErrorIs(t, cfg.Validate(), config.ErrNegativePenalty)
}

func validConfig() *config.Config {
	return &config.Config{
		Framework: config.FrameworkConfig{Package: config.DefaultFrameworkPackage},
		Style: config.StyleConfig{
			IndentWidth:    config.DefaultStyleIndentWidth,
			SingleQuote:    config.DefaultStyleSingleQuote,
			TrailingComma:  config.DefaultStyleTrailingComma,
			BracketSpacing: config.DefaultStyleBracketSpacing,
			PrintWidth:     config.DefaultStylePrintWidth,
			LineEnding:     config.DefaultStyleLineEnding,
		},
		Engine: config.EngineConfig{
			PinnedVersion:     config.DefaultEnginePinnedVersion,
			AllowRemote:       config.DefaultEngineAllowRemote,
			AcquireTimeoutSec: config.DefaultEngineAcquireTimeoutSec,
			FormatTimeoutSec:  config.DefaultEngineFormatTimeoutSec,
		},
		Quality: config.QualityConfig{
			AccessibilityErrorPenalty:   config.DefaultAccessibilityErrorPenalty,
			AccessibilityWarningPenalty: config.DefaultAccessibilityWarningPenalty,
			AccessibilityInfoPenalty:    config.DefaultAccessibilityInfoPenalty,
			PerformanceHighPenalty:      config.DefaultPerformanceHighPenalty,
			PerformanceMediumPenalty:    config.DefaultPerformanceMediumPenalty,
			PerformanceLowPenalty:       config.DefaultPerformanceLowPenalty,
		},
	}
}
