package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/config"
	"github.com/codegraft/codegraft/internal/settings"
)

// isolateEnv pins HOME and PATH so command runs cannot see a real
// formatting engine, user config file, or settings store.
func isolateEnv(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("PATH", "")
}

// writeTestFile creates a file under dir and returns its path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestParseOverridePairs_Types(t *testing.T) {
	t.Parallel()

	overrides, err := parseOverridePairs([]string{
		"useTabs=true",
		"printWidth=120",
		"trailingComma=all",
	})
	require.NoError(t, err)

	assert.Equal(t, true, overrides["useTabs"])
	assert.Equal(t, 120, overrides["printWidth"])
	assert.Equal(t, "all", overrides["trailingComma"])
}

func TestParseOverridePairs_Empty(t *testing.T) {
	t.Parallel()

	overrides, err := parseOverridePairs(nil)
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestParseOverridePairs_Malformed(t *testing.T) {
	t.Parallel()

	_, err := parseOverridePairs([]string{"singleQuote"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errMalformedOverride)

	_, err = parseOverridePairs([]string{"=true"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errMalformedOverride)
}

func TestResolveOverrides_ExplicitWinsOverPersisted(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	saveErr := settings.SaveStyleOverrides(dbPath, map[string]any{
		"singleQuote": false,
		"printWidth":  100,
	})
	require.NoError(t, saveErr)

	cfg := &config.Config{Settings: config.SettingsConfig{Path: dbPath}}

	overrides, err := resolveOverrides(cfg, []string{"printWidth=120"})
	require.NoError(t, err)

	assert.Equal(t, false, overrides["singleQuote"])
	assert.Equal(t, 120, overrides["printWidth"])
}

func TestResolveOverrides_NothingConfigured(t *testing.T) {
	cfg := &config.Config{Settings: config.SettingsConfig{Path: filepath.Join(t.TempDir(), "absent.db")}}

	overrides, err := resolveOverrides(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestStyleConfigFrom_MapsAllFields(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Style: config.StyleConfig{
		IndentWidth:    4,
		UseTabs:        true,
		SingleQuote:    false,
		TrailingComma:  "all",
		BracketSpacing: false,
		PrintWidth:     120,
		LineEnding:     "crlf",
	}}

	style := styleConfigFrom(cfg)

	assert.Equal(t, 4, style.IndentWidth)
	assert.True(t, style.UseTabs)
	assert.False(t, style.SingleQuote)
	assert.Equal(t, "all", style.TrailingComma)
	assert.False(t, style.BracketSpacing)
	assert.Equal(t, 120, style.PrintWidth)
	assert.Equal(t, "crlf", style.LineEnding)
}

func TestPolicyFrom_MapsAllWeights(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Quality: config.QualityConfig{
		AccessibilityErrorPenalty:   20,
		AccessibilityWarningPenalty: 10,
		AccessibilityInfoPenalty:    4,
		PerformanceHighPenalty:      30,
		PerformanceMediumPenalty:    20,
		PerformanceLowPenalty:       10,
	}}

	policy := policyFrom(cfg)

	assert.Equal(t, 20, policy.AccessibilityError)
	assert.Equal(t, 10, policy.AccessibilityWarning)
	assert.Equal(t, 4, policy.AccessibilityInfo)
	assert.Equal(t, 30, policy.PerformanceHigh)
	assert.Equal(t, 20, policy.PerformanceMedium)
	assert.Equal(t, 10, policy.PerformanceLow)
}

func TestFileNameHint(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fileNameHint(stdinMarker))
	assert.Equal(t, "Card.tsx", fileNameHint("/generated/out/Card.tsx"))
}
