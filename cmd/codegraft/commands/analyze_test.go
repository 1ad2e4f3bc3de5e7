package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/internal/report"
)

func TestAnalyzeCommand_Text(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	source := writeTestFile(t, dir, "Card.jsx", "<img src=\"a.png\">\n")

	var stdout bytes.Buffer

	cmd := NewAnalyzeCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{source, "--no-color"})

	err := cmd.Execute()
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "=== QUALITY ANALYSIS ===")
	assert.Contains(t, out, "img-alt")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	source := writeTestFile(t, dir, "Card.jsx", "<img src=\"a.png\">\n")

	var stdout bytes.Buffer

	cmd := NewAnalyzeCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{source, "--format", "json"})

	err := cmd.Execute()
	require.NoError(t, err)

	var optimization quality.Optimization
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &optimization))

	assert.Equal(t, 90, optimization.AccessibilityScore)
	assert.Equal(t, 100, optimization.PerformanceScore)
	assert.Contains(t, optimization.OptimizedCode, `alt=""`)
}

func TestAnalyzeCommand_PlotWritesHTML(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	source := writeTestFile(t, dir, "Card.jsx", "<img src=\"a.png\">\n")
	plotPath := filepath.Join(dir, "analysis.html")

	var stdout bytes.Buffer

	cmd := NewAnalyzeCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{source, "--format", "plot", "--out", plotPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Report written to "+plotPath)

	data, readErr := os.ReadFile(plotPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "Findings by Rule")
}

func TestAnalyzeCommand_UnknownFormat(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	source := writeTestFile(t, dir, "Card.jsx", "<img src=\"a.png\">\n")

	cmd := NewAnalyzeCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{source, "--format", "csv"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}
