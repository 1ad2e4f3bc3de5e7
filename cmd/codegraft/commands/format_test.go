package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/style"
)

func TestFormatCommand_EngineUnavailable(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	source := writeTestFile(t, dir, "x.jsx", "const x = 1\n")

	var stderr bytes.Buffer

	cmd := NewFormatCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{source, "--no-color"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, errFormatFailed)
	assert.Contains(t, stderr.String(), "Formatting failed:")
}

func TestFormatCommand_JSONOutcome(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	source := writeTestFile(t, dir, "x.jsx", "const x = 1\n")

	var stdout bytes.Buffer

	cmd := NewFormatCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{source, "--format", "json"})

	err := cmd.Execute()
	require.NoError(t, err)

	var outcome style.Outcome
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &outcome))

	assert.False(t, outcome.Success)
	assert.NotEmpty(t, outcome.Error)
}

func TestFormatCommand_MalformedOverride(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	source := writeTestFile(t, dir, "x.jsx", "const x = 1\n")

	cmd := NewFormatCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{source, "--override", "useTabs"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, errMalformedOverride)
}
