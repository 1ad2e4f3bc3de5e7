package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/style"
)

// styleTestConfig writes a config file pointing the settings store at
// a throwaway database and returns the config path.
func styleTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "settings.db")

	return writeTestFile(t, dir, "codegraft.yaml", "settings:\n  path: "+dbPath+"\n")
}

func runStyleCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer

	cmd := NewStyleCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestStyleShow_Defaults(t *testing.T) {
	isolateEnv(t)

	cfgPath := styleTestConfig(t)

	out, err := runStyleCommand(t, "show", "--config", cfgPath)
	require.NoError(t, err)

	var effective style.Config
	require.NoError(t, json.Unmarshal([]byte(out), &effective))

	assert.Equal(t, style.DefaultConfig(), effective)
}

func TestStyleSet_PersistsAcrossShow(t *testing.T) {
	isolateEnv(t)

	cfgPath := styleTestConfig(t)

	out, err := runStyleCommand(t, "set", "useTabs=true", "printWidth=120", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 style preference(s)")

	out, err = runStyleCommand(t, "show", "--config", cfgPath)
	require.NoError(t, err)

	var effective style.Config
	require.NoError(t, json.Unmarshal([]byte(out), &effective))

	assert.True(t, effective.UseTabs)
	assert.Equal(t, 120, effective.PrintWidth)
	assert.True(t, effective.SingleQuote, "untouched defaults survive")
}

func TestStyleSet_LayersOverEarlierPairs(t *testing.T) {
	isolateEnv(t)

	cfgPath := styleTestConfig(t)

	_, err := runStyleCommand(t, "set", "useTabs=true", "--config", cfgPath)
	require.NoError(t, err)

	out, err := runStyleCommand(t, "set", "printWidth=100", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 style preference(s)")
}

func TestStyleSet_RejectsInvalidValue(t *testing.T) {
	isolateEnv(t)

	cfgPath := styleTestConfig(t)

	_, err := runStyleCommand(t, "set", "lineEnding=vertical", "--config", cfgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, style.ErrInvalidOverrides)
}

func TestStyleReset_ClearsPreferences(t *testing.T) {
	isolateEnv(t)

	cfgPath := styleTestConfig(t)

	_, err := runStyleCommand(t, "set", "useTabs=true", "--config", cfgPath)
	require.NoError(t, err)

	out, err := runStyleCommand(t, "reset", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared persisted style preferences")

	out, err = runStyleCommand(t, "show", "--config", cfgPath)
	require.NoError(t, err)

	var effective style.Config
	require.NoError(t, json.Unmarshal([]byte(out), &effective))
	assert.False(t, effective.UseTabs)
}
