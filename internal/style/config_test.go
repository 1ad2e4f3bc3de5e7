package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Values(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.IndentWidth)
	assert.False(t, cfg.UseTabs)
	assert.True(t, cfg.SingleQuote)
	assert.Equal(t, TrailingCommaES5, cfg.TrailingComma)
	assert.True(t, cfg.BracketSpacing)
	assert.Equal(t, 80, cfg.PrintWidth)
	assert.Equal(t, LineEndingLF, cfg.LineEnding)
}

func TestMerge_AppliesKnownKeys(t *testing.T) {
	t.Parallel()

	merged := DefaultConfig().Merge(map[string]any{
		"indentWidth":   4,
		"useTabs":       true,
		"singleQuote":   false,
		"trailingComma": "all",
		"printWidth":    120,
		"lineEnding":    "crlf",
	})

	assert.Equal(t, 4, merged.IndentWidth)
	assert.True(t, merged.UseTabs)
	assert.False(t, merged.SingleQuote)
	assert.Equal(t, TrailingCommaAll, merged.TrailingComma)
	assert.Equal(t, 120, merged.PrintWidth)
	assert.Equal(t, LineEndingCRLF, merged.LineEnding)
}

func TestMerge_JSONNumbersAccepted(t *testing.T) {
	t.Parallel()

	// JSON decoding produces float64 for numbers.
	merged := DefaultConfig().Merge(map[string]any{"printWidth": float64(100)})

	assert.Equal(t, 100, merged.PrintWidth)
}

func TestMerge_UnknownKeysSkipped(t *testing.T) {
	t.Parallel()

	merged := DefaultConfig().Merge(map[string]any{"semicolons": false})

	assert.Equal(t, DefaultConfig(), merged)
}

func TestMerge_MistypedValuesSkipped(t *testing.T) {
	t.Parallel()

	merged := DefaultConfig().Merge(map[string]any{
		"indentWidth":   "four",
		"useTabs":       "yes",
		"trailingComma": "banana",
		"printWidth":    -10,
	})

	assert.Equal(t, DefaultConfig(), merged)
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := DefaultConfig()
	_ = base.Merge(map[string]any{"indentWidth": 8})

	assert.Equal(t, 2, base.IndentWidth)
}

func TestValidateOverrides_EmptyIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateOverrides(nil))
	require.NoError(t, ValidateOverrides(map[string]any{}))
}

func TestValidateOverrides_ValidDocument(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateOverrides(map[string]any{
		"indentWidth": 4,
		"singleQuote": false,
	}))
}

func TestValidateOverrides_BadEnum(t *testing.T) {
	t.Parallel()

	err := ValidateOverrides(map[string]any{"trailingComma": "banana"})

	require.ErrorIs(t, err, ErrInvalidOverrides)
}

func TestValidateOverrides_BadType(t *testing.T) {
	t.Parallel()

	err := ValidateOverrides(map[string]any{"useTabs": "yes"})

	require.ErrorIs(t, err, ErrInvalidOverrides)
}

func TestValidateOverrides_OutOfRange(t *testing.T) {
	t.Parallel()

	err := ValidateOverrides(map[string]any{"printWidth": 10000})

	require.ErrorIs(t, err, ErrInvalidOverrides)
}

func TestValidateOverrides_UnknownKeysPermitted(t *testing.T) {
	t.Parallel()

	// Unknown keys pass validation; Merge skips them later.
	require.NoError(t, ValidateOverrides(map[string]any{"semicolons": false}))
}

func TestSchemaJSON_ReturnsCopy(t *testing.T) {
	t.Parallel()

	first := SchemaJSON()
	first[0] = 'X'

	assert.Equal(t, byte('{'), SchemaJSON()[0])
}
