package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairCandidate_OddDoubleQuotes(t *testing.T) {
	t.Parallel()

	candidate, changed := RepairCandidate(`const s = "abc;`)

	require.True(t, changed)
	assert.Equal(t, `const s = "abc;"`, candidate)
	// The appended quote must be the final character.
	assert.Equal(t, byte('"'), candidate[len(candidate)-1])
}

func TestRepairCandidate_OddSingleQuotes(t *testing.T) {
	t.Parallel()

	candidate, changed := RepairCandidate(`const s = 'abc;`)

	require.True(t, changed)
	assert.True(t, strings.HasSuffix(candidate, `'`))
}

func TestRepairCandidate_UnclosedBracketsCloseInNestingOrder(t *testing.T) {
	t.Parallel()

	candidate, changed := RepairCandidate("fn({[1, 2")

	require.True(t, changed)
	assert.Equal(t, "fn({[1, 2]})", candidate)
}

func TestRepairCandidate_BalancedInputUnchanged(t *testing.T) {
	t.Parallel()

	source := `const s = "ok"; fn([1, 2]);`

	candidate, changed := RepairCandidate(source)

	assert.False(t, changed)
	assert.Equal(t, source, candidate)
}

func TestRepairCandidate_ExtraClosersIgnored(t *testing.T) {
	t.Parallel()

	// Stray closers cannot be repaired by appending; leave them alone.
	source := "fn(x));"

	candidate, changed := RepairCandidate(source)

	assert.False(t, changed)
	assert.Equal(t, source, candidate)
}

func TestRepairCandidate_QuoteBeforeBrackets(t *testing.T) {
	t.Parallel()

	// Quotes close before brackets so the string ends inside the block.
	candidate, changed := RepairCandidate(`{ key: "value`)

	require.True(t, changed)
	assert.Equal(t, `{ key: "value"}`, candidate)
}

func TestRepairCandidate_EmptySource(t *testing.T) {
	t.Parallel()

	candidate, changed := RepairCandidate("")

	assert.False(t, changed)
	assert.Empty(t, candidate)
}

func TestSuggestionsForError_UnexpectedToken(t *testing.T) {
	t.Parallel()

	hints := SuggestionsForError("SyntaxError: Unexpected token (3:14)")

	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "missing bracket")
}

func TestSuggestionsForError_Unterminated(t *testing.T) {
	t.Parallel()

	hints := SuggestionsForError("SyntaxError: Unterminated string constant (1:10)")

	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "unterminated")
}

func TestSuggestionsForError_ExpectedSyntax(t *testing.T) {
	t.Parallel()

	hints := SuggestionsForError(`Expected ";" but found "}"`)

	require.Len(t, hints, 1)
}

func TestSuggestionsForError_UnknownMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, SuggestionsForError("engine exploded for no reason"))
}

func TestSuggestionsForError_MultipleMatches(t *testing.T) {
	t.Parallel()

	hints := SuggestionsForError("Unexpected token; Unterminated string constant")

	assert.Len(t, hints, 2)
}
