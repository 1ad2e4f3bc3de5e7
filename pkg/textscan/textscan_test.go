package textscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinary_EmptyData(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte{}))
}

func TestIsBinary_PureText(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary([]byte("const x = 1;\n")))
}

func TestIsBinary_NullByte(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBinary([]byte("hello\x00world")))
}

func TestIsBinary_NullBeyondSniffBoundary(t *testing.T) {
	t.Parallel()

	// Null byte beyond the sniff window should NOT be detected.
	data := make([]byte, BinarySniffLength+100)
	for i := range data {
		data[i] = 'a'
	}

	data[BinarySniffLength+50] = 0x00

	assert.False(t, IsBinary(data))
}

func TestCountLines_EmptyData(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountLines(nil))
}

func TestCountLines_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, CountLines([]byte("a\nb\nc")))
}

func TestCountLines_TrailingNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, CountLines([]byte("a\nb\nc\n")))
}

func TestContainsWord_ExactMatch(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsWord("const [count] = useState(0);", "useState"))
}

func TestContainsWord_SubstringDoesNotMatch(t *testing.T) {
	t.Parallel()

	// "useState" inside a longer identifier is not a whole-word occurrence.
	assert.False(t, ContainsWord("const useStateLike = 1;", "useState"))
	assert.False(t, ContainsWord("const myuseState = 1;", "useState"))
}

func TestContainsWord_DollarIsIdentifierByte(t *testing.T) {
	t.Parallel()

	assert.False(t, ContainsWord("$axios.get(url)", "axios"))
	assert.True(t, ContainsWord("axios.get(url)", "axios"))
}

func TestContainsWord_AtTextBoundaries(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsWord("useState", "useState"))
	assert.True(t, ContainsWord("useState()", "useState"))
	assert.True(t, ContainsWord("(useState", "useState"))
}

func TestContainsWord_LaterOccurrenceMatches(t *testing.T) {
	t.Parallel()

	// First occurrence is embedded, second stands alone.
	assert.True(t, ContainsWord("reuseState; useState()", "useState"))
}

func TestContainsWord_EmptyWord(t *testing.T) {
	t.Parallel()

	assert.False(t, ContainsWord("anything", ""))
}

func TestLineAt_FirstLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, LineAt("a\nb\nc", 0))
}

func TestLineAt_MiddleLine(t *testing.T) {
	t.Parallel()

	text := "line1\nline2\nline3"

	assert.Equal(t, 2, LineAt(text, strings.Index(text, "line2")))
}

func TestLineAt_OffsetPastEnd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, LineAt("a\nb\nc", 100))
}

func TestLineAt_NegativeOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, LineAt("a\nb", -5))
}
