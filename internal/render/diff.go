package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line-level diff between the original and integrated
// text, one prefixed line per row. Returns "" when the texts match.
func (r *Renderer) Diff(original, modified string) string {
	if original == modified {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Reduce to line-level tokens before diffing so the character
	// diff cannot split lines at newline boundaries.
	a, b, lineArray := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	plain := func(a ...any) string { return fmt.Sprint(a...) }

	var out strings.Builder

	for _, diff := range diffs {
		prefix := " "
		paint := plain

		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			paint = color.New(color.FgGreen).SprintFunc()
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			paint = color.New(color.FgRed).SprintFunc()
		case diffmatchpatch.DiffEqual:
		}

		for line := range strings.Lines(diff.Text) {
			out.WriteString(paint(prefix + strings.TrimSuffix(line, "\n")))
			out.WriteByte('\n')
		}
	}

	return out.String()
}
