package style

import "strings"

// bracketClosers maps opening brackets to their closing counterparts.
var bracketClosers = map[byte]byte{
	'{': '}',
	'[': ']',
	'(': ')',
}

// RepairCandidate produces a best-effort repaired version of source for
// presentation next to a format failure. The scan is purely lexical:
// an odd count of single or double quote characters appends the missing
// quote, and unclosed brackets append their closers in nesting order.
// Returns the candidate and whether it differs from source.
//
// The heuristic does not tokenize, so brackets inside string literals
// and apostrophes in prose can produce imperfect candidates. The engine
// remains the authority; the candidate is advisory only.
func RepairCandidate(source string) (string, bool) {
	candidate := source

	if strings.Count(candidate, `"`)%2 == 1 {
		candidate += `"`
	}

	if strings.Count(candidate, `'`)%2 == 1 {
		candidate += `'`
	}

	var open []byte

	for i := 0; i < len(source); i++ {
		c := source[i]

		if _, isOpener := bracketClosers[c]; isOpener {
			open = append(open, c)

			continue
		}

		if len(open) > 0 && c == bracketClosers[open[len(open)-1]] {
			open = open[:len(open)-1]
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		candidate += string(bracketClosers[open[i]])
	}

	return candidate, candidate != source
}

// suggestionCatalog maps engine error message fragments to remediation
// hints. Order matters: hints are emitted in catalog order.
var suggestionCatalog = []struct {
	needle string
	hint   string
}{
	{"Unexpected token", "Check for a missing bracket, comma, or quote near the reported token."},
	{"Unterminated", "Close the unterminated string or template literal."},
	{"Expected", "The parser expected different syntax here; re-check the preceding line."},
}

// SuggestionsForError maps an engine error message to remediation hints
// via substring matching against a fixed catalog. Unrecognized messages
// produce no suggestions.
func SuggestionsForError(message string) []string {
	var hints []string

	for _, entry := range suggestionCatalog {
		if strings.Contains(message, entry.needle) {
			hints = append(hints, entry.hint)
		}
	}

	return hints
}
