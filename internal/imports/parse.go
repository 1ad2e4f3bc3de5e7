package imports

import (
	"regexp"
	"strings"
)

// Recognized single-line declaration shapes. Evaluation order is fixed;
// the anchored patterns are mutually exclusive, so precedence never
// reassigns a line from one shape to another.
var (
	// reImportDefault matches `import Name from 'module'`.
	reImportDefault = regexp.MustCompile(`^import\s+([A-Za-z_$][\w$]*)\s+from\s*['"]([^'"]+)['"]`)

	// reImportNamed matches `import { a, b as c } from 'module'`.
	reImportNamed = regexp.MustCompile(`^import\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)

	// reImportCombined matches `import Name, { a } from 'module'`.
	reImportCombined = regexp.MustCompile(`^import\s+([A-Za-z_$][\w$]*)\s*,\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)

	// reImportSideEffect matches `import 'module'`.
	reImportSideEffect = regexp.MustCompile(`^import\s*['"]([^'"]+)['"]`)
)

// Parse scans the leading contiguous run of import, comment, and blank
// lines and returns the recognized declarations in first-seen order,
// folding repeats of the same module together. Scanning stops at the
// first body line, bounding cost to the declaration count rather than
// the file size.
//
// Accepted shapes, one per line: a default binding, a named-binding
// block, a combined default plus named block, and the bare side-effect
// form. A line that opens with the import keyword but matches none of
// these (namespace bindings, blocks split across lines, type-only
// forms) is skipped and never becomes a declaration.
func Parse(source string) []Declaration {
	var (
		decls          []Declaration
		inBlockComment bool
	)

	index := make(map[string]int)

	for raw := range strings.Lines(source) {
		line := strings.TrimSpace(raw)

		if inBlockComment {
			if strings.Contains(line, "*/") {
				inBlockComment = false
			}

			continue
		}

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "/*") {
			if !strings.Contains(line, "*/") {
				inBlockComment = true
			}

			continue
		}

		if !isImportLine(line) {
			break
		}

		decl, ok := parseImportLine(line)
		if !ok {
			continue
		}

		decls = appendFold(decls, index, decl)
	}

	return decls
}

// StripImports removes the leading import region from source and
// returns the remaining body. Comment and blank lines in the region are
// kept. Import-shaped lines are removed whether or not Parse recognizes
// them, so an unrecognized form disappears from the body the same way
// it never becomes a declaration.
func StripImports(source string) string {
	var (
		body           strings.Builder
		inBody         bool
		inBlockComment bool
	)

	for raw := range strings.Lines(source) {
		if inBody {
			body.WriteString(raw)

			continue
		}

		line := strings.TrimSpace(raw)

		if inBlockComment {
			body.WriteString(raw)

			if strings.Contains(line, "*/") {
				inBlockComment = false
			}

			continue
		}

		if line == "" || strings.HasPrefix(line, "//") {
			body.WriteString(raw)

			continue
		}

		if strings.HasPrefix(line, "/*") {
			body.WriteString(raw)

			if !strings.Contains(line, "*/") {
				inBlockComment = true
			}

			continue
		}

		if isImportLine(line) {
			continue
		}

		inBody = true

		body.WriteString(raw)
	}

	return strings.TrimLeft(body.String(), "\r\n")
}

// stripImportLines removes every import-shaped line from text, wherever
// it appears. Used to build the searchable body for binding-usage
// checks, where an import line must not count as a use.
func stripImportLines(text string) string {
	var kept strings.Builder

	for raw := range strings.Lines(text) {
		if isImportLine(strings.TrimSpace(raw)) {
			continue
		}

		kept.WriteString(raw)
	}

	return kept.String()
}

// isImportLine reports whether a trimmed line opens an import
// declaration. The keyword must be followed by a binding, brace, or
// module string so identifiers like importantThing() do not match.
// Dynamic import expressions (an opening parenthesis) are body code.
func isImportLine(line string) bool {
	rest, ok := strings.CutPrefix(line, "import")
	if !ok || rest == "" {
		return false
	}

	switch rest[0] {
	case ' ', '\t', '{', '\'', '"':
		return true
	default:
		return false
	}
}

// parseImportLine recognizes the four accepted declaration shapes.
func parseImportLine(line string) (Declaration, bool) {
	if m := reImportDefault.FindStringSubmatch(line); m != nil {
		return Declaration{Module: m[2], Default: m[1]}, true
	}

	if m := reImportNamed.FindStringSubmatch(line); m != nil {
		return Declaration{Module: m[2], Named: parseNamedList(m[1])}, true
	}

	if m := reImportCombined.FindStringSubmatch(line); m != nil {
		return Declaration{Module: m[3], Default: m[1], Named: parseNamedList(m[2])}, true
	}

	if m := reImportSideEffect.FindStringSubmatch(line); m != nil {
		return Declaration{Module: m[1], SideEffect: true}, true
	}

	return Declaration{}, false
}

// parseNamedList splits a named-binding block body, normalizing inner
// whitespace and dropping duplicates while preserving first-seen order.
func parseNamedList(block string) []string {
	parts := strings.Split(block, ",")
	seen := make(map[string]struct{}, len(parts))

	var named []string

	for _, part := range parts {
		binding := strings.Join(strings.Fields(part), " ")
		if binding == "" {
			continue
		}

		if _, ok := seen[binding]; ok {
			continue
		}

		seen[binding] = struct{}{}

		named = append(named, binding)
	}

	return named
}
