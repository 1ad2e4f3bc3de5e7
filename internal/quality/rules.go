package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule is one registry record: stable ID, category, severity, an
// optional conformance criterion, and the lexical detector that finds
// violations. The registry is closed; rules are never added at runtime.
type Rule struct {
	ID         string
	Category   Category
	Severity   Severity
	WCAG       string
	Summary    string
	Suggestion string

	detect func(text string) []match
}

// match is one detector hit before rule metadata is stamped on.
type match struct {
	offset  int
	snippet string
}

// Heuristic thresholds and fixed signal values.
const (
	// genericContainerLimit is the generic-container count above which
	// markup with too few landmarks is flagged.
	genericContainerLimit = 10

	// landmarkMinimum is the smallest landmark count that excuses a
	// container-heavy document.
	landmarkMinimum = 2

	// badContrastForeground and badContrastBackground form the fixed
	// known-bad class pair. Light gray text on a white surface falls
	// well below the minimum contrast ratio.
	badContrastForeground = "text-gray-300"
	badContrastBackground = "bg-white"

	snippetMaxLen = 120
)

// Attribute patterns shared by detectors and fixers. Tag spans are not
// regex-based; see scanOpenTags.
var (
	reAltAttr       = regexp.MustCompile(`\balt\s*=`)
	reTypeAttr      = regexp.MustCompile(`\btype\s*=`)
	reLoadingAttr   = regexp.MustCompile(`\bloading\s*=`)
	reAriaLabel     = regexp.MustCompile(`\baria-label(?:ledby)?\s*=`)
	reIDAttr        = regexp.MustCompile(`\bid\s*=`)
	reInputTypeSkip = regexp.MustCompile(`\btype\s*=\s*["'](?:hidden|submit|button)["']`)
	reIconChild     = regexp.MustCompile(`^\s*<(?:svg\b|i\b|[A-Za-z]*Icon\b)`)
	reClassAttr     = regexp.MustCompile(`class(?:Name)?\s*=\s*["'][^"']*["']`)
	reMouseOverAttr = regexp.MustCompile(`\bonMouseOver\s*=`)
	reMouseOutAttr  = regexp.MustCompile(`\bonMouseOut\s*=`)
	reFocusAttr     = regexp.MustCompile(`\bonFocus\s*=`)
	reBlurAttr      = regexp.MustCompile(`\bonBlur\s*=`)
	reClickAttr     = regexp.MustCompile(`\bonClick\s*=`)
	reKeyAttr       = regexp.MustCompile(`\bonKey(?:Down|Up|Press)\s*=`)

	reInlineClickClosure = regexp.MustCompile(`onClick\s*=\s*\{\s*(?:async\s+)?(?:\([^)]*\)\s*=>|[A-Za-z_$][\w$]*\s*=>|function\b)`)
	reCollectionMap      = regexp.MustCompile(`\b(?:items|list|rows|data|results|entries|options)\.map\s*\(`)
	reVirtualHint        = regexp.MustCompile(`(?i)virtual`)
	reComponentDecl      = regexp.MustCompile(`\b(?:const|function)\s+[A-Z][\w$]*\s*=?\s*\(\s*(?:\{|props\b)`)
	reMemoCall           = regexp.MustCompile(`\b(?:React\.)?memo\s*\(`)
	reUseMemoCall        = regexp.MustCompile(`\buseMemo\s*\(`)
	reFilterReduce       = regexp.MustCompile(`\.(?:filter|reduce)\s*\(`)
	reHeavyImport        = regexp.MustCompile(`(?m)^\s*import\b[^'"\n]*['"](?:lodash|moment|rxjs)['"]`)
	reExportDefaultIdent = regexp.MustCompile(`\bexport default ([A-Z][\w$]*);`)
)

// registry returns the closed rule set in evaluation order:
// accessibility rules first, then performance rules.
func registry() []Rule {
	return []Rule{
		{
			ID: "img-alt", Category: CategoryAccessibility, Severity: SeverityError, WCAG: "1.1.1",
			Summary:    "Image element lacks alternative text",
			Suggestion: `Add an alt attribute; use alt="" for decorative images.`,
			detect:     detectMissingImgAlt,
		},
		{
			ID: "icon-button-label", Category: CategoryAccessibility, Severity: SeverityError, WCAG: "4.1.2",
			Summary:    "Icon-only button lacks an accessible label",
			Suggestion: "Add an aria-label describing the action.",
			detect:     detectIconButtonLabel,
		},
		{
			ID: "input-label", Category: CategoryAccessibility, Severity: SeverityError, WCAG: "3.3.2",
			Summary:    "Form input lacks a label association",
			Suggestion: "Associate a label element or add an aria-label.",
			detect:     detectInputLabel,
		},
		{
			ID: "landmark-density", Category: CategoryAccessibility, Severity: SeverityWarning, WCAG: "1.3.1",
			Summary:    "Markup relies on generic containers with too few landmarks",
			Suggestion: "Replace generic containers with landmarks such as main, nav, or section.",
			detect:     detectLandmarkDensity,
		},
		{
			ID: "contrast-pair", Category: CategoryAccessibility, Severity: SeverityWarning, WCAG: "1.4.3",
			Summary:    "Foreground and background classes form a low-contrast pair",
			Suggestion: "Pick a darker foreground or a lighter background class.",
			detect:     detectContrastPair,
		},
		{
			ID: "keyboard-handler", Category: CategoryAccessibility, Severity: SeverityWarning, WCAG: "2.1.1",
			Summary:    "Pointer handler lacks a keyboard equivalent",
			Suggestion: "Pair pointer handlers with onFocus/onBlur or an onKeyDown handler.",
			detect:     detectKeyboardHandler,
		},
		{
			ID: "inline-closure-handler", Category: CategoryPerformance, Severity: SeverityLow,
			Summary:    "Inline closure bound to a click handler",
			Suggestion: "Hoist the handler into useCallback.",
			detect:     detectInlineClosureHandler,
		},
		{
			ID: "unvirtualized-list", Category: CategoryPerformance, Severity: SeverityHigh,
			Summary:    "Large collection rendered without virtualization",
			Suggestion: "Render long lists through a virtualization helper.",
			detect:     detectUnvirtualizedList,
		},
		{
			ID: "missing-memo", Category: CategoryPerformance, Severity: SeverityMedium,
			Summary:    "Component reads external inputs without a pure-rendering wrapper",
			Suggestion: "Wrap the component in React.memo.",
			detect:     detectMissingMemo,
		},
		{
			ID: "unmemoized-computation", Category: CategoryPerformance, Severity: SeverityMedium,
			Summary:    "Collection computation outside a memoization primitive",
			Suggestion: "Wrap the computation in useMemo.",
			detect:     detectUnmemoizedComputation,
		},
		{
			ID: "heavy-import", Category: CategoryPerformance, Severity: SeverityHigh,
			Summary:    "Whole-library import of a heavy dependency",
			Suggestion: "Import the narrow entry point instead of the whole library.",
			detect:     detectHeavyImport,
		},
	}
}

func detectMissingImgAlt(text string) []match {
	var hits []match

	for _, tag := range scanOpenTags(text) {
		if tag.name != "img" || reAltAttr.MatchString(tag.text) {
			continue
		}

		hits = append(hits, match{offset: tag.start, snippet: tag.text})
	}

	return hits
}

func detectIconButtonLabel(text string) []match {
	var hits []match

	for _, tag := range scanOpenTags(text) {
		if tag.name != "button" || reAriaLabel.MatchString(tag.text) {
			continue
		}

		if !reIconChild.MatchString(text[tag.start+len(tag.text):]) {
			continue
		}

		hits = append(hits, match{offset: tag.start, snippet: tag.text})
	}

	return hits
}

func detectInputLabel(text string) []match {
	var hits []match

	for _, tag := range scanOpenTags(text) {
		if tag.name != "input" || reInputTypeSkip.MatchString(tag.text) {
			continue
		}

		if reAriaLabel.MatchString(tag.text) || reIDAttr.MatchString(tag.text) {
			continue
		}

		hits = append(hits, match{offset: tag.start, snippet: tag.text})
	}

	return hits
}

func detectLandmarkDensity(text string) []match {
	var generic, landmarks int

	for _, tag := range scanOpenTags(text) {
		switch tag.name {
		case "div":
			generic++
		case "header", "nav", "main", "footer", "aside", "section", "article":
			landmarks++
		}
	}

	if generic <= genericContainerLimit || landmarks >= landmarkMinimum {
		return nil
	}

	return []match{{
		offset:  0,
		snippet: fmt.Sprintf("%d generic containers, %d landmarks", generic, landmarks),
	}}
}

func detectContrastPair(text string) []match {
	var hits []match

	for _, loc := range reClassAttr.FindAllStringIndex(text, -1) {
		attr := text[loc[0]:loc[1]]
		if strings.Contains(attr, badContrastForeground) && strings.Contains(attr, badContrastBackground) {
			hits = append(hits, match{offset: loc[0], snippet: attr})
		}
	}

	return hits
}

func detectKeyboardHandler(text string) []match {
	var hits []match

	for _, tag := range scanOpenTags(text) {
		pointerOnly := (reMouseOverAttr.MatchString(tag.text) && !reFocusAttr.MatchString(tag.text)) ||
			(reMouseOutAttr.MatchString(tag.text) && !reBlurAttr.MatchString(tag.text))

		clickWithoutKeys := (tag.name == "div" || tag.name == "span") &&
			reClickAttr.MatchString(tag.text) && !reKeyAttr.MatchString(tag.text)

		if !pointerOnly && !clickWithoutKeys {
			continue
		}

		hits = append(hits, match{offset: tag.start, snippet: tag.text})
	}

	return hits
}

func detectInlineClosureHandler(text string) []match {
	var hits []match

	for _, loc := range reInlineClickClosure.FindAllStringIndex(text, -1) {
		hits = append(hits, match{offset: loc[0], snippet: text[loc[0]:loc[1]]})
	}

	return hits
}

func detectUnvirtualizedList(text string) []match {
	if reVirtualHint.MatchString(text) {
		return nil
	}

	var hits []match

	for _, loc := range reCollectionMap.FindAllStringIndex(text, -1) {
		hits = append(hits, match{offset: loc[0], snippet: text[loc[0]:loc[1]]})
	}

	return hits
}

func detectMissingMemo(text string) []match {
	if reMemoCall.MatchString(text) {
		return nil
	}

	var hits []match

	for _, loc := range reComponentDecl.FindAllStringIndex(text, -1) {
		hits = append(hits, match{offset: loc[0], snippet: text[loc[0]:loc[1]]})
	}

	return hits
}

func detectUnmemoizedComputation(text string) []match {
	if reUseMemoCall.MatchString(text) {
		return nil
	}

	var hits []match

	for _, loc := range reFilterReduce.FindAllStringIndex(text, -1) {
		hits = append(hits, match{offset: loc[0], snippet: text[loc[0]:loc[1]]})
	}

	return hits
}

func detectHeavyImport(text string) []match {
	var hits []match

	for _, loc := range reHeavyImport.FindAllStringIndex(text, -1) {
		hits = append(hits, match{offset: loc[0], snippet: strings.TrimSpace(text[loc[0]:loc[1]])})
	}

	return hits
}

// openTag is one element open tag located by scanOpenTags.
type openTag struct {
	name  string
	text  string
	start int
}

// scanOpenTags returns every element open tag in text. A '>' inside a
// braced attribute expression does not terminate its tag, so handlers
// like onClick={() => fire()} stay within their tag span and fixers
// never splice an attribute into the middle of one. Close tags and
// tags that never terminate are skipped.
func scanOpenTags(text string) []openTag {
	var tags []openTag

	for i := 0; i < len(text); i++ {
		if text[i] != '<' || i+1 >= len(text) || !isASCIILetter(text[i+1]) {
			continue
		}

		nameEnd := i + 1
		for nameEnd < len(text) && isTagNameByte(text[nameEnd]) {
			nameEnd++
		}

		end, ok := scanTagEnd(text, nameEnd)
		if !ok {
			continue
		}

		tags = append(tags, openTag{name: text[i+1 : nameEnd], text: text[i:end], start: i})

		i = end - 1
	}

	return tags
}

// scanTagEnd returns the index just past the '>' closing a tag whose
// name ends at from. Braces nest. An unexpected '<' at brace depth
// zero means the tag never closes and the scan gives up on it.
func scanTagEnd(text string, from int) (int, bool) {
	depth := 0

	for i := from; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				return i + 1, true
			}
		case '<':
			if depth == 0 {
				return 0, false
			}
		}
	}

	return 0, false
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isTagNameByte(b byte) bool {
	return isASCIILetter(b) || (b >= '0' && b <= '9') || b == '-' || b == '.'
}

// truncateSnippet bounds a snippet for display, cutting on a rune
// boundary.
func truncateSnippet(s string) string {
	if len(s) <= snippetMaxLen {
		return s
	}

	cut := snippetMaxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."
}
