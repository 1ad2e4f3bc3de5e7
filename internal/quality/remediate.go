package quality

import (
	"regexp"
	"strings"
)

// remediation is one guarded textual rewrite. Every rewrite checks for
// the attribute or wrapper it would insert before touching the text,
// so re-running the sequence is a no-op.
type remediation struct {
	description string
	apply       func(src string) (string, bool)
}

// remediations returns the fixed rewrite sequence in application order.
func remediations() []remediation {
	return []remediation{
		{description: "Added empty alt attributes to image elements", apply: addImgAlt},
		{description: "Added explicit type attributes to button elements", apply: addButtonType},
		{description: "Wrapped the exported component in React.memo", apply: wrapExportedComponent},
		{description: "Added lazy loading to image elements", apply: addImgLazyLoading},
	}
}

// AutoRemediate applies the fixed rewrite sequence to source and
// returns the transformed text along with a description of every
// rewrite that changed something.
func (a *Analyzer) AutoRemediate(source string) (string, []string) {
	text := source

	var applied []string

	for _, r := range remediations() {
		rewritten, changed := r.apply(text)
		if !changed {
			continue
		}

		text = rewritten
		applied = append(applied, r.description)
	}

	return text, applied
}

// CodeSize compares character counts around remediation.
type CodeSize struct {
	Before    int `json:"before" yaml:"before"`
	After     int `json:"after" yaml:"after"`
	Reduction int `json:"reduction" yaml:"reduction"`
}

// Optimization is the end-to-end result of analyzing and remediating
// one component source.
type Optimization struct {
	OriginalCode        string    `json:"originalCode" yaml:"originalCode"`
	OptimizedCode       string    `json:"optimizedCode" yaml:"optimizedCode"`
	AccessibilityScore  int       `json:"accessibilityScore" yaml:"accessibilityScore"`
	PerformanceScore    int       `json:"performanceScore" yaml:"performanceScore"`
	AccessibilityIssues []Finding `json:"accessibilityIssues" yaml:"accessibilityIssues"`
	PerformanceIssues   []Finding `json:"performanceIssues" yaml:"performanceIssues"`
	Improvements        []string  `json:"improvements" yaml:"improvements"`
	CodeSize            CodeSize  `json:"codeSize" yaml:"codeSize"`
}

// Optimize analyzes source, applies the remediation sequence, and
// reports both. Scores reflect the original text; the optimized text
// carries the fixes.
func (a *Analyzer) Optimize(source string) Optimization {
	findings := a.Analyze(source)

	accessibility := filterCategory(findings, CategoryAccessibility)
	performance := filterCategory(findings, CategoryPerformance)

	optimized, improvements := a.AutoRemediate(source)

	return Optimization{
		OriginalCode:        source,
		OptimizedCode:       optimized,
		AccessibilityScore:  a.Score(CategoryAccessibility, accessibility),
		PerformanceScore:    a.Score(CategoryPerformance, performance),
		AccessibilityIssues: accessibility,
		PerformanceIssues:   performance,
		Improvements:        improvements,
		CodeSize: CodeSize{
			Before:    len(source),
			After:     len(optimized),
			Reduction: len(source) - len(optimized),
		},
	}
}

func addImgAlt(src string) (string, bool) {
	return insertTagAttribute(src, "img", reAltAttr, `alt=""`)
}

func addButtonType(src string) (string, bool) {
	return insertTagAttribute(src, "button", reTypeAttr, `type="button"`)
}

func addImgLazyLoading(src string) (string, bool) {
	return insertTagAttribute(src, "img", reLoadingAttr, `loading="lazy"`)
}

// insertTagAttribute inserts attr into every open tag of element name
// that does not already match guard.
func insertTagAttribute(src, name string, guard *regexp.Regexp, attr string) (string, bool) {
	var (
		out     strings.Builder
		last    int
		changed bool
	)

	for _, tag := range scanOpenTags(src) {
		if tag.name != name || guard.MatchString(tag.text) {
			continue
		}

		out.WriteString(src[last:tag.start])
		out.WriteString(insertAttribute(tag.text, attr))

		last = tag.start + len(tag.text)
		changed = true
	}

	if !changed {
		return src, false
	}

	out.WriteString(src[last:])

	return out.String(), true
}

// insertAttribute appends attr before the tag's closing bracket,
// preserving self-closing form.
func insertAttribute(tag, attr string) string {
	if strings.HasSuffix(tag, "/>") {
		return strings.TrimRight(tag[:len(tag)-len("/>")], " ") + " " + attr + " />"
	}

	return tag[:len(tag)-1] + " " + attr + ">"
}

// wrapExportedComponent wraps a bare `export default Name;` in
// React.memo. Only the identifier form is rewritten, and any existing
// memo call in the text disables the rewrite.
func wrapExportedComponent(src string) (string, bool) {
	if reMemoCall.MatchString(src) {
		return src, false
	}

	loc := reExportDefaultIdent.FindStringSubmatchIndex(src)
	if loc == nil {
		return src, false
	}

	name := src[loc[2]:loc[3]]

	return src[:loc[0]] + "export default React.memo(" + name + ");" + src[loc[1]:], true
}
