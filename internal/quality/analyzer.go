package quality

import (
	"slices"

	"github.com/codegraft/codegraft/pkg/textscan"
)

// Score bounds.
const (
	scoreBase  = 100
	scoreFloor = 0
)

// Analyzer runs the rule registry over source text and scores the
// results. Construct once and share; Analyzer is stateless after
// construction and safe for concurrent use.
type Analyzer struct {
	policy Policy
	rules  []Rule
}

// NewAnalyzer creates an Analyzer with the given scoring policy.
func NewAnalyzer(policy Policy) *Analyzer {
	return &Analyzer{policy: policy, rules: registry()}
}

// Rules returns the registry records in evaluation order.
func (a *Analyzer) Rules() []Rule {
	return slices.Clone(a.rules)
}

// Analyze runs every rule over source and returns the findings in
// registry order.
func (a *Analyzer) Analyze(source string) []Finding {
	var findings []Finding

	for _, rule := range a.rules {
		for _, m := range rule.detect(source) {
			findings = append(findings, Finding{
				Rule:       rule.ID,
				Category:   rule.Category,
				Severity:   rule.Severity,
				Message:    rule.Summary,
				Snippet:    truncateSnippet(m.snippet),
				Line:       textscan.LineAt(source, m.offset),
				WCAG:       rule.WCAG,
				Suggestion: rule.Suggestion,
			})
		}
	}

	return findings
}

// AnalyzeCategory runs the registry and keeps only one category's
// findings.
func (a *Analyzer) AnalyzeCategory(source string, category Category) []Finding {
	return filterCategory(a.Analyze(source), category)
}

// Score computes a category score: the base minus the policy penalty
// of every finding in that category, floored at zero. Findings from
// other categories are ignored.
func (a *Analyzer) Score(category Category, findings []Finding) int {
	score := scoreBase

	for _, f := range findings {
		if f.Category != category {
			continue
		}

		score -= a.policy.penalty(f)
	}

	if score < scoreFloor {
		return scoreFloor
	}

	return score
}

func filterCategory(findings []Finding, category Category) []Finding {
	var filtered []Finding

	for _, f := range findings {
		if f.Category == category {
			filtered = append(filtered, f)
		}
	}

	return filtered
}
