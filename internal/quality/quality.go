// Package quality detects accessibility and performance defects in
// generated component source and applies safe, idempotent textual
// remediations. The rule registry is a closed set: every rule is a
// static record with a lexical detector, and no detector can fail. A
// false positive is a noisy finding, never an error.
package quality

// Category groups rules by the concern they protect.
type Category string

// Rule categories.
const (
	CategoryAccessibility Category = "accessibility"
	CategoryPerformance   Category = "performance"
)

// Severity ranks a finding within its category. Accessibility rules
// use error, warning, and info; performance rules use high, medium,
// and low.
type Severity string

// Finding severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
)

// Finding is one detected defect instance. Findings are immutable once
// emitted by an analysis pass.
type Finding struct {
	// Rule is the registry ID of the rule that produced the finding.
	Rule string `json:"rule" yaml:"rule"`

	// Category the rule belongs to.
	Category Category `json:"category" yaml:"category"`

	// Severity of this defect.
	Severity Severity `json:"severity" yaml:"severity"`

	// Message describes the defect.
	Message string `json:"message" yaml:"message"`

	// Snippet is the offending source excerpt, truncated for display.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Line is the 1-based source line of the occurrence.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// WCAG names the conformance criterion, accessibility rules only.
	WCAG string `json:"wcag,omitempty" yaml:"wcag,omitempty"`

	// Suggestion is the remediation hint attached to the rule.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Policy maps finding severities to score penalties. The weights are
// product tuning rather than invariants, so configuration may override
// any of them.
type Policy struct {
	AccessibilityError   int
	AccessibilityWarning int
	AccessibilityInfo    int
	PerformanceHigh      int
	PerformanceMedium    int
	PerformanceLow       int
}

// Default penalty weights.
const (
	defaultAccessibilityErrorPenalty   = 10
	defaultAccessibilityWarningPenalty = 5
	defaultAccessibilityInfoPenalty    = 2
	defaultPerformanceHighPenalty      = 15
	defaultPerformanceMediumPenalty    = 10
	defaultPerformanceLowPenalty       = 5
)

// DefaultPolicy returns the default penalty weights.
func DefaultPolicy() Policy {
	return Policy{
		AccessibilityError:   defaultAccessibilityErrorPenalty,
		AccessibilityWarning: defaultAccessibilityWarningPenalty,
		AccessibilityInfo:    defaultAccessibilityInfoPenalty,
		PerformanceHigh:      defaultPerformanceHighPenalty,
		PerformanceMedium:    defaultPerformanceMediumPenalty,
		PerformanceLow:       defaultPerformanceLowPenalty,
	}
}

// penalty returns the score deduction for one finding.
func (p Policy) penalty(f Finding) int {
	if f.Category == CategoryAccessibility {
		switch f.Severity {
		case SeverityError:
			return p.AccessibilityError
		case SeverityWarning:
			return p.AccessibilityWarning
		default:
			return p.AccessibilityInfo
		}
	}

	switch f.Severity {
	case SeverityHigh:
		return p.PerformanceHigh
	case SeverityMedium:
		return p.PerformanceMedium
	default:
		return p.PerformanceLow
	}
}
