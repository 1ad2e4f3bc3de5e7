package integrate

import (
	"github.com/codegraft/codegraft/internal/quality"
)

// Request carries one integration job. Source is the generated
// component text and is the only required field. FileName hints the
// dialect and is forwarded to the formatting engine. Destination is
// the current text of the target file, consumed as merge context for
// import resolution. StyleOverrides adjust formatting defaults for
// this request only.
type Request struct {
	Source         string
	FileName       string
	Destination    string
	StyleOverrides map[string]any
}

// Report is the structured outcome attached to every integration. It
// is advisory: scores and findings inform the caller but never gate
// the returned text.
type Report struct {
	AccessibilityScore int               `json:"accessibilityScore" yaml:"accessibilityScore"`
	PerformanceScore   int               `json:"performanceScore" yaml:"performanceScore"`
	Findings           []quality.Finding `json:"findings" yaml:"findings"`
	AppliedFixes       []string          `json:"appliedFixes" yaml:"appliedFixes"`
	MergedImportBlock  string            `json:"mergedImportBlock" yaml:"mergedImportBlock"`
	SizeDelta          quality.CodeSize  `json:"sizeDelta" yaml:"sizeDelta"`

	// Formatted reports whether the style engine produced the working
	// text. When false the pipeline ran on the original source and
	// EngineError carries the reason.
	Formatted   bool     `json:"formatted" yaml:"formatted"`
	EngineError string   `json:"engineError,omitempty" yaml:"engineError,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`

	DurationMS int64 `json:"durationMs" yaml:"durationMs"`
}

// Result is the final integrated text plus its report.
type Result struct {
	Text   string `json:"text" yaml:"text"`
	Report Report `json:"report" yaml:"report"`
}
