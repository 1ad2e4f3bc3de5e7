// Package render formats integration results for display: colored
// score summaries and findings tables for the terminal, line diffs
// between original and integrated text, and a self-contained HTML
// chart page.
package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/internal/style"
)

const (
	scoreBarLength     = 20
	scoreMax           = 100
	scoreThresholdGood = 80
	scoreThresholdFair = 60
	defaultMaxFindings = 50
)

const msgNoFindings = "No findings."

// Config controls report rendering.
type Config struct {
	// MaxFindings caps the number of findings table rows. Zero
	// applies the default cap.
	MaxFindings int

	// ShowScoreBars toggles the textual score gauges.
	ShowScoreBars bool
}

// Renderer formats reports for terminal display.
type Renderer struct {
	config Config
}

// NewRenderer creates a Renderer with the given display settings.
func NewRenderer(config Config) *Renderer {
	if config.MaxFindings <= 0 {
		config.MaxFindings = defaultMaxFindings
	}

	return &Renderer{config: config}
}

// Report formats an integration report for display.
func (r *Renderer) Report(rep integrate.Report) string {
	parts := []string{"=== INTEGRATION REPORT ==="}

	if rep.EngineError != "" {
		parts = append(parts, r.engineFailure(rep))
	}

	parts = append(parts, r.scores(rep.AccessibilityScore, rep.PerformanceScore))

	if len(rep.Findings) > 0 {
		parts = append(parts, r.findingsTable(rep.Findings))
	} else {
		parts = append(parts, msgNoFindings)
	}

	if len(rep.AppliedFixes) > 0 {
		parts = append(parts, bulletList("Applied fixes:", rep.AppliedFixes))
	}

	if rep.MergedImportBlock != "" {
		parts = append(parts, "Merged imports:\n"+rep.MergedImportBlock)
	}

	parts = append(parts, sizeLine(rep.SizeDelta))

	return strings.Join(parts, "\n\n")
}

// Optimization formats a standalone quality analysis for display.
func (r *Renderer) Optimization(opt quality.Optimization) string {
	parts := []string{"=== QUALITY ANALYSIS ==="}

	parts = append(parts, r.scores(opt.AccessibilityScore, opt.PerformanceScore))

	findings := make([]quality.Finding, 0, len(opt.AccessibilityIssues)+len(opt.PerformanceIssues))
	findings = append(findings, opt.AccessibilityIssues...)
	findings = append(findings, opt.PerformanceIssues...)

	if len(findings) > 0 {
		parts = append(parts, r.findingsTable(findings))
	} else {
		parts = append(parts, msgNoFindings)
	}

	if len(opt.Improvements) > 0 {
		parts = append(parts, bulletList("Applied fixes:", opt.Improvements))
	}

	parts = append(parts, sizeLine(opt.CodeSize))

	return strings.Join(parts, "\n\n")
}

// Outcome formats a normalization outcome for display. A successful
// outcome renders as the formatted text itself.
func (r *Renderer) Outcome(out style.Outcome) string {
	if out.Success {
		return out.FormattedText
	}

	parts := []string{color.New(color.FgRed).Sprintf("Formatting failed: %s", out.Error)}

	if out.Repaired {
		parts = append(parts, "Repaired candidate:\n"+out.FormattedText)
	}

	if len(out.Suggestions) > 0 {
		parts = append(parts, bulletList("Suggestions:", out.Suggestions))
	}

	return strings.Join(parts, "\n\n")
}

func (r *Renderer) engineFailure(rep integrate.Report) string {
	parts := []string{color.New(color.FgYellow).Sprintf("Formatting skipped: %s", rep.EngineError)}

	if len(rep.Suggestions) > 0 {
		parts = append(parts, bulletList("Suggestions:", rep.Suggestions))
	}

	return strings.Join(parts, "\n")
}

func (r *Renderer) scores(accessibility, performance int) string {
	if r.config.ShowScoreBars {
		return scoreBar("Accessibility", accessibility) + "\n" + scoreBar("Performance", performance)
	}

	return fmt.Sprintf("Accessibility: %d | Performance: %d", accessibility, performance)
}

// findingsTable renders findings as a borderless table, capped at the
// configured row limit.
func (r *Renderer) findingsTable(findings []quality.Finding) string {
	if len(findings) > r.config.MaxFindings {
		findings = findings[:r.config.MaxFindings]
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"RULE", "SEVERITY", "LINE", "MESSAGE"})

	for _, f := range findings {
		tbl.AppendRow(table.Row{f.Rule, severityLabel(f.Severity), f.Line, f.Message})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d findings", len(findings))})

	return tbl.Render()
}

// scoreBar renders a textual gauge for a 0-100 score.
func scoreBar(label string, score int) string {
	if score < 0 {
		score = 0
	}

	if score > scoreMax {
		score = scoreMax
	}

	filled := score * scoreBarLength / scoreMax
	bar := strings.Repeat("█", filled) + strings.Repeat("░", scoreBarLength-filled)

	status := "🔴 Poor"

	switch {
	case score >= scoreThresholdGood:
		status = "🟢 Good"
	case score >= scoreThresholdFair:
		status = "🟡 Fair"
	}

	return fmt.Sprintf("%s: [%s] %d%% %s", label, bar, score, status)
}

func severityLabel(sev quality.Severity) string {
	switch sev {
	case quality.SeverityError, quality.SeverityHigh:
		return color.New(color.FgRed).Sprint(string(sev))
	case quality.SeverityWarning, quality.SeverityMedium:
		return color.New(color.FgYellow).Sprint(string(sev))
	case quality.SeverityInfo, quality.SeverityLow:
		return color.New(color.FgCyan).Sprint(string(sev))
	default:
		return string(sev)
	}
}

func sizeLine(size quality.CodeSize) string {
	before := humanize.Bytes(uint64(size.Before))
	after := humanize.Bytes(uint64(size.After))

	switch {
	case size.Reduction > 0:
		return fmt.Sprintf("Size: %s -> %s (saved %s)", before, after, humanize.Bytes(uint64(size.Reduction)))
	case size.Reduction < 0:
		return fmt.Sprintf("Size: %s -> %s (grew %s)", before, after, humanize.Bytes(uint64(-size.Reduction)))
	default:
		return fmt.Sprintf("Size: %s -> %s (unchanged)", before, after)
	}
}

func bulletList(title string, items []string) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, title)

	for _, item := range items {
		lines = append(lines, "  - "+item)
	}

	return strings.Join(lines, "\n")
}
