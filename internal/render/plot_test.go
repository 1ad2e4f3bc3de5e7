package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/integrate"
)

func TestRenderer_Plot_WritesSelfContainedPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := NewRenderer(Config{}).Plot(&buf, "UserCard.jsx", sampleReport())
	require.NoError(t, err)

	html := buf.String()

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "echarts.min.js")
	assert.Contains(t, html, "Integration Report")
	assert.Contains(t, html, "UserCard.jsx")
	assert.Contains(t, html, "Quality Scores")
	assert.Contains(t, html, "Findings by Rule")
	assert.Contains(t, html, `class="chart-box"`)
	assert.Contains(t, html, "img-alt")
	assert.Contains(t, html, "Applied Fixes")
	assert.Contains(t, html, "Added empty alt attributes to image elements")
	assert.NotContains(t, html, `class="container"`)
}

func TestRenderer_Plot_NoFindings(t *testing.T) {
	t.Parallel()

	rep := integrate.Report{AccessibilityScore: 100, PerformanceScore: 100, Formatted: true}

	var buf bytes.Buffer

	err := NewRenderer(Config{}).Plot(&buf, "Widget.tsx", rep)
	require.NoError(t, err)

	html := buf.String()

	assert.Contains(t, html, "No data")
	assert.NotContains(t, html, `<ul class="fixes">`)
}

func TestRenderer_Plot_StatsReflectReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := NewRenderer(Config{}).Plot(&buf, "UserCard.jsx", sampleReport())
	require.NoError(t, err)

	html := buf.String()

	assert.Contains(t, html, "Accessibility")
	assert.Contains(t, html, "Performance")
	assert.Contains(t, html, ">90<")
	assert.Contains(t, html, ">85<")
}
