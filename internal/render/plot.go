package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/quality"
)

const (
	chartWidth       = "100%"
	chartHeight      = "500px"
	emptyChartHeight = "400px"
	xAxisRotate      = 30
	topRulesLimit    = 20
)

// Series colors, dark palette.
const (
	colorAccent = "#fbbf24" // amber-400.
	colorSky    = "#38bdf8" // sky-400.
)

//go:embed templates/page.html
var pageFS embed.FS

var (
	pageTmpl     *template.Template
	pageTmplOnce sync.Once
	pageTmplErr  error
)

func pageTemplate() (*template.Template, error) {
	pageTmplOnce.Do(func() {
		pageTmpl, pageTmplErr = template.ParseFS(pageFS, "templates/page.html")
		if pageTmplErr != nil {
			pageTmplErr = fmt.Errorf("parse page template: %w", pageTmplErr)
		}
	})

	return pageTmpl, pageTmplErr
}

type pageData struct {
	Title    string
	Subtitle string
	Stats    []pageStat
	Sections []pageSection
	Fixes    []string
}

type pageStat struct {
	Label string
	Value string
}

type pageSection struct {
	Title    string
	Subtitle string
	Chart    template.HTML
}

type chartRenderer interface {
	Render(w io.Writer) error
}

// Plot writes a self-contained HTML page visualizing the report:
// category scores, findings grouped by rule, and the applied fixes.
// The subtitle names the integrated file.
func (r *Renderer) Plot(w io.Writer, subtitle string, rep integrate.Report) error {
	data := pageData{
		Title:    "Integration Report",
		Subtitle: subtitle,
		Stats: []pageStat{
			{Label: "Accessibility", Value: strconv.Itoa(rep.AccessibilityScore)},
			{Label: "Performance", Value: strconv.Itoa(rep.PerformanceScore)},
			{Label: "Findings", Value: strconv.Itoa(len(rep.Findings))},
			{Label: "Applied Fixes", Value: strconv.Itoa(len(rep.AppliedFixes))},
		},
		Sections: []pageSection{
			{
				Title:    "Quality Scores",
				Subtitle: "Category scores out of 100, measured before remediation.",
				Chart:    chartFragment(buildScoreChart(rep)),
			},
			{
				Title:    "Findings by Rule",
				Subtitle: "Detected defects grouped by the rule that flagged them.",
				Chart:    chartFragment(buildFindingsChart(rep.Findings)),
			},
		},
		Fixes: rep.AppliedFixes,
	}

	tmpl, err := pageTemplate()
	if err != nil {
		return err
	}

	err = tmpl.ExecuteTemplate(w, "page.html", data)
	if err != nil {
		return fmt.Errorf("render plot page: %w", err)
	}

	return nil
}

func buildScoreChart(rep integrate.Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: "transparent",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)
	bar.SetXAxis([]string{"Accessibility", "Performance"})

	data := []opts.BarData{
		{Value: rep.AccessibilityScore},
		{Value: rep.PerformanceScore},
	}

	bar.AddSeries("Score", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorAccent}))

	return bar
}

func buildFindingsChart(findings []quality.Finding) *charts.Bar {
	if len(findings) == 0 {
		return emptyChart("Findings by Rule")
	}

	counts := make(map[string]int, len(findings))

	for _, f := range findings {
		counts[f.Rule]++
	}

	labels, data := topRules(counts)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: "transparent",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	bar.SetXAxis(labels)

	barData := make([]opts.BarData, len(data))
	for i, v := range data {
		barData[i] = opts.BarData{Value: v}
	}

	bar.AddSeries("Findings", barData, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorSky}))

	return bar
}

// topRules ranks rules by finding count, capped for label readability.
func topRules(counts map[string]int) (labels []string, data []int) {
	type kv struct {
		k string
		v int
	}

	items := make([]kv, 0, len(counts))

	for k, v := range counts {
		items = append(items, kv{k, v})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].v != items[j].v {
			return items[i].v > items[j].v
		}

		return items[i].k < items[j].k
	})

	if len(items) > topRulesLimit {
		items = items[:topRulesLimit]
	}

	labels = make([]string, len(items))
	data = make([]int, len(items))

	for i, item := range items {
		labels[i] = item.k
		data[i] = item.v
	}

	return labels, data
}

func emptyChart(title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          emptyChartHeight,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "No data", Left: "center"}),
	)

	return bar
}

// chartFragment renders a chart and strips the standalone page shell,
// keeping the container markup and init scripts for embedding.
func chartFragment(chart chartRenderer) template.HTML {
	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return ""
	}

	return template.HTML(extractChartContent(buf.String()))
}

func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="chart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	const closeTag = "</style>"

	for {
		i := strings.Index(content, "<style>")
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], closeTag)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+len(closeTag):]
	}
}
