package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFindingsTotal     = "codegraft.findings.total"
	metricFixesTotal        = "codegraft.fixes.total"
	metricQualityScore      = "codegraft.quality.score"
	metricEngineResults     = "codegraft.engine.results.total"
	metricRepairsTotal      = "codegraft.repairs.total"
	metricImportsMerged     = "codegraft.imports.merged.total"
	metricImportsPruned     = "codegraft.imports.pruned.total"
	metricSourceBytesBefore = "codegraft.source.bytes.before"

	attrCategory = "category"
	attrRule     = "rule"
	attrFix      = "fix"
	attrEngine   = "engine"

	statusOK = "ok"
)

// scoreBucketBoundaries covers the 0-100 quality score range in steps that
// separate failing, mediocre, and clean submissions.
var scoreBucketBoundaries = []float64{0, 10, 25, 50, 70, 80, 90, 95, 100}

// sourceSizeBucketBoundaries covers typical generated-component sizes,
// from one-liner snippets to multi-screen files.
var sourceSizeBucketBoundaries = []float64{128, 512, 1024, 4096, 16384, 65536, 262144}

// PipelineMetrics holds the OTel instruments specific to the integration
// pipeline: finding counts, applied fixes, scores, engine acquisition
// results, and import merge activity.
type PipelineMetrics struct {
	findingsTotal metric.Int64Counter
	fixesTotal    metric.Int64Counter
	qualityScore  metric.Float64Histogram
	engineResults metric.Int64Counter
	repairsTotal  metric.Int64Counter
	importsMerged metric.Int64Counter
	importsPruned metric.Int64Counter
	sourceBytes   metric.Float64Histogram
}

// NewPipelineMetrics creates pipeline metric instruments from the given meter.
func NewPipelineMetrics(mt metric.Meter) (*PipelineMetrics, error) {
	b := newMetricBuilder(mt)

	pm := &PipelineMetrics{
		findingsTotal: b.counter(metricFindingsTotal, "Total quality findings by rule", "{finding}"),
		fixesTotal:    b.counter(metricFixesTotal, "Total automatic fixes applied", "{fix}"),
		qualityScore:  b.histogram(metricQualityScore, "Quality score distribution", "1", scoreBucketBoundaries...),
		engineResults: b.counter(metricEngineResults, "Formatting engine results by status", "{result}"),
		repairsTotal:  b.counter(metricRepairsTotal, "Repaired candidates produced after format failures", "{repair}"),
		importsMerged: b.counter(metricImportsMerged, "Import declarations in merged results", "{import}"),
		importsPruned: b.counter(metricImportsPruned, "Import declarations dropped as unused", "{import}"),
		sourceBytes:   b.histogram(metricSourceBytesBefore, "Incoming source size in bytes", "By", sourceSizeBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return pm, nil
}

// RecordFinding counts one finding for the given category and rule.
func (pm *PipelineMetrics) RecordFinding(ctx context.Context, category, rule string) {
	pm.findingsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrCategory, category),
		attribute.String(attrRule, rule),
	))
}

// RecordFix counts one applied automatic fix.
func (pm *PipelineMetrics) RecordFix(ctx context.Context, fix string) {
	pm.fixesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrFix, fix)))
}

// RecordScore records a quality score for the given category.
func (pm *PipelineMetrics) RecordScore(ctx context.Context, category string, score int) {
	pm.qualityScore.Record(ctx, float64(score), metric.WithAttributes(
		attribute.String(attrCategory, category),
	))
}

// RecordEngineResult counts a formatting engine outcome by engine source.
func (pm *PipelineMetrics) RecordEngineResult(ctx context.Context, engine string, ok bool) {
	status := statusOK
	if !ok {
		status = statusError
	}

	pm.engineResults.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrEngine, engine),
		attribute.String(attrStatus, status),
	))
}

// RecordRepair counts one repaired candidate emitted after a format failure.
func (pm *PipelineMetrics) RecordRepair(ctx context.Context) {
	pm.repairsTotal.Add(ctx, 1)
}

// RecordImports records merged and pruned import declaration counts.
func (pm *PipelineMetrics) RecordImports(ctx context.Context, merged, pruned int) {
	pm.importsMerged.Add(ctx, int64(merged))
	pm.importsPruned.Add(ctx, int64(pruned))
}

// RecordSourceSize records the incoming source size in bytes.
func (pm *PipelineMetrics) RecordSourceSize(ctx context.Context, size int) {
	pm.sourceBytes.Record(ctx, float64(size))
}
