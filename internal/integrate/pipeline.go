// Package integrate composes style normalization, quality remediation,
// and import resolution into the pipeline applied to generated
// component source before it lands in a project file. Every data-level
// defect folds into the Result; integration always completes.
package integrate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/codegraft/codegraft/internal/imports"
	"github.com/codegraft/codegraft/internal/observability"
	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/internal/style"
)

// tracerName is the default OTel tracer name for pipeline spans.
const tracerName = "codegraft"

// ErrEmptySource indicates an integration request without component
// text. It is the only error Integrate returns.
var ErrEmptySource = errors.New("integrate: empty source")

// Options wires a Pipeline. Normalizer, Analyzer, and Imports are
// required; the rest default to discard/no-op implementations.
type Options struct {
	Normalizer *style.Normalizer
	Analyzer   *quality.Analyzer
	Imports    *imports.Engine
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Metrics    *observability.PipelineMetrics
}

// Pipeline holds the constructed-once components shared by all
// requests. Requests carry no mutable shared state besides the
// normalizer's engine handle, so Integrate is safe to call from any
// number of goroutines.
type Pipeline struct {
	normalizer *style.Normalizer
	analyzer   *quality.Analyzer
	imports    *imports.Engine
	logger     *slog.Logger
	otelTracer trace.Tracer
	metrics    *observability.PipelineMetrics
}

// New creates a Pipeline from opts.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Pipeline{
		normalizer: opts.Normalizer,
		analyzer:   opts.Analyzer,
		imports:    opts.Imports,
		logger:     logger,
		otelTracer: opts.Tracer,
		metrics:    opts.Metrics,
	}
}

// tracer returns the configured tracer, falling back to the global
// provider.
func (p *Pipeline) tracer() trace.Tracer {
	if p.otelTracer != nil {
		return p.otelTracer
	}

	return otel.Tracer(tracerName)
}

// Integrate runs the full pipeline over req: normalize, analyze and
// remediate, resolve imports against the destination, assemble the
// final text. Normalization failure downgrades to the original text
// rather than failing the request.
func (p *Pipeline) Integrate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Source) == "" {
		return nil, ErrEmptySource
	}

	started := time.Now()

	ctx, span := p.tracer().Start(ctx, "pipeline.integrate",
		trace.WithAttributes(
			attribute.String("file.name", req.FileName),
			attribute.Int("source.bytes", len(req.Source)),
		))
	defer span.End()

	if p.metrics != nil {
		p.metrics.RecordSourceSize(ctx, len(req.Source))
	}

	outcome := p.normalize(ctx, req)

	working := req.Source
	if outcome.Success {
		working = outcome.FormattedText
	}

	opt := p.optimize(ctx, working)

	text, block := p.resolveImports(ctx, opt.OptimizedCode, req.Destination)

	result := &Result{
		Text: text,
		Report: Report{
			AccessibilityScore: opt.AccessibilityScore,
			PerformanceScore:   opt.PerformanceScore,
			Findings:           append(opt.AccessibilityIssues, opt.PerformanceIssues...),
			AppliedFixes:       opt.Improvements,
			MergedImportBlock:  block,
			SizeDelta: quality.CodeSize{
				Before:    len(req.Source),
				After:     len(text),
				Reduction: len(req.Source) - len(text),
			},
			Formatted:   outcome.Success,
			EngineError: outcome.Error,
			Suggestions: outcome.Suggestions,
			DurationMS:  time.Since(started).Milliseconds(),
		},
	}

	p.logger.InfoContext(ctx, "integration complete",
		"file", req.FileName,
		"formatted", result.Report.Formatted,
		"accessibility", result.Report.AccessibilityScore,
		"performance", result.Report.PerformanceScore,
		"fixes", len(result.Report.AppliedFixes),
		"duration_ms", result.Report.DurationMS)

	return result, nil
}

// normalize runs the style stage. The outcome is never fatal.
func (p *Pipeline) normalize(ctx context.Context, req Request) style.Outcome {
	ctx, span := p.tracer().Start(ctx, "pipeline.normalize")
	defer span.End()

	outcome := p.normalizer.Format(ctx, req.Source, req.FileName, req.StyleOverrides)

	span.SetAttributes(
		attribute.Bool("format.success", outcome.Success),
		attribute.String("dialect.parser", outcome.Dialect.Parser),
	)

	if p.metrics != nil {
		p.metrics.RecordEngineResult(ctx, string(outcome.Engine.Source), outcome.Success)

		if outcome.Repaired {
			p.metrics.RecordRepair(ctx)
		}
	}

	return outcome
}

// optimize runs the quality stage over the working text.
func (p *Pipeline) optimize(ctx context.Context, source string) quality.Optimization {
	ctx, span := p.tracer().Start(ctx, "pipeline.optimize")
	defer span.End()

	opt := p.analyzer.Optimize(source)

	span.SetAttributes(
		attribute.Int("score.accessibility", opt.AccessibilityScore),
		attribute.Int("score.performance", opt.PerformanceScore),
		attribute.Int("findings.count", len(opt.AccessibilityIssues)+len(opt.PerformanceIssues)),
		attribute.Int("fixes.count", len(opt.Improvements)),
	)

	if p.metrics != nil {
		for _, f := range opt.AccessibilityIssues {
			p.metrics.RecordFinding(ctx, string(f.Category), f.Rule)
		}

		for _, f := range opt.PerformanceIssues {
			p.metrics.RecordFinding(ctx, string(f.Category), f.Rule)
		}

		for _, fix := range opt.Improvements {
			p.metrics.RecordFix(ctx, fix)
		}

		p.metrics.RecordScore(ctx, string(quality.CategoryAccessibility), opt.AccessibilityScore)
		p.metrics.RecordScore(ctx, string(quality.CategoryPerformance), opt.PerformanceScore)
	}

	return opt
}

// resolveImports merges the component's imports with the destination's,
// prunes against the combined body, folds in inferred framework needs,
// and assembles the final text. It returns the text and the rendered
// import block.
//
// Inference runs after pruning: a markup-only body never names the
// framework binding, so an earlier fold would be pruned straight back
// out.
func (p *Pipeline) resolveImports(ctx context.Context, component, destination string) (string, string) {
	ctx, span := p.tracer().Start(ctx, "pipeline.imports")
	defer span.End()

	incoming := imports.Parse(component)
	existing := imports.Parse(destination)
	merged := imports.Merge(existing, incoming)

	componentBody := imports.StripImports(component)

	searchable := componentBody
	if destinationBody := imports.StripImports(destination); destinationBody != "" {
		searchable = destinationBody + "\n" + componentBody
	}

	pruned := imports.PruneUnused(merged, searchable)
	dropped := len(merged) - len(pruned)

	if inferred, ok := p.imports.InferFrameworkNeeds(searchable); ok {
		pruned = imports.Merge(pruned, []imports.Declaration{inferred})
	}

	block := p.imports.RenderBlock(p.imports.SortAndGroup(pruned))

	span.SetAttributes(
		attribute.Int("imports.merged", len(merged)),
		attribute.Int("imports.pruned", dropped),
	)

	if p.metrics != nil {
		p.metrics.RecordImports(ctx, len(merged), dropped)
	}

	if block == "" {
		return componentBody, ""
	}

	return block + "\n\n" + componentBody, block
}
