// Package mcp implements a Model Context Protocol server exposing the
// codegraft integration pipeline as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/observability"
	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/internal/style"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "codegraft"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 3
)

// ServerDeps holds injectable dependencies for the MCP server.
// Pipeline, Normalizer, and Analyzer are required; the observability
// fields are optional and nil disables the matching concern.
type ServerDeps struct {
	// Pipeline runs graft_integrate calls.
	Pipeline *integrate.Pipeline

	// Normalizer runs graft_format calls.
	Normalizer *style.Normalizer

	// Analyzer runs graft_analyze calls.
	Analyzer *quality.Analyzer

	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer
}

// Server wraps the MCP SDK server with codegraft tool registrations.
type Server struct {
	inner      *mcpsdk.Server
	mu         sync.RWMutex
	tools      []string
	pipeline   *integrate.Pipeline
	normalizer *style.Normalizer
	analyzer   *quality.Analyzer
	metrics    *observability.REDMetrics
	tracer     trace.Tracer
}

// NewServer creates a new MCP server with all codegraft tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:      inner,
		tools:      make([]string, 0, toolCount),
		pipeline:   deps.Pipeline,
		normalizer: deps.Normalizer,
		analyzer:   deps.Analyzer,
		metrics:    deps.Metrics,
		tracer:     deps.Tracer,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all codegraft MCP tools to the server.
func (s *Server) registerTools() {
	s.registerIntegrateTool()
	s.registerFormatTool()
	s.registerAnalyzeTool()
}

func (s *Server) registerIntegrateTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameIntegrate,
		Description: integrateToolDescription,
	}, withMetrics(s.metrics, ToolNameIntegrate, withTracing(s.tracer, ToolNameIntegrate, s.handleIntegrate)))

	s.trackTool(ToolNameIntegrate)
}

func (s *Server) registerFormatTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameFormat,
		Description: formatToolDescription,
	}, withMetrics(s.metrics, ToolNameFormat, withTracing(s.tracer, ToolNameFormat, s.handleFormat)))

	s.trackTool(ToolNameFormat)
}

func (s *Server) registerAnalyzeTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameAnalyze,
		Description: analyzeToolDescription,
	}, withMetrics(s.metrics, ToolNameAnalyze, withTracing(s.tracer, ToolNameAnalyze, s.handleAnalyze)))

	s.trackTool(ToolNameAnalyze)
}

// mcpSpanPrefix is the prefix for MCP tool span names.
const mcpSpanPrefix = "mcp."

// traceIDMetaKey is the metadata key for trace_id in MCP tool responses.
const traceIDMetaKey = "trace_id"

// withTracing wraps an MCP tool handler to create an OTel span per invocation
// and include trace_id in the response content when sampled.
func withTracing[Input any](
	tracer trace.Tracer,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		// Include trace_id in response when span is sampled.
		sc := span.SpanContext()
		if sc.IsSampled() && result != nil {
			traceContent := &mcpsdk.TextContent{Text: fmt.Sprintf("%s=%s", traceIDMetaKey, sc.TraceID().String())}
			result.Content = append(result.Content, traceContent)
		}

		return result, output, err
	}
}

// withMetrics wraps an MCP tool handler to record RED metrics per invocation.
func withMetrics[Input any](
	metrics *observability.REDMetrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		decInflight := metrics.TrackInflight(ctx, mcpSpanPrefix+toolName)
		defer decInflight()

		result, output, err := handler(ctx, req, input)

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		metrics.RecordRequest(ctx, mcpSpanPrefix+toolName, status, time.Since(start))

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// Tool description constants.
const (
	integrateToolDescription = "Integrate generated component source into a project file: " +
		"format it, analyze and remediate accessibility and performance defects, " +
		"and merge its imports against the destination file. " +
		"Returns the final text plus a structured report."

	formatToolDescription = "Format source text through the style engine. " +
		"Returns the formatted text, or repair suggestions when the engine rejects the input."

	analyzeToolDescription = "Analyze component source for accessibility and performance defects " +
		"and apply the automatic remediations. Returns scores, findings, and the remediated text."
)
