package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// handleAnalyze processes graft_analyze tool calls.
func (s *Server) handleAnalyze(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input AnalyzeInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCode(input.Code)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(s.analyzer.Optimize(input.Code))
}
