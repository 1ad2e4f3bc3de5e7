package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// handleFormat processes graft_format tool calls. Engine failures are
// data, not errors: the outcome carries them with suggestions attached.
func (s *Server) handleFormat(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input FormatInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCode(input.Code)
	if err != nil {
		return errorResult(err)
	}

	outcome := s.normalizer.Format(ctx, input.Code, input.FileName, input.Overrides)

	return jsonResult(outcome)
}
