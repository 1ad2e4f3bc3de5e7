package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codegraft/codegraft/internal/integrate"
)

// handleIntegrate processes graft_integrate tool calls.
func (s *Server) handleIntegrate(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input IntegrateInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCode(input.Code)
	if err != nil {
		return errorResult(err)
	}

	result, err := s.pipeline.Integrate(ctx, integrate.Request{
		Source:         input.Code,
		FileName:       input.FileName,
		Destination:    input.Destination,
		StyleOverrides: input.Overrides,
	})
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(result)
}
