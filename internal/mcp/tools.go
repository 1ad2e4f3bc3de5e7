package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool name constants.
const (
	ToolNameIntegrate = "graft_integrate"
	ToolNameFormat    = "graft_format"
	ToolNameAnalyze   = "graft_analyze"
)

// MaxCodeInputBytes is the maximum allowed size for inline code input (1 MB).
const MaxCodeInputBytes = 1 << 20

// Sentinel errors for tool input validation.
var (
	// ErrEmptyCode indicates the code parameter is empty.
	ErrEmptyCode = errors.New("code parameter is required and must not be empty")
	// ErrCodeTooLarge indicates the code input exceeds the size limit.
	ErrCodeTooLarge = errors.New("code input exceeds maximum size")
)

// Input types (auto-generate JSON schemas via struct tags).

// IntegrateInput is the input schema for the graft_integrate tool.
type IntegrateInput struct {
	Code        string         `json:"code"                  jsonschema:"generated component source to integrate"`
	Destination string         `json:"destination,omitempty" jsonschema:"existing destination file contents to merge imports against"`
	FileName    string         `json:"file_name,omitempty"   jsonschema:"target file name used for dialect detection (e.g. UserCard.jsx)"`
	Overrides   map[string]any `json:"overrides,omitempty"   jsonschema:"formatting option overrides (camelCase engine options)"`
}

// FormatInput is the input schema for the graft_format tool.
type FormatInput struct {
	Code      string         `json:"code"                jsonschema:"source text to format"`
	FileName  string         `json:"file_name,omitempty" jsonschema:"file name used for dialect detection"`
	Overrides map[string]any `json:"overrides,omitempty" jsonschema:"formatting option overrides (camelCase engine options)"`
}

// AnalyzeInput is the input schema for the graft_analyze tool.
type AnalyzeInput struct {
	Code string `json:"code" jsonschema:"component source to analyze and remediate"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateCode checks inline code input constraints.
func validateCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}

	if len(code) > MaxCodeInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), MaxCodeInputBytes)
	}

	return nil
}
