package mcp

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/autoprofile/internal/adapters/driving/plugin"
)

// ReplyOutput is the output of every command tool.
type ReplyOutput struct {
	Reply string `json:"reply" jsonschema:"the reply the chat command would show"`
}

// NoInput is used by tools that take no arguments.
type NoInput struct{}

// RotationInput is the input schema for the autopfp tool.
type RotationInput struct {
	Degrees        int  `json:"degrees" jsonschema:"degrees to add to the rotation on every tick; negative rotates clockwise"`
	DeletePrevious bool `json:"delete_previous" jsonschema:"delete the previous picture before uploading the next one"`
}

// TemplateInput is the input schema for the clock tools.
type TemplateInput struct {
	Template string `json:"template" jsonschema:"text containing {time}, which is replaced by the current time"`
}

// PurgeInput is the input schema for the delpfp tool.
type PurgeInput struct {
	Count int `json:"count" jsonschema:"how many pictures to remove, newest first; 0 removes all"`
}

// registerTools registers one tool per chat command.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdAutoPfp,
		Description: "Start rotating the profile picture every few seconds",
	}, s.handleAutoPfp)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdStopAutoPfp,
		Description: "Stop rotating the profile picture",
	}, s.noArgs(plugin.CmdStopAutoPfp))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdAutoBio,
		Description: "Keep the bio updated with the current time",
	}, s.template(plugin.CmdAutoBio))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdStopAutoBio,
		Description: "Stop the bio clock and clear the time from the bio",
	}, s.noArgs(plugin.CmdStopAutoBio))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdAutoName,
		Description: "Keep the first name updated with the current time",
	}, s.template(plugin.CmdAutoName))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdStopAutoName,
		Description: "Stop the name clock and clear the time from the first name",
	}, s.noArgs(plugin.CmdStopAutoName))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdDelPfp,
		Description: "Remove profile pictures, newest first",
	}, s.handleDelPfp)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        plugin.CmdAutoStatus,
		Description: "Show which profile loops are running",
	}, s.noArgs(plugin.CmdAutoStatus))
}

func (s *Server) dispatch(ctx context.Context, name string, args ...string) (*mcp.CallToolResult, ReplyOutput, error) {
	reply, err := s.ports.Commands.Dispatch(ctx, name, args)
	if err != nil {
		return nil, ReplyOutput{}, err
	}
	return nil, ReplyOutput{Reply: reply}, nil
}

// handleAutoPfp handles the autopfp tool invocation.
func (s *Server) handleAutoPfp(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RotationInput,
) (*mcp.CallToolResult, ReplyOutput, error) {
	return s.dispatch(ctx, plugin.CmdAutoPfp,
		strconv.Itoa(input.Degrees), strconv.FormatBool(input.DeletePrevious))
}

// handleDelPfp handles the delpfp tool invocation.
func (s *Server) handleDelPfp(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PurgeInput,
) (*mcp.CallToolResult, ReplyOutput, error) {
	return s.dispatch(ctx, plugin.CmdDelPfp, strconv.Itoa(input.Count))
}

func (s *Server) template(name string) mcp.ToolHandlerFor[TemplateInput, ReplyOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TemplateInput) (*mcp.CallToolResult, ReplyOutput, error) {
		return s.dispatch(ctx, name, input.Template)
	}
}

func (s *Server) noArgs(name string) mcp.ToolHandlerFor[NoInput, ReplyOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ReplyOutput, error) {
		return s.dispatch(ctx, name)
	}
}
