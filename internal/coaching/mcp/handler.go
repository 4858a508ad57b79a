package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/2beens/coachportal/internal/coaching/programs"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

type ListProgramsInput struct{}

func (h *Handler) ListProgramsTool() func(context.Context, *mcp.CallToolRequest, ListProgramsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListProgramsInput) (*mcp.CallToolResult, any, error) {
		text, err := h.service.ListPrograms(ctx)
		if err != nil {
			return errorResult("Error listing programs: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

type GetProgramInput struct {
	ProgramID string `json:"program_id" jsonschema:"Program document id (see list_programs)"`
}

func (h *Handler) GetProgramTool() func(context.Context, *mcp.CallToolRequest, GetProgramInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in GetProgramInput) (*mcp.CallToolResult, any, error) {
		id := strings.TrimSpace(in.ProgramID)
		if id == "" {
			return errorResult("program_id is required"), nil, nil
		}
		view, err := h.service.GetProgram(ctx, id)
		if err != nil {
			if errors.Is(err, programs.ErrProgramNotFound) {
				return errorResult("Program not found: " + id), nil, nil
			}
			return errorResult("Error fetching program: " + err.Error()), nil, nil
		}
		return jsonResult(view), nil, nil
	}
}

type ExerciseOptionsInput struct{}

func (h *Handler) ListExerciseOptionsTool() func(context.Context, *mcp.CallToolRequest, ExerciseOptionsInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ExerciseOptionsInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(h.service.ExerciseOptions()), nil, nil
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
