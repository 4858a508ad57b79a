package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the read-only coaching MCP server: programs with their
// phases and the exercise option lists.
// Mounted by the portal at /mcp and served over stdio by cmd/coaching_mcp.
func NewServer(programsRepo ProgramsRepo) *mcp.Server {
	h := NewHandler(NewContextService(programsRepo))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "coaching-portal",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_programs",
		Description: "Returns all training programs (id, name, number of weeks and phases, description) as a markdown table. Use to find a program id.",
	}, h.ListProgramsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_program",
		Description: "Returns one program with its phases: phase name, applicable weeks and the routine of each day (\"No Routine Assigned\" when missing). Arg: program_id.",
	}, h.GetProgramTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_exercise_options",
		Description: "Returns the body part and measurement options exercises are authored with (value and label).",
	}, h.ListExerciseOptionsTool())

	return s
}

// NewHTTPHandler serves the server over streamable HTTP.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
