package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolNames lists the registered tools in registration order
var ToolNames = []string{"compare_code", "compare_files", "batch_compare", "list_languages"}

// RegisterTools registers all codesim MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("compare_code",
		mcp.WithDescription("Compare two code snippets and return every similarity score and clone-type verdict"),
		mcp.WithString("code1",
			mcp.Required(),
			mcp.Description("First code snippet")),
		mcp.WithString("code2",
			mcp.Required(),
			mcp.Description("Second code snippet")),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Language of both snippets, e.g. python, go, c, java, javascript")),
		mcp.WithNumber("threshold",
			mcp.Description("Clone threshold 0.0-1.0; a type is reported when its score is above it (default: 0.8)")),
	), h.HandleCompareCode)

	s.AddTool(mcp.NewTool("compare_files",
		mcp.WithDescription("Compare two source files or zip archives"),
		mcp.WithString("path1",
			mcp.Required(),
			mcp.Description("Path to the first file or .zip archive")),
		mcp.WithString("path2",
			mcp.Required(),
			mcp.Description("Path to the second file or .zip archive")),
		mcp.WithString("language",
			mcp.Description("Language of both inputs (default: detected from the file extension)")),
		mcp.WithNumber("threshold",
			mcp.Description("Clone threshold 0.0-1.0 (default: 0.8)")),
	), h.HandleCompareFiles)

	s.AddTool(mcp.NewTool("batch_compare",
		mcp.WithDescription("Compare every pair of same-language source files under a directory, most similar first"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to scan")),
		mcp.WithNumber("threshold",
			mcp.Description("Clone threshold 0.0-1.0 (default: 0.8)")),
		mcp.WithNumber("min_combined",
			mcp.Description("Only report pairs with a combined score at least this high (default: 0)")),
		mcp.WithBoolean("only_clones",
			mcp.Description("Only report pairs with at least one clone type (default: false)")),
		mcp.WithBoolean("prefilter",
			mcp.Description("Compare only pairs a MinHash/LSH index marks as candidates (default: false)")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of pairs to return (default: 20)")),
	), h.HandleBatchCompare)

	s.AddTool(mcp.NewTool("list_languages",
		mcp.WithDescription("List the supported languages with their file extensions"),
	), h.HandleListLanguages)
}
