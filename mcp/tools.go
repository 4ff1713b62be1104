package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all crosscheck MCP tools with the server.
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	// Tool 1: check_submission - one submission against the session history
	s.AddTool(mcp.NewTool("check_submission",
		mcp.WithDescription("Check one submission against the accumulated course history and append it; prior submissions by the same author are skipped"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the submission source file")),
		mcp.WithString("author",
			mcp.Description("Author ID of the submission (default: file stem)")),
		mcp.WithString("course",
			mcp.Description("Course ID selecting the history to compare against (default: \"default\")")),
		mcp.WithString("language",
			mcp.Description("Source language: python, javascript, java, go (default: detected from extension)")),
		mcp.WithNumber("threshold",
			mcp.Description("Flag threshold 0.0-1.0 (default: 0.7)")),
	), h.HandleCheckSubmission)

	// Tool 2: analyze_cohort - full pairwise cohort analysis
	s.AddTool(mcp.NewTool("analyze_cohort",
		mcp.WithDescription("Compare every pair of submissions in a directory, build the similarity matrix, and report flagged pairs and per-submission originality"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory of submission source files to analyze")),
		mcp.WithString("language",
			mcp.Description("Source language: python, javascript, java, go (default: python)")),
		mcp.WithNumber("threshold",
			mcp.Description("Flag threshold 0.0-1.0 (default: 0.7)")),
		mcp.WithBoolean("reports",
			mcp.Description("Include per-submission originality reports (default: true)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recurse into subdirectories (default: true)")),
	), h.HandleAnalyzeCohort)

	// Tool 3: compare_sources - raw pairwise comparison of two code strings
	s.AddTool(mcp.NewTool("compare_sources",
		mcp.WithDescription("Compare two code fragments directly and return the per-algorithm similarity breakdown, detected transformations, and matching segments"),
		mcp.WithString("source_a",
			mcp.Required(),
			mcp.Description("First code fragment")),
		mcp.WithString("source_b",
			mcp.Required(),
			mcp.Description("Second code fragment")),
		mcp.WithString("language",
			mcp.Description("Source language: python, javascript, java, go (default: python)")),
	), h.HandleCompareSources)
}
