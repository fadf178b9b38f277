package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all simclust MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	// Tool 1: cluster_table - agglomerative clustering over a similarity table
	s.AddTool(mcp.NewTool("cluster_table",
		mcp.WithDescription("Agglomerative hierarchical clustering over a tab-delimited table of pairwise similarity scores"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the similarity table (tab-delimited with a header row)")),
		mcp.WithString("method",
			mcp.Description("Linkage method: complete, single, or average (default: complete)")),
		mcp.WithNumber("min_similarity",
			mcp.Description("Merge cutoff; clustering stops below this score (default: 0.0)")),
		mcp.WithNumber("max_cluster_size",
			mcp.Description("Maximum cluster size, 0 = unbounded (default: 0)")),
		mcp.WithString("id_column1",
			mcp.Description("Column of the first data point ID, by label or 1-based position (default: 1)")),
		mcp.WithString("id_column2",
			mcp.Description("Column of the second data point ID (default: 2)")),
		mcp.WithString("score_column",
			mcp.Description("Column of the similarity score (default: 3)")),
		mcp.WithBoolean("include_singletons",
			mcp.Description("Include singleton clusters in the result (default: false)")),
	), HandleClusterTable)

	// Tool 2: convert_table - columnar conversion between tabbed files
	s.AddTool(mcp.NewTool("convert_table",
		mcp.WithDescription("Reshape a tab-delimited file into the column layout of another file"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Path to the source file to reshape")),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Path to the file whose column layout is wanted")),
		mcp.WithString("fill",
			mcp.Description("Value written into columns missing from the source (default: 0.0)")),
	), HandleConvertTable)
}
