// Package mcp exposes clustering over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/simclust/simclust/domain"
	"github.com/simclust/simclust/internal/tabular"
	"github.com/simclust/simclust/service"
)

// HandleClusterTable handles the cluster_table tool
func HandleClusterTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := &domain.ClusterRequest{
		Path:           path,
		Columns:        domain.DefaultColumns(),
		Method:         domain.LinkageComplete,
		SortBy:         domain.SortBySize,
		OutputFormat:   domain.OutputFormatJSON,
		ShowMembers:    true,
		ShowSingletons: false,
		Sparse:         true,
	}

	if method, ok := args["method"].(string); ok && method != "" {
		req.Method = domain.LinkageMethod(method)
	}
	if minSim, ok := args["min_similarity"].(float64); ok {
		req.MinSimilarity = minSim
	}
	if maxSize, ok := args["max_cluster_size"].(float64); ok {
		req.MaxClusterSize = int(maxSize)
	}
	if id1, ok := args["id_column1"].(string); ok && id1 != "" {
		req.Columns.ID1 = id1
	}
	if id2, ok := args["id_column2"].(string); ok && id2 != "" {
		req.Columns.ID2 = id2
	}
	if score, ok := args["score_column"].(string); ok && score != "" {
		req.Columns.Score = score
	}
	if singletons, ok := args["include_singletons"].(bool); ok {
		req.ShowSingletons = singletons
	}
	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid request: %v", err)), nil
	}

	svc := service.NewClusterService(service.NewSimilarityReader(), nil)
	response, err := svc.Cluster(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clustering failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleConvertTable handles the convert_table tool
func HandleConvertTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	source, ok := args["source"].(string)
	if !ok {
		return mcp.NewToolResultError("source parameter is required and must be a string"), nil
	}
	target, ok := args["target"].(string)
	if !ok {
		return mcp.NewToolResultError("target parameter is required and must be a string"), nil
	}

	fill := "0.0"
	if f, ok := args["fill"].(string); ok && f != "" {
		fill = f
	}

	out, err := convertTable(source, target, fill)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// convertTable runs the columnar conversion and returns the reshaped
// stream as text.
func convertTable(source, target, fill string) (string, error) {
	conv, err := tabular.NewConversionWithFill(source, target, fill)
	if err != nil {
		return "", err
	}
	defer conv.Close()
	data, err := io.ReadAll(conv)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
