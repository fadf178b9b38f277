package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/simclust/simclust/domain"
)

// ClusterOutputFormatterImpl implements the ClusterOutputFormatter interface
type ClusterOutputFormatterImpl struct{}

// NewClusterOutputFormatter creates a new output formatter service
func NewClusterOutputFormatter() *ClusterOutputFormatterImpl {
	return &ClusterOutputFormatterImpl{}
}

// Format formats the clustering response according to the specified format
func (f *ClusterOutputFormatterImpl) Format(response *domain.ClusterResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *ClusterOutputFormatterImpl) Write(response *domain.ClusterResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatText formats the response as a human-readable report
func (f *ClusterOutputFormatterImpl) formatText(response *domain.ClusterResponse) (string, error) {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Clustering Report"))

	summary := response.Summary
	if summary != nil {
		builder.WriteString(utils.FormatStatLine("Method", summary.Method))
		builder.WriteString(utils.FormatStatLine("Min Similarity", fmt.Sprintf("%.4g", summary.MinSimilarity)))
		builder.WriteString(utils.FormatStatLine("Data Points", summary.TotalPoints))
		builder.WriteString(utils.FormatStatLine("Records Read", summary.RecordsRead))
		if summary.DuplicateRecords > 0 {
			builder.WriteString(utils.FormatStatLine("Duplicate Records", summary.DuplicateRecords))
		}
		builder.WriteString(utils.FormatStatLine("Merges", summary.MergesPerformed))
		builder.WriteString(utils.FormatStatLine("Clusters", summary.TotalClusters))
		builder.WriteString(utils.FormatStatLine("Largest Cluster", summary.LargestCluster))
		builder.WriteString("\n")
	}

	for _, warning := range response.Warnings {
		builder.WriteString(fmt.Sprintf("WARNING: %s\n", warning))
	}
	if len(response.Warnings) > 0 {
		builder.WriteString("\n")
	}

	if len(response.Clusters) == 0 {
		builder.WriteString("No clusters to report.\n")
		return builder.String(), nil
	}

	builder.WriteString(utils.FormatSectionHeader("CLUSTERS"))
	for _, info := range response.Clusters {
		builder.WriteString(fmt.Sprintf("%-20s size=%-5d height=%-4d score=%s\n",
			info.ID, info.Size, info.Height, formatScore(info.Score)))
		if len(info.Members) > 0 {
			builder.WriteString(fmt.Sprintf("    members: %s\n", strings.Join(info.Members, ", ")))
		}
	}
	return builder.String(), nil
}

// formatCSV formats the cluster list as CSV
func (f *ClusterOutputFormatterImpl) formatCSV(response *domain.ClusterResponse) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	if err := w.Write([]string{"id", "size", "height", "score", "members"}); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}
	for _, info := range response.Clusters {
		record := []string{
			info.ID,
			strconv.Itoa(info.Size),
			strconv.Itoa(info.Height),
			formatScore(info.Score),
			strings.Join(info.Members, " "),
		}
		if err := w.Write(record); err != nil {
			return "", domain.NewOutputError("failed to write CSV record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV", err)
	}
	return builder.String(), nil
}

// formatScore renders a cluster's internal score; singletons have none.
func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'g', 6, 64)
}
