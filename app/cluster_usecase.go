package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/simclust/simclust/domain"
)

// ClusterUseCase orchestrates a clustering run from input resolution
// through report writing
type ClusterUseCase struct {
	service      domain.ClusterService
	reader       domain.SimilarityReader
	formatter    domain.ClusterOutputFormatter
	reportWriter domain.ReportWriter
}

// NewClusterUseCase creates a new cluster use case with the given dependencies
func NewClusterUseCase(
	service domain.ClusterService,
	reader domain.SimilarityReader,
	formatter domain.ClusterOutputFormatter,
	reportWriter domain.ReportWriter,
) *ClusterUseCase {
	return &ClusterUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		reportWriter: reportWriter,
	}
}

// Execute executes the clustering use case
func (uc *ClusterUseCase) Execute(ctx context.Context, req domain.ClusterRequest) error {
	startTime := time.Now()

	// Step 1: Validate the request
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if !req.HasValidOutputWriter() {
		return fmt.Errorf("no valid output writer specified")
	}

	// Step 2: Resolve the input table
	path, err := uc.reader.ResolveInput(req.Path, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("failed to resolve input: %w", err)
	}
	req.Path = path

	// Step 3: Run the clustering engine
	response, err := uc.service.Cluster(ctx, &req)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	// Step 4: Update response with timing information
	response.Duration = time.Since(startTime).Milliseconds()

	// Step 5: Format and write results
	writeFunc := func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	}
	if err := uc.reportWriter.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, writeFunc); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// ClusterUseCaseBuilder helps build ClusterUseCase with dependencies
type ClusterUseCaseBuilder struct {
	service      domain.ClusterService
	reader       domain.SimilarityReader
	formatter    domain.ClusterOutputFormatter
	reportWriter domain.ReportWriter
}

// NewClusterUseCaseBuilder creates a new builder for ClusterUseCase
func NewClusterUseCaseBuilder() *ClusterUseCaseBuilder {
	return &ClusterUseCaseBuilder{}
}

// WithService sets the cluster service
func (b *ClusterUseCaseBuilder) WithService(service domain.ClusterService) *ClusterUseCaseBuilder {
	b.service = service
	return b
}

// WithReader sets the similarity reader
func (b *ClusterUseCaseBuilder) WithReader(reader domain.SimilarityReader) *ClusterUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *ClusterUseCaseBuilder) WithFormatter(formatter domain.ClusterOutputFormatter) *ClusterUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithReportWriter sets the report writer
func (b *ClusterUseCaseBuilder) WithReportWriter(reportWriter domain.ReportWriter) *ClusterUseCaseBuilder {
	b.reportWriter = reportWriter
	return b
}

// Build creates the ClusterUseCase with the configured dependencies
func (b *ClusterUseCaseBuilder) Build() (*ClusterUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("cluster service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("similarity reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.reportWriter == nil {
		return nil, fmt.Errorf("report writer is required")
	}
	return NewClusterUseCase(b.service, b.reader, b.formatter, b.reportWriter), nil
}
