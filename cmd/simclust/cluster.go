package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simclust/simclust/app"
	"github.com/simclust/simclust/domain"
	"github.com/simclust/simclust/service"
)

// ClusterCommand handles the clustering CLI command
type ClusterCommand struct {
	// Input parameters
	col1            string
	col2            string
	scoreCol        string
	sparse          bool
	includePatterns []string
	excludePatterns []string

	// Clustering configuration
	method        string
	minSimilarity float64
	maxSize       int

	// Output format flags (only one should be true)
	json bool
	csv  bool
	yaml bool

	// Output options
	showMembers    bool
	showSingletons bool
	sortBy         string
}

// NewClusterCommand creates a new clustering command
func NewClusterCommand() *ClusterCommand {
	return &ClusterCommand{
		col1:          "1",
		col2:          "2",
		scoreCol:      "3",
		method:        "complete",
		minSimilarity: 0.0,
		maxSize:       0,
		showMembers:   true,
		sortBy:        "size",
	}
}

// CreateCobraCommand creates the Cobra command for clustering
func (c *ClusterCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster <file|directory>",
		Short: "Cluster data points from a pairwise similarity table",
		Long: `Cluster named data points from a tab-delimited similarity table.

The input file needs a header row; by default the first two columns
carry the data point IDs and the third carries the similarity score.
Alternate column names or 1-based positions can be supplied. Scores
that are not finite numbers are treated as -Inf.

Merging continues until no remaining pair of clusters is at least as
similar as the cutoff, or until any further merge would exceed the
maximum cluster size.

Examples:
  # Cluster with complete linkage and a 0.64 cutoff
  simclust cluster --min-similarity 0.64 sims.tbl

  # Average linkage with named columns and capped cluster size
  simclust cluster --method average --id1 gene_a --id2 gene_b --score pearson --max-size 10 sims.tbl

  # Sparse input, results as JSON
  simclust cluster --sparse --json sims.tbl`,
		Args: cobra.ExactArgs(1),
		RunE: c.runCluster,
	}

	// Input flags
	cmd.Flags().StringVar(&c.col1, "id1", c.col1, "Column (name or 1-based position) of the first data point ID")
	cmd.Flags().StringVar(&c.col2, "id2", c.col2, "Column (name or 1-based position) of the second data point ID")
	cmd.Flags().StringVar(&c.scoreCol, "score", c.scoreCol, "Column (name or 1-based position) of the similarity score")
	cmd.Flags().BoolVar(&c.sparse, "sparse", c.sparse, "Treat the input as sparse (skip the dense edge count check)")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", []string{"*.tbl", "*.tsv"},
		"File patterns searched when the input is a directory")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil,
		"File patterns skipped when the input is a directory")

	// Clustering flags
	cmd.Flags().StringVarP(&c.method, "method", "m", c.method, "Linkage method: complete, single, average")
	cmd.Flags().Float64VarP(&c.minSimilarity, "min-similarity", "s", c.minSimilarity,
		"Minimum similarity for a merge; clustering stops below this cutoff")
	cmd.Flags().IntVar(&c.maxSize, "max-size", c.maxSize, "Maximum cluster size (0 = unbounded)")

	// Output format flags
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")

	// Output options
	cmd.Flags().BoolVar(&c.showMembers, "members", c.showMembers, "List cluster members in the report")
	cmd.Flags().BoolVar(&c.showSingletons, "singletons", c.showSingletons, "Include singleton clusters in the report")
	cmd.Flags().StringVar(&c.sortBy, "sort", c.sortBy, "Sort results by: size, score, height, id")

	return cmd
}

// runCluster executes the clustering command
func (c *ClusterCommand) runCluster(cmd *cobra.Command, args []string) error {
	request, err := c.createClusterRequest(cmd, args[0])
	if err != nil {
		return fmt.Errorf("failed to create cluster request: %w", err)
	}

	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	useCase, err := c.createClusterUseCase(cmd)
	if err != nil {
		return fmt.Errorf("failed to create cluster use case: %w", err)
	}

	if err := useCase.Execute(context.Background(), *request); err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}
	return nil
}

// createClusterRequest creates a cluster request from config and flags
func (c *ClusterCommand) createClusterRequest(cmd *cobra.Command, path string) (*domain.ClusterRequest, error) {
	// Start from the configuration discovered at or above the input
	// directory, or the working directory when the input is a file.
	loader := service.NewClusterConfigurationLoader()
	request, err := loader.LoadConfig(configSearchDir(path))
	if err != nil {
		return nil, err
	}
	request.Path = path

	c.applyCliOverrides(request, cmd)

	// Determine output format: an explicit flag wins, then the config
	// file, then text.
	outputFormat, extension, err := service.NewOutputFormatResolver().Determine(c.json, c.csv, c.yaml)
	if err != nil {
		return nil, err
	}
	if outputFormat != domain.OutputFormatText {
		request.OutputFormat = outputFormat
	} else if request.OutputFormat == "" {
		request.OutputFormat = domain.OutputFormatText
	}

	// Text goes to stdout; other formats generate a report file.
	if request.OutputFormat == domain.OutputFormatText {
		request.OutputWriter = os.Stdout
	} else {
		if extension == "" {
			extension = string(request.OutputFormat)
		}
		outputPath, err := generateOutputFilePath("cluster", extension)
		if err != nil {
			return nil, fmt.Errorf("failed to generate output path: %w", err)
		}
		request.OutputPath = outputPath
	}

	return request, nil
}

// applyCliOverrides applies explicitly set CLI flags over config values
func (c *ClusterCommand) applyCliOverrides(request *domain.ClusterRequest, cmd *cobra.Command) {
	if cmd.Flags().Changed("id1") {
		request.Columns.ID1 = c.col1
	}
	if cmd.Flags().Changed("id2") {
		request.Columns.ID2 = c.col2
	}
	if cmd.Flags().Changed("score") {
		request.Columns.Score = c.scoreCol
	}
	if cmd.Flags().Changed("sparse") {
		request.Sparse = c.sparse
	}
	if cmd.Flags().Changed("include") {
		request.IncludePatterns = c.includePatterns
	}
	if cmd.Flags().Changed("exclude") {
		request.ExcludePatterns = c.excludePatterns
	}
	if cmd.Flags().Changed("method") {
		request.Method = domain.LinkageMethod(c.method)
	}
	if cmd.Flags().Changed("min-similarity") {
		request.MinSimilarity = c.minSimilarity
	}
	if cmd.Flags().Changed("max-size") {
		request.MaxClusterSize = c.maxSize
	}
	if cmd.Flags().Changed("members") {
		request.ShowMembers = c.showMembers
	}
	if cmd.Flags().Changed("singletons") {
		request.ShowSingletons = c.showSingletons
	}
	if cmd.Flags().Changed("sort") {
		request.SortBy = domain.SortCriteria(c.sortBy)
	}
}

// createClusterUseCase creates a cluster use case with all dependencies
func (c *ClusterCommand) createClusterUseCase(cmd *cobra.Command) (*app.ClusterUseCase, error) {
	reader := service.NewSimilarityReader()
	var progress domain.ProgressManager
	if service.IsInteractiveEnvironment() {
		progress = service.NewProgressManager()
	}

	return app.NewClusterUseCaseBuilder().
		WithService(service.NewClusterService(reader, progress)).
		WithReader(reader).
		WithFormatter(service.NewClusterOutputFormatter()).
		WithReportWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

// configSearchDir picks where configuration discovery starts.
func configSearchDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return "."
}

// NewClusterCmd creates and returns the cluster cobra command
func NewClusterCmd() *cobra.Command {
	return NewClusterCommand().CreateCobraCommand()
}
