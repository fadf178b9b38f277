// Package config holds the typed configuration for simclust and its
// file loaders.
package config

// Default clustering settings
const (
	// DefaultMethod is the linkage method used when none is configured
	DefaultMethod = "complete"

	// DefaultMinSimilarity is the merge cutoff used when none is configured
	DefaultMinSimilarity = 0.0

	// DefaultMaxClusterSize of 0 leaves cluster growth unbounded
	DefaultMaxClusterSize = 0

	// DefaultSortBy is the canonical cluster listing order
	DefaultSortBy = "size"
)

// Config represents the simclust configuration structure
type Config struct {
	// Clustering holds the engine parameters
	Clustering ClusteringConfig `mapstructure:"clustering" toml:"clustering" yaml:"clustering"`

	// Input holds input table configuration
	Input InputConfig `mapstructure:"input" toml:"input" yaml:"input"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output" yaml:"output"`
}

// ClusteringConfig holds the engine parameters
type ClusteringConfig struct {
	// Method is the linkage method: complete, single, or average
	Method string `mapstructure:"method" toml:"method" yaml:"method"`

	// MinSimilarity is the merge cutoff; merging stops when no pair
	// scores at least this value
	MinSimilarity float64 `mapstructure:"min_similarity" toml:"min_similarity" yaml:"min_similarity"`

	// MaxClusterSize caps cluster growth; 0 means unbounded
	MaxClusterSize int `mapstructure:"max_cluster_size" toml:"max_cluster_size" yaml:"max_cluster_size"`
}

// InputConfig holds input table configuration
type InputConfig struct {
	// Column specifications: header labels or 1-based positions
	IDColumn1   string `mapstructure:"id_column1" toml:"id_column1" yaml:"id_column1"`
	IDColumn2   string `mapstructure:"id_column2" toml:"id_column2" yaml:"id_column2"`
	ScoreColumn string `mapstructure:"score_column" toml:"score_column" yaml:"score_column"`

	// Sparse suppresses the dense-mode edge count check
	Sparse *bool `mapstructure:"sparse" toml:"sparse" yaml:"sparse"` // pointer to detect unset

	// Patterns applied when the input path is a directory
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" yaml:"exclude_patterns"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	Format         string `mapstructure:"format" toml:"format" yaml:"format"`
	SortBy         string `mapstructure:"sort_by" toml:"sort_by" yaml:"sort_by"`
	ShowMembers    *bool  `mapstructure:"show_members" toml:"show_members" yaml:"show_members"`       // pointer to detect unset
	ShowSingletons *bool  `mapstructure:"show_singletons" toml:"show_singletons" yaml:"show_singletons"` // pointer to detect unset
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	return &Config{
		Clustering: ClusteringConfig{
			Method:         DefaultMethod,
			MinSimilarity:  DefaultMinSimilarity,
			MaxClusterSize: DefaultMaxClusterSize,
		},
		Input: InputConfig{
			IDColumn1:       "1",
			IDColumn2:       "2",
			ScoreColumn:     "3",
			IncludePatterns: []string{"*.tbl", "*.tsv"},
			ExcludePatterns: []string{},
		},
		Output: OutputConfig{
			Format: "text",
			SortBy: DefaultSortBy,
		},
	}
}
