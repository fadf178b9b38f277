package service

import (
	"github.com/simclust/simclust/domain"
	"github.com/simclust/simclust/internal/config"
)

// ClusterConfigurationLoaderImpl implements the
// ClusterConfigurationLoader interface on top of the file loaders in
// internal/config.
type ClusterConfigurationLoaderImpl struct{}

// NewClusterConfigurationLoader creates a new configuration loader service
func NewClusterConfigurationLoader() *ClusterConfigurationLoaderImpl {
	return &ClusterConfigurationLoaderImpl{}
}

// LoadConfig builds a request template from the configuration files
// discovered at or above the working directory. CLI flags that were
// explicitly set override these values later.
func (l *ClusterConfigurationLoaderImpl) LoadConfig(workDir string) (*domain.ClusterRequest, error) {
	cfg, err := config.NewTomlConfigLoader().LoadConfig(workDir)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return requestFromConfig(cfg), nil
}

// requestFromConfig maps the typed config onto a request template.
func requestFromConfig(cfg *config.Config) *domain.ClusterRequest {
	req := &domain.ClusterRequest{
		Columns: domain.ColumnSpec{
			ID1:   cfg.Input.IDColumn1,
			ID2:   cfg.Input.IDColumn2,
			Score: cfg.Input.ScoreColumn,
		},
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		Method:          domain.LinkageMethod(cfg.Clustering.Method),
		MinSimilarity:   cfg.Clustering.MinSimilarity,
		MaxClusterSize:  cfg.Clustering.MaxClusterSize,
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		SortBy:          domain.SortCriteria(cfg.Output.SortBy),
		ShowMembers:     true,
	}
	if cfg.Input.Sparse != nil {
		req.Sparse = *cfg.Input.Sparse
	}
	if cfg.Output.ShowMembers != nil {
		req.ShowMembers = *cfg.Output.ShowMembers
	}
	if cfg.Output.ShowSingletons != nil {
		req.ShowSingletons = *cfg.Output.ShowSingletons
	}
	return req
}
