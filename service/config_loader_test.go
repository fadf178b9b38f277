package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simclust/simclust/domain"
	"github.com/simclust/simclust/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	req, err := NewClusterConfigurationLoader().LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.LinkageComplete, req.Method)
	assert.Equal(t, 0.0, req.MinSimilarity)
	assert.Equal(t, 0, req.MaxClusterSize)
	assert.Equal(t, domain.DefaultColumns(), req.Columns)
	assert.Equal(t, domain.OutputFormatText, req.OutputFormat)
	assert.Equal(t, domain.SortBySize, req.SortBy)
	assert.False(t, req.Sparse)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[clustering]
method = "average"
min_similarity = 0.64
max_cluster_size = 3

[input]
id_column1 = "a"
id_column2 = "b"
score_column = "pearson"
sparse = true

[output]
format = "yaml"
show_members = true
show_singletons = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(content), 0o644))

	req, err := NewClusterConfigurationLoader().LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.LinkageAverage, req.Method)
	assert.Equal(t, 0.64, req.MinSimilarity)
	assert.Equal(t, 3, req.MaxClusterSize)
	assert.Equal(t, domain.ColumnSpec{ID1: "a", ID2: "b", Score: "pearson"}, req.Columns)
	assert.True(t, req.Sparse)
	assert.Equal(t, domain.OutputFormatYAML, req.OutputFormat)
	assert.True(t, req.ShowMembers)
	assert.True(t, req.ShowSingletons)
}
