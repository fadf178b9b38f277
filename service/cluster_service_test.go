package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simclust/simclust/domain"
)

func clusterRequest(t *testing.T, content string) *domain.ClusterRequest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sims.tbl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return &domain.ClusterRequest{
		Path:           path,
		Columns:        domain.DefaultColumns(),
		Method:         domain.LinkageComplete,
		MinSimilarity:  0.0,
		OutputFormat:   domain.OutputFormatText,
		SortBy:         domain.SortBySize,
		ShowSingletons: true,
		ShowMembers:    true,
		Sparse:         true,
	}
}

const chainTable = "id1\tid2\tscore\n" +
	"A\tB\t0.9\n" +
	"B\tC\t0.8\n" +
	"A\tC\t0.5\n"

func newTestService() *ClusterServiceImpl {
	return NewClusterService(NewSimilarityReader(), nil)
}

func TestClusterServiceCompleteChain(t *testing.T) {
	req := clusterRequest(t, chainTable)
	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.Summary)
	assert.Equal(t, 3, resp.Summary.RecordsRead)
	assert.Equal(t, 3, resp.Summary.TotalPoints)
	assert.Equal(t, 2, resp.Summary.MergesPerformed)
	assert.Equal(t, 1, resp.Summary.TotalClusters)
	assert.Equal(t, 3, resp.Summary.LargestCluster)
	assert.Equal(t, 3, resp.Summary.MaxHeight)
	assert.Empty(t, resp.Warnings)

	require.Len(t, resp.Clusters, 1)
	top := resp.Clusters[0]
	assert.Equal(t, "A", top.ID)
	assert.Equal(t, []string{"A", "B", "C"}, top.Members)
	require.NotNil(t, top.Score)
	assert.InDelta(t, 0.5, *top.Score, 1e-9)
}

func TestClusterServiceCutoff(t *testing.T) {
	table := "id1\tid2\tscore\n" +
		"A\tB\t0.9\n" +
		"C\tD\t0.8\n" +
		"A\tC\t0.3\n"
	req := clusterRequest(t, table)
	req.MinSimilarity = 0.5

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Summary.MergesPerformed)
	assert.Equal(t, 2, resp.Summary.TotalClusters)
	require.Len(t, resp.Clusters, 2)
	assert.Equal(t, []string{"A", "B"}, resp.Clusters[0].Members)
	assert.Equal(t, []string{"C", "D"}, resp.Clusters[1].Members)
}

func TestClusterServiceMaxClusterSize(t *testing.T) {
	req := clusterRequest(t, chainTable)
	req.MaxClusterSize = 2

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.MergesPerformed)
	for _, info := range resp.Clusters {
		assert.LessOrEqual(t, info.Size, 2)
	}
}

func TestClusterServiceSingletonsHidden(t *testing.T) {
	req := clusterRequest(t, chainTable)
	req.MinSimilarity = 0.85
	req.ShowSingletons = false

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	// Only A-B merges at this cutoff; C stays a hidden singleton.
	require.Len(t, resp.Clusters, 1)
	assert.Equal(t, 2, resp.Clusters[0].Size)
	// The summary still covers every extant cluster.
	assert.Equal(t, 2, resp.Summary.TotalClusters)
	assert.Equal(t, 3, resp.Summary.TotalPoints)
}

func TestClusterServiceDuplicateWarning(t *testing.T) {
	table := "id1\tid2\tscore\n" +
		"A\tB\t0.9\n" +
		"B\tA\t0.9\n"
	req := clusterRequest(t, table)

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.DuplicateRecords)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "redundant")
}

func TestClusterServiceDenseModeWarning(t *testing.T) {
	req := clusterRequest(t, chainTable+"A\tD\t0.2\n")
	req.Sparse = false

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	// Four points need six edges in dense mode; only four are present.
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "expected 6 similarities")
}

func TestClusterServiceSparseSuppressesDenseWarning(t *testing.T) {
	req := clusterRequest(t, chainTable+"A\tD\t0.2\n")
	req.Sparse = true

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)
}

func TestClusterServiceSortByID(t *testing.T) {
	table := "id1\tid2\tscore\n" +
		"x10\tx9\t0.9\n" +
		"x2\tx1\t0.8\n"
	req := clusterRequest(t, table)
	req.SortBy = domain.SortByID

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Clusters, 2)
	// Merged clusters keep the lexically smaller endpoint as their ID.
	assert.Equal(t, "x1", resp.Clusters[0].ID)
	assert.Equal(t, "x10", resp.Clusters[1].ID)
}

func TestClusterServiceInvalidRequest(t *testing.T) {
	req := clusterRequest(t, chainTable)
	req.Method = "ward"
	_, err := newTestService().Cluster(context.Background(), req)
	assert.Error(t, err)
}

func TestClusterServiceCancelledContext(t *testing.T) {
	req := clusterRequest(t, chainTable)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService().Cluster(ctx, req)
	assert.Error(t, err)
}

func TestClusterServiceAverageMatchesHandComputation(t *testing.T) {
	req := clusterRequest(t, chainTable)
	req.Method = domain.LinkageAverage

	resp, err := newTestService().Cluster(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Clusters, 1)
	require.NotNil(t, resp.Clusters[0].Score)
	assert.InDelta(t, (0.65*2+0.9*1)/3, *resp.Clusters[0].Score, 1e-9)
}
