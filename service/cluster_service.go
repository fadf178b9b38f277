package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/simclust/simclust/domain"
	"github.com/simclust/simclust/internal/cluster"
)

// ClusterServiceImpl implements the domain.ClusterService interface
type ClusterServiceImpl struct {
	reader   domain.SimilarityReader
	progress domain.ProgressManager
}

// NewClusterService creates a new cluster service.
// progress can be nil - the service can work without progress reporting
func NewClusterService(reader domain.SimilarityReader, progress domain.ProgressManager) *ClusterServiceImpl {
	return &ClusterServiceImpl{
		reader:   reader,
		progress: progress,
	}
}

// Cluster ingests the request's similarity table and merges clusters
// until no pair that fits under the size cap scores at least the cutoff.
func (s *ClusterServiceImpl) Cluster(ctx context.Context, req *domain.ClusterRequest) (*domain.ClusterResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("cluster request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cluster request: %w", err)
	}

	startTime := time.Now()

	method, err := cluster.ParseLinkage(string(req.Method))
	if err != nil {
		return nil, domain.NewInvalidInputError("linkage method", err)
	}

	group := cluster.NewGroup(s.reader.EstimatePoints(req.Path), method)
	if req.MaxClusterSize > 0 {
		group.SetMaxSize(req.MaxClusterSize)
	}

	records, err := s.ingest(ctx, req, group)
	if err != nil {
		return nil, err
	}

	duplicates := records - group.QueueLen()
	warnings := s.ingestWarnings(req, group, records)

	merges, err := s.mergeAll(ctx, req, group)
	if err != nil {
		return nil, err
	}

	response := s.buildResponse(req, group, records, duplicates, merges, warnings)
	response.Duration = time.Since(startTime).Milliseconds()
	return response, nil
}

// ingest streams the similarity table into the group, checking for
// cancellation periodically.
func (s *ClusterServiceImpl) ingest(ctx context.Context, req *domain.ClusterRequest, group *cluster.Group) (int, error) {
	const cancelCheckInterval = 4096
	count := 0
	records, err := s.reader.ReadSimilarities(req.Path, req.Columns, func(id1, id2 string, score float64) error {
		if count%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("ingestion cancelled: %w", ctx.Err())
			default:
			}
		}
		count++
		group.AddSim(id1, id2, score)
		return nil
	})
	if err != nil {
		return records, err
	}
	return records, nil
}

// ingestWarnings mirrors the observational checks done at load time:
// redundant records, and in dense mode the expected edge count.
func (s *ClusterServiceImpl) ingestWarnings(req *domain.ClusterRequest, group *cluster.Group, records int) []string {
	var warnings []string
	if dup := records - group.QueueLen(); dup > 0 {
		warnings = append(warnings, fmt.Sprintf("%d redundant similarities read", dup))
	}
	if !req.Sparse {
		points := group.Size()
		expected := points * (points - 1) / 2
		if group.QueueLen() < expected {
			warnings = append(warnings,
				fmt.Sprintf("expected %d similarities for %d data points, but only found %d",
					expected, points, group.QueueLen()))
		}
	}
	return warnings
}

// mergeAll runs the merge loop to exhaustion under the request cutoff.
func (s *ClusterServiceImpl) mergeAll(ctx context.Context, req *domain.ClusterRequest, group *cluster.Group) (int, error) {
	total := group.Size()
	if s.progress != nil {
		s.progress.Initialize(total)
		s.progress.Start()
		defer s.progress.Close()
	}

	merges := 0
	for group.Merge(req.MinSimilarity) {
		merges++
		if s.progress != nil {
			s.progress.Update(merges, total)
		}
		select {
		case <-ctx.Done():
			return merges, fmt.Errorf("clustering cancelled: %w", ctx.Err())
		default:
		}
	}
	if s.progress != nil {
		s.progress.Complete(true)
	}
	return merges, nil
}

// buildResponse converts the final group state into the response form.
func (s *ClusterServiceImpl) buildResponse(req *domain.ClusterRequest, group *cluster.Group, records, duplicates, merges int, warnings []string) *domain.ClusterResponse {
	clusters := group.GetClusters()

	summary := &domain.ClusterSummary{
		TotalClusters:    group.Size(),
		MergesPerformed:  merges,
		RecordsRead:      records,
		DuplicateRecords: duplicates,
		MinSimilarity:    req.MinSimilarity,
		Method:           string(req.Method),
	}

	infos := make([]domain.ClusterInfo, 0, len(clusters))
	for _, cl := range clusters {
		summary.TotalPoints += cl.Size()
		if cl.Size() > summary.LargestCluster {
			summary.LargestCluster = cl.Size()
		}
		if cl.Height() > summary.MaxHeight {
			summary.MaxHeight = cl.Height()
		}
		if cl.Size() == 1 && !req.ShowSingletons {
			continue
		}
		info := domain.ClusterInfo{
			ID:     cl.ID(),
			Size:   cl.Size(),
			Height: cl.Height(),
		}
		if score := cl.Score(); !math.IsInf(score, 0) && !math.IsNaN(score) {
			info.Score = &score
		}
		if req.ShowMembers {
			info.Members = cl.Members()
		}
		infos = append(infos, info)
	}
	sortClusterInfos(infos, req.SortBy)

	return &domain.ClusterResponse{
		Clusters: infos,
		Summary:  summary,
		Warnings: warnings,
	}
}

// sortClusterInfos re-sorts the canonical listing for the requested
// criteria. The canonical order (size, then score, then natural ID) is
// what the engine already produced, so it is left untouched.
func sortClusterInfos(infos []domain.ClusterInfo, sortBy domain.SortCriteria) {
	scoreOf := func(info domain.ClusterInfo) float64 {
		if info.Score == nil {
			return math.Inf(1)
		}
		return *info.Score
	}
	switch sortBy {
	case domain.SortByScore:
		sort.SliceStable(infos, func(i, j int) bool {
			return scoreOf(infos[i]) > scoreOf(infos[j])
		})
	case domain.SortByHeight:
		sort.SliceStable(infos, func(i, j int) bool {
			return infos[i].Height > infos[j].Height
		})
	case domain.SortByID:
		sort.SliceStable(infos, func(i, j int) bool {
			return cluster.NaturalCompare(infos[i].ID, infos[j].ID) < 0
		})
	}
}
