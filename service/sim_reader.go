package service

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/simclust/simclust/domain"
	"github.com/simclust/simclust/internal/tabular"
)

// SimilarityReaderImpl implements the SimilarityReader interface
type SimilarityReaderImpl struct{}

// NewSimilarityReader creates a new similarity reader service
func NewSimilarityReader() *SimilarityReaderImpl {
	return &SimilarityReaderImpl{}
}

// ResolveInput maps the request path to the similarity table file. A
// file path is returned as-is; a directory is searched with the
// include/exclude patterns and must contain exactly one match.
func (r *SimilarityReaderImpl) ResolveInput(path string, includePatterns, excludePatterns []string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", domain.NewFileNotFoundError(path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	var matches []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchesAny(rel, excludePatterns) {
			return nil
		}
		if matchesAny(rel, includePatterns) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return "", domain.NewReadError(path, err)
	}

	switch len(matches) {
	case 0:
		return "", domain.NewInvalidInputError(
			fmt.Sprintf("no similarity table found under %s matching %v", path, includePatterns), nil)
	case 1:
		return matches[0], nil
	default:
		return "", domain.NewInvalidInputError(
			fmt.Sprintf("%d similarity tables found under %s; specify the file directly", len(matches), path), nil)
	}
}

// matchesAny tests a slash-separated relative path against doublestar
// patterns; bare patterns also match on the basename.
func matchesAny(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// ReadSimilarities streams the file's records into fn. Non-finite
// scores are sanitised to -Inf; unparseable scores are errors.
func (r *SimilarityReaderImpl) ReadSimilarities(path string, columns domain.ColumnSpec, fn domain.SimilarityFunc) (int, error) {
	reader, err := tabular.Open(path)
	if err != nil {
		return 0, domain.NewReadError(path, err)
	}
	defer reader.Close()

	col1, err := reader.FindField(columns.ID1)
	if err != nil {
		return 0, domain.NewInvalidInputError("first ID column", err)
	}
	col2, err := reader.FindField(columns.ID2)
	if err != nil {
		return 0, domain.NewInvalidInputError("second ID column", err)
	}
	scoreCol, err := reader.FindField(columns.Score)
	if err != nil {
		return 0, domain.NewInvalidInputError("score column", err)
	}

	count := 0
	for reader.Next() {
		score, err := reader.Float(scoreCol)
		if err != nil {
			return count, domain.NewReadError(path, err)
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			score = math.Inf(-1)
		}
		if err := fn(reader.Field(col1), reader.Field(col2), score); err != nil {
			return count, err
		}
		count++
	}
	if err := reader.Err(); err != nil {
		return count, domain.NewReadError(path, err)
	}
	return count, nil
}

// EstimatePoints guesses the number of data points represented in a
// file from its size, constrained to reasonable limits.
func (r *SimilarityReaderImpl) EstimatePoints(path string) int {
	var records int64 = 100
	if info, err := os.Stat(path); err == nil {
		records = info.Size() / 40
		if records <= 0 {
			records = 100
		} else if records > 100000 {
			records = 100000
		}
	}
	return int(math.Sqrt(float64(records)))*2 + 1
}
