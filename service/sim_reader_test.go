package service

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simclust/simclust/domain"
)

type record struct {
	id1, id2 string
	score    float64
}

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const geneTable = "id1\tid2\tscore\n" +
	"thrA\tthrB\t0.7685\n" +
	"thrA\tthrC\t0.25\n" +
	"thrB\tthrC\tNaN\n"

func TestReadSimilaritiesDefaultColumns(t *testing.T) {
	path := writeTable(t, t.TempDir(), "sims.tbl", geneTable)
	reader := NewSimilarityReader()

	var records []record
	count, err := reader.ReadSimilarities(path, domain.DefaultColumns(), func(id1, id2 string, score float64) error {
		records = append(records, record{id1, id2, score})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, records, 3)
	assert.Equal(t, record{"thrA", "thrB", 0.7685}, records[0])
	// Non-finite scores are sanitised to -Inf.
	assert.True(t, math.IsInf(records[2].score, -1))
}

func TestReadSimilaritiesNamedColumns(t *testing.T) {
	content := "weight\tgene_a\tgene_b\n0.5\tA\tB\n"
	path := writeTable(t, t.TempDir(), "sims.tbl", content)

	var got record
	count, err := NewSimilarityReader().ReadSimilarities(path,
		domain.ColumnSpec{ID1: "gene_a", ID2: "gene_b", Score: "weight"},
		func(id1, id2 string, score float64) error {
			got = record{id1, id2, score}
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, record{"A", "B", 0.5}, got)
}

func TestReadSimilaritiesUnknownColumn(t *testing.T) {
	path := writeTable(t, t.TempDir(), "sims.tbl", geneTable)
	_, err := NewSimilarityReader().ReadSimilarities(path,
		domain.ColumnSpec{ID1: "nope", ID2: "2", Score: "3"}, nil)
	assert.Error(t, err)
}

func TestReadSimilaritiesBadScore(t *testing.T) {
	path := writeTable(t, t.TempDir(), "sims.tbl", "a\tb\ts\nA\tB\tpotato\n")
	_, err := NewSimilarityReader().ReadSimilarities(path, domain.DefaultColumns(),
		func(string, string, float64) error { return nil })
	assert.Error(t, err)
}

func TestReadSimilaritiesMissingFile(t *testing.T) {
	_, err := NewSimilarityReader().ReadSimilarities(
		filepath.Join(t.TempDir(), "absent.tbl"), domain.DefaultColumns(), nil)
	assert.Error(t, err)
}

func TestResolveInputFile(t *testing.T) {
	path := writeTable(t, t.TempDir(), "sims.tbl", geneTable)
	got, err := NewSimilarityReader().ResolveInput(path, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolveInputDirectory(t *testing.T) {
	dir := t.TempDir()
	want := writeTable(t, dir, "sims.tbl", geneTable)
	writeTable(t, dir, "notes.txt", "irrelevant")

	got, err := NewSimilarityReader().ResolveInput(dir, []string{"*.tbl"}, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveInputDirectoryExcludes(t *testing.T) {
	dir := t.TempDir()
	want := writeTable(t, dir, "sims.tbl", geneTable)
	writeTable(t, dir, "backup.tbl", geneTable)

	got, err := NewSimilarityReader().ResolveInput(dir, []string{"*.tbl"}, []string{"backup*"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveInputAmbiguous(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "a.tbl", geneTable)
	writeTable(t, dir, "b.tbl", geneTable)

	_, err := NewSimilarityReader().ResolveInput(dir, []string{"*.tbl"}, nil)
	assert.Error(t, err)
}

func TestResolveInputNoMatch(t *testing.T) {
	_, err := NewSimilarityReader().ResolveInput(t.TempDir(), []string{"*.tbl"}, nil)
	assert.Error(t, err)
}

func TestEstimatePoints(t *testing.T) {
	reader := NewSimilarityReader()

	// Missing file falls back to the minimum record estimate.
	est := reader.EstimatePoints(filepath.Join(t.TempDir(), "absent.tbl"))
	assert.Equal(t, 21, est)

	// A tiny file yields a tiny estimate.
	path := writeTable(t, t.TempDir(), "sims.tbl", geneTable)
	assert.Equal(t, 3, reader.EstimatePoints(path))
}
