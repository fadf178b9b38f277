package tabular

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = "id1\tid2\tscore\n" +
	"geneA\tgeneB\t0.91\n" +
	"geneA\tgeneC\t0.42\n" +
	"geneB\tgeneC\tNaN\n"

func TestReaderHeaderAndLabels(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleTable))
	require.NoError(t, err)
	assert.Equal(t, "id1\tid2\tscore", r.Header())
	assert.Equal(t, []string{"id1", "id2", "score"}, r.Labels())
}

func TestReaderFindColumn(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleTable))
	require.NoError(t, err)
	assert.Equal(t, 2, r.FindColumn("score"))
	assert.Equal(t, -1, r.FindColumn("missing"))
}

func TestReaderFindField(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleTable))
	require.NoError(t, err)

	idx, err := r.FindField("id2")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	// 1-based positional lookup.
	idx, err = r.FindField("3")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = r.FindField("9")
	assert.Error(t, err)
	_, err = r.FindField("nope")
	assert.Error(t, err)
}

func TestReaderIteration(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleTable))
	require.NoError(t, err)

	var rows [][2]string
	for r.Next() {
		rows = append(rows, [2]string{r.Field(0), r.Field(1)})
	}
	require.NoError(t, r.Err())
	assert.Equal(t, [][2]string{
		{"geneA", "geneB"},
		{"geneA", "geneC"},
		{"geneB", "geneC"},
	}, rows)
}

func TestReaderFloat(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleTable))
	require.NoError(t, err)

	require.True(t, r.Next())
	v, err := r.Float(2)
	require.NoError(t, err)
	assert.Equal(t, 0.91, v)

	require.True(t, r.Next())
	require.True(t, r.Next())
	v, err = r.Float(2)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	_, err = r.Float(0)
	assert.Error(t, err)
}

func TestReaderShortLine(t *testing.T) {
	r, err := NewReader(strings.NewReader("a\tb\nonly\n"))
	require.NoError(t, err)
	require.True(t, r.Next())
	assert.Equal(t, "only", r.Field(0))
	assert.Equal(t, "", r.Field(1))
	assert.Equal(t, "", r.Field(5))
}

func TestReaderEmptyInput(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.tbl"))
	assert.Error(t, err)
}

func TestOpenAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.tbl")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	count := 0
	for r.Next() {
		count++
	}
	assert.Equal(t, 3, count)
	assert.NoError(t, r.Close())
}
