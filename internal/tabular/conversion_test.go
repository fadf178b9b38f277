package tabular

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConversionReshapesColumns(t *testing.T) {
	source := writeTempFile(t, "source.tbl",
		"extra\tb\ta\n"+
			"x1\t10\t1\n"+
			"x2\t20\t2\n")
	target := writeTempFile(t, "target.tbl",
		"a\tb\tc\n"+
			"9\t9\t9\n")

	conv, err := NewConversion(source, target)
	require.NoError(t, err)
	defer conv.Close()

	out, err := io.ReadAll(conv)
	require.NoError(t, err)
	assert.Equal(t,
		"a\tb\tc\n"+
			"1\t10\t0.0\n"+
			"2\t20\t0.0\n",
		string(out))
}

func TestConversionCustomFill(t *testing.T) {
	source := writeTempFile(t, "source.tbl", "a\n1\n")
	target := writeTempFile(t, "target.tbl", "a\tmissing\n0\t0\n")

	conv, err := NewConversionWithFill(source, target, "NA")
	require.NoError(t, err)
	defer conv.Close()

	out, err := io.ReadAll(conv)
	require.NoError(t, err)
	assert.Equal(t, "a\tmissing\n1\tNA\n", string(out))
}

func TestConversionEmptySource(t *testing.T) {
	source := writeTempFile(t, "source.tbl", "a\tb\n")
	target := writeTempFile(t, "target.tbl", "b\ta\n")

	conv, err := NewConversion(source, target)
	require.NoError(t, err)
	defer conv.Close()

	out, err := io.ReadAll(conv)
	require.NoError(t, err)
	// Only the target header comes through.
	assert.Equal(t, "b\ta\n", string(out))
}

func TestConversionReadableThroughReader(t *testing.T) {
	source := writeTempFile(t, "source.tbl",
		"id\tscore\n"+
			"p1\t0.5\n")
	target := writeTempFile(t, "target.tbl",
		"id\tweight\tscore\n"+
			"q\t1\t1\n")

	conv, err := NewConversion(source, target)
	require.NoError(t, err)
	defer conv.Close()

	// The converted stream is itself a valid tabbed stream.
	r, err := NewReader(conv)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "weight", "score"}, r.Labels())
	require.True(t, r.Next())
	assert.Equal(t, "p1", r.Field(0))
	assert.Equal(t, "0.0", r.Field(1))
	assert.Equal(t, "0.5", r.Field(2))
	assert.False(t, r.Next())
}

func TestConversionSmallReads(t *testing.T) {
	source := writeTempFile(t, "source.tbl", "a\n7\n")
	target := writeTempFile(t, "target.tbl", "a\n0\n")

	conv, err := NewConversion(source, target)
	require.NoError(t, err)
	defer conv.Close()

	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := conv.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, "a\n7\n", sb.String())
}
