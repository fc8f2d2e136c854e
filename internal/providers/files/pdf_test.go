package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPdfMissingFile(t *testing.T) {
	ops := &PdfOps{Ops: &Ops{}}
	result, err := ops.ReadPdf(context.Background(), map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "absent.pdf"),
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestReadPdfRejectsNonPdf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no PDF header"), 0o644))

	ops := &PdfOps{Ops: &Ops{}}
	result, err := ops.ReadPdf(context.Background(), map[string]interface{}{"path": path}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestReadPdfMissingParam(t *testing.T) {
	ops := &PdfOps{Ops: &Ops{}}
	result, err := ops.ReadPdf(context.Background(), map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestIntParam(t *testing.T) {
	params := map[string]interface{}{
		"from_json": float64(7),
		"native":    3,
		"wrong":     "5",
	}

	assert.Equal(t, 7, intParam(params, "from_json", 1))
	assert.Equal(t, 3, intParam(params, "native", 1))
	assert.Equal(t, 1, intParam(params, "wrong", 1))
	assert.Equal(t, 1, intParam(params, "absent", 1))
}
