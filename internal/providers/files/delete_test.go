package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "gone.txt")

	ops := &DeleteOps{Ops: &Ops{}}
	result, err := ops.Delete(context.Background(), map[string]interface{}{
		"path": filepath.Join(dir, "gone.txt"),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NoFileExists(t, filepath.Join(dir, "gone.txt"))
}

func TestDeleteEmptyDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	ops := &DeleteOps{Ops: &Ops{}}
	result, err := ops.Delete(context.Background(), map[string]interface{}{"path": dir}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NoDirExists(t, dir)
}

func TestDeleteNonEmptyDirectoryRequiresRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "keep/inner.txt")
	target := filepath.Join(dir, "keep")

	ops := &DeleteOps{Ops: &Ops{}}

	result, err := ops.Delete(context.Background(), map[string]interface{}{"path": target}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "recursive")
	assert.Contains(t, *result.Error, "not empty")
	assert.DirExists(t, target)

	result, err = ops.Delete(context.Background(), map[string]interface{}{
		"path":      target,
		"recursive": true,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NoDirExists(t, target)
}

func TestDeleteMissingPath(t *testing.T) {
	ops := &DeleteOps{Ops: &Ops{}}
	result, err := ops.Delete(context.Background(), map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "never"),
	}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "does not exist")
}

func TestDeleteMissingParam(t *testing.T) {
	ops := &DeleteOps{Ops: &Ops{}}
	result, err := ops.Delete(context.Background(), map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
