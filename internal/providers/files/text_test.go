package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("héllo wörld"), 0o644))

	ops := &TextOps{Ops: &Ops{}}
	result, err := ops.ReadText(context.Background(), map[string]interface{}{"path": path}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "héllo wörld", result.Data["content"])
	assert.Equal(t, "utf-8", result.Data["encoding"])
}

func TestReadTextLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.txt")
	// "café" in ISO 8859-1
	require.NoError(t, os.WriteFile(path, []byte{0x63, 0x61, 0x66, 0xE9}, 0o644))

	ops := &TextOps{Ops: &Ops{}}
	result, err := ops.ReadText(context.Background(), map[string]interface{}{
		"path":     path,
		"encoding": "iso-8859-1",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "café", result.Data["content"])
}

func TestReadTextAutoDetect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auto.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain ascii text with enough content for detection to work"), 0o644))

	ops := &TextOps{Ops: &Ops{}}
	result, err := ops.ReadText(context.Background(), map[string]interface{}{
		"path":     path,
		"encoding": "auto",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Data["encoding"])
	assert.Contains(t, result.Data["content"], "plain ascii")
}

func TestReadTextRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x41, 0x80}, 0o644))

	ops := &TextOps{Ops: &Ops{}}
	result, err := ops.ReadText(context.Background(), map[string]interface{}{"path": path}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "utf-8")
}

func TestReadTextMissingFile(t *testing.T) {
	ops := &TextOps{Ops: &Ops{}}
	result, err := ops.ReadText(context.Background(), map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "absent.txt"),
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestReadTextUnknownEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	ops := &TextOps{Ops: &Ops{}}
	result, err := ops.ReadText(context.Background(), map[string]interface{}{
		"path":     path,
		"encoding": "klingon-8",
	}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "klingon-8")
}

func TestWriteTextCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "out.txt")

	ops := &TextOps{Ops: &Ops{}}
	result, err := ops.WriteText(context.Background(), map[string]interface{}{
		"path":     path,
		"contents": "written",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, path, result.Data["file_path"])

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "written", string(got))
}

func TestWriteTextOverwriteFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	ops := &TextOps{Ops: &Ops{}}

	result, err := ops.WriteText(context.Background(), map[string]interface{}{
		"path":      path,
		"contents":  "new",
		"overwrite": false,
	}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "already exists")

	result, err = ops.WriteText(context.Background(), map[string]interface{}{
		"path":     path,
		"contents": "new",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestWriteTextMissingParams(t *testing.T) {
	ops := &TextOps{Ops: &Ops{}}

	result, err := ops.WriteText(context.Background(), map[string]interface{}{"contents": "x"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	result, err = ops.WriteText(context.Background(), map[string]interface{}{"path": "/tmp/x.txt"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestDecodeText(t *testing.T) {
	got, err := decodeText([]byte("abc"), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	got, err = decodeText([]byte{0xE9}, "iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "é", got)

	_, err = decodeText([]byte{0xff, 0x41}, "utf-8")
	assert.Error(t, err)

	_, err = decodeText([]byte{0x61, 0xE9}, "ascii")
	assert.Error(t, err)

	_, err = decodeText([]byte("abc"), "no-such-encoding")
	assert.Error(t, err)
}
