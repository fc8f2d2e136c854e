package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/autoflow/fileops/internal/types"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// InfoOps handles metadata inspection
type InfoOps struct {
	*Ops
}

// GetTools returns metadata tool definitions
func (n *InfoOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.info",
			Name:        "File Info",
			Description: "Inspect metadata of a file or directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to inspect", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.dir_size",
			Name:        "Directory Size",
			Description: "Calculate total size of a directory tree",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "human", Type: "boolean", Description: "Include human-readable size", Required: false},
			},
			Returns: "object",
		},
	}
}

// Info handles the files.info tool. A missing path is a successful result
// with exists=false, not a failure.
func (n *InfoOps) Info(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := n.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	stat, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Success(map[string]interface{}{"path": fullPath, "exists": false})
		}
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	name := filepath.Base(fullPath)
	ext := filepath.Ext(name)
	if stat.IsDir() {
		ext = ""
	}
	info := map[string]interface{}{
		"path":      fullPath,
		"exists":    true,
		"name":      name,
		"parent":    filepath.Dir(fullPath),
		"extension": ext,
		"stem":      strings.TrimSuffix(name, ext),
		"is_dir":    stat.IsDir(),
		"size":      stat.Size(),
		"mode":      stat.Mode().String(),
		"modified":  stat.ModTime().UTC().Format(time.RFC3339),
		"accessed":  accessTime(stat).UTC().Format(time.RFC3339),
		"created":   createTime(stat).UTC().Format(time.RFC3339),
	}

	if stat.IsDir() {
		files, dirs := countChildren(fullPath)
		info["file_count"] = files
		info["dir_count"] = dirs
	} else if stat.Mode().IsRegular() {
		if mt, err := mimetype.DetectFile(fullPath); err == nil {
			info["mime_type"] = mt.String()
		}
	}

	return Success(info)
}

// DirSize handles the files.dir_size tool. The tree is walked in parallel
// and unreadable entries are skipped rather than aborting.
func (n *InfoOps) DirSize(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := n.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	stat, err := os.Stat(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("path not accessible: %v", err))
	}
	if !stat.IsDir() {
		return Failure(fmt.Sprintf("not a directory: %s", fullPath))
	}

	var totalSize, fileCount atomic.Int64
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, fullPath, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		totalSize.Add(info.Size())
		fileCount.Add(1)
		return nil
	})

	if err != nil {
		return Failure(fmt.Sprintf("size calculation failed: %v", err))
	}

	n.Logger().Debug("directory size computed",
		zap.String("path", fullPath),
		zap.Int64("bytes", totalSize.Load()),
		zap.Int64("files", fileCount.Load()))

	result := map[string]interface{}{
		"path":  fullPath,
		"bytes": totalSize.Load(),
		"files": fileCount.Load(),
	}

	if human, _ := params["human"].(bool); human {
		result["size"] = formatBytes(totalSize.Load())
	}

	return Success(result)
}

// countChildren counts immediate file and directory children.
func countChildren(path string) (files, dirs int) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, 0
	}
	for _, e := range entries {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
	}
	return files, dirs
}

// formatBytes formats bytes to human-readable size
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
