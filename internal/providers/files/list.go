package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/autoflow/fileops/internal/types"
	"go.uber.org/zap"
)

// ListRequest describes one directory listing.
type ListRequest struct {
	Root        string
	IncludeDirs bool
	IncludeFile bool
	Recursive   bool
}

// Entry is one listed item.
type Entry struct {
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
}

// ListOps handles directory listing operations
type ListOps struct {
	*Ops
}

// GetTools returns listing tool definitions
func (l *ListOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.list",
			Name:        "List Directory",
			Description: "List files and directories under a path",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "include_dirs", Type: "boolean", Description: "Include directories (default true)", Required: false},
				{Name: "include_files", Type: "boolean", Description: "Include files (default true)", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Descend into subdirectories", Required: false},
			},
			Returns: "array",
		},
	}
}

// List handles the files.list tool
func (l *ListOps) List(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	req := ListRequest{IncludeDirs: true, IncludeFile: true}
	if v, ok := params["include_dirs"].(bool); ok {
		req.IncludeDirs = v
	}
	if v, ok := params["include_files"].(bool); ok {
		req.IncludeFile = v
	}
	if v, ok := params["recursive"].(bool); ok {
		req.Recursive = v
	}

	root, err := l.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}
	req.Root = root

	entries, err := l.Collect(ctx, req)
	if err != nil {
		return Failure(fmt.Sprintf("list failed: %v", err))
	}

	items := make([]map[string]interface{}, len(entries))
	for i, e := range entries {
		kind := "file"
		if e.IsDir {
			kind = "dir"
		}
		items[i] = map[string]interface{}{"path": e.Path, "type": kind}
	}

	return Success(map[string]interface{}{
		"path":     root,
		"contents": items,
		"count":    len(items),
	})
}

// Collect materializes the listing in traversal order.
func (l *ListOps) Collect(ctx context.Context, req ListRequest) ([]Entry, error) {
	entries := []Entry{}
	err := l.list(ctx, req, func(e Entry) bool {
		entries = append(entries, e)
		return true
	})
	if err != nil {
		l.Logger().Error("directory listing failed", zap.String("root", req.Root), zap.Error(err))
		return nil, err
	}
	l.Logger().Info("directory listing complete", zap.String("root", req.Root), zap.Int("entries", len(entries)))
	return entries, nil
}

// Iter yields listed entries one at a time: lazy, single-pass and
// non-restartable. Errors end the sequence and go to the logger only.
func (l *ListOps) Iter(ctx context.Context, req ListRequest) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if err := l.list(ctx, req, yield); err != nil {
			l.Logger().Error("directory listing failed", zap.String("root", req.Root), zap.Error(err))
		}
	}
}

// list is the traversal shared by Collect and Iter. Directories are visited
// one at a time: each handle is released before descending further.
func (l *ListOps) list(ctx context.Context, req ListRequest, yield func(Entry) bool) error {
	root, err := filepath.Abs(req.Root)
	if err != nil {
		return err
	}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	err = l.listDir(ctx, root, req, yield)
	if errors.Is(err, errStopScan) {
		return nil
	}
	return err
}

func (l *ListOps) listDir(ctx context.Context, dir string, req ListRequest, yield func(Entry) bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()

		if (isDir && req.IncludeDirs) || (!isDir && req.IncludeFile) {
			l.Logger().Debug("listed entry", zap.String("path", path), zap.Bool("is_dir", isDir))
			if !yield(Entry{Path: path, IsDir: isDir}) {
				return errStopScan
			}
		}

		if isDir && req.Recursive {
			if err := l.listDir(ctx, path, req, yield); err != nil {
				return err
			}
		}
	}
	return nil
}
