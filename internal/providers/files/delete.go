package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/autoflow/fileops/internal/types"
	"go.uber.org/zap"
)

// DeleteOps handles deletion operations
type DeleteOps struct {
	*Ops
}

// GetTools returns deletion tool definitions
func (d *DeleteOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.delete",
			Name:        "Delete File",
			Description: "Delete a file or directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory to delete", Required: true},
				{Name: "recursive", Type: "boolean", Description: "Delete non-empty directories", Required: false},
			},
			Returns: "string",
		},
	}
}

// Delete handles the files.delete tool
func (d *DeleteOps) Delete(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	recursive := false
	if r, ok := params["recursive"].(bool); ok {
		recursive = r
	}

	fullPath, err := d.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	info, err := os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		d.Logger().Warn("delete target missing", zap.String("path", fullPath))
		return Failure(fmt.Sprintf("path does not exist: %s", fullPath))
	}
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	d.Logger().Info("deleting path", zap.String("path", fullPath), zap.Bool("recursive", recursive))

	if info.IsDir() {
		if recursive {
			err = os.RemoveAll(fullPath)
		} else if err = os.Remove(fullPath); err != nil {
			d.Logger().Error("directory remove failed", zap.String("path", fullPath), zap.Error(err))
			return Failure(fmt.Sprintf("delete failed: %v (set recursive=true to delete non-empty directories)", err))
		}
	} else {
		err = os.Remove(fullPath)
	}
	if err != nil {
		d.Logger().Error("delete failed", zap.String("path", fullPath), zap.Error(err))
		return Failure(fmt.Sprintf("delete failed: %v", err))
	}

	d.Logger().Info("delete complete", zap.String("path", fullPath))
	return Success(map[string]interface{}{
		"deleted":      true,
		"deleted_path": fullPath,
	})
}
