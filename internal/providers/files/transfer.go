package files

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/autoflow/fileops/internal/types"
	"go.uber.org/zap"
)

// TransferOps handles copy and move operations
type TransferOps struct {
	*Ops
}

// GetTools returns transfer tool definitions
func (t *TransferOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.copy",
			Name:        "Copy File",
			Description: "Copy a file or directory into a target directory, optionally removing the source (cut)",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source file or directory", Required: true},
				{Name: "target_dir", Type: "string", Description: "Directory to copy into", Required: true},
				{Name: "cut", Type: "boolean", Description: "Remove the source after copying (move)", Required: false},
			},
			Returns: "string",
		},
	}
}

// Copy handles the files.copy tool
func (t *TransferOps) Copy(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	targetDir, ok := params["target_dir"].(string)
	if !ok || targetDir == "" {
		return Failure("target_dir parameter required")
	}
	cut := false
	if c, ok := params["cut"].(bool); ok {
		cut = c
	}

	srcPath, err := t.ResolvePath(source, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid source: %v", err))
	}
	dstDir, err := t.ResolvePath(targetDir, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid target_dir: %v", err))
	}

	verb := "copying"
	if cut {
		verb = "moving"
	}
	t.Logger().Info(verb+" path", zap.String("source", srcPath), zap.String("target_dir", dstDir))

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return Failure(fmt.Sprintf("source path does not exist: %s", srcPath))
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return Failure(fmt.Sprintf("failed to create target directory: %v", err))
	}

	targetPath := filepath.Join(dstDir, filepath.Base(srcPath))

	if cut {
		err = movePath(srcPath, targetPath, srcInfo)
	} else if srcInfo.IsDir() {
		err = copyDir(srcPath, targetPath)
	} else {
		err = copyFile(srcPath, targetPath, srcInfo.Mode())
	}
	if err != nil {
		t.Logger().Error("transfer failed", zap.String("source", srcPath), zap.Error(err))
		if cut {
			return Failure(fmt.Sprintf("failed to move: %v", err))
		}
		return Failure(fmt.Sprintf("failed to copy: %v", err))
	}

	t.Logger().Info("transfer complete", zap.String("target_path", targetPath))
	return Success(map[string]interface{}{
		"copied":      true,
		"moved":       cut,
		"source":      srcPath,
		"target_path": targetPath,
	})
}

// movePath renames when possible and falls back to copy-then-delete for
// cross-device moves.
func movePath(src, dst string, info fs.FileInfo) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	var err error
	if info.IsDir() {
		err = copyDir(src, dst)
	} else {
		err = copyFile(src, dst, info.Mode())
	}
	if err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// copyFile copies a single regular file preserving its mode.
func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyDir copies a directory tree.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}
		if !d.Type().IsRegular() {
			// Skip sockets, devices and dangling links
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}
