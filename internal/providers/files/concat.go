package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/autoflow/fileops/internal/types"
	"go.uber.org/zap"
)

// ConcatOps handles file concatenation
type ConcatOps struct {
	*Ops
}

// GetTools returns concatenation tool definitions
func (c *ConcatOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.concat",
			Name:        "Concatenate Files",
			Description: "Concatenate multiple text files into a single output file",
			Parameters: []types.Parameter{
				{Name: "files", Type: "array", Description: "Input file paths, in order", Required: true},
				{Name: "output", Type: "string", Description: "Output file path", Required: true},
			},
			Returns: "string",
		},
	}
}

// Concat handles the files.concat tool. Inputs are streamed into the output
// in order with a newline after each file; any unreadable input aborts the
// whole operation.
func (c *ConcatOps) Concat(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	inputs, err := stringSlice(params["files"])
	if err != nil || len(inputs) == 0 {
		return Failure("files parameter required: non-empty array of paths")
	}
	output, ok := params["output"].(string)
	if !ok || output == "" {
		return Failure("output parameter required")
	}

	outPath, err := c.ResolvePath(output, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid output path: %v", err))
	}

	c.Logger().Info("concatenating files",
		zap.Int("inputs", len(inputs)),
		zap.String("output", outPath))

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Failure(fmt.Sprintf("failed to create output directory: %v", err))
	}

	out, err := os.Create(outPath)
	if err != nil {
		return Failure(fmt.Sprintf("failed to create output file: %v", err))
	}
	defer out.Close()

	var total int64
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return Failure(fmt.Sprintf("concatenation canceled: %v", err))
		}

		inPath, err := c.ResolvePath(input, opCtx)
		if err != nil {
			return Failure(fmt.Sprintf("invalid input path %q: %v", input, err))
		}
		c.Logger().Debug("appending file", zap.String("path", inPath))

		n, err := appendFile(out, inPath)
		if err != nil {
			c.Logger().Error("concatenation failed", zap.String("path", inPath), zap.Error(err))
			return Failure(fmt.Sprintf("failed to read %s: %v", inPath, err))
		}
		total += n
	}

	if err := out.Close(); err != nil {
		return Failure(fmt.Sprintf("failed to finalize output: %v", err))
	}

	c.Logger().Info("concatenation complete", zap.String("output", outPath), zap.Int64("bytes", total))
	return Success(map[string]interface{}{
		"output_file": outPath,
		"inputs":      len(inputs),
		"size":        total,
	})
}

// appendFile streams one input into the output followed by a newline.
func appendFile(out *os.File, path string) (int64, error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, err
	}
	if _, err := out.WriteString("\n"); err != nil {
		return n, err
	}
	return n + 1, nil
}

// stringSlice coerces a params value into []string.
func stringSlice(v interface{}) ([]string, error) {
	switch arr := v.(type) {
	case []string:
		return arr, nil
	case []interface{}:
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected array, got %T", v)
	}
}
