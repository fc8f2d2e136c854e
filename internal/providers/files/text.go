package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/autoflow/fileops/internal/types"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// TextOps handles text file reads and writes
type TextOps struct {
	*Ops
}

// GetTools returns text tool definitions
func (t *TextOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.read_text",
			Name:        "Read Text File",
			Description: "Read a text file, optionally decoding a specific or detected encoding",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "encoding", Type: "string", Description: "Character encoding, or 'auto' to detect (default utf-8)", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "files.write_text",
			Name:        "Write Text File",
			Description: "Write text content to a file, creating parent directories",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "contents", Type: "string", Description: "Text to write", Required: true},
				{Name: "overwrite", Type: "boolean", Description: "Overwrite existing file (default true)", Required: false},
			},
			Returns: "string",
		},
	}
}

// ReadText handles the files.read_text tool.
func (t *TextOps) ReadText(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	encoding := "utf-8"
	if e, ok := params["encoding"].(string); ok && e != "" {
		encoding = e
	}

	fullPath, err := t.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("failed to read file: %v", err))
	}

	if strings.EqualFold(encoding, "auto") {
		detected, err := detectEncoding(raw)
		if err != nil {
			return Failure(fmt.Sprintf("encoding detection failed: %v", err))
		}
		t.Logger().Debug("detected encoding",
			zap.String("path", fullPath),
			zap.String("encoding", detected))
		encoding = detected
	}

	content, err := decodeText(raw, encoding)
	if err != nil {
		return Failure(fmt.Sprintf("failed to decode %s as %s: %v", fullPath, encoding, err))
	}

	return Success(map[string]interface{}{
		"path":     fullPath,
		"content":  content,
		"encoding": encoding,
		"size":     len(raw),
	})
}

// WriteText handles the files.write_text tool.
func (t *TextOps) WriteText(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	content, ok := params["contents"].(string)
	if !ok {
		return Failure("contents parameter required")
	}

	overwrite := true
	if o, ok := params["overwrite"].(bool); ok {
		overwrite = o
	}

	fullPath, err := t.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	if !overwrite {
		if _, err := os.Stat(fullPath); err == nil {
			return Failure(fmt.Sprintf("file already exists: %s", fullPath))
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return Failure(fmt.Sprintf("failed to create parent directory: %v", err))
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return Failure(fmt.Sprintf("failed to write file: %v", err))
	}

	t.Logger().Info("wrote text file",
		zap.String("path", fullPath),
		zap.Int("bytes", len(content)))

	return Success(map[string]interface{}{
		"file_path": fullPath,
		"written":   len(content),
	})
}

// detectEncoding guesses the charset of raw bytes.
func detectEncoding(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "utf-8", nil
	}
	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil {
		return "", err
	}
	return result.Charset, nil
}

// decodeText converts raw bytes in the named encoding to a UTF-8 string.
// Invalid input for the named encoding is an error, never silently mangled.
func decodeText(raw []byte, name string) (string, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("invalid UTF-8 byte sequence")
		}
		return string(raw), nil
	case "ascii", "us-ascii":
		for _, b := range raw {
			if b > 0x7f {
				return "", fmt.Errorf("byte 0x%02x outside ASCII range", b)
			}
		}
		return string(raw), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
