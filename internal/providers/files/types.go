package files

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/autoflow/fileops/internal/logging"
	"github.com/autoflow/fileops/internal/types"
)

// CaseMode selects the filename case policy used for pattern matching.
type CaseMode int

const (
	// CaseSensitive compares filenames byte for byte.
	CaseSensitive CaseMode = iota
	// CaseInsensitive lower-cases patterns and filenames before comparison.
	CaseInsensitive
)

// HostCaseMode derives the matching policy from the running platform:
// case-insensitive on Windows, case-sensitive everywhere else.
func HostCaseMode() CaseMode {
	if runtime.GOOS == "windows" {
		return CaseInsensitive
	}
	return CaseSensitive
}

// ParseCaseMode maps a config value ("auto", "sensitive", "insensitive")
// to a CaseMode. Unknown values fall back to the host policy.
func ParseCaseMode(s string) CaseMode {
	switch s {
	case "sensitive":
		return CaseSensitive
	case "insensitive":
		return CaseInsensitive
	default:
		return HostCaseMode()
	}
}

// Ops provides common helpers shared by the file operation groups
type Ops struct {
	Log     *logging.Logger
	Case    CaseMode
	BaseDir string
}

// Logger returns the operation logger, never nil
func (o *Ops) Logger() *logging.Logger {
	if o.Log == nil {
		return logging.Nop()
	}
	return o.Log
}

// ResolvePath resolves a path to an absolute path. Relative paths are joined
// against the context base directory when one is supplied, then the provider
// base directory, then the process working directory.
func (o *Ops) ResolvePath(path string, opCtx *types.Context) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	base := o.BaseDir
	if opCtx != nil && opCtx.BaseDir != nil && *opCtx.BaseDir != "" {
		base = *opCtx.BaseDir
	}
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		base = wd
	}
	return filepath.Abs(filepath.Join(base, path))
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
