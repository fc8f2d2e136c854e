package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/autoflow/fileops/internal/types"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Validation errors reported before any traversal begins.
var (
	ErrPathNotFound = errors.New("path does not exist")
	ErrNotDirectory = errors.New("path is not a directory")
)

// errStopScan signals that the consumer stopped pulling results.
var errStopScan = errors.New("scan stopped")

// ScanRequest describes one directory scan.
type ScanRequest struct {
	Root      string
	Recursive bool
	Patterns  []string
}

// ParsePatterns normalizes a combined pattern string: split on "," and ";",
// trim whitespace, drop empties, and lower-case everything when the matching
// policy is case-insensitive.
func ParsePatterns(raw string, mode CaseMode) []string {
	raw = strings.ReplaceAll(raw, ";", ",")
	parts := strings.Split(raw, ",")

	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if mode == CaseInsensitive {
			p = strings.ToLower(p)
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// Scanner matches files beneath a root directory against glob patterns.
//
// The case policy is injected rather than detected at match time so tests can
// exercise both behaviors on any platform.
type Scanner struct {
	log  *zap.Logger
	mode CaseMode
}

// NewScanner creates a scanner with the given logger and case policy.
func NewScanner(log *zap.Logger, mode CaseMode) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log, mode: mode}
}

// Scan runs the request and collects every matching file path, in traversal
// order. Validation and traversal errors fail the whole scan: the caller
// never receives partial results.
func (s *Scanner) Scan(ctx context.Context, req ScanRequest) ([]string, error) {
	matches := []string{}
	err := s.scan(ctx, req, func(path string) bool {
		matches = append(matches, path)
		return true
	})
	if err != nil {
		s.log.Error("directory scan failed", zap.String("root", req.Root), zap.Error(err))
		return nil, err
	}
	s.log.Info("directory scan complete", zap.String("root", req.Root), zap.Int("matches", len(matches)))
	return matches, nil
}

// Iter runs the request as a lazy, single-pass, non-restartable sequence.
// It visits the same files in the same order as Scan. Internal errors end
// the sequence early and are reported to the logger, never to the consumer.
func (s *Scanner) Iter(ctx context.Context, req ScanRequest) iter.Seq[string] {
	return func(yield func(string) bool) {
		if err := s.scan(ctx, req, yield); err != nil {
			s.log.Error("directory scan failed", zap.String("root", req.Root), zap.Error(err))
			return
		}
		s.log.Info("directory scan complete", zap.String("root", req.Root))
	}
}

// scan is the single traversal shared by Scan and Iter. A false return from
// yield stops the walk without error.
func (s *Scanner) scan(ctx context.Context, req ScanRequest, yield func(string) bool) error {
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

	s.log.Info("scanning directory",
		zap.String("root", root),
		zap.Strings("patterns", req.Patterns),
		zap.Bool("recursive", req.Recursive),
		zap.Bool("case_sensitive", s.mode == CaseSensitive))

	if req.Recursive {
		err = s.walkTree(ctx, root, req.Patterns, yield)
	} else {
		err = s.expandFlat(ctx, root, req.Patterns, yield)
	}
	if errors.Is(err, errStopScan) {
		return nil
	}
	return err
}

// walkTree descends the whole tree top-down and tests every regular file
// against the pattern set. Directories themselves are never matched. Any
// entry error aborts the remaining walk.
func (s *Scanner) walkTree(ctx context.Context, root string, patterns []string, yield func(string) bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !s.matchAny(d.Name(), patterns) {
			return nil
		}
		s.log.Debug("matched file", zap.String("path", path))
		if !yield(path) {
			return errStopScan
		}
		return nil
	})
}

// expandFlat expands each pattern independently against the root directory,
// keeps regular files, and re-tests each hit against the full pattern set.
// The re-test is redundant but preserved: a file matching several patterns
// is reported once per pattern.
func (s *Scanner) expandFlat(ctx context.Context, root string, patterns []string, yield func(string) bool) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	for _, pattern := range patterns {
		count := 0
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !s.matchOne(pattern, entry.Name()) {
				continue
			}

			path := filepath.Join(root, entry.Name())
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
			if !s.matchAny(entry.Name(), patterns) {
				continue
			}

			count++
			s.log.Debug("matched file", zap.String("path", path))
			if !yield(path) {
				return errStopScan
			}
		}
		s.log.Info("pattern expanded", zap.String("pattern", pattern), zap.Int("matches", count))
	}
	return nil
}

// matchAny reports whether the filename satisfies at least one pattern.
func (s *Scanner) matchAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if s.matchOne(pattern, name) {
			return true
		}
	}
	return false
}

// matchOne applies one shell-style pattern (*, ?, bracket classes) to a
// filename, folding case per the injected policy. Malformed patterns match
// nothing.
func (s *Scanner) matchOne(pattern, name string) bool {
	if s.mode == CaseInsensitive {
		name = strings.ToLower(name)
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// ScanOps exposes the directory scanner as provider tools
type ScanOps struct {
	*Ops
}

// GetTools returns scan tool definitions
func (s *ScanOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.scan",
			Name:        "Scan Directory",
			Description: "Find files matching wildcard patterns, optionally in subdirectories",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory to scan", Required: true},
				{Name: "recursive", Type: "boolean", Description: "Descend into subdirectories", Required: false},
				{Name: "patterns", Type: "string", Description: "Patterns separated by comma or semicolon (e.g. '*.txt,*.jpg;*.png')", Required: true},
			},
			Returns: "array",
		},
	}
}

// Scan handles the files.scan tool: collecting mode of the scanner.
func (s *ScanOps) Scan(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	raw, ok := params["patterns"].(string)
	if !ok || raw == "" {
		return Failure("patterns parameter required")
	}
	recursive := false
	if r, ok := params["recursive"].(bool); ok {
		recursive = r
	}

	root, err := s.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	scanner := NewScanner(s.Logger().Logger, s.Case)
	matches, err := scanner.Scan(ctx, ScanRequest{
		Root:      root,
		Recursive: recursive,
		Patterns:  ParsePatterns(raw, s.Case),
	})
	if err != nil {
		return Failure(fmt.Sprintf("scan failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":  root,
		"files": matches,
		"count": len(matches),
	})
}
