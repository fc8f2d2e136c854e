// Package files provides file management operations for workflow automation.
//
// This package is organized into specialized modules:
//   - scan: Pattern-based directory scanning (glob, case policy, lazy/eager)
//   - list: Directory listing and iteration
//   - transfer: Copy and move operations
//   - delete: File and directory deletion
//   - concat: Multi-file concatenation
//   - info: File metadata and directory sizing
//   - text: Text file reads and writes with encoding support
//   - pdf: PDF text and metadata extraction
//   - word: Word (.docx) text and metadata extraction
//
// All operations:
//   - Resolve relative paths against the workflow base directory
//   - Provide detailed error messages in the result envelope
//   - Return structured JSON results
//
// Example Usage:
//
//	scan := &files.ScanOps{Ops: ops}
//	result, err := scan.Scan(ctx, params, opCtx)
package files
