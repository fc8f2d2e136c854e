package files

import (
	"context"
	"fmt"

	"github.com/autoflow/fileops/internal/logging"
	"github.com/autoflow/fileops/internal/types"
)

// Provider implements file management operations
type Provider struct {
	scan     *ScanOps
	list     *ListOps
	transfer *TransferOps
	del      *DeleteOps
	concat   *ConcatOps
	info     *InfoOps
	text     *TextOps
	pdf      *PdfOps
	word     *WordOps
}

// NewProvider creates a modular files provider
func NewProvider(log *logging.Logger, baseDir string, mode CaseMode) *Provider {
	ops := &Ops{Log: log, Case: mode, BaseDir: baseDir}

	return &Provider{
		scan:     &ScanOps{Ops: ops},
		list:     &ListOps{Ops: ops},
		transfer: &TransferOps{Ops: ops},
		del:      &DeleteOps{Ops: ops},
		concat:   &ConcatOps{Ops: ops},
		info:     &InfoOps{Ops: ops},
		text:     &TextOps{Ops: ops},
		pdf:      &PdfOps{Ops: ops},
		word:     &WordOps{Ops: ops},
	}
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.scan.GetTools()...)
	tools = append(tools, p.list.GetTools()...)
	tools = append(tools, p.transfer.GetTools()...)
	tools = append(tools, p.del.GetTools()...)
	tools = append(tools, p.concat.GetTools()...)
	tools = append(tools, p.info.GetTools()...)
	tools = append(tools, p.text.GetTools()...)
	tools = append(tools, p.pdf.GetTools()...)
	tools = append(tools, p.word.GetTools()...)

	return types.Service{
		ID:          "files",
		Name:        "Files Service",
		Description: "File management operations (scan, list, copy, delete, concat, metadata, text, documents)",
		Category:    types.CategoryFiles,
		Capabilities: []string{
			"scan",
			"list",
			"copy",
			"move",
			"delete",
			"concat",
			"metadata",
			"text",
			"pdf",
			"docx",
		},
		Tools: tools,
	}
}

// Execute routes to the appropriate module
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "files.scan":
		return p.scan.Scan(ctx, params, opCtx)
	case "files.list":
		return p.list.List(ctx, params, opCtx)
	case "files.copy":
		return p.transfer.Copy(ctx, params, opCtx)
	case "files.delete":
		return p.del.Delete(ctx, params, opCtx)
	case "files.concat":
		return p.concat.Concat(ctx, params, opCtx)
	case "files.info":
		return p.info.Info(ctx, params, opCtx)
	case "files.dir_size":
		return p.info.DirSize(ctx, params, opCtx)
	case "files.read_text":
		return p.text.ReadText(ctx, params, opCtx)
	case "files.write_text":
		return p.text.WriteText(ctx, params, opCtx)
	case "files.read_pdf":
		return p.pdf.ReadPdf(ctx, params, opCtx)
	case "files.read_word":
		return p.word.ReadWord(ctx, params, opCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
