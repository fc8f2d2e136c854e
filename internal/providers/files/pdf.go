package files

import (
	"context"
	"fmt"
	"strings"

	"github.com/autoflow/fileops/internal/types"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PdfOps handles PDF text extraction
type PdfOps struct {
	*Ops
}

// GetTools returns PDF tool definitions
func (p *PdfOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.read_pdf",
			Name:        "Read PDF File",
			Description: "Extract plain text and metadata from a PDF document",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "PDF file path", Required: true},
				{Name: "start_page", Type: "number", Description: "First page to extract, 1-based (default 1)", Required: false},
				{Name: "end_page", Type: "number", Description: "Last page to extract, 0 means last page (default 0)", Required: false},
			},
			Returns: "object",
		},
	}
}

// ReadPdf handles the files.read_pdf tool. Page numbers are 1-based and
// inclusive; end_page 0 means the document's last page.
func (p *PdfOps) ReadPdf(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	startPage := intParam(params, "start_page", 1)
	endPage := intParam(params, "end_page", 0)

	fullPath, err := p.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	f, reader, err := pdf.Open(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("failed to open PDF: %v", err))
	}
	defer f.Close()

	pageCount := reader.NumPage()
	if endPage == 0 {
		endPage = pageCount
	}
	if startPage < 1 || startPage > pageCount {
		return Failure(fmt.Sprintf("start_page %d out of range: document has %d pages", startPage, pageCount))
	}
	if endPage < startPage || endPage > pageCount {
		return Failure(fmt.Sprintf("end_page %d out of range: document has %d pages", endPage, pageCount))
	}

	var text strings.Builder
	for i := startPage; i <= endPage; i++ {
		if err := ctx.Err(); err != nil {
			return Failure(fmt.Sprintf("extraction canceled: %v", err))
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			p.Logger().Warn("page extraction failed",
				zap.String("path", fullPath),
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}

	p.Logger().Info("extracted PDF text",
		zap.String("path", fullPath),
		zap.Int("start_page", startPage),
		zap.Int("end_page", endPage))

	return Success(map[string]interface{}{
		"path":       fullPath,
		"content":    text.String(),
		"page_count": pageCount,
		"start_page": startPage,
		"end_page":   endPage,
		"metadata":   pdfMetadata(reader),
	})
}

// pdfMetadata reads the document information dictionary. Missing or
// non-string entries come back as empty strings and are omitted.
func pdfMetadata(reader *pdf.Reader) map[string]interface{} {
	meta := make(map[string]interface{})
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	for key, field := range map[string]string{
		"title":    "Title",
		"author":   "Author",
		"subject":  "Subject",
		"creator":  "Creator",
		"producer": "Producer",
	} {
		if v := info.Key(field).Text(); v != "" {
			meta[key] = v
		}
	}
	return meta
}

// intParam reads a numeric parameter, accepting JSON float64 or int.
func intParam(params map[string]interface{}, name string, def int) int {
	switch v := params[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}
