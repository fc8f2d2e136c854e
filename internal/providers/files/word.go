package files

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/autoflow/fileops/internal/types"
	"github.com/fumiama/go-docx"
	"go.uber.org/zap"
)

// WordOps handles Word document text extraction
type WordOps struct {
	*Ops
}

// GetTools returns Word tool definitions
func (w *WordOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.read_word",
			Name:        "Read Word File",
			Description: "Extract text and metadata from a .docx document",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Document path (.docx only)", Required: true},
				{Name: "include_headers", Type: "boolean", Description: "Include header text (default false)", Required: false},
			},
			Returns: "object",
		},
	}
}

// ReadWord handles the files.read_word tool. Only the OOXML .docx format
// is supported; legacy .doc files are rejected with a clear message.
func (w *WordOps) ReadWord(ctx context.Context, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	includeHeaders, _ := params["include_headers"].(bool)

	fullPath, err := w.ResolvePath(path, opCtx)
	if err != nil {
		return Failure(fmt.Sprintf("invalid path: %v", err))
	}

	if strings.EqualFold(filepath.Ext(fullPath), ".doc") {
		return Failure("legacy .doc format is not supported: convert the document to .docx")
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("failed to open document: %v", err))
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	doc, err := docx.Parse(f, stat.Size())
	if err != nil {
		return Failure(fmt.Sprintf("failed to parse document: %v", err))
	}

	var text strings.Builder
	paragraphs := 0
	for _, item := range doc.Document.Body.Items {
		if err := ctx.Err(); err != nil {
			return Failure(fmt.Sprintf("extraction canceled: %v", err))
		}

		switch it := item.(type) {
		case *docx.Paragraph:
			text.WriteString(it.String())
			text.WriteString("\n")
			paragraphs++
		case *docx.Table:
			text.WriteString(it.String())
			text.WriteString("\n")
		}
	}

	result := map[string]interface{}{
		"path":       fullPath,
		"content":    text.String(),
		"paragraphs": paragraphs,
	}

	if props, err := coreProperties(fullPath); err == nil && len(props) > 0 {
		result["metadata"] = props
	}

	if includeHeaders {
		headers, err := headerText(fullPath)
		if err != nil {
			w.Logger().Warn("header extraction failed",
				zap.String("path", fullPath),
				zap.Error(err))
		} else {
			result["headers"] = headers
		}
	}

	w.Logger().Info("extracted Word text",
		zap.String("path", fullPath),
		zap.Int("paragraphs", paragraphs))

	return Success(result)
}

// corePropsXML mirrors the OOXML docProps/core.xml schema.
type corePropsXML struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Keywords       string `xml:"keywords"`
	Description    string `xml:"description"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

// coreProperties reads document metadata from docProps/core.xml.
func coreProperties(path string) (map[string]interface{}, error) {
	raw, err := zipEntry(path, "docProps/core.xml")
	if err != nil {
		return nil, err
	}

	var props corePropsXML
	if err := xml.Unmarshal(raw, &props); err != nil {
		return nil, err
	}

	meta := make(map[string]interface{})
	for key, value := range map[string]string{
		"title":            props.Title,
		"subject":          props.Subject,
		"author":           props.Creator,
		"keywords":         props.Keywords,
		"description":      props.Description,
		"last_modified_by": props.LastModifiedBy,
		"created":          props.Created,
		"modified":         props.Modified,
	} {
		if value != "" {
			meta[key] = value
		}
	}
	return meta, nil
}

// headerDoc captures the text runs of a word/header*.xml part.
type headerDoc struct {
	Text []string `xml:"p>r>t"`
}

// headerText extracts text from every header part in the archive.
func headerText(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/header") && strings.HasSuffix(f.Name, ".xml") {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)

	var headers []string
	for _, name := range names {
		raw, err := readZipFile(zr, name)
		if err != nil {
			return nil, err
		}
		var hdr headerDoc
		if err := xml.Unmarshal(raw, &hdr); err != nil {
			return nil, err
		}
		if text := strings.TrimSpace(strings.Join(hdr.Text, "")); text != "" {
			headers = append(headers, text)
		}
	}
	return headers, nil
}

// zipEntry reads a single named entry from a zip archive.
func zipEntry(path, name string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return readZipFile(zr, name)
}

func readZipFile(zr *zip.ReadCloser, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found", name)
}
